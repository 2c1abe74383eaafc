package handlers

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Table   string `json:"table"`
}

type HealthHandler struct {
	db      Pinger
	service string
	table   string
	log     *zap.Logger
}

func NewHealthHandler(db Pinger, service, table string, log *zap.Logger) *HealthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &HealthHandler{db: db, service: service, table: table, log: log}
}

// Handle answers GET /health with 200 when the config table is readable
// and 503 otherwise.
func (h *HealthHandler) Handle(ctx context.Context, _ events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	resp := HealthResponse{OK: true, Service: h.service, Table: h.table}
	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("health check failed", zap.String("table", h.table), zap.Error(err))
		resp.OK = false
		return jsonResp(http.StatusServiceUnavailable, resp)
	}
	return jsonResp(http.StatusOK, resp)
}
