package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/SirSluginston/SirSluginston-Backend/internal/errs"
	"github.com/SirSluginston/SirSluginston-Backend/internal/lookup"
	"github.com/SirSluginston/SirSluginston-Backend/internal/normalize"
	"github.com/SirSluginston/SirSluginston-Backend/internal/record"
)

type Lookup interface {
	Get(ctx context.Context, project, page string) (record.Record, error)
	Project(ctx context.Context, project string) (lookup.ProjectListing, error)
	All(ctx context.Context) ([]normalize.ProjectGroup, error)
}

type ConfigHandler struct {
	svc Lookup
	log *zap.Logger
}

func NewConfigHandler(svc Lookup, log *zap.Logger) *ConfigHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ConfigHandler{svc: svc, log: log}
}

// Handle answers GET /config.
//
//	?project=&page=  one flat record
//	?project=        {project, pages}
//	(none)           [{projectKey, pages}]
func (h *ConfigHandler) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	project := strings.TrimSpace(req.QueryStringParameters["project"])
	page := strings.TrimSpace(req.QueryStringParameters["page"])

	var (
		route string
		body  any
		err   error
	)
	switch {
	case project != "" && page != "":
		route = "get"
		body, err = h.svc.Get(ctx, project, page)
	case project != "":
		route = "project"
		body, err = h.svc.Project(ctx, project)
	case page != "":
		route = "get"
		err = errs.Invalid("missing project parameter")
	default:
		route = "all"
		body, err = h.svc.All(ctx)
	}

	if err != nil {
		status := errs.HTTPStatus(err)
		h.log.Info("config request failed",
			zap.String("route", route),
			zap.String("project", project),
			zap.String("page", page),
			zap.Int("status", status),
			zap.Error(err))
		return errResp(status, errorMessage(err))
	}

	h.log.Info("config request",
		zap.String("route", route),
		zap.String("project", project),
		zap.String("page", page))
	return jsonResp(http.StatusOK, body)
}

func errorMessage(err error) string {
	var se *errs.StoreError
	switch {
	case errors.Is(err, errs.ErrInvalidRequest):
		return "Missing project or page parameter"
	case errors.Is(err, errs.ErrNotFound):
		return "Config not found"
	case errors.As(err, &se):
		return se.Err.Error()
	default:
		return err.Error()
	}
}
