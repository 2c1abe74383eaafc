package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"ok", nil, http.StatusOK, `{"ok":true,"service":"config-api","table":"SiteConfig"}`},
		{"table unreachable", errors.New("ResourceNotFoundException"), http.StatusServiceUnavailable, `{"ok":false,"service":"config-api","table":"SiteConfig"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(pingFunc(func(context.Context) error { return tt.err }), "config-api", "SiteConfig", nil)

			resp, err := h.Handle(context.Background(), events.APIGatewayV2HTTPRequest{})
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.JSONEq(t, tt.body, resp.Body)
			assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
		})
	}
}
