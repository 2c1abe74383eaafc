package handlers

import (
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/SirSluginston/SirSluginston-Backend/internal/normalize"
)

func jsonResp(status int, v any) (events.APIGatewayV2HTTPResponse, error) {
	b, err := normalize.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		b = []byte(`{"error":"failed to encode response"}`)
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(b),
	}, nil
}

func errResp(status int, msg string) (events.APIGatewayV2HTTPResponse, error) {
	return jsonResp(status, map[string]any{
		"error": msg,
	})
}
