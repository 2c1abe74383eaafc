package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SirSluginston/SirSluginston-Backend/internal/errs"
	"github.com/SirSluginston/SirSluginston-Backend/internal/lookup"
	"github.com/SirSluginston/SirSluginston-Backend/internal/normalize"
	"github.com/SirSluginston/SirSluginston-Backend/internal/record"
)

type fakeStore struct {
	recs  []record.Record
	err   error
	calls int
}

func (f *fakeStore) Get(_ context.Context, project, page string) (record.Record, bool, error) {
	f.calls++
	if f.err != nil {
		return nil, false, f.err
	}
	for _, r := range f.recs {
		if r.ProjectKey() == project && r.PageKey() == page {
			return r, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeStore) Scan(_ context.Context, _ string) ([]record.Record, error) {
	f.calls++
	return f.recs, f.err
}

func newHandler(st *fakeStore, opts lookup.Options) *ConfigHandler {
	return NewConfigHandler(lookup.NewService(st, opts, zap.NewNop()), zap.NewNop())
}

func request(params map[string]string) events.APIGatewayV2HTTPRequest {
	return events.APIGatewayV2HTTPRequest{RawPath: "/config", QueryStringParameters: params}
}

func siteStore() *fakeStore {
	return &fakeStore{recs: []record.Record{
		{"projectKey": "site", "pageKey": "project-config", "title": "Site"},
		{"projectKey": "site", "pageKey": "home", "body": "<b>hi</b>"},
	}}
}

func TestHandle_Get(t *testing.T) {
	h := newHandler(siteStore(), lookup.Options{})

	resp, err := h.Handle(context.Background(), request(map[string]string{"project": "site", "page": "home"}))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.JSONEq(t, `{"projectKey":"site","pageKey":"home","body":"<b>hi</b>"}`, resp.Body)
	assert.Contains(t, resp.Body, "<b>hi</b>")
}

func TestHandle_NotFound(t *testing.T) {
	h := newHandler(&fakeStore{}, lookup.Options{})

	resp, err := h.Handle(context.Background(), request(map[string]string{"project": "x", "page": "missing"}))
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Config not found"}`, resp.Body)
}

func TestHandle_PageWithoutProject(t *testing.T) {
	st := siteStore()
	h := newHandler(st, lookup.Options{})

	resp, err := h.Handle(context.Background(), request(map[string]string{"project": "", "page": "page"}))
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Missing project or page parameter"}`, resp.Body)
	assert.Zero(t, st.calls)
}

func TestHandle_Project(t *testing.T) {
	h := newHandler(siteStore(), lookup.Options{})

	resp, err := h.Handle(context.Background(), request(map[string]string{"project": "site"}))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"project":"site","pages":[
		{"projectKey":"site","pageKey":"project-config","title":"Site"},
		{"projectKey":"site","pageKey":"home","body":"<b>hi</b>"}
	]}`, resp.Body)
}

func TestHandle_All(t *testing.T) {
	tests := []struct {
		name string
		opts lookup.Options
		want string
	}{
		{
			name: "as page",
			want: `[{"projectKey":"site","pages":[
				{"projectKey":"site","pageKey":"project-config","title":"Site"},
				{"projectKey":"site","pageKey":"home","body":"<b>hi</b>"}]}]`,
		},
		{
			name: "merge",
			opts: lookup.Options{AllPolicy: normalize.MergeProjectConfig},
			want: `[{"projectKey":"site","title":"Site","pages":[
				{"projectKey":"site","pageKey":"home","body":"<b>hi</b>"}]}]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(siteStore(), tt.opts)

			resp, err := h.Handle(context.Background(), request(nil))
			require.NoError(t, err)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.JSONEq(t, tt.want, resp.Body)
		})
	}
}

func TestHandle_StoreErrorIs500(t *testing.T) {
	st := &fakeStore{err: errs.NewStoreError("Scan", "SiteConfig", errors.New("ResourceNotFoundException: table missing"))}
	h := newHandler(st, lookup.Options{})

	for _, params := range []map[string]string{
		nil,
		{"project": "site"},
		{"project": "site", "page": "home"},
	} {
		resp, err := h.Handle(context.Background(), request(params))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.JSONEq(t, `{"error":"ResourceNotFoundException: table missing"}`, resp.Body)
	}
}
