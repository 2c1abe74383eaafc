package sitesync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/SirSluginston/SirSluginston-Backend/internal/errs"
)

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient returns a client with its own transport and no retries.
// Deadlines come from the caller's context.
func NewHTTPClient() *http.Client {
	return cleanhttp.DefaultClient()
}

// Fetch GETs url and returns the body. Anything but 200 is a FetchError
// carrying the status code.
func Fetch(ctx context.Context, client HTTPDoer, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &errs.FetchError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return nil, &errs.FetchError{URL: url, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, &errs.FetchError{URL: url, StatusCode: res.StatusCode}
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &errs.FetchError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}
	return raw, nil
}

// Parse decodes the listing body. A single object is treated as a
// one-element list. Numbers keep their original text.
func Parse(body []byte) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errs.Parse(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errs.Parse(errors.New("trailing data after JSON value"))
	}

	switch t := v.(type) {
	case []any:
		return t, nil
	case nil:
		return nil, errs.Parse(errors.New("response is null"))
	default:
		return []any{t}, nil
	}
}
