package sources

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/hollis/daybook/internal/apperr"
)

// APIConfig is the endpoint/credential/parameter bundle for one
// HTTP-backed source.
type APIConfig struct {
	Endpoint string            `yaml:"endpoint"`
	Key      string            `yaml:"key"`
	Params   map[string]string `yaml:"params"`
}

// Enabled reports whether the source is configured at all.
func (c APIConfig) Enabled() bool { return c.Endpoint != "" }

// NewClient builds the shared HTTP client used by all API sources.
func NewClient() *resty.Client {
	return resty.New().
		SetRetryCount(3).
		SetRetryWaitTime(2 * time.Second)
}

// fetch performs an authenticated GET against the configured endpoint.
// Authentication uses RapidAPI-style headers: the key goes in
// x-rapidapi-key and the endpoint host in x-rapidapi-host.
func (c APIConfig) fetch(ctx context.Context, client *resty.Client) ([]byte, error) {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("sources: endpoint %q: %w: %v", c.Endpoint, apperr.ErrSourceUnavailable, err)
	}

	resp, err := client.R().
		SetContext(ctx).
		SetHeader("x-rapidapi-key", c.Key).
		SetHeader("x-rapidapi-host", u.Host).
		SetQueryParams(c.Params).
		Get(c.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("sources: get %s: %w: %v", u.Host, apperr.ErrSourceUnavailable, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("sources: get %s: status %d: %w", u.Host, resp.StatusCode(), apperr.ErrSourceUnavailable)
	}
	return resp.Body(), nil
}

// FileConfig points a CSV- or HTML-backed source at its input file.
type FileConfig struct {
	Path string `yaml:"path"`
	// DeleteAfter removes the source file once its records have been
	// written, for exports downloaded into a scratch location.
	DeleteAfter bool `yaml:"delete_after"`
}

// Enabled reports whether the source is configured at all.
func (c FileConfig) Enabled() bool { return c.Path != "" }
