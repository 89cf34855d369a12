// Package gadm downloads administrative boundaries from the GADM
// geodata service as GeoJSON.
package gadm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"worldbookmap/lib/restyutil"
	"worldbookmap/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseUrl = "https://geodata.ucdavis.edu/gadm/gadm4.1/json"
	DefaultTimeout = time.Second * 30
)

type StatusError struct {
	Url    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d", e.Url, e.Status)
}

type Client struct {
	baseUrl string
	http    *resty.Client
}

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// defaults to DefaultTimeout
	Timeout time.Duration
	// optional, the underlying http client
	HttpClient *http.Client
	// optional, every exchange is recorded here
	Dump restyutil.InstrumentOutput
}

func NewClient(opts ClientOptions) *Client {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	client := resty.New()
	if opts.HttpClient != nil {
		client = resty.NewWithClient(opts.HttpClient)
	}
	client.SetTimeout(opts.Timeout)
	telemetry.InstrumentResty(client, "lib/gadm/http")
	restyutil.InstrumentClient(client, "gadm", opts.Dump)

	return &Client{
		baseUrl: strings.TrimSuffix(opts.BaseUrl, "/"),
		http:    client,
	}
}

// Identifier formats a boundary identity, ex. ("GBR", 1) -> "GBR_1".
func Identifier(code string, level int) string {
	return fmt.Sprintf("%s_%d", code, level)
}

func (c *Client) URL(code string, level int) string {
	return fmt.Sprintf("%s/gadm41_%s.json", c.baseUrl, Identifier(code, level))
}

// Download fetches the GeoJSON for one country at one administrative
// level. Anything but HTTP 200 is a *StatusError, the returned body is
// the response re-encoded compactly.
func (c *Client) Download(ctx context.Context, code string, level int) ([]byte, error) {
	url := c.URL(code, level)

	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != http.StatusOK {
		return nil, &StatusError{Url: url, Status: res.StatusCode()}
	}

	out := &bytes.Buffer{}
	err = json.Compact(out, res.Body())
	if err != nil {
		return nil, fmt.Errorf("GET %s: invalid json: %w", url, err)
	}
	return out.Bytes(), nil
}
