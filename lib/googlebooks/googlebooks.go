// Package googlebooks queries the Google Books volumes API for cover
// thumbnails.
package googlebooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"worldbookmap/lib/restyutil"
	"worldbookmap/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseUrl = "https://www.googleapis.com/books/v1"
	DefaultTimeout = time.Second * 10

	// appended to thumbnail urls, asks for a 200px wide image
	ThumbnailSizeHint = "&fife=w200"
)

var ErrImageDownload = errors.New("image download failed")

type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}

type VolumeInfo struct {
	Title      string      `json:"title"`
	Authors    []string    `json:"authors"`
	ImageLinks *ImageLinks `json:"imageLinks"`
}

type Volume struct {
	Id         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

type VolumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

// ThumbnailURL returns the https thumbnail url of a volume with the size
// hint appended, or "" when the volume has no thumbnail.
func ThumbnailURL(info VolumeInfo) string {
	if info.ImageLinks == nil || info.ImageLinks.Thumbnail == "" {
		return ""
	}
	thumbnail := strings.ReplaceAll(info.ImageLinks.Thumbnail, "http://", "https://")
	return thumbnail + ThumbnailSizeHint
}

type Client struct {
	baseUrl string
	key     string
	http    *resty.Client
}

type ClientOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// optional api key, sent as the `key` query parameter
	Key string
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
	telemetry.InstrumentResty(client, "lib/googlebooks/http")
	restyutil.InstrumentClient(client, "googlebooks", opts.Dump)

	return &Client{
		baseUrl: strings.TrimSuffix(opts.BaseUrl, "/"),
		key:     opts.Key,
		http:    client,
	}
}

// LookupISBN searches volumes by isbn. A non-2xx status or a malformed
// body is an error.
func (c *Client) LookupISBN(ctx context.Context, isbn string) (VolumesResponse, error) {
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("q", "isbn:"+isbn)
	if c.key != "" {
		req.SetQueryParam("key", c.key)
	}

	res, err := req.Get(c.baseUrl + "/volumes")
	if err != nil {
		return VolumesResponse{}, redactError(err)
	}
	if !res.IsSuccess() {
		requestUrl := res.Request.URL
		if res.Request.RawRequest != nil {
			requestUrl = redact(res.Request.RawRequest.URL)
		}
		return VolumesResponse{}, fmt.Errorf("%s for url: %s", res.Status(), requestUrl)
	}

	var out VolumesResponse
	err = json.Unmarshal(res.Body(), &out)
	if err != nil {
		return VolumesResponse{}, fmt.Errorf("decode volumes for isbn %s: %w", isbn, err)
	}
	return out, nil
}

// redact returns `u` without the api key so it can be put in errors,
// which end up in the failure log.
func redact(u *url.URL) string {
	query := u.Query()
	if !query.Has("key") {
		return u.String()
	}
	query.Del("key")
	clean := *u
	clean.RawQuery = query.Encode()
	return clean.String()
}

// transport errors from net/http carry the full request url
func redactError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	parsed, parseErr := url.Parse(urlErr.URL)
	if parseErr != nil {
		return err
	}
	urlErr.URL = redact(parsed)
	return err
}

// DownloadImage fetches an image, the response must be HTTP 200 with an
// image content type, otherwise ErrImageDownload is returned.
// Transport errors are returned as-is.
func (c *Client) DownloadImage(ctx context.Context, url string) ([]byte, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, err
	}

	contentType := res.Header().Get("Content-Type")
	if res.StatusCode() != http.StatusOK || !strings.Contains(contentType, "image") {
		return nil, fmt.Errorf(
			"%w: HTTP %d, content type %q",
			ErrImageDownload, res.StatusCode(), contentType,
		)
	}
	return res.Body(), nil
}
