package gadm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	client := NewClient(ClientOptions{})
	require.Equal(
		t,
		"https://geodata.ucdavis.edu/gadm/gadm4.1/json/gadm41_GBR_1.json",
		client.URL("GBR", 1),
	)

	client = NewClient(ClientOptions{BaseUrl: "http://localhost:9000/json/"})
	require.Equal(t, "http://localhost:9000/json/gadm41_IRL_0.json", client.URL("IRL", 0))
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/gadm41_IRL_0.json":
			w.Write([]byte("{\n  \"type\": \"FeatureCollection\",\n  \"features\": []\n}"))
		case "/gadm41_BAD_0.json":
			w.Write([]byte("<html>"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(ClientOptions{BaseUrl: srv.URL})
	ctx := context.Background()

	body, err := client.Download(ctx, "IRL", 0)
	require.NoError(t, err)
	require.Equal(t, `{"type":"FeatureCollection","features":[]}`, string(body))

	_, err = client.Download(ctx, "XXX", 0)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusNotFound, statusErr.Status)
	require.Equal(t, srv.URL+"/gadm41_XXX_0.json", statusErr.Url)

	_, err = client.Download(ctx, "BAD", 0)
	require.ErrorContains(t, err, "invalid json")
}

func TestDownloadTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	client := NewClient(ClientOptions{BaseUrl: srv.URL, Timeout: time.Millisecond * 50})
	_, err := client.Download(context.Background(), "IRL", 0)
	require.Error(t, err)
}
