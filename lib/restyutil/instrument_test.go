package restyutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type memoryOutput map[string]string

func (m memoryOutput) Write(id, contents string) {
	m[id] = contents
}

func TestInstrumentClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/cover.jpg" {
			w.Header().Set("Content-Type", "image/jpeg")
			w.Write([]byte{0xff, 0xd8, 0xff})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"totalItems":0}`))
	}))
	defer srv.Close()

	out := memoryOutput{}
	client := resty.New()
	InstrumentClient(client, "books", out)

	_, err := client.R().Get(srv.URL + "/volumes")
	require.NoError(t, err)
	_, err = client.R().Get(srv.URL + "/cover.jpg")
	require.NoError(t, err)

	require.Len(t, out, 2)
	require.Contains(t, out["books-0001"], `{"totalItems":0}`)
	require.Contains(t, out["books-0002"], "<3 bytes of image/jpeg>")
}

func TestInstrumentClientNilOutput(t *testing.T) {
	client := resty.New()
	require.NotPanics(t, func() { InstrumentClient(client, "gadm", nil) })
}

func TestFilesystemOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dump")
	out, err := NewFilesystemOutput(dir)
	require.NoError(t, err)

	out.Write("gadm-0001", "contents")

	written, err := os.ReadFile(filepath.Join(dir, "gadm-0001.txt"))
	require.NoError(t, err)
	require.Equal(t, "contents", string(written))
}
