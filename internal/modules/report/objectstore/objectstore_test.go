package objectstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcfg "github.com/sheetbrief/core/internal/config"
)

func newTestClient(endpoint string) *Client {
	return New(appcfg.StorageOptions{
		Endpoint:        endpoint,
		Region:          "us-east-1",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
	})
}

func TestFetch(t *testing.T) {
	t.Run("downloads the object", func(t *testing.T) {
		content := []byte{0x50, 0x4b, 0x03, 0x04, 0x01, 0x02}
		var gotPath string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Header().Set("Content-Type", "application/octet-stream")
			w.Write(content)
		}))
		defer srv.Close()

		data, err := newTestClient(srv.URL).Fetch(context.Background(), "reports", "monthly.xlsx")
		require.NoError(t, err)
		assert.Equal(t, content, data)
		// Path style keeps the bucket in the URL path.
		assert.Equal(t, "/reports/monthly.xlsx", gotPath)
	})

	t.Run("missing key is flagged as not found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `<?xml version="1.0"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Fetch(context.Background(), "reports", "missing.xlsx")
		require.Error(t, err)

		var rerr *RetrievalError
		require.ErrorAs(t, err, &rerr)
		assert.True(t, rerr.NotFound)
		assert.Equal(t, "reports", rerr.Bucket)
		assert.Equal(t, "missing.xlsx", rerr.Key)
	})

	t.Run("access denied is not treated as missing", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			io.WriteString(w, `<?xml version="1.0"?><Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Fetch(context.Background(), "reports", "monthly.xlsx")
		require.Error(t, err)

		var rerr *RetrievalError
		require.ErrorAs(t, err, &rerr)
		assert.False(t, rerr.NotFound)
	})
}
