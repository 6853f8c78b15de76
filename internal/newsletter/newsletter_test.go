package newsletter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/cfshr/aur/pkg/errors"
	"github.com/cfshr/aur/pkg/httpclient"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestClient(baseURL string) *Client {
	hc := httpclient.New(httpclient.Config{
		Timeout:         5 * time.Second,
		MaxRetries:      0,
		MaxConnsPerHost: 10,
	})
	cb := httpclient.NewCircuitBreakerClient(hc, httpclient.DefaultCircuitBreakerConfig("newsletter-test"), testLogger())
	return NewClient(cb, baseURL, "ml-key", "group-42", testLogger())
}

func TestSubscribe_Success(t *testing.T) {
	var gotPath, gotAPIKey string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("X-MailerLite-ApiKey")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Subscribe(context.Background(), "ada@example.com", "jeweler_waitlist_popup")
	require.NoError(t, err)

	assert.Equal(t, "/api/v2/groups/group-42/subscribers", gotPath)
	assert.Equal(t, "ml-key", gotAPIKey)
	assert.Equal(t, "ada@example.com", gotBody["email"])
	assert.Equal(t, map[string]any{"source": "jeweler_waitlist_popup"}, gotBody["fields"])
}

func TestSubscribe_EmptySourceOmitsFields(t *testing.T) {
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Subscribe(context.Background(), "ada@example.com", "")
	require.NoError(t, err)

	assert.NotContains(t, gotBody, "fields")
}

func TestSubscribe_ProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Subscribe(context.Background(), "ada@example.com", "footer")
	assert.True(t, errors.Is(err, apperrors.ErrUnavailable))
}

func TestSubscribe_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Subscribe(context.Background(), "not-an-email", "footer")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}
