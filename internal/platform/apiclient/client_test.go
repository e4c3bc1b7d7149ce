package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) Config {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.Token = "secret"
	return cfg
}

func TestClientGetDecodesJSONAndSendsHeaders(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/plans", r.URL.Path)
		assert.Equal(t, "monthly", r.URL.Query().Get("period"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "fr", r.Header.Get("Accept-Language"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_ = json.NewEncoder(w).Encode([]map[string]string{{"id": "team"}})
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL + "/api"))
	require.NoError(t, err)

	var out []map[string]string
	require.NoError(t, client.Get(context.Background(), "/v1/plans?period=monthly", LanguageHeader("fr"), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "team", out[0]["id"])
}

func TestClientPostSendsBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Atlas", body["name"])
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"p1","name":"Atlas"}`))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	require.NoError(t, err)

	var out map[string]string
	require.NoError(t, client.Post(context.Background(), "/v1/projects", map[string]string{"name": "Atlas"}, nil, &out))
	assert.Equal(t, "p1", out["id"])
}

func TestClientReturnsStatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"email is invalid"}`))
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL))
	require.NoError(t, err)

	err = client.Post(context.Background(), "/v1/newsletter/subscriptions", map[string]string{"email": "x"}, nil, nil)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.StatusCode)
	assert.Equal(t, "email is invalid", statusErr.Message)
	assert.False(t, IsTransient(err))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusCode(err))
}

func TestClientOpensCircuitAfterServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL), WithBreakerSettings(func(name string) gobreaker.Settings {
		settings := defaultBreakerSettings(name)
		settings.Timeout = time.Minute
		settings.ReadyToTrip = func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 2
		}
		return settings
	}))
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		err := client.Get(ctx, "/v1/account", nil, nil)
		assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
	}
	err = client.Get(ctx, "/v1/account", nil, nil)
	assert.True(t, errors.Is(err, ErrCircuitOpen), "err = %v", err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientIgnoresClientErrorsForBreaker(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := NewClient(testConfig(srv.URL), WithBreakerSettings(func(name string) gobreaker.Settings {
		settings := defaultBreakerSettings(name)
		settings.ReadyToTrip = func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 1
		}
		return settings
	}))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		err := client.Get(context.Background(), "/v1/missing", nil, nil)
		assert.Equal(t, http.StatusNotFound, StatusCode(err))
	}
}

func TestNewClientRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.BaseURL = "not a url"
	_, err := NewClient(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FRONTPAGE_API_BASE_URL")
}
