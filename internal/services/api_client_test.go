package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClientWithConfig(DefaultClientConfig(baseURL))
}

func TestClientPost_SendsJSONAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "yes", r.Header.Get("X-Extra"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "world", body["hello"])

		_, _ = w.Write([]byte(`{"answer":42}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	defer client.Close()

	var out struct {
		Answer int `json:"answer"`
	}
	err := client.Post(context.Background(), "/models", map[string]string{"hello": "world"}, &out, &RequestOptions{
		Headers: map[string]string{"X-Extra": "yes"},
	})
	require.NoError(t, err)
	assert.Equal(t, 42, out.Answer)
}

func TestClientPost_SingleAttemptOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Post(context.Background(), "", nil, nil, nil)
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "boom")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientPost_RequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	defer client.Close()

	var out map[string]any
	err := client.Post(context.Background(), "", nil, &out, &RequestOptions{
		Timeout: 20 * time.Millisecond,
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClientPost_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	var out map[string]any
	err := newTestClient(srv.URL).Post(context.Background(), "", map[string]int{}, &out, nil)
	assert.ErrorContains(t, err, "error unmarshaling response")
}
