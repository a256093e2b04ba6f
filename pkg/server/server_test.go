package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Egham-7/models-helper/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func offlineConfig(t *testing.T) *config.Config {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	cfg := config.Defaults()
	cfg.Catalog.Endpoint = endpoint
	cfg.Catalog.TimeoutMs = 200
	return cfg
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)

	cfg := config.Defaults()
	cfg.Server.Transport = "carrier-pigeon"
	_, err = New(cfg)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestRunStdio_ServesMCP(t *testing.T) {
	srv, err := New(offlineConfig(t))
	require.NoError(t, err)

	in, inWriter := io.Pipe()
	out := &syncBuffer{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- srv.runStdio(ctx, in, out)
	}()

	_, err = io.WriteString(inWriter,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`+"\n"+
			`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"list_available_models","arguments":{}}}`+"\n")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Mistral-small")
	}, 5*time.Second, 20*time.Millisecond)
	assert.Contains(t, out.String(), `"name":"Model Helper"`)

	cancel()
	_ = inWriter.Close()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("stdio transport did not stop")
	}
}

func TestHTTPRoutes(t *testing.T) {
	cfg := offlineConfig(t)
	cfg.Server.Transport = "http"
	srv, err := New(cfg)
	require.NoError(t, err)

	app := createFiberApp(cfg)
	setupRoutes(app, cfg, srv.mcp, srv.cache)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(fiber.MethodPost, "/mcp", strings.NewReader(
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err = app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Model Helper")
}

func TestHTTPRoutes_RefusesEventStream(t *testing.T) {
	cfg := offlineConfig(t)
	cfg.Server.Transport = "http"
	srv, err := New(cfg)
	require.NoError(t, err)

	app := createFiberApp(cfg)
	setupRoutes(app, cfg, srv.mcp, srv.cache)

	initReq := httptest.NewRequest(fiber.MethodPost, "/mcp", strings.NewReader(
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`))
	initReq.Header.Set("Content-Type", "application/json")
	initReq.Header.Set("Accept", "application/json, text/event-stream")
	initResp, err := app.Test(initReq, 5000)
	require.NoError(t, err)
	_ = initResp.Body.Close()
	require.Equal(t, fiber.StatusOK, initResp.StatusCode)

	req := httptest.NewRequest(fiber.MethodGet, "/mcp", nil)
	req.Header.Set("Accept", "text/event-stream")
	if sessionID := initResp.Header.Get("Mcp-Session-Id"); sessionID != "" {
		req.Header.Set("Mcp-Session-Id", sessionID)
	}

	resp, err := app.Test(req, 2000)
	require.NoError(t, err, "GET must answer instead of holding the connection")
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "POST, DELETE", resp.Header.Get(fiber.HeaderAllow))
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	cfg := offlineConfig(t)
	cfg.Server.Transport = "http"
	cfg.Server.Port = "0"
	srv, err := New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}

	// idle connections are released; the fetcher still works afterwards
	assert.Len(t, srv.cache.GetModels(context.Background()), 8)
}
