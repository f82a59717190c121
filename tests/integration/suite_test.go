//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/flowgrid/flowfs/internal/config"
	"github.com/flowgrid/flowfs/internal/server"
)

// server.New registers collectors on the default Prometheus registry,
// so the whole binary shares one instance.
var (
	serverOnce sync.Once
	sharedSrv  *httptest.Server
	serverErr  error
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	serverOnce.Do(func() {
		workDir, err := os.MkdirTemp("", "flowfs-integration-")
		if err != nil {
			serverErr = err
			return
		}

		cfg := config.Default()
		cfg.FS.WorkDir = workDir
		// Rate limiting is exercised separately; here it would just make
		// request counts flaky.
		cfg.RateLimit.Enabled = false

		srv, err := server.New(cfg, zap.NewNop())
		if err != nil {
			serverErr = err
			return
		}
		sharedSrv = httptest.NewServer(srv.Handler())
	})
	if serverErr != nil {
		t.Fatalf("Failed to start server: %v", serverErr)
	}
	return sharedSrv
}

// getJSON performs a GET and decodes the JSON response body.
func getJSON(t *testing.T, srv *httptest.Server, path string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

// postJSON performs a POST and decodes the JSON response body. A string
// payload is sent raw, anything else is marshalled.
func postJSON(t *testing.T, srv *httptest.Server, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reqBody []byte
	if raw, ok := payload.(string); ok {
		reqBody = []byte(raw)
	} else {
		var err error
		reqBody, err = json.Marshal(payload)
		require.NoError(t, err)
	}

	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(reqBody))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

// executeTool runs one tool over HTTP and returns the result envelope.
func executeTool(t *testing.T, srv *httptest.Server, toolID, workDir string, params map[string]interface{}) map[string]interface{} {
	t.Helper()
	status, body := postJSON(t, srv, "/services/execute", map[string]interface{}{
		"tool_id":  toolID,
		"params":   params,
		"work_dir": workDir,
	})
	require.Equal(t, http.StatusOK, status)
	return body
}

// mustExecuteData runs one tool over HTTP, requires success and returns
// the data record.
func mustExecuteData(t *testing.T, srv *httptest.Server, toolID, workDir string, params map[string]interface{}) map[string]interface{} {
	t.Helper()
	body := executeTool(t, srv, toolID, workDir, params)
	require.Equal(t, true, body["success"], "tool %s should succeed: %v", toolID, body["error"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "tool %s should return a data record", toolID)
	return data
}

// dialStream opens a WebSocket connection to the event stream.
func dialStream(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readEvent reads one JSON message from the stream.
func readEvent(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))

	var event map[string]interface{}
	require.NoError(t, conn.ReadJSON(&event))
	return event
}
