package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"audiodesk/app"
	"audiodesk/config"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// TestHelper provides utilities for testing the audiodesk server
type TestHelper struct {
	Server      *httptest.Server
	App         *app.App
	LibraryDir  string
	SettingsDir string
	cancel      context.CancelFunc
}

// NewTestHelper creates a new test helper with a temporary library
func NewTestHelper(t *testing.T) *TestHelper {
	base := t.TempDir()

	cfg := &config.Config{
		Host:         "127.0.0.1",
		LogLevel:     "info",
		LibraryPath:  filepath.Join(base, "library"),
		SettingsPath: filepath.Join(base, "settings", "settings.json"),
		CORSOrigins:  []string{"tauri://localhost", "http://localhost:1420"},
		GinMode:      gin.TestMode,
	}

	a, err := app.New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	a.Start(ctx)

	helper := &TestHelper{
		Server:      httptest.NewServer(NewRouter(a)),
		App:         a,
		LibraryDir:  cfg.LibraryPath,
		SettingsDir: filepath.Dir(cfg.SettingsPath),
		cancel:      cancel,
	}

	helper.CreateTestFile(t, "Test Artist/Test Album/01 - First.mp3", createMinimalMP3File())
	helper.CreateTestFile(t, "Test Artist/Test Album/02 - Second.flac", createMinimalFLACFile())
	helper.CreateTestFile(t, "Test Artist/notes.txt", []byte("not audio"))

	return helper
}

// Cleanup cleans up test resources
func (h *TestHelper) Cleanup(t *testing.T) {
	if h.Server != nil {
		h.Server.Close()
	}
	h.cancel()
}

// createMinimalFLACFile returns a FLAC stream marker followed by padding
func createMinimalFLACFile() []byte {
	return append([]byte("fLaC"), make([]byte, 60)...)
}

// createMinimalMP3File returns an ID3v2 header followed by padding
func createMinimalMP3File() []byte {
	header := []byte{'I', 'D', '3', 0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	return append(header, bytes.Repeat([]byte{0xFF}, 118)...)
}

// CreateTestFile writes a file into the test library
func (h *TestHelper) CreateTestFile(t *testing.T, relativePath string, content []byte) {
	fullPath := filepath.Join(h.LibraryDir, filepath.FromSlash(relativePath))
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
	require.NoError(t, os.WriteFile(fullPath, content, 0644))
}

// MakeRequest sends a request with an optional JSON body
func (h *TestHelper) MakeRequest(t *testing.T, method, path string, body interface{}) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, h.Server.URL+path, reqBody)
	require.NoError(t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	return resp
}

// GetJSON performs a GET and decodes the response into target
func (h *TestHelper) GetJSON(t *testing.T, path string, target interface{}) *http.Response {
	return h.decode(t, h.MakeRequest(t, http.MethodGet, path, nil), target)
}

// PostJSON performs a POST and decodes the response into target
func (h *TestHelper) PostJSON(t *testing.T, path string, requestBody interface{}, target interface{}) *http.Response {
	return h.decode(t, h.MakeRequest(t, http.MethodPost, path, requestBody), target)
}

// Invoke calls a bridge command over HTTP
func (h *TestHelper) Invoke(t *testing.T, command string, args interface{}, target interface{}) *http.Response {
	return h.PostJSON(t, "/api/invoke/"+command, args, target)
}

func (h *TestHelper) decode(t *testing.T, resp *http.Response, target interface{}) *http.Response {
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer resp.Body.Close()

	if target != nil {
		require.NoError(t, json.Unmarshal(body, target), "body: %s", body)
	}

	return resp
}

// ConnectWebSocket dials a WebSocket endpoint on the test server
func (h *TestHelper) ConnectWebSocket(t *testing.T, path string) *websocket.Conn {
	wsURL := "ws" + h.Server.URL[4:] + path // Replace http:// with ws://

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	return conn
}
