package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"audiodesk/app"
	"audiodesk/bridge"
	"audiodesk/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AUDIODESK_LIBRARY", filepath.Join(dir, "library"))
	t.Setenv("AUDIODESK_SETTINGS", filepath.Join(dir, "settings.json"))

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--env-file", filepath.Join(dir, "missing.env")))

	err := root.Execute()
	return out.String(), err
}

func TestInvokeSubcommand(t *testing.T) {
	out, err := runRoot(t, "invoke", "get_audio_metadata", `{"filePath":"/music/song.mp3"}`)
	require.NoError(t, err)

	var metadata map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &metadata))
	assert.Equal(t, "song.mp3", metadata["title"])
	assert.Equal(t, "Unknown Artist", metadata["artist"])
	assert.Equal(t, "Unknown Album", metadata["album"])
	assert.Equal(t, float64(0), metadata["duration"])
	assert.Equal(t, "/music/song.mp3", metadata["file_path"])
}

func TestInvokeSubcommandErrors(t *testing.T) {
	_, err := runRoot(t, "invoke", "get_audio_metadata")
	require.Error(t, err)
	assert.True(t, errors.Is(err, bridge.ErrBadArgs))

	_, err = runRoot(t, "invoke", "nope", "{}")
	assert.True(t, errors.Is(err, bridge.ErrUnknownCommand))

	_, err = runRoot(t, "invoke")
	assert.Error(t, err)
}

func TestCommandsSubcommand(t *testing.T) {
	out, err := runRoot(t, "commands")
	require.NoError(t, err)
	assert.Contains(t, out, "get_audio_metadata\n")
	assert.Contains(t, out, "toggle_repeat\n")
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

// TestRunServerShutsDown starts the real server and stops it through the context
func TestRunServerShutsDown(t *testing.T) {
	dir := t.TempDir()
	port := freePort(t)

	a, err := app.New(&config.Config{
		Host:         "127.0.0.1",
		Port:         port,
		LogLevel:     "info",
		LibraryPath:  dir,
		SettingsPath: filepath.Join(dir, "settings.json"),
		GinMode:      gin.TestMode,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- RunServer(ctx, a) }()

	url := "http://127.0.0.1:" + strconv.Itoa(port) + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
