package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"geoscope/internal/config"
)

func TestWatchErrorRearmsStream(t *testing.T) {
	m := New(config.Config{Watch: true}, zap.NewNop())

	path := filepath.Join(t.TempDir(), "d.geojson")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"Point","coordinates":[1,2]}`), 0o644))
	m.loadPath(path)
	require.Equal(t, path, m.selPath)
	m.armWatcher(path)
	require.NotNil(t, m.watcher)
	t.Cleanup(func() { m.watcher.Close() })

	// a stream error must not end live reload for the session
	next, cmd := m.Update(watchErrMsg{err: errors.New("stream hiccup")})
	assert.NotNil(t, cmd)
	assert.Contains(t, next.(Model).status, "watch error")
}

func TestWatchErrorWithoutLoadedFileStops(t *testing.T) {
	m := New(config.Config{}, zap.NewNop())
	_, cmd := m.Update(watchErrMsg{err: errors.New("stream hiccup")})
	assert.Nil(t, cmd)
}
