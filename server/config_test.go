package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	confFile := filepath.Join(dir, "rawpix.conf")
	conf := `
bind = "127.0.0.1:4447"
log_level = "DEBUG"
cache_max_age = 600

[library]
path = "` + dir + `"

[preview]
quality = 70
half_size = false

[limits]
max_requests = 50
request_timeout = "10s"
`
	require.NoError(t, os.WriteFile(confFile, []byte(conf), 0o644))

	cf, err := NewConfigFromFile(confFile, "")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:4447", cf.Bind)
	assert.Equal(t, 600, cf.CacheMaxAge)
	assert.Equal(t, 70, cf.Preview.Quality)
	assert.False(t, cf.Preview.HalfSize)
	assert.Equal(t, 50, cf.Limits.MaxRequests)

	// Defaults survive a partial file.
	assert.Equal(t, 5000, cf.Limits.BacklogSize)

	require.NoError(t, cf.Apply())
	assert.Equal(t, 10*time.Second, cf.Limits.RequestTimeout)
}

func TestNewConfigFromFileMissing(t *testing.T) {
	_, err := NewConfigFromFile("", "")
	assert.Equal(t, ErrNoConfigFile, err)
}

func TestApplyRequiresLibrary(t *testing.T) {
	cf := NewConfig()
	assert.Equal(t, ErrNoLibraryPath, cf.Apply())

	cf.Library.Path = filepath.Join(t.TempDir(), "nope")
	assert.Error(t, cf.Apply())
}
