package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagePIDFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chess.pid")

	cleanup, err := managePIDFile(path, true)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), strings.TrimSpace(string(data)))

	// Our own PID is alive, so a second locked instance is refused
	_, err = managePIDFile(path, true)
	assert.Error(t, err)

	cleanup()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestCheckStalePID(t *testing.T) {
	dir := t.TempDir()

	corrupt := filepath.Join(dir, "corrupt.pid")
	require.NoError(t, os.WriteFile(corrupt, []byte("abc\n"), 0644))
	assert.Error(t, checkStalePID(corrupt))

	empty := filepath.Join(dir, "empty.pid")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	assert.NoError(t, checkStalePID(empty))
}
