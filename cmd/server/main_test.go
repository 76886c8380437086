package main

import (
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReturnsListenError(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()
	_, port, err := net.SplitHostPort(busy.Addr().String())
	require.NoError(t, err)

	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "bills.db"))
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", port)

	err = run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}

func TestRunReturnsConfigError(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_TYPE", "oracle")

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
