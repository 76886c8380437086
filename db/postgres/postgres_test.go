package postgres

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectRequiresURL(t *testing.T) {
	pg := NewPostgresDB("  ")
	defer pg.Disconnect()

	require.Error(t, pg.Connect())
	assert.Nil(t, pg.Conn)
}

func TestConnectFailureLeavesNoConnection(t *testing.T) {
	// nothing listens on port 1
	pg := NewPostgresDB("postgres://u:p@127.0.0.1:1/bills?sslmode=disable&connect_timeout=1")
	defer pg.Disconnect()

	require.Error(t, pg.Connect())
	assert.Nil(t, pg.Conn)
}

func TestConnect(t *testing.T) {
	url := os.Getenv("POSTGRES_TEST_URL")
	if url == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}
	pg := NewPostgresDB(url)
	require.NoError(t, pg.Connect())
	require.NoError(t, pg.Disconnect())
}
