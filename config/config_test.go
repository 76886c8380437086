package config

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transportbill/models"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"DB_TYPE", "SQLITE_PATH", "HOST", "PORT", "PDF_DIR", "PRINT_COPIES", "LOG_FORMAT", "MONGO_DATABASE"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, "./data/bills.db", cfg.SQLitePath)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, []string{"Original"}, cfg.PrintCopies)
	assert.Equal(t, "transportbill", cfg.MongoDatabase)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("POSTGRES_URL", "postgres://u:p@localhost:5432/bills?sslmode=disable")
	t.Setenv("PORT", "9090")
	t.Setenv("PRINT_COPIES", "Consignor Copy,Office Copy")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBType)
	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
	assert.Equal(t, []string{"Consignor Copy", "Office Copy"}, cfg.PrintCopies)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"sqlite", Config{DBType: "sqlite", SQLitePath: "bills.db"}, false},
		{"sqlite without path", Config{DBType: "sqlite"}, true},
		{"postgres without url", Config{DBType: "postgres"}, true},
		{"postgres", Config{DBType: "postgres", PostgresURL: "postgres://x"}, false},
		{"mongo without url", Config{DBType: "mongo"}, true},
		{"mongo", Config{DBType: "mongo", MongoURL: "mongodb://x"}, false},
		{"unknown", Config{DBType: "oracle"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIssuer(t *testing.T) {
	cfg := Config{
		CompanyName:  "Hari Om Transport",
		CompanyPhone: "9800000000:Office, 9811111111 ,",
	}
	got := cfg.Issuer()
	assert.Equal(t, "Hari Om Transport", got.CompanyName)
	assert.Equal(t, []models.MobileEntry{
		{Number: "9800000000", Label: "Office"},
		{Number: "9811111111"},
	}, got.Mobile)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{LogFormat: "json", LogLevel: "info"}, &buf)
	logger.Debug("hidden")
	logger.Info("bill committed", "bill_id", 7)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"bill_id":7`)

	debug := NewLogger(&Config{LogLevel: "debug"}, &buf)
	assert.True(t, debug.Enabled(context.Background(), slog.LevelDebug))
}
