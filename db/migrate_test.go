package db_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"transportbill/db"
	"transportbill/db/sqlite"
)

func TestRunMigrationsSQLiteIsRepeatable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bills.db")
	dsn := sqlite.DSN(path)

	require.NoError(t, db.RunMigrations(db.SQLite, dsn))
	require.NoError(t, db.RunMigrations(db.SQLite, dsn))

	conn := sqlite.NewSQLiteDB(path)
	require.NoError(t, conn.Connect())
	defer conn.Disconnect()

	for _, table := range []string{"bills", "consignments", "lookup_values"} {
		var name string
		err := conn.Conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestRunMigrationsMongoIsNoop(t *testing.T) {
	require.NoError(t, db.RunMigrations(db.Mongo, ""))
}

func TestRunMigrationsUnknownType(t *testing.T) {
	require.Error(t, db.RunMigrations(db.DBType("oracle"), "x"))
}
