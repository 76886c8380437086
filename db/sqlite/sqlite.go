package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteDB is the single-file store used by the desktop install.
type SQLiteDB struct {
	Conn   *sql.DB
	Ctx    context.Context
	Cancel context.CancelFunc
	Path   string
}

func NewSQLiteDB(path string) *SQLiteDB {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	return &SQLiteDB{
		Ctx:    ctx,
		Cancel: cancel,
		Path:   path,
	}
}

// DSN builds the modernc connection string: WAL journal, enforced foreign
// keys (items cascade with their bill) and immediate write transactions.
func DSN(path string) string {
	return filepath.Clean(path) +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=foreign_keys(1)" +
		"&_pragma=busy_timeout(5000)" +
		"&_txlock=immediate" +
		"&_time_format=sqlite"
}

func (s *SQLiteDB) Connect() error {
	if strings.TrimSpace(s.Path) == "" {
		return fmt.Errorf("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("creating db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", DSN(s.Path))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	if err := conn.PingContext(s.Ctx); err != nil {
		_ = conn.Close()
		return fmt.Errorf("pinging database: %w", err)
	}

	s.Conn = conn
	return nil
}

func (s *SQLiteDB) Disconnect() error {
	s.Cancel()
	if s.Conn != nil {
		return s.Conn.Close()
	}
	return nil
}

func (s *SQLiteDB) GetContext() context.Context {
	return s.Ctx
}
