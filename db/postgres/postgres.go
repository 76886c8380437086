package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// PostgresDB is the shared-server alternative to the sqlite file.
type PostgresDB struct {
	Conn   *sql.DB
	Ctx    context.Context
	Cancel context.CancelFunc
	URL    string
}

func NewPostgresDB(url string) *PostgresDB {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	return &PostgresDB{
		Ctx:    ctx,
		Cancel: cancel,
		URL:    url,
	}
}

func (p *PostgresDB) Connect() error {
	if strings.TrimSpace(p.URL) == "" {
		return fmt.Errorf("postgres url is required")
	}

	conn, err := sql.Open("postgres", p.URL)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	// A single clerk never needs more than a handful of connections.
	conn.SetMaxOpenConns(5)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(30 * time.Minute)

	if err := conn.PingContext(p.Ctx); err != nil {
		_ = conn.Close()
		return fmt.Errorf("pinging database: %w", err)
	}

	p.Conn = conn
	return nil
}

func (p *PostgresDB) Disconnect() error {
	p.Cancel()
	if p.Conn != nil {
		return p.Conn.Close()
	}
	return nil
}

func (p *PostgresDB) GetContext() context.Context {
	return p.Ctx
}
