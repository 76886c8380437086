package db

import "context"

type DBType string

const (
	SQLite   DBType = "sqlite"
	Postgres DBType = "postgres"
	Mongo    DBType = "mongo"
)

type DB interface {
	Connect() error
	Disconnect() error
	GetContext() context.Context
}
