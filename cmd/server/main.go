package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"transportbill/config"
	"transportbill/db"
	"transportbill/db/mongo"
	"transportbill/db/postgres"
	"transportbill/db/sqlite"
	"transportbill/handlers"
	"transportbill/repository"
	"transportbill/routes"
	"transportbill/workingbill"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// run returns only after the store is disconnected.
func run() error {
	// Load config from .env or the environment
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	slog.SetDefault(config.NewLogger(cfg, os.Stdout))

	var store db.DB
	var ledger repository.BillLedger
	var lookups repository.LookupStore

	switch db.DBType(cfg.DBType) {
	case db.SQLite:
		lite := sqlite.NewSQLiteDB(cfg.SQLitePath)
		if err := lite.Connect(); err != nil {
			return fmt.Errorf("sqlite connect: %w", err)
		}
		store = lite
		defer store.Disconnect()
		if err := db.RunMigrations(db.SQLite, sqlite.DSN(cfg.SQLitePath)); err != nil {
			return fmt.Errorf("sqlite migrations: %w", err)
		}

		ledger = repository.NewSQLiteLedgerRepo(lite.Conn)
		lookups = repository.NewSQLiteLookupRepo(lite.Conn)

	case db.Postgres:
		if err := db.RunMigrations(db.Postgres, cfg.PostgresURL); err != nil {
			return fmt.Errorf("postgres migrations: %w", err)
		}
		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			return fmt.Errorf("postgres connect: %w", err)
		}
		store = pg
		defer store.Disconnect()

		ledger = repository.NewPostgresLedgerRepo(pg.Conn)
		lookups = repository.NewPostgresLookupRepo(pg.Conn)

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL, cfg.MongoDatabase)
		if err := mg.Connect(); err != nil {
			return fmt.Errorf("mongo connect: %w", err)
		}
		store = mg
		defer store.Disconnect()

		mongoLookups := repository.NewMongoLookupRepo(mg.DB())
		if err := mongoLookups.EnsureIndexes(context.Background()); err != nil {
			return fmt.Errorf("mongo indexes: %w", err)
		}
		ledger = repository.NewMongoLedgerRepo(mg.DB())
		lookups = mongoLookups
	}

	viewer := repository.NewBillViewRepository(ledger)
	printHandler := &handlers.PrintHandler{
		Viewer:   viewer,
		Issuer:   cfg.Issuer(),
		Copies:   cfg.PrintCopies,
		SavePath: cfg.PDFDir,
	}

	router := routes.SetupRoutes(
		&handlers.LookupHandler{Repo: lookups},
		&handlers.BillHandler{Ledger: ledger, Viewer: viewer},
		printHandler,
		&handlers.DraftHandler{
			Draft:   workingbill.New(),
			Ledger:  ledger,
			Viewer:  viewer,
			Printer: printHandler,
		},
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", srv.Addr, "db", cfg.DBType)
		serveErr <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("server stopped")
	return nil
}
