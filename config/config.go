package config

import (
	"fmt"
	"log/slog"
	"net"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"transportbill/db"
	"transportbill/models"
)

type Config struct {
	DBType        string `envconfig:"DB_TYPE" default:"sqlite"`
	SQLitePath    string `envconfig:"SQLITE_PATH" default:"./data/bills.db"`
	PostgresURL   string `envconfig:"POSTGRES_URL"`
	MongoURL      string `envconfig:"MONGO_URL"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"transportbill"`

	Host string `envconfig:"HOST" default:"127.0.0.1"`
	Port string `envconfig:"PORT" default:"8080"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	PDFDir      string   `envconfig:"PDF_DIR" default:"./pdfs"`
	PrintCopies []string `envconfig:"PRINT_COPIES" default:"Original"`

	CompanyName    string `envconfig:"COMPANY_NAME"`
	CompanyAddress string `envconfig:"COMPANY_ADDRESS"`
	CompanyGSTIN   string `envconfig:"COMPANY_GSTIN"`
	// comma separated, each "number" or "number:label"
	CompanyPhone string `envconfig:"COMPANY_PHONE"`
}

// LoadConfig reads .env (when present) and then the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using system environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch db.DBType(c.DBType) {
	case db.SQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("SQLITE_PATH is required for DB_TYPE=sqlite")
		}
	case db.Postgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL is required for DB_TYPE=postgres")
		}
	case db.Mongo:
		if c.MongoURL == "" {
			return fmt.Errorf("MONGO_URL is required for DB_TYPE=mongo")
		}
	default:
		return fmt.Errorf("DB_TYPE %q not supported", c.DBType)
	}
	return nil
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Issuer is the company block printed on every bill.
func (c *Config) Issuer() models.Issuer {
	issuer := models.Issuer{
		CompanyName: c.CompanyName,
		Address:     c.CompanyAddress,
		GSTIN:       c.CompanyGSTIN,
	}
	for _, entry := range strings.Split(c.CompanyPhone, ",") {
		number, label, _ := strings.Cut(strings.TrimSpace(entry), ":")
		if number = strings.TrimSpace(number); number == "" {
			continue
		}
		issuer.Mobile = append(issuer.Mobile, models.MobileEntry{Number: number, Label: strings.TrimSpace(label)})
	}
	return issuer
}
