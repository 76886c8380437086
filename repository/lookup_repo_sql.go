package repository

import (
	"context"
	"database/sql"

	"transportbill/models"
)

type SQLLookupRepo struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLiteLookupRepo(db *sql.DB) *SQLLookupRepo {
	return &SQLLookupRepo{DB: db, Dialect: DialectSQLite}
}

func NewPostgresLookupRepo(db *sql.DB) *SQLLookupRepo {
	return &SQLLookupRepo{DB: db, Dialect: DialectPostgres}
}

// AddValue inserts the name unless the category already has it
func (r *SQLLookupRepo) AddValue(ctx context.Context, category models.LookupCategory, name string) error {
	category, err := models.ParseLookupCategory(string(category))
	if err != nil {
		return err
	}
	name, err = models.NormalizeLookupName(name)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, rebind(r.Dialect, `
		INSERT INTO lookup_values(category, name)
		VALUES(?, ?)
		ON CONFLICT(category, name) DO NOTHING
	`), string(category), name)
	return models.WrapStorage("add "+string(category), err)
}

// ListValues returns names in insertion order
func (r *SQLLookupRepo) ListValues(ctx context.Context, category models.LookupCategory) ([]string, error) {
	category, err := models.ParseLookupCategory(string(category))
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, rebind(r.Dialect, `
		SELECT name FROM lookup_values WHERE category = ? ORDER BY id
	`), string(category))
	if err != nil {
		return nil, models.WrapStorage("list "+string(category), err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, models.WrapStorage("list "+string(category), err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, models.WrapStorage("list "+string(category), err)
	}
	return names, nil
}
