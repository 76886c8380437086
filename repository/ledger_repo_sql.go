package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"transportbill/models"
)

// Dialect selects the placeholder style of a database/sql backend.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// rebind rewrites ? placeholders to $n for Postgres.
func rebind(d Dialect, query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

type SQLLedgerRepo struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLiteLedgerRepo(db *sql.DB) *SQLLedgerRepo {
	return &SQLLedgerRepo{DB: db, Dialect: DialectSQLite}
}

func NewPostgresLedgerRepo(db *sql.DB) *SQLLedgerRepo {
	return &SQLLedgerRepo{DB: db, Dialect: DialectPostgres}
}

func (r *SQLLedgerRepo) q(query string) string {
	return rebind(r.Dialect, query)
}

// ------------------------ Helper Functions ------------------------

// Insert bill header
func (r *SQLLedgerRepo) insertBillMain(ctx context.Context, tx *sql.Tx, bill *models.Bill) error {
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now().UTC()
	}
	return tx.QueryRowContext(ctx, r.q(`
		INSERT INTO bills(bill_date,gst_percent,gst_amount,total,grand_total,created_at)
		VALUES(?,?,?,?,?,?)
		RETURNING id
	`), bill.BillDate, bill.GSTPercent.String(), bill.GSTAmount.String(), bill.Total.String(),
		bill.GrandTotal.String(), bill.CreatedAt,
	).Scan(&bill.ID)
}

// Insert consignments in order; seq keeps the line position. Money goes in
// as exact decimal text.
func (r *SQLLedgerRepo) insertConsignments(ctx context.Context, tx *sql.Tx, billID int64, snap *models.BillSnapshot) error {
	stmt, err := tx.PrepareContext(ctx, r.q(`
		INSERT INTO consignments(bill_id,seq,date,con_no,consignee,weight,destination,amount)
		VALUES(?,?,?,?,?,?,?,?)
	`))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, it := range snap.Items {
		_, err := stmt.ExecContext(ctx,
			billID, i, snap.ItemDate(it), it.ConNo, it.Consignee, it.Weight, it.Destination, it.Amount.String(),
		)
		if err != nil {
			return fmt.Errorf("row %d (con no %s): %w", i+1, it.ConNo, err)
		}
	}
	return nil
}

func scanBill(scanner interface{ Scan(...any) error }) (*models.Bill, error) {
	var b models.Bill
	err := scanner.Scan(&b.ID, &b.BillDate, &b.GSTPercent, &b.GSTAmount, &b.Total, &b.GrandTotal, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanConsignment(scanner interface{ Scan(...any) error }) (models.ConsignmentItem, error) {
	var c models.ConsignmentItem
	err := scanner.Scan(&c.ID, &c.BillID, &c.Seq, &c.Date, &c.ConNo, &c.Consignee, &c.Weight, &c.Destination, &c.Amount)
	return c, err
}

// ------------------------ Commit Bill ------------------------

func (r *SQLLedgerRepo) CommitBill(ctx context.Context, snap models.BillSnapshot) (int64, error) {
	if err := snap.Validate(); err != nil {
		return 0, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, models.WrapStorage("begin bill commit", err)
	}
	defer tx.Rollback()

	bill := snap.Header()
	if err := r.insertBillMain(ctx, tx, &bill); err != nil {
		return 0, models.WrapStorage("insert bill", err)
	}

	if err := r.insertConsignments(ctx, tx, bill.ID, &snap); err != nil {
		slog.Warn("bill commit rolled back", "date", bill.BillDate, "items", len(snap.Items), "error", err)
		return 0, models.WrapStorage("insert consignments", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, models.WrapStorage("commit bill", err)
	}

	slog.Info("bill committed", "bill_id", bill.ID, "date", bill.BillDate, "items", len(snap.Items))
	return bill.ID, nil
}

// ------------------------ Find Bills ------------------------

func (r *SQLLedgerRepo) FindBillsByDate(ctx context.Context, date string) ([]*models.Bill, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, &models.ValidationError{Field: "date", Reason: "please select a date"}
	}

	rows, err := r.DB.QueryContext(ctx, r.q(`
		SELECT id, bill_date, gst_percent, gst_amount, total, grand_total, created_at
		FROM bills
		WHERE bill_date = ?
		ORDER BY id
	`), date)
	if err != nil {
		return nil, models.WrapStorage("query bills", err)
	}
	defer rows.Close()

	var result []*models.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, models.WrapStorage("scan bill", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, models.WrapStorage("query bills", err)
	}
	if len(result) == 0 {
		return []*models.Bill{}, nil
	}

	if err := r.loadConsignments(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Load all consignments in one go (to avoid N+1). A bill that comes back
// without items fails the whole read rather than being returned header-only.
func (r *SQLLedgerRepo) loadConsignments(ctx context.Context, bills []*models.Bill) error {
	ids := make([]any, len(bills))
	marks := make([]string, len(bills))
	byID := make(map[int64]*models.Bill, len(bills))
	for i, b := range bills {
		ids[i] = b.ID
		marks[i] = "?"
		byID[b.ID] = b
	}

	query := fmt.Sprintf(`
		SELECT id, bill_id, seq, date, con_no, consignee, weight, destination, amount
		FROM consignments
		WHERE bill_id IN (%s)
		ORDER BY bill_id, seq
	`, strings.Join(marks, ","))

	rows, err := r.DB.QueryContext(ctx, r.q(query), ids...)
	if err != nil {
		return models.WrapStorage("query consignments", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanConsignment(rows)
		if err != nil {
			return models.WrapStorage("scan consignment", err)
		}
		b, ok := byID[c.BillID]
		if !ok {
			return models.WrapStorage("load consignments", fmt.Errorf("consignment %d references unexpected bill %d", c.ID, c.BillID))
		}
		b.Items = append(b.Items, c)
	}
	if err := rows.Err(); err != nil {
		return models.WrapStorage("query consignments", err)
	}

	for _, b := range bills {
		if len(b.Items) == 0 {
			return models.WrapStorage("load consignments", fmt.Errorf("bill %d has no consignments", b.ID))
		}
	}
	return nil
}

// ------------------------ Count ------------------------

func (r *SQLLedgerRepo) CountConsignments(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM consignments`).Scan(&count); err != nil {
		return 0, models.WrapStorage("count consignments", err)
	}
	return count, nil
}
