// Package storage implements the record store on SQLite. Amounts are
// persisted as integer cents (validation guarantees two decimal places at
// most) and timestamps as unix milliseconds, so range and threshold queries
// compare plain integers.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"expensetracker/internal/core"
)

const expenseColumns = `id, name, amount_cents, category, description, tag, transaction_date_ms, entered_date_ms, updated_at_ms`

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Insert(ctx context.Context, e core.Expense) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (name, amount_cents, category, description, tag, transaction_date_ms, entered_date_ms, updated_at_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Name, core.AmountToCents(e.Amount), e.Category, e.Description, e.Tag,
		e.TransactionDate.UnixMilli(), e.EnteredDate.UnixMilli(), e.UpdatedAt.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert expense id: %w", err)
	}

	slog.DebugContext(ctx, "Expense row inserted", "id", id, "category", e.Category)
	return id, nil
}

func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (core.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.NotFoundError{ID: id}
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, err)
	}
	return e, nil
}

func (s *SQLiteStore) ListAll(ctx context.Context) ([]core.Expense, error) {
	return s.list(ctx, `SELECT `+expenseColumns+` FROM expenses ORDER BY id`)
}

func (s *SQLiteStore) Update(ctx context.Context, e core.Expense) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE expenses
		 SET name = ?, amount_cents = ?, category = ?, description = ?, tag = ?, transaction_date_ms = ?, updated_at_ms = ?
		 WHERE id = ?`,
		e.Name, core.AmountToCents(e.Amount), e.Category, e.Description, e.Tag,
		e.TransactionDate.UnixMilli(), e.UpdatedAt.UnixMilli(), e.ID)
	if err != nil {
		return fmt.Errorf("update expense %d: %w", e.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update expense %d: %w", e.ID, err)
	}
	if n == 0 {
		return core.NotFoundError{ID: e.ID}
	}
	return nil
}

func (s *SQLiteStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM expenses WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("expense exists %d: %w", id, err)
	}
	return exists, nil
}

func (s *SQLiteStore) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	if n == 0 {
		return core.NotFoundError{ID: id}
	}
	return nil
}

func (s *SQLiteStore) ListByCategory(ctx context.Context, category string) ([]core.Expense, error) {
	return s.list(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE category = ? ORDER BY id`, category)
}

// SearchByName uses instr over lowered text instead of LIKE so keywords
// containing % or _ match literally.
func (s *SQLiteStore) SearchByName(ctx context.Context, keyword string) ([]core.Expense, error) {
	return s.list(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE instr(lower(name), lower(?)) > 0 ORDER BY id`, keyword)
}

func (s *SQLiteStore) ListByDateRange(ctx context.Context, start, end time.Time) ([]core.Expense, error) {
	return s.list(ctx,
		`SELECT `+expenseColumns+` FROM expenses
		 WHERE transaction_date_ms >= ? AND transaction_date_ms <= ?
		 ORDER BY transaction_date_ms, id`,
		start.UnixMilli(), end.UnixMilli())
}

func (s *SQLiteStore) ListAboveAmount(ctx context.Context, min decimal.Decimal) ([]core.Expense, error) {
	// Truncating the threshold to cents keeps the comparison strict:
	// cents > floor(min*100) is equivalent to amount > min for stored
	// two-decimal amounts.
	return s.list(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE amount_cents > ? ORDER BY id`,
		min.Shift(2).IntPart())
}

func (s *SQLiteStore) SumByCategory(ctx context.Context) ([]core.CategorySummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, SUM(amount_cents), COUNT(*) FROM expenses GROUP BY category ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("sum by category: %w", err)
	}
	defer rows.Close()

	var out []core.CategorySummary
	for rows.Next() {
		var (
			cs    core.CategorySummary
			cents int64
		)
		if err := rows.Scan(&cs.Category, &cents, &cs.Count); err != nil {
			return nil, fmt.Errorf("scan category summary: %w", err)
		}
		cs.TotalAmount = core.AmountFromCents(cents)
		out = append(out, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sum by category: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e                     core.Expense
		cents                 int64
		txMS, enteredMS, updMS int64
	)
	if err := row.Scan(&e.ID, &e.Name, &cents, &e.Category, &e.Description, &e.Tag, &txMS, &enteredMS, &updMS); err != nil {
		return core.Expense{}, err
	}
	e.Amount = core.AmountFromCents(cents)
	e.TransactionDate = time.UnixMilli(txMS).UTC()
	e.EnteredDate = time.UnixMilli(enteredMS).UTC()
	e.UpdatedAt = time.UnixMilli(updMS).UTC()
	return e, nil
}
