// Package pricestore keeps fetched daily prices in a SQLite database, so
// that repeated computations do not hit the price providers.
package pricestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/rentability"
	"github.com/etnz/rentability/date"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// Store is a SQLite table of daily prices.
type Store struct {
	db *sql.DB
}

// Open opens, or creates, the store at path. ":memory:" opens a private
// in-memory store.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("could not create price store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not initialize price store %q: %w", path, err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS prices (
  symbol TEXT NOT NULL,
  day TEXT NOT NULL,
  open TEXT NOT NULL,
  PRIMARY KEY(symbol, day)
);

CREATE TABLE IF NOT EXISTS coverage (
  symbol TEXT PRIMARY KEY,
  first_day TEXT NOT NULL,
  last_day TEXT NOT NULL
);
`)
	return err
}

// Put stores the samples of a symbol, replacing the prices of the same days.
// Days are stored in ISO format so that they sort as text.
func (s *Store) Put(ctx context.Context, symbol string, series rentability.Series) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO prices(symbol, day, open) VALUES(?, ?, ?)
ON CONFLICT(symbol, day) DO UPDATE SET open=excluded.open`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, sample := range series {
		if _, err := stmt.ExecContext(ctx, symbol, date.Of(sample.At).String(), sample.Open.String()); err != nil {
			return fmt.Errorf("could not store %s price on %v: %w", symbol, date.Of(sample.At), err)
		}
	}
	return tx.Commit()
}

// Range returns the stored samples of symbol within [from, to], stamped at
// rentability.MarketClose and in chronological order.
func (s *Store) Range(ctx context.Context, symbol string, from, to date.Date) (rentability.Series, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT day, open FROM prices
WHERE symbol = ? AND day >= ? AND day <= ?
ORDER BY day`, symbol, from.String(), to.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out rentability.Series
	for rows.Next() {
		var day, open string
		if err := rows.Scan(&day, &open); err != nil {
			return nil, err
		}
		on, err := date.Parse(day)
		if err != nil {
			return nil, fmt.Errorf("corrupted day %q for %s: %w", day, symbol, err)
		}
		price, err := decimal.NewFromString(open)
		if err != nil {
			return nil, fmt.Errorf("corrupted price %q for %s on %v: %w", open, symbol, on, err)
		}
		out = append(out, rentability.Sample{At: on.At(rentability.MarketClose), Open: price})
	}
	return out, rows.Err()
}

// Coverage returns the range of days already fetched for symbol, and false
// if nothing was ever fetched.
//
// Prices are missing on non trading days, so the coverage and not the
// stored prices tells whether a range was fetched.
func (s *Store) Coverage(ctx context.Context, symbol string) (date.Range, bool, error) {
	var first, last string
	err := s.db.QueryRowContext(ctx, `SELECT first_day, last_day FROM coverage WHERE symbol = ?`, symbol).Scan(&first, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return date.Range{}, false, nil
	}
	if err != nil {
		return date.Range{}, false, err
	}
	from, err := date.Parse(first)
	if err != nil {
		return date.Range{}, false, err
	}
	to, err := date.Parse(last)
	if err != nil {
		return date.Range{}, false, err
	}
	return date.NewRange(from, to), true, nil
}

// SetCoverage records the range of days fetched for symbol.
func (s *Store) SetCoverage(ctx context.Context, symbol string, r date.Range) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO coverage(symbol, first_day, last_day) VALUES(?, ?, ?)
ON CONFLICT(symbol) DO UPDATE SET first_day=excluded.first_day, last_day=excluded.last_day`,
		symbol, r.From.String(), r.To.String())
	return err
}

// Symbols returns the symbols with stored prices, sorted.
func (s *Store) Symbols(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT symbol FROM prices ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, err
		}
		out = append(out, symbol)
	}
	return out, rows.Err()
}
