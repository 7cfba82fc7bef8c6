package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Currency is a stored exchange rate against the ruble.
type Currency struct {
	Name string  `db:"currency_name" json:"currency_name"`
	Rate float64 `db:"rate" json:"rate"`
}

// Currencies provides access to the currencies table. Names are
// case-normalized to upper before every write and lookup.
type Currencies struct {
	db *sqlx.DB
}

// NewCurrencies constructs the currencies repository.
func NewCurrencies(db *sqlx.DB) *Currencies {
	return &Currencies{db: db}
}

// Insert adds a new currency. Returns ErrExists when the name is taken.
func (r *Currencies) Insert(ctx context.Context, name string, rate float64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO currencies (currency_name, rate) VALUES ($1, $2)`,
		normalizeName(name), rate,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrExists
		}
		return fmt.Errorf("insert currency: %w", err)
	}
	return nil
}

// UpdateRate changes the stored rate. Returns ErrNotFound when the currency is absent.
func (r *Currencies) UpdateRate(ctx context.Context, name string, rate float64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE currencies SET rate = $1 WHERE currency_name = $2`,
		rate, normalizeName(name),
	)
	if err != nil {
		return fmt.Errorf("update currency: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update currency: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a currency. Returns ErrNotFound when the currency is absent.
func (r *Currencies) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM currencies WHERE currency_name = $1`,
		normalizeName(name),
	)
	if err != nil {
		return fmt.Errorf("delete currency: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete currency: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all currencies ordered by name.
func (r *Currencies) List(ctx context.Context) ([]Currency, error) {
	var out []Currency
	err := r.db.SelectContext(ctx, &out,
		`SELECT currency_name, rate FROM currencies ORDER BY currency_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	return out, nil
}

// Rate returns the stored rate of one currency or ErrNotFound.
func (r *Currencies) Rate(ctx context.Context, name string) (float64, error) {
	var rate float64
	err := r.db.GetContext(ctx, &rate,
		`SELECT rate FROM currencies WHERE currency_name = $1`,
		normalizeName(name),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get rate: %w", err)
	}
	return rate, nil
}

func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
