package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Admins provides access to the admins table used for the boolean admin check.
type Admins struct {
	db *sqlx.DB
}

// NewAdmins constructs the admins repository.
func NewAdmins(db *sqlx.DB) *Admins {
	return &Admins{db: db}
}

// IsAdmin reports whether the chat id belongs to an administrator.
func (r *Admins) IsAdmin(ctx context.Context, chatID int64) (bool, error) {
	var one int
	err := r.db.GetContext(ctx, &one, `SELECT 1 FROM admins WHERE chat_id = $1`, chatID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("is admin: %w", err)
	}
	return true, nil
}

// List returns all administrator chat ids.
func (r *Admins) List(ctx context.Context) ([]int64, error) {
	var out []int64
	if err := r.db.SelectContext(ctx, &out, `SELECT chat_id FROM admins ORDER BY chat_id`); err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return out, nil
}
