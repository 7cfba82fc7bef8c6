package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Operation kinds as stored in the type_operation column.
const (
	OperationExpense = "РАСХОД"
	OperationIncome  = "ДОХОД"
)

// Operation is a single ledger entry of a registered user.
type Operation struct {
	ID     int64     `db:"id"`
	Date   time.Time `db:"date"`
	Sum    float64   `db:"sum"`
	ChatID int64     `db:"chat_id"`
	Kind   string    `db:"type_operation"`
}

// Operations provides access to the append-only operations ledger.
type Operations struct {
	db *sqlx.DB
}

// NewOperations constructs the operations repository.
func NewOperations(db *sqlx.DB) *Operations {
	return &Operations{db: db}
}

// Insert appends a ledger entry.
func (r *Operations) Insert(ctx context.Context, op Operation) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO operations (date, sum, chat_id, type_operation) VALUES ($1, $2, $3, $4)`,
		op.Date, op.Sum, op.ChatID, op.Kind,
	)
	if err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}

// ListByUser returns the user's operations, newest first.
func (r *Operations) ListByUser(ctx context.Context, chatID int64) ([]Operation, error) {
	var out []Operation
	err := r.db.SelectContext(ctx, &out,
		`SELECT id, date, sum, chat_id, type_operation FROM operations
		 WHERE chat_id = $1 ORDER BY date DESC, id DESC`,
		chatID,
	)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	return out, nil
}
