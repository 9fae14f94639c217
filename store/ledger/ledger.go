// Package ledger persists finalized orders. Append-only: records are never
// mutated or deleted by this service.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/petersparlor/parlor-fulfillment/dialogue/contract"
)

type Config struct {
	DSN string `envconfig:"DSN" split_words:"true" required:"true"`
}

// OpenPostgres builds a bun handle over the shared Postgres instance.
func OpenPostgres(cfg Config) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// OrderLedger appends orders to the shared orders table.
type OrderLedger struct {
	db  *bun.DB
	now func() time.Time
}

func New(db *bun.DB) (*OrderLedger, error) {
	if db == nil {
		return nil, errors.New("ledger db is required")
	}
	return &OrderLedger{db: db, now: time.Now}, nil
}

// Init creates the orders table when it does not exist yet.
func (l *OrderLedger) Init(ctx context.Context) error {
	if _, err := l.db.NewCreateTable().
		Model((*contractx.Order)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create orders table: %w", err)
	}
	return nil
}

// Append stamps the record key and server timestamp and inserts the order.
// The key identifies the row for indexing and lookup; it is not customer
// facing — the pickup name is.
func (l *OrderLedger) Append(ctx context.Context, order *contractx.Order) (string, error) {
	if order == nil {
		return "", fmt.Errorf("%w: order is nil", contractx.ErrValidation)
	}
	if order.Scoops != len(order.Flavors) {
		return "", fmt.Errorf("%w: scoops=%d flavors=%d", contractx.ErrValidation, order.Scoops, len(order.Flavors))
	}
	if order.PickupName <= 0 {
		return "", fmt.Errorf("%w: pickup name is unset", contractx.ErrValidation)
	}

	order.ID = uuid.NewString()
	order.TimeOfOrder = l.now().UTC()

	if _, err := l.db.NewInsert().Model(order).Exec(ctx); err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}
	return order.ID, nil
}
