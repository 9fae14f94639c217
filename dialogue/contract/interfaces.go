package contract

import "context"

// Ledger is the append-only store of finalized orders. Append stamps the
// record key and server timestamp and returns the key.
type Ledger interface {
	Append(ctx context.Context, order *Order) (string, error)
}

// PickupCounter allocates customer-facing pickup ids. Next must be atomic
// under concurrent callers: two orders placed at the same time never share an
// id. Raw read/write access to the counter is deliberately not exposed.
type PickupCounter interface {
	Next(ctx context.Context) (int64, error)
}

// Notifier announces a persisted order to downstream consumers (the prep
// station). Failures are logged by the caller, never surfaced to the customer.
type Notifier interface {
	OrderPlaced(ctx context.Context, order *Order) error
}
