// Package handlers implements the ordering dialogue: one handler per
// classified intent, dispatched by display name.
package handlers

import (
	"context"
	"fmt"
	"time"

	contractx "github.com/petersparlor/parlor-fulfillment/dialogue/contract"
	statex "github.com/petersparlor/parlor-fulfillment/dialogue/state"
)

// Intent display names the dispatcher routes on.
const (
	IntentTakeScoops    = "TakeScoops"
	IntentTakeFlavors   = "TakeFlavors"
	IntentTakeContainer = "TakeContainer"
	IntentPlaceOrder    = "PlaceOrder"
)

// Turn is the working set of a single webhook invocation: the classified
// intent with its parameters, the active context set, and the outputs the
// handler accumulates.
type Turn struct {
	Session string
	Intent  string
	Params  map[string]any

	Contexts *statex.ContextSet
	Now      time.Time

	Replies []string
	// Order is set by the PlaceOrder handler once persistence succeeded.
	Order *contractx.Order
}

// Reply queues an utterance for the customer.
func (t *Turn) Reply(format string, args ...any) {
	t.Replies = append(t.Replies, fmt.Sprintf(format, args...))
}

// params exposes the intent parameters through the same typed accessors the
// contexts use.
func (t *Turn) params() statex.Context {
	return statex.Context{Name: "parameters", Parameters: t.Params}
}

// Handler processes one dialogue turn.
type Handler interface {
	Handle(ctx context.Context, turn *Turn) error
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context, turn *Turn) error

func (f HandlerFunc) Handle(ctx context.Context, turn *Turn) error {
	return f(ctx, turn)
}

// Registry is the static intent-name-to-handler mapping. Unrecognized intents
// are not handled here; the platform's default behavior applies.
type Registry map[string]Handler

// NewRegistry wires the four ordering handlers. notifier may be nil.
func NewRegistry(
	ledger contractx.Ledger,
	counter contractx.PickupCounter,
	notifier contractx.Notifier,
) Registry {
	return Registry{
		IntentTakeScoops:    HandlerFunc(TakeScoops),
		IntentTakeFlavors:   HandlerFunc(TakeFlavors),
		IntentTakeContainer: HandlerFunc(TakeContainer),
		IntentPlaceOrder: &placeOrder{
			ledger:   ledger,
			counter:  counter,
			notifier: notifier,
		},
	}
}

// Dispatch routes the turn to its handler.
func (r Registry) Dispatch(ctx context.Context, turn *Turn) error {
	h, ok := r[turn.Intent]
	if !ok {
		return fmt.Errorf("%w: %q", contractx.ErrUnknownIntent, turn.Intent)
	}
	return h.Handle(ctx, turn)
}
