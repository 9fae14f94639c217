package handlers

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/petersparlor/parlor-fulfillment/dialogue/contract"
	statex "github.com/petersparlor/parlor-fulfillment/dialogue/state"
)

// placeOrder is the terminal transition: allocate a pickup id, append the
// order to the ledger, announce it to the prep station.
type placeOrder struct {
	ledger   contractx.Ledger
	counter  contractx.PickupCounter
	notifier contractx.Notifier
}

func (h *placeOrder) Handle(ctx context.Context, turn *Turn) error {
	order, ok := turn.Contexts.Get(statex.ContextCustomerOrder)
	if !ok {
		return fmt.Errorf("%w: %s", statex.ErrContextNotFound, statex.ContextCustomerOrder)
	}
	draft, err := statex.DraftFromContext(order)
	if err != nil {
		return err
	}
	container, err := contractx.ParseContainer(draft.Container)
	if err != nil {
		return err
	}

	// Re-check: the context could have been tampered with or skipped to.
	if !draft.Balanced() {
		turn.Reply(replyMismatch)
		turn.Reply(replyMismatchRestart)
		turn.Contexts.Reset()
		return nil
	}

	// The pickup id is minted inside the store's atomic increment, never from
	// a snapshot read, so concurrent orders cannot collide. A counter failure
	// aborts the order: every persisted order carries a pickup id.
	pickup, err := h.counter.Next(ctx)
	if err != nil {
		return fmt.Errorf("allocate pickup id: %w", err)
	}

	rec := &contractx.Order{
		Container:  container,
		Scoops:     draft.Scoops,
		Flavors:    draft.Flavors,
		PickupName: pickup,
	}
	key, err := h.ledger.Append(ctx, rec)
	if err != nil {
		// The counter is not rolled back; ids need to be unique, not gapless.
		return fmt.Errorf("append order: %w", err)
	}

	log.Info().
		Str("session", turn.Session).
		Str("order_key", key).
		Int64("pickup_name", pickup).
		Msg("order persisted")

	if h.notifier != nil {
		if err := h.notifier.OrderPlaced(ctx, rec); err != nil {
			log.Warn().Err(err).Str("order_key", key).Msg("prep-station notify failed")
		}
	}

	turn.Order = rec
	turn.Reply("Thank you for your order! Your pickup id is %d.", pickup)
	turn.Reply(replyGoodbye)
	return nil
}
