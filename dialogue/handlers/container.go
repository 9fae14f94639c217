package handlers

import (
	"context"
	"fmt"

	contractx "github.com/petersparlor/parlor-fulfillment/dialogue/contract"
	statex "github.com/petersparlor/parlor-fulfillment/dialogue/state"
)

// TakeContainer completes the draft and asks for a yes/no. The order draft
// and the confirmation flag are written as one transition, so the next turn
// can never see one without the other.
func TakeContainer(_ context.Context, turn *Turn) error {
	raw, err := turn.params().String(statex.ParamContainer)
	if err != nil {
		return err
	}
	container, err := contractx.ParseContainer(raw)
	if err != nil {
		return err
	}

	awaiting, ok := turn.Contexts.Get(statex.ContextAwaitingContainer)
	if !ok {
		return fmt.Errorf("%w: %s", statex.ErrContextNotFound, statex.ContextAwaitingContainer)
	}
	draft, err := statex.DraftFromContext(awaiting)
	if err != nil {
		return err
	}
	draft.Container = string(container)

	turn.Reply("Fine, you've selected a %s.", container)
	turn.Reply("So let me summarize: you'd like %s in a %s, and your flavors are %s. Please say yes if this is correct, otherwise no.",
		spokenScoops(draft.Scoops), container, spokenFlavors(draft.Flavors))

	turn.Contexts.ConfirmOrder(draft)
	return nil
}
