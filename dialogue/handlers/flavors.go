package handlers

import (
	"context"
	"fmt"

	statex "github.com/petersparlor/parlor-fulfillment/dialogue/state"
)

// TakeFlavors checks the chosen flavors against the scoop count carried in
// the awaiting_flavors context. A mismatch is a user-facing reset, not an
// error: the dialogue starts over at the scoop question.
func TakeFlavors(_ context.Context, turn *Turn) error {
	flavors, err := turn.params().Strings(statex.ParamFlavors)
	if err != nil {
		return err
	}

	awaiting, ok := turn.Contexts.Get(statex.ContextAwaitingFlavors)
	if !ok {
		return fmt.Errorf("%w: %s", statex.ErrContextNotFound, statex.ContextAwaitingFlavors)
	}
	scoops, err := awaiting.Int(statex.ParamScoops)
	if err != nil {
		return err
	}

	if scoops != len(flavors) {
		turn.Reply(replyMismatch)
		turn.Reply(replyMismatchRestart)
		turn.Contexts.Reset()
		return nil
	}

	turn.Reply("Well done!")
	turn.Reply("You've chosen %s. So, do you prefer your ice cream in a cup or a cone?", spokenFlavors(flavors))

	turn.Contexts.Set(statex.ContextAwaitingContainer, map[string]any{
		statex.ParamScoops:  scoops,
		statex.ParamFlavors: flavors,
	})
	return nil
}
