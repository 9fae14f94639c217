package handlers

import (
	"context"
	"fmt"

	statex "github.com/petersparlor/parlor-fulfillment/dialogue/state"
)

// TakeScoops opens the dialogue: acknowledge the scoop count and ask for
// flavors. Nothing to validate yet, the flavors are still unknown.
func TakeScoops(_ context.Context, turn *Turn) error {
	scoops, err := turn.params().Int(statex.ParamScoops)
	if err != nil {
		return err
	}
	if scoops < 1 {
		return fmt.Errorf("%w: scoops must be >= 1, got %d", statex.ErrBadParameter, scoops)
	}

	turn.Reply("Okay, you want %s!", spokenScoops(scoops))
	turn.Reply(replyFlavorMenu)

	turn.Contexts.Set(statex.ContextAwaitingFlavors, map[string]any{
		statex.ParamScoops: scoops,
	})
	return nil
}
