package nodes

import (
	"context"

	"github.com/rs/zerolog/log"

	handlerx "github.com/petersparlor/parlor-fulfillment/dialogue/handlers"
	statex "github.com/petersparlor/parlor-fulfillment/dialogue/state"
)

// DispatchIntent routes the turn to its intent handler.
func DispatchIntent(ctx context.Context, turn *handlerx.Turn, registry handlerx.Registry) (*handlerx.Turn, error) {
	log.Debug().
		Str("session", turn.Session).
		Str("intent", turn.Intent).
		Stringer("phase", statex.ActivePhase(turn.Contexts)).
		Msg("dispatching intent")

	if err := registry.Dispatch(ctx, turn); err != nil {
		return nil, err
	}
	return turn, nil
}
