// Package fulfillment is the entry point into the dialogue core: one Service
// per process, one graph invocation per webhook turn.
package fulfillment

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/petersparlor/parlor-fulfillment/dialogue/contract"
	handlerx "github.com/petersparlor/parlor-fulfillment/dialogue/handlers"
	nodex "github.com/petersparlor/parlor-fulfillment/dialogue/nodes"
)

var (
	ErrInvalidSession = nodex.ErrInvalidSession
	ErrInvalidIntent  = nodex.ErrInvalidIntent
)

type Service struct {
	registry handlerx.Registry

	graphRunner compose.Runnable[contractx.WebhookRequest, contractx.WebhookResponse]

	now func() time.Time
}

// New wires the dialogue handlers and compiles the turn pipeline. notifier
// may be nil; ledger and counter are required.
func New(
	ledger contractx.Ledger,
	counter contractx.PickupCounter,
	notifier contractx.Notifier,
) (*Service, error) {
	if ledger == nil {
		return nil, errors.New("order ledger is required")
	}
	if counter == nil {
		return nil, errors.New("pickup counter is required")
	}

	s := &Service{
		registry: handlerx.NewRegistry(ledger, counter, notifier),
		now:      time.Now,
	}

	graphRunner, err := s.compileHandleTurnGraph(context.Background())
	if err != nil {
		return nil, err
	}
	s.graphRunner = graphRunner

	return s, nil
}

// Handle processes one webhook turn. Validation mismatches never surface
// here; they are resolved inside the handlers as dialogue resets. Errors mean
// malformed input, an unknown intent, or a persistence failure.
func (s *Service) Handle(ctx context.Context, req contractx.WebhookRequest) (contractx.WebhookResponse, error) {
	return s.graphRunner.Invoke(ctx, req)
}
