package fulfillment

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/petersparlor/parlor-fulfillment/dialogue/contract"
	handlerx "github.com/petersparlor/parlor-fulfillment/dialogue/handlers"
	nodex "github.com/petersparlor/parlor-fulfillment/dialogue/nodes"
)

func (s *Service) compileHandleTurnGraph(
	ctx context.Context,
) (compose.Runnable[contractx.WebhookRequest, contractx.WebhookResponse], error) {
	graph := compose.NewGraph[contractx.WebhookRequest, contractx.WebhookResponse]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in contractx.WebhookRequest) (*handlerx.Turn, error) {
			return nodex.ValidateRequest(in, s.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("dispatch_intent",
		compose.InvokableLambda(func(ctx context.Context, in *handlerx.Turn) (*handlerx.Turn, error) {
			return nodex.DispatchIntent(ctx, in, s.registry)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node dispatch_intent: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, in *handlerx.Turn) (contractx.WebhookResponse, error) {
			return nodex.FinalizeReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "dispatch_intent"},
		{"dispatch_intent", "finalize_reply"},
		{"finalize_reply", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("fulfillment.handle_turn"))
	if err != nil {
		return nil, fmt.Errorf("compile fulfillment graph: %w", err)
	}
	return runner, nil
}
