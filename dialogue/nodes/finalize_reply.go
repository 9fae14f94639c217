package nodes

import (
	"fmt"
	"strings"

	contractx "github.com/petersparlor/parlor-fulfillment/dialogue/contract"
	handlerx "github.com/petersparlor/parlor-fulfillment/dialogue/handlers"
)

// FinalizeReply renders the accumulated utterances and context updates into
// the platform's response payload.
func FinalizeReply(turn *handlerx.Turn) (contractx.WebhookResponse, error) {
	if turn == nil || len(turn.Replies) == 0 {
		return contractx.WebhookResponse{}, fmt.Errorf("%w: handler produced no reply", contractx.ErrValidation)
	}

	return contractx.WebhookResponse{
		FulfillmentText:     strings.Join(turn.Replies, " "),
		FulfillmentMessages: contractx.NewMessages(turn.Replies...),
		OutputContexts:      turn.Contexts.Updates(),
	}, nil
}
