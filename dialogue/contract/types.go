package contract

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"

	statex "github.com/petersparlor/parlor-fulfillment/dialogue/state"
)

// Container is where the ice cream ends up.
type Container string

const (
	ContainerCup  Container = "cup"
	ContainerCone Container = "cone"
)

// ParseContainer validates a container value coming off the wire.
func ParseContainer(s string) (Container, error) {
	switch Container(s) {
	case ContainerCup:
		return ContainerCup, nil
	case ContainerCone:
		return ContainerCone, nil
	default:
		return "", fmt.Errorf("%w: container must be cup or cone, got %q", ErrValidation, s)
	}
}

// WebhookRequest is the fulfillment payload the NLU platform POSTs after
// classifying a customer utterance.
type WebhookRequest struct {
	ResponseID  string      `json:"responseId,omitempty"`
	Session     string      `json:"session"`
	QueryResult QueryResult `json:"queryResult"`
}

type QueryResult struct {
	QueryText      string           `json:"queryText,omitempty"`
	Parameters     map[string]any   `json:"parameters,omitempty"`
	Intent         Intent           `json:"intent"`
	OutputContexts []statex.Context `json:"outputContexts,omitempty"`
}

type Intent struct {
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"displayName"`
}

// WebhookResponse carries the utterances spoken back to the customer plus the
// context upserts for the next turn.
type WebhookResponse struct {
	FulfillmentText     string           `json:"fulfillmentText,omitempty"`
	FulfillmentMessages []Message        `json:"fulfillmentMessages,omitempty"`
	OutputContexts      []statex.Context `json:"outputContexts,omitempty"`
}

type Message struct {
	Text Text `json:"text"`
}

type Text struct {
	Text []string `json:"text"`
}

// NewMessages wraps plain utterances into fulfillment messages.
func NewMessages(utterances ...string) []Message {
	msgs := make([]Message, 0, len(utterances))
	for _, u := range utterances {
		msgs = append(msgs, Message{Text: Text{Text: []string{u}}})
	}
	return msgs
}

// Order is a finalized order as persisted to the ledger. Created once at
// confirmation time, never mutated afterwards. Scoops == len(Flavors) is
// enforced before persistence, not by the store.
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o" json:"-"`

	ID          string    `bun:"id,pk" json:"id"`
	Container   Container `bun:"container,notnull" json:"container"`
	Scoops      int       `bun:"scoops,notnull" json:"scoops"`
	Flavors     []string  `bun:"flavors" json:"flavors"`
	PickupName  int64     `bun:"pickup_name,notnull" json:"pickupName"`
	TimeOfOrder time.Time `bun:"time_of_order,notnull" json:"timeOfOrder"`
}
