// Package prep announces persisted orders to the prep-station queue.
package prep

import (
	"context"
	"errors"

	contractx "github.com/petersparlor/parlor-fulfillment/dialogue/contract"
	qstashx "github.com/petersparlor/parlor-fulfillment/pkg/qstash"
)

type Config struct {
	Destination string `envconfig:"DESTINATION" split_words:"true" default:"prep-station"`
}

// StationNotifier publishes each finished order for the staff preparing it.
// Delivery is best effort; the caller logs failures and moves on.
type StationNotifier struct {
	client      *qstashx.Client
	destination string
}

func NewStationNotifier(client *qstashx.Client, cfg Config) (*StationNotifier, error) {
	if client == nil {
		return nil, errors.New("qstash client is required")
	}
	return &StationNotifier{client: client, destination: cfg.Destination}, nil
}

func (n *StationNotifier) OrderPlaced(ctx context.Context, order *contractx.Order) error {
	return n.client.Publish(ctx, n.destination, order)
}
