// Package nodes holds the per-turn pipeline steps the fulfillment graph is
// compiled from.
package nodes

import (
	"errors"
	"strings"
	"time"

	contractx "github.com/petersparlor/parlor-fulfillment/dialogue/contract"
	handlerx "github.com/petersparlor/parlor-fulfillment/dialogue/handlers"
	statex "github.com/petersparlor/parlor-fulfillment/dialogue/state"
)

var (
	ErrInvalidSession = errors.New("session is empty")
	ErrInvalidIntent  = errors.New("intent display name is empty")
)

// ValidateRequest turns the raw webhook payload into the turn's working set.
func ValidateRequest(req contractx.WebhookRequest, nowFn func() time.Time) (*handlerx.Turn, error) {
	session := strings.TrimSpace(req.Session)
	if session == "" {
		return nil, ErrInvalidSession
	}

	intent := strings.TrimSpace(req.QueryResult.Intent.DisplayName)
	if intent == "" {
		return nil, ErrInvalidIntent
	}

	return &handlerx.Turn{
		Session:  session,
		Intent:   intent,
		Params:   req.QueryResult.Parameters,
		Contexts: statex.NewContextSet(session, req.QueryResult.OutputContexts),
		Now:      nowFn().UTC(),
	}, nil
}
