// Package state models the conversation state carried between dialogue turns.
//
// The request/response cycle is stateless: the NLU platform stores named
// contexts on our behalf and replays the active set with every webhook call.
// Each turn reconstructs its working set from that payload alone.
package state

import (
	"errors"
	"fmt"
	"strings"
)

// Context names used by the ordering dialogue. At most one active instance of
// a name exists per session; setting a name again overwrites it.
const (
	ContextAwaitingScoops       = "awaiting_scoops"
	ContextAwaitingFlavors      = "awaiting_flavors"
	ContextAwaitingContainer    = "awaiting_container"
	ContextCustomerOrder        = "customer_order"
	ContextAwaitingConfirmation = "awaiting_confirmation"
)

// Parameter keys inside the ordering contexts.
const (
	ParamScoops    = "scoops"
	ParamFlavors   = "flavors"
	ParamContainer = "container"
)

// DefaultLifespan is how many turns a context produced by a handler survives.
// The platform, not this service, does the expiring.
const DefaultLifespan = 1

var (
	ErrContextNotFound  = errors.New("conversation context not found")
	ErrMissingParameter = errors.New("context parameter is missing")
	ErrBadParameter     = errors.New("context parameter has unexpected type")
)

// Context is one named, parameterized piece of conversation state with a
// limited turn-lifespan.
type Context struct {
	Name          string         `json:"name"`
	LifespanCount int            `json:"lifespanCount,omitempty"`
	Parameters    map[string]any `json:"parameters,omitempty"`
}

// ShortName strips the platform's session-scoped prefix
// (".../sessions/<id>/contexts/<name>") down to <name>.
func (c Context) ShortName() string {
	if i := strings.LastIndex(c.Name, "/"); i >= 0 {
		return c.Name[i+1:]
	}
	return c.Name
}

// Int reads an integer parameter. The NLU platform delivers numbers as JSON
// floats, so float64 is the common case.
func (c Context) Int(key string) (int, error) {
	v, ok := c.Parameters[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("%w: %s.%s", ErrMissingParameter, c.ShortName(), key)
	}
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("%w: %s.%s is %T", ErrBadParameter, c.ShortName(), key, v)
	}
}

// Strings reads a string-list parameter. A scalar string counts as a
// one-element list, matching how the platform collapses single-item lists.
func (c Context) Strings(key string) ([]string, error) {
	v, ok := c.Parameters[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("%w: %s.%s", ErrMissingParameter, c.ShortName(), key)
	}
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...), nil
	case string:
		return []string{list}, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s.%s contains %T", ErrBadParameter, c.ShortName(), key, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s.%s is %T", ErrBadParameter, c.ShortName(), key, v)
	}
}

// String reads a string parameter.
func (c Context) String(key string) (string, error) {
	v, ok := c.Parameters[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: %s.%s", ErrMissingParameter, c.ShortName(), key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s.%s is %T", ErrBadParameter, c.ShortName(), key, v)
	}
	return s, nil
}

// ContextSet is the per-turn view over the session's active contexts. Reads
// hit the set the platform sent; writes are upserts that become the response's
// context updates. Within one session the platform guarantees at most one
// in-flight turn, so the set needs no locking.
type ContextSet struct {
	session string
	active  map[string]Context
	order   []string
	updated map[string]bool
}

// NewContextSet indexes the incoming contexts by short name.
func NewContextSet(session string, incoming []Context) *ContextSet {
	s := &ContextSet{
		session: strings.TrimRight(strings.TrimSpace(session), "/"),
		active:  make(map[string]Context, len(incoming)+4),
		updated: make(map[string]bool, 4),
	}
	for _, c := range incoming {
		c.Name = c.ShortName()
		s.active[c.Name] = c
	}
	return s
}

// Get returns the active context with the given short name.
func (s *ContextSet) Get(name string) (Context, bool) {
	c, ok := s.active[name]
	return c, ok
}

// Set upserts a context by short name. The latest write wins, both for later
// Gets in this turn and for the update handed back to the platform.
func (s *ContextSet) Set(name string, params map[string]any) {
	if params == nil {
		params = map[string]any{}
	}
	c := Context{
		Name:          name,
		LifespanCount: DefaultLifespan,
		Parameters:    params,
	}
	if !s.updated[name] {
		s.updated[name] = true
		s.order = append(s.order, name)
	}
	s.active[name] = c
}

// Reset discards the accumulated order state and re-enters the initial
// awaiting-scoops state. Deliberate reset-on-mismatch, not silent recovery.
func (s *ContextSet) Reset() {
	s.Set(ContextAwaitingScoops, nil)
}

// ConfirmOrder is the single transition out of the container step: it records
// the full order draft and raises the confirmation flag together, so neither
// view can exist without the other.
func (s *ContextSet) ConfirmOrder(d OrderDraft) {
	s.Set(ContextCustomerOrder, d.Params())
	s.Set(ContextAwaitingConfirmation, nil)
}

// Updates returns the contexts written this turn, session-scoped names
// restored, in first-write order with last-write-wins parameters.
func (s *ContextSet) Updates() []Context {
	out := make([]Context, 0, len(s.order))
	for _, name := range s.order {
		c := s.active[name]
		c.Name = s.qualify(name)
		out = append(out, c)
	}
	return out
}

func (s *ContextSet) qualify(name string) string {
	if s.session == "" {
		return name
	}
	return s.session + "/contexts/" + name
}
