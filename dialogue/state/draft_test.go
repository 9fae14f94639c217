package state

import (
	"errors"
	"testing"
)

func TestDraftFromContext(t *testing.T) {
	t.Parallel()

	c := Context{Name: ContextCustomerOrder, Parameters: map[string]any{
		ParamScoops:    float64(2),
		ParamFlavors:   []any{"vanilla", "chocolate"},
		ParamContainer: "cone",
	}}

	d, err := DraftFromContext(c)
	if err != nil {
		t.Fatalf("DraftFromContext() error = %v", err)
	}
	if d.Scoops != 2 || d.Container != "cone" || len(d.Flavors) != 2 {
		t.Fatalf("draft = %+v", d)
	}
	if !d.Balanced() {
		t.Fatal("Balanced() = false for matching draft")
	}
}

func TestDraftFromContextMissingFlavors(t *testing.T) {
	t.Parallel()

	c := Context{Name: ContextCustomerOrder, Parameters: map[string]any{
		ParamScoops: float64(2),
	}}
	if _, err := DraftFromContext(c); !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("error = %v, want ErrMissingParameter", err)
	}
}

func TestDraftFromContextRejectsZeroScoops(t *testing.T) {
	t.Parallel()

	c := Context{Name: ContextCustomerOrder, Parameters: map[string]any{
		ParamScoops:  float64(0),
		ParamFlavors: []any{},
	}}
	if _, err := DraftFromContext(c); !errors.Is(err, ErrBadParameter) {
		t.Fatalf("error = %v, want ErrBadParameter", err)
	}
}

func TestBalancedMismatch(t *testing.T) {
	t.Parallel()

	d := OrderDraft{Scoops: 3, Flavors: []string{"vanilla"}}
	if d.Balanced() {
		t.Fatal("Balanced() = true for 3 scoops / 1 flavor")
	}
}

func TestActivePhaseOrdering(t *testing.T) {
	t.Parallel()

	set := NewContextSet(testSession, nil)
	if got := ActivePhase(set); got != PhaseAwaitingScoops {
		t.Fatalf("empty set phase = %v, want awaiting_scoops", got)
	}

	set.Set(ContextAwaitingFlavors, map[string]any{ParamScoops: 1})
	if got := ActivePhase(set); got != PhaseAwaitingFlavors {
		t.Fatalf("phase = %v, want awaiting_flavors", got)
	}

	// A later-stage context shadows a stale earlier one.
	set.Set(ContextAwaitingConfirmation, nil)
	if got := ActivePhase(set); got != PhaseAwaitingConfirmation {
		t.Fatalf("phase = %v, want awaiting_confirmation", got)
	}
}
