package state

import (
	"errors"
	"testing"
)

const testSession = "projects/parlor/agent/sessions/s1"

func TestContextShortName(t *testing.T) {
	t.Parallel()

	c := Context{Name: testSession + "/contexts/awaiting_flavors"}
	if got := c.ShortName(); got != "awaiting_flavors" {
		t.Fatalf("ShortName() = %q, want awaiting_flavors", got)
	}

	c = Context{Name: "awaiting_flavors"}
	if got := c.ShortName(); got != "awaiting_flavors" {
		t.Fatalf("ShortName() = %q, want awaiting_flavors", got)
	}
}

func TestContextIntCoercion(t *testing.T) {
	t.Parallel()

	c := Context{Name: "awaiting_flavors", Parameters: map[string]any{
		"float":  float64(2),
		"int":    3,
		"string": "4",
	}}

	if got, err := c.Int("float"); err != nil || got != 2 {
		t.Fatalf("Int(float) = %d, %v", got, err)
	}
	if got, err := c.Int("int"); err != nil || got != 3 {
		t.Fatalf("Int(int) = %d, %v", got, err)
	}
	if _, err := c.Int("string"); !errors.Is(err, ErrBadParameter) {
		t.Fatalf("Int(string) error = %v, want ErrBadParameter", err)
	}
	if _, err := c.Int("absent"); !errors.Is(err, ErrMissingParameter) {
		t.Fatalf("Int(absent) error = %v, want ErrMissingParameter", err)
	}
}

func TestContextStringsCoercion(t *testing.T) {
	t.Parallel()

	c := Context{Name: "awaiting_container", Parameters: map[string]any{
		"anys":    []any{"vanilla", "chocolate"},
		"strings": []string{"strawberry"},
		"scalar":  "vanilla",
		"mixed":   []any{"vanilla", 7},
	}}

	got, err := c.Strings("anys")
	if err != nil || len(got) != 2 || got[0] != "vanilla" || got[1] != "chocolate" {
		t.Fatalf("Strings(anys) = %v, %v", got, err)
	}
	if got, err := c.Strings("strings"); err != nil || len(got) != 1 {
		t.Fatalf("Strings(strings) = %v, %v", got, err)
	}
	if got, err := c.Strings("scalar"); err != nil || len(got) != 1 || got[0] != "vanilla" {
		t.Fatalf("Strings(scalar) = %v, %v", got, err)
	}
	if _, err := c.Strings("mixed"); !errors.Is(err, ErrBadParameter) {
		t.Fatalf("Strings(mixed) error = %v, want ErrBadParameter", err)
	}
}

func TestContextSetGetUsesShortNames(t *testing.T) {
	t.Parallel()

	set := NewContextSet(testSession, []Context{
		{Name: testSession + "/contexts/awaiting_flavors", LifespanCount: 1, Parameters: map[string]any{ParamScoops: 2}},
	})

	c, ok := set.Get(ContextAwaitingFlavors)
	if !ok {
		t.Fatal("Get(awaiting_flavors) = not found")
	}
	scoops, err := c.Int(ParamScoops)
	if err != nil || scoops != 2 {
		t.Fatalf("scoops = %d, %v", scoops, err)
	}
}

func TestContextSetUpsertLastWriteWins(t *testing.T) {
	t.Parallel()

	set := NewContextSet(testSession, nil)
	set.Set(ContextAwaitingFlavors, map[string]any{ParamScoops: 2})
	set.Set(ContextAwaitingFlavors, map[string]any{ParamScoops: 5})

	c, ok := set.Get(ContextAwaitingFlavors)
	if !ok {
		t.Fatal("Get() = not found after Set")
	}
	if scoops, _ := c.Int(ParamScoops); scoops != 5 {
		t.Fatalf("scoops = %d, want 5 (latest write)", scoops)
	}

	updates := set.Updates()
	if len(updates) != 1 {
		t.Fatalf("Updates() returned %d contexts, want 1", len(updates))
	}
	if scoops, _ := updates[0].Int(ParamScoops); scoops != 5 {
		t.Fatalf("updates scoops = %d, want 5", scoops)
	}
}

func TestContextSetUpdatesQualifiesNames(t *testing.T) {
	t.Parallel()

	set := NewContextSet(testSession, nil)
	set.Set(ContextAwaitingFlavors, map[string]any{ParamScoops: 1})

	updates := set.Updates()
	want := testSession + "/contexts/awaiting_flavors"
	if len(updates) != 1 || updates[0].Name != want {
		t.Fatalf("Updates()[0].Name = %q, want %q", updates[0].Name, want)
	}
	if updates[0].LifespanCount != DefaultLifespan {
		t.Fatalf("LifespanCount = %d, want %d", updates[0].LifespanCount, DefaultLifespan)
	}
}

func TestConfirmOrderWritesBothViews(t *testing.T) {
	t.Parallel()

	set := NewContextSet(testSession, nil)
	set.ConfirmOrder(OrderDraft{
		Scoops:    2,
		Flavors:   []string{"vanilla", "chocolate"},
		Container: "cup",
	})

	order, ok := set.Get(ContextCustomerOrder)
	if !ok {
		t.Fatal("customer_order not set")
	}
	if _, ok := set.Get(ContextAwaitingConfirmation); !ok {
		t.Fatal("awaiting_confirmation not set")
	}

	draft, err := DraftFromContext(order)
	if err != nil {
		t.Fatalf("DraftFromContext() error = %v", err)
	}
	if draft.Scoops != 2 || draft.Container != "cup" || len(draft.Flavors) != 2 {
		t.Fatalf("round-tripped draft = %+v", draft)
	}
}

func TestResetReentersAwaitingScoops(t *testing.T) {
	t.Parallel()

	set := NewContextSet(testSession, []Context{
		{Name: ContextAwaitingFlavors, Parameters: map[string]any{ParamScoops: 3}},
	})
	set.Reset()

	c, ok := set.Get(ContextAwaitingScoops)
	if !ok {
		t.Fatal("awaiting_scoops not set after Reset")
	}
	if len(c.Parameters) != 0 {
		t.Fatalf("reset context parameters = %v, want empty", c.Parameters)
	}
}
