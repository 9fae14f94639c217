package state

import "fmt"

// OrderDraft is the typed order-in-progress reconstructed from context
// parameters. Container stays empty until the container step.
type OrderDraft struct {
	Scoops    int
	Flavors   []string
	Container string
}

// Balanced reports whether the customer named exactly one flavor per scoop.
// Checked when the flavors arrive and re-checked before persistence, since a
// context could have been tampered with or skipped to.
func (d OrderDraft) Balanced() bool {
	return d.Scoops == len(d.Flavors)
}

// Params renders the draft as context parameters for the next turn.
func (d OrderDraft) Params() map[string]any {
	p := map[string]any{
		ParamScoops:  d.Scoops,
		ParamFlavors: d.Flavors,
	}
	if d.Container != "" {
		p[ParamContainer] = d.Container
	}
	return p
}

// DraftFromContext rebuilds a draft from the customer_order (or
// awaiting_container) context. Fails fast on missing or malformed parameters
// rather than proceeding with undefined values.
func DraftFromContext(c Context) (OrderDraft, error) {
	scoops, err := c.Int(ParamScoops)
	if err != nil {
		return OrderDraft{}, err
	}
	flavors, err := c.Strings(ParamFlavors)
	if err != nil {
		return OrderDraft{}, err
	}

	d := OrderDraft{Scoops: scoops, Flavors: flavors}
	if _, ok := c.Parameters[ParamContainer]; ok {
		container, err := c.String(ParamContainer)
		if err != nil {
			return OrderDraft{}, err
		}
		d.Container = container
	}
	if d.Scoops < 1 {
		return OrderDraft{}, fmt.Errorf("%w: %s.%s must be >= 1", ErrBadParameter, c.ShortName(), ParamScoops)
	}
	return d, nil
}
