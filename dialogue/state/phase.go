package state

// Phase is the dialogue position as a typed value instead of a bag of
// string-keyed contexts. Derived, never stored: the contexts remain the
// source of truth because the platform owns their lifespans.
type Phase int

const (
	PhaseAwaitingScoops Phase = iota
	PhaseAwaitingFlavors
	PhaseAwaitingContainer
	PhaseAwaitingConfirmation
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingScoops:
		return "awaiting_scoops"
	case PhaseAwaitingFlavors:
		return "awaiting_flavors"
	case PhaseAwaitingContainer:
		return "awaiting_container"
	case PhaseAwaitingConfirmation:
		return "awaiting_confirmation"
	default:
		return "unknown"
	}
}

// ActivePhase maps the context set onto the dialogue position. Later phases
// shadow earlier ones so a stale early context cannot drag the dialogue back.
func ActivePhase(s *ContextSet) Phase {
	if _, ok := s.Get(ContextAwaitingConfirmation); ok {
		return PhaseAwaitingConfirmation
	}
	if _, ok := s.Get(ContextAwaitingContainer); ok {
		return PhaseAwaitingContainer
	}
	if _, ok := s.Get(ContextAwaitingFlavors); ok {
		return PhaseAwaitingFlavors
	}
	return PhaseAwaitingScoops
}
