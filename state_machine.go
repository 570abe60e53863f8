package session

import "github.com/goliatone/go-errors"

// Phase is the lifecycle state of the session manager.
type Phase string

const (
	PhaseAnonymous      Phase = "anonymous"
	PhaseAuthenticating Phase = "authenticating"
	PhaseAuthenticated  Phase = "authenticated"
	PhaseRefreshing     Phase = "refreshing"
	PhaseExpired        Phase = "expired"
)

// phaseTransitions is the allowed transition graph. Anonymous reaches
// Authenticated directly when a persisted session is restored without a
// network call, and Refreshing when a stale snapshot forces a startup
// refresh.
var phaseTransitions = map[Phase]map[Phase]struct{}{
	PhaseAnonymous: {
		PhaseAuthenticating: {},
		PhaseAuthenticated:  {},
		PhaseRefreshing:     {},
	},
	PhaseAuthenticating: {
		PhaseAuthenticated: {},
		PhaseAnonymous:     {},
	},
	PhaseAuthenticated: {
		PhaseRefreshing: {},
		PhaseAnonymous:  {},
		PhaseExpired:    {},
	},
	PhaseRefreshing: {
		PhaseAuthenticated: {},
		PhaseAnonymous:     {},
		PhaseExpired:       {},
	},
	PhaseExpired: {
		PhaseAuthenticating: {},
		PhaseRefreshing:     {},
		PhaseAnonymous:      {},
	},
}

func canTransition(from, to Phase) bool {
	if allowed, ok := phaseTransitions[from]; ok {
		_, exists := allowed[to]
		return exists
	}
	return false
}

func invalidTransitionError(from, to Phase) *errors.Error {
	return ErrInvalidTransition.WithMetadata(map[string]any{
		"from": from,
		"to":   to,
	})
}
