package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseTransitions(t *testing.T) {
	tests := []struct {
		from    Phase
		to      Phase
		allowed bool
	}{
		{PhaseAnonymous, PhaseAuthenticating, true},
		{PhaseAnonymous, PhaseAuthenticated, true},
		{PhaseAnonymous, PhaseRefreshing, true},
		{PhaseAnonymous, PhaseExpired, false},

		{PhaseAuthenticating, PhaseAuthenticated, true},
		{PhaseAuthenticating, PhaseAnonymous, true},
		{PhaseAuthenticating, PhaseRefreshing, false},

		{PhaseAuthenticated, PhaseRefreshing, true},
		{PhaseAuthenticated, PhaseAnonymous, true},
		{PhaseAuthenticated, PhaseExpired, true},
		{PhaseAuthenticated, PhaseAuthenticating, false},

		{PhaseRefreshing, PhaseAuthenticated, true},
		{PhaseRefreshing, PhaseAnonymous, true},
		{PhaseRefreshing, PhaseExpired, true},
		{PhaseRefreshing, PhaseAuthenticating, false},

		{PhaseExpired, PhaseAuthenticating, true},
		{PhaseExpired, PhaseRefreshing, true},
		{PhaseExpired, PhaseAnonymous, true},
		{PhaseExpired, PhaseAuthenticated, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, canTransition(tt.from, tt.to))
		})
	}
}

func TestPhaseSelfTransition(t *testing.T) {
	for phase := range phaseTransitions {
		assert.False(t, canTransition(phase, phase), "%s must not transition to itself", phase)
	}
}

func TestInvalidTransitionError(t *testing.T) {
	err := invalidTransitionError(PhaseAuthenticated, PhaseAuthenticating)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}
