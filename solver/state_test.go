package solver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateMachineFollowsColumnGenerationLoopShape(t *testing.T) {
	sm := newStateMachine()

	require.NoError(t, sm.transition(StateRelaxed), "Built->Relaxed")
	require.NoError(t, sm.transition(StatePriced), "Relaxed->Priced")
	require.NoError(t, sm.transition(StateRelaxed), "Priced->Relaxed (columns added)")
	require.NoError(t, sm.transition(StatePriced), "Relaxed->Priced")
	require.NoError(t, sm.transition(StateDone), "Priced->Done (no improvement)")
	require.Equal(t, StateDone, sm.current)
}

func TestStateMachineAllowsRelaxedToDoneForRoundBudget(t *testing.T) {
	sm := newStateMachine()
	require.NoError(t, sm.transition(StateRelaxed))
	require.NoError(t, sm.transition(StateDone), "Relaxed->Done (round budget)")
}

func TestStateMachineRejectsInvalidTransition(t *testing.T) {
	sm := newStateMachine()
	require.ErrorIs(t, sm.transition(StatePriced), ErrInvalidTransition)
	require.ErrorIs(t, sm.transition(StateDone), ErrInvalidTransition)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "Built", StateBuilt.String())
	require.Equal(t, "Relaxed", StateRelaxed.String())
	require.Equal(t, "Priced", StatePriced.String())
	require.Equal(t, "Done", StateDone.String())
	require.Equal(t, "Unknown", State(99).String())
}
