package run

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_HappyPath(t *testing.T) {
	tracker := NewTracker()
	assert.Equal(t, Unauthenticated, tracker.State())

	for _, next := range []State{Authenticated, Provisioned, Seeding, Complete} {
		require.NoError(t, tracker.Advance(next))
		assert.Equal(t, next, tracker.State())
	}
}

func TestTracker_RejectsSkippingStages(t *testing.T) {
	tracker := NewTracker()
	err := tracker.Advance(Provisioned)
	require.Error(t, err)
	assert.Equal(t, Unauthenticated, tracker.State())
}

func TestTracker_RejectsGoingBackwards(t *testing.T) {
	tracker := NewTracker()
	require.NoError(t, tracker.Advance(Authenticated))
	require.NoError(t, tracker.Advance(Provisioned))

	err := tracker.Advance(Authenticated)
	require.Error(t, err)
	assert.Equal(t, Provisioned, tracker.State())
}

func TestTracker_AbortFromAnyNonTerminalState(t *testing.T) {
	for _, setup := range [][]State{
		nil,
		{Authenticated},
		{Authenticated, Provisioned},
		{Authenticated, Provisioned, Seeding},
	} {
		tracker := NewTracker()
		for _, next := range setup {
			require.NoError(t, tracker.Advance(next))
		}
		require.NoError(t, tracker.Abort())
		assert.Equal(t, Aborted, tracker.State())
	}
}

func TestTracker_TerminalStatesAreFinal(t *testing.T) {
	complete := NewTracker()
	for _, next := range []State{Authenticated, Provisioned, Seeding, Complete} {
		require.NoError(t, complete.Advance(next))
	}
	assert.Error(t, complete.Abort())
	assert.Error(t, complete.Advance(Aborted))

	aborted := NewTracker()
	require.NoError(t, aborted.Abort())
	assert.Error(t, aborted.Advance(Authenticated))
	assert.Error(t, aborted.Abort())
}

func TestTracker_CannotAdvanceToAborted(t *testing.T) {
	tracker := NewTracker()
	require.NoError(t, tracker.Advance(Authenticated))
	require.NoError(t, tracker.Advance(Provisioned))
	require.NoError(t, tracker.Advance(Seeding))
	assert.Error(t, tracker.Advance(Aborted))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
	assert.Equal(t, "seeding", Seeding.String())
	assert.Equal(t, "aborted", Aborted.String())
	assert.Equal(t, "state(99)", State(99).String())
}
