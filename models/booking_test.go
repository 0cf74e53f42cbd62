package models_test

import (
	"testing"

	"stagelink/models"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_TransitionGraph(t *testing.T) {
	allowed := []struct {
		from, to models.BookingStatus
	}{
		{models.StatusPendingPerformerAcceptance, models.StatusPendingVetting},
		{models.StatusPendingPerformerAcceptance, models.StatusDepositPending}, // verified-booker fast path
		{models.StatusPendingPerformerAcceptance, models.StatusRejected},
		{models.StatusPendingVetting, models.StatusDepositPending},
		{models.StatusPendingVetting, models.StatusRejected},
		{models.StatusDepositPending, models.StatusPendingDepositConfirmation},
		{models.StatusDepositPending, models.StatusRejected},
		{models.StatusPendingDepositConfirmation, models.StatusConfirmed},
		{models.StatusPendingDepositConfirmation, models.StatusRejected},
	}
	for _, tc := range allowed {
		assert.True(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct {
		from, to models.BookingStatus
	}{
		{models.StatusPendingPerformerAcceptance, models.StatusConfirmed},
		{models.StatusPendingVetting, models.StatusConfirmed},
		{models.StatusDepositPending, models.StatusConfirmed},
		{models.StatusDepositPending, models.StatusPendingVetting}, // no backward edges
		{models.StatusConfirmed, models.StatusRejected},
		{models.StatusRejected, models.StatusPendingPerformerAcceptance},
	}
	for _, tc := range denied {
		assert.False(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestBookingStatus_TerminalStates(t *testing.T) {
	assert.True(t, models.StatusConfirmed.Terminal())
	assert.True(t, models.StatusRejected.Terminal())

	assert.False(t, models.StatusPendingPerformerAcceptance.Terminal())
	assert.False(t, models.StatusPendingVetting.Terminal())
	assert.False(t, models.StatusDepositPending.Terminal())
	assert.False(t, models.StatusPendingDepositConfirmation.Terminal())

	// An unknown value is invalid, not terminal.
	assert.False(t, models.BookingStatus("cancelled").Terminal())
	assert.False(t, models.BookingStatus("cancelled").Valid())
}
