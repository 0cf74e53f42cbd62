package notification_test

import (
	"testing"

	"stagelink/models"
	"stagelink/services/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBooking() models.Booking {
	return models.Booking{
		ID:               "bk-1",
		PerformerID:      "perf-1",
		ReassignedFromID: "perf-0",
		ClientName:       "Dana Cole",
		ClientPhone:      "+1 555 0100",
		Address:          "12 Harbor Lane",
		Date:             "2026-10-01",
		Time:             "20:00",
		EventType:        "birthday",
		DurationHours:    3,
		GuestCount:       25,
		TotalCost:        400,
		DepositAmount:    120,
		VerifiedBy:       "Morgan",
	}
}

func recipientsOf(comms []models.Communication) []string {
	out := make([]string, 0, len(comms))
	for _, c := range comms {
		out = append(out, c.Recipient)
	}
	return out
}

func TestDispatch_AudiencesPerEvent(t *testing.T) {
	b := sampleBooking()

	cases := []struct {
		event      notification.Event
		recipients []string
	}{
		{notification.EventRequestCreated, []string{models.RecipientUser, models.RecipientAdmin}},
		{notification.EventPerformerPrompt, []string{"perf-1"}},
		{notification.EventPerformerAccepted, []string{"perf-1", models.RecipientAdmin, models.RecipientUser}},
		{notification.EventPerformerAcceptedFastPath, []string{"perf-1", models.RecipientUser, models.RecipientAdmin}},
		{notification.EventPerformerDeclined, []string{models.RecipientAdmin, models.RecipientUser}},
		{notification.EventVettingApproved, []string{models.RecipientUser, "perf-1"}},
		{notification.EventVettingRejected, []string{models.RecipientUser, "perf-1"}},
		{notification.EventDepositSubmitted, []string{models.RecipientAdmin}},
		{notification.EventDepositConfirmed, []string{models.RecipientUser, "perf-1", models.RecipientAdmin}},
		{notification.EventAdminRejected, []string{models.RecipientUser, "perf-1"}},
		{notification.EventPerformerReassigned, []string{models.RecipientAdmin, models.RecipientUser, "perf-0", "perf-1"}},
		{notification.EventAdminOverrideNote, []string{models.RecipientAdmin}},
	}

	for _, tc := range cases {
		t.Run(string(tc.event), func(t *testing.T) {
			comms := notification.Dispatch(tc.event, b, "Luna")
			assert.ElementsMatch(t, tc.recipients, recipientsOf(comms))
		})
	}
}

func TestDispatch_EveryRecordLinksTheBooking(t *testing.T) {
	b := sampleBooking()
	events := []notification.Event{
		notification.EventRequestCreated,
		notification.EventPerformerAccepted,
		notification.EventDepositConfirmed,
		notification.EventPerformerReassigned,
	}

	for _, event := range events {
		for _, c := range notification.Dispatch(event, b, "Luna") {
			assert.Equal(t, b.ID, c.BookingID)
			assert.NotEmpty(t, c.ID)
			assert.False(t, c.CreatedAt.IsZero())
		}
	}
}

func TestDispatch_ContactDetailsOnlyOnConfirmation(t *testing.T) {
	b := sampleBooking()

	// Before confirmation the performer never sees the client's phone or address.
	preConfirmation := []notification.Event{
		notification.EventPerformerPrompt,
		notification.EventPerformerAccepted,
		notification.EventVettingApproved,
		notification.EventPerformerReassigned,
	}
	for _, event := range preConfirmation {
		for _, c := range notification.Dispatch(event, b, "Luna") {
			if c.Recipient != b.PerformerID {
				continue
			}
			assert.NotContains(t, c.Message, b.ClientPhone, "event %s", event)
			assert.NotContains(t, c.Message, b.Address, "event %s", event)
		}
	}

	// On confirmation the performer-facing record carries both.
	var performerMsg string
	for _, c := range notification.Dispatch(notification.EventDepositConfirmed, b, "Morgan") {
		if c.Recipient == b.PerformerID {
			performerMsg = c.Message
		}
	}
	require.NotEmpty(t, performerMsg)
	assert.Contains(t, performerMsg, b.ClientPhone)
	assert.Contains(t, performerMsg, b.Address)
}

func TestDispatch_EtaAppearsWhenQuoted(t *testing.T) {
	b := sampleBooking()
	b.EtaMinutes = 15

	comms := notification.Dispatch(notification.EventPerformerAccepted, b, "Luna")
	found := false
	for _, c := range comms {
		if c.Recipient == models.RecipientUser {
			assert.Contains(t, c.Message, "15 min")
			found = true
		}
	}
	assert.True(t, found)
}

func TestDispatch_UnknownEventReturnsNothing(t *testing.T) {
	assert.Empty(t, notification.Dispatch(notification.Event("no_such_event"), sampleBooking(), "x"))
}
