package notification

import (
	"fmt"
	"time"

	"stagelink/models"

	"github.com/google/uuid"
)

// Event identifies a booking lifecycle transition for notification purposes.
type Event string

const (
	EventRequestCreated            Event = "request_created"
	EventPerformerPrompt           Event = "performer_prompt"
	EventPerformerAccepted         Event = "performer_accepted"
	EventPerformerAcceptedFastPath Event = "performer_accepted_fast_path"
	EventPerformerDeclined         Event = "performer_declined"
	EventVettingApproved           Event = "vetting_approved"
	EventVettingRejected           Event = "vetting_rejected"
	EventDepositSubmitted          Event = "deposit_submitted"
	EventDepositConfirmed          Event = "deposit_confirmed"
	EventAdminRejected             Event = "admin_rejected"
	EventPerformerReassigned       Event = "performer_reassigned"
	EventAdminOverrideNote         Event = "admin_override_note"
)

const senderSystem = "System"

// Dispatch maps a transition to the communication records it fans out. It is a
// pure function of its inputs: it never touches storage or delivery, so every
// audience rule below is unit-testable on its own.
//
// actor is the display name of whoever drove the transition (performer name,
// "Admin", or the client name); it becomes the sender on records that are
// authored rather than system-generated.
func Dispatch(event Event, b models.Booking, actor string) []models.Communication {
	now := time.Now()
	newComm := func(sender, recipient, message string, ctype models.CommunicationType) models.Communication {
		return models.Communication{
			ID:        uuid.New().String(),
			Sender:    sender,
			Recipient: recipient,
			Message:   message,
			BookingID: b.ID,
			Type:      ctype,
			CreatedAt: now,
		}
	}

	eta := ""
	if b.EtaMinutes > 0 {
		eta = fmt.Sprintf(" Quoted response ETA: %d min.", b.EtaMinutes)
	}

	switch event {
	case EventRequestCreated:
		return []models.Communication{
			newComm(senderSystem, models.RecipientUser,
				fmt.Sprintf("Your booking request for %s on %s has been sent. We will update you once the performer responds.", b.EventType, b.Date),
				models.CommStatusUpdate),
			newComm(senderSystem, models.RecipientAdmin,
				fmt.Sprintf("New booking request from %s for %s on %s (%d guests).", b.ClientName, b.EventType, b.Date, b.GuestCount),
				models.CommSystemAlert),
		}

	case EventPerformerPrompt:
		return []models.Communication{
			newComm(senderSystem, b.PerformerID,
				fmt.Sprintf("New booking request: %s on %s at %s, %d hour(s). Please accept or decline.", b.EventType, b.Date, b.Time, b.DurationHours),
				models.CommStatusUpdate),
		}

	case EventPerformerAccepted:
		return []models.Communication{
			newComm(actor, b.PerformerID,
				"You accepted the request. The booking is now under review by our team.",
				models.CommStatusUpdate),
			newComm(senderSystem, models.RecipientAdmin,
				fmt.Sprintf("Performer accepted booking for %s on %s. Client vetting required.%s", b.EventType, b.Date, eta),
				models.CommSystemAlert),
			newComm(senderSystem, models.RecipientUser,
				fmt.Sprintf("The performer accepted your request for %s. Your booking is being reviewed.%s", b.Date, eta),
				models.CommStatusUpdate),
		}

	case EventPerformerAcceptedFastPath:
		return []models.Communication{
			newComm(actor, b.PerformerID,
				"You accepted the request. The client is a returning booker; awaiting their deposit.",
				models.CommStatusUpdate),
			newComm(senderSystem, models.RecipientUser,
				fmt.Sprintf("The performer accepted your request for %s. As a returning client you can proceed straight to the deposit of %.2f.%s", b.Date, b.DepositAmount, eta),
				models.CommStatusUpdate),
			newComm(senderSystem, models.RecipientAdmin,
				fmt.Sprintf("Verified booker %s skipped vetting; booking for %s is awaiting deposit.%s", b.ClientName, b.Date, eta),
				models.CommSystemAlert),
		}

	case EventPerformerDeclined:
		return []models.Communication{
			newComm(senderSystem, models.RecipientAdmin,
				fmt.Sprintf("Performer declined booking for %s on %s.", b.EventType, b.Date),
				models.CommSystemAlert),
			newComm(senderSystem, models.RecipientUser,
				fmt.Sprintf("Unfortunately the performer is unavailable for %s. Please submit a new request to book another performer.", b.Date),
				models.CommStatusUpdate),
		}

	case EventVettingApproved:
		return []models.Communication{
			newComm("Admin", models.RecipientUser,
				fmt.Sprintf("Your booking for %s has been approved. Please pay the deposit of %.2f to secure your slot.", b.Date, b.DepositAmount),
				models.CommStatusUpdate),
			newComm("Admin", b.PerformerID,
				"The client has been vetted. Awaiting their deposit.",
				models.CommStatusUpdate),
		}

	case EventVettingRejected:
		return []models.Communication{
			newComm("Admin", models.RecipientUser,
				"We are unable to proceed with your booking request at this time.",
				models.CommStatusUpdate),
			newComm("Admin", b.PerformerID,
				fmt.Sprintf("The booking for %s did not pass review and has been closed.", b.Date),
				models.CommStatusUpdate),
		}

	case EventDepositSubmitted:
		return []models.Communication{
			newComm(senderSystem, models.RecipientAdmin,
				fmt.Sprintf("Deposit submitted for booking %s (ref %s). Needs verification.", b.ID, b.DepositRef),
				models.CommSystemAlert),
		}

	case EventDepositConfirmed:
		balance := b.TotalCost - b.DepositAmount
		return []models.Communication{
			newComm("Admin", models.RecipientUser,
				fmt.Sprintf("Deposit received. Your booking for %s is confirmed. Balance of %.2f is due on the day of the event.", b.Date, balance),
				models.CommConfirmation),
			// The privacy gate: this is the first and only message that hands
			// the performer the client's contact details and address.
			newComm("Admin", b.PerformerID,
				fmt.Sprintf("Booking confirmed. Client: %s, phone %s. Venue: %s. Date: %s at %s, %d guests. Note: %s",
					b.ClientName, b.ClientPhone, b.Address, b.Date, b.Time, b.GuestCount, b.ClientMessage),
				models.CommConfirmation),
			newComm(senderSystem, models.RecipientAdmin,
				fmt.Sprintf("Booking %s confirmed by %s. Total %.2f, deposit %.2f.", b.ID, b.VerifiedBy, b.TotalCost, b.DepositAmount),
				models.CommConfirmation),
		}

	case EventAdminRejected:
		return []models.Communication{
			newComm("Admin", models.RecipientUser,
				"Your booking request has been declined. Please contact us if you have any questions.",
				models.CommStatusUpdate),
			newComm("Admin", b.PerformerID,
				fmt.Sprintf("The booking for %s has been cancelled by admin.", b.Date),
				models.CommStatusUpdate),
		}

	case EventPerformerReassigned:
		return []models.Communication{
			newComm(senderSystem, models.RecipientAdmin,
				fmt.Sprintf("Booking %s reassigned from performer %s to %s.", b.ID, b.ReassignedFromID, b.PerformerID),
				models.CommAdminNote),
			newComm(senderSystem, models.RecipientUser,
				fmt.Sprintf("A new performer has been assigned to your booking for %s. Awaiting their confirmation.", b.Date),
				models.CommStatusUpdate),
			newComm("Admin", b.ReassignedFromID,
				fmt.Sprintf("You have been unassigned from the booking on %s.", b.Date),
				models.CommStatusUpdate),
			newComm("Admin", b.PerformerID,
				fmt.Sprintf("New assignment: %s on %s at %s. Please accept or decline.", b.EventType, b.Date, b.Time),
				models.CommStatusUpdate),
		}

	case EventAdminOverrideNote:
		return []models.Communication{
			newComm("Admin", models.RecipientAdmin,
				fmt.Sprintf("Decision for booking %s recorded by admin on behalf of performer %s.", b.ID, b.PerformerID),
				models.CommAdminNote),
		}
	}

	return nil
}
