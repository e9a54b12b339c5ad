package domain

// NotificationKind identifies the message template sent to one party
type NotificationKind string

const (
	NotifyNone NotificationKind = ""

	// requester side
	NotifyBookingSubmitted         NotificationKind = "booking_submitted"
	NotifyBookingConfirmed         NotificationKind = "booking_confirmed"
	NotifyServiceCompleted         NotificationKind = "service_completed"
	NotifyCancellationAcknowledged NotificationKind = "cancellation_acknowledged"
	NotifyRefundInProgress         NotificationKind = "refund_in_progress"

	// temple side
	NotifyNewBooking            NotificationKind = "new_booking"
	NotifyConfirmationRecorded  NotificationKind = "confirmation_recorded"
	NotifyPayoutCompleted       NotificationKind = "payout_completed"
	NotifyCancelledByRequester  NotificationKind = "cancelled_by_requester"
	NotifyCancellationConfirmed NotificationKind = "cancellation_confirmed"
)

// Transition is a key of the transition table
type Transition struct {
	From   ReservationStatus
	To     ReservationStatus
	Sender Sender
}

// NotificationPlan lists which message each party receives; NotifyNone skips the party
type NotificationPlan struct {
	Requester NotificationKind
	Temple    NotificationKind
}

// IsEmpty returns true if nobody is notified
func (p NotificationPlan) IsEmpty() bool {
	return p.Requester == NotifyNone && p.Temple == NotifyNone
}

// TransitionTable maps a status change to the notifications it triggers
type TransitionTable map[Transition]NotificationPlan

// DefaultTransitions is the lifecycle of a reservation.
// Creation is the (none -> pending) row; pending reached by update notifies nobody.
var DefaultTransitions = TransitionTable{
	{From: StatusNone, To: StatusPending, Sender: SenderAny}: {
		Requester: NotifyBookingSubmitted,
		Temple:    NotifyNewBooking,
	},
	{From: StatusAny, To: StatusAccepted, Sender: SenderAny}: {
		Requester: NotifyBookingConfirmed,
		Temple:    NotifyConfirmationRecorded,
	},
	{From: StatusAny, To: StatusPassed, Sender: SenderAny}: {
		Requester: NotifyServiceCompleted,
		Temple:    NotifyPayoutCompleted,
	},
	{From: StatusAny, To: StatusRejected, Sender: SenderRequester}: {
		Requester: NotifyCancellationAcknowledged,
		Temple:    NotifyCancelledByRequester,
	},
	{From: StatusAny, To: StatusRejected, Sender: SenderTemple}: {
		Requester: NotifyRefundInProgress,
		Temple:    NotifyCancellationConfirmed,
	},
}

// Lookup finds the plan for a transition. The most specific row wins:
// exact match, then any sender, then any source status, then both.
func (t TransitionTable) Lookup(from, to ReservationStatus, sender Sender) (NotificationPlan, bool) {
	candidates := [...]Transition{
		{From: from, To: to, Sender: sender},
		{From: from, To: to, Sender: SenderAny},
		{From: StatusAny, To: to, Sender: sender},
		{From: StatusAny, To: to, Sender: SenderAny},
	}
	for _, key := range candidates {
		if plan, ok := t[key]; ok {
			return plan, true
		}
	}
	return NotificationPlan{}, false
}
