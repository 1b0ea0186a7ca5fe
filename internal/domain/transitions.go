package domain

// TransitionEvent is an action that moves a booking between statuses
type TransitionEvent string

const (
	EventSubmitProof    TransitionEvent = "submit_proof"
	EventConfirmPayment TransitionEvent = "confirm_payment"
	EventRejectPayment  TransitionEvent = "reject_payment"
	EventComplete       TransitionEvent = "complete"
	EventCancel         TransitionEvent = "cancel"
	EventOverride       TransitionEvent = "override"
)

type transition struct {
	from []BookingStatus
	to   BookingStatus
}

// Cancel lists cancelled as a source so that a repeated cancel is a no-op.
var transitions = map[TransitionEvent]transition{
	EventSubmitProof: {
		from: []BookingStatus{StatusPendingPayment},
		to:   StatusPendingConfirmation,
	},
	EventConfirmPayment: {
		from: []BookingStatus{StatusPendingConfirmation},
		to:   StatusConfirmed,
	},
	EventRejectPayment: {
		from: []BookingStatus{StatusPendingConfirmation},
		to:   StatusPendingPayment,
	},
	EventComplete: {
		from: []BookingStatus{StatusConfirmed, StatusPending},
		to:   StatusCompleted,
	},
	EventCancel: {
		from: []BookingStatus{
			StatusPendingPayment,
			StatusPendingConfirmation,
			StatusPending,
			StatusConfirmed,
			StatusCancelled,
		},
		to: StatusCancelled,
	},
}

// AllowedSources returns the statuses event may be applied to.
// EventOverride and unknown events have no guarded sources.
func AllowedSources(event TransitionEvent) []BookingStatus {
	t, ok := transitions[event]
	if !ok {
		return nil
	}
	out := make([]BookingStatus, len(t.from))
	copy(out, t.from)
	return out
}

// TargetStatus returns the status a booking ends up in after event
func TargetStatus(event TransitionEvent) (BookingStatus, bool) {
	t, ok := transitions[event]
	return t.to, ok
}

// CanTransition reports whether event is legal for a booking in status from
func CanTransition(event TransitionEvent, from BookingStatus) bool {
	t, ok := transitions[event]
	if !ok {
		return false
	}
	return ContainsStatus(t.from, from)
}

// BookingChange lists the columns written together with a status change.
// Fields left zero are not touched.
type BookingChange struct {
	Status               BookingStatus
	PaymentStatus        *PaymentStatus
	PaymentProofURL      *string // also stamps payment_proof_uploaded_at
	ClearPaymentProof    bool
	RejectionReason      *string
	ClearRejectionReason bool
	MarkPaymentConfirmed bool // stamps payment_confirmed_at
}
