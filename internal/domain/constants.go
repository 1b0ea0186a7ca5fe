package domain

// Default business configuration values
const (
	DefaultOpenTime                = "09:00"
	DefaultCloseTime               = "20:00"
	DefaultSlotDurationMinutes     = 30
	DefaultServiceDurationMinutes  = 30
	DefaultCurrency                = "PYG"
	DefaultCancellationPolicyHours = 24
)

// Business validation constants
const (
	MinSlotDurationMinutes    = 5
	MaxSlotDurationMinutes    = 480 // 8 hours
	MaxServicesPerBooking     = 20
	MaxNotesLength            = 500
	MaxRejectionReasonLength  = 500
	MaxServiceDurationMinutes = 720
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses are the statuses that occupy a slot
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// UnpaidHoldStatuses additionally occupy a slot when unpaid holds are enabled
var UnpaidHoldStatuses = []BookingStatus{
	StatusPendingPayment,
	StatusPendingConfirmation,
}

// BlockingSet returns the statuses that occupy a slot under the given policy
func BlockingSet(holdUnpaid bool) []BookingStatus {
	out := make([]BookingStatus, 0, len(BlockingStatuses)+len(UnpaidHoldStatuses))
	out = append(out, BlockingStatuses...)
	if holdUnpaid {
		out = append(out, UnpaidHoldStatuses...)
	}
	return out
}

// UpcomingStatuses are shown in the client's "upcoming" list
var UpcomingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

var AllStatuses = []BookingStatus{
	StatusPendingPayment,
	StatusPendingConfirmation,
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// IsValid reports whether s is a known status
func (s BookingStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ContainsStatus reports whether s is in list
func ContainsStatus(list []BookingStatus, s BookingStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
