package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusPendingPayment      BookingStatus = "pending_payment"
	StatusPendingConfirmation BookingStatus = "pending_confirmation"
	StatusPending             BookingStatus = "pending" // legacy, reachable only through admin override
	StatusConfirmed           BookingStatus = "confirmed"
	StatusCompleted           BookingStatus = "completed"
	StatusCancelled           BookingStatus = "cancelled"
)

// PaymentStatus represents the state of the bank transfer for a booking
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRejected PaymentStatus = "rejected"
)

// PaymentMethodTransfer is the only supported payment method
const PaymentMethodTransfer = "transfer"

// AnyStylistID is the "no preference" stylist. A booking with it occupies
// the slot for every specific stylist.
const (
	AnyStylistID   = "any"
	AnyStylistName = "Cualquier profesional"
)

// ServiceItem is a snapshot of a catalog service taken when the booking is created
type ServiceItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Duration int     `json:"duration"` // minutes
}

// Booking represents an appointment at the salon
type Booking struct {
	ID string

	// Requester snapshot, not re-synced with the user profile
	UserID    string
	UserName  string
	UserEmail string
	UserPhone string

	Services    []ServiceItem
	StylistID   string
	StylistName string

	// Date is the calendar date of the appointment. Zero means the stored
	// value was missing or unparseable.
	Date     time.Time
	TimeSlot types.TimeString

	TotalPrice    float64
	TotalDuration int

	Status                 BookingStatus
	PaymentStatus          PaymentStatus
	PaymentMethod          string
	PaymentProofURL        *string
	PaymentProofUploadedAt *time.Time
	PaymentConfirmedAt     *time.Time
	PaymentRejectionReason *string

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasDate returns false for records whose date could not be read
func (b *Booking) HasDate() bool {
	return !b.Date.IsZero()
}

// IsTerminal returns true if no further normal transition is possible
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// AwaitsPaymentProof returns true while the client still has to upload a transfer receipt
func (b *Booking) AwaitsPaymentProof() bool {
	return b.Status == StatusPendingPayment
}

// IsForAnyStylist returns true if the client did not pick a stylist
func (b *Booking) IsForAnyStylist() bool {
	return b.StylistID == "" || b.StylistID == AnyStylistID
}

// StartsAt returns the appointment start moment in loc
func (b *Booking) StartsAt(loc *time.Location) time.Time {
	return b.TimeSlot.On(b.Date, loc)
}

// IsOwnedBy reports whether userID created the booking
func (b *Booking) IsOwnedBy(userID string) bool {
	return b.UserID == userID
}

// Totals sums price and duration over services
func Totals(services []ServiceItem) (price float64, duration int) {
	for _, s := range services {
		price += s.Price
		duration += s.Duration
	}
	return price, duration
}

// Requester is the identity snapshot stored on a new booking
type Requester struct {
	UserID string
	Name   string
	Email  string
	Phone  string
}

// BookingOrder defines list sorting
type BookingOrder int

const (
	// OrderDateDesc sorts most recent first, bookings without a date last
	OrderDateDesc BookingOrder = iota
	// OrderDateAsc sorts earliest first
	OrderDateAsc
)

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	UserID    *string         // Только бронирования пользователя (опционально)
	Statuses  []BookingStatus // Пустой список - все статусы
	StartDate *time.Time      // Начало периода включительно (опционально)
	EndDate   *time.Time      // Конец периода включительно (опционально)
	Order     BookingOrder
}
