package booking

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

const table = "bookings"

var columns = []string{
	"id",
	"user_id",
	"user_name",
	"user_email",
	"user_phone",
	"services",
	"stylist_id",
	"stylist_name",
	"booking_date",
	"time_slot",
	"total_price",
	"total_duration",
	"status",
	"payment_status",
	"payment_method",
	"payment_proof_url",
	"payment_proof_uploaded_at",
	"payment_confirmed_at",
	"payment_rejection_reason",
	"notes",
	"created_at",
	"updated_at",
}

// servicesColumn хранит снимок услуг в JSONB
type servicesColumn []domain.ServiceItem

// Value отдаёт строку, а не []byte: lib/pq кодирует []byte как bytea
func (s servicesColumn) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]domain.ServiceItem(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *servicesColumn) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*s = servicesColumn{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("services: unsupported type %T", src)
	}
	return json.Unmarshal(data, (*[]domain.ServiceItem)(s))
}

// dateValue сохраняет только календарную дату, нулевая дата - NULL
func dateValue(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(domain.DateFormat)
}

func scanBooking(row scanner) (*domain.Booking, error) {
	var (
		b         domain.Booking
		services  servicesColumn
		date      scanDate
		proofURL  *string
		uploaded  *time.Time
		confirmed *time.Time
		reason    *string
	)

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.UserName,
		&b.UserEmail,
		&b.UserPhone,
		&services,
		&b.StylistID,
		&b.StylistName,
		&date,
		&b.TimeSlot,
		&b.TotalPrice,
		&b.TotalDuration,
		&b.Status,
		&b.PaymentStatus,
		&b.PaymentMethod,
		&proofURL,
		&uploaded,
		&confirmed,
		&reason,
		&b.Notes,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Services = services
	b.Date = date.t
	b.PaymentProofURL = proofURL
	b.PaymentProofUploadedAt = uploaded
	b.PaymentConfirmedAt = confirmed
	b.PaymentRejectionReason = reason

	return &b, nil
}

// scanDate читает booking_date. NULL и нераспознанное значение дают нулевую дату,
// чтобы одна битая запись не ломала список.
type scanDate struct {
	t time.Time
}

func (d *scanDate) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		d.t = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
	case []byte:
		d.t = parseDate(string(v))
	case string:
		d.t = parseDate(v)
	default:
		d.t = time.Time{}
	}
	return nil
}

func parseDate(s string) time.Time {
	if len(s) >= len(domain.DateFormat) {
		s = s[:len(domain.DateFormat)]
	}
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
