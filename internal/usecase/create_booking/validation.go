package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.Requester.UserID) == "" {
		return fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	if len(req.Services) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	if len(req.Services) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: at most %d services per booking", ErrInvalidInput, domain.MaxServicesPerBooking)
	}
	for i, s := range req.Services {
		if err := validateService(s); err != nil {
			return fmt.Errorf("%w: services[%d]: %v", ErrInvalidInput, i, err)
		}
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.TimeSlot.IsZero() {
		return fmt.Errorf("%w: timeSlot is required", ErrInvalidInput)
	}
	if err := req.TimeSlot.Validate(); err != nil {
		return fmt.Errorf("%w: invalid timeSlot format: %v", ErrInvalidInput, err)
	}

	if len([]rune(req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

func validateService(s domain.ServiceItem) error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if s.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if s.Duration <= 0 || s.Duration > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("duration must be between 1 and %d minutes", domain.MaxServiceDurationMinutes)
	}
	return nil
}

// normalizeDate приводит дату к полуночи UTC, как она хранится в БД
func normalizeDate(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// stylistOrAny подставляет "any", если мастер не выбран
func stylistOrAny(id, name string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" || id == domain.AnyStylistID {
		return domain.AnyStylistID, domain.AnyStylistName
	}
	return id, strings.TrimSpace(name)
}
