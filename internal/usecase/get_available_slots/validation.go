package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.ServiceDuration != nil {
		d := *req.ServiceDuration
		if d <= 0 || d > domain.MaxServiceDurationMinutes {
			return fmt.Errorf("%w: service duration must be between 1 and %d minutes",
				ErrInvalidInput, domain.MaxServiceDurationMinutes)
		}
	}

	return nil
}

// serviceDuration длительность услуги с подстановкой значения по умолчанию
func serviceDuration(req *Request) int {
	if req.ServiceDuration == nil {
		return domain.DefaultServiceDurationMinutes
	}
	return *req.ServiceDuration
}

// normalizeDate приводит дату к полуночи UTC, как она хранится в БД
func normalizeDate(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
