package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Requester   domain.Requester     // Снимок данных клиента
	Services    []domain.ServiceItem // Снимок выбранных услуг
	StylistID   string               // Пусто - без предпочтения ("any")
	StylistName string
	Date        time.Time        // Дата бронирования (без времени)
	TimeSlot    types.TimeString // Время начала слота (например, "10:00")
	Notes       string           // Комментарий клиента (опционально)
}

// Options правила резервирования
type Options struct {
	// HoldUnpaidSlots: неоплаченные бронирования тоже занимают слот
	HoldUnpaidSlots bool
	// Location часовой пояс салона
	Location *time.Location
}
