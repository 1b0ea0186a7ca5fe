package upload_payment_proof

import (
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// Request модель запроса на загрузку чека
type Request struct {
	BookingID string
	Actor     domain.Actor
	Image     []byte // Содержимое файла как есть
}
