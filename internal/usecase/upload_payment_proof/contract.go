package upload_payment_proof

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/integrations/imagehost"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
)

// BookingService операции сервиса бронирований, нужные для загрузки чека
type BookingService interface {
	GetByID(ctx context.Context, id string, actor domain.Actor) (*models.BookingResponse, error)
	AttachPaymentProof(ctx context.Context, id string, proofURL string, actor domain.Actor) (*models.BookingResponse, error)
}

// ImageUploader клиент хостинга изображений
type ImageUploader interface {
	Upload(ctx context.Context, name string, image []byte) (*imagehost.UploadResult, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
