package upload_payment_proof

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	uploadProof "github.com/m04kA/SMC-SalonBookingService/internal/usecase/upload_payment_proof"
)

// UploadUseCase загрузка файла чека на хостинг
type UploadUseCase interface {
	Execute(ctx context.Context, req *uploadProof.Request) (*models.BookingResponse, error)
}

// BookingService прикрепление уже размещённого чека по ссылке
type BookingService interface {
	AttachPaymentProof(ctx context.Context, id string, proofURL string, actor domain.Actor) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
