package upload_payment_proof

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	bookingsService "github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/imageproc"
)

// UseCase use case загрузки чека о переводе
type UseCase struct {
	bookings     BookingService
	uploader     ImageUploader
	imageOpts    imageproc.Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookings BookingService,
	uploader ImageUploader,
	imageOpts imageproc.Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookings:     bookings,
		uploader:     uploader,
		imageOpts:    imageOpts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute проверяет бронирование, загружает изображение на хостинг
// и прикрепляет полученный URL: pending_payment -> pending_confirmation
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("UploadPaymentProof: booking id=%s by user=%s, %d bytes", req.BookingID, req.Actor.UserID, len(req.Image))

	if len(req.Image) == 0 {
		return nil, fmt.Errorf("%w: image is required", ErrInvalidImage)
	}

	// 1. Бронирование существует, принадлежит пользователю и ждёт чек
	booking, err := uc.bookings.GetByID(ctx, req.BookingID, req.Actor)
	if err != nil {
		return nil, uc.mapServiceError(req.BookingID, err)
	}
	if booking.Status != string(domain.StatusPendingPayment) {
		uc.logger.Warn("UploadPaymentProof: booking id=%s is %s, not awaiting proof", req.BookingID, booking.Status)
		return nil, ErrInvalidStatus
	}

	// 2. Проверка и уменьшение изображения
	img, err := imageproc.Normalize(req.Image, uc.imageOpts)
	if err != nil {
		uc.logger.Warn("UploadPaymentProof: image rejected for booking id=%s: %v", req.BookingID, err)
		if errors.Is(err, imageproc.ErrTooLarge) {
			return nil, fmt.Errorf("%w: %v", ErrImageTooLarge, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	// 3. Загрузка на хостинг
	name := fmt.Sprintf("payment_%s_%d", req.BookingID, uc.timeProvider.Now().Unix())
	uploaded, err := uc.uploader.Upload(ctx, name, img.Data)
	if err != nil {
		uc.logger.Error("UploadPaymentProof: upload failed for booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	// 4. Переход статуса
	updated, err := uc.bookings.AttachPaymentProof(ctx, req.BookingID, uploaded.URL, req.Actor)
	if err != nil {
		return nil, uc.mapServiceError(req.BookingID, err)
	}

	uc.logger.Info("UploadPaymentProof: booking id=%s proof attached: %s", req.BookingID, uploaded.URL)
	return updated, nil
}

func (uc *UseCase) mapServiceError(id string, err error) error {
	switch {
	case errors.Is(err, bookingsService.ErrBookingNotFound):
		return ErrBookingNotFound
	case errors.Is(err, bookingsService.ErrAccessDenied):
		return ErrAccessDenied
	case errors.Is(err, bookingsService.ErrInvalidTransition):
		// статус сменился между проверкой и переходом
		return ErrInvalidStatus
	default:
		uc.logger.Error("UploadPaymentProof: booking id=%s: %v", id, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
