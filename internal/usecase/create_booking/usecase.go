package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/availability"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	config       ConfigProvider
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	blocking     []domain.BookingStatus
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	config ConfigProvider,
	txManager TransactionManager,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &UseCase{
		bookingRepo:  bookingRepo,
		config:       config,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		blocking:     domain.BlockingSet(opts.HoldUnpaidSlots),
		location:     loc,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
// Проверка занятости и вставка выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: user=%s, services=%d, stylist=%q, date=%s, time=%s",
		req.Requester.UserID, len(req.Services), req.StylistID, req.Date.Format(domain.DateFormat), req.TimeSlot)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := normalizeDate(req.Date)

	// 2. Конфигурация салона
	cfg, err := uc.config.Current(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get business config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// 3. Дата и время должны попадать в рабочую сетку
	if err := uc.validateSchedule(cfg, date, req.TimeSlot, now); err != nil {
		uc.logger.Warn("CreateBooking: schedule check failed: %v", err)
		return nil, err
	}

	stylistID, stylistName := stylistOrAny(req.StylistID, req.StylistName)
	totalPrice, totalDuration := domain.Totals(req.Services)

	booking := &domain.Booking{
		UserID:        req.Requester.UserID,
		UserName:      strings.TrimSpace(req.Requester.Name),
		UserEmail:     strings.TrimSpace(req.Requester.Email),
		UserPhone:     strings.TrimSpace(req.Requester.Phone),
		Services:      append([]domain.ServiceItem(nil), req.Services...),
		StylistID:     stylistID,
		StylistName:   stylistName,
		Date:          date,
		TimeSlot:      req.TimeSlot,
		TotalPrice:    totalPrice,
		TotalDuration: totalDuration,
		Status:        domain.StatusPendingPayment,
		PaymentStatus: domain.PaymentPending,
		PaymentMethod: domain.PaymentMethodTransfer,
		Notes:         strings.TrimSpace(req.Notes),
	}

	var result *domain.Booking

	// 4. Проверка слота и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		sameDay, err := uc.bookingRepo.GetActiveForDate(txCtx, date, uc.blocking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings for %s: %v", date.Format(domain.DateFormat), err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		if availability.IsSlotOccupied(sameDay, date, req.TimeSlot, stylistID, uc.blocking, "") {
			return ErrSlotConflict
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotConflict) {
				return ErrSlotConflict
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.mapTxError(date, req.TimeSlot, err)
	}

	uc.metrics.IncBookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%s, total=%.0f, duration=%d",
		result.ID, result.TotalPrice, result.TotalDuration)

	return models.FromDomainBooking(result), nil
}

// validateSchedule проверяет выходной день, прошедшую дату и попадание в сетку слотов
func (uc *UseCase) validateSchedule(cfg *domain.BusinessConfig, date time.Time, slot types.TimeString, now time.Time) error {
	if cfg.IsDayOff(date) {
		return fmt.Errorf("%w: %s", ErrDayOff, date.Weekday())
	}

	if availability.IsDateInPast(date, now, uc.location) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}

	if !availability.IsOnGrid(slot, cfg.OpenTime, cfg.CloseTime, cfg.SlotDuration) {
		return fmt.Errorf("%w: %s is not a slot between %s and %s every %d min",
			ErrInvalidTimeSlot, slot, cfg.OpenTime, cfg.CloseTime, cfg.SlotDuration)
	}

	if slot.On(date, uc.location).Before(now) {
		return fmt.Errorf("%w: %s %s", ErrSlotInPast, date.Format(domain.DateFormat), slot)
	}

	return nil
}

func (uc *UseCase) mapTxError(date time.Time, slot types.TimeString, err error) error {
	switch {
	case errors.Is(err, ErrSlotConflict), errors.Is(err, txmanager.ErrSerialization):
		uc.logger.Warn("CreateBooking: slot %s %s is already booked", date.Format(domain.DateFormat), slot)
		uc.metrics.IncSlotConflict()
		return ErrSlotConflict
	case errors.Is(err, ErrInternal):
		return err
	default:
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}
}

type noopMetrics struct{}

func (noopMetrics) IncBookingCreated() {}
func (noopMetrics) IncSlotConflict()   {}
