package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/availability"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// UseCase use case для получения слотов на день
type UseCase struct {
	bookingRepo  BookingRepository
	config       ConfigProvider
	timeProvider TimeProvider
	blocking     []domain.BookingStatus
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	config ConfigProvider,
	opts Options,
	logger Logger,
) *UseCase {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	return &UseCase{
		bookingRepo:  bookingRepo,
		config:       config,
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

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, stylist=%q", req.Date.Format(domain.DateFormat), req.StylistID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	date := normalizeDate(req.Date)

	// 2. Прошедшие даты не показываем
	if availability.IsDateInPast(date, now, uc.location) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Конфигурация салона
	cfg, err := uc.config.Current(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get business config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:            date,
		StylistID:       req.StylistID,
		ServiceDuration: serviceDuration(req),
		SlotDuration:    cfg.SlotDuration,
		Slots:           []Slot{},
	}

	// 4. Выходной день: пустая сетка
	if cfg.IsDayOff(date) {
		uc.logger.Info("GetAvailableSlots: salon is closed on %s", date.Format(domain.DateFormat))
		resp.Closed = true
		return resp, nil
	}

	// 5. Бронирования на этот день
	bookings, err := uc.bookingRepo.GetActiveForDate(ctx, date, uc.blocking)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Расчёт сетки
	slots := availability.ComputeSlots(availability.Params{
		Date:                   date,
		StylistID:              req.StylistID,
		ServiceDurationMinutes: resp.ServiceDuration,
		Config:                 *cfg,
		Bookings:               bookings,
		Now:                    now,
		Location:               uc.location,
		BlockingStatuses:       uc.blocking,
	})

	free := 0
	for _, s := range slots {
		resp.Slots = append(resp.Slots, Slot{
			Time:      s.Time,
			Available: s.Available,
			IsPast:    s.IsPast,
		})
		if s.Available {
			free++
		}
	}

	uc.logger.Info("GetAvailableSlots: %d of %d slots available on %s", free, len(slots), date.Format(domain.DateFormat))
	return resp, nil
}
