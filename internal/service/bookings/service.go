package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/txmanager"
)

// Options правила, общие для чтения и переходов статусов
type Options struct {
	// HoldUnpaidSlots: неоплаченные бронирования тоже занимают слот
	HoldUnpaidSlots bool
	// Location часовой пояс салона для "сегодня"
	Location *time.Location
}

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	blocking     []domain.BookingStatus
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics Metrics,
	timeProvider TimeProvider,
	opts Options,
	logger Logger,
) *Service {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	return &Service{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: timeProvider,
		blocking:     domain.BlockingSet(opts.HoldUnpaidSlots),
		location:     loc,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование, администратор - любое
func (s *Service) GetByID(ctx context.Context, id string, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, actor.UserID)

	booking, err := s.loadForActor(ctx, "GetByID", id, actor)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования пользователя
// upcoming=true - только будущие pending/confirmed по возрастанию даты,
// иначе вся история, новые первыми
func (s *Service) GetUserBookings(ctx context.Context, userID string, actor domain.Actor, upcoming bool) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, upcoming=%t", userID, upcoming)

	if !actor.IsAdmin && actor.UserID != userID {
		s.logger.Warn("GetUserBookings: user=%s tried to read bookings of user=%s", actor.UserID, userID)
		return nil, ErrAccessDenied
	}

	var (
		bookings []*domain.Booking
		err      error
	)
	if upcoming {
		bookings, err = s.ListUpcoming(ctx, userID)
	} else {
		bookings, err = s.list(ctx, "GetUserBookings", domain.BookingsFilter{
			UserID: &userID,
			Order:  domain.OrderDateDesc,
		})
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(bookings), userID)
	return models.FromDomainBookingList(bookings), nil
}

// ListUpcoming возвращает будущие бронирования пользователя в статусах pending/confirmed
func (s *Service) ListUpcoming(ctx context.Context, userID string) ([]*domain.Booking, error) {
	today := s.today()
	return s.list(ctx, "ListUpcoming", domain.BookingsFilter{
		UserID:    &userID,
		Statuses:  domain.UpcomingStatuses,
		StartDate: &today,
		Order:     domain.OrderDateAsc,
	})
}

// ListBookings список бронирований для администратора с фильтрами по статусу и периоду
func (s *Service) ListBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		s.logger.Warn("ListBookings: end date before start date")
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}

	bookings, err := s.list(ctx, "ListBookings", filter)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ListBookings: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// ListByStatus все бронирования в статусе status, новые первыми
func (s *Service) ListByStatus(ctx context.Context, status domain.BookingStatus) ([]*domain.Booking, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return s.list(ctx, "ListByStatus", domain.BookingsFilter{
		Statuses: []domain.BookingStatus{status},
		Order:    domain.OrderDateDesc,
	})
}

// ListPendingConfirmation бронирования, ожидающие проверки оплаты
func (s *Service) ListPendingConfirmation(ctx context.Context) ([]*domain.Booking, error) {
	return s.ListByStatus(ctx, domain.StatusPendingConfirmation)
}

// ListByDateRange бронирования за период включительно, по возрастанию даты
func (s *Service) ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Booking, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}
	return s.list(ctx, "ListByDateRange", domain.BookingsFilter{
		StartDate: &start,
		EndDate:   &end,
		Order:     domain.OrderDateAsc,
	})
}

// ListToday бронирования на сегодня
func (s *Service) ListToday(ctx context.Context) ([]*domain.Booking, error) {
	today := s.today()
	return s.ListByDateRange(ctx, today, today)
}

// Вспомогательные методы

func (s *Service) list(ctx context.Context, op string, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return bookings, nil
}

// loadForActor загружает бронирование и проверяет права доступа
func (s *Service) loadForActor(ctx context.Context, op string, id string, actor domain.Actor) (*domain.Booking, error) {
	booking, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if !actor.CanAccess(booking) {
		s.logger.Warn("%s: access denied for user=%s to booking id=%s", op, actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

func (s *Service) load(ctx context.Context, op string, id string) (*domain.Booking, error) {
	if err := s.checkID(op, id); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(op, id, err)
	}
	return booking, nil
}

// checkID идентификатор не в формате UUID не может существовать
func (s *Service) checkID(op string, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		s.logger.Warn("%s: malformed booking id=%q", op, id)
		return ErrBookingNotFound
	}
	return nil
}

// mapRepoError переводит ошибки репозитория в ошибки сервиса
func (s *Service) mapRepoError(op string, id string, err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		s.logger.Warn("%s: booking id=%s not found", op, id)
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrInvalidTransition):
		s.logger.Warn("%s: booking id=%s: %v", op, id, err)
		return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	case errors.Is(err, bookingRepo.ErrSlotConflict), errors.Is(err, txmanager.ErrSerialization):
		s.logger.Warn("%s: slot conflict for booking id=%s: %v", op, id, err)
		s.metrics.IncSlotConflict()
		return ErrSlotConflict
	case errors.Is(err, bookingRepo.ErrInvalidStatus):
		return ErrInvalidStatus
	default:
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

// today календарная дата салона, в UTC как и даты бронирований
func (s *Service) today() time.Time {
	now := s.timeProvider.Now().In(s.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

type noopMetrics struct{}

func (noopMetrics) IncTransition(string) {}
func (noopMetrics) IncSlotConflict()     {}
