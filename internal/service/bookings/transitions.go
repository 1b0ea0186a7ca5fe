package bookings

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/m04kA/SMC-SalonBookingService/internal/availability"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
)

// Все переходы идут через условный UPDATE репозитория: недопустимый
// исходный статус даёт ErrInvalidTransition без изменения записи.

// AttachPaymentProof прикрепляет чек перевода: pending_payment -> pending_confirmation
// Причина предыдущего отклонения очищается
func (s *Service) AttachPaymentProof(ctx context.Context, id string, proofURL string, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("AttachPaymentProof: booking id=%s by user=%s", id, actor.UserID)

	proofURL = strings.TrimSpace(proofURL)
	if err := validateProofURL(proofURL); err != nil {
		s.logger.Warn("AttachPaymentProof: invalid proof url for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := s.loadForActor(ctx, "AttachPaymentProof", id, actor); err != nil {
		return nil, err
	}

	booking, err := s.apply(ctx, "AttachPaymentProof", id, domain.EventSubmitProof, domain.BookingChange{
		PaymentProofURL:      &proofURL,
		ClearRejectionReason: true,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("AttachPaymentProof: booking id=%s is now %s", id, booking.Status)
	return models.FromDomainBooking(booking), nil
}

// ConfirmPayment подтверждает оплату: pending_confirmation -> confirmed
// Выполняется в serializable транзакции: если слот уже занят другим
// активным бронированием, возвращает ErrSlotConflict
func (s *Service) ConfirmPayment(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("ConfirmPayment: booking id=%s", id)

	var confirmed *domain.Booking
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		booking, err := s.load(ctx, "ConfirmPayment", id)
		if err != nil {
			return err
		}

		if booking.HasDate() {
			sameDay, err := s.bookingRepo.GetActiveForDate(ctx, booking.Date, s.blocking)
			if err != nil {
				return s.mapRepoError("ConfirmPayment", id, err)
			}
			if availability.IsSlotOccupied(sameDay, booking.Date, booking.TimeSlot, booking.StylistID, s.blocking, booking.ID) {
				s.logger.Warn("ConfirmPayment: slot %s %s already taken, booking id=%s",
					booking.Date.Format(domain.DateFormat), booking.TimeSlot, id)
				s.metrics.IncSlotConflict()
				return ErrSlotConflict
			}
		}

		confirmed, err = s.transition(ctx, "ConfirmPayment", id, domain.EventConfirmPayment, domain.BookingChange{
			PaymentStatus:        ptr.Ptr(domain.PaymentPaid),
			MarkPaymentConfirmed: true,
		})
		return err
	})
	if err != nil {
		return nil, s.mapTxError("ConfirmPayment", id, err)
	}

	s.metrics.IncTransition(string(domain.EventConfirmPayment))
	s.logger.Info("ConfirmPayment: booking id=%s confirmed", id)
	return models.FromDomainBooking(confirmed), nil
}

// RejectPayment отклоняет оплату: pending_confirmation -> pending_payment
// Чек удаляется, причина сохраняется как есть (может быть пустой)
func (s *Service) RejectPayment(ctx context.Context, id string, reason string) (*models.BookingResponse, error) {
	s.logger.Info("RejectPayment: booking id=%s", id)

	if len([]rune(reason)) > domain.MaxRejectionReasonLength {
		return nil, fmt.Errorf("%w: rejection reason is too long", ErrInvalidInput)
	}
	if err := s.checkID("RejectPayment", id); err != nil {
		return nil, err
	}

	booking, err := s.apply(ctx, "RejectPayment", id, domain.EventRejectPayment, domain.BookingChange{
		PaymentStatus:     ptr.Ptr(domain.PaymentRejected),
		ClearPaymentProof: true,
		RejectionReason:   &reason,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("RejectPayment: booking id=%s returned to %s", id, booking.Status)
	return models.FromDomainBooking(booking), nil
}

// Complete отмечает визит состоявшимся: confirmed|pending -> completed
func (s *Service) Complete(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("Complete: booking id=%s", id)

	if err := s.checkID("Complete", id); err != nil {
		return nil, err
	}

	booking, err := s.apply(ctx, "Complete", id, domain.EventComplete, domain.BookingChange{})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Complete: booking id=%s completed", id)
	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование из любого незавершённого статуса
// Повторная отмена не является ошибкой, отмена завершённого - ErrInvalidTransition
func (s *Service) Cancel(ctx context.Context, id string, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: booking id=%s by user=%s", id, actor.UserID)

	current, err := s.loadForActor(ctx, "Cancel", id, actor)
	if err != nil {
		return nil, err
	}
	if current.Status == domain.StatusCancelled {
		s.logger.Info("Cancel: booking id=%s is already cancelled", id)
		return models.FromDomainBooking(current), nil
	}

	booking, err := s.apply(ctx, "Cancel", id, domain.EventCancel, domain.BookingChange{})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: booking id=%s cancelled", id)
	return models.FromDomainBooking(booking), nil
}

// OverrideStatus безусловно устанавливает статус (ручная правка администратором)
// Таблица переходов не проверяется
func (s *Service) OverrideStatus(ctx context.Context, id string, status string) (*models.BookingResponse, error) {
	newStatus, err := models.ToDomainBookingStatus(status)
	if err != nil {
		s.logger.Warn("OverrideStatus: invalid status=%q for booking id=%s", status, id)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	current, err := s.load(ctx, "OverrideStatus", id)
	if err != nil {
		return nil, err
	}

	s.logger.Warn("OverrideStatus: bypassing transition guards for booking id=%s: %s -> %s",
		id, current.Status, newStatus)

	booking, err := s.bookingRepo.SetStatus(ctx, id, newStatus)
	if err != nil {
		return nil, s.mapRepoError("OverrideStatus", id, err)
	}

	s.metrics.IncTransition(string(domain.EventOverride))
	return models.FromDomainBooking(booking), nil
}

// apply выполняет переход и учитывает его в метриках
func (s *Service) apply(ctx context.Context, op string, id string, event domain.TransitionEvent, change domain.BookingChange) (*domain.Booking, error) {
	booking, err := s.transition(ctx, op, id, event, change)
	if err != nil {
		return nil, err
	}
	s.metrics.IncTransition(string(event))
	return booking, nil
}

func (s *Service) transition(ctx context.Context, op string, id string, event domain.TransitionEvent, change domain.BookingChange) (*domain.Booking, error) {
	to, ok := domain.TargetStatus(event)
	if !ok {
		return nil, fmt.Errorf("%w: %s - unknown event %s", ErrInternal, op, event)
	}
	change.Status = to

	booking, err := s.bookingRepo.Transition(ctx, id, domain.AllowedSources(event), change)
	if err != nil {
		return nil, s.mapRepoError(op, id, err)
	}
	return booking, nil
}

// mapTxError ошибки из транзакции уже переведены, кроме ошибок самой транзакции
func (s *Service) mapTxError(op string, id string, err error) error {
	if isServiceError(err) {
		return err
	}
	return s.mapRepoError(op, id, err)
}

func isServiceError(err error) bool {
	for _, target := range []error{
		ErrBookingNotFound, ErrAccessDenied, ErrInvalidTransition, ErrSlotConflict,
		ErrInvalidStatus, ErrInvalidInput, ErrInternal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func validateProofURL(raw string) error {
	if raw == "" {
		return errors.New("proof url is required")
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return fmt.Errorf("proof url: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("proof url must be http(s)")
	}
	if u.Host == "" {
		return errors.New("proof url has no host")
	}
	return nil
}
