package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/pgerrors"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db    DBExecutor
	newID func() string
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db, newID: uuid.NewString}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Нарушение уникального индекса занятых слотов и конфликт сериализации
// возвращаются как ErrSlotConflict.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == "" {
		booking.ID = r.newID()
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"user_id",
			"user_name",
			"user_email",
			"user_phone",
			"services",
			"stylist_id",
			"stylist_name",
			"booking_date",
			"time_slot",
			"total_price",
			"total_duration",
			"status",
			"payment_status",
			"payment_method",
			"notes",
		).
		Values(
			booking.ID,
			booking.UserID,
			booking.UserName,
			booking.UserEmail,
			booking.UserPhone,
			servicesColumn(booking.Services),
			booking.StylistID,
			booking.StylistName,
			dateValue(booking.Date),
			booking.TimeSlot,
			booking.TotalPrice,
			booking.TotalDuration,
			booking.Status,
			booking.PaymentStatus,
			booking.PaymentMethod,
			booking.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) || pgerrors.IsSerializationFailure(err) {
			return nil, fmt.Errorf("%w: Create - %s %s: %v", ErrSlotConflict, booking.Date.Format(domain.DateFormat), booking.TimeSlot, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows || pgerrors.IsInvalidText(err) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List возвращает бронирования по фильтру
// Сортировка по дате по убыванию (записи без даты в конце) либо по возрастанию.
// Внутри транзакции выборка за один день блокируется FOR UPDATE.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table)

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": filter.Statuses})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": dateValue(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": dateValue(*filter.EndDate)})
	}

	switch filter.Order {
	case domain.OrderDateAsc:
		selectBuilder = selectBuilder.OrderBy("booking_date ASC", "time_slot ASC", "created_at ASC")
	default:
		selectBuilder = selectBuilder.OrderBy("booking_date DESC NULLS LAST", "time_slot DESC", "created_at DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && isSingleDay(filter) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// GetActiveForDate возвращает бронирования дня в статусах statuses
func (r *Repository) GetActiveForDate(ctx context.Context, date time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error) {
	return r.List(ctx, domain.BookingsFilter{
		Statuses:  statuses,
		StartDate: &date,
		EndDate:   &date,
		Order:     domain.OrderDateAsc,
	})
}

// Transition атомарно меняет статус, только если текущий статус входит в from
// Если строка не обновлена: ErrBookingNotFound для несуществующего id,
// иначе ErrInvalidTransition.
func (r *Repository) Transition(ctx context.Context, id string, from []domain.BookingStatus, change domain.BookingChange) (*domain.Booking, error) {
	if !change.Status.IsValid() {
		return nil, fmt.Errorf("%w: Transition - %q", ErrInvalidStatus, change.Status)
	}
	if len(from) == 0 {
		return nil, fmt.Errorf("%w: Transition - no source statuses for %s", ErrInvalidTransition, change.Status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := applyChange(psqlbuilder.Update(table), change).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		Suffix("RETURNING " + joinColumns())

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Transition - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, r.explainMiss(ctx, id, change.Status)
	}
	if pgerrors.IsInvalidText(err) {
		return nil, ErrBookingNotFound
	}
	if pgerrors.IsUniqueViolation(err) || pgerrors.IsSerializationFailure(err) {
		return nil, fmt.Errorf("%w: Transition - %s: %v", ErrSlotConflict, id, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Transition - execute update: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// SetStatus безусловно перезаписывает статус (ручная правка администратором)
func (r *Repository) SetStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: SetStatus - %q", ErrInvalidStatus, status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SetStatus - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows || pgerrors.IsInvalidText(err) {
		return nil, ErrBookingNotFound
	}
	if pgerrors.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: SetStatus - %s: %v", ErrSlotConflict, id, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: SetStatus - execute update: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// explainMiss определяет, почему условный UPDATE не затронул строку
func (r *Repository) explainMiss(ctx context.Context, id string, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status").
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Transition - build status query: %v", ErrBuildQuery, err)
	}

	var current domain.BookingStatus
	err = executor.QueryRowContext(ctx, query, args...).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Transition - read current status: %v", ErrScanRow, err)
	}

	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, to)
}

func applyChange(b squirrel.UpdateBuilder, change domain.BookingChange) squirrel.UpdateBuilder {
	b = b.Set("status", change.Status)

	if change.PaymentStatus != nil {
		b = b.Set("payment_status", *change.PaymentStatus)
	}
	switch {
	case change.PaymentProofURL != nil:
		b = b.Set("payment_proof_url", *change.PaymentProofURL).
			Set("payment_proof_uploaded_at", squirrel.Expr("NOW()"))
	case change.ClearPaymentProof:
		b = b.Set("payment_proof_url", nil)
	}
	switch {
	case change.RejectionReason != nil:
		b = b.Set("payment_rejection_reason", *change.RejectionReason)
	case change.ClearRejectionReason:
		b = b.Set("payment_rejection_reason", nil)
	}
	if change.MarkPaymentConfirmed {
		b = b.Set("payment_confirmed_at", squirrel.Expr("NOW()"))
	}

	return b.Set("updated_at", squirrel.Expr("NOW()"))
}

func isSingleDay(filter domain.BookingsFilter) bool {
	if filter.StartDate == nil || filter.EndDate == nil {
		return false
	}
	y1, m1, d1 := filter.StartDate.Date()
	y2, m2, d2 := filter.EndDate.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func joinColumns() string {
	return strings.Join(columns, ", ")
}
