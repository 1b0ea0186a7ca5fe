// Package availability строит сетку слотов на день и определяет занятость.
// Пакет не ходит в хранилище: все данные передаются в Params.
package availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Params входные данные для расчёта слотов
type Params struct {
	Date      time.Time
	StylistID string // пусто или "any" - без предпочтения

	// ServiceDurationMinutes не влияет на сетку: услуга длиннее слота
	// не объединяет соседние слоты и не проверяется на выход за время закрытия
	ServiceDurationMinutes int

	Config   domain.BusinessConfig
	Bookings []*domain.Booking
	Now      time.Time

	// Location часовой пояс салона, nil - пояс Now
	Location *time.Location

	// BlockingStatuses статусы, занимающие слот. nil - domain.BlockingStatuses
	BlockingStatuses []domain.BookingStatus
}

// ComputeSlots возвращает слоты дня в порядке возрастания времени
func ComputeSlots(p Params) []domain.Slot {
	grid := GenerateGrid(p.Config.OpenTime, p.Config.CloseTime, p.Config.SlotDuration)
	if len(grid) == 0 {
		return []domain.Slot{}
	}

	loc := p.Location
	if loc == nil {
		loc = p.Now.Location()
	}
	blocking := p.BlockingStatuses
	if blocking == nil {
		blocking = domain.BlockingStatuses
	}

	slots := make([]domain.Slot, 0, len(grid))
	for _, t := range grid {
		booked := IsSlotOccupied(p.Bookings, p.Date, t, p.StylistID, blocking, "")
		isPast := t.On(p.Date, loc).Before(p.Now)

		slots = append(slots, domain.Slot{
			Time:      t,
			Available: !booked && !isPast,
			IsPast:    isPast,
		})
	}

	return slots
}

// GenerateGrid генерирует время начала слотов от open с шагом step строго до close
func GenerateGrid(open, close types.TimeString, step int) []types.TimeString {
	if step <= 0 || open.Validate() != nil || close.Validate() != nil {
		return []types.TimeString{}
	}
	if !open.IsBefore(close) {
		return []types.TimeString{}
	}

	grid := make([]types.TimeString, 0, (close.Minutes()-open.Minutes())/step+1)
	current := open
	for current.IsBefore(close) {
		grid = append(grid, current)

		next, err := current.AddMinutes(step)
		if err != nil {
			// Вышли за пределы суток
			break
		}
		current = next
	}

	return grid
}

// IsOnGrid проверяет, что t совпадает с одним из слотов сетки
func IsOnGrid(t, open, close types.TimeString, step int) bool {
	if step <= 0 || t.Validate() != nil {
		return false
	}
	if t.IsBefore(open) || !t.IsBefore(close) {
		return false
	}
	return (t.Minutes()-open.Minutes())%step == 0
}

// IsSlotOccupied проверяет, занят ли слот date+slot для мастера stylistID.
// Бронирование на "any" занимает слот для любого мастера, а запрос без
// предпочтения блокируется любым бронированием на это время.
// Бронирование с excludeID не учитывается.
func IsSlotOccupied(
	bookings []*domain.Booking,
	date time.Time,
	slot types.TimeString,
	stylistID string,
	blocking []domain.BookingStatus,
	excludeID string,
) bool {
	for _, b := range bookings {
		if b == nil || (excludeID != "" && b.ID == excludeID) {
			continue
		}
		if !b.HasDate() || !isSameDay(b.Date, date) {
			continue
		}
		if !b.TimeSlot.Equal(slot) {
			continue
		}
		if !domain.ContainsStatus(blocking, b.Status) {
			continue
		}
		if stylistMatches(b, stylistID) {
			return true
		}
	}
	return false
}

func stylistMatches(b *domain.Booking, stylistID string) bool {
	if stylistID == "" || stylistID == domain.AnyStylistID {
		return true
	}
	return b.IsForAnyStylist() || b.StylistID == stylistID
}

// isSameDay сравнивает календарные даты без учёта часового пояса
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast проверяет, что календарная дата date раньше сегодняшней в loc
func IsDateInPast(date, now time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = now.Location()
	}
	n := now.In(loc)
	y, m, d := date.Date()
	dateOnly := time.Date(y, m, d, 0, 0, 0, 0, loc)
	nowOnly := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
	return dateOnly.Before(nowOnly)
}
