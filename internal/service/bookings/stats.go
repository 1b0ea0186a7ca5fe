package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
)

const (
	statsWeekDays  = 7
	statsMonthDays = 30
)

// Stats сводка для панели администратора
// Неделя и месяц: бронирования с датой не раньше чем 7 и 30 дней назад,
// будущие записи тоже учитываются
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	s.logger.Info("Stats: computing booking stats")

	bookings, err := s.list(ctx, "Stats", domain.BookingsFilter{Order: domain.OrderDateDesc})
	if err != nil {
		return nil, err
	}

	stats := computeStats(bookings, s.today())

	s.logger.Info("Stats: total=%d, today=%d", stats.Total, stats.Today)
	return models.FromDomainStats(stats), nil
}

func computeStats(bookings []*domain.Booking, today time.Time) domain.BookingStats {
	weekStart := today.AddDate(0, 0, -statsWeekDays)
	monthStart := today.AddDate(0, 0, -statsMonthDays)

	stats := domain.BookingStats{
		Total:    len(bookings),
		ByStatus: make(map[domain.BookingStatus]int, len(domain.AllStatuses)),
	}
	for _, status := range domain.AllStatuses {
		stats.ByStatus[status] = 0
	}

	for _, b := range bookings {
		stats.ByStatus[b.Status]++

		inMonth := false
		if b.HasDate() {
			if b.Date.Equal(today) {
				stats.Today++
			}
			if !b.Date.Before(weekStart) {
				stats.ThisWeek++
			}
			if !b.Date.Before(monthStart) {
				stats.ThisMonth++
				inMonth = true
			}
		}

		// выручка только по завершённым и оплаченным
		if b.Status == domain.StatusCompleted && b.PaymentStatus == domain.PaymentPaid {
			stats.Revenue += b.TotalPrice
			if inMonth {
				stats.MonthRevenue += b.TotalPrice
			}
		}
	}

	return stats
}
