package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/money"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос администратора на список бронирований
type ListBookingsRequest struct {
	Status *string    `json:"status,omitempty"`
	From   *time.Time `json:"from,omitempty"` // Начало периода включительно
	To     *time.Time `json:"to,omitempty"`   // Конец периода включительно
}

// ToDomainFilter конвертирует request в domain фильтр
// При указанном периоде сортировка по возрастанию даты
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate: r.From,
		EndDate:   r.To,
		Order:     domain.OrderDateDesc,
	}
	if r.From != nil || r.To != nil {
		filter.Order = domain.OrderDateAsc
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Statuses = []domain.BookingStatus{status}
	}

	return filter, nil
}

// RejectPaymentRequest запрос на отклонение оплаты
type RejectPaymentRequest struct {
	Reason string `json:"reason"`
}

// OverrideStatusRequest запрос на ручную смену статуса
type OverrideStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// ServiceItemResponse услуга в составе бронирования
type ServiceItemResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Duration int     `json:"duration"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
	UserPhone string `json:"userPhone"`

	Services    []ServiceItemResponse `json:"services"`
	StylistID   string                `json:"stylistId"`
	StylistName string                `json:"stylistName"`

	Date     *string `json:"date"`     // "2025-03-14", null если дата не читается
	TimeSlot string  `json:"timeSlot"` // "10:00"

	TotalPrice          float64 `json:"totalPrice"`
	TotalPriceFormatted string  `json:"totalPriceFormatted"` // "Gs. 150.000"
	TotalDuration       int     `json:"totalDuration"`

	Status                 string     `json:"status"`
	PaymentStatus          string     `json:"paymentStatus"`
	PaymentMethod          string     `json:"paymentMethod"`
	PaymentProofURL        *string    `json:"paymentProofUrl"`
	PaymentProofUploadedAt *time.Time `json:"paymentProofUploadedAt,omitempty"`
	PaymentConfirmedAt     *time.Time `json:"paymentConfirmedAt,omitempty"`
	PaymentRejectionReason *string    `json:"paymentRejectionReason"`

	Notes string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// StatsResponse сводка для панели администратора
type StatsResponse struct {
	TodayCount     int            `json:"todayCount"`
	WeekCount      int            `json:"weekCount"`
	MonthCount     int            `json:"monthCount"`
	TotalCount     int            `json:"totalCount"`
	ByStatus       map[string]int `json:"byStatus"`
	TotalRevenue   float64        `json:"totalRevenue"`
	MonthRevenue   float64        `json:"monthRevenue"`
	TotalFormatted string         `json:"totalRevenueFormatted"`
	MonthFormatted string         `json:"monthRevenueFormatted"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                     b.ID,
		UserID:                 b.UserID,
		UserName:               b.UserName,
		UserEmail:              b.UserEmail,
		UserPhone:              b.UserPhone,
		Services:               make([]ServiceItemResponse, len(b.Services)),
		StylistID:              b.StylistID,
		StylistName:            b.StylistName,
		TimeSlot:               b.TimeSlot.String(),
		TotalPrice:             b.TotalPrice,
		TotalPriceFormatted:    money.FormatPYG(b.TotalPrice),
		TotalDuration:          b.TotalDuration,
		Status:                 string(b.Status),
		PaymentStatus:          string(b.PaymentStatus),
		PaymentMethod:          b.PaymentMethod,
		PaymentProofURL:        b.PaymentProofURL,
		PaymentProofUploadedAt: b.PaymentProofUploadedAt,
		PaymentConfirmedAt:     b.PaymentConfirmedAt,
		PaymentRejectionReason: b.PaymentRejectionReason,
		Notes:                  b.Notes,
		CreatedAt:              b.CreatedAt,
		UpdatedAt:              b.UpdatedAt,
	}

	for i, s := range b.Services {
		resp.Services[i] = ServiceItemResponse{
			ID:       s.ID,
			Name:     s.Name,
			Price:    s.Price,
			Duration: s.Duration,
		}
	}

	if b.HasDate() {
		date := b.Date.Format(domain.DateFormat)
		resp.Date = &date
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainStats конвертирует статистику в DTO
func FromDomainStats(s domain.BookingStats) *StatsResponse {
	byStatus := make(map[string]int, len(s.ByStatus))
	for status, n := range s.ByStatus {
		byStatus[string(status)] = n
	}

	return &StatsResponse{
		TodayCount:     s.Today,
		WeekCount:      s.ThisWeek,
		MonthCount:     s.ThisMonth,
		TotalCount:     s.Total,
		ByStatus:       byStatus,
		TotalRevenue:   s.Revenue,
		MonthRevenue:   s.MonthRevenue,
		TotalFormatted: money.FormatPYG(s.Revenue),
		MonthFormatted: money.FormatPYG(s.MonthRevenue),
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
