package create_booking

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBookingService/pkg/money"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	UserName    string           `json:"userName"`
	UserEmail   string           `json:"userEmail"`
	UserPhone   string           `json:"userPhone"`
	Services    []ServiceRequest `json:"services"`
	StylistID   string           `json:"stylistId,omitempty"`
	StylistName string           `json:"stylistName,omitempty"`
	Date        string           `json:"date"`     // "2025-03-14"
	TimeSlot    string           `json:"timeSlot"` // "10:00"
	Notes       string           `json:"notes,omitempty"`
}

// ServiceRequest выбранная услуга
type ServiceRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    Price  `json:"price"`
	Duration int    `json:"duration"`
}

// Price цена услуги: число или строка каталога вида "Gs. 150.000"
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Price(money.ParsePYG(s))
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	*p = Price(f)
	return nil
}

var (
	errInvalidDate = fmt.Errorf("invalid date, expected %s", domain.DateFormat)
	errInvalidTime = fmt.Errorf("invalid time slot, expected %s", domain.TimeFormat)
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *CreateBookingRequest) ToUseCaseRequest(userID string) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	slot, err := types.NewTimeStringFromString(r.TimeSlot)
	if err != nil {
		return nil, errInvalidTime
	}

	services := make([]domain.ServiceItem, len(r.Services))
	for i, s := range r.Services {
		services[i] = domain.ServiceItem{
			ID:       s.ID,
			Name:     s.Name,
			Price:    float64(s.Price),
			Duration: s.Duration,
		}
	}

	return &createBooking.Request{
		Requester: domain.Requester{
			UserID: userID,
			Name:   r.UserName,
			Email:  r.UserEmail,
			Phone:  r.UserPhone,
		},
		Services:    services,
		StylistID:   r.StylistID,
		StylistName: r.StylistName,
		Date:        date,
		TimeSlot:    slot,
		Notes:       r.Notes,
	}, nil
}
