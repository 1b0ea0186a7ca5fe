package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// PaymentInfo holds the bank account clients transfer to
type PaymentInfo struct {
	BankName      string `json:"bankName"`
	AccountHolder string `json:"accountHolder"`
	AccountNumber string `json:"accountNumber"`
	AccountType   string `json:"accountType"`
	Instructions  string `json:"instructions"`
}

// BusinessConfig is the single salon-wide configuration document
type BusinessConfig struct {
	BusinessName            string           `json:"businessName"`
	Phone                   string           `json:"phone"`
	Email                   string           `json:"email"`
	Address                 string           `json:"address"`
	OpenTime                types.TimeString `json:"openTime"`
	CloseTime               types.TimeString `json:"closeTime"`
	SlotDuration            int              `json:"slotDuration"` // minutes
	DaysOff                 []time.Weekday   `json:"daysOff"`      // 0 = Sunday ... 6 = Saturday
	Currency                string           `json:"currency"`
	CancellationPolicyHours int              `json:"cancellationPolicyHours"`
	PaymentInfo             PaymentInfo      `json:"paymentInfo"`
	UpdatedAt               time.Time        `json:"updatedAt"`
}

// IsDayOff returns true if the salon is closed on the weekday of date
func (c *BusinessConfig) IsDayOff(date time.Time) bool {
	wd := date.Weekday()
	for _, d := range c.DaysOff {
		if d == wd {
			return true
		}
	}
	return false
}

// DefaultBusinessConfig is used until an administrator saves a configuration
func DefaultBusinessConfig() BusinessConfig {
	return BusinessConfig{
		BusinessName:            "Glavamon",
		Phone:                   "+595 981 123 456",
		Email:                   "contacto@beautyflow.com",
		Address:                 "Asunción, Paraguay",
		OpenTime:                DefaultOpenTime,
		CloseTime:               DefaultCloseTime,
		SlotDuration:            DefaultSlotDurationMinutes,
		DaysOff:                 []time.Weekday{time.Sunday},
		Currency:                DefaultCurrency,
		CancellationPolicyHours: DefaultCancellationPolicyHours,
		PaymentInfo: PaymentInfo{
			BankName:      "Itaú",
			AccountHolder: "David Reyes",
			AccountNumber: "200007664",
			AccountType:   "Cuenta Corriente",
			Instructions:  "Enviar comprobante de transferencia para confirmar la reserva",
		},
	}
}
