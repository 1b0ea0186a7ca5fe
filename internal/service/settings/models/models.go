package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// Request модели

// UpdateConfigRequest запрос на обновление конфигурации салона
// Все поля опциональны - обновляются только переданные значения
type UpdateConfigRequest struct {
	BusinessName            *string             `json:"businessName,omitempty"`
	Phone                   *string             `json:"phone,omitempty"`
	Email                   *string             `json:"email,omitempty"`
	Address                 *string             `json:"address,omitempty"`
	OpenTime                *string             `json:"openTime,omitempty"`  // "09:00"
	CloseTime               *string             `json:"closeTime,omitempty"` // "20:00"
	SlotDuration            *int                `json:"slotDuration,omitempty"`
	DaysOff                 *[]int              `json:"daysOff,omitempty"` // 0 = воскресенье
	Currency                *string             `json:"currency,omitempty"`
	CancellationPolicyHours *int                `json:"cancellationPolicyHours,omitempty"`
	PaymentInfo             *PaymentInfoRequest `json:"paymentInfo,omitempty"`
}

// PaymentInfoRequest реквизиты для перевода
type PaymentInfoRequest struct {
	BankName      string `json:"bankName"`
	AccountHolder string `json:"accountHolder"`
	AccountNumber string `json:"accountNumber"`
	AccountType   string `json:"accountType"`
	Instructions  string `json:"instructions"`
}

// ToDomain конвертирует request в domain модель
func (r *PaymentInfoRequest) ToDomain() domain.PaymentInfo {
	return domain.PaymentInfo{
		BankName:      r.BankName,
		AccountHolder: r.AccountHolder,
		AccountNumber: r.AccountNumber,
		AccountType:   r.AccountType,
		Instructions:  r.Instructions,
	}
}

// Response модели

// PaymentInfoResponse реквизиты для перевода
type PaymentInfoResponse struct {
	BankName      string `json:"bankName"`
	AccountHolder string `json:"accountHolder"`
	AccountNumber string `json:"accountNumber"`
	AccountType   string `json:"accountType"`
	Instructions  string `json:"instructions"`
}

// ConfigResponse ответ с конфигурацией салона
type ConfigResponse struct {
	BusinessName            string              `json:"businessName"`
	Phone                   string              `json:"phone"`
	Email                   string              `json:"email"`
	Address                 string              `json:"address"`
	OpenTime                string              `json:"openTime"`
	CloseTime               string              `json:"closeTime"`
	SlotDuration            int                 `json:"slotDuration"`
	DaysOff                 []int               `json:"daysOff"`
	Currency                string              `json:"currency"`
	CancellationPolicyHours int                 `json:"cancellationPolicyHours"`
	PaymentInfo             PaymentInfoResponse `json:"paymentInfo"`
	UpdatedAt               *time.Time          `json:"updatedAt,omitempty"` // nil пока конфигурация не сохранялась
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.BusinessConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	resp := &ConfigResponse{
		BusinessName:            c.BusinessName,
		Phone:                   c.Phone,
		Email:                   c.Email,
		Address:                 c.Address,
		OpenTime:                c.OpenTime.String(),
		CloseTime:               c.CloseTime.String(),
		SlotDuration:            c.SlotDuration,
		DaysOff:                 make([]int, len(c.DaysOff)),
		Currency:                c.Currency,
		CancellationPolicyHours: c.CancellationPolicyHours,
		PaymentInfo: PaymentInfoResponse{
			BankName:      c.PaymentInfo.BankName,
			AccountHolder: c.PaymentInfo.AccountHolder,
			AccountNumber: c.PaymentInfo.AccountNumber,
			AccountType:   c.PaymentInfo.AccountType,
			Instructions:  c.PaymentInfo.Instructions,
		},
	}

	for i, d := range c.DaysOff {
		resp.DaysOff[i] = int(d)
	}

	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
