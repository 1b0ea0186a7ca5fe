package settings

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/settings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// applyUpdate накладывает переданные поля на текущую конфигурацию и проверяет результат
func applyUpdate(cfg domain.BusinessConfig, req *models.UpdateConfigRequest) (domain.BusinessConfig, error) {
	if req == nil {
		return cfg, nil
	}

	if req.BusinessName != nil {
		name := strings.TrimSpace(*req.BusinessName)
		if name == "" {
			return cfg, fmt.Errorf("%w: business name must not be empty", ErrInvalidInput)
		}
		cfg.BusinessName = name
	}
	if req.Phone != nil {
		cfg.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		cfg.Email = strings.TrimSpace(*req.Email)
	}
	if req.Address != nil {
		cfg.Address = strings.TrimSpace(*req.Address)
	}

	if req.OpenTime != nil {
		t, err := types.NewTimeStringFromString(*req.OpenTime)
		if err != nil {
			return cfg, fmt.Errorf("%w: openTime %q", ErrInvalidTimeFormat, *req.OpenTime)
		}
		cfg.OpenTime = t
	}
	if req.CloseTime != nil {
		t, err := types.NewTimeStringFromString(*req.CloseTime)
		if err != nil {
			return cfg, fmt.Errorf("%w: closeTime %q", ErrInvalidTimeFormat, *req.CloseTime)
		}
		cfg.CloseTime = t
	}
	// проверяем итоговую пару, даже если передано только одно из значений
	if !cfg.OpenTime.IsBefore(cfg.CloseTime) {
		return cfg, fmt.Errorf("%w: %s-%s", ErrInvalidWorkingHours, cfg.OpenTime, cfg.CloseTime)
	}

	if req.SlotDuration != nil {
		d := *req.SlotDuration
		if d < domain.MinSlotDurationMinutes || d > domain.MaxSlotDurationMinutes {
			return cfg, fmt.Errorf("%w: slot duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
		}
		cfg.SlotDuration = d
	}

	if req.DaysOff != nil {
		days, err := toWeekdays(*req.DaysOff)
		if err != nil {
			return cfg, err
		}
		cfg.DaysOff = days
	}

	if req.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*req.Currency))
		if len(currency) != 3 {
			return cfg, fmt.Errorf("%w: currency must be a 3-letter code", ErrInvalidInput)
		}
		cfg.Currency = currency
	}

	if req.CancellationPolicyHours != nil {
		if *req.CancellationPolicyHours < 0 {
			return cfg, fmt.Errorf("%w: cancellation policy hours must not be negative", ErrInvalidInput)
		}
		cfg.CancellationPolicyHours = *req.CancellationPolicyHours
	}

	if req.PaymentInfo != nil {
		if err := validatePaymentInfo(req.PaymentInfo); err != nil {
			return cfg, err
		}
		cfg.PaymentInfo = req.PaymentInfo.ToDomain()
	}

	return cfg, nil
}

// toWeekdays проверяет диапазон 0..6 и убирает повторы
func toWeekdays(days []int) ([]time.Weekday, error) {
	out := make([]time.Weekday, 0, len(days))
	seen := make(map[int]bool, len(days))
	for _, d := range days {
		if d < int(time.Sunday) || d > int(time.Saturday) {
			return nil, fmt.Errorf("%w: day off %d out of range 0..6", ErrInvalidInput, d)
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, time.Weekday(d))
	}
	return out, nil
}

func validatePaymentInfo(req *models.PaymentInfoRequest) error {
	if req == nil {
		return fmt.Errorf("%w: payment info is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.BankName) == "" || strings.TrimSpace(req.AccountNumber) == "" {
		return fmt.Errorf("%w: bank name and account number are required", ErrInvalidInput)
	}
	return nil
}
