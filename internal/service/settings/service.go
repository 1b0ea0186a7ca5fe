package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/settings/models"
)

// Service сервис конфигурации салона
type Service struct {
	store    ConfigStore
	defaults domain.BusinessConfig
	logger   Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(store ConfigStore, logger Logger) *Service {
	return &Service{
		store:    store,
		defaults: domain.DefaultBusinessConfig(),
		logger:   logger,
	}
}

// WithDefaults задаёт конфигурацию, действующую до первого сохранения
func (s *Service) WithDefaults(d domain.BusinessConfig) *Service {
	s.defaults = d
	return s
}

// Current возвращает действующую конфигурацию
// Пока администратор ничего не сохранял, возвращаются значения по умолчанию
func (s *Service) Current(ctx context.Context) (*domain.BusinessConfig, error) {
	cfg, err := s.store.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrConfigNotFound) {
			s.logger.Info("Current: config not saved yet, using defaults")
			defaults := s.defaults
			defaults.DaysOff = append([]time.Weekday(nil), s.defaults.DaysOff...)
			return &defaults, nil
		}
		s.logger.Error("Current: repository error: %v", err)
		return nil, fmt.Errorf("%w: Current - repository error: %v", ErrInternal, err)
	}
	return cfg, nil
}

// Get получает конфигурацию салона
// Публичный метод - доступен всем
func (s *Service) Get(ctx context.Context) (*models.ConfigResponse, error) {
	cfg, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainConfig(cfg), nil
}

// Update частично обновляет конфигурацию
// Доступно только администратору
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating business config")

	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	merged, err := applyUpdate(*current, req)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.save(ctx, "Update", &merged)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: business config saved, hours %s-%s, slot=%d min",
		saved.OpenTime, saved.CloseTime, saved.SlotDuration)
	return models.FromDomainConfig(saved), nil
}

// UpdatePaymentInfo заменяет только реквизиты для перевода
func (s *Service) UpdatePaymentInfo(ctx context.Context, req *models.PaymentInfoRequest) (*models.ConfigResponse, error) {
	s.logger.Info("UpdatePaymentInfo: updating payment info")

	if err := validatePaymentInfo(req); err != nil {
		s.logger.Warn("UpdatePaymentInfo: validation failed: %v", err)
		return nil, err
	}

	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.PaymentInfo = req.ToDomain()

	saved, err := s.save(ctx, "UpdatePaymentInfo", &updated)
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdatePaymentInfo: payment info saved")
	return models.FromDomainConfig(saved), nil
}

func (s *Service) save(ctx context.Context, op string, cfg *domain.BusinessConfig) (*domain.BusinessConfig, error) {
	saved, err := s.store.Save(ctx, cfg)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return saved, nil
}
