package settings

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// ConfigStore хранилище конфигурации салона (БД или кэш поверх неё)
type ConfigStore interface {
	Get(ctx context.Context) (*domain.BusinessConfig, error)
	Save(ctx context.Context, cfg *domain.BusinessConfig) (*domain.BusinessConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
