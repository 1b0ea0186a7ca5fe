package get_business_config

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/settings/models"
)

type ConfigService interface {
	Get(ctx context.Context) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
