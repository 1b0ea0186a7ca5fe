package update_business_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/settings"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTimeFormat  = "некорректный формат времени, ожидается HH:MM"
	msgInvalidHours       = "время закрытия должно быть позже времени открытия"
	msgInvalidData        = "некорректные данные конфигурации"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/config
// Обновляются только переданные поля
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidTimeFormat):
			h.logger.Warn("PUT /admin/config - Invalid time format: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeFormat)

		case errors.Is(err, settings.ErrInvalidWorkingHours):
			h.logger.Warn("PUT /admin/config - Invalid working hours: %v", err)
			handlers.RespondBadRequest(w, msgInvalidHours)

		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /admin/config - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /admin/config - Failed to update config: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/config - Config updated successfully: hours=%s-%s, slot=%d",
		result.OpenTime, result.CloseTime, result.SlotDuration)
	handlers.RespondJSON(w, http.StatusOK, result)
}
