package upload_payment_proof

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
	uploadProof "github.com/m04kA/SMC-SalonBookingService/internal/usecase/upload_payment_proof"
)

const (
	formFieldImage = "image"

	// multipartOverhead запас на заголовки частей формы
	multipartOverhead = 64 << 10

	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingImage       = "файл чека обязателен (поле image)"
	msgInvalidImage       = "файл не является изображением jpeg/png/webp/gif"
	msgImageTooLarge      = "файл слишком большой"
	msgInvalidProofURL    = "некорректная ссылка на чек"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgInvalidStatus      = "бронирование не ожидает чек об оплате"
	msgUpstream           = "сервис хранения изображений недоступен, попробуйте позже"
)

type Handler struct {
	useCase  UploadUseCase
	service  BookingService
	maxBytes int64
	logger   Logger
}

// NewHandler maxBytes - ограничение размера файла чека
func NewHandler(useCase UploadUseCase, service BookingService, maxBytes int64, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		service:  service,
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payment-proof
// multipart/form-data с файлом image, либо JSON {"proofUrl": "..."}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/payment-proof - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		h.handleUpload(w, r, bookingID, actor)
		return
	}
	h.handleURL(w, r, bookingID, actor)
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request, bookingID string, actor domain.Actor) {
	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)
	}

	file, _, err := r.FormFile(formFieldImage)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("POST /bookings/{id}/payment-proof - Body too large: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgImageTooLarge)
			return
		}
		h.logger.Warn("POST /bookings/{id}/payment-proof - Missing image: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgMissingImage)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/payment-proof - Failed to read image: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &uploadProof.Request{
		BookingID: bookingID,
		Actor:     actor,
		Image:     image,
	})
	if err != nil {
		switch {
		case errors.Is(err, uploadProof.ErrInvalidImage):
			h.logger.Warn("POST /bookings/{id}/payment-proof - Invalid image: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidImage)

		case errors.Is(err, uploadProof.ErrImageTooLarge):
			h.logger.Warn("POST /bookings/{id}/payment-proof - Image too large: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgImageTooLarge)

		case errors.Is(err, uploadProof.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/payment-proof - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, uploadProof.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/payment-proof - Access denied: booking_id=%s, user_id=%s",
				bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, uploadProof.ErrInvalidStatus):
			h.logger.Warn("POST /bookings/{id}/payment-proof - Not awaiting proof: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgInvalidStatus)

		case errors.Is(err, uploadProof.ErrUpstream):
			h.logger.Error("POST /bookings/{id}/payment-proof - Image host failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadGateway(w, msgUpstream)

		default:
			h.logger.Error("POST /bookings/{id}/payment-proof - Failed to upload proof: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/payment-proof - Proof uploaded: booking_id=%s, user_id=%s",
		bookingID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleURL(w http.ResponseWriter, r *http.Request, bookingID string, actor domain.Actor) {
	var req AttachProofRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/payment-proof - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AttachPaymentProof(r.Context(), bookingID, req.ProofURL, actor)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/payment-proof - Invalid proof url: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidProofURL)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/payment-proof - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/payment-proof - Access denied: booking_id=%s, user_id=%s",
				bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/payment-proof - Not awaiting proof: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgInvalidStatus)

		default:
			h.logger.Error("POST /bookings/{id}/payment-proof - Failed to attach proof: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/payment-proof - Proof attached by url: booking_id=%s, user_id=%s",
		bookingID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
