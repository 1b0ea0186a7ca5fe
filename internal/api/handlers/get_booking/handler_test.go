package get_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

const bookingID = "0b6c6f0e-8a35-4c8f-9d2b-6b8e7f1c2a10"

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) GetByID(ctx context.Context, id string, actor domain.Actor) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func newRequest(actor *domain.Actor) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+bookingID, nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}
	return req
}

func TestHandler_Success(t *testing.T) {
	actor := domain.Actor{UserID: "user-1"}
	svc := new(MockBookingService)
	h := NewHandler(svc, logger.NewDiscard())
	svc.On("GetByID", mock.Anything, bookingID, actor).
		Return(&models.BookingResponse{ID: bookingID, UserID: "user-1", Status: string(domain.StatusConfirmed)}, nil)

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(&actor))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, bookingID, resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestHandler_Errors(t *testing.T) {
	actor := domain.Actor{UserID: "user-1"}

	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: bookings.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "foreign booking", err: bookings.ErrAccessDenied, want: http.StatusForbidden},
		{name: "internal", err: errors.New("db down"), want: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockBookingService)
			h := NewHandler(svc, logger.NewDiscard())
			svc.On("GetByID", mock.Anything, bookingID, actor).Return(nil, tc.err)

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(&actor))

			assert.Equal(t, tc.want, rec.Code)
		})
	}

	t.Run("no actor", func(t *testing.T) {
		svc := new(MockBookingService)
		h := NewHandler(svc, logger.NewDiscard())

		rec := httptest.NewRecorder()
		h.Handle(rec, newRequest(nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
	})
}
