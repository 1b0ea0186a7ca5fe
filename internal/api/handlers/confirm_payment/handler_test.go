package confirm_payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

const bookingID = "0b6c6f0e-8a35-4c8f-9d2b-6b8e7f1c2a10"

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) ConfirmPayment(ctx context.Context, id string) (*models.BookingResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func newRequest() *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/bookings/"+bookingID+"/confirm-payment", nil)
	return mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
}

func TestHandler(t *testing.T) {
	cases := []struct {
		name string
		resp *models.BookingResponse
		err  error
		want int
	}{
		{
			name: "confirmed",
			resp: &models.BookingResponse{ID: bookingID, Status: string(domain.StatusConfirmed), PaymentStatus: string(domain.PaymentPaid)},
			want: http.StatusOK,
		},
		{name: "not found", err: bookings.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "not awaiting confirmation", err: fmt.Errorf("%w: status confirmed", bookings.ErrInvalidTransition), want: http.StatusConflict},
		{name: "slot taken", err: bookings.ErrSlotConflict, want: http.StatusConflict},
		{name: "internal", err: errors.New("db down"), want: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockBookingService)
			h := NewHandler(svc, logger.NewDiscard())
			if tc.resp != nil {
				svc.On("ConfirmPayment", mock.Anything, bookingID).Return(tc.resp, nil)
			} else {
				svc.On("ConfirmPayment", mock.Anything, bookingID).Return(nil, tc.err)
			}

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest())

			assert.Equal(t, tc.want, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
