package update_payment_info

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/settings"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/settings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

type MockConfigService struct {
	mock.Mock
}

func (m *MockConfigService) UpdatePaymentInfo(ctx context.Context, req *models.PaymentInfoRequest) (*models.ConfigResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConfigResponse), args.Error(1)
}

const validBody = `{"bankName":"Banco Itaú","accountHolder":"Glamour S.A.","accountNumber":"123456","accountType":"corriente","instructions":"Enviar comprobante"}`

func newRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPut, "/api/v1/admin/config/payment-info", strings.NewReader(body))
}

func TestHandler(t *testing.T) {
	cases := []struct {
		name string
		resp *models.ConfigResponse
		err  error
		want int
	}{
		{
			name: "updated",
			resp: &models.ConfigResponse{PaymentInfo: models.PaymentInfoResponse{BankName: "Banco Itaú"}},
			want: http.StatusOK,
		},
		{name: "invalid data", err: settings.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "internal", err: errors.New("db down"), want: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockConfigService)
			h := NewHandler(svc, logger.NewDiscard())
			matchBank := mock.MatchedBy(func(req *models.PaymentInfoRequest) bool {
				return req.BankName == "Banco Itaú" && req.AccountNumber == "123456"
			})
			if tc.resp != nil {
				svc.On("UpdatePaymentInfo", mock.Anything, matchBank).Return(tc.resp, nil)
			} else {
				svc.On("UpdatePaymentInfo", mock.Anything, matchBank).Return(nil, tc.err)
			}

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(validBody))

			assert.Equal(t, tc.want, rec.Code)
			svc.AssertExpectations(t)
		})
	}

	t.Run("empty body", func(t *testing.T) {
		svc := new(MockConfigService)
		h := NewHandler(svc, logger.NewDiscard())

		rec := httptest.NewRecorder()
		h.Handle(rec, newRequest(""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "UpdatePaymentInfo", mock.Anything, mock.Anything)
	})
}
