package upload_payment_proof

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/integrations/imagehost"
	bookingsService "github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/imageproc"
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

func (m *MockBookingService) AttachPaymentProof(ctx context.Context, id string, proofURL string, actor domain.Actor) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, proofURL, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, name string, image []byte) (*imagehost.UploadResult, error) {
	args := m.Called(ctx, name, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*imagehost.UploadResult), args.Error(1)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

var (
	actor   = domain.Actor{UserID: "user-1"}
	testNow = time.Unix(1741608000, 0).UTC()
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestUseCase(svc BookingService, up ImageUploader) *UseCase {
	opts := imageproc.Options{MaxBytes: 1 << 20, MaxEdge: 64}
	return NewUseCase(svc, up, opts, logger.NewDiscard()).WithTimeProvider(fixedTime{now: testNow})
}

func TestUseCase_Execute_Success(t *testing.T) {
	ctx := context.Background()
	svc := new(MockBookingService)
	up := new(MockUploader)
	proofURL := "https://i.ibb.co/x1/proof.jpg"

	svc.On("GetByID", ctx, bookingID, actor).
		Return(&models.BookingResponse{ID: bookingID, Status: string(domain.StatusPendingPayment)}, nil)
	up.On("Upload", ctx, "payment_"+bookingID+"_1741608000", mock.MatchedBy(func(data []byte) bool {
		ct, err := imageproc.DetectType(data)
		return err == nil && ct == imageproc.MimeJPEG
	})).Return(&imagehost.UploadResult{URL: proofURL}, nil)
	svc.On("AttachPaymentProof", ctx, bookingID, proofURL, actor).
		Return(&models.BookingResponse{ID: bookingID, Status: string(domain.StatusPendingConfirmation), PaymentProofURL: &proofURL}, nil)

	resp, err := newTestUseCase(svc, up).Execute(ctx, &Request{BookingID: bookingID, Actor: actor, Image: pngBytes(t, 128, 96)})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPendingConfirmation), resp.Status)
	require.NotNil(t, resp.PaymentProofURL)
	assert.Equal(t, proofURL, *resp.PaymentProofURL)
	svc.AssertExpectations(t)
	up.AssertExpectations(t)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	ctx := context.Background()
	pending := &models.BookingResponse{ID: bookingID, Status: string(domain.StatusPendingPayment)}

	t.Run("empty image", func(t *testing.T) {
		svc := new(MockBookingService)

		_, err := newTestUseCase(svc, new(MockUploader)).Execute(ctx, &Request{BookingID: bookingID, Actor: actor})

		assert.ErrorIs(t, err, ErrInvalidImage)
		svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("booking not found", func(t *testing.T) {
		svc := new(MockBookingService)
		svc.On("GetByID", ctx, bookingID, actor).Return(nil, bookingsService.ErrBookingNotFound)

		_, err := newTestUseCase(svc, new(MockUploader)).Execute(ctx, &Request{BookingID: bookingID, Actor: actor, Image: pngBytes(t, 8, 8)})

		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("foreign booking", func(t *testing.T) {
		svc := new(MockBookingService)
		svc.On("GetByID", ctx, bookingID, actor).Return(nil, bookingsService.ErrAccessDenied)

		_, err := newTestUseCase(svc, new(MockUploader)).Execute(ctx, &Request{BookingID: bookingID, Actor: actor, Image: pngBytes(t, 8, 8)})

		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("already confirmed", func(t *testing.T) {
		svc := new(MockBookingService)
		up := new(MockUploader)
		svc.On("GetByID", ctx, bookingID, actor).
			Return(&models.BookingResponse{ID: bookingID, Status: string(domain.StatusConfirmed)}, nil)

		_, err := newTestUseCase(svc, up).Execute(ctx, &Request{BookingID: bookingID, Actor: actor, Image: pngBytes(t, 8, 8)})

		assert.ErrorIs(t, err, ErrInvalidStatus)
		up.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not an image", func(t *testing.T) {
		svc := new(MockBookingService)
		svc.On("GetByID", ctx, bookingID, actor).Return(pending, nil)

		_, err := newTestUseCase(svc, new(MockUploader)).Execute(ctx, &Request{BookingID: bookingID, Actor: actor, Image: []byte("%PDF-1.4")})

		assert.ErrorIs(t, err, ErrInvalidImage)
	})

	t.Run("too large", func(t *testing.T) {
		svc := new(MockBookingService)
		svc.On("GetByID", ctx, bookingID, actor).Return(pending, nil)

		uc := NewUseCase(svc, new(MockUploader), imageproc.Options{MaxBytes: 16}, logger.NewDiscard())
		_, err := uc.Execute(ctx, &Request{BookingID: bookingID, Actor: actor, Image: pngBytes(t, 8, 8)})

		assert.ErrorIs(t, err, ErrImageTooLarge)
	})

	t.Run("image host down", func(t *testing.T) {
		svc := new(MockBookingService)
		up := new(MockUploader)
		svc.On("GetByID", ctx, bookingID, actor).Return(pending, nil)
		up.On("Upload", ctx, mock.Anything, mock.Anything).Return(nil, imagehost.ErrUnavailable)

		_, err := newTestUseCase(svc, up).Execute(ctx, &Request{BookingID: bookingID, Actor: actor, Image: pngBytes(t, 8, 8)})

		assert.ErrorIs(t, err, ErrUpstream)
		svc.AssertNotCalled(t, "AttachPaymentProof", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("status changed before attach", func(t *testing.T) {
		svc := new(MockBookingService)
		up := new(MockUploader)
		svc.On("GetByID", ctx, bookingID, actor).Return(pending, nil)
		up.On("Upload", ctx, mock.Anything, mock.Anything).Return(&imagehost.UploadResult{URL: "https://i.ibb.co/x"}, nil)
		svc.On("AttachPaymentProof", ctx, bookingID, "https://i.ibb.co/x", actor).
			Return(nil, bookingsService.ErrInvalidTransition)

		_, err := newTestUseCase(svc, up).Execute(ctx, &Request{BookingID: bookingID, Actor: actor, Image: pngBytes(t, 8, 8)})

		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}
