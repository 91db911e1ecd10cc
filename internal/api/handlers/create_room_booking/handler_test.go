package create_room_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/availability"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings/models"
	createRoomBooking "github.com/m04kA/SMC-SpaBookingService/internal/usecase/create_room_booking"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *createRoomBooking.Request) (*models.BookingResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const body = `{
	"roomTypeId": "deluxe",
	"checkInDate": "2024-05-01",
	"checkOutDate": "2024-05-03",
	"rooms": 1,
	"guests": 2,
	"customerName": "Anna",
	"customerPhone": "+66800000000",
	"originalPrice": 2800,
	"discount": 300
}`

func serve(uc CreateRoomBookingUseCase, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/room-bookings", strings.NewReader(payload))
	req = req.WithContext(middleware.WithPrincipal(req.Context(), &domain.Principal{Kind: domain.PrincipalAdmin}))
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_CallerTotalsPassedThrough(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createRoomBooking.Request) bool {
		return r.RoomTypeID == "deluxe" &&
			r.CheckOutDate == "2024-05-03" &&
			r.Totals.OriginalPrice == 2800 &&
			r.Totals.Discount == 300
	})).Return(&models.BookingResponse{ID: "b2"}, nil)

	rec := serve(uc, body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "fully booked", err: availability.ErrNoFreeRoom, wantStatus: http.StatusConflict},
		{name: "too many guests", err: createRoomBooking.ErrTooManyGuests, wantStatus: http.StatusBadRequest},
		{name: "invalid input", err: createRoomBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "inactive", err: createRoomBooking.ErrRoomTypeInactive, wantStatus: http.StatusNotFound},
		{name: "no identity", err: createRoomBooking.ErrUnauthorized, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(uc, body)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
