package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowpoint/salon-booking-service/internal/api/middleware"
	"github.com/glowpoint/salon-booking-service/internal/service/bookings"
	"github.com/glowpoint/salon-booking-service/internal/service/bookings/models"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fakeBookingService struct {
	err error

	lastBookingID int64
	lastRequest   *models.CancelBookingRequest
}

func (s *fakeBookingService) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.lastBookingID = bookingID
	s.lastRequest = req
	return s.err
}

func newRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.Handle("/api/v1/bookings/{bookingId}/cancel", middleware.Auth(http.HandlerFunc(h.Handle))).Methods(http.MethodPost)
	return router
}

func doCancel(t *testing.T, router *mux.Router, url, userID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, url, nil)
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_CancelsBooking(t *testing.T) {
	svc := &fakeBookingService{}
	router := newRouter(NewHandler(svc, noopLogger{}))

	rec := doCancel(t, router, "/api/v1/bookings/7/cancel", "42")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.lastBookingID)
	require.NotNil(t, svc.lastRequest)
	assert.Equal(t, int64(42), svc.lastRequest.CustomerID)
	assert.JSONEq(t, `{"status":"cancelled"}`, rec.Body.String())
}

func TestHandle_InvalidBookingID(t *testing.T) {
	svc := &fakeBookingService{}
	router := newRouter(NewHandler(svc, noopLogger{}))

	rec := doCancel(t, router, "/api/v1/bookings/abc/cancel", "42")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.lastRequest)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{bookings.ErrBookingNotFound, http.StatusNotFound},
		{bookings.ErrAccessDenied, http.StatusForbidden},
		{bookings.ErrCannotCancel, http.StatusConflict},
		{bookings.ErrTooLate, http.StatusBadRequest},
		{bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		router := newRouter(NewHandler(&fakeBookingService{err: tt.err}, noopLogger{}))
		rec := doCancel(t, router, "/api/v1/bookings/7/cancel", "42")
		assert.Equal(t, tt.status, rec.Code, tt.err.Error())
	}
}

func TestHandle_RequiresAuth(t *testing.T) {
	router := newRouter(NewHandler(&fakeBookingService{}, noopLogger{}))

	rec := doCancel(t, router, "/api/v1/bookings/7/cancel", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
