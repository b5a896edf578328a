package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailability "github.com/glowpoint/salon-booking-service/internal/usecase/get_availability"
	"github.com/glowpoint/salon-booking-service/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fakeUseCase struct {
	response *getAvailability.Response
	err      error

	lastRequest *getAvailability.Request
}

func (uc *fakeUseCase) Execute(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	uc.lastRequest = req
	if uc.err != nil {
		return nil, uc.err
	}
	return uc.response, nil
}

func TestHandle_ReturnsSlots(t *testing.T) {
	uc := &fakeUseCase{
		response: &getAvailability.Response{
			SalonID:         1,
			StaffID:         5,
			Date:            time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			DurationMinutes: 30,
			Slots: []getAvailability.Slot{
				{StartTime: types.TimeString("09:00"), EndTime: types.TimeString("09:30"), IsBooked: false},
				{StartTime: types.TimeString("09:30"), EndTime: types.TimeString("10:00"), IsBooked: true},
			},
		},
	}
	h := NewHandler(uc, noopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?salonId=1&staffId=5&date=2026-03-10", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-03-10", resp.Date)
	require.Len(t, resp.AvailableSlots, 1)
	require.Len(t, resp.BookedSlots, 1)
	assert.Equal(t, "09:00", resp.AvailableSlots[0].StartTime)
	assert.Equal(t, "09:30", resp.BookedSlots[0].StartTime)
	assert.True(t, resp.BookedSlots[0].IsBooked)
	assert.Equal(t, 30, resp.DurationMinutes)

	require.NotNil(t, uc.lastRequest)
	assert.Equal(t, int64(1), uc.lastRequest.SalonID)
	assert.Equal(t, int64(5), uc.lastRequest.StaffID)
	assert.Nil(t, uc.lastRequest.ServiceID)
}

func TestHandle_OptionalServiceID(t *testing.T) {
	uc := &fakeUseCase{response: &getAvailability.Response{}}
	h := NewHandler(uc, noopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?salonId=1&staffId=5&serviceId=3&date=2026-03-10", nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.lastRequest.ServiceID)
	assert.Equal(t, int64(3), *uc.lastRequest.ServiceID)
}

func TestHandle_BadQueryParams(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, noopLogger{})

	tests := []struct {
		name string
		url  string
	}{
		{"missing salonId", "/api/v1/availability?staffId=5&date=2026-03-10"},
		{"bad staffId", "/api/v1/availability?salonId=1&staffId=abc&date=2026-03-10"},
		{"bad serviceId", "/api/v1/availability?salonId=1&staffId=5&serviceId=abc&date=2026-03-10"},
		{"bad date", "/api/v1/availability?salonId=1&staffId=5&date=10.03.2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandle_NotFoundMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{getAvailability.ErrSalonNotFound, http.StatusNotFound},
		{getAvailability.ErrStaffNotFound, http.StatusNotFound},
		{getAvailability.ErrServiceNotFound, http.StatusNotFound},
		{getAvailability.ErrInvalidDuration, http.StatusBadRequest},
		{getAvailability.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		h := NewHandler(&fakeUseCase{err: tt.err}, noopLogger{})
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability?salonId=1&staffId=5&date=2026-03-10", nil))
		assert.Equal(t, tt.status, rec.Code, tt.err.Error())
	}
}
