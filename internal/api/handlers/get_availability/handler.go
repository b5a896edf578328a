package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/glowpoint/salon-booking-service/internal/api/handlers"
	"github.com/glowpoint/salon-booking-service/internal/domain"
	getAvailability "github.com/glowpoint/salon-booking-service/internal/usecase/get_availability"
)

const (
	msgInvalidSalonID   = "некорректный ID салона"
	msgInvalidStaffID   = "некорректный ID мастера"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSalonNotFound    = "салон не найден"
	msgStaffNotFound    = "мастер не найден"
	msgServiceNotFound  = "услуга не найдена"
	msgInvalidDuration  = "некорректная длительность услуги"
	msgInvalidInput     = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?salonId=&staffId=&serviceId=&date=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	salonID, err := strconv.ParseInt(query.Get("salonId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	staffID, err := strconv.ParseInt(query.Get("staffId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	var serviceID *int64
	if raw := query.Get("serviceId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid service ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		serviceID = &id
	}

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		SalonID:   salonID,
		StaffID:   staffID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrSalonNotFound):
			h.logger.Warn("GET /availability - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, getAvailability.ErrStaffNotFound):
			h.logger.Warn("GET /availability - Staff not found: salon_id=%d, staff_id=%d", salonID, staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /availability - Service not found: salon_id=%d, service_id=%v", salonID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailability.ErrInvalidDuration):
			h.logger.Warn("GET /availability - Invalid duration: salon_id=%d, service_id=%v", salonID, serviceID)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /availability - Failed to compute slots: salon_id=%d, staff_id=%d, error=%v",
				salonID, staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Computed %d slots: salon_id=%d, staff_id=%d, date=%s",
		len(result.Slots), salonID, staffID, date.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
