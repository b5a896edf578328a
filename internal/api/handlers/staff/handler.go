package staff

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glowpoint/salon-booking-service/internal/api/handlers"
	"github.com/glowpoint/salon-booking-service/internal/api/middleware"
	salonsService "github.com/glowpoint/salon-booking-service/internal/service/salons"
	"github.com/glowpoint/salon-booking-service/internal/service/salons/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidStaffID     = "некорректный ID мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSalonNotFound      = "салон не найден"
	msgStaffNotFound      = "мастер не найден"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service StaffService
	logger  Logger
}

func NewHandler(service StaffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/salons/{salonId}/staff
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	salonID, ok := parsePathID(w, r, h.logger, "salonId", msgInvalidSalonID)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /salons/{id}/staff - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/staff - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	member, err := h.service.CreateStaff(r.Context(), salonID, &req)
	if err != nil {
		h.respondStaffError(w, r, err, salonID, userID)
		return
	}

	h.logger.Info("POST /salons/{id}/staff - Staff created successfully: staff_id=%d, salon_id=%d",
		member.ID, salonID)
	handlers.RespondJSON(w, http.StatusCreated, member)
}

// HandleList GET /api/v1/salons/{salonId}/staff
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	salonID, ok := parsePathID(w, r, h.logger, "salonId", msgInvalidSalonID)
	if !ok {
		return
	}

	result, err := h.service.ListStaff(r.Context(), salonID)
	if err != nil {
		switch {
		case errors.Is(err, salonsService.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/staff - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		default:
			h.logger.Error("GET /salons/{id}/staff - Failed to list staff: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/staff - Retrieved %d staff members: salon_id=%d", result.Total, salonID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PATCH /api/v1/salons/{salonId}/staff/{staffId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	salonID, ok := parsePathID(w, r, h.logger, "salonId", msgInvalidSalonID)
	if !ok {
		return
	}
	staffID, ok := parsePathID(w, r, h.logger, "staffId", msgInvalidStaffID)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /salons/{id}/staff/{sid} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /salons/{id}/staff/{sid} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	member, err := h.service.UpdateStaff(r.Context(), salonID, staffID, &req)
	if err != nil {
		h.respondStaffError(w, r, err, salonID, userID)
		return
	}

	h.logger.Info("PATCH /salons/{id}/staff/{sid} - Staff updated successfully: staff_id=%d", staffID)
	handlers.RespondJSON(w, http.StatusOK, member)
}

// HandleDelete DELETE /api/v1/salons/{salonId}/staff/{staffId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	salonID, ok := parsePathID(w, r, h.logger, "salonId", msgInvalidSalonID)
	if !ok {
		return
	}
	staffID, ok := parsePathID(w, r, h.logger, "staffId", msgInvalidStaffID)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /salons/{id}/staff/{sid} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.DeleteStaff(r.Context(), salonID, staffID, userID); err != nil {
		h.respondStaffError(w, r, err, salonID, userID)
		return
	}

	h.logger.Info("DELETE /salons/{id}/staff/{sid} - Staff deleted successfully: staff_id=%d", staffID)
	w.WriteHeader(http.StatusNoContent)
}

// respondStaffError мапит ошибки сервиса на HTTP статусы
func (h *Handler) respondStaffError(w http.ResponseWriter, r *http.Request, err error, salonID, userID int64) {
	switch {
	case errors.Is(err, salonsService.ErrSalonNotFound):
		h.logger.Warn("%s %s - Salon not found: salon_id=%d", r.Method, r.URL.Path, salonID)
		handlers.RespondNotFound(w, msgSalonNotFound)

	case errors.Is(err, salonsService.ErrStaffNotFound):
		h.logger.Warn("%s %s - Staff not found: salon_id=%d", r.Method, r.URL.Path, salonID)
		handlers.RespondNotFound(w, msgStaffNotFound)

	case errors.Is(err, salonsService.ErrAccessDenied):
		h.logger.Warn("%s %s - Access denied: salon_id=%d, user_id=%d", r.Method, r.URL.Path, salonID, userID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, salonsService.ErrInvalidInput):
		h.logger.Warn("%s %s - Invalid input: salon_id=%d, error=%v", r.Method, r.URL.Path, salonID, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s %s - Request failed: salon_id=%d, error=%v", r.Method, r.URL.Path, salonID, err)
		handlers.RespondInternalError(w)
	}
}

// parsePathID извлекает числовой параметр из URL
func parsePathID(w http.ResponseWriter, r *http.Request, logger Logger, name, errMsg string) (int64, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars[name], 10, 64)
	if err != nil {
		logger.Warn("%s %s - Invalid %s: %v", r.Method, r.URL.Path, name, err)
		handlers.RespondBadRequest(w, errMsg)
		return 0, false
	}
	return id, true
}
