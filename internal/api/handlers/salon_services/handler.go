package salon_services

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
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSalonNotFound      = "салон не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/salons/{salonId}/services
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	salonID, ok := parsePathID(w, r, h.logger, "salonId", msgInvalidSalonID)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /salons/{id}/services - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	service, err := h.service.CreateService(r.Context(), salonID, &req)
	if err != nil {
		h.respondServiceError(w, r, err, salonID, userID)
		return
	}

	h.logger.Info("POST /salons/{id}/services - Service created successfully: service_id=%d, salon_id=%d",
		service.ID, salonID)
	handlers.RespondJSON(w, http.StatusCreated, service)
}

// HandleList GET /api/v1/salons/{salonId}/services
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	salonID, ok := parsePathID(w, r, h.logger, "salonId", msgInvalidSalonID)
	if !ok {
		return
	}

	result, err := h.service.ListServices(r.Context(), salonID)
	if err != nil {
		switch {
		case errors.Is(err, salonsService.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/services - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		default:
			h.logger.Error("GET /salons/{id}/services - Failed to list services: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/services - Retrieved %d services: salon_id=%d", result.Total, salonID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PATCH /api/v1/salons/{salonId}/services/{serviceId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	salonID, ok := parsePathID(w, r, h.logger, "salonId", msgInvalidSalonID)
	if !ok {
		return
	}
	serviceID, ok := parsePathID(w, r, h.logger, "serviceId", msgInvalidServiceID)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /salons/{id}/services/{sid} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /salons/{id}/services/{sid} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	service, err := h.service.UpdateService(r.Context(), salonID, serviceID, &req)
	if err != nil {
		h.respondServiceError(w, r, err, salonID, userID)
		return
	}

	h.logger.Info("PATCH /salons/{id}/services/{sid} - Service updated successfully: service_id=%d", serviceID)
	handlers.RespondJSON(w, http.StatusOK, service)
}

// HandleDelete DELETE /api/v1/salons/{salonId}/services/{serviceId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	salonID, ok := parsePathID(w, r, h.logger, "salonId", msgInvalidSalonID)
	if !ok {
		return
	}
	serviceID, ok := parsePathID(w, r, h.logger, "serviceId", msgInvalidServiceID)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /salons/{id}/services/{sid} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.DeleteService(r.Context(), salonID, serviceID, userID); err != nil {
		h.respondServiceError(w, r, err, salonID, userID)
		return
	}

	h.logger.Info("DELETE /salons/{id}/services/{sid} - Service deleted successfully: service_id=%d", serviceID)
	w.WriteHeader(http.StatusNoContent)
}

// respondServiceError мапит ошибки сервиса на HTTP статусы
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error, salonID, userID int64) {
	switch {
	case errors.Is(err, salonsService.ErrSalonNotFound):
		h.logger.Warn("%s %s - Salon not found: salon_id=%d", r.Method, r.URL.Path, salonID)
		handlers.RespondNotFound(w, msgSalonNotFound)

	case errors.Is(err, salonsService.ErrServiceNotFound):
		h.logger.Warn("%s %s - Service not found: salon_id=%d", r.Method, r.URL.Path, salonID)
		handlers.RespondNotFound(w, msgServiceNotFound)

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
