package salons

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
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidMinRating   = "некорректное значение minRating"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSalonNotFound      = "салон не найден"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service SalonService
	logger  Logger
}

func NewHandler(service SalonService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/salons
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /salons - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateSalonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.OwnerID = userID

	salon, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, salonsService.ErrInvalidInput):
			h.logger.Warn("POST /salons - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /salons - Failed to create salon: owner_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons - Salon created successfully: salon_id=%d, owner_id=%d", salon.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, salon)
}

// HandleList GET /api/v1/salons?city=&minRating=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	req := &models.ListSalonsRequest{}
	query := r.URL.Query()

	if city := query.Get("city"); city != "" {
		req.City = &city
	}

	if raw := query.Get("minRating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.logger.Warn("GET /salons - Invalid min rating: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMinRating)
			return
		}
		req.MinRating = &minRating
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /salons - Failed to list salons: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salons - Retrieved %d salons", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/salons/{salonId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	salonID, ok := parseSalonID(w, r, h.logger)
	if !ok {
		return
	}

	salon, err := h.service.GetByID(r.Context(), salonID)
	if err != nil {
		switch {
		case errors.Is(err, salonsService.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id} - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		default:
			h.logger.Error("GET /salons/{id} - Failed to get salon: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, salon)
}

// HandleUpdate PATCH /api/v1/salons/{salonId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	salonID, ok := parseSalonID(w, r, h.logger)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /salons/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateSalonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /salons/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	salon, err := h.service.Update(r.Context(), salonID, &req)
	if err != nil {
		switch {
		case errors.Is(err, salonsService.ErrSalonNotFound):
			h.logger.Warn("PATCH /salons/{id} - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, salonsService.ErrAccessDenied):
			h.logger.Warn("PATCH /salons/{id} - Access denied: salon_id=%d, user_id=%d", salonID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, salonsService.ErrInvalidInput):
			h.logger.Warn("PATCH /salons/{id} - Invalid input: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /salons/{id} - Failed to update salon: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /salons/{id} - Salon updated successfully: salon_id=%d, user_id=%d", salonID, userID)
	handlers.RespondJSON(w, http.StatusOK, salon)
}

// HandleDelete DELETE /api/v1/salons/{salonId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	salonID, ok := parseSalonID(w, r, h.logger)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /salons/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), salonID, userID); err != nil {
		switch {
		case errors.Is(err, salonsService.ErrSalonNotFound):
			h.logger.Warn("DELETE /salons/{id} - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, salonsService.ErrAccessDenied):
			h.logger.Warn("DELETE /salons/{id} - Access denied: salon_id=%d, user_id=%d", salonID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /salons/{id} - Failed to delete salon: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /salons/{id} - Salon deleted successfully: salon_id=%d, user_id=%d", salonID, userID)
	w.WriteHeader(http.StatusNoContent)
}

// parseSalonID извлекает salonId из URL
func parseSalonID(w http.ResponseWriter, r *http.Request, logger Logger) (int64, bool) {
	vars := mux.Vars(r)
	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		logger.Warn("%s %s - Invalid salon ID: %v", r.Method, r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return 0, false
	}
	return salonID, true
}
