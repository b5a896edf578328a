package promotions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glowpoint/salon-booking-service/internal/api/handlers"
	"github.com/glowpoint/salon-booking-service/internal/api/middleware"
	promotionsService "github.com/glowpoint/salon-booking-service/internal/service/promotions"
	"github.com/glowpoint/salon-booking-service/internal/service/promotions/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidPromotionID = "некорректный ID акции"
	msgInvalidActiveOnly  = "некорректное значение activeOnly"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSalonNotFound      = "салон не найден"
	msgPromotionNotFound  = "акция не найдена"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service PromotionService
	logger  Logger
}

func NewHandler(service PromotionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/salons/{salonId}/promotions
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	salonID, ok := parsePathID(w, r, h.logger, "salonId", msgInvalidSalonID)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /salons/{id}/promotions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreatePromotionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/promotions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	promo, err := h.service.Create(r.Context(), salonID, &req)
	if err != nil {
		h.respondPromotionError(w, r, err, salonID, userID)
		return
	}

	h.logger.Info("POST /salons/{id}/promotions - Promotion created successfully: promotion_id=%d, salon_id=%d",
		promo.ID, salonID)
	handlers.RespondJSON(w, http.StatusCreated, promo)
}

// HandleList GET /api/v1/salons/{salonId}/promotions?activeOnly=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	salonID, ok := parsePathID(w, r, h.logger, "salonId", msgInvalidSalonID)
	if !ok {
		return
	}

	req := &models.ListPromotionsRequest{SalonID: salonID}

	if raw := r.URL.Query().Get("activeOnly"); raw != "" {
		activeOnly, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /salons/{id}/promotions - Invalid activeOnly: %v", err)
			handlers.RespondBadRequest(w, msgInvalidActiveOnly)
			return
		}
		req.ActiveOnly = activeOnly
	}

	result, err := h.service.ListBySalon(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, promotionsService.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/promotions - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		default:
			h.logger.Error("GET /salons/{id}/promotions - Failed to list promotions: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/promotions - Retrieved %d promotions: salon_id=%d", result.Total, salonID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PATCH /api/v1/salons/{salonId}/promotions/{promotionId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	salonID, ok := parsePathID(w, r, h.logger, "salonId", msgInvalidSalonID)
	if !ok {
		return
	}
	promotionID, ok := parsePathID(w, r, h.logger, "promotionId", msgInvalidPromotionID)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /salons/{id}/promotions/{pid} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdatePromotionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /salons/{id}/promotions/{pid} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	promo, err := h.service.Update(r.Context(), salonID, promotionID, &req)
	if err != nil {
		h.respondPromotionError(w, r, err, salonID, userID)
		return
	}

	h.logger.Info("PATCH /salons/{id}/promotions/{pid} - Promotion updated successfully: promotion_id=%d", promotionID)
	handlers.RespondJSON(w, http.StatusOK, promo)
}

// HandleDelete DELETE /api/v1/salons/{salonId}/promotions/{promotionId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	salonID, ok := parsePathID(w, r, h.logger, "salonId", msgInvalidSalonID)
	if !ok {
		return
	}
	promotionID, ok := parsePathID(w, r, h.logger, "promotionId", msgInvalidPromotionID)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /salons/{id}/promotions/{pid} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), salonID, promotionID, userID); err != nil {
		h.respondPromotionError(w, r, err, salonID, userID)
		return
	}

	h.logger.Info("DELETE /salons/{id}/promotions/{pid} - Promotion deleted successfully: promotion_id=%d", promotionID)
	w.WriteHeader(http.StatusNoContent)
}

// respondPromotionError мапит ошибки сервиса на HTTP статусы
func (h *Handler) respondPromotionError(w http.ResponseWriter, r *http.Request, err error, salonID, userID int64) {
	switch {
	case errors.Is(err, promotionsService.ErrSalonNotFound):
		h.logger.Warn("%s %s - Salon not found: salon_id=%d", r.Method, r.URL.Path, salonID)
		handlers.RespondNotFound(w, msgSalonNotFound)

	case errors.Is(err, promotionsService.ErrPromotionNotFound):
		h.logger.Warn("%s %s - Promotion not found: salon_id=%d", r.Method, r.URL.Path, salonID)
		handlers.RespondNotFound(w, msgPromotionNotFound)

	case errors.Is(err, promotionsService.ErrAccessDenied):
		h.logger.Warn("%s %s - Access denied: salon_id=%d, user_id=%d", r.Method, r.URL.Path, salonID, userID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, promotionsService.ErrInvalidInput):
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
