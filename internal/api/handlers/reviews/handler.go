package reviews

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/glowpoint/salon-booking-service/internal/api/handlers"
	"github.com/glowpoint/salon-booking-service/internal/api/middleware"
	reviewsService "github.com/glowpoint/salon-booking-service/internal/service/reviews"
	"github.com/glowpoint/salon-booking-service/internal/service/reviews/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSalonNotFound      = "салон не найден"
	msgDuplicateReview    = "вы уже оставили отзыв об этом салоне"
)

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/salons/{salonId}/reviews
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	salonID, ok := parseSalonID(w, r, h.logger)
	if !ok {
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /salons/{id}/reviews - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.CustomerID = userID

	review, err := h.service.Create(r.Context(), salonID, &req)
	if err != nil {
		switch {
		case errors.Is(err, reviewsService.ErrSalonNotFound):
			h.logger.Warn("POST /salons/{id}/reviews - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, reviewsService.ErrDuplicateReview):
			h.logger.Warn("POST /salons/{id}/reviews - Duplicate review: salon_id=%d, customer_id=%d",
				salonID, userID)
			handlers.RespondConflict(w, msgDuplicateReview)

		case errors.Is(err, reviewsService.ErrInvalidInput):
			h.logger.Warn("POST /salons/{id}/reviews - Invalid input: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /salons/{id}/reviews - Failed to create review: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons/{id}/reviews - Review created successfully: review_id=%d, salon_id=%d",
		review.ID, salonID)
	handlers.RespondJSON(w, http.StatusCreated, review)
}

// HandleList GET /api/v1/salons/{salonId}/reviews
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	salonID, ok := parseSalonID(w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.service.ListBySalon(r.Context(), salonID)
	if err != nil {
		switch {
		case errors.Is(err, reviewsService.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/reviews - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		default:
			h.logger.Error("GET /salons/{id}/reviews - Failed to list reviews: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/reviews - Retrieved %d reviews: salon_id=%d", result.Total, salonID)
	handlers.RespondJSON(w, http.StatusOK, result)
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
