package send_notification

import (
	"errors"
	"net/http"

	"github.com/glowpoint/salon-booking-service/internal/api/handlers"
	notificationsService "github.com/glowpoint/salon-booking-service/internal/service/notifications"
	"github.com/glowpoint/salon-booking-service/internal/service/notifications/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidType        = "некорректный тип уведомления"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/notifications/send
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /notifications/send - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	results, err := h.service.Send(r.Context(), models.NotificationType(req.Type), req.Data)
	if err != nil {
		switch {
		case errors.Is(err, notificationsService.ErrInvalidType):
			h.logger.Warn("POST /notifications/send - Invalid notification type: type=%s", req.Type)
			handlers.RespondBadRequest(w, msgInvalidType)

		default:
			h.logger.Error("POST /notifications/send - Failed to send notification: type=%s, error=%v",
				req.Type, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /notifications/send - Notification dispatched: type=%s, booking_id=%d, channels=%d",
		req.Type, req.Data.BookingID, len(results))
	handlers.RespondJSON(w, http.StatusOK, &Response{Results: results})
}
