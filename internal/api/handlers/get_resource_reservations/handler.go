package get_resource_reservations

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/maverk/IndoorBookingService/internal/api/handlers"
	"github.com/maverk/IndoorBookingService/internal/api/middleware"
	"github.com/maverk/IndoorBookingService/internal/domain"
	"github.com/maverk/IndoorBookingService/internal/service/reservations"
	"github.com/maverk/IndoorBookingService/internal/service/reservations/models"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter     = "некорректные параметры фильтрации"
	msgResourceNotFound  = "ресурс не найден"
	msgForbidden         = "доступ запрещен"
	msgUnauthorized      = "требуется аутентификация"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/bookings
// Query params: date (optional, YYYY-MM-DD), status (optional), includeInactive (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /resources/{id}/bookings - Missing actor in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем resourceId из URL
	vars := mux.Vars(r)
	resourceID, err := uuid.Parse(vars["resourceId"])
	if err != nil {
		h.logger.Warn("GET /resources/{id}/bookings - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	// Собираем фильтр из query параметров
	req := &models.GetResourceReservationsRequest{}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /resources/{id}/bookings - Invalid date format: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	req.IncludeInactive = r.URL.Query().Get("includeInactive") == "true"

	result, err := h.service.GetResourceReservations(r.Context(), actor, resourceID, req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{id}/bookings - Resource not found: resource_id=%s", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /resources/{id}/bookings - Access denied: resource_id=%s, user_id=%s",
				resourceID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/bookings - Invalid filter: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /resources/{id}/bookings - Failed to get reservations: resource_id=%s, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{id}/bookings - Reservations retrieved successfully: resource_id=%s, count=%d",
		resourceID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
