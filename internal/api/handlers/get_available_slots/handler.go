package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/maverk/IndoorBookingService/internal/api/handlers"
	getAvailableSlots "github.com/maverk/IndoorBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgResourceNotFound  = "ресурс не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем resourceId из URL
	resourceID, err := uuid.Parse(vars["resourceId"])
	if err != nil {
		h.logger.Warn("GET /resources/{id}/slots - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /resources/{id}/slots - Missing date: resource_id=%s", resourceID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(resourceID, dateStr)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{id}/slots - Resource not found: resource_id=%s", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/slots - Invalid input: resource_id=%s, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /resources/{id}/slots - Failed to get slots: resource_id=%s, date=%s, error=%v",
				resourceID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /resources/{id}/slots - Schedule retrieved successfully: resource_id=%s, date=%s, slots_count=%d",
		resourceID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
