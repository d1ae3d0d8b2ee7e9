package create_booking

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/maverk/IndoorBookingService/internal/api/handlers"
	"github.com/maverk/IndoorBookingService/internal/api/middleware"
	createBooking "github.com/maverk/IndoorBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgResourceNotFound   = "ресурс не найден"
	msgEmptySelection     = "необходимо выбрать хотя бы один слот"
	msgInvalidSlotID      = "ID слота должен быть в диапазоне от 0 до 23"
	msgUnauthorized       = "требуется аутентификация"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing actor in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Декодируем body
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в модель use case (с парсингом даты)
	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrResourceNotFound):
			h.logger.Warn("POST /bookings - Resource not found: resource_id=%s", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, createBooking.ErrEmptySelection):
			h.logger.Warn("POST /bookings - Empty slot selection: resource_id=%s", req.ResourceID)
			handlers.RespondBadRequest(w, msgEmptySelection)

		case errors.Is(err, createBooking.ErrInvalidSlotID):
			h.logger.Warn("POST /bookings - Invalid slot id: resource_id=%s, slots=%v", req.ResourceID, req.SlotIDs)
			handlers.RespondBadRequest(w, msgInvalidSlotID)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			// Весь запрос отклоняется целиком, в ответе первый занятый слот
			var slotErr *createBooking.SlotUnavailableError
			msg := "слот уже занят"
			if errors.As(err, &slotErr) {
				msg = fmt.Sprintf("слот %d уже занят", slotErr.SlotID)
			}
			h.logger.Warn("POST /bookings - Slot unavailable: resource_id=%s, date=%s, error=%v",
				req.ResourceID, req.Date, err)
			handlers.RespondError(w, http.StatusConflict, msg)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: resource_id=%s, error=%v", req.ResourceID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: resource_id=%s, user_id=%s, error=%v",
				req.ResourceID, actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: resource_id=%s, date=%s, slots=%d, user_id=%s",
		req.ResourceID, req.Date, len(result.Reservations), actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
