package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/maverk/IndoorBookingService/internal/domain"
)

// Request модель запроса на бронирование нескольких слотов одной датой.
// Мульти-слотовая бронь разбивается на независимые брони по одному слоту:
// слоты оцениваются по отдельности и могут быть по отдельности подтверждены
// или отклонены владельцем.
type Request struct {
	Actor      domain.Actor // Аутентифицированный пользователь, от чьего имени создаётся бронь
	ResourceID uuid.UUID    // ID ресурса
	Date       time.Time    // Дата бронирования (без времени)
	SlotIDs    []int        // Запрошенные слоты (дубликаты отбрасываются)
}

// Response модель ответа с созданными бронированиями
type Response struct {
	ResourceID      uuid.UUID     // ID ресурса
	Date            time.Time     // Дата бронирования
	Reservations    []Reservation // Созданные брони, по одной на слот
	TotalPriceCents int64         // Суммарная цена всех слотов
}

// Reservation созданная бронь одного слота
type Reservation struct {
	ID          uuid.UUID // ID брони
	SlotID      int       // ID слота
	DisplayName string    // Отображаемый диапазон слота, например "6:00 AM - 7:00 AM"
	Status      string    // Статус (всегда pending при создании)
	PriceCents  int64     // Снимок цены на момент бронирования
	CreatedAt   time.Time // Время создания
}
