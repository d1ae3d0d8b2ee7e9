package get_available_slots

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса расписания ресурса на день
type Request struct {
	ResourceID uuid.UUID // ID ресурса
	Date       time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа: все 24 слота дня с флагом доступности и ценой
type Response struct {
	ResourceID     uuid.UUID // ID ресурса
	Date           time.Time // Дата, на которую запрашивались слоты
	BasePriceCents int64     // Базовая цена ресурса за слот
	Slots          []Slot    // Все 24 слота в порядке возрастания ID
}

// Slot модель одного слота дня
type Slot struct {
	SlotID      int    // ID слота (0-23)
	DisplayName string // Отображаемый диапазон, например "6:00 AM - 7:00 AM"
	Available   bool   // Свободен ли слот
	PriceCents  int64  // Действующая цена слота на эту дату
}
