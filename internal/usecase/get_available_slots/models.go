package get_available_slots

import (
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date types.DateString // "2024-05-01"
}

// Response модель ответа со списком слотов
type Response struct {
	Date  types.DateString
	Slots []Slot
}

// Slot модель временного слота
type Slot struct {
	Time           types.TimeString // "10:00"
	AvailableSpots int
	TotalSpots     int
	Full           bool
}
