package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-SpaBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date  string          `json:"date"`
	Slots []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time           string `json:"time"`
	AvailableSpots int    `json:"availableSpots"`
	TotalSpots     int    `json:"totalSpots"`
	IsFull         bool   `json:"isFull"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:           slot.Time.String(),
			AvailableSpots: slot.AvailableSpots,
			TotalSpots:     slot.TotalSpots,
			IsFull:         slot.Full,
		}
	}

	return &AvailableSlotsResponse{
		Date:  resp.Date.String(),
		Slots: slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(dateStr string) *getAvailableSlots.Request {
	return &getAvailableSlots.Request{Date: types.DateString(dateStr)}
}
