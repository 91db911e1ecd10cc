package availability

import "github.com/m04kA/SMC-SpaBookingService/pkg/types"

// SlotRequest запрос места в слоте услуги
type SlotRequest struct {
	Date         types.DateString
	Time         types.TimeString
	TechnicianID *string // nil, "" или "auto" - любой мастер
}

// RoomRequest запрос номеров на период [CheckIn, CheckOut)
type RoomRequest struct {
	RoomTypeID string
	CheckIn    types.DateString
	CheckOut   types.DateString
	Rooms      int
}
