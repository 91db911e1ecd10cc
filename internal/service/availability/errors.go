package availability

import (
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

var (
	// ErrTechnicianBusy мастер уже занят в этом слоте (разновидность ErrSlotFull)
	ErrTechnicianBusy = fmt.Errorf("%w: technician is already booked at this time", domain.ErrSlotFull)

	// ErrNoFreeRoom номер не удалось назначить (разновидность ErrRoomFullyBooked)
	ErrNoFreeRoom = fmt.Errorf("%w: no free room unit for the period", domain.ErrRoomFullyBooked)
)
