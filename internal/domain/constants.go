package domain

// Default configuration values
const (
	DefaultMaxBookingsPerSlot = 1
	DefaultSpendPerPoint      = 100
	DefaultVisitPoints        = 10
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxCompletionNoteLength     = 1000
	MaxRoomsPerBooking          = 20
	MaxNightsPerBooking         = 60
)

// AutoAssignTechnician значение, означающее "любой свободный мастер"
const AutoAssignTechnician = "auto"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// SlotCountedStatuses статусы, занимающие место в слоте услуги
// blocked учитывается (ручная блокировка слота), in_progress - нет
var SlotCountedStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusAwaitingConfirmation,
	StatusBlocked,
}

// ActiveRoomStatuses статусы, занимающие номер на период проживания
// cancelled/completed/blocked номер не блокируют
var ActiveRoomStatuses = []BookingStatus{
	StatusPending,
	StatusAwaitingConfirmation,
	StatusConfirmed,
	StatusInProgress,
}
