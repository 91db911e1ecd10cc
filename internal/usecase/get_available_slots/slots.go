package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

// dayState положение запрошенной даты относительно текущего дня бизнеса
type dayState int

const (
	dayPast dayState = iota
	dayToday
	dayFuture
)

// classifyDate сравнивает дату с сегодняшним днем в часовом поясе бизнеса
func classifyDate(date types.DateString, now time.Time, loc *time.Location) dayState {
	today := types.NewDateString(now.In(loc))
	switch {
	case date.Before(today):
		return dayPast
	case date == today:
		return dayToday
	}
	return dayFuture
}

// toResponseSlots переводит занятость в ответ
// Для сегодняшней даты слоты, время которых уже прошло, не возвращаются
func toResponseSlots(slots []domain.AvailableSlot, state dayState, now time.Time, loc *time.Location) []Slot {
	current := types.TimeString(now.In(loc).Format(domain.TimeFormat))

	result := make([]Slot, 0, len(slots))
	for _, s := range slots {
		// "HH:MM" упорядочено лексикографически
		if state == dayToday && s.Time.String() <= current.String() {
			continue
		}
		result = append(result, Slot{
			Time:           s.Time,
			AvailableSpots: s.AvailableSpots,
			TotalSpots:     s.TotalSpots,
			Full:           s.IsFull(),
		})
	}
	return result
}
