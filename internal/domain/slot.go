package domain

import "github.com/m04kA/SMC-SpaBookingService/pkg/types"

// AvailableSlot represents a time slot available for booking
type AvailableSlot struct {
	Time           types.TimeString
	AvailableSpots int
	TotalSpots     int
}

// IsFull returns true if the slot has no available spots
func (s *AvailableSlot) IsFull() bool {
	return s.AvailableSpots <= 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *AvailableSlot) OccupancyRate() float64 {
	if s.TotalSpots == 0 {
		return 0
	}
	occupied := s.TotalSpots - s.AvailableSpots
	return float64(occupied) / float64(s.TotalSpots) * 100
}
