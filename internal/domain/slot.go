package domain

import "github.com/m04kA/SMC-SalonBookingService/pkg/types"

// Slot is one candidate appointment start time on the day grid
type Slot struct {
	Time      types.TimeString
	Available bool
	IsPast    bool
}

// IsBooked returns true if the slot is in the future but taken
func (s *Slot) IsBooked() bool {
	return !s.Available && !s.IsPast
}
