package domain

// BookingStats is the admin dashboard summary
type BookingStats struct {
	Today        int
	ThisWeek     int
	ThisMonth    int
	Total        int
	ByStatus     map[BookingStatus]int
	Revenue      float64 // completed and paid bookings
	MonthRevenue float64
}

// Actor is the authenticated caller of an operation
type Actor struct {
	UserID  string
	IsAdmin bool
}

// CanAccess reports whether the actor may read or modify b
func (a Actor) CanAccess(b *Booking) bool {
	return a.IsAdmin || b.IsOwnedBy(a.UserID)
}
