// Package booking handles room reservations.
package booking

import (
	"time"

	"github.com/hospiops/facilityhub/internal/platform/backend"
)

// Booking statuses.
const (
	StatusConfirmee = "confirmee"
	StatusAnnulee   = "annulee"
)

// Booking reserves a room for a date range.
type Booking struct {
	ID        string       `json:"id"`
	Room      string       `json:"room"`
	Reason    string       `json:"reason"`
	StartDate backend.Date `json:"start_date"`
	EndDate   backend.Date `json:"end_date,omitempty"`
	BookedBy  string       `json:"booked_by,omitempty"`
	Service   string       `json:"service,omitempty"`
	Status    string       `json:"status"`
}

// Active reports whether the booking still holds the room on the given
// day. Cancelled bookings never hold a room.
func Active(b Booking, now time.Time) bool {
	if b.Status == StatusAnnulee || b.StartDate.IsZero() {
		return false
	}
	end := b.EndDate
	if end.IsZero() {
		end = b.StartDate
	}
	return !end.Before(now.Truncate(24 * time.Hour))
}

// Overlaps reports whether two bookings claim the same room on at
// least one shared day. A missing end date means a single-day booking.
func Overlaps(a, b Booking) bool {
	if a.Room != b.Room {
		return false
	}
	aEnd, bEnd := a.EndDate, b.EndDate
	if aEnd.IsZero() {
		aEnd = a.StartDate
	}
	if bEnd.IsZero() {
		bEnd = b.StartDate
	}
	return !aEnd.Before(b.StartDate.Time) && !bEnd.Before(a.StartDate.Time)
}
