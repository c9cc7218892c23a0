package booking

import "time"

// Occupancy summarizes an item's approved bookings around an instant.
type Occupancy struct {
	Last *Booking
	Next *Booking
}

// Project computes the last and next APPROVED booking relative to now.
// Last has the greatest start among bookings with start <= now, Next the
// smallest start among bookings with start > now. On equal starts the earlier
// element of bookings wins. The input need not be sorted.
func Project(bookings []*Booking, now time.Time) Occupancy {
	var occ Occupancy
	for _, b := range bookings {
		if b.Status != StatusApproved {
			continue
		}
		if b.Start.After(now) {
			if occ.Next == nil || b.Start.Before(occ.Next.Start) {
				occ.Next = b
			}
			continue
		}
		if occ.Last == nil || b.Start.After(occ.Last.Start) {
			occ.Last = b
		}
	}
	return occ
}

// ProjectByItem groups bookings by item and projects each group.
func ProjectByItem(bookings []*Booking, now time.Time) map[string]Occupancy {
	grouped := make(map[string][]*Booking)
	for _, b := range bookings {
		grouped[b.ItemID] = append(grouped[b.ItemID], b)
	}

	out := make(map[string]Occupancy, len(grouped))
	for itemID, group := range grouped {
		out[itemID] = Project(group, now)
	}
	return out
}
