package booking

import "fmt"

// Slot is a bookable interval of a facility on one date. IDs ascend in
// chronological order within a facility-day.
type Slot struct {
	ID                int64
	StartHour         int
	StartMinute       int
	EndHour           int
	EndMinute         int
	IsPremium         bool
	PremiumPercentage float64
	Label             string
}

func (s Slot) HasPremium() bool {
	return s.IsPremium && s.PremiumPercentage > 0
}

func (s Slot) DisplayLabel() string {
	if s.Label != "" {
		return s.Label
	}
	return formatClock(s.StartHour, s.StartMinute) + " to " + formatClock(s.EndHour, s.EndMinute)
}

func formatClock(hour, minute int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h, minute, suffix)
}

func FindSlot(slots []Slot, id int64) (Slot, bool) {
	for _, s := range slots {
		if s.ID == id {
			return s, true
		}
	}
	return Slot{}, false
}
