package booking

import "math"

type CostSummary struct {
	Charges                SlotCharges
	SlotCount              int
	SlotTotal              float64
	SubtotalBeforeDiscount float64
	DiscountPercent        float64
	DiscountAmount         float64
	SubtotalAfterDiscount  float64
	GSTPercent             float64
	SGSTPercent            float64
	GSTAmount              float64
	SGSTAmount             float64
	GrandTotal             float64
}

// ComputeCostSummary applies slot total, discount and taxes in that order.
// Percentages are expected to be clamped already; see ClampPercent.
func ComputeCostSummary(sel SelectionState, slots []Slot, charge FacilityCharge, rule *BookingRule) CostSummary {
	charges := ComputeSlotCharges(sel.SelectedSlotIDs, slots, sel.UserType, charge, rule, sel.NumberOfGuests)

	s := CostSummary{
		Charges:         charges,
		SlotCount:       len(sel.SelectedSlotIDs),
		DiscountPercent: sel.DiscountPercent,
		GSTPercent:      charge.GSTPercent,
		SGSTPercent:     charge.SGSTPercent,
	}
	s.SlotTotal = float64(s.SlotCount) * charge.PerSlotCharge

	// guest and fm bookings have no member to bill
	if sel.UserType == UserTypeOccupant {
		s.SubtotalBeforeDiscount = charges.UserCharge + charges.GuestCharge + s.SlotTotal
	} else {
		s.SubtotalBeforeDiscount = charges.GuestCharge + s.SlotTotal
	}

	s.DiscountAmount = s.SubtotalBeforeDiscount * s.DiscountPercent / 100
	s.SubtotalAfterDiscount = s.SubtotalBeforeDiscount - s.DiscountAmount
	s.GSTAmount = s.SubtotalAfterDiscount * s.GSTPercent / 100
	s.SGSTAmount = s.SubtotalAfterDiscount * s.SGSTPercent / 100
	s.GrandTotal = s.SubtotalAfterDiscount + s.GSTAmount + s.SGSTAmount
	return s
}

func ClampPercent(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// ClampGuests bounds n to [0, maxPeople]. maxPeople <= 0 means unbounded.
func ClampGuests(n, maxPeople int) int {
	if n < 0 {
		return 0
	}
	if maxPeople > 0 && n > maxPeople {
		return maxPeople
	}
	return n
}
