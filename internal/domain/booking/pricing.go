package booking

// SlotChargeLine is one row of the line-item table. Derived, never stored as truth.
type SlotChargeLine struct {
	SlotID         int64
	Label          string
	PremiumPercent float64
	MemberPremium  float64
	GuestPremium   float64
	// Total is what the booker pays for this slot.
	Total float64
	// GuestTotal is what each accompanying guest pays for this slot.
	GuestTotal float64
}

type SlotCharges struct {
	UserCharge  float64
	GuestCharge float64
	Breakdown   []SlotChargeLine
}

// ComputeSlotCharges sums the booker and guest charges over the selected slots.
// With nothing selected it falls back to a single base charge so a quote can
// be shown before any slot is picked. Ids missing from slots are priced at
// base rates with no premium.
func ComputeSlotCharges(selected []int64, slots []Slot, userType UserType, charge FacilityCharge, rule *BookingRule, guests int) SlotCharges {
	memberRate := rule.MemberRate(charge)
	guestRate := charge.AdultGuestCharge
	occupant := userType == UserTypeOccupant
	guestCount := float64(max(guests, 0))

	if len(selected) == 0 {
		userCharge := guestRate
		if occupant {
			userCharge = memberRate
		}
		return SlotCharges{
			UserCharge:  userCharge,
			GuestCharge: guestCount * guestRate,
			Breakdown:   []SlotChargeLine{},
		}
	}

	out := SlotCharges{Breakdown: make([]SlotChargeLine, 0, len(selected))}
	for _, id := range selected {
		line := SlotChargeLine{SlotID: id}
		if slot, ok := FindSlot(slots, id); ok {
			line.Label = slot.DisplayLabel()
			if slot.HasPremium() {
				line.PremiumPercent = slot.PremiumPercentage
				line.MemberPremium = memberRate * slot.PremiumPercentage / 100
				line.GuestPremium = guestRate * slot.PremiumPercentage / 100
			}
		}

		if occupant {
			line.Total = memberRate + line.MemberPremium
		} else {
			line.Total = guestRate + line.GuestPremium
		}
		line.GuestTotal = guestRate + line.GuestPremium

		out.UserCharge += line.Total
		out.GuestCharge += guestCount * line.GuestTotal
		out.Breakdown = append(out.Breakdown, line)
	}
	return out
}
