package booking

// FacilityCharge is the tariff of a facility. Missing upstream fields are 0.
type FacilityCharge struct {
	AdultMemberCharge float64
	AdultGuestCharge  float64
	ChildMemberCharge float64
	ChildGuestCharge  float64
	PerSlotCharge     float64
	GSTPercent        float64
	SGSTPercent       float64
}

// BookingRule is the per-user, per-facility policy.
// A nil Rate means "use the facility default"; an explicit 0 is a free booking.
type BookingRule struct {
	CanBook              bool
	Rate                 *float64
	MultipleBookings     bool
	MultipleBookingCount int
	ConcurrentSlots      int
}

func (r *BookingRule) MaxSelectable() int {
	if r.MultipleBookings && r.MultipleBookingCount > 0 {
		return r.MultipleBookingCount
	}
	return 1
}

func (r *BookingRule) MaxConcurrent() int {
	if r.ConcurrentSlots > 0 {
		return r.ConcurrentSlots
	}
	return 1
}

// MemberRate is safe to call on a nil rule.
func (r *BookingRule) MemberRate(charge FacilityCharge) float64 {
	if r != nil && r.Rate != nil {
		return *r.Rate
	}
	return charge.AdultMemberCharge
}

type Facility struct {
	ID        int64
	Name      string
	MaxPeople int
	Charge    FacilityCharge
	Payments  PaymentOptions
}
