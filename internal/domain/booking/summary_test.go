//go:build unit

package booking_test

import (
	"math"
	"testing"

	"facility-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
)

func TestComputeCostSummary_TaxAndDiscountOrdering(t *testing.T) {
	// one occupant slot at 1000 with no guests gives a 1000 subtotal
	sel := booking.SelectionState{
		SelectedSlotIDs: []int64{1},
		UserType:        booking.UserTypeOccupant,
		DiscountPercent: 10,
	}
	charge := booking.FacilityCharge{AdultMemberCharge: 1000, GSTPercent: 9, SGSTPercent: 9}

	got := booking.ComputeCostSummary(sel, testSlots, charge, nil)

	assert.InDelta(t, 1000, got.SubtotalBeforeDiscount, delta)
	assert.InDelta(t, 100, got.DiscountAmount, delta)
	assert.InDelta(t, 900, got.SubtotalAfterDiscount, delta)
	assert.InDelta(t, 81, got.GSTAmount, delta)
	assert.InDelta(t, 81, got.SGSTAmount, delta)
	assert.InDelta(t, 1062, got.GrandTotal, delta)
	assert.InDelta(t, 9, got.GSTPercent, delta)
	assert.Equal(t, 1, got.SlotCount)
}

func TestComputeCostSummary_GuestExcludesUserCharge(t *testing.T) {
	charge := booking.FacilityCharge{AdultMemberCharge: 100, AdultGuestCharge: 250, PerSlotCharge: 40}

	for _, userType := range []booking.UserType{booking.UserTypeGuest, booking.UserTypeFM} {
		t.Run(userType.String(), func(t *testing.T) {
			sel := booking.SelectionState{
				SelectedSlotIDs: []int64{1, 2},
				UserType:        userType,
				NumberOfGuests:  2,
			}
			got := booking.ComputeCostSummary(sel, testSlots, charge, nil)

			assert.InDelta(t, 500, got.Charges.UserCharge, delta)
			assert.InDelta(t, 1000, got.Charges.GuestCharge, delta)
			assert.InDelta(t, 80, got.SlotTotal, delta)
			assert.InDelta(t, 1080, got.SubtotalBeforeDiscount, delta)
		})
	}
}

func TestComputeCostSummary_Occupant(t *testing.T) {
	sel := booking.SelectionState{
		SelectedSlotIDs: []int64{3},
		UserType:        booking.UserTypeOccupant,
		NumberOfGuests:  1,
	}
	charge := booking.FacilityCharge{AdultMemberCharge: 100, AdultGuestCharge: 200, PerSlotCharge: 10, GSTPercent: 5}

	got := booking.ComputeCostSummary(sel, testSlots, charge, nil)

	// user 100+20, guest 200+40, slot 10
	assert.InDelta(t, 370, got.SubtotalBeforeDiscount, delta)
	assert.InDelta(t, 18.5, got.GSTAmount, delta)
	assert.InDelta(t, 0, got.SGSTAmount, delta)
	assert.InDelta(t, 388.5, got.GrandTotal, delta)
}

func TestComputeCostSummary_NothingLoaded(t *testing.T) {
	got := booking.ComputeCostSummary(booking.SelectionState{UserType: booking.UserTypeOccupant}, nil, booking.FacilityCharge{}, nil)

	assert.Zero(t, got.GrandTotal)
	assert.Zero(t, got.SlotCount)
	assert.NotNil(t, got.Charges.Breakdown)
}

func TestComputeCostSummary_NonNegative(t *testing.T) {
	charge := booking.FacilityCharge{AdultMemberCharge: 75, AdultGuestCharge: 125, PerSlotCharge: 15, GSTPercent: 18, SGSTPercent: 9}
	for _, discount := range []float64{0, 33.3, 100} {
		for guests := 0; guests < 4; guests++ {
			sel := booking.SelectionState{
				SelectedSlotIDs: []int64{1, 3, 5},
				UserType:        booking.UserTypeOccupant,
				NumberOfGuests:  guests,
				DiscountPercent: discount,
			}
			got := booking.ComputeCostSummary(sel, testSlots, charge, nil)
			assert.GreaterOrEqual(t, got.SubtotalAfterDiscount, -delta)
			assert.GreaterOrEqual(t, got.GrandTotal, -delta)
		}
	}
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0.0, booking.ClampPercent(-5))
	assert.Equal(t, 100.0, booking.ClampPercent(150))
	assert.Equal(t, 12.5, booking.ClampPercent(12.5))
	assert.Equal(t, 0.0, booking.ClampPercent(math.NaN()))
}

func TestClampGuests(t *testing.T) {
	assert.Equal(t, 0, booking.ClampGuests(-1, 10))
	assert.Equal(t, 10, booking.ClampGuests(12, 10))
	assert.Equal(t, 12, booking.ClampGuests(12, 0))
	assert.Equal(t, 3, booking.ClampGuests(3, 10))
}
