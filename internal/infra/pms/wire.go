package pms

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"facility-booking/internal/domain/booking"
)

// number decodes a JSON number, a numeric string or null. Anything else is 0.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	s := strings.Trim(string(b), `"`)
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = number(v)
	return nil
}

// flag is upstream's enabled marker. Only 1, "1" and true switch it on.
type flag bool

func (f *flag) UnmarshalJSON(b []byte) error {
	switch strings.Trim(string(bytes.TrimSpace(b)), `"`) {
	case "1", "true":
		*f = true
	default:
		*f = false
	}
	return nil
}

type facilityEnvelope struct {
	FacilitySetup *facilitySetup `json:"facility_setup"`
}

type facilitySetup struct {
	ID             int64           `json:"id"`
	FacName        *string         `json:"fac_name"`
	MaxPeople      *number         `json:"max_people"`
	GST            *number         `json:"gst"`
	SGST           *number         `json:"sgst"`
	Postpaid       flag            `json:"postpaid"`
	Prepaid        flag            `json:"prepaid"`
	PayOnFacility  flag            `json:"pay_on_facility"`
	Complementary  flag            `json:"complementary"`
	FacilityCharge *facilityCharge `json:"facility_charge"`
}

type facilityCharge struct {
	AdultMemberCharge *number `json:"adult_member_charge"`
	AdultGuestCharge  *number `json:"adult_guest_charge"`
	ChildMemberCharge *number `json:"child_member_charge"`
	ChildGuestCharge  *number `json:"child_guest_charge"`
	PerSlotCharge     *number `json:"per_slot_charge"`
}

type slotsEnvelope struct {
	Slots []slotDTO `json:"slots"`
}

type slotDTO struct {
	ID                int64   `json:"id"`
	StartHour         *number `json:"start_hour"`
	StartMinute       *number `json:"start_minute"`
	EndHour           *number `json:"end_hour"`
	EndMinute         *number `json:"end_minute"`
	Ampm              *string `json:"ampm"`
	IsPremium         *bool   `json:"is_premium"`
	PremiumPercentage *number `json:"premium_percentage"`
}

type bookingRuleDTO struct {
	CanBook              *bool   `json:"can_book"`
	Rate                 *number `json:"rate"`
	MultipleBookings     *bool   `json:"multiple_bookings"`
	MultipleBookingCount *number `json:"multiple_booking_count"`
	ConcurrentSlots      *number `json:"concurrent_slots"`
}

type createBookingResponse struct {
	Error           json.RawMessage `json:"error"`
	Message         *string         `json:"message"`
	ID              *int64          `json:"id"`
	FacilityBooking *struct {
		ID *int64 `json:"id"`
	} `json:"facility_booking"`
}

func num(n *number) float64 {
	if n == nil {
		return 0
	}
	return float64(*n)
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func (f *facilitySetup) toDomain() *booking.Facility {
	fac := &booking.Facility{
		ID:        f.ID,
		Name:      str(f.FacName),
		MaxPeople: int(num(f.MaxPeople)),
		Charge: booking.FacilityCharge{
			GSTPercent:  num(f.GST),
			SGSTPercent: num(f.SGST),
		},
		Payments: booking.PaymentOptions{
			Postpaid:      bool(f.Postpaid),
			Prepaid:       bool(f.Prepaid),
			PayOnFacility: bool(f.PayOnFacility),
			Complementary: bool(f.Complementary),
		},
	}
	if c := f.FacilityCharge; c != nil {
		fac.Charge.AdultMemberCharge = num(c.AdultMemberCharge)
		fac.Charge.AdultGuestCharge = num(c.AdultGuestCharge)
		fac.Charge.ChildMemberCharge = num(c.ChildMemberCharge)
		fac.Charge.ChildGuestCharge = num(c.ChildGuestCharge)
		fac.Charge.PerSlotCharge = num(c.PerSlotCharge)
	}
	return fac
}

func (s slotDTO) toDomain() booking.Slot {
	return booking.Slot{
		ID:                s.ID,
		StartHour:         int(num(s.StartHour)),
		StartMinute:       int(num(s.StartMinute)),
		EndHour:           int(num(s.EndHour)),
		EndMinute:         int(num(s.EndMinute)),
		IsPremium:         boolOr(s.IsPremium, false),
		PremiumPercentage: num(s.PremiumPercentage),
		Label:             strings.TrimSpace(str(s.Ampm)),
	}
}

// toDomain keeps Rate nil when upstream omits it so the facility's member
// charge applies. An explicit 0 is a real override.
func (r bookingRuleDTO) toDomain() *booking.BookingRule {
	rule := &booking.BookingRule{
		CanBook:              boolOr(r.CanBook, true),
		MultipleBookings:     boolOr(r.MultipleBookings, false),
		MultipleBookingCount: int(num(r.MultipleBookingCount)),
		ConcurrentSlots:      int(num(r.ConcurrentSlots)),
	}
	if r.Rate != nil {
		rate := float64(*r.Rate)
		rule.Rate = &rate
	}
	return rule
}

// errorText flattens upstream's error field, which is a string or a list of strings.
func (r createBookingResponse) errorText() string {
	raw := bytes.TrimSpace(r.Error)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte("false")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ", ")
	}
	return string(raw)
}

func (r createBookingResponse) bookingID() int64 {
	if r.FacilityBooking != nil && r.FacilityBooking.ID != nil {
		return *r.FacilityBooking.ID
	}
	if r.ID != nil {
		return *r.ID
	}
	return 0
}
