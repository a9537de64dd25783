package draftstore

import (
	"time"

	"facility-booking/internal/domain/booking"

	"github.com/google/uuid"
)

// draftRecord is the JSON layout kept in Redis. Field names are part of the
// stored format; renaming one orphans drafts written by the previous release.
type draftRecord struct {
	ID                  uuid.UUID       `json:"id"`
	OperatorID          int64           `json:"operator_id"`
	SiteID              int64           `json:"site_id"`
	Generation          int64           `json:"generation"`
	Version             int64           `json:"version"`
	UserID              int64           `json:"user_id"`
	UserType            string          `json:"user_type"`
	FacilityID          int64           `json:"facility_id"`
	Date                string          `json:"date,omitempty"`
	EntityID            *int64          `json:"entity_id,omitempty"`
	Facility            *facilityRecord `json:"facility,omitempty"`
	Slots               []slotRecord    `json:"slots,omitempty"`
	Rule                *ruleRecord     `json:"rule,omitempty"`
	SelectedSlotIDs     []int64         `json:"selected_slot_ids,omitempty"`
	NumberOfGuests      int             `json:"number_of_guests"`
	DiscountPercent     float64         `json:"discount_percent"`
	PaymentMethod       string          `json:"payment_method,omitempty"`
	Comment             string          `json:"comment,omitempty"`
	ComplementaryReason string          `json:"complementary_reason,omitempty"`
	Members             []memberRecord  `json:"members,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

type facilityRecord struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	MaxPeople     int     `json:"max_people"`
	AdultMember   float64 `json:"adult_member_charge"`
	AdultGuest    float64 `json:"adult_guest_charge"`
	ChildMember   float64 `json:"child_member_charge"`
	ChildGuest    float64 `json:"child_guest_charge"`
	PerSlot       float64 `json:"per_slot_charge"`
	GST           float64 `json:"gst"`
	SGST          float64 `json:"sgst"`
	Postpaid      bool    `json:"postpaid"`
	Prepaid       bool    `json:"prepaid"`
	PayOnFacility bool    `json:"pay_on_facility"`
	Complementary bool    `json:"complementary"`
}

type slotRecord struct {
	ID                int64   `json:"id"`
	StartHour         int     `json:"start_hour"`
	StartMinute       int     `json:"start_minute"`
	EndHour           int     `json:"end_hour"`
	EndMinute         int     `json:"end_minute"`
	IsPremium         bool    `json:"is_premium"`
	PremiumPercentage float64 `json:"premium_percentage"`
	Label             string  `json:"label,omitempty"`
}

type ruleRecord struct {
	CanBook              bool     `json:"can_book"`
	Rate                 *float64 `json:"rate,omitempty"`
	MultipleBookings     bool     `json:"multiple_bookings"`
	MultipleBookingCount int      `json:"multiple_booking_count"`
	ConcurrentSlots      int      `json:"concurrent_slots"`
}

type memberRecord struct {
	UserID int64  `json:"user_id"`
	Level  string `json:"level"`
}

const dateLayout = "2006-01-02"

func toRecord(d *booking.Draft) draftRecord {
	r := draftRecord{
		ID:                  d.ID,
		OperatorID:          d.OperatorID,
		SiteID:              d.SiteID,
		Generation:          d.Generation,
		Version:             d.Version,
		UserID:              d.UserID,
		UserType:            d.Selection.UserType.String(),
		FacilityID:          d.FacilityID,
		EntityID:            d.EntityID,
		SelectedSlotIDs:     d.Selection.SelectedSlotIDs,
		NumberOfGuests:      d.Selection.NumberOfGuests,
		DiscountPercent:     d.Selection.DiscountPercent,
		PaymentMethod:       d.PaymentMethod.String(),
		Comment:             d.Comment,
		ComplementaryReason: d.ComplementaryReason,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
	if !d.Date.IsZero() {
		r.Date = d.Date.Format(dateLayout)
	}
	if f := d.Facility; f != nil {
		r.Facility = &facilityRecord{
			ID:            f.ID,
			Name:          f.Name,
			MaxPeople:     f.MaxPeople,
			AdultMember:   f.Charge.AdultMemberCharge,
			AdultGuest:    f.Charge.AdultGuestCharge,
			ChildMember:   f.Charge.ChildMemberCharge,
			ChildGuest:    f.Charge.ChildGuestCharge,
			PerSlot:       f.Charge.PerSlotCharge,
			GST:           f.Charge.GSTPercent,
			SGST:          f.Charge.SGSTPercent,
			Postpaid:      f.Payments.Postpaid,
			Prepaid:       f.Payments.Prepaid,
			PayOnFacility: f.Payments.PayOnFacility,
			Complementary: f.Payments.Complementary,
		}
	}
	for _, s := range d.Slots {
		r.Slots = append(r.Slots, slotRecord(s))
	}
	if rule := d.Rule; rule != nil {
		r.Rule = &ruleRecord{
			CanBook:              rule.CanBook,
			Rate:                 rule.Rate,
			MultipleBookings:     rule.MultipleBookings,
			MultipleBookingCount: rule.MultipleBookingCount,
			ConcurrentSlots:      rule.ConcurrentSlots,
		}
	}
	for _, m := range d.Members {
		r.Members = append(r.Members, memberRecord{UserID: m.UserID, Level: string(m.Level)})
	}
	return r
}

func fromRecord(r draftRecord) (*booking.Draft, error) {
	userType, err := booking.NewUserType(r.UserType)
	if err != nil {
		return nil, err
	}

	d := &booking.Draft{
		ID:         r.ID,
		OperatorID: r.OperatorID,
		SiteID:     r.SiteID,
		Generation: r.Generation,
		Version:    r.Version,
		UserID:     r.UserID,
		FacilityID: r.FacilityID,
		EntityID:   r.EntityID,
		Selection: booking.SelectionState{
			SelectedSlotIDs: r.SelectedSlotIDs,
			UserType:        userType,
			NumberOfGuests:  r.NumberOfGuests,
			DiscountPercent: r.DiscountPercent,
		},
		PaymentMethod:       booking.PaymentMethod(r.PaymentMethod),
		Comment:             r.Comment,
		ComplementaryReason: r.ComplementaryReason,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
	if r.Date != "" {
		date, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			return nil, err
		}
		d.Date = date
	}
	if f := r.Facility; f != nil {
		d.Facility = &booking.Facility{
			ID:        f.ID,
			Name:      f.Name,
			MaxPeople: f.MaxPeople,
			Charge: booking.FacilityCharge{
				AdultMemberCharge: f.AdultMember,
				AdultGuestCharge:  f.AdultGuest,
				ChildMemberCharge: f.ChildMember,
				ChildGuestCharge:  f.ChildGuest,
				PerSlotCharge:     f.PerSlot,
				GSTPercent:        f.GST,
				SGSTPercent:       f.SGST,
			},
			Payments: booking.PaymentOptions{
				Postpaid:      f.Postpaid,
				Prepaid:       f.Prepaid,
				PayOnFacility: f.PayOnFacility,
				Complementary: f.Complementary,
			},
		}
	}
	for _, s := range r.Slots {
		d.Slots = append(d.Slots, booking.Slot(s))
	}
	if rule := r.Rule; rule != nil {
		d.Rule = &booking.BookingRule{
			CanBook:              rule.CanBook,
			Rate:                 rule.Rate,
			MultipleBookings:     rule.MultipleBookings,
			MultipleBookingCount: rule.MultipleBookingCount,
			ConcurrentSlots:      rule.ConcurrentSlots,
		}
	}
	for _, m := range r.Members {
		d.Members = append(d.Members, booking.BookedMember{UserID: m.UserID, Level: booking.MemberLevel(m.Level)})
	}
	return d, nil
}
