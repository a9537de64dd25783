package pms

import (
	"facility-booking/internal/domain/booking"
)

const upstreamDateLayout = "2006/01/02"

type createBookingRequest struct {
	FacilityBooking facilityBookingPayload `json:"facility_booking"`
	OnBehalfOf      string                 `json:"on_behalf_of"`
	OccupantUserID  any                    `json:"occupant_user_id"`
	FMUserID        any                    `json:"fm_user_id"`
	GuestUserID     any                    `json:"guest_user_id"`
}

type facilityBookingPayload struct {
	UserID                     int64                 `json:"user_id"`
	UserSocietyType            string                `json:"user_society_type"`
	ResourceType               string                `json:"resource_type"`
	ResourceID                 int64                 `json:"resource_id"`
	BookByID                   int64                 `json:"book_by_id"`
	BookBy                     string                `json:"book_by"`
	FacilityID                 int64                 `json:"facility_id"`
	StartDate                  string                `json:"startdate"`
	Comment                    string                `json:"comment"`
	PaymentMethod              string                `json:"payment_method"`
	SelectedSlots              []int64               `json:"selected_slots"`
	EntityID                   *int64                `json:"entity_id"`
	MemberCharges              float64               `json:"member_charges"`
	GuestCharges               float64               `json:"guest_charges"`
	GuestPremiumDetails        []guestPremiumDetail  `json:"guest_premium_details"`
	Discount                   float64               `json:"discount"`
	CGSTAmount                 float64               `json:"cgst_amount"`
	SGSTAmount                 float64               `json:"sgst_amount"`
	GST                        float64               `json:"gst"`
	SGST                       float64               `json:"sgst"`
	SubTotal                   float64               `json:"sub_total"`
	AmountFull                 float64               `json:"amount_full"`
	BookedMembersAttributes    []bookedMemberPayload `json:"booked_members_attributes"`
	MemberCount                int                   `json:"member_count"`
	GuestCount                 int                   `json:"guest_count"`
	ComplementaryPaymentReason string                `json:"complementary_payment_reason,omitempty"`
}

type guestPremiumDetail struct {
	SlotLabel          string  `json:"slotLabel"`
	SlotPremiumPercent float64 `json:"slotPremiumPercent"`
	GuestPremium       float64 `json:"guestPremium"`
	Total              float64 `json:"total"`
}

type bookedMemberPayload struct {
	UserID      int64   `json:"user_id"`
	OfType      string  `json:"oftype"`
	TotalCharge float64 `json:"total_charge"`
}

// newCreateBookingRequest maps a submission onto the upstream payload. Amounts
// are copied from the submission's summary unchanged.
func newCreateBookingRequest(sub *booking.Submission) createBookingRequest {
	sum := sub.Summary

	details := make([]guestPremiumDetail, 0, len(sub.PremiumDetails()))
	for _, line := range sub.PremiumDetails() {
		details = append(details, guestPremiumDetail{
			SlotLabel:          line.Label,
			SlotPremiumPercent: line.PremiumPercent,
			GuestPremium:       line.GuestPremium,
			Total:              line.GuestTotal,
		})
	}

	members := make([]bookedMemberPayload, 0, len(sub.Members))
	for _, m := range sub.Members {
		members = append(members, bookedMemberPayload{
			UserID:      m.UserID,
			OfType:      string(m.Level),
			TotalCharge: sub.MemberRate,
		})
	}

	fb := facilityBookingPayload{
		UserID:                  sub.UserID,
		UserSocietyType:         "User",
		ResourceType:            "Pms::Site",
		ResourceID:              sub.SiteID,
		BookByID:                sub.PrimarySlotID,
		BookBy:                  "slot",
		FacilityID:              sub.FacilityID,
		StartDate:               sub.Date.Format(upstreamDateLayout),
		Comment:                 sub.Comment,
		PaymentMethod:           sub.PaymentMethod.String(),
		SelectedSlots:           sub.SlotIDs,
		EntityID:                sub.EntityID,
		MemberCharges:           sub.MemberCharges(),
		GuestCharges:            sub.GuestCharges(),
		GuestPremiumDetails:     details,
		Discount:                sum.DiscountAmount,
		CGSTAmount:              sum.GSTAmount,
		SGSTAmount:              sum.SGSTAmount,
		GST:                     sum.GSTPercent,
		SGST:                    sum.SGSTPercent,
		SubTotal:                sum.SubtotalAfterDiscount,
		AmountFull:              sum.GrandTotal,
		BookedMembersAttributes: members,
		MemberCount:             sub.MemberCount(),
		GuestCount:              sub.NumberOfGuests,
	}
	if sub.PaymentMethod == booking.PaymentComplementary {
		fb.ComplementaryPaymentReason = sub.ComplementaryReason
	}

	req := createBookingRequest{
		FacilityBooking: fb,
		OnBehalfOf:      sub.UserType.OnBehalfOf(),
		OccupantUserID:  "",
		FMUserID:        "",
		GuestUserID:     "",
	}
	switch sub.UserType {
	case booking.UserTypeOccupant:
		req.OccupantUserID = sub.UserID
	case booking.UserTypeFM:
		req.FMUserID = sub.UserID
	case booking.UserTypeGuest:
		req.GuestUserID = sub.UserID
	}
	return req
}
