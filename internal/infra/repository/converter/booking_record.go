package converter

import (
	"encoding/json"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/infra/store"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/pkg/pgconv"
)

// PremiumDetail is the persisted shape of one line-item row.
type PremiumDetail struct {
	SlotID         int64   `json:"slot_id"`
	Label          string  `json:"label"`
	PremiumPercent float64 `json:"premium_percent"`
	MemberPremium  float64 `json:"member_premium"`
	GuestPremium   float64 `json:"guest_premium"`
	Total          float64 `json:"total"`
	GuestTotal     float64 `json:"guest_total"`
}

func PremiumDetailsFromBreakdown(lines []booking.SlotChargeLine) []PremiumDetail {
	out := make([]PremiumDetail, 0, len(lines))
	for _, l := range lines {
		out = append(out, PremiumDetail{
			SlotID:         l.SlotID,
			Label:          l.Label,
			PremiumPercent: l.PremiumPercent,
			MemberPremium:  l.MemberPremium,
			GuestPremium:   l.GuestPremium,
			Total:          l.Total,
			GuestTotal:     l.GuestTotal,
		})
	}
	return out
}

func RecordToCreateParams(rec *booking.Record) (store.CreateBookingRecordParams, error) {
	sub := rec.Submission()
	sum := sub.Summary

	details, err := json.Marshal(PremiumDetailsFromBreakdown(sub.PremiumDetails()))
	if err != nil {
		return store.CreateBookingRecordParams{}, errs.Wrap(err, "failed to encode premium details")
	}

	return store.CreateBookingRecordParams{
		ID:                     rec.ID(),
		ExternalID:             rec.ExternalID(),
		DraftID:                rec.DraftID(),
		OperatorID:             rec.OperatorID(),
		SiteID:                 sub.SiteID,
		UserID:                 sub.UserID,
		UserType:               sub.UserType.String(),
		FacilityID:             sub.FacilityID,
		BookingDate:            pgconv.DateToPgtype(sub.Date),
		SlotIds:                sub.SlotIDs,
		PrimarySlotID:          sub.PrimarySlotID,
		PaymentMethod:          sub.PaymentMethod.String(),
		Status:                 rec.Status().String(),
		NumberOfGuests:         int32(sub.NumberOfGuests), // #nosec G115 -- clamped to facility max_people
		Comment:                pgconv.OptionalStringToPgtype(sub.Comment),
		ComplementaryReason:    pgconv.OptionalStringToPgtype(sub.ComplementaryReason),
		UserCharge:             sum.Charges.UserCharge,
		GuestCharge:            sum.Charges.GuestCharge,
		SlotTotal:              sum.SlotTotal,
		SubtotalBeforeDiscount: sum.SubtotalBeforeDiscount,
		DiscountPercent:        sum.DiscountPercent,
		DiscountAmount:         sum.DiscountAmount,
		SubtotalAfterDiscount:  sum.SubtotalAfterDiscount,
		GstPercent:             sum.GSTPercent,
		SgstPercent:            sum.SGSTPercent,
		GstAmount:              sum.GSTAmount,
		SgstAmount:             sum.SGSTAmount,
		GrandTotal:             sum.GrandTotal,
		Currency:               rec.Currency(),
		PremiumDetails:         details,
		CreatedAt:              pgconv.TimeToPgtype(rec.CreatedAt()),
	}, nil
}
