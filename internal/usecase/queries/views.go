package queries

import (
	"time"

	"facility-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type SlotView struct {
	ID                int64   `json:"id"`
	Label             string  `json:"label"`
	StartHour         int     `json:"start_hour"`
	StartMinute       int     `json:"start_minute"`
	EndHour           int     `json:"end_hour"`
	EndMinute         int     `json:"end_minute"`
	IsPremium         bool    `json:"is_premium"`
	PremiumPercentage float64 `json:"premium_percentage"`
	Selected          bool    `json:"selected"`
	// Selectable is false when picking the slot now would break the booking rule.
	Selectable bool `json:"selectable"`
}

type FacilityView struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	MaxPeople      int      `json:"max_people"`
	PerSlotCharge  float64  `json:"per_slot_charge"`
	GSTPercent     float64  `json:"gst_percent"`
	SGSTPercent    float64  `json:"sgst_percent"`
	PaymentMethods []string `json:"payment_methods"`
}

type RuleView struct {
	CanBook       bool     `json:"can_book"`
	Rate          *float64 `json:"rate,omitempty"`
	MaxSelectable int      `json:"max_selectable"`
	MaxConcurrent int      `json:"max_concurrent"`
}

type MemberView struct {
	UserID int64  `json:"user_id"`
	Level  string `json:"level"`
}

// ReferenceWarning reports reference data the PMS failed to return. The
// draft keeps its previous value for that source.
type ReferenceWarning struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

const (
	ReferenceFacility = "facility"
	ReferenceSlots    = "slots"
	ReferenceRule     = "rule"
)

type DraftView struct {
	ID                  uuid.UUID          `json:"id"`
	Generation          int64              `json:"generation"`
	Version             int64              `json:"version"`
	UserID              int64              `json:"user_id"`
	UserType            string             `json:"user_type"`
	FacilityID          int64              `json:"facility_id"`
	Date                *time.Time         `json:"date,omitempty"`
	EntityID            *int64             `json:"entity_id,omitempty"`
	Facility            *FacilityView      `json:"facility,omitempty"`
	Rule                *RuleView          `json:"rule,omitempty"`
	Slots               []SlotView         `json:"slots"`
	SelectedSlotIDs     []int64            `json:"selected_slot_ids"`
	NumberOfGuests      int                `json:"number_of_guests"`
	DiscountPercent     float64            `json:"discount_percent"`
	PaymentMethod       string             `json:"payment_method,omitempty"`
	Comment             string             `json:"comment"`
	ComplementaryReason string             `json:"complementary_reason,omitempty"`
	Members             []MemberView       `json:"members"`
	Quote               QuoteView          `json:"quote"`
	Warnings            []ReferenceWarning `json:"warnings,omitempty"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

type QuoteLine struct {
	SlotID         int64   `json:"slot_id"`
	Label          string  `json:"label"`
	PremiumPercent float64 `json:"premium_percent"`
	MemberPremium  float64 `json:"member_premium"`
	GuestPremium   float64 `json:"guest_premium"`
	Total          float64 `json:"total"`
	GuestTotal     float64 `json:"guest_total"`
}

type QuoteView struct {
	Currency               string      `json:"currency"`
	SlotCount              int         `json:"slot_count"`
	UserCharge             float64     `json:"user_charge"`
	GuestCharge            float64     `json:"guest_charge"`
	SlotTotal              float64     `json:"slot_total"`
	SubtotalBeforeDiscount float64     `json:"subtotal_before_discount"`
	DiscountPercent        float64     `json:"discount_percent"`
	DiscountAmount         float64     `json:"discount_amount"`
	SubtotalAfterDiscount  float64     `json:"subtotal_after_discount"`
	GSTPercent             float64     `json:"gst_percent"`
	SGSTPercent            float64     `json:"sgst_percent"`
	GSTAmount              float64     `json:"gst_amount"`
	SGSTAmount             float64     `json:"sgst_amount"`
	GrandTotal             float64     `json:"grand_total"`
	Lines                  []QuoteLine `json:"lines"`
}

func NewQuoteView(s booking.CostSummary, currency string) QuoteView {
	lines := make([]QuoteLine, 0, len(s.Charges.Breakdown))
	for _, l := range s.Charges.Breakdown {
		lines = append(lines, QuoteLine(l))
	}
	return QuoteView{
		Currency:               currency,
		SlotCount:              s.SlotCount,
		UserCharge:             s.Charges.UserCharge,
		GuestCharge:            s.Charges.GuestCharge,
		SlotTotal:              s.SlotTotal,
		SubtotalBeforeDiscount: s.SubtotalBeforeDiscount,
		DiscountPercent:        s.DiscountPercent,
		DiscountAmount:         s.DiscountAmount,
		SubtotalAfterDiscount:  s.SubtotalAfterDiscount,
		GSTPercent:             s.GSTPercent,
		SGSTPercent:            s.SGSTPercent,
		GSTAmount:              s.GSTAmount,
		SGSTAmount:             s.SGSTAmount,
		GrandTotal:             s.GrandTotal,
		Lines:                  lines,
	}
}

// NewDraftView renders a draft with every slot annotated against the current selection.
func NewDraftView(d *booking.Draft, currency string) *DraftView {
	v := &DraftView{
		ID:                  d.ID,
		Generation:          d.Generation,
		Version:             d.Version,
		UserID:              d.UserID,
		UserType:            d.Selection.UserType.String(),
		FacilityID:          d.FacilityID,
		EntityID:            d.EntityID,
		Slots:               make([]SlotView, 0, len(d.Slots)),
		SelectedSlotIDs:     append([]int64{}, d.Selection.SelectedSlotIDs...),
		NumberOfGuests:      d.Selection.NumberOfGuests,
		DiscountPercent:     d.Selection.DiscountPercent,
		PaymentMethod:       d.PaymentMethod.String(),
		Comment:             d.Comment,
		ComplementaryReason: d.ComplementaryReason,
		Members:             make([]MemberView, 0, len(d.Members)),
		Quote:               NewQuoteView(d.Quote(), currency),
		UpdatedAt:           d.UpdatedAt,
	}
	if !d.Date.IsZero() {
		date := d.Date
		v.Date = &date
	}

	if f := d.Facility; f != nil {
		methods := make([]string, 0, 4)
		for _, m := range f.Payments.Enabled() {
			methods = append(methods, m.String())
		}
		v.Facility = &FacilityView{
			ID:             f.ID,
			Name:           f.Name,
			MaxPeople:      f.MaxPeople,
			PerSlotCharge:  f.Charge.PerSlotCharge,
			GSTPercent:     f.Charge.GSTPercent,
			SGSTPercent:    f.Charge.SGSTPercent,
			PaymentMethods: methods,
		}
	}

	if r := d.Rule; r != nil {
		v.Rule = &RuleView{
			CanBook:       r.CanBook,
			Rate:          r.Rate,
			MaxSelectable: r.MaxSelectable(),
			MaxConcurrent: r.MaxConcurrent(),
		}
	}

	for _, s := range d.Slots {
		selected := d.Selection.IsSelected(s.ID)
		v.Slots = append(v.Slots, SlotView{
			ID:                s.ID,
			Label:             s.DisplayLabel(),
			StartHour:         s.StartHour,
			StartMinute:       s.StartMinute,
			EndHour:           s.EndHour,
			EndMinute:         s.EndMinute,
			IsPremium:         s.HasPremium(),
			PremiumPercentage: s.PremiumPercentage,
			Selected:          selected,
			Selectable:        selected || d.IsSelectable(s.ID),
		})
	}

	for _, m := range d.Members {
		v.Members = append(v.Members, MemberView{UserID: m.UserID, Level: string(m.Level)})
	}
	return v
}
