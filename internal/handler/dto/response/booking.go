package response

import (
	"time"

	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/queries"
	"facility-booking/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type PremiumDetailResponse struct {
	SlotID         int64   `json:"slot_id"`
	Label          string  `json:"label"`
	PremiumPercent float64 `json:"premium_percent"`
	MemberPremium  float64 `json:"member_premium"`
	GuestPremium   float64 `json:"guest_premium"`
	Total          float64 `json:"total"`
	GuestTotal     float64 `json:"guest_total"`
}

type BookingResponse struct {
	ID                     uuid.UUID               `json:"id"`
	ExternalID             int64                   `json:"external_id"`
	DraftID                uuid.UUID               `json:"draft_id"`
	OperatorID             int64                   `json:"operator_id"`
	SiteID                 int64                   `json:"site_id"`
	UserID                 int64                   `json:"user_id"`
	UserType               string                  `json:"user_type"`
	FacilityID             int64                   `json:"facility_id"`
	Date                   string                  `json:"date" copier:"-"`
	SlotIDs                []int64                 `json:"slot_ids"`
	PrimarySlotID          int64                   `json:"primary_slot_id"`
	PaymentMethod          string                  `json:"payment_method"`
	Status                 string                  `json:"status"`
	NumberOfGuests         int                     `json:"number_of_guests"`
	Comment                string                  `json:"comment,omitempty"`
	ComplementaryReason    string                  `json:"complementary_reason,omitempty"`
	UserCharge             float64                 `json:"user_charge"`
	GuestCharge            float64                 `json:"guest_charge"`
	SlotTotal              float64                 `json:"slot_total"`
	SubtotalBeforeDiscount float64                 `json:"subtotal_before_discount"`
	DiscountPercent        float64                 `json:"discount_percent"`
	DiscountAmount         float64                 `json:"discount_amount"`
	SubtotalAfterDiscount  float64                 `json:"subtotal_after_discount"`
	GSTPercent             float64                 `json:"gst_percent"`
	SGSTPercent            float64                 `json:"sgst_percent"`
	GSTAmount              float64                 `json:"gst_amount"`
	SGSTAmount             float64                 `json:"sgst_amount"`
	GrandTotal             float64                 `json:"grand_total"`
	Currency               string                  `json:"currency"`
	PremiumDetails         []PremiumDetailResponse `json:"premium_details"`
	CreatedAt              time.Time               `json:"created_at"`
}

func FromBookingRecord(rec *readmodel.BookingRecord) (*BookingResponse, error) {
	res := &BookingResponse{}
	if err := copier.Copy(res, rec); err != nil {
		return nil, err
	}
	res.Date = rec.Date.Format(time.DateOnly)
	if res.PremiumDetails == nil {
		res.PremiumDetails = []PremiumDetailResponse{}
	}
	return res, nil
}

type BookingListResponse struct {
	Bookings   []*BookingResponse `json:"bookings"`
	NextCursor string             `json:"next_cursor,omitempty"`
}

func FromBookingList(recs []*readmodel.BookingRecord, next *queries.Cursor) (*BookingListResponse, error) {
	res := &BookingListResponse{Bookings: make([]*BookingResponse, 0, len(recs))}
	for _, rec := range recs {
		item, err := FromBookingRecord(rec)
		if err != nil {
			return nil, err
		}
		res.Bookings = append(res.Bookings, item)
	}
	if next != nil {
		res.NextCursor = next.After
	}
	return res, nil
}

type SubmitResponse struct {
	Booking         *BookingResponse `json:"booking"`
	PaymentRedirect string           `json:"payment_redirect,omitempty"`
	Replayed        bool             `json:"replayed"`
}

func FromSubmitResult(r *commands.SubmitResult) (*SubmitResponse, error) {
	b, err := FromBookingRecord(r.Booking)
	if err != nil {
		return nil, err
	}
	return &SubmitResponse{
		Booking:         b,
		PaymentRedirect: r.PaymentRedirect,
		Replayed:        r.IsReplayed,
	}, nil
}
