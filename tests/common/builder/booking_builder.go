//go:build unit || e2e

package builder

import (
	"time"

	reqdto "facility-booking/internal/handler/dto/request"
	"facility-booking/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	rec readmodel.BookingRecord
}

// NewBookingBuilder mirrors the default DraftBuilder submitted as booking 9001.
func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{rec: readmodel.BookingRecord{
		ID:                     uuid.New(),
		ExternalID:             9001,
		DraftID:                uuid.New(),
		OperatorID:             501,
		SiteID:                 7,
		UserID:                 1201,
		UserType:               "occupant",
		FacilityID:             33,
		Date:                   time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		SlotIDs:                []int64{101},
		PrimarySlotID:          101,
		PaymentMethod:          "postpaid",
		Status:                 "confirmed",
		NumberOfGuests:         1,
		Comment:                "Evening practice",
		UserCharge:             200,
		GuestCharge:            300,
		SlotTotal:              50,
		SubtotalBeforeDiscount: 550,
		SubtotalAfterDiscount:  550,
		GSTPercent:             9,
		SGSTPercent:            9,
		GSTAmount:              49.5,
		SGSTAmount:             49.5,
		GrandTotal:             649,
		Currency:               "INR",
		PremiumDetails: []readmodel.PremiumDetail{
			{SlotID: 101, Label: "06:00 AM to 07:00 AM", Total: 200, GuestTotal: 300},
		},
		CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}}
}

func (b *BookingBuilder) With(mutate func(*readmodel.BookingRecord)) *BookingBuilder {
	mutate(&b.rec)
	return b
}

func (b *BookingBuilder) BuildReadModel() *readmodel.BookingRecord {
	rec := b.rec
	rec.SlotIDs = append([]int64(nil), b.rec.SlotIDs...)
	rec.PremiumDetails = append([]readmodel.PremiumDetail(nil), b.rec.PremiumDetails...)
	return &rec
}

// BuildStartRequest is the request that starts the default draft.
func (b *DraftBuilder) BuildStartRequest() reqdto.StartDraftRequest {
	return reqdto.StartDraftRequest{
		UserType:        b.UserType.String(),
		UserID:          b.UserID,
		FacilityID:      b.FacilityID,
		Date:            b.Date.Format(time.DateOnly),
		NumberOfGuests:  b.NumberOfGuests,
		DiscountPercent: b.DiscountPercent,
	}
}
