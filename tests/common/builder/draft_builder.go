//go:build unit || e2e

package builder

import (
	"time"

	"facility-booking/internal/domain/booking"

	"github.com/google/uuid"
)

// DraftBuilder produces a draft that passes validation unless mutated.
type DraftBuilder struct {
	ID                  uuid.UUID
	OperatorID          int64
	SiteID              int64
	Generation          int64
	Version             int64
	UserType            booking.UserType
	UserID              int64
	FacilityID          int64
	Date                time.Time
	Facility            *booking.Facility
	Slots               []booking.Slot
	Rule                *booking.BookingRule
	SelectedSlotIDs     []int64
	NumberOfGuests      int
	DiscountPercent     float64
	PaymentMethod       booking.PaymentMethod
	Comment             string
	ComplementaryReason string
	Members             []booking.BookedMember
	CreatedAt           time.Time
}

func NewDraftBuilder() *DraftBuilder {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return &DraftBuilder{
		ID:         uuid.New(),
		OperatorID: 501,
		SiteID:     7,
		Generation: 1,
		Version:    1,
		UserType:   booking.UserTypeOccupant,
		UserID:     1201,
		FacilityID: 33,
		Date:       time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Facility: &booking.Facility{
			ID:        33,
			Name:      "Badminton Court",
			MaxPeople: 4,
			Charge: booking.FacilityCharge{
				AdultMemberCharge: 200,
				AdultGuestCharge:  300,
				PerSlotCharge:     50,
				GSTPercent:        9,
				SGSTPercent:       9,
			},
			Payments: booking.PaymentOptions{Postpaid: true, Prepaid: true, Complementary: true},
		},
		Slots: []booking.Slot{
			{ID: 101, StartHour: 6, EndHour: 7},
			{ID: 102, StartHour: 7, EndHour: 8},
			{ID: 103, StartHour: 18, EndHour: 19, IsPremium: true, PremiumPercentage: 25},
		},
		Rule: &booking.BookingRule{
			CanBook:              true,
			MultipleBookings:     true,
			MultipleBookingCount: 3,
			ConcurrentSlots:      2,
		},
		SelectedSlotIDs: []int64{101},
		NumberOfGuests:  1,
		PaymentMethod:   booking.PaymentPostpaid,
		Comment:         "Evening practice",
		Members:         []booking.BookedMember{{UserID: 1201, Level: booking.MemberPrimary}},
		CreatedAt:       now,
	}
}

func (b *DraftBuilder) With(mutate func(*DraftBuilder)) *DraftBuilder {
	mutate(b)
	return b
}

func (b *DraftBuilder) BuildDomain() *booking.Draft {
	return &booking.Draft{
		ID:         b.ID,
		OperatorID: b.OperatorID,
		SiteID:     b.SiteID,
		Generation: b.Generation,
		Version:    b.Version,
		UserID:     b.UserID,
		FacilityID: b.FacilityID,
		Date:       b.Date,
		Facility:   b.Facility,
		Slots:      append([]booking.Slot(nil), b.Slots...),
		Rule:       b.Rule,
		Selection: booking.SelectionState{
			SelectedSlotIDs: append([]int64(nil), b.SelectedSlotIDs...),
			UserType:        b.UserType,
			NumberOfGuests:  b.NumberOfGuests,
			DiscountPercent: b.DiscountPercent,
		},
		PaymentMethod:       b.PaymentMethod,
		Comment:             b.Comment,
		ComplementaryReason: b.ComplementaryReason,
		Members:             append([]booking.BookedMember(nil), b.Members...),
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.CreatedAt,
	}
}

func (b *DraftBuilder) BuildSubmission() *booking.Submission {
	sub, err := b.BuildDomain().Submission()
	if err != nil {
		panic(err)
	}
	return sub
}

func (b *DraftBuilder) BuildRecord(externalID int64) *booking.Record {
	return booking.NewRecord(externalID, b.ID, b.OperatorID, *b.BuildSubmission(), "INR", b.CreatedAt)
}
