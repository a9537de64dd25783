package readmodel

import (
	"time"

	"github.com/google/uuid"
)

type PremiumDetail struct {
	SlotID         int64
	Label          string
	PremiumPercent float64
	MemberPremium  float64
	GuestPremium   float64
	Total          float64
	GuestTotal     float64
}

type BookingRecord struct {
	ID                     uuid.UUID
	ExternalID             int64
	DraftID                uuid.UUID
	OperatorID             int64
	SiteID                 int64
	UserID                 int64
	UserType               string
	FacilityID             int64
	Date                   time.Time
	SlotIDs                []int64
	PrimarySlotID          int64
	PaymentMethod          string
	Status                 string
	NumberOfGuests         int
	Comment                string
	ComplementaryReason    string
	UserCharge             float64
	GuestCharge            float64
	SlotTotal              float64
	SubtotalBeforeDiscount float64
	DiscountPercent        float64
	DiscountAmount         float64
	SubtotalAfterDiscount  float64
	GSTPercent             float64
	SGSTPercent            float64
	GSTAmount              float64
	SGSTAmount             float64
	GrandTotal             float64
	Currency               string
	PremiumDetails         []PremiumDetail
	CreatedAt              time.Time
}

type BookingFilter struct {
	SiteID     int64
	FacilityID *int64
	UserType   *string
	// Status is matched by name; booking statuses have no id.
	Status         *string
	AfterCreatedAt *time.Time
	AfterID        *uuid.UUID
	Limit          int
}
