package store

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingRecords struct {
	ID                     uuid.UUID
	ExternalID             int64
	DraftID                uuid.UUID
	OperatorID             int64
	SiteID                 int64
	UserID                 int64
	UserType               string
	FacilityID             int64
	BookingDate            pgtype.Date
	SlotIds                []int64
	PrimarySlotID          int64
	PaymentMethod          string
	Status                 string
	NumberOfGuests         int32
	Comment                pgtype.Text
	ComplementaryReason    pgtype.Text
	UserCharge             pgtype.Numeric
	GuestCharge            pgtype.Numeric
	SlotTotal              pgtype.Numeric
	SubtotalBeforeDiscount pgtype.Numeric
	DiscountPercent        pgtype.Numeric
	DiscountAmount         pgtype.Numeric
	SubtotalAfterDiscount  pgtype.Numeric
	GstPercent             pgtype.Numeric
	SgstPercent            pgtype.Numeric
	GstAmount              pgtype.Numeric
	SgstAmount             pgtype.Numeric
	GrandTotal             pgtype.Numeric
	Currency               string
	PremiumDetails         []byte
	CreatedAt              pgtype.Timestamptz
}

type IdempotencyKeys struct {
	Key            uuid.UUID
	OperatorID     int64
	Endpoint       string
	RequestHash    string
	Status         string
	ResultRecordID pgtype.UUID
	ExpiresAt      pgtype.Timestamptz
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
}
