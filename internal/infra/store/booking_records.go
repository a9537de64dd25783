package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingRecordColumns = `id, external_id, draft_id, operator_id, site_id, user_id, user_type,
	facility_id, booking_date, slot_ids, primary_slot_id, payment_method, status, number_of_guests,
	comment, complementary_reason, user_charge, guest_charge, slot_total, subtotal_before_discount,
	discount_percent, discount_amount, subtotal_after_discount, gst_percent, sgst_percent,
	gst_amount, sgst_amount, grand_total, currency, premium_details, created_at`

const createBookingRecord = `
INSERT INTO booking_records (
	id, external_id, draft_id, operator_id, site_id, user_id, user_type,
	facility_id, booking_date, slot_ids, primary_slot_id, payment_method, status, number_of_guests,
	comment, complementary_reason, user_charge, guest_charge, slot_total, subtotal_before_discount,
	discount_percent, discount_amount, subtotal_after_discount, gst_percent, sgst_percent,
	gst_amount, sgst_amount, grand_total, currency, premium_details, created_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
	$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31
)
RETURNING id`

type CreateBookingRecordParams struct {
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
	UserCharge             float64
	GuestCharge            float64
	SlotTotal              float64
	SubtotalBeforeDiscount float64
	DiscountPercent        float64
	DiscountAmount         float64
	SubtotalAfterDiscount  float64
	GstPercent             float64
	SgstPercent            float64
	GstAmount              float64
	SgstAmount             float64
	GrandTotal             float64
	Currency               string
	PremiumDetails         []byte
	CreatedAt              pgtype.Timestamptz
}

func (q *Queries) CreateBookingRecord(ctx context.Context, db DBTX, arg CreateBookingRecordParams) (uuid.UUID, error) {
	row := db.QueryRow(ctx, createBookingRecord,
		arg.ID,
		arg.ExternalID,
		arg.DraftID,
		arg.OperatorID,
		arg.SiteID,
		arg.UserID,
		arg.UserType,
		arg.FacilityID,
		arg.BookingDate,
		arg.SlotIds,
		arg.PrimarySlotID,
		arg.PaymentMethod,
		arg.Status,
		arg.NumberOfGuests,
		arg.Comment,
		arg.ComplementaryReason,
		arg.UserCharge,
		arg.GuestCharge,
		arg.SlotTotal,
		arg.SubtotalBeforeDiscount,
		arg.DiscountPercent,
		arg.DiscountAmount,
		arg.SubtotalAfterDiscount,
		arg.GstPercent,
		arg.SgstPercent,
		arg.GstAmount,
		arg.SgstAmount,
		arg.GrandTotal,
		arg.Currency,
		arg.PremiumDetails,
		arg.CreatedAt,
	)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const getBookingRecord = `SELECT ` + bookingRecordColumns + ` FROM booking_records WHERE id = $1`

func (q *Queries) GetBookingRecord(ctx context.Context, db DBTX, id uuid.UUID) (BookingRecords, error) {
	return scanBookingRecord(db.QueryRow(ctx, getBookingRecord, id))
}

const getBookingRecordBySite = `SELECT ` + bookingRecordColumns + ` FROM booking_records WHERE id = $1 AND site_id = $2`

func (q *Queries) GetBookingRecordBySite(ctx context.Context, db DBTX, id uuid.UUID, siteID int64) (BookingRecords, error) {
	return scanBookingRecord(db.QueryRow(ctx, getBookingRecordBySite, id, siteID))
}

const listBookingRecords = `SELECT ` + bookingRecordColumns + `
FROM booking_records
WHERE site_id = $1
  AND ($2::bigint IS NULL OR facility_id = $2)
  AND ($3::text IS NULL OR user_type = $3)
  AND ($4::text IS NULL OR status = $4)
  AND ($5::timestamptz IS NULL OR (created_at, id) < ($5, $6::uuid))
ORDER BY created_at DESC, id DESC
LIMIT $7`

type ListBookingRecordsParams struct {
	SiteID          int64
	FacilityID      pgtype.Int8
	UserType        pgtype.Text
	Status          pgtype.Text
	CursorCreatedAt pgtype.Timestamptz
	CursorID        pgtype.UUID
	Limit           int32
}

func (q *Queries) ListBookingRecords(ctx context.Context, db DBTX, arg ListBookingRecordsParams) ([]BookingRecords, error) {
	rows, err := db.Query(ctx, listBookingRecords,
		arg.SiteID,
		arg.FacilityID,
		arg.UserType,
		arg.Status,
		arg.CursorCreatedAt,
		arg.CursorID,
		arg.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []BookingRecords{}
	for rows.Next() {
		i, err := scanBookingRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanBookingRecord(row pgx.Row) (BookingRecords, error) {
	var i BookingRecords
	err := row.Scan(
		&i.ID,
		&i.ExternalID,
		&i.DraftID,
		&i.OperatorID,
		&i.SiteID,
		&i.UserID,
		&i.UserType,
		&i.FacilityID,
		&i.BookingDate,
		&i.SlotIds,
		&i.PrimarySlotID,
		&i.PaymentMethod,
		&i.Status,
		&i.NumberOfGuests,
		&i.Comment,
		&i.ComplementaryReason,
		&i.UserCharge,
		&i.GuestCharge,
		&i.SlotTotal,
		&i.SubtotalBeforeDiscount,
		&i.DiscountPercent,
		&i.DiscountAmount,
		&i.SubtotalAfterDiscount,
		&i.GstPercent,
		&i.SgstPercent,
		&i.GstAmount,
		&i.SgstAmount,
		&i.GrandTotal,
		&i.Currency,
		&i.PremiumDetails,
		&i.CreatedAt,
	)
	return i, err
}
