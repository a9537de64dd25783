package readstore

import (
	"context"
	"encoding/json"

	"facility-booking/internal/infra"
	"facility-booking/internal/infra/repository/converter"
	"facility-booking/internal/infra/store"
	"facility-booking/internal/pkg/pgconv"
	"facility-booking/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRecordReadQueries interface {
	GetBookingRecord(ctx context.Context, db store.DBTX, id uuid.UUID) (store.BookingRecords, error)
	GetBookingRecordBySite(ctx context.Context, db store.DBTX, id uuid.UUID, siteID int64) (store.BookingRecords, error)
	ListBookingRecords(ctx context.Context, db store.DBTX, arg store.ListBookingRecordsParams) ([]store.BookingRecords, error)
}

type BookingRecordReadStore struct {
	queries BookingRecordReadQueries
	db      store.DBTX
}

func NewBookingRecordReadStore(queries BookingRecordReadQueries, db store.DBTX) *BookingRecordReadStore {
	return &BookingRecordReadStore{
		queries: queries,
		db:      db,
	}
}

// NewPooledBookingRecordReadStore is the fx constructor.
func NewPooledBookingRecordReadStore(queries *store.Queries, pool *pgxpool.Pool) *BookingRecordReadStore {
	return NewBookingRecordReadStore(queries, pool)
}

// FindByID skips site scoping; used for idempotent replay after the key already matched the operator.
func (s *BookingRecordReadStore) FindByID(ctx context.Context, id uuid.UUID) (*readmodel.BookingRecord, error) {
	row, err := s.queries.GetBookingRecord(ctx, s.db, id)
	if err != nil {
		return nil, s.wrapFindErr(err)
	}
	return toBookingRecord(row)
}

func (s *BookingRecordReadStore) FindByIDForSite(ctx context.Context, id uuid.UUID, siteID int64) (*readmodel.BookingRecord, error) {
	row, err := s.queries.GetBookingRecordBySite(ctx, s.db, id, siteID)
	if err != nil {
		return nil, s.wrapFindErr(err)
	}
	return toBookingRecord(row)
}

func (s *BookingRecordReadStore) List(ctx context.Context, f readmodel.BookingFilter) ([]*readmodel.BookingRecord, error) {
	params := store.ListBookingRecordsParams{
		SiteID:          f.SiteID,
		FacilityID:      pgconv.Int64PtrToPgtype(f.FacilityID),
		UserType:        pgconv.StringPtrToPgtype(f.UserType),
		Status:          pgconv.StringPtrToPgtype(f.Status),
		CursorCreatedAt: pgconv.TimePtrToPgtype(f.AfterCreatedAt),
		CursorID:        pgconv.UUIDPtrToPgtype(f.AfterID),
		Limit:           int32(f.Limit), // #nosec G115 -- bounded by queries.ValidateLimit
	}

	rows, err := s.queries.ListBookingRecords(ctx, s.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booking records", err)
	}

	out := make([]*readmodel.BookingRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := toBookingRecord(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *BookingRecordReadStore) wrapFindErr(err error) error {
	if pgconv.IsNoRows(err) {
		return infra.WrapRepoErr("booking record not found", err, infra.KindNotFound)
	}
	return infra.WrapRepoErr("failed to get booking record", err)
}

func toBookingRecord(row store.BookingRecords) (*readmodel.BookingRecord, error) {
	rec := &readmodel.BookingRecord{
		ID:                  row.ID,
		ExternalID:          row.ExternalID,
		DraftID:             row.DraftID,
		OperatorID:          row.OperatorID,
		SiteID:              row.SiteID,
		UserID:              row.UserID,
		UserType:            row.UserType,
		FacilityID:          row.FacilityID,
		Date:                pgconv.DateFromPgtype(row.BookingDate),
		SlotIDs:             row.SlotIds,
		PrimarySlotID:       row.PrimarySlotID,
		PaymentMethod:       row.PaymentMethod,
		Status:              row.Status,
		NumberOfGuests:      int(row.NumberOfGuests),
		Comment:             pgconv.StringFromPgtype(row.Comment),
		ComplementaryReason: pgconv.StringFromPgtype(row.ComplementaryReason),
		Currency:            row.Currency,
		CreatedAt:           pgconv.TimeFromPgtype(row.CreatedAt),
		PremiumDetails:      []readmodel.PremiumDetail{},
	}

	amounts := map[*float64]pgtype.Numeric{
		&rec.UserCharge:             row.UserCharge,
		&rec.GuestCharge:            row.GuestCharge,
		&rec.SlotTotal:              row.SlotTotal,
		&rec.SubtotalBeforeDiscount: row.SubtotalBeforeDiscount,
		&rec.DiscountPercent:        row.DiscountPercent,
		&rec.DiscountAmount:         row.DiscountAmount,
		&rec.SubtotalAfterDiscount:  row.SubtotalAfterDiscount,
		&rec.GSTPercent:             row.GstPercent,
		&rec.SGSTPercent:            row.SgstPercent,
		&rec.GSTAmount:              row.GstAmount,
		&rec.SGSTAmount:             row.SgstAmount,
		&rec.GrandTotal:             row.GrandTotal,
	}
	for dst, src := range amounts {
		v, err := pgconv.Float64FromNumeric(src)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid amount in booking record", err)
		}
		*dst = v
	}

	if len(row.PremiumDetails) > 0 {
		var details []converter.PremiumDetail
		if err := json.Unmarshal(row.PremiumDetails, &details); err != nil {
			return nil, infra.WrapRepoErr("invalid premium details in booking record", err)
		}
		for _, d := range details {
			rec.PremiumDetails = append(rec.PremiumDetails, readmodel.PremiumDetail(d))
		}
	}

	return rec, nil
}
