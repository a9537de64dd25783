//go:build unit

package readstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"facility-booking/internal/infra"
	"facility-booking/internal/infra/readstore"
	"facility-booking/internal/infra/store"
	"facility-booking/internal/pkg/pgconv"
	"facility-booking/internal/usecase/readmodel"
	readstoremock "facility-booking/tests/mock/readstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func numeric(t *testing.T, s string) pgtype.Numeric {
	t.Helper()
	var n pgtype.Numeric
	require.NoError(t, n.Scan(s))
	return n
}

func bookingRow(t *testing.T, id uuid.UUID) store.BookingRecords {
	t.Helper()
	return store.BookingRecords{
		ID:                     id,
		ExternalID:             9001,
		DraftID:                uuid.New(),
		OperatorID:             501,
		SiteID:                 7,
		UserID:                 1201,
		UserType:               "occupant",
		FacilityID:             33,
		BookingDate:            pgconv.DateToPgtype(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)),
		SlotIds:                []int64{101},
		PrimarySlotID:          101,
		PaymentMethod:          "postpaid",
		Status:                 "confirmed",
		NumberOfGuests:         1,
		Comment:                pgconv.OptionalStringToPgtype("Evening practice"),
		UserCharge:             numeric(t, "200"),
		GuestCharge:            numeric(t, "300"),
		SlotTotal:              numeric(t, "50"),
		SubtotalBeforeDiscount: numeric(t, "550"),
		DiscountPercent:        numeric(t, "0"),
		DiscountAmount:         numeric(t, "0"),
		SubtotalAfterDiscount:  numeric(t, "550"),
		GstPercent:             numeric(t, "9"),
		SgstPercent:            numeric(t, "9"),
		GstAmount:              numeric(t, "49.5"),
		SgstAmount:             numeric(t, "49.5"),
		GrandTotal:             numeric(t, "649"),
		Currency:               "INR",
		PremiumDetails:         []byte(`[{"slot_id":101,"label":"06:00 AM to 07:00 AM","premium_percent":0,"member_premium":0,"guest_premium":0,"total":200,"guest_total":300}]`),
		CreatedAt:              pgconv.TimeToPgtype(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)),
	}
}

func TestBookingRecordReadStore_FindByIDForSite(t *testing.T) {
	ctx := context.Background()

	t.Run("success: maps rows to the read model", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		queries := readstoremock.NewMockBookingRecordReadQueries(ctrl)
		db := &mockDBTX{}
		rs := readstore.NewBookingRecordReadStore(queries, db)

		id := uuid.New()
		queries.EXPECT().GetBookingRecordBySite(ctx, db, id, int64(7)).Return(bookingRow(t, id), nil)

		rec, err := rs.FindByIDForSite(ctx, id, 7)

		require.NoError(t, err)
		assert.Equal(t, id, rec.ID)
		assert.Equal(t, "Evening practice", rec.Comment)
		assert.Empty(t, rec.ComplementaryReason)
		assert.Equal(t, float64(649), rec.GrandTotal)
		assert.Equal(t, 49.5, rec.GSTAmount)
		assert.Equal(t, "2025-03-15", rec.Date.Format(time.DateOnly))
		require.Len(t, rec.PremiumDetails, 1)
		assert.Equal(t, readmodel.PremiumDetail{
			SlotID:     101,
			Label:      "06:00 AM to 07:00 AM",
			Total:      200,
			GuestTotal: 300,
		}, rec.PremiumDetails[0])
	})

	testCases := []struct {
		name       string
		queryErr   error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "error: other site or missing", queryErr: pgx.ErrNoRows, expectKind: infra.KindNotFound},
		{name: "error: database outage", queryErr: errors.New("connection reset"), expectKind: infra.KindDBFailure},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			queries := readstoremock.NewMockBookingRecordReadQueries(ctrl)
			db := &mockDBTX{}
			rs := readstore.NewBookingRecordReadStore(queries, db)

			id := uuid.New()
			queries.EXPECT().GetBookingRecordBySite(ctx, db, id, int64(7)).Return(store.BookingRecords{}, tc.queryErr)

			_, err := rs.FindByIDForSite(ctx, id, 7)

			assert.True(t, infra.IsKind(err, tc.expectKind))
		})
	}
}

func TestBookingRecordReadStore_List(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	queries := readstoremock.NewMockBookingRecordReadQueries(ctrl)
	db := &mockDBTX{}
	rs := readstore.NewBookingRecordReadStore(queries, db)

	status := "pending_payment"
	afterAt := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	afterID := uuid.New()
	queries.EXPECT().ListBookingRecords(ctx, db, store.ListBookingRecordsParams{
		SiteID:          7,
		Status:          pgconv.StringPtrToPgtype(&status),
		CursorCreatedAt: pgconv.TimeToPgtype(afterAt),
		CursorID:        pgconv.UUIDToPgtype(afterID),
		Limit:           21,
	}).Return([]store.BookingRecords{bookingRow(t, uuid.New()), bookingRow(t, uuid.New())}, nil)

	recs, err := rs.List(ctx, readmodel.BookingFilter{
		SiteID:         7,
		Status:         &status,
		AfterCreatedAt: &afterAt,
		AfterID:        &afterID,
		Limit:          21,
	})

	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("mockDBTX.QueryRow was called unexpectedly. Use the store mock instead.")
}
