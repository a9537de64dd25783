//go:build unit

package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"facility-booking/internal/infra"
	"facility-booking/internal/infra/repository"
	"facility-booking/internal/infra/repository/converter"
	"facility-booking/internal/infra/store"
	"facility-booking/tests/common/builder"
	repositorymock "facility-booking/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// Create Booking Record Tests
// =============================================================================

func TestBookingRecordRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name        string
		queryErr    error
		expectError bool
		expectKind  infra.RepositoryErrorKind
	}{
		{
			name: "success: creates the booking record",
		},
		{
			name:        "error: database connection error",
			queryErr:    errors.New("database connection error"),
			expectError: true,
			expectKind:  infra.KindDBFailure,
		},
		{
			name:        "error: duplicate external id",
			queryErr:    &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"},
			expectError: true,
			expectKind:  infra.KindDuplicateKey,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockBookingRecordWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewBookingRecordRepository(mockQueries)

			b := builder.NewDraftBuilder().With(func(b *builder.DraftBuilder) {
				b.SelectedSlotIDs = []int64{102, 103}
			})
			rec := b.BuildRecord(9001)

			mockQueries.EXPECT().CreateBookingRecord(ctx, mockDB, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ store.DBTX, arg store.CreateBookingRecordParams) (uuid.UUID, error) {
					assert.Equal(t, rec.ID(), arg.ID)
					assert.Equal(t, int64(9001), arg.ExternalID)
					assert.Equal(t, []int64{102, 103}, arg.SlotIds)
					assert.Equal(t, int64(102), arg.PrimarySlotID)
					assert.Equal(t, "confirmed", arg.Status)
					assert.True(t, arg.BookingDate.Valid)
					assert.True(t, arg.Comment.Valid)
					assert.False(t, arg.ComplementaryReason.Valid, "empty reason is stored as NULL")

					var details []converter.PremiumDetail
					require.NoError(t, json.Unmarshal(arg.PremiumDetails, &details))
					require.Len(t, details, 2)
					assert.Equal(t, float64(0), details[0].PremiumPercent)
					assert.Equal(t, int64(103), details[1].SlotID)
					assert.Equal(t, float64(25), details[1].PremiumPercent)

					if tc.queryErr != nil {
						return uuid.Nil, tc.queryErr
					}
					return arg.ID, nil
				})

			id, err := repo.Create(ctx, mockDB, rec)

			if tc.expectError {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind))
				assert.Equal(t, uuid.Nil, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, rec.ID(), id)
		})
	}
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
