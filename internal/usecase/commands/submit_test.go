//go:build unit

package commands_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/operator"
	"facility-booking/internal/infra"
	"facility-booking/internal/infra/store"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/pkg/session"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/readmodel"
	"facility-booking/internal/usecase/shared"
	"facility-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const submitEndpoint = "POST /api/drafts/:id/submit"

func submitHash(draftID uuid.UUID) string {
	sum := sha256.Sum256([]byte(submitEndpoint + "|" + draftID.String()))
	return hex.EncodeToString(sum[:])
}

func expectSubmitLock(m *draftMocks, draftID, key uuid.UUID) {
	m.drafts.EXPECT().AcquireSubmitLock(gomock.Any(), draftID, key.String(), time.Minute).Return(true, nil)
	m.drafts.EXPECT().ReleaseSubmitLock(gomock.Any(), draftID, key.String()).Return(nil)
}

func runInTx(ctx context.Context, fn func(context.Context, store.DBTX) error) error {
	return fn(ctx, nil)
}

func TestDraftUseCase_Submit(t *testing.T) {
	ctx := context.Background()
	sess := testSession()

	t.Run("success: books upstream then records and publishes", func(t *testing.T) {
		uc, m := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		b := builder.NewDraftBuilder()
		key := uuid.New()
		recordID := uuid.New()

		m.idem.EXPECT().TryInsert(gomock.Any(), key, int64(501), submitEndpoint, submitHash(b.ID), testNow.Add(24*time.Hour)).Return(true, nil)
		expectSubmitLock(m, b.ID, key)
		expectGetFresh(m, b)
		m.pms.EXPECT().CreateBooking(gomock.Any(), sess, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ session.Context, sub *booking.Submission) (*shared.CreatedBooking, error) {
				assert.Equal(t, []int64{101}, sub.SlotIDs)
				assert.Equal(t, float64(649), sub.Summary.GrandTotal)
				return &shared.CreatedBooking{ExternalID: 9001}, nil
			})
		m.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
		m.records.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ store.DBTX, rec *booking.Record) (uuid.UUID, error) {
				assert.Equal(t, int64(9001), rec.ExternalID())
				assert.Equal(t, booking.StatusConfirmed, rec.Status())
				assert.Equal(t, "INR", rec.Currency())
				return recordID, nil
			})
		m.idem.EXPECT().MarkCompleted(gomock.Any(), gomock.Any(), key, int64(501), recordID).Return(nil)

		var event shared.BookingConfirmed
		m.publisher.EXPECT().PublishBookingConfirmed(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e shared.BookingConfirmed) error {
				event = e
				return nil
			})
		m.drafts.EXPECT().Delete(gomock.Any(), b.ID).Return(nil)
		m.bookings.EXPECT().GetByIDSystem(gomock.Any(), recordID).
			Return(&readmodel.BookingRecord{ID: recordID, ExternalID: 9001, PaymentMethod: "postpaid", GrandTotal: 649}, nil)

		res, err := uc.Submit(ctx, sess, op, b.ID, key)

		require.NoError(t, err)
		assert.False(t, res.IsReplayed)
		assert.Empty(t, res.PaymentRedirect)
		assert.Equal(t, recordID, res.Booking.ID)

		assert.Equal(t, recordID, event.RecordID)
		assert.Equal(t, int64(9001), event.ExternalID)
		assert.Equal(t, "confirmed", event.Status)
		assert.Equal(t, "2025-03-15", event.Date)
		assert.Equal(t, float64(649), event.GrandTotal)
		assert.Equal(t, testNow, event.OccurredAt)
	})

	t.Run("success: prepaid returns the payment redirect", func(t *testing.T) {
		uc, m := newDraftUseCase(t)
		op := testOperator(t, operator.RoleAdmin)

		b := builder.NewDraftBuilder().With(func(b *builder.DraftBuilder) {
			b.PaymentMethod = booking.PaymentPrepaid
		})
		key := uuid.New()
		recordID := uuid.New()

		m.idem.EXPECT().TryInsert(gomock.Any(), key, int64(501), submitEndpoint, gomock.Any(), gomock.Any()).Return(true, nil)
		expectSubmitLock(m, b.ID, key)
		expectGetFresh(m, b)
		m.pms.EXPECT().CreateBooking(gomock.Any(), sess, gomock.Any()).Return(&shared.CreatedBooking{ExternalID: 9002}, nil)
		m.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
		m.records.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ store.DBTX, rec *booking.Record) (uuid.UUID, error) {
				assert.Equal(t, booking.StatusPendingPayment, rec.Status())
				return recordID, nil
			})
		m.idem.EXPECT().MarkCompleted(gomock.Any(), gomock.Any(), key, int64(501), recordID).Return(nil)
		m.publisher.EXPECT().PublishBookingConfirmed(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
		m.drafts.EXPECT().Delete(gomock.Any(), b.ID).Return(errors.New("redis unavailable"))
		m.bookings.EXPECT().GetByIDSystem(gomock.Any(), recordID).
			Return(&readmodel.BookingRecord{ID: recordID, ExternalID: 9002, PaymentMethod: "prepaid", GrandTotal: 649.5}, nil)

		res, err := uc.Submit(ctx, sess, op, b.ID, key)

		require.NoError(t, err, "publish and draft cleanup failures do not fail the booking")
		assert.Equal(t, "/payment-redirect?bookingId=9002&amount=649.5", res.PaymentRedirect)
	})

	t.Run("success: completed key replays the record", func(t *testing.T) {
		uc, m := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		draftID := uuid.New()
		key := uuid.New()
		recordID := uuid.New()

		m.idem.EXPECT().TryInsert(gomock.Any(), key, int64(501), submitEndpoint, gomock.Any(), gomock.Any()).Return(false, nil)
		m.idem.EXPECT().Get(gomock.Any(), key, int64(501)).Return(&shared.IdempotencyRecord{
			Key:            key,
			OperatorID:     501,
			Status:         shared.IdempotencyCompleted,
			RequestHash:    submitHash(draftID),
			ResultRecordID: &recordID,
		}, nil)
		m.bookings.EXPECT().GetByIDSystem(gomock.Any(), recordID).
			Return(&readmodel.BookingRecord{ID: recordID, ExternalID: 9001, PaymentMethod: "prepaid", GrandTotal: 649}, nil)

		res, err := uc.Submit(ctx, sess, op, draftID, key)

		require.NoError(t, err)
		assert.True(t, res.IsReplayed)
		assert.Equal(t, "/payment-redirect?bookingId=9001&amount=649", res.PaymentRedirect)
	})

	idempotencyCases := []struct {
		name    string
		record  func(draftID uuid.UUID) *shared.IdempotencyRecord
		wantErr error
	}{
		{
			name: "error: key still processing",
			record: func(draftID uuid.UUID) *shared.IdempotencyRecord {
				return &shared.IdempotencyRecord{Status: shared.IdempotencyProcessing, RequestHash: submitHash(draftID)}
			},
			wantErr: errs.ErrIdempotencyInProgress,
		},
		{
			name: "error: key used for a different draft",
			record: func(uuid.UUID) *shared.IdempotencyRecord {
				return &shared.IdempotencyRecord{Status: shared.IdempotencyCompleted, RequestHash: submitHash(uuid.New())}
			},
			wantErr: errs.ErrIdempotencyKeyReused,
		},
		{
			name: "error: completed key without a record id",
			record: func(draftID uuid.UUID) *shared.IdempotencyRecord {
				return &shared.IdempotencyRecord{Status: shared.IdempotencyCompleted, RequestHash: submitHash(draftID)}
			},
			wantErr: errs.ErrIdempotencyCheckFailed,
		},
	}

	for _, tc := range idempotencyCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, m := newDraftUseCase(t)
			op := testOperator(t, operator.RoleOperator)

			draftID := uuid.New()
			key := uuid.New()
			m.idem.EXPECT().TryInsert(gomock.Any(), key, int64(501), submitEndpoint, gomock.Any(), gomock.Any()).Return(false, nil)
			m.idem.EXPECT().Get(gomock.Any(), key, int64(501)).Return(tc.record(draftID), nil)

			_, err := uc.Submit(ctx, sess, op, draftID, key)

			assert.True(t, errs.Is(err, tc.wantErr), "got %v", err)
		})
	}

	t.Run("error: validation failure releases the key", func(t *testing.T) {
		uc, m := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		b := builder.NewDraftBuilder().With(func(b *builder.DraftBuilder) {
			b.PaymentMethod = ""
		})
		key := uuid.New()

		m.idem.EXPECT().TryInsert(gomock.Any(), key, int64(501), submitEndpoint, gomock.Any(), gomock.Any()).Return(true, nil)
		expectSubmitLock(m, b.ID, key)
		expectGetFresh(m, b)
		m.idem.EXPECT().Release(gomock.Any(), key, int64(501)).Return(nil)

		_, err := uc.Submit(ctx, sess, op, b.ID, key)

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrDomainValidation))
		assert.True(t, errs.Is(err, booking.ErrPaymentMethodRequired))
	})

	t.Run("error: upstream rejection releases the key", func(t *testing.T) {
		uc, m := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		b := builder.NewDraftBuilder()
		key := uuid.New()

		m.idem.EXPECT().TryInsert(gomock.Any(), key, int64(501), submitEndpoint, gomock.Any(), gomock.Any()).Return(true, nil)
		expectSubmitLock(m, b.ID, key)
		expectGetFresh(m, b)
		m.pms.EXPECT().CreateBooking(gomock.Any(), sess, gomock.Any()).
			Return(nil, infra.WrapRepoErr("Slot already booked", nil, infra.KindUpstreamRejected))
		m.idem.EXPECT().Release(gomock.Any(), key, int64(501)).Return(errors.New("db gone"))

		_, err := uc.Submit(ctx, sess, op, b.ID, key)

		assert.True(t, errs.Is(err, errs.ErrUpstreamRejected))
		msg, ok := infra.MessageOf(err)
		require.True(t, ok)
		assert.Equal(t, "Slot already booked", msg)
	})

	t.Run("error: database failure after upstream acceptance keeps the key", func(t *testing.T) {
		uc, m := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		b := builder.NewDraftBuilder()
		key := uuid.New()

		m.idem.EXPECT().TryInsert(gomock.Any(), key, int64(501), submitEndpoint, gomock.Any(), gomock.Any()).Return(true, nil)
		expectSubmitLock(m, b.ID, key)
		expectGetFresh(m, b)
		m.pms.EXPECT().CreateBooking(gomock.Any(), sess, gomock.Any()).Return(&shared.CreatedBooking{ExternalID: 9003}, nil)
		m.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
		m.records.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("failed to create booking record", errors.New("connection reset")))
		m.idem.EXPECT().Release(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := uc.Submit(ctx, sess, op, b.ID, key)

		assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed))
	})

	t.Run("error: another submission holds the draft lock", func(t *testing.T) {
		uc, m := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		draftID := uuid.New()
		key := uuid.New()

		m.idem.EXPECT().TryInsert(gomock.Any(), key, int64(501), submitEndpoint, submitHash(draftID), gomock.Any()).Return(true, nil)
		m.drafts.EXPECT().AcquireSubmitLock(gomock.Any(), draftID, key.String(), time.Minute).Return(false, nil)
		m.idem.EXPECT().Release(gomock.Any(), key, int64(501)).Return(nil)
		m.drafts.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
		m.pms.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := uc.Submit(ctx, sess, op, draftID, key)

		assert.True(t, errs.Is(err, errs.ErrSubmitInProgress), "got %v", err)
	})

	t.Run("error: a second key after the first submission finds the draft gone", func(t *testing.T) {
		uc, m := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		draftID := uuid.New()
		key := uuid.New()

		m.idem.EXPECT().TryInsert(gomock.Any(), key, int64(501), submitEndpoint, gomock.Any(), gomock.Any()).Return(true, nil)
		expectSubmitLock(m, draftID, key)
		m.drafts.EXPECT().Get(gomock.Any(), draftID).
			Return(nil, infra.WrapRepoErr("draft not found", nil, infra.KindNotFound))
		m.idem.EXPECT().Release(gomock.Any(), key, int64(501)).Return(nil)
		m.pms.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := uc.Submit(ctx, sess, op, draftID, key)

		assert.True(t, errs.Is(err, errs.ErrDraftNotFound), "got %v", err)
	})

	t.Run("error: lock store failure releases the key", func(t *testing.T) {
		uc, m := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		draftID := uuid.New()
		key := uuid.New()

		m.idem.EXPECT().TryInsert(gomock.Any(), key, int64(501), submitEndpoint, gomock.Any(), gomock.Any()).Return(true, nil)
		m.drafts.EXPECT().AcquireSubmitLock(gomock.Any(), draftID, key.String(), time.Minute).
			Return(false, infra.WrapRepoErr("failed to lock draft for submit", errors.New("connection refused"), infra.KindCacheFailure))
		m.idem.EXPECT().Release(gomock.Any(), key, int64(501)).Return(nil)

		_, err := uc.Submit(ctx, sess, op, draftID, key)

		assert.True(t, errs.Is(err, errs.ErrDraftStoreFailed), "got %v", err)
	})

	t.Run("error: idempotency key missing", func(t *testing.T) {
		uc, _ := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		_, err := uc.Submit(ctx, sess, op, uuid.New(), uuid.Nil)

		assert.True(t, errs.Is(err, errs.ErrIdempotencyKeyRequired))
	})

	t.Run("error: viewer cannot submit", func(t *testing.T) {
		uc, _ := newDraftUseCase(t)
		op := testOperator(t, operator.RoleViewer)

		_, err := uc.Submit(ctx, sess, op, uuid.New(), uuid.New())

		assert.True(t, errs.Is(err, errs.ErrInsufficientRole))
	})
}

func TestPaymentRedirectPath(t *testing.T) {
	assert.Equal(t, "/payment-redirect?bookingId=42&amount=1180", commands.PaymentRedirectPath(42, 1180))
	assert.Equal(t, "/payment-redirect?bookingId=42&amount=1180.25", commands.PaymentRedirectPath(42, 1180.25))
}
