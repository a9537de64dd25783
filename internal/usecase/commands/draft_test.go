//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/operator"
	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/clock"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/pkg/session"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/queries"
	"facility-booking/tests/common/builder"
	queriesmock "facility-booking/tests/mock/queries"
	sharedmock "facility-booking/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type draftMocks struct {
	drafts    *sharedmock.MockDraftStore
	pms       *sharedmock.MockPMSGateway
	uow       *sharedmock.MockUnitOfWork
	records   *sharedmock.MockBookingRecordRepository
	idem      *sharedmock.MockIdempotencyRepository
	publisher *sharedmock.MockEventPublisher
	bookings  *queriesmock.MockBookingQueries
	clock     *clock.MockClock
}

var testNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newDraftUseCase(t *testing.T) (commands.DraftCommands, *draftMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &draftMocks{
		drafts:    sharedmock.NewMockDraftStore(ctrl),
		pms:       sharedmock.NewMockPMSGateway(ctrl),
		uow:       sharedmock.NewMockUnitOfWork(ctrl),
		records:   sharedmock.NewMockBookingRecordRepository(ctrl),
		idem:      sharedmock.NewMockIdempotencyRepository(ctrl),
		publisher: sharedmock.NewMockEventPublisher(ctrl),
		bookings:  queriesmock.NewMockBookingQueries(ctrl),
		clock:     clock.NewMockClock(testNow),
	}
	uc := commands.NewDraftUseCase(m.drafts, m.pms, m.uow, m.records, m.idem, m.publisher, m.bookings, m.clock)
	return uc, m
}

func testSession() session.Context {
	return session.New("pms.example.com", "upstream-token", "INR")
}

func testOperator(t *testing.T, role operator.Role) *operator.Operator {
	t.Helper()
	op, err := operator.New(501, 7, role)
	require.NoError(t, err)
	return op
}

// expectGetFresh returns a new copy of the built draft on every load so that
// each mutate attempt starts from what the store holds.
func expectGetFresh(m *draftMocks, b *builder.DraftBuilder) *gomock.Call {
	return m.drafts.EXPECT().Get(gomock.Any(), b.ID).
		DoAndReturn(func(context.Context, uuid.UUID) (*booking.Draft, error) {
			return b.BuildDomain(), nil
		})
}

func TestDraftUseCase_StartDraft(t *testing.T) {
	ctx := context.Background()
	sess := testSession()
	ref := builder.NewDraftBuilder()

	t.Run("success: fetches reference data into the draft", func(t *testing.T) {
		uc, m := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		var stored booking.Draft
		m.drafts.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, d *booking.Draft) error {
				d.Version = 1
				stored = *d
				return nil
			})
		m.pms.EXPECT().GetFacility(gomock.Any(), sess, int64(33)).Return(ref.Facility, nil)
		m.pms.EXPECT().ListSlots(gomock.Any(), sess, int64(33), gomock.Any(), int64(1201)).Return(ref.Slots, nil)
		m.pms.EXPECT().GetBookingRule(gomock.Any(), sess, int64(33), int64(1201)).Return(ref.Rule, nil)
		m.drafts.EXPECT().Get(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, uuid.UUID) (*booking.Draft, error) {
				d := stored
				return &d, nil
			})
		m.drafts.EXPECT().Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, d *booking.Draft) error {
				assert.Equal(t, int64(1), d.Generation)
				assert.NotNil(t, d.Facility)
				return nil
			})

		view, err := uc.StartDraft(ctx, sess, op, commands.StartDraftParams{
			Context: booking.DraftContext{
				UserType:   booking.UserTypeOccupant,
				UserID:     1201,
				FacilityID: 33,
				Date:       ref.Date,
			},
			NumberOfGuests:  9,
			DiscountPercent: 150,
		})

		require.NoError(t, err)
		require.NotNil(t, view.Facility)
		require.NotNil(t, view.Rule)
		assert.Len(t, view.Slots, 3)
		assert.Equal(t, 4, view.NumberOfGuests, "guests clamp to max_people once the facility is known")
		assert.Equal(t, float64(100), view.DiscountPercent)
		assert.Equal(t, "INR", view.Quote.Currency)
	})

	t.Run("success: skips upstream without a facility", func(t *testing.T) {
		uc, m := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		m.drafts.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		view, err := uc.StartDraft(ctx, sess, op, commands.StartDraftParams{
			Context: booking.DraftContext{UserType: booking.UserTypeGuest},
		})

		require.NoError(t, err)
		assert.Nil(t, view.Facility)
		assert.Empty(t, view.Slots)
		assert.Equal(t, float64(0), view.Quote.GrandTotal)
	})

	t.Run("error: invalid user type", func(t *testing.T) {
		uc, _ := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		_, err := uc.StartDraft(ctx, sess, op, commands.StartDraftParams{
			Context: booking.DraftContext{UserType: "resident"},
		})

		assert.True(t, errs.Is(err, errs.ErrInvalidUserType))
	})

	occupantContext := booking.DraftContext{
		UserType:   booking.UserTypeOccupant,
		UserID:     1201,
		FacilityID: 33,
		Date:       ref.Date,
	}
	upstream500 := infra.WrapRepoErr("upstream returned 500", errors.New("internal server error"), infra.KindUpstreamFailure)

	t.Run("success: keeps facility and slots when the booking rule fetch fails", func(t *testing.T) {
		uc, m := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		var stored booking.Draft
		m.drafts.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, d *booking.Draft) error {
				d.Version = 1
				stored = *d
				return nil
			})
		m.pms.EXPECT().GetFacility(gomock.Any(), sess, int64(33)).Return(ref.Facility, nil)
		m.pms.EXPECT().ListSlots(gomock.Any(), sess, int64(33), gomock.Any(), int64(1201)).Return(ref.Slots, nil)
		m.pms.EXPECT().GetBookingRule(gomock.Any(), sess, int64(33), int64(1201)).Return(nil, upstream500)
		m.drafts.EXPECT().Get(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, uuid.UUID) (*booking.Draft, error) {
				d := stored
				return &d, nil
			})
		m.drafts.EXPECT().Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, d *booking.Draft) error {
				assert.NotNil(t, d.Facility)
				assert.Len(t, d.Slots, 3)
				assert.Nil(t, d.Rule)
				return nil
			})

		view, err := uc.StartDraft(ctx, sess, op, commands.StartDraftParams{Context: occupantContext})

		require.NoError(t, err)
		assert.Equal(t, stored.ID, view.ID, "作成済みの下書き ID を返す")
		require.NotNil(t, view.Facility)
		assert.Len(t, view.Slots, 3)
		assert.Nil(t, view.Rule)
		assert.Equal(t, []queries.ReferenceWarning{
			{Source: queries.ReferenceRule, Message: "PMS is unavailable. Please retry."},
		}, view.Warnings)
	})

	t.Run("success: returns the draft with warnings when every fetch fails", func(t *testing.T) {
		uc, m := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		var createdID uuid.UUID
		m.drafts.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, d *booking.Draft) error {
				createdID = d.ID
				return nil
			})
		unauthorized := infra.WrapRepoErr("upstream returned 401", nil, infra.KindUnauthorized)
		m.pms.EXPECT().GetFacility(gomock.Any(), sess, int64(33)).Return(nil, unauthorized)
		m.pms.EXPECT().ListSlots(gomock.Any(), sess, int64(33), gomock.Any(), int64(1201)).Return(nil, upstream500)
		m.pms.EXPECT().GetBookingRule(gomock.Any(), sess, int64(33), int64(1201)).Return(nil, upstream500)
		m.drafts.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

		view, err := uc.StartDraft(ctx, sess, op, commands.StartDraftParams{Context: occupantContext})

		require.NoError(t, err)
		assert.Equal(t, createdID, view.ID)
		assert.Nil(t, view.Facility)
		assert.Empty(t, view.Slots)
		assert.Equal(t, float64(0), view.Quote.GrandTotal)
		assert.Equal(t, []queries.ReferenceWarning{
			{Source: queries.ReferenceFacility, Message: "PMS rejected the operator credentials"},
			{Source: queries.ReferenceSlots, Message: "PMS is unavailable. Please retry."},
			{Source: queries.ReferenceRule, Message: "PMS is unavailable. Please retry."},
		}, view.Warnings)
	})
}

func TestDraftUseCase_RefreshDraft(t *testing.T) {
	ctx := context.Background()
	sess := testSession()

	t.Run("success: discards fetched data when the generation moved", func(t *testing.T) {
		uc, m := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		b := builder.NewDraftBuilder()
		moved := builder.NewDraftBuilder().With(func(nb *builder.DraftBuilder) {
			nb.ID = b.ID
			nb.Generation = 2
			nb.FacilityID = 34
			nb.Facility = nil
			nb.Slots = nil
			nb.Rule = nil
			nb.SelectedSlotIDs = nil
		})

		gomock.InOrder(
			expectGetFresh(m, b),
			m.drafts.EXPECT().Get(gomock.Any(), b.ID).Return(moved.BuildDomain(), nil),
		)
		m.pms.EXPECT().GetFacility(gomock.Any(), sess, int64(33)).Return(b.Facility, nil)
		m.pms.EXPECT().ListSlots(gomock.Any(), sess, int64(33), gomock.Any(), int64(1201)).Return(b.Slots, nil)
		m.pms.EXPECT().GetBookingRule(gomock.Any(), sess, int64(33), int64(1201)).Return(b.Rule, nil)
		m.drafts.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

		view, err := uc.RefreshDraft(ctx, sess, op, b.ID)

		require.NoError(t, err)
		assert.Equal(t, int64(2), view.Generation)
		assert.Equal(t, int64(34), view.FacilityID)
		assert.Nil(t, view.Facility)
		assert.Empty(t, view.Slots)
	})

	t.Run("success: overwrites with refetched data on the same generation", func(t *testing.T) {
		uc, m := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		b := builder.NewDraftBuilder()
		renamed := *b.Facility
		renamed.Name = "Badminton Court A"

		expectGetFresh(m, b).Times(2)
		m.pms.EXPECT().GetFacility(gomock.Any(), sess, int64(33)).Return(&renamed, nil)
		m.pms.EXPECT().ListSlots(gomock.Any(), sess, int64(33), gomock.Any(), int64(1201)).Return(b.Slots[:2], nil)
		m.pms.EXPECT().GetBookingRule(gomock.Any(), sess, int64(33), int64(1201)).Return(b.Rule, nil)
		m.drafts.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		view, err := uc.RefreshDraft(ctx, sess, op, b.ID)

		require.NoError(t, err)
		require.NotNil(t, view.Facility)
		assert.Equal(t, "Badminton Court A", view.Facility.Name)
		assert.Len(t, view.Slots, 2)
		assert.Equal(t, []int64{101}, view.SelectedSlotIDs)
	})

	t.Run("error: draft owned by another operator", func(t *testing.T) {
		uc, m := newDraftUseCase(t)
		op, err := operator.New(777, 7, operator.RoleOperator)
		require.NoError(t, err)

		b := builder.NewDraftBuilder()
		expectGetFresh(m, b)

		_, err = uc.RefreshDraft(ctx, sess, op, b.ID)

		assert.True(t, errs.Is(err, errs.ErrDraftForbidden))
	})

	t.Run("error: draft does not exist", func(t *testing.T) {
		uc, m := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		id := uuid.New()
		m.drafts.EXPECT().Get(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("draft not found", nil, infra.KindNotFound))

		_, err := uc.RefreshDraft(ctx, sess, op, id)

		assert.True(t, errs.Is(err, errs.ErrDraftNotFound))
	})
}

func TestDraftUseCase_UpdateContext(t *testing.T) {
	ctx := context.Background()
	sess := testSession()

	t.Run("success: refetches slots on date change", func(t *testing.T) {
		uc, m := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		b := builder.NewDraftBuilder()
		newDate := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)

		var stored *booking.Draft
		m.drafts.EXPECT().Get(gomock.Any(), b.ID).
			DoAndReturn(func(context.Context, uuid.UUID) (*booking.Draft, error) {
				if stored == nil {
					return b.BuildDomain(), nil
				}
				d := *stored
				return &d, nil
			}).Times(2)
		m.drafts.EXPECT().Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, d *booking.Draft) error {
				saved := *d
				stored = &saved
				return nil
			}).Times(2)
		m.pms.EXPECT().ListSlots(gomock.Any(), sess, int64(33), newDate, int64(1201)).Return(b.Slots[1:], nil)

		view, err := uc.UpdateContext(ctx, sess, op, b.ID, booking.DraftContext{
			UserType:   booking.UserTypeOccupant,
			UserID:     1201,
			FacilityID: 33,
			Date:       newDate,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(2), view.Generation)
		assert.Len(t, view.Slots, 2)
		assert.Empty(t, view.SelectedSlotIDs)
		assert.NotNil(t, view.Facility, "facility survives a date change")
		assert.NotNil(t, view.Rule, "rule survives a date change")
	})
}

func TestDraftUseCase_ToggleSlot(t *testing.T) {
	ctx := context.Background()
	sess := testSession()

	t.Run("success: reloads and reapplies on version conflict", func(t *testing.T) {
		uc, m := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		b := builder.NewDraftBuilder()
		expectGetFresh(m, b).Times(2)
		gomock.InOrder(
			m.drafts.EXPECT().Save(gomock.Any(), gomock.Any()).
				Return(infra.WrapRepoErr("draft version moved", nil, infra.KindConflict)),
			m.drafts.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil),
		)

		view, err := uc.ToggleSlot(ctx, sess, op, b.ID, 102)

		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{101, 102}, view.SelectedSlotIDs)
	})

	t.Run("error: gives up after repeated conflicts", func(t *testing.T) {
		uc, m := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		b := builder.NewDraftBuilder()
		expectGetFresh(m, b).Times(3)
		m.drafts.EXPECT().Save(gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("draft version moved", nil, infra.KindConflict)).Times(3)

		_, err := uc.ToggleSlot(ctx, sess, op, b.ID, 102)

		assert.True(t, errs.Is(err, errs.ErrDraftConflict))
	})

	testCases := []struct {
		name    string
		mutate  func(*builder.DraftBuilder)
		slotID  int64
		wantErr error
	}{
		{
			name:    "error: slot does not exist",
			slotID:  999,
			wantErr: errs.ErrUnknownSlot,
		},
		{
			name: "error: rule forbids booking",
			mutate: func(b *builder.DraftBuilder) {
				b.Rule = &booking.BookingRule{CanBook: false}
				b.SelectedSlotIDs = nil
			},
			slotID:  102,
			wantErr: errs.ErrSlotNotSelectable,
		},
		{
			name: "error: exceeds the consecutive slot limit",
			mutate: func(b *builder.DraftBuilder) {
				b.SelectedSlotIDs = []int64{101, 102}
				b.Rule = &booking.BookingRule{CanBook: true, MultipleBookings: true, MultipleBookingCount: 4, ConcurrentSlots: 2}
			},
			slotID:  103,
			wantErr: errs.ErrSlotNotSelectable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			uc, m := newDraftUseCase(t)
			op := testOperator(t, operator.RoleOperator)

			b := builder.NewDraftBuilder()
			if tc.mutate != nil {
				b.With(tc.mutate)
			}
			expectGetFresh(m, b)

			_, err := uc.ToggleSlot(ctx, sess, op, b.ID, tc.slotID)

			assert.True(t, errs.Is(err, tc.wantErr), "got %v", err)
		})
	}
}

func TestDraftUseCase_UpdateOptions(t *testing.T) {
	ctx := context.Background()
	sess := testSession()

	t.Run("success: clamps guests and discount", func(t *testing.T) {
		uc, m := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		b := builder.NewDraftBuilder()
		expectGetFresh(m, b)
		m.drafts.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		guests, discount := 10, -5.0
		method := booking.PaymentComplementary
		reason := "Resident committee event"
		view, err := uc.UpdateOptions(ctx, sess, op, b.ID, booking.DraftOptions{
			NumberOfGuests:      &guests,
			DiscountPercent:     &discount,
			PaymentMethod:       &method,
			ComplementaryReason: &reason,
		})

		require.NoError(t, err)
		assert.Equal(t, 4, view.NumberOfGuests)
		assert.Equal(t, float64(0), view.DiscountPercent)
		assert.Equal(t, "complementary", view.PaymentMethod)
		assert.Equal(t, reason, view.ComplementaryReason)
	})

	t.Run("error: invalid payment method", func(t *testing.T) {
		uc, _ := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		method := booking.PaymentMethod("cheque")
		_, err := uc.UpdateOptions(ctx, sess, op, uuid.New(), booking.DraftOptions{PaymentMethod: &method})

		assert.True(t, errs.Is(err, errs.ErrInvalidPaymentType))
	})

	t.Run("error: draft store outage", func(t *testing.T) {
		uc, m := newDraftUseCase(t)
		op := testOperator(t, operator.RoleOperator)

		b := builder.NewDraftBuilder()
		expectGetFresh(m, b)
		m.drafts.EXPECT().Save(gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("redis eval failed", errors.New("i/o timeout"), infra.KindCacheFailure))

		comment := "late arrival"
		_, err := uc.UpdateOptions(ctx, sess, op, b.ID, booking.DraftOptions{Comment: &comment})

		assert.True(t, errs.Is(err, errs.ErrDraftStoreFailed))
	})
}
