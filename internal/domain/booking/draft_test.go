//go:build unit

package booking_test

import (
	"testing"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func TestNewDraft(t *testing.T) {
	d, err := booking.NewDraft(1, 2, booking.DraftContext{
		UserType:   booking.UserTypeFM,
		UserID:     9,
		FacilityID: 4,
		Date:       time.Date(2025, 3, 15, 17, 30, 0, 0, time.FixedZone("IST", 19800)),
	}, now)
	require.NoError(t, err)

	assert.Equal(t, int64(1), d.Generation)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), d.Date)
	assert.Equal(t, booking.UserTypeFM, d.Selection.UserType)
	assert.True(t, d.NeedsFacility())
	assert.True(t, d.NeedsSlots())
	assert.True(t, d.NeedsRule())

	_, err = booking.NewDraft(1, 2, booking.DraftContext{UserType: "staff"}, now)
	assert.ErrorIs(t, err, booking.ErrInvalidUserType)
}

func TestDraft_ChangeContext(t *testing.T) {
	t.Run("date change keeps facility and rule", func(t *testing.T) {
		d := builder.NewDraftBuilder().BuildDomain()
		bc := d.Context()
		bc.Date = bc.Date.AddDate(0, 0, 1)

		changed, err := d.ChangeContext(bc, now)
		require.NoError(t, err)

		assert.True(t, changed)
		assert.Equal(t, int64(2), d.Generation)
		assert.Empty(t, d.Selection.SelectedSlotIDs)
		assert.Nil(t, d.Slots)
		assert.NotNil(t, d.Facility)
		assert.NotNil(t, d.Rule)
	})

	t.Run("facility change clears everything dependent", func(t *testing.T) {
		d := builder.NewDraftBuilder().BuildDomain()
		bc := d.Context()
		bc.FacilityID = 44

		changed, err := d.ChangeContext(bc, now)
		require.NoError(t, err)

		assert.True(t, changed)
		assert.Nil(t, d.Facility)
		assert.Nil(t, d.Rule)
		assert.Empty(t, d.PaymentMethod)
	})

	t.Run("user type change clears rule and members", func(t *testing.T) {
		d := builder.NewDraftBuilder().BuildDomain()
		bc := d.Context()
		bc.UserType = booking.UserTypeGuest

		changed, err := d.ChangeContext(bc, now)
		require.NoError(t, err)

		assert.True(t, changed)
		assert.Nil(t, d.Rule)
		assert.Nil(t, d.Members)
		assert.NotNil(t, d.Facility)
	})

	t.Run("same context is a no-op", func(t *testing.T) {
		d := builder.NewDraftBuilder().BuildDomain()

		changed, err := d.ChangeContext(d.Context(), now)
		require.NoError(t, err)

		assert.False(t, changed)
		assert.Equal(t, int64(1), d.Generation)
		assert.Equal(t, []int64{101}, d.Selection.SelectedSlotIDs)
	})
}

func TestDraft_ApplyReferenceData(t *testing.T) {
	t.Run("stale generation is discarded", func(t *testing.T) {
		d := builder.NewDraftBuilder().BuildDomain()
		bc := d.Context()
		bc.FacilityID = 44
		_, err := d.ChangeContext(bc, now)
		require.NoError(t, err)

		applied := d.ApplyReferenceData(booking.ReferenceData{
			Generation: 1,
			Facility:   &booking.Facility{ID: 33},
			Slots:      []booking.Slot{{ID: 1}},
			SlotsSet:   true,
		}, now)

		assert.False(t, applied)
		assert.Nil(t, d.Facility)
		assert.Nil(t, d.Slots)
	})

	t.Run("late rule resets a disallowed selection", func(t *testing.T) {
		d := builder.NewDraftBuilder().With(func(b *builder.DraftBuilder) {
			b.Rule = nil
			b.SelectedSlotIDs = []int64{101, 102}
		}).BuildDomain()

		applied := d.ApplyReferenceData(booking.ReferenceData{
			Generation: d.Generation,
			Rule:       &booking.BookingRule{CanBook: true, ConcurrentSlots: 1},
		}, now)

		assert.True(t, applied)
		assert.Empty(t, d.Selection.SelectedSlotIDs)
	})

	t.Run("facility clamps guests and drops a disabled method", func(t *testing.T) {
		d := builder.NewDraftBuilder().With(func(b *builder.DraftBuilder) {
			b.NumberOfGuests = 9
			b.PaymentMethod = booking.PaymentPrepaid
		}).BuildDomain()

		d.ApplyReferenceData(booking.ReferenceData{
			Generation: d.Generation,
			Facility:   &booking.Facility{ID: 33, MaxPeople: 2, Payments: booking.PaymentOptions{Postpaid: true}},
		}, now)

		assert.Equal(t, 2, d.Selection.NumberOfGuests)
		assert.Empty(t, d.PaymentMethod)
	})

	t.Run("new slot list drops unknown selections", func(t *testing.T) {
		d := builder.NewDraftBuilder().With(func(b *builder.DraftBuilder) {
			b.SelectedSlotIDs = []int64{101, 103}
		}).BuildDomain()

		d.ApplyReferenceData(booking.ReferenceData{
			Generation: d.Generation,
			Slots:      []booking.Slot{{ID: 103}},
			SlotsSet:   true,
		}, now)

		assert.Equal(t, []int64{103}, d.Selection.SelectedSlotIDs)
	})
}

func TestDraft_ToggleSlot(t *testing.T) {
	d := builder.NewDraftBuilder().BuildDomain()

	require.NoError(t, d.ToggleSlot(102, now))
	assert.Equal(t, []int64{101, 102}, d.Selection.SelectedSlotIDs)

	// three adjacent ids exceed the concurrency ceiling of 2
	assert.ErrorIs(t, d.ToggleSlot(103, now), booking.ErrSlotNotSelectable)

	require.NoError(t, d.ToggleSlot(101, now))
	require.NoError(t, d.ToggleSlot(103, now))
	assert.Equal(t, []int64{102, 103}, d.Selection.SelectedSlotIDs)

	assert.ErrorIs(t, d.ToggleSlot(555, now), booking.ErrUnknownSlot)

	d.Rule.CanBook = false
	assert.ErrorIs(t, d.ToggleSlot(101, now), booking.ErrSlotNotSelectable)
	require.NoError(t, d.ToggleSlot(102, now), "deselection is never gated")
	assert.Equal(t, []int64{103}, d.Selection.SelectedSlotIDs)
}

func TestDraft_ApplyOptions(t *testing.T) {
	d := builder.NewDraftBuilder().With(func(b *builder.DraftBuilder) {
		b.ComplementaryReason = "old"
	}).BuildDomain()

	guests := 12
	discount := 140.0
	method := booking.PaymentPrepaid
	d.ApplyOptions(booking.DraftOptions{
		NumberOfGuests:  &guests,
		DiscountPercent: &discount,
		PaymentMethod:   &method,
	}, now)

	assert.Equal(t, 4, d.Selection.NumberOfGuests)
	assert.Equal(t, 100.0, d.Selection.DiscountPercent)
	assert.Equal(t, booking.PaymentPrepaid, d.PaymentMethod)
	assert.Empty(t, d.ComplementaryReason)
	assert.Equal(t, "Evening practice", d.Comment)
}

func TestDraft_Quote_MissingReferenceData(t *testing.T) {
	d := builder.NewDraftBuilder().With(func(b *builder.DraftBuilder) {
		b.Facility = nil
		b.Rule = nil
	}).BuildDomain()

	q := d.Quote()
	assert.Zero(t, q.GrandTotal)
	assert.Equal(t, 1, q.SlotCount)
}
