package commands

import (
	"context"
	"log/slog"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/operator"
	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/clock"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/pkg/session"
	"facility-booking/internal/usecase/queries"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// maxSaveAttempts bounds the reload-and-reapply loop on version conflicts.
const maxSaveAttempts = 3

type StartDraftParams struct {
	Context         booking.DraftContext
	NumberOfGuests  int
	DiscountPercent float64
}

type DraftCommands interface {
	StartDraft(ctx context.Context, sess session.Context, op *operator.Operator, params StartDraftParams) (*queries.DraftView, error)
	UpdateContext(ctx context.Context, sess session.Context, op *operator.Operator, draftID uuid.UUID, bc booking.DraftContext) (*queries.DraftView, error)
	RefreshDraft(ctx context.Context, sess session.Context, op *operator.Operator, draftID uuid.UUID) (*queries.DraftView, error)
	ToggleSlot(ctx context.Context, sess session.Context, op *operator.Operator, draftID uuid.UUID, slotID int64) (*queries.DraftView, error)
	UpdateOptions(ctx context.Context, sess session.Context, op *operator.Operator, draftID uuid.UUID, opts booking.DraftOptions) (*queries.DraftView, error)
	Submit(ctx context.Context, sess session.Context, op *operator.Operator, draftID uuid.UUID, idempotencyKey uuid.UUID) (*SubmitResult, error)
}

type draftUseCaseImpl struct {
	drafts          shared.DraftStore
	pms             shared.PMSGateway
	uow             shared.UnitOfWork
	records         shared.BookingRecordRepository
	idempotencyRepo shared.IdempotencyRepository
	publisher       shared.EventPublisher
	bookingQueries  queries.BookingQueries
	clock           clock.Clock
}

func NewDraftUseCase(
	drafts shared.DraftStore,
	pms shared.PMSGateway,
	uow shared.UnitOfWork,
	records shared.BookingRecordRepository,
	idempotencyRepo shared.IdempotencyRepository,
	publisher shared.EventPublisher,
	bookingQueries queries.BookingQueries,
	clock clock.Clock,
) DraftCommands {
	return &draftUseCaseImpl{
		drafts:          drafts,
		pms:             pms,
		uow:             uow,
		records:         records,
		idempotencyRepo: idempotencyRepo,
		publisher:       publisher,
		bookingQueries:  bookingQueries,
		clock:           clock,
	}
}

func (u *draftUseCaseImpl) StartDraft(ctx context.Context, sess session.Context, op *operator.Operator, params StartDraftParams) (*queries.DraftView, error) {
	d, err := booking.NewDraft(op.ID(), op.SiteID(), params.Context, u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidUserType)
	}
	d.ApplyOptions(booking.DraftOptions{
		NumberOfGuests:  &params.NumberOfGuests,
		DiscountPercent: &params.DiscountPercent,
	}, u.clock.Now())

	if err := u.drafts.Create(ctx, d); err != nil {
		return nil, errs.Mark(err, errs.ErrDraftStoreFailed)
	}

	slog.Info("draft started",
		slog.String("draft_id", d.ID.String()),
		slog.Int64("operator_id", op.ID()),
		slog.Int64("facility_id", d.FacilityID))

	loaded, warnings, err := u.loadReferences(ctx, sess, op, d, false)
	if err != nil {
		return nil, err
	}
	return draftView(loaded, sess, warnings), nil
}

func (u *draftUseCaseImpl) UpdateContext(ctx context.Context, sess session.Context, op *operator.Operator, draftID uuid.UUID, bc booking.DraftContext) (*queries.DraftView, error) {
	d, err := u.mutate(ctx, op, draftID, func(d *booking.Draft) (bool, error) {
		if _, err := d.ChangeContext(bc, u.clock.Now()); err != nil {
			return false, errs.Mark(err, errs.ErrInvalidUserType)
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	loaded, warnings, err := u.loadReferences(ctx, sess, op, d, false)
	if err != nil {
		return nil, err
	}
	return draftView(loaded, sess, warnings), nil
}

func (u *draftUseCaseImpl) RefreshDraft(ctx context.Context, sess session.Context, op *operator.Operator, draftID uuid.UUID) (*queries.DraftView, error) {
	d, err := shared.LoadOwnedDraft(ctx, u.drafts, op, draftID)
	if err != nil {
		return nil, err
	}

	loaded, warnings, err := u.loadReferences(ctx, sess, op, d, true)
	if err != nil {
		return nil, err
	}
	return draftView(loaded, sess, warnings), nil
}

func (u *draftUseCaseImpl) ToggleSlot(ctx context.Context, sess session.Context, op *operator.Operator, draftID uuid.UUID, slotID int64) (*queries.DraftView, error) {
	d, err := u.mutate(ctx, op, draftID, func(d *booking.Draft) (bool, error) {
		switch err := d.ToggleSlot(slotID, u.clock.Now()); {
		case err == nil:
			return true, nil
		case errs.Is(err, booking.ErrUnknownSlot):
			return false, errs.Mark(err, errs.ErrUnknownSlot)
		default:
			return false, errs.Mark(err, errs.ErrSlotNotSelectable)
		}
	})
	if err != nil {
		return nil, err
	}
	return queries.NewDraftView(d, sess.Currency), nil
}

func (u *draftUseCaseImpl) UpdateOptions(ctx context.Context, sess session.Context, op *operator.Operator, draftID uuid.UUID, opts booking.DraftOptions) (*queries.DraftView, error) {
	if opts.PaymentMethod != nil && *opts.PaymentMethod != "" && !opts.PaymentMethod.IsValid() {
		return nil, errs.ErrInvalidPaymentType
	}

	d, err := u.mutate(ctx, op, draftID, func(d *booking.Draft) (bool, error) {
		d.ApplyOptions(opts, u.clock.Now())
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return queries.NewDraftView(d, sess.Currency), nil
}

// mutate loads the draft, applies fn and saves it, reloading and reapplying
// when another request saved in between. fn returning false skips the save.
func (u *draftUseCaseImpl) mutate(ctx context.Context, op *operator.Operator, id uuid.UUID, fn func(d *booking.Draft) (bool, error)) (*booking.Draft, error) {
	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		d, err := shared.LoadOwnedDraft(ctx, u.drafts, op, id)
		if err != nil {
			return nil, err
		}

		save, err := fn(d)
		if err != nil {
			return nil, err
		}
		if !save {
			return d, nil
		}

		err = u.drafts.Save(ctx, d)
		if err == nil {
			return d, nil
		}
		if !infra.IsKind(err, infra.KindConflict) {
			return nil, shared.DraftStoreError(err)
		}
		slog.Debug("draft save conflict, retrying",
			slog.String("draft_id", id.String()),
			slog.Int("attempt", attempt))
	}
	return nil, errs.ErrDraftConflict
}

// loadReferences fetches the reference data the draft's context allows, all
// for the generation current when the fetch started. The result is applied
// only if the draft is still on that generation when it arrives. A failed
// fetch leaves that source as it was and is reported as a warning.
func (u *draftUseCaseImpl) loadReferences(ctx context.Context, sess session.Context, op *operator.Operator, d *booking.Draft, force bool) (*booking.Draft, []queries.ReferenceWarning, error) {
	ref := booking.ReferenceData{Generation: d.Generation}
	facilityID, userID, date := d.FacilityID, d.UserID, d.Date

	wantFacility := d.NeedsFacility() && (force || d.Facility == nil)
	wantSlots := d.NeedsSlots()
	wantRule := d.NeedsRule() && (force || d.Rule == nil)
	if !wantFacility && !wantSlots && !wantRule {
		return d, nil, nil
	}

	var facilityErr, slotsErr, ruleErr error
	var g errgroup.Group
	if wantFacility {
		g.Go(func() error {
			ref.Facility, facilityErr = u.pms.GetFacility(ctx, sess, facilityID)
			return nil
		})
	}
	if wantSlots {
		g.Go(func() error {
			var slots []booking.Slot
			slots, slotsErr = u.pms.ListSlots(ctx, sess, facilityID, date, userID)
			if slotsErr == nil {
				ref.Slots, ref.SlotsSet = slots, true
			}
			return nil
		})
	}
	if wantRule {
		g.Go(func() error {
			ref.Rule, ruleErr = u.pms.GetBookingRule(ctx, sess, facilityID, userID)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var warnings []queries.ReferenceWarning
	for _, f := range []struct {
		source string
		err    error
	}{
		{queries.ReferenceFacility, facilityErr},
		{queries.ReferenceSlots, slotsErr},
		{queries.ReferenceRule, ruleErr},
	} {
		if f.err == nil {
			continue
		}
		slog.Warn("reference fetch failed",
			slog.String("draft_id", d.ID.String()),
			slog.String("source", f.source),
			slog.String("error", f.err.Error()))
		warnings = append(warnings, queries.ReferenceWarning{Source: f.source, Message: referenceFailureMessage(f.err)})
	}
	if facilityErr != nil {
		ref.Facility = nil
	}
	if ruleErr != nil {
		ref.Rule = nil
	}
	if ref.Facility == nil && !ref.SlotsSet && ref.Rule == nil {
		return d, warnings, nil
	}

	applied := false
	updated, err := u.mutate(ctx, op, d.ID, func(cur *booking.Draft) (bool, error) {
		applied = cur.ApplyReferenceData(ref, u.clock.Now())
		return applied, nil
	})
	if err != nil {
		return nil, nil, err
	}
	if !applied {
		slog.Info("discarded stale reference data",
			slog.String("draft_id", d.ID.String()),
			slog.Int64("fetched_generation", ref.Generation),
			slog.Int64("current_generation", updated.Generation))
		return updated, nil, nil
	}
	return updated, warnings, nil
}

func referenceFailureMessage(err error) string {
	switch {
	case infra.IsKind(err, infra.KindUnauthorized):
		return "PMS rejected the operator credentials"
	case infra.IsKind(err, infra.KindNotFound):
		return "Requested PMS resource not found"
	default:
		return "PMS is unavailable. Please retry."
	}
}

// draftView renders d with any reference warnings from the last fetch.
func draftView(d *booking.Draft, sess session.Context, warnings []queries.ReferenceWarning) *queries.DraftView {
	v := queries.NewDraftView(d, sess.Currency)
	v.Warnings = warnings
	return v
}
