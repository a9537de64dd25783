package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/operator"
	"facility-booking/internal/infra/store"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/pkg/session"
	"facility-booking/internal/usecase/readmodel"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	submitEndpoint = "POST /api/drafts/:id/submit"
	idempotencyTTL = 24 * time.Hour
	// submitLockTTL must exceed the PMS client timeout.
	submitLockTTL = time.Minute
)

type SubmitResult struct {
	Booking *readmodel.BookingRecord
	// PaymentRedirect is set for prepaid bookings only.
	PaymentRedirect string
	IsReplayed      bool
}

// Submit sends the draft upstream once per idempotency key. A completed key
// replays the stored booking; the draft is gone by then.
func (u *draftUseCaseImpl) Submit(ctx context.Context, sess session.Context, op *operator.Operator, draftID uuid.UUID, idempotencyKey uuid.UUID) (*SubmitResult, error) {
	if idempotencyKey == uuid.Nil {
		return nil, errs.ErrIdempotencyKeyRequired
	}
	if !op.CanSubmit() {
		return nil, errs.ErrInsufficientRole
	}

	requestHash := calculateRequestHash(draftID)
	replayed, err := u.handleIdempotency(ctx, idempotencyKey, op.ID(), requestHash)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return newSubmitResult(replayed, true), nil
	}

	rec, err := u.submitNew(ctx, sess, op, draftID, idempotencyKey)
	if err != nil {
		return nil, err
	}
	return newSubmitResult(rec, false), nil
}

func (u *draftUseCaseImpl) handleIdempotency(ctx context.Context, key uuid.UUID, operatorID int64, requestHash string) (*readmodel.BookingRecord, error) {
	claimed, err := u.idempotencyRepo.TryInsert(ctx, key, operatorID, submitEndpoint, requestHash, u.clock.Now().Add(idempotencyTTL))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}
	if claimed {
		return nil, nil
	}

	existing, err := u.idempotencyRepo.Get(ctx, key, operatorID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrIdempotencyCheckFailed)
	}

	if existing.RequestHash != requestHash {
		return nil, errs.ErrIdempotencyKeyReused
	}

	switch existing.Status {
	case shared.IdempotencyCompleted:
		if existing.ResultRecordID == nil {
			return nil, errs.Mark(errs.New("completed request missing result record ID"), errs.ErrIdempotencyCheckFailed)
		}
		return u.bookingQueries.GetByIDSystem(ctx, *existing.ResultRecordID)
	case shared.IdempotencyProcessing:
		return nil, errs.ErrIdempotencyInProgress
	default:
		return nil, errs.Mark(errs.New("invalid idempotency key status"), errs.ErrIdempotencyCheckFailed)
	}
}

// submitNew holds the draft's submit lock across the upstream call, so two
// keys racing on one draft book it once. The draft is loaded under the lock;
// a submission that finished first has deleted it by then.
func (u *draftUseCaseImpl) submitNew(ctx context.Context, sess session.Context, op *operator.Operator, draftID, key uuid.UUID) (*readmodel.BookingRecord, error) {
	lockToken := key.String()
	locked, err := u.drafts.AcquireSubmitLock(ctx, draftID, lockToken, submitLockTTL)
	if err != nil {
		u.releaseKey(ctx, key, op.ID())
		return nil, errs.Mark(err, errs.ErrDraftStoreFailed)
	}
	if !locked {
		u.releaseKey(ctx, key, op.ID())
		return nil, errs.ErrSubmitInProgress
	}
	defer u.releaseSubmitLock(draftID, lockToken)

	d, err := shared.LoadOwnedDraft(ctx, u.drafts, op, draftID)
	if err != nil {
		u.releaseKey(ctx, key, op.ID())
		return nil, err
	}

	sub, err := d.Submission()
	if err != nil {
		u.releaseKey(ctx, key, op.ID())
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	created, err := u.pms.CreateBooking(ctx, sess, sub)
	if err != nil {
		u.releaseKey(ctx, key, op.ID())
		return nil, shared.UpstreamError(err)
	}

	rec := booking.NewRecord(created.ExternalID, d.ID, op.ID(), *sub, sess.Currency, u.clock.Now())
	var recordID uuid.UUID
	err = u.uow.Within(ctx, func(ctx context.Context, tx store.DBTX) error {
		id, err := u.records.Create(ctx, tx, rec)
		if err != nil {
			return err
		}
		recordID = id
		return u.idempotencyRepo.MarkCompleted(ctx, tx, key, op.ID(), id)
	})
	if err != nil {
		// The booking exists upstream; keep the key so a retry cannot book twice.
		slog.Error("booking accepted upstream but not recorded",
			slog.Int64("external_id", created.ExternalID),
			slog.String("draft_id", d.ID.String()),
			slog.String("error", err.Error()))
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	u.publishConfirmed(ctx, rec, recordID)

	if err := u.drafts.Delete(ctx, d.ID); err != nil {
		slog.Warn("failed to delete submitted draft",
			slog.String("draft_id", d.ID.String()),
			slog.String("error", err.Error()))
	}

	return u.bookingQueries.GetByIDSystem(ctx, recordID)
}

func (u *draftUseCaseImpl) publishConfirmed(ctx context.Context, rec *booking.Record, recordID uuid.UUID) {
	sub := rec.Submission()
	event := shared.BookingConfirmed{
		RecordID:      recordID,
		ExternalID:    rec.ExternalID(),
		OperatorID:    rec.OperatorID(),
		SiteID:        sub.SiteID,
		FacilityID:    sub.FacilityID,
		UserID:        sub.UserID,
		UserType:      sub.UserType.String(),
		Date:          sub.Date.Format(time.DateOnly),
		SlotIDs:       sub.SlotIDs,
		PaymentMethod: sub.PaymentMethod.String(),
		Status:        rec.Status().String(),
		GrandTotal:    sub.Summary.GrandTotal,
		Currency:      rec.Currency(),
		OccurredAt:    u.clock.Now(),
	}
	// the booking stands even if nobody hears about it
	_ = u.publisher.PublishBookingConfirmed(ctx, event)
}

// releaseKey frees a processing key after a failure that happened before
// upstream accepted the booking, so the operator can fix the draft and retry.
func (u *draftUseCaseImpl) releaseKey(ctx context.Context, key uuid.UUID, operatorID int64) {
	if err := u.idempotencyRepo.Release(ctx, key, operatorID); err != nil {
		slog.Warn("failed to release idempotency key",
			slog.String("key", key.String()),
			slog.String("error", err.Error()))
	}
}

func (u *draftUseCaseImpl) releaseSubmitLock(draftID uuid.UUID, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := u.drafts.ReleaseSubmitLock(ctx, draftID, token); err != nil {
		slog.Warn("failed to release submit lock",
			slog.String("draft_id", draftID.String()),
			slog.String("error", err.Error()))
	}
}

func newSubmitResult(rec *readmodel.BookingRecord, replayed bool) *SubmitResult {
	res := &SubmitResult{Booking: rec, IsReplayed: replayed}
	if rec.PaymentMethod == booking.PaymentPrepaid.String() {
		res.PaymentRedirect = PaymentRedirectPath(rec.ExternalID, rec.GrandTotal)
	}
	return res
}

func PaymentRedirectPath(externalID int64, amount float64) string {
	return fmt.Sprintf("/payment-redirect?bookingId=%d&amount=%s", externalID, formatAmount(amount))
}

func calculateRequestHash(draftID uuid.UUID) string {
	hash := sha256.Sum256([]byte(submitEndpoint + "|" + draftID.String()))
	return hex.EncodeToString(hash[:])
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
