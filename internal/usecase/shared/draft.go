package shared

import (
	"context"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/operator"
	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// LoadOwnedDraft fetches a draft and checks that op may act on it.
func LoadOwnedDraft(ctx context.Context, drafts DraftStore, op *operator.Operator, id uuid.UUID) (*booking.Draft, error) {
	d, err := drafts.Get(ctx, id)
	if err != nil {
		return nil, DraftStoreError(err)
	}
	if d.OperatorID != op.ID() || d.SiteID != op.SiteID() {
		return nil, errs.ErrDraftForbidden
	}
	return d, nil
}

func DraftStoreError(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.ErrDraftNotFound
	case infra.IsKind(err, infra.KindConflict):
		return errs.ErrDraftConflict
	default:
		return errs.Mark(err, errs.ErrDraftStoreFailed)
	}
}

// UpstreamError maps a PMS gateway failure onto the usecase sentinels.
func UpstreamError(err error) error {
	switch {
	case infra.IsKind(err, infra.KindUnauthorized):
		return errs.Mark(err, errs.ErrUpstreamUnauthorized)
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrUpstreamNotFound)
	case infra.IsKind(err, infra.KindUpstreamRejected):
		return errs.Mark(err, errs.ErrUpstreamRejected)
	default:
		return errs.Mark(err, errs.ErrUpstreamUnavailable)
	}
}
