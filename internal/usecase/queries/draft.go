package queries

import (
	"context"

	"facility-booking/internal/domain/operator"
	"facility-booking/internal/pkg/session"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type DraftQueries interface {
	GetDraft(ctx context.Context, sess session.Context, op *operator.Operator, id uuid.UUID) (*DraftView, error)
	// Quote renders the cost summary even before any slot is picked.
	Quote(ctx context.Context, sess session.Context, op *operator.Operator, id uuid.UUID) (*QuoteView, error)
}

type draftQueriesImpl struct {
	drafts shared.DraftStore
}

func NewDraftQueries(drafts shared.DraftStore) DraftQueries {
	return &draftQueriesImpl{drafts: drafts}
}

func (q *draftQueriesImpl) GetDraft(ctx context.Context, sess session.Context, op *operator.Operator, id uuid.UUID) (*DraftView, error) {
	d, err := shared.LoadOwnedDraft(ctx, q.drafts, op, id)
	if err != nil {
		return nil, err
	}
	return NewDraftView(d, sess.Currency), nil
}

func (q *draftQueriesImpl) Quote(ctx context.Context, sess session.Context, op *operator.Operator, id uuid.UUID) (*QuoteView, error) {
	d, err := shared.LoadOwnedDraft(ctx, q.drafts, op, id)
	if err != nil {
		return nil, err
	}
	quote := NewQuoteView(d.Quote(), sess.Currency)
	return &quote, nil
}
