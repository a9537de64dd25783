package queries

import (
	"context"

	"facility-booking/internal/domain/operator"
	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type ListBookingsParams struct {
	FacilityID *int64
	UserType   *string
	Status     *string
	After      *Cursor
	Limit      int
}

type BookingQueries interface {
	GetBooking(ctx context.Context, op *operator.Operator, id uuid.UUID) (*readmodel.BookingRecord, error)
	ListBookings(ctx context.Context, op *operator.Operator, params ListBookingsParams) ([]*readmodel.BookingRecord, *Cursor, error)
	// GetByIDSystem skips site scoping. Only for replaying a completed idempotent submit.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*readmodel.BookingRecord, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*readmodel.BookingRecord, error)
	FindByIDForSite(ctx context.Context, id uuid.UUID, siteID int64) (*readmodel.BookingRecord, error)
	List(ctx context.Context, f readmodel.BookingFilter) ([]*readmodel.BookingRecord, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetBooking(ctx context.Context, op *operator.Operator, id uuid.UUID) (*readmodel.BookingRecord, error) {
	rec, err := q.repo.FindByIDForSite(ctx, id, op.SiteID())
	if err != nil {
		return nil, bookingFindError(err)
	}
	return rec, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*readmodel.BookingRecord, error) {
	rec, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, bookingFindError(err)
	}
	return rec, nil
}

// ListBookings pages newest first. The returned cursor is nil on the last page.
func (q *bookingQueriesImpl) ListBookings(ctx context.Context, op *operator.Operator, params ListBookingsParams) ([]*readmodel.BookingRecord, *Cursor, error) {
	limit := ValidateLimit(params.Limit)
	filter := readmodel.BookingFilter{
		SiteID:     op.SiteID(),
		FacilityID: params.FacilityID,
		UserType:   params.UserType,
		Status:     params.Status,
		Limit:      limit + 1,
	}
	if params.After != nil && params.After.After != "" {
		at, id, err := DecodeAfterCursor(params.After.After)
		if err != nil {
			return nil, nil, errs.Mark(err, ErrInvalidCursor)
		}
		filter.AfterCreatedAt = &at
		filter.AfterID = &id
	}

	rows, err := q.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if len(rows) <= limit {
		return rows, nil, nil
	}
	rows = rows[:limit]
	last := rows[limit-1]
	return rows, &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}, nil
}

func bookingFindError(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.ErrBookingNotFound
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

