package repository

import (
	"context"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/infra"
	"facility-booking/internal/infra/repository/converter"
	"facility-booking/internal/infra/store"

	"github.com/google/uuid"
)

type BookingRecordWriteQueries interface {
	CreateBookingRecord(ctx context.Context, db store.DBTX, arg store.CreateBookingRecordParams) (uuid.UUID, error)
}

type BookingRecordRepository struct {
	queries BookingRecordWriteQueries
}

func NewBookingRecordRepository(queries BookingRecordWriteQueries) *BookingRecordRepository {
	return &BookingRecordRepository{
		queries: queries,
	}
}

func (r *BookingRecordRepository) Create(ctx context.Context, tx store.DBTX, rec *booking.Record) (uuid.UUID, error) {
	params, err := converter.RecordToCreateParams(rec)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to build booking record", err)
	}

	id, err := r.queries.CreateBookingRecord(ctx, tx, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking record", err)
	}
	return id, nil
}
