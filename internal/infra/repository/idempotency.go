package repository

import (
	"context"
	"time"

	"facility-booking/internal/infra"
	"facility-booking/internal/infra/store"
	"facility-booking/internal/pkg/clock"
	"facility-booking/internal/pkg/pgconv"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IdempotencyQueries interface {
	TryInsertIdempotencyKey(ctx context.Context, db store.DBTX, arg store.TryInsertIdempotencyKeyParams) (int64, error)
	GetIdempotencyKey(ctx context.Context, db store.DBTX, arg store.GetIdempotencyKeyParams) (store.IdempotencyKeys, error)
	UpdateIdempotencyKeyCompleted(ctx context.Context, db store.DBTX, arg store.UpdateIdempotencyKeyCompletedParams) (int64, error)
	DeleteProcessingIdempotencyKey(ctx context.Context, db store.DBTX, arg store.GetIdempotencyKeyParams) error
	DeleteExpiredIdempotencyKeys(ctx context.Context, db store.DBTX) (int64, error)
}

type IdempotencyRepository struct {
	queries IdempotencyQueries
	db      store.DBTX
	clock   clock.Clock
}

func NewIdempotencyRepository(queries IdempotencyQueries, db store.DBTX, clk clock.Clock) *IdempotencyRepository {
	return &IdempotencyRepository{
		queries: queries,
		db:      db,
		clock:   clk,
	}
}

// NewPooledIdempotencyRepository is the fx constructor.
func NewPooledIdempotencyRepository(queries *store.Queries, pool *pgxpool.Pool, clk clock.Clock) *IdempotencyRepository {
	return NewIdempotencyRepository(queries, pool, clk)
}

// TryInsert reports whether this call claimed the key.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, key uuid.UUID, operatorID int64, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	params := store.TryInsertIdempotencyKeyParams{
		Key:         key,
		OperatorID:  operatorID,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		ExpiresAt:   pgconv.TimeToPgtype(expiresAt),
	}

	affected, err := r.queries.TryInsertIdempotencyKey(ctx, r.db, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}
	return affected > 0, nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key uuid.UUID, operatorID int64) (*shared.IdempotencyRecord, error) {
	row, err := r.queries.GetIdempotencyKey(ctx, r.db, store.GetIdempotencyKeyParams{Key: key, OperatorID: operatorID})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	record := &shared.IdempotencyRecord{
		Key:            row.Key,
		OperatorID:     row.OperatorID,
		Status:         row.Status,
		RequestHash:    row.RequestHash,
		ResultRecordID: pgconv.UUIDPtrFromPgtype(row.ResultRecordID),
		ExpiresAt:      pgconv.TimeFromPgtype(row.ExpiresAt),
	}

	if r.clock.Now().After(record.ExpiresAt) {
		return nil, infra.WrapRepoErr("idempotency key expired", nil, infra.KindNotFound)
	}

	return record, nil
}

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, tx store.DBTX, key uuid.UUID, operatorID int64, recordID uuid.UUID) error {
	params := store.UpdateIdempotencyKeyCompletedParams{
		Key:            key,
		OperatorID:     operatorID,
		ResultRecordID: pgconv.UUIDToPgtype(recordID),
	}

	affected, err := r.queries.UpdateIdempotencyKeyCompleted(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("idempotency key vanished before completion", nil, infra.KindNotFound)
	}
	return nil
}

func (r *IdempotencyRepository) Release(ctx context.Context, key uuid.UUID, operatorID int64) error {
	err := r.queries.DeleteProcessingIdempotencyKey(ctx, r.db, store.GetIdempotencyKeyParams{Key: key, OperatorID: operatorID})
	if err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	count, err := r.queries.DeleteExpiredIdempotencyKeys(ctx, r.db)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return count, nil
}
