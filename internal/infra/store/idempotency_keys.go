package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const tryInsertIdempotencyKey = `
INSERT INTO idempotency_keys (key, operator_id, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, 'processing', $5)
ON CONFLICT (key, operator_id) DO UPDATE
SET endpoint = EXCLUDED.endpoint,
    request_hash = EXCLUDED.request_hash,
    status = 'processing',
    result_record_id = NULL,
    expires_at = EXCLUDED.expires_at,
    updated_at = now()
WHERE idempotency_keys.expires_at < now()`

type TryInsertIdempotencyKeyParams struct {
	Key         uuid.UUID
	OperatorID  int64
	Endpoint    string
	RequestHash string
	ExpiresAt   pgtype.Timestamptz
}

// TryInsertIdempotencyKey claims the key, taking over an expired one. It
// returns 0 when a live key already exists.
func (q *Queries) TryInsertIdempotencyKey(ctx context.Context, db DBTX, arg TryInsertIdempotencyKeyParams) (int64, error) {
	tag, err := db.Exec(ctx, tryInsertIdempotencyKey,
		arg.Key,
		arg.OperatorID,
		arg.Endpoint,
		arg.RequestHash,
		arg.ExpiresAt,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const getIdempotencyKey = `
SELECT key, operator_id, endpoint, request_hash, status, result_record_id, expires_at, created_at, updated_at
FROM idempotency_keys
WHERE key = $1 AND operator_id = $2`

type GetIdempotencyKeyParams struct {
	Key        uuid.UUID
	OperatorID int64
}

func (q *Queries) GetIdempotencyKey(ctx context.Context, db DBTX, arg GetIdempotencyKeyParams) (IdempotencyKeys, error) {
	row := db.QueryRow(ctx, getIdempotencyKey, arg.Key, arg.OperatorID)
	var i IdempotencyKeys
	err := row.Scan(
		&i.Key,
		&i.OperatorID,
		&i.Endpoint,
		&i.RequestHash,
		&i.Status,
		&i.ResultRecordID,
		&i.ExpiresAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateIdempotencyKeyCompleted = `
UPDATE idempotency_keys
SET status = 'completed', result_record_id = $3, updated_at = now()
WHERE key = $1 AND operator_id = $2`

type UpdateIdempotencyKeyCompletedParams struct {
	Key            uuid.UUID
	OperatorID     int64
	ResultRecordID pgtype.UUID
}

func (q *Queries) UpdateIdempotencyKeyCompleted(ctx context.Context, db DBTX, arg UpdateIdempotencyKeyCompletedParams) (int64, error) {
	tag, err := db.Exec(ctx, updateIdempotencyKeyCompleted, arg.Key, arg.OperatorID, arg.ResultRecordID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteProcessingIdempotencyKey = `
DELETE FROM idempotency_keys
WHERE key = $1 AND operator_id = $2 AND status = 'processing'`

func (q *Queries) DeleteProcessingIdempotencyKey(ctx context.Context, db DBTX, arg GetIdempotencyKeyParams) error {
	_, err := db.Exec(ctx, deleteProcessingIdempotencyKey, arg.Key, arg.OperatorID)
	return err
}

const deleteExpiredIdempotencyKeys = `DELETE FROM idempotency_keys WHERE expires_at < now()`

func (q *Queries) DeleteExpiredIdempotencyKeys(ctx context.Context, db DBTX) (int64, error) {
	tag, err := db.Exec(ctx, deleteExpiredIdempotencyKeys)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
