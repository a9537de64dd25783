package shared

import (
	"context"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/infra/store"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx store.DBTX) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db store.DBTX) error) error
}

type BookingRecordRepository interface {
	Create(ctx context.Context, tx store.DBTX, rec *booking.Record) (uuid.UUID, error)
}

type IdempotencyRepository interface {
	// TryInsert reports whether the key was claimed by this call.
	TryInsert(ctx context.Context, key uuid.UUID, operatorID int64, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Get(ctx context.Context, key uuid.UUID, operatorID int64) (*IdempotencyRecord, error)
	MarkCompleted(ctx context.Context, tx store.DBTX, key uuid.UUID, operatorID int64, recordID uuid.UUID) error
	// Release drops a key still in processing so the operator can retry after an upstream failure.
	Release(ctx context.Context, key uuid.UUID, operatorID int64) error
}

type IdempotencySweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

const (
	IdempotencyProcessing = "processing"
	IdempotencyCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key            uuid.UUID
	OperatorID     int64
	Status         string
	RequestHash    string
	ResultRecordID *uuid.UUID
	ExpiresAt      time.Time
}
