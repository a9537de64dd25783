package shared

import (
	"context"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/pkg/session"

	"github.com/google/uuid"
)

// DraftStore persists drafts between requests. Save is a compare-and-set on
// Draft.Version and bumps it on success.
type DraftStore interface {
	Create(ctx context.Context, d *booking.Draft) error
	Get(ctx context.Context, id uuid.UUID) (*booking.Draft, error)
	Save(ctx context.Context, d *booking.Draft) error
	Delete(ctx context.Context, id uuid.UUID) error
	// AcquireSubmitLock reports false when another submission holds the draft.
	AcquireSubmitLock(ctx context.Context, id uuid.UUID, token string, ttl time.Duration) (bool, error)
	// ReleaseSubmitLock drops the lock only if token still owns it.
	ReleaseSubmitLock(ctx context.Context, id uuid.UUID, token string) error
}

// PMSGateway is the upstream property-management API.
type PMSGateway interface {
	GetFacility(ctx context.Context, sess session.Context, facilityID int64) (*booking.Facility, error)
	ListSlots(ctx context.Context, sess session.Context, facilityID int64, date time.Time, userID int64) ([]booking.Slot, error)
	GetBookingRule(ctx context.Context, sess session.Context, facilityID, userID int64) (*booking.BookingRule, error)
	CreateBooking(ctx context.Context, sess session.Context, sub *booking.Submission) (*CreatedBooking, error)
}

type CreatedBooking struct {
	ExternalID int64
	Message    string
}

type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, event BookingConfirmed) error
}

type BookingConfirmed struct {
	RecordID      uuid.UUID `json:"record_id"`
	ExternalID    int64     `json:"external_id"`
	OperatorID    int64     `json:"operator_id"`
	SiteID        int64     `json:"site_id"`
	FacilityID    int64     `json:"facility_id"`
	UserID        int64     `json:"user_id"`
	UserType      string    `json:"user_type"`
	Date          string    `json:"date"`
	SlotIDs       []int64   `json:"slot_ids"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	GrandTotal    float64   `json:"grand_total"`
	Currency      string    `json:"currency"`
	OccurredAt    time.Time `json:"occurred_at"`
}
