package booking

import (
	"time"

	"github.com/google/uuid"
)

// Record is a booking accepted upstream, kept locally for history and replay.
type Record struct {
	id         uuid.UUID
	externalID int64
	draftID    uuid.UUID
	operatorID int64
	submission Submission
	status     Status
	currency   string
	createdAt  time.Time
}

func NewRecord(externalID int64, draftID uuid.UUID, operatorID int64, sub Submission, currency string, now time.Time) *Record {
	return &Record{
		id:         uuid.New(),
		externalID: externalID,
		draftID:    draftID,
		operatorID: operatorID,
		submission: sub,
		status:     StatusFor(sub.PaymentMethod),
		currency:   currency,
		createdAt:  now,
	}
}

func (r *Record) ID() uuid.UUID           { return r.id }
func (r *Record) ExternalID() int64       { return r.externalID }
func (r *Record) DraftID() uuid.UUID      { return r.draftID }
func (r *Record) OperatorID() int64       { return r.operatorID }
func (r *Record) Submission() *Submission { return &r.submission }
func (r *Record) Status() Status          { return r.status }
func (r *Record) Currency() string        { return r.currency }
func (r *Record) CreatedAt() time.Time    { return r.createdAt }
