package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSlotNotSelectable = errors.New("slot not selectable")
	ErrUnknownSlot       = errors.New("slot not offered for this facility and date")
)

// Draft is an in-progress booking owned by one operator.
//
// Generation advances every time the booking context (facility, date, user,
// user type) changes. Reference data fetched for an older generation is
// discarded on arrival. Version is the optimistic-lock counter of the store.
type Draft struct {
	ID         uuid.UUID
	OperatorID int64
	SiteID     int64
	Generation int64
	Version    int64

	UserID     int64
	FacilityID int64
	Date       time.Time
	EntityID   *int64

	Facility *Facility
	Slots    []Slot
	Rule     *BookingRule

	Selection           SelectionState
	PaymentMethod       PaymentMethod
	Comment             string
	ComplementaryReason string
	Members             []BookedMember

	CreatedAt time.Time
	UpdatedAt time.Time
}

type DraftContext struct {
	UserType   UserType
	UserID     int64
	FacilityID int64
	Date       time.Time
	EntityID   *int64
}

func NewDraft(operatorID, siteID int64, bc DraftContext, now time.Time) (*Draft, error) {
	if !bc.UserType.IsValid() {
		return nil, ErrInvalidUserType
	}
	d := &Draft{
		ID:         uuid.New(),
		OperatorID: operatorID,
		SiteID:     siteID,
		Generation: 1,
		UserID:     bc.UserID,
		FacilityID: bc.FacilityID,
		Date:       truncateDate(bc.Date),
		EntityID:   bc.EntityID,
		Selection:  SelectionState{UserType: bc.UserType},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return d, nil
}

func (d *Draft) Context() DraftContext {
	return DraftContext{
		UserType:   d.Selection.UserType,
		UserID:     d.UserID,
		FacilityID: d.FacilityID,
		Date:       d.Date,
		EntityID:   d.EntityID,
	}
}

// ChangeContext switches the booking context. When anything that reference
// data depends on changes, the generation advances and dependent state is
// cleared. Returns whether the generation advanced.
func (d *Draft) ChangeContext(bc DraftContext, now time.Time) (bool, error) {
	if !bc.UserType.IsValid() {
		return false, ErrInvalidUserType
	}
	bc.Date = truncateDate(bc.Date)
	d.EntityID = bc.EntityID
	d.UpdatedAt = now

	facilityChanged := bc.FacilityID != d.FacilityID
	userChanged := bc.UserID != d.UserID || bc.UserType != d.Selection.UserType
	dateChanged := !bc.Date.Equal(d.Date)
	if !facilityChanged && !userChanged && !dateChanged {
		return false, nil
	}

	d.Generation++
	d.UserID = bc.UserID
	d.FacilityID = bc.FacilityID
	d.Date = bc.Date
	d.Selection.UserType = bc.UserType
	d.Selection.Clear()
	d.Slots = nil
	if facilityChanged {
		d.Facility = nil
		d.PaymentMethod = ""
	}
	if facilityChanged || userChanged {
		d.Rule = nil
	}
	if userChanged {
		d.Members = nil
	}
	return true, nil
}

func (d *Draft) NeedsFacility() bool { return d.FacilityID > 0 }
func (d *Draft) NeedsSlots() bool    { return d.FacilityID > 0 && !d.Date.IsZero() }
func (d *Draft) NeedsRule() bool     { return d.FacilityID > 0 && d.UserID > 0 }

// ReferenceData is what was fetched for one generation. Nil fields were not fetched.
type ReferenceData struct {
	Generation int64
	Facility   *Facility
	Slots      []Slot
	SlotsSet   bool
	Rule       *BookingRule
}

// ApplyReferenceData installs fetched data when it belongs to the current
// generation. Stale data is ignored and false is returned.
func (d *Draft) ApplyReferenceData(ref ReferenceData, now time.Time) bool {
	if ref.Generation != d.Generation {
		return false
	}
	if ref.Facility != nil {
		d.Facility = ref.Facility
		d.Selection.NumberOfGuests = ClampGuests(d.Selection.NumberOfGuests, ref.Facility.MaxPeople)
		if d.PaymentMethod != "" && !ref.Facility.Payments.Allows(d.PaymentMethod) {
			d.PaymentMethod = ""
		}
	}
	if ref.SlotsSet {
		d.Slots = ref.Slots
		d.Selection.Retain(d.Slots)
	}
	if ref.Rule != nil {
		d.Rule = ref.Rule
		d.Selection.Reconcile(d.Rule)
	}
	d.UpdatedAt = now
	return true
}

func (d *Draft) Charge() FacilityCharge {
	if d.Facility == nil {
		return FacilityCharge{}
	}
	return d.Facility.Charge
}

func (d *Draft) Payments() PaymentOptions {
	if d.Facility == nil {
		return PaymentOptions{}
	}
	return d.Facility.Payments
}

func (d *Draft) MaxPeople() int {
	if d.Facility == nil {
		return 0
	}
	return d.Facility.MaxPeople
}

// ToggleSlot selects or deselects a slot of the loaded slot list.
func (d *Draft) ToggleSlot(slotID int64, now time.Time) error {
	if !d.Selection.IsSelected(slotID) {
		if _, ok := FindSlot(d.Slots, slotID); !ok {
			return ErrUnknownSlot
		}
	}
	if !d.Selection.Toggle(slotID, d.Rule) {
		return ErrSlotNotSelectable
	}
	d.UpdatedAt = now
	return nil
}

func (d *Draft) IsSelectable(slotID int64) bool {
	return IsSlotSelectable(slotID, d.Selection.SelectedSlotIDs, d.Rule)
}

type DraftOptions struct {
	NumberOfGuests      *int
	DiscountPercent     *float64
	PaymentMethod       *PaymentMethod
	Comment             *string
	ComplementaryReason *string
	Members             *[]BookedMember
}

// ApplyOptions clamps numeric inputs at the boundary so the summary can trust them.
func (d *Draft) ApplyOptions(o DraftOptions, now time.Time) {
	if o.NumberOfGuests != nil {
		d.Selection.NumberOfGuests = ClampGuests(*o.NumberOfGuests, d.MaxPeople())
	}
	if o.DiscountPercent != nil {
		d.Selection.DiscountPercent = ClampPercent(*o.DiscountPercent)
	}
	if o.PaymentMethod != nil {
		d.PaymentMethod = *o.PaymentMethod
		if d.PaymentMethod != PaymentComplementary {
			d.ComplementaryReason = ""
		}
	}
	if o.Comment != nil {
		d.Comment = *o.Comment
	}
	if o.ComplementaryReason != nil {
		d.ComplementaryReason = *o.ComplementaryReason
	}
	if o.Members != nil {
		d.Members = append([]BookedMember(nil), (*o.Members)...)
	}
	d.UpdatedAt = now
}

func (d *Draft) Quote() CostSummary {
	return ComputeCostSummary(d.Selection, d.Slots, d.Charge(), d.Rule)
}

func (d *Draft) SubmissionInput() SubmissionInput {
	return SubmissionInput{
		UserID:              d.UserID,
		FacilityID:          d.FacilityID,
		SiteID:              d.SiteID,
		EntityID:            d.EntityID,
		Date:                d.Date,
		Selection:           d.Selection,
		PaymentMethod:       d.PaymentMethod,
		Payments:            d.Payments(),
		Comment:             d.Comment,
		ComplementaryReason: d.ComplementaryReason,
		Members:             d.Members,
		MemberRate:          d.Rule.MemberRate(d.Charge()),
	}
}

// Submission assembles the upstream payload from the same summary Quote returns.
func (d *Draft) Submission() (*Submission, error) {
	return BuildSubmission(d.SubmissionInput(), d.Quote())
}

func truncateDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
