package booking

import (
	"errors"
	"time"
	"unicode/utf8"
)

const MaxCommentLength = 255

// Validation failures, checked in declaration order. The first one wins.
var (
	ErrUserRequired          = errors.New("user required")
	ErrFacilityRequired      = errors.New("facility required")
	ErrDateRequired          = errors.New("date required")
	ErrCommentTooLong        = errors.New("comment too long")
	ErrPaymentMethodRequired = errors.New("payment method required")
	ErrPaymentMethodDisabled = errors.New("payment method not enabled for facility")
	ErrComplementaryReason   = errors.New("complementary reason required")
	ErrSlotRequired          = errors.New("slot required")
)

var userMessages = map[error]string{
	ErrUserRequired:          "Please select a user",
	ErrFacilityRequired:      "Please select a facility",
	ErrDateRequired:          "Please select a date",
	ErrCommentTooLong:        "Comment should not exceed 255 characters",
	ErrPaymentMethodRequired: "Please select a payment method",
	ErrPaymentMethodDisabled: "Selected payment method is not available for this facility",
	ErrComplementaryReason:   "Please enter a reason for complementary booking",
	ErrSlotRequired:          "Please select at least one slot",
}

// UserMessage returns the operator-facing text for a validation failure.
func UserMessage(err error) (string, bool) {
	for sentinel, msg := range userMessages {
		if errors.Is(err, sentinel) {
			return msg, true
		}
	}
	return "", false
}

func IsValidationError(err error) bool {
	_, ok := UserMessage(err)
	return ok
}

type MemberLevel string

const (
	MemberPrimary   MemberLevel = "primary"
	MemberSecondary MemberLevel = "secondary"
)

type BookedMember struct {
	UserID int64
	Level  MemberLevel
}

type SubmissionInput struct {
	UserID              int64
	FacilityID          int64
	SiteID              int64
	EntityID            *int64
	Date                time.Time
	Selection           SelectionState
	PaymentMethod       PaymentMethod
	Payments            PaymentOptions
	Comment             string
	ComplementaryReason string
	Members             []BookedMember
	// MemberRate is the per-member charge reported for each booked member.
	MemberRate float64
}

func Validate(in SubmissionInput) error {
	switch {
	case in.UserID <= 0:
		return ErrUserRequired
	case in.FacilityID <= 0:
		return ErrFacilityRequired
	case in.Date.IsZero():
		return ErrDateRequired
	case utf8.RuneCountInString(in.Comment) > MaxCommentLength:
		return ErrCommentTooLong
	case in.PaymentMethod == "":
		return ErrPaymentMethodRequired
	case !in.Payments.Allows(in.PaymentMethod):
		return ErrPaymentMethodDisabled
	case in.PaymentMethod == PaymentComplementary && in.ComplementaryReason == "":
		return ErrComplementaryReason
	case len(in.Selection.SelectedSlotIDs) == 0:
		return ErrSlotRequired
	}
	return nil
}

// Submission is the booking as it will be sent upstream. Every amount is
// taken from the CostSummary the operator was shown.
type Submission struct {
	UserID              int64
	UserType            UserType
	FacilityID          int64
	SiteID              int64
	EntityID            *int64
	Date                time.Time
	SlotIDs             []int64
	PrimarySlotID       int64
	PaymentMethod       PaymentMethod
	Comment             string
	ComplementaryReason string
	NumberOfGuests      int
	Members             []BookedMember
	MemberRate          float64
	Summary             CostSummary
}

func BuildSubmission(in SubmissionInput, summary CostSummary) (*Submission, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	slotIDs := make([]int64, len(in.Selection.SelectedSlotIDs))
	copy(slotIDs, in.Selection.SelectedSlotIDs)

	members := make([]BookedMember, len(in.Members))
	copy(members, in.Members)

	return &Submission{
		UserID:              in.UserID,
		UserType:            in.Selection.UserType,
		FacilityID:          in.FacilityID,
		SiteID:              in.SiteID,
		EntityID:            in.EntityID,
		Date:                in.Date,
		SlotIDs:             slotIDs,
		PrimarySlotID:       slotIDs[0],
		PaymentMethod:       in.PaymentMethod,
		Comment:             in.Comment,
		ComplementaryReason: in.ComplementaryReason,
		NumberOfGuests:      in.Selection.NumberOfGuests,
		Members:             members,
		MemberRate:          in.MemberRate,
		Summary:             summary,
	}, nil
}

func (s *Submission) UserCharge() float64  { return s.Summary.Charges.UserCharge }
func (s *Submission) GuestCharge() float64 { return s.Summary.Charges.GuestCharge }

func (s *Submission) PremiumDetails() []SlotChargeLine {
	return s.Summary.Charges.Breakdown
}

// MemberCharges is the member component billed upstream. Only occupants have one.
func (s *Submission) MemberCharges() float64 {
	if s.UserType == UserTypeOccupant {
		return s.UserCharge()
	}
	return 0
}

// GuestCharges bills non-occupant bookers as guests.
func (s *Submission) GuestCharges() float64 {
	if s.UserType == UserTypeOccupant {
		return s.GuestCharge()
	}
	return s.UserCharge()
}

func (s *Submission) MemberCount() int {
	if s.UserType == UserTypeOccupant {
		return 1
	}
	return 0
}
