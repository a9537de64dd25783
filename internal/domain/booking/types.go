package booking

import "errors"

var (
	ErrInvalidUserType      = errors.New("invalid user type")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidStatus        = errors.New("invalid booking status")
)

// UserType is who the booking is made for. It decides the charge basis.
type UserType string

const (
	UserTypeOccupant UserType = "occupant"
	UserTypeGuest    UserType = "guest"
	UserTypeFM       UserType = "fm"
)

func (t UserType) String() string {
	return string(t)
}

func (t UserType) IsValid() bool {
	switch t {
	case UserTypeOccupant, UserTypeGuest, UserTypeFM:
		return true
	default:
		return false
	}
}

// OnBehalfOf is the role label the upstream booking API expects.
func (t UserType) OnBehalfOf() string {
	return string(t) + "-user"
}

func NewUserType(s string) (UserType, error) {
	t := UserType(s)
	if !t.IsValid() {
		return "", ErrInvalidUserType
	}
	return t, nil
}

type PaymentMethod string

const (
	PaymentPostpaid      PaymentMethod = "postpaid"
	PaymentPrepaid       PaymentMethod = "prepaid"
	PaymentOnFacility    PaymentMethod = "pay_on_facility"
	PaymentComplementary PaymentMethod = "complementary"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentPostpaid, PaymentPrepaid, PaymentOnFacility, PaymentComplementary:
		return true
	default:
		return false
	}
}

func NewPaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !m.IsValid() {
		return "", ErrInvalidPaymentMethod
	}
	return m, nil
}

// PaymentOptions lists which payment methods a facility accepts.
type PaymentOptions struct {
	Postpaid      bool
	Prepaid       bool
	PayOnFacility bool
	Complementary bool
}

func (o PaymentOptions) Allows(m PaymentMethod) bool {
	switch m {
	case PaymentPostpaid:
		return o.Postpaid
	case PaymentPrepaid:
		return o.Prepaid
	case PaymentOnFacility:
		return o.PayOnFacility
	case PaymentComplementary:
		return o.Complementary
	default:
		return false
	}
}

func (o PaymentOptions) Enabled() []PaymentMethod {
	methods := make([]PaymentMethod, 0, 4)
	for _, m := range []PaymentMethod{PaymentPostpaid, PaymentPrepaid, PaymentOnFacility, PaymentComplementary} {
		if o.Allows(m) {
			methods = append(methods, m)
		}
	}
	return methods
}

type Status string

const (
	StatusConfirmed      Status = "confirmed"
	StatusPendingPayment Status = "pending_payment"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusPendingPayment:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// StatusFor returns the status a freshly submitted booking starts in.
func StatusFor(m PaymentMethod) Status {
	if m == PaymentPrepaid {
		return StatusPendingPayment
	}
	return StatusConfirmed
}
