package request

import (
	"strings"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/pkg/patch"
	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/queries"
)

const dateLayout = time.DateOnly

type StartDraftRequest struct {
	UserType        string  `json:"user_type" binding:"required"`
	UserID          int64   `json:"user_id" binding:"omitempty,min=0"`
	FacilityID      int64   `json:"facility_id" binding:"omitempty,min=0"`
	Date            string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
	EntityID        *int64  `json:"entity_id,omitempty"`
	NumberOfGuests  int     `json:"number_of_guests"`
	DiscountPercent float64 `json:"discount_percent"`
}

func (r StartDraftRequest) ToParams() (commands.StartDraftParams, error) {
	userType, err := booking.NewUserType(strings.TrimSpace(r.UserType))
	if err != nil {
		return commands.StartDraftParams{}, err
	}
	date, err := parseDate(r.Date)
	if err != nil {
		return commands.StartDraftParams{}, err
	}
	return commands.StartDraftParams{
		Context: booking.DraftContext{
			UserType:   userType,
			UserID:     r.UserID,
			FacilityID: r.FacilityID,
			Date:       date,
			EntityID:   r.EntityID,
		},
		NumberOfGuests:  r.NumberOfGuests,
		DiscountPercent: r.DiscountPercent,
	}, nil
}

// UpdateContextRequest is a partial update; absent fields keep the draft's values.
type UpdateContextRequest struct {
	UserType   *string `json:"user_type,omitempty"`
	UserID     *int64  `json:"user_id,omitempty" binding:"omitempty,min=0"`
	FacilityID *int64  `json:"facility_id,omitempty" binding:"omitempty,min=0"`
	Date       *string `json:"date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	EntityID   *int64  `json:"entity_id,omitempty"`
}

func (r UpdateContextRequest) ToDomain(current *queries.DraftView) (booking.DraftContext, error) {
	userType, err := booking.NewUserType(strings.TrimSpace(patch.Coalesce(r.UserType, current.UserType)))
	if err != nil {
		return booking.DraftContext{}, err
	}

	date := time.Time{}
	if current.Date != nil {
		date = *current.Date
	}
	if r.Date != nil {
		if date, err = parseDate(*r.Date); err != nil {
			return booking.DraftContext{}, err
		}
	}

	entityID := current.EntityID
	if r.EntityID != nil {
		entityID = r.EntityID
	}

	return booking.DraftContext{
		UserType:   userType,
		UserID:     patch.Coalesce(r.UserID, current.UserID),
		FacilityID: patch.Coalesce(r.FacilityID, current.FacilityID),
		Date:       date,
		EntityID:   entityID,
	}, nil
}

type MemberRequest struct {
	UserID int64  `json:"user_id" binding:"required,min=1"`
	Level  string `json:"level" binding:"required,oneof=primary secondary"`
}

type UpdateOptionsRequest struct {
	NumberOfGuests      *int             `json:"number_of_guests,omitempty"`
	DiscountPercent     *float64         `json:"discount_percent,omitempty"`
	PaymentMethod       *string          `json:"payment_method,omitempty"`
	Comment             *string          `json:"comment,omitempty"`
	ComplementaryReason *string          `json:"complementary_reason,omitempty"`
	Members             *[]MemberRequest `json:"members,omitempty" binding:"omitempty,dive"`
}

func (r UpdateOptionsRequest) ToDomain() (booking.DraftOptions, error) {
	opts := booking.DraftOptions{
		NumberOfGuests:      r.NumberOfGuests,
		DiscountPercent:     r.DiscountPercent,
		Comment:             r.Comment,
		ComplementaryReason: r.ComplementaryReason,
	}
	if r.PaymentMethod != nil {
		m, err := booking.NewPaymentMethod(strings.TrimSpace(*r.PaymentMethod))
		if err != nil {
			return booking.DraftOptions{}, err
		}
		opts.PaymentMethod = &m
	}
	if r.Members != nil {
		members := make([]booking.BookedMember, 0, len(*r.Members))
		for _, m := range *r.Members {
			members = append(members, booking.BookedMember{
				UserID: m.UserID,
				Level:  booking.MemberLevel(m.Level),
			})
		}
		opts.Members = &members
	}
	return opts, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}
