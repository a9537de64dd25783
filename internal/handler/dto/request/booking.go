package request

import (
	"facility-booking/internal/pkg/patch"
	"facility-booking/internal/usecase/queries"
)

type ListBookingsRequest struct {
	FacilityID *int64  `form:"facility_id" binding:"omitempty,min=1"`
	UserType   *string `form:"user_type" binding:"omitempty,oneof=occupant guest fm"`
	Status     *string `form:"status"`
	Limit      *int    `form:"limit" binding:"omitempty,min=1,max=200"`
	After      string  `form:"after"`
}

func (r ListBookingsRequest) ToParams() queries.ListBookingsParams {
	params := queries.ListBookingsParams{
		FacilityID: r.FacilityID,
		UserType:   r.UserType,
		Status:     r.Status,
		Limit:      patch.CoalescePositive(r.Limit, queries.DefaultListLimit),
	}
	if r.After != "" {
		params.After = &queries.Cursor{After: r.After}
	}
	return params
}
