package api

import (
	"net/http"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/handler/httperr"
	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidID            = errs.New("invalid path id")
	errMissingIdentity      = errs.New("identity missing from context")
	errInvalidIdempotencyID = errs.New("idempotency key is not a uuid")
)

type errorMapping struct {
	target  error
	status  int
	message string
}

var errorMappings = []errorMapping{
	{errs.ErrDraftNotFound, http.StatusNotFound, "Draft not found"},
	{errs.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{errs.ErrUpstreamNotFound, http.StatusNotFound, "Requested PMS resource not found"},
	{errs.ErrDraftForbidden, http.StatusForbidden, "Draft belongs to another operator"},
	{errs.ErrInsufficientRole, http.StatusForbidden, "Insufficient permissions"},
	{errs.ErrDraftConflict, http.StatusConflict, "Draft was modified concurrently. Please retry."},
	{errs.ErrIdempotencyInProgress, http.StatusConflict, "Booking request is currently being processed"},
	{errs.ErrSubmitInProgress, http.StatusConflict, "Draft is already being submitted"},
	{errs.ErrIdempotencyKeyReused, http.StatusUnprocessableEntity, "Idempotency key was used for a different request"},
	{errs.ErrSlotNotSelectable, http.StatusUnprocessableEntity, "Slot cannot be selected under the booking rule"},
	{errs.ErrUnknownSlot, http.StatusUnprocessableEntity, "Slot is not offered for this date"},
	{errs.ErrIdempotencyKeyRequired, http.StatusBadRequest, "Idempotency-Key header required"},
	{errs.ErrInvalidUserType, http.StatusBadRequest, "Invalid user type"},
	{errs.ErrInvalidPaymentType, http.StatusBadRequest, "Invalid payment method"},
	{queries.ErrInvalidCursor, http.StatusBadRequest, "Invalid cursor"},
	{errs.ErrUpstreamUnauthorized, http.StatusUnauthorized, "PMS rejected the operator credentials"},
	{errs.ErrUpstreamUnavailable, http.StatusBadGateway, "PMS is unavailable. Please retry."},
}

// abortWithUseCaseError translates a usecase error into the public response.
func abortWithUseCaseError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrDomainValidation):
		msg, ok := booking.UserMessage(err)
		if !ok {
			msg = "Booking is incomplete"
		}
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, msg, nil)
		return
	case errs.Is(err, errs.ErrUpstreamRejected):
		msg, ok := infra.MessageOf(err)
		if !ok || msg == "" {
			msg = "PMS rejected the booking"
		}
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, msg, nil)
		return
	}

	for _, m := range errorMappings {
		if errs.Is(err, m.target) {
			httperr.AbortWithError(c, m.status, err, m.message, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

func abortBadRequest(c *gin.Context, err error, msg string) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, msg, err.Error())
}
