// Package pms talks to the upstream property-management API that owns
// facilities, schedules, booking rules and the bookings themselves.
//
// Every call takes the session.Context of the request it serves. The client
// holds no host or token of its own.
package pms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/config"
	"facility-booking/internal/pkg/session"
	"facility-booking/internal/usecase/shared"
)

const maxBodyBytes = 1 << 20

type Client struct {
	http *http.Client
}

func NewClient(cfg config.PMSConfig) *Client {
	return &Client{http: &http.Client{Timeout: cfg.Timeout}}
}

var _ shared.PMSGateway = (*Client)(nil)

func (c *Client) GetFacility(ctx context.Context, sess session.Context, facilityID int64) (*booking.Facility, error) {
	var env facilityEnvelope
	path := fmt.Sprintf("/pms/admin/facility_setups/%d.json", facilityID)
	if err := c.getJSON(ctx, sess, path, nil, &env); err != nil {
		return nil, err
	}
	if env.FacilitySetup == nil {
		return nil, infra.WrapRepoErr("facility setup missing from response", nil, infra.KindNotFound)
	}
	fac := env.FacilitySetup.toDomain()
	if fac.ID == 0 {
		fac.ID = facilityID
	}
	return fac, nil
}

func (c *Client) ListSlots(ctx context.Context, sess session.Context, facilityID int64, date time.Time, userID int64) ([]booking.Slot, error) {
	q := url.Values{}
	q.Set("on_date", date.Format(upstreamDateLayout))
	if userID > 0 {
		q.Set("user_id", strconv.FormatInt(userID, 10))
	}

	var env slotsEnvelope
	path := fmt.Sprintf("/pms/admin/facility_setups/%d/get_schedules.json", facilityID)
	if err := c.getJSON(ctx, sess, path, q, &env); err != nil {
		return nil, err
	}

	slots := make([]booking.Slot, 0, len(env.Slots))
	for _, s := range env.Slots {
		slots = append(slots, s.toDomain())
	}
	return slots, nil
}

func (c *Client) GetBookingRule(ctx context.Context, sess session.Context, facilityID, userID int64) (*booking.BookingRule, error) {
	q := url.Values{}
	q.Set("user_id", strconv.FormatInt(userID, 10))

	var dto bookingRuleDTO
	path := fmt.Sprintf("/pms/admin/facility_setups/%d/booking_rule_for_user", facilityID)
	if err := c.getJSON(ctx, sess, path, q, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain(), nil
}

// CreateBooking posts the submission once. A 2xx response that carries an
// error field is treated as a rejection.
func (c *Client) CreateBooking(ctx context.Context, sess session.Context, sub *booking.Submission) (*shared.CreatedBooking, error) {
	body, err := json.Marshal(newCreateBookingRequest(sub))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to encode booking payload", err, infra.KindUpstreamFailure)
	}

	var resp createBookingResponse
	if err := c.do(ctx, sess, http.MethodPost, "/pms/admin/facility_bookings.json", nil, body, &resp); err != nil {
		return nil, err
	}
	if msg := resp.errorText(); msg != "" {
		return nil, infra.WrapRepoErr(msg, nil, infra.KindUpstreamRejected)
	}

	id := resp.bookingID()
	if id == 0 {
		return nil, infra.WrapRepoErr("booking id missing from response", nil, infra.KindUpstreamFailure)
	}
	return &shared.CreatedBooking{ExternalID: id, Message: str(resp.Message)}, nil
}

func (c *Client) getJSON(ctx context.Context, sess session.Context, path string, q url.Values, out any) error {
	return c.do(ctx, sess, http.MethodGet, path, q, nil, out)
}

func (c *Client) do(ctx context.Context, sess session.Context, method, path string, q url.Values, body []byte, out any) error {
	if !sess.Valid() {
		return infra.WrapRepoErr("session context missing", session.ErrMissingSession, infra.KindUnauthorized)
	}

	target := sess.BaseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return infra.WrapRepoErr("failed to build upstream request", err, infra.KindUpstreamFailure)
	}
	req.Header.Set("Authorization", "Bearer "+sess.AuthToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return infra.WrapRepoErr("upstream request failed", err, infra.KindUpstreamFailure)
	}
	defer res.Body.Close()

	slog.Debug("pms call",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", res.StatusCode),
		slog.Duration("elapsed", time.Since(start)))

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return infra.WrapRepoErr("failed to read upstream response", err, infra.KindUpstreamFailure)
	}

	if err := statusError(res.StatusCode, raw); err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return infra.WrapRepoErr("failed to decode upstream response", err, infra.KindUpstreamFailure)
	}
	return nil
}

func statusError(code int, raw []byte) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return infra.WrapRepoErr(fmt.Sprintf("upstream refused credentials (%d)", code), nil, infra.KindUnauthorized)
	case code == http.StatusNotFound:
		return infra.WrapRepoErr("upstream resource not found", nil, infra.KindNotFound)
	case code == http.StatusUnprocessableEntity:
		var resp createBookingResponse
		if json.Unmarshal(raw, &resp) == nil {
			if msg := resp.errorText(); msg != "" {
				return infra.WrapRepoErr(msg, nil, infra.KindUpstreamRejected)
			}
		}
		return infra.WrapRepoErr("upstream rejected the request", nil, infra.KindUpstreamRejected)
	default:
		return infra.WrapRepoErr(fmt.Sprintf("upstream returned %d", code), nil, infra.KindUpstreamFailure)
	}
}
