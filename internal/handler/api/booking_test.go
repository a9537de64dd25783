//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"facility-booking/internal/domain/operator"
	"facility-booking/internal/handler/api"
	resdto "facility-booking/internal/handler/dto/response"
	"facility-booking/internal/handler/middleware"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/pkg/session"
	"facility-booking/internal/usecase/queries"
	"facility-booking/internal/usecase/readmodel"
	"facility-booking/tests/common/builder"
	"facility-booking/tests/common/httptest"
	queriesmock "facility-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockBookingQueries
	op          *operator.Operator
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)

	op, err := operator.New(501, 7, operator.RoleViewer)
	s.Require().NoError(err)
	s.op = op
	sess := session.New("pms.example.com", "upstream-token", "INR")

	h := api.NewBookingHandler(s.mockQueries)
	g := s.router.Group("/api/bookings", func(c *gin.Context) {
		middleware.SetIdentity(c, s.op, sess)
		c.Next()
	})
	g.GET("", h.List)
	g.GET("/:id", h.Get)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestList() {
	first := builder.NewBookingBuilder().BuildReadModel()
	second := builder.NewBookingBuilder().With(func(r *readmodel.BookingRecord) {
		r.ExternalID = 9002
		r.PaymentMethod = "prepaid"
		r.Status = "pending_payment"
	}).BuildReadModel()

	s.Run("success: maps filters to params and returns the next cursor", func() {
		facilityID := int64(33)
		status := "pending_payment"
		s.mockQueries.EXPECT().ListBookings(gomock.Any(), s.op, queries.ListBookingsParams{
			FacilityID: &facilityID,
			Status:     &status,
			After:      &queries.Cursor{After: "abc"},
			Limit:      2,
		}).Return([]*readmodel.BookingRecord{first, second}, &queries.Cursor{After: "next"}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings?facility_id=33&status=pending_payment&limit=2&after=abc", nil, "")

		var response resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Bookings, 2)
		s.Equal(int64(9002), response.Bookings[1].ExternalID)
		s.Equal("next", response.NextCursor)
	})

	s.Run("success: default limit when omitted", func() {
		s.mockQueries.EXPECT().ListBookings(gomock.Any(), s.op, queries.ListBookingsParams{
			Limit: queries.DefaultListLimit,
		}).Return([]*readmodel.BookingRecord{}, nil, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings", nil, "")

		var response resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response.Bookings)
		s.Empty(response.NextCursor)
	})

	testCases := []struct {
		name  string
		query string
	}{
		{name: "error: limit above maximum", query: "?limit=201"},
		{name: "error: invalid user_type", query: "?user_type=tenant"},
		{name: "error: facility_id is not numeric", query: "?facility_id=abc"},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings"+tc.query, nil, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
		})
	}

	s.Run("error: malformed cursor", func() {
		s.mockQueries.EXPECT().ListBookings(gomock.Any(), s.op, gomock.Any()).
			Return(nil, nil, errs.Mark(errs.New("cursor is not base64url"), queries.ErrInvalidCursor))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings?after=%25%25", nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid cursor")
	})
}

func (s *BookingHandlerTestSuite) TestGet() {
	rec := builder.NewBookingBuilder().BuildReadModel()

	s.Run("success: 200 OK", func() {
		s.mockQueries.EXPECT().GetBooking(gomock.Any(), s.op, rec.ID).Return(rec, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/"+rec.ID.String(), nil, "")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &response)
		s.Equal(rec.ID, response.ID)
		s.Equal(649.0, response.GrandTotal)
		s.Equal([]int64{101}, response.SlotIDs)
		s.Equal("06:00 AM to 07:00 AM", response.PremiumDetails[0].Label)
	})

	s.Run("error: 404 for another site", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetBooking(gomock.Any(), s.op, id).Return(nil, errs.ErrBookingNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/"+id.String(), nil, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: id is not a uuid", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/9001", nil, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid booking id")
	})
}
