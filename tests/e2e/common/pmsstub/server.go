//go:build e2e

// Package pmsstub serves the subset of the property-management API the
// booking service calls, backed by in-memory fixtures.
package pmsstub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

// Server mirrors facility 33 from the default DraftBuilder.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	nextID   int64
	rejectAs string
	created  []map[string]any
}

func New(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{nextID: 9001}
	r := gin.New()
	r.Use(requireBearer)
	admin := r.Group("/pms/admin")
	admin.GET("/facility_setups/:id", s.facility)
	admin.GET("/facility_setups/:id/get_schedules.json", s.schedules)
	admin.GET("/facility_setups/:id/booking_rule_for_user", s.rule)
	admin.POST("/facility_bookings.json", s.createBooking)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// RejectWith makes the next bookings fail with an upstream validation message.
// An empty message restores acceptance.
func (s *Server) RejectWith(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectAs = msg
}

// Reset forgets accepted bookings and restarts external ids at 9001.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = 9001
	s.rejectAs = ""
	s.created = nil
}

// Created returns the decoded bodies of every accepted booking.
func (s *Server) Created() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.created...)
}

func requireBearer(c *gin.Context) {
	if !strings.HasPrefix(c.GetHeader("Authorization"), bearerPrefix) {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	c.Next()
}

func (s *Server) facility(c *gin.Context) {
	id := strings.TrimSuffix(c.Param("id"), ".json")
	if id != "33" {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"facility_setup": gin.H{
		"id":              33,
		"fac_name":        "Badminton Court",
		"max_people":      "4",
		"gst":             9,
		"sgst":            "9",
		"postpaid":        1,
		"prepaid":         "1",
		"pay_on_facility": 0,
		"complementary":   true,
		"facility_charge": gin.H{
			"adult_member_charge": "200.0",
			"adult_guest_charge":  300,
			"per_slot_charge":     50,
		},
	}})
}

func (s *Server) schedules(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"slots": []gin.H{
		{"id": 101, "start_hour": 6, "start_minute": 0, "end_hour": 7, "end_minute": 0},
		{"id": 102, "start_hour": 7, "start_minute": 0, "end_hour": 8, "end_minute": 0},
		{"id": 103, "start_hour": 18, "start_minute": 0, "end_hour": 19, "end_minute": 0, "is_premium": true, "premium_percentage": "25"},
	}})
}

func (s *Server) rule(c *gin.Context) {
	if _, err := strconv.ParseInt(c.Query("user_id"), 10, 64); err != nil {
		c.Status(http.StatusUnprocessableEntity)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"can_book":               true,
		"multiple_bookings":      true,
		"multiple_booking_count": 3,
		"concurrent_slots":       2,
	})
}

func (s *Server) createBooking(c *gin.Context) {
	var body map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rejectAs != "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": []string{s.rejectAs}})
		return
	}
	s.created = append(s.created, body)
	id := s.nextID
	s.nextID++
	c.JSON(http.StatusCreated, gin.H{"facility_booking": gin.H{"id": id}, "message": "Booking created"})
}
