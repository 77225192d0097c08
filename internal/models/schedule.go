package models

import (
	"errors"
	"time"
)

// ScheduleStatus represents the server-owned status of a departure schedule
type ScheduleStatus string

const (
	ScheduleStatusPending   ScheduleStatus = "pending"
	ScheduleStatusOngoing   ScheduleStatus = "ongoing"
	ScheduleStatusCompleted ScheduleStatus = "completed"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
)

// Schedule represents a per-tour departure schedule.
// Transitions are server-authoritative; the client only mirrors advisory
// eligibility for showing actions.
type Schedule struct {
	ID                  string         `json:"id"`
	TourID              string         `json:"tour_id"`
	DepartureDatetime   time.Time      `json:"departure_datetime"`
	ReturnDatetime      time.Time      `json:"return_datetime"` // derived from tour duration
	MaxSlots            int            `json:"max_slots"`
	SlotsBooked         int            `json:"slots_booked"`
	SlotsAvailable      int            `json:"slots_available"`
	IsActive            bool           `json:"is_active"`
	Status              ScheduleStatus `json:"status"`
	BookingCount        int            `json:"booking_count"`
	OccupancyPercentage float64        `json:"occupancy_percentage"`
}

// CreateScheduleRequest represents the admin form for a new departure schedule
type CreateScheduleRequest struct {
	TourID            string    `json:"tour_id"`
	DepartureDatetime time.Time `json:"departure_datetime"`
	MaxSlots          int       `json:"max_slots"`
}

// Validate validates the create schedule request
func (r *CreateScheduleRequest) Validate() error {
	if r.TourID == "" {
		return errors.New("tour_id is required")
	}
	if r.DepartureDatetime.IsZero() {
		return errors.New("departure_datetime is required")
	}
	if r.MaxSlots < 1 {
		return errors.New("max_slots must be at least 1")
	}
	return nil
}

// ScheduleActionResponse is the server's reply to a state-transition command.
// Revenue and refund figures are display-only; the client never recomputes them.
type ScheduleActionResponse struct {
	Success                 bool    `json:"success"`
	Message                 string  `json:"message,omitempty"`
	TotalRevenueDistributed float64 `json:"total_revenue_distributed,omitempty"`
	CancelledBookingsCount  int     `json:"cancelled_bookings_count,omitempty"`
}
