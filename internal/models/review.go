package models

import (
	"errors"
	"time"
)

// ServiceReviewRequest submits a review for one service of a booking.
// The server enforces one review per (booking, tour_service) pair; the client
// filters already-reviewed services out before rendering the form.
type ServiceReviewRequest struct {
	BookingID     string   `json:"booking_id"`
	TourServiceID string   `json:"tour_service_id"`
	Rating        int      `json:"rating"`
	ReviewText    string   `json:"review_text"`
	ReviewImages  []string `json:"review_images,omitempty"`
}

// Validate validates the review submission
func (r *ServiceReviewRequest) Validate() error {
	if r.TourServiceID == "" {
		return errors.New("tour_service_id is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}

// Review represents a submitted review as returned by the backend
type Review struct {
	ID            string    `json:"id"`
	BookingID     string    `json:"booking_id,omitempty"`
	TourServiceID string    `json:"tour_service_id,omitempty"`
	TourID        string    `json:"tour_id,omitempty"`
	PartnerID     string    `json:"partner_id,omitempty"`
	Author        string    `json:"author"`
	Rating        int       `json:"rating"`
	ReviewText    string    `json:"review_text"`
	ReviewImages  []string  `json:"review_images,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
