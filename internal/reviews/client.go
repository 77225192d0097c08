// Package reviews wraps the review endpoints for services, tours and
// partners, including admin moderation.
package reviews

import (
	"context"
	"fmt"
	"net/url"

	"github.com/voyara/voyara-client/internal/api"
	"github.com/voyara/voyara-client/internal/models"
)

// Client calls the review endpoints
type Client struct {
	api *api.Client
}

// NewClient creates a review client on top of the shared API client
func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// SubmitServiceReview submits a review for one service of a booking. The
// server enforces one review per (booking, tour_service) pair.
func (c *Client) SubmitServiceReview(ctx context.Context, req models.ServiceReviewRequest) (models.Review, error) {
	if err := req.Validate(); err != nil {
		return models.Review{}, fmt.Errorf("invalid review: %w", err)
	}
	var review models.Review
	if err := c.api.Post(ctx, "/reviews/services", req, &review); err != nil {
		return models.Review{}, fmt.Errorf("failed to submit review: %w", err)
	}
	return review, nil
}

// DeleteReview removes a review (admin moderation)
func (c *Client) DeleteReview(ctx context.Context, id string) error {
	if err := c.api.Delete(ctx, "/reviews/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete review %s: %w", id, err)
	}
	return nil
}

// TourReviews fetches the reviews of a tour
func (c *Client) TourReviews(ctx context.Context, tourID string) ([]models.Review, error) {
	var reviews []models.Review
	path := "/tours/" + url.PathEscape(tourID) + "/reviews"
	if err := c.api.Get(ctx, path, &reviews); err != nil {
		return nil, fmt.Errorf("failed to fetch reviews for tour %s: %w", tourID, err)
	}
	return reviews, nil
}

// PartnerReviews fetches the reviews of a partner
func (c *Client) PartnerReviews(ctx context.Context, partnerID string) ([]models.Review, error) {
	var reviews []models.Review
	path := "/partner/" + url.PathEscape(partnerID) + "/reviews"
	if err := c.api.Get(ctx, path, &reviews); err != nil {
		return nil, fmt.Errorf("failed to fetch reviews for partner %s: %w", partnerID, err)
	}
	return reviews, nil
}

// PendingServices filters a booking's services down to those the booking
// has not reviewed yet, so the review form never offers an
// already-reviewed service.
func PendingServices(bookingID string, services []models.TourService, existing []models.Review) []models.TourService {
	reviewed := make(map[string]bool, len(existing))
	for _, r := range existing {
		if r.BookingID == bookingID {
			reviewed[r.TourServiceID] = true
		}
	}

	var pending []models.TourService
	for _, s := range services {
		if !reviewed[s.ID] {
			pending = append(pending, s)
		}
	}
	return pending
}
