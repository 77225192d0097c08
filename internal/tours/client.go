// Package tours wraps the admin tour endpoints: tour CRUD, the
// available-services catalogue and server-side price calculation.
package tours

import (
	"context"
	"fmt"
	"net/url"

	"github.com/voyara/voyara-client/internal/api"
	"github.com/voyara/voyara-client/internal/models"
)

// Client calls the admin tour endpoints
type Client struct {
	api *api.Client
}

// NewClient creates a tour client on top of the shared API client
func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// List fetches all tours visible to the admin
func (c *Client) List(ctx context.Context) ([]models.Tour, error) {
	var tours []models.Tour
	if err := c.api.Get(ctx, "/admin/tours", &tours); err != nil {
		return nil, fmt.Errorf("failed to list tours: %w", err)
	}
	return tours, nil
}

// Get fetches a single tour by id
func (c *Client) Get(ctx context.Context, id string) (models.Tour, error) {
	var tour models.Tour
	if err := c.api.Get(ctx, "/admin/tours/"+url.PathEscape(id), &tour); err != nil {
		return models.Tour{}, fmt.Errorf("failed to fetch tour %s: %w", id, err)
	}
	return tour, nil
}

// Create submits a new tour as one unit; the server assigns its identity
func (c *Client) Create(ctx context.Context, tour models.Tour) (models.Tour, error) {
	if err := tour.Validate(); err != nil {
		return models.Tour{}, fmt.Errorf("invalid tour: %w", err)
	}
	var created models.Tour
	if err := c.api.Post(ctx, "/admin/tours", tour, &created); err != nil {
		return models.Tour{}, fmt.Errorf("failed to create tour: %w", err)
	}
	return created, nil
}

// Update replaces an existing tour definition
func (c *Client) Update(ctx context.Context, tour models.Tour) (models.Tour, error) {
	if tour.ID == "" {
		return models.Tour{}, fmt.Errorf("tour id is required for update")
	}
	if err := tour.Validate(); err != nil {
		return models.Tour{}, fmt.Errorf("invalid tour: %w", err)
	}
	var updated models.Tour
	if err := c.api.Put(ctx, "/admin/tours/"+url.PathEscape(tour.ID), tour, &updated); err != nil {
		return models.Tour{}, fmt.Errorf("failed to update tour %s: %w", tour.ID, err)
	}
	return updated, nil
}

// Delete removes a tour
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.api.Delete(ctx, "/admin/tours/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete tour %s: %w", id, err)
	}
	return nil
}

// AvailableServices queries partner services for the composer, optionally
// filtered by service type (accommodation, restaurant, transportation)
func (c *Client) AvailableServices(ctx context.Context, destinationCityID, departureCityID, serviceType string) ([]models.TourService, error) {
	query := url.Values{}
	query.Set("destination_city_id", destinationCityID)
	query.Set("departure_city_id", departureCityID)
	if serviceType != "" {
		query.Set("service_type", serviceType)
	}

	var services []models.TourService
	if err := c.api.Get(ctx, "/admin/tours/available-services?"+query.Encode(), &services); err != nil {
		return nil, fmt.Errorf("failed to fetch available services: %w", err)
	}
	return services, nil
}

// CalculatePrice asks the server to price the given selections. The
// response is stored verbatim by the caller; the client never validates
// the numbers.
func (c *Client) CalculatePrice(ctx context.Context, req models.PriceRequest) (models.PriceQuote, error) {
	var quote models.PriceQuote
	if err := c.api.Post(ctx, "/admin/tours/calculate-price", req, &quote); err != nil {
		return models.PriceQuote{}, fmt.Errorf("failed to calculate price: %w", err)
	}
	return quote, nil
}
