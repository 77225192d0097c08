// Package promotions wraps the promotion endpoints: the admin list and the
// public homepage banners and promo codes.
package promotions

import (
	"context"
	"fmt"
	"net/url"

	"github.com/voyara/voyara-client/internal/api"
	"github.com/voyara/voyara-client/internal/models"
)

// Client calls the promotion endpoints
type Client struct {
	api *api.Client
}

// NewClient creates a promotion client on top of the shared API client
func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// List fetches all promotions for the admin back-office
func (c *Client) List(ctx context.Context) ([]models.Promotion, error) {
	var promotions []models.Promotion
	if err := c.api.Get(ctx, "/promotions", &promotions); err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}
	return promotions, nil
}

// Homepage fetches the public homepage payload: banners plus promo codes
func (c *Client) Homepage(ctx context.Context) (models.HomepagePromotions, error) {
	var homepage models.HomepagePromotions
	if err := c.api.Get(ctx, "/promotions/homepage", &homepage); err != nil {
		return models.HomepagePromotions{}, fmt.Errorf("failed to fetch homepage promotions: %w", err)
	}
	return homepage, nil
}

// Create adds a promotion
func (c *Client) Create(ctx context.Context, promo models.Promotion) (models.Promotion, error) {
	if err := promo.Validate(); err != nil {
		return models.Promotion{}, fmt.Errorf("invalid promotion: %w", err)
	}
	var created models.Promotion
	if err := c.api.Post(ctx, "/promotions", promo, &created); err != nil {
		return models.Promotion{}, fmt.Errorf("failed to create promotion: %w", err)
	}
	return created, nil
}

// Update replaces a promotion
func (c *Client) Update(ctx context.Context, promo models.Promotion) (models.Promotion, error) {
	if promo.ID == "" {
		return models.Promotion{}, fmt.Errorf("promotion id is required for update")
	}
	if err := promo.Validate(); err != nil {
		return models.Promotion{}, fmt.Errorf("invalid promotion: %w", err)
	}
	var updated models.Promotion
	if err := c.api.Put(ctx, "/promotions/"+url.PathEscape(promo.ID), promo, &updated); err != nil {
		return models.Promotion{}, fmt.Errorf("failed to update promotion %s: %w", promo.ID, err)
	}
	return updated, nil
}

// Delete removes a promotion
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.api.Delete(ctx, "/promotions/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete promotion %s: %w", id, err)
	}
	return nil
}
