package composer

import (
	"context"
	"fmt"

	"github.com/voyara/voyara-client/internal/models"
)

// ShouldRequestQuote reports whether the current selections warrant a
// server-side price calculation. A quote is requested when any of these
// hold: an accommodation with a room booked, at least one restaurant with
// at least one set meal, or a transportation service.
func (c *Composer) ShouldRequestQuote() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shouldRequestQuoteLocked()
}

func (c *Composer) shouldRequestQuoteLocked() bool {
	s := c.draft.Services
	if s.Accommodation != nil && c.draft.RoomBooking != nil &&
		c.draft.RoomBooking.RoomID != "" && c.draft.RoomBooking.Quantity > 0 {
		return true
	}
	if len(s.Restaurants) > 0 && len(c.draft.SetMeals) > 0 {
		return true
	}
	if s.Transportation != nil {
		return true
	}
	return false
}

// BuildPriceRequest assembles the pricing payload from the current draft
func (c *Composer) BuildPriceRequest() models.PriceRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buildPriceRequestLocked()
}

func (c *Composer) buildPriceRequestLocked() models.PriceRequest {
	roomBookings := []models.RoomBooking{}
	if c.draft.RoomBooking != nil && c.draft.RoomBooking.RoomID != "" {
		roomBookings = append(roomBookings, *c.draft.RoomBooking)
	}
	setMeals := make([]models.SetMealSelection, len(c.draft.SetMeals))
	copy(setMeals, c.draft.SetMeals)
	return models.PriceRequest{
		Services:         c.draft.Services,
		RoomBookings:     roomBookings,
		SelectedSetMeals: setMeals,
		Duration:         c.draft.Duration,
		NumberOfMembers:  c.draft.NumberOfMembers,
	}
}

// RefreshQuote re-requests the price for the current selections. When the
// selections do not warrant a quote the displayed price resets to zero
// without a server round trip. Responses are applied in issue order: a
// response that arrives after a newer request has been issued is discarded,
// so concurrent edits cannot leave a stale price displayed.
func (c *Composer) RefreshQuote(ctx context.Context) (models.PriceQuote, error) {
	c.mu.Lock()
	if !c.shouldRequestQuoteLocked() {
		c.quote = models.PriceQuote{}
		c.hasQuote = false
		c.mu.Unlock()
		return models.PriceQuote{}, nil
	}

	c.nextSeq++
	seq := c.nextSeq
	req := c.buildPriceRequestLocked()
	c.mu.Unlock()

	quote, err := c.pricing.CalculatePrice(ctx, req)
	if err != nil {
		// Last known quote stays displayed; the caller decides how to
		// surface the failure.
		c.logger.WithError(err).Warn("price calculation failed")
		return models.PriceQuote{}, fmt.Errorf("price calculation failed: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Apply only if this is still the newest request; responses to
	// superseded requests are discarded.
	if seq == c.nextSeq && seq > c.appliedSeq {
		c.appliedSeq = seq
		c.quote = quote
		c.hasQuote = true
	}
	return c.quote, nil
}

// Quote returns the last applied quote and whether one is held
func (c *Composer) Quote() (models.PriceQuote, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quote, c.hasQuote
}
