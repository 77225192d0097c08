package composer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyara/voyara-client/internal/models"
)

func TestShouldRequestQuote(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(c *Composer)
		expected bool
	}{
		{
			name:     "nothing selected",
			setup:    func(c *Composer) {},
			expected: false,
		},
		{
			name: "accommodation without room",
			setup: func(c *Composer) {
				c.SelectAccommodation("svc-hotel-1", "")
			},
			expected: false,
		},
		{
			name: "accommodation with room booked",
			setup: func(c *Composer) {
				c.SelectAccommodation("svc-hotel-1", "")
				_ = c.SelectRoom(models.Room{ID: "room-1", RoomType: "Standard"}, 2)
			},
			expected: true,
		},
		{
			name: "restaurant without set meal",
			setup: func(c *Composer) {
				c.AddDay("Day one", "")
				_ = c.SelectRestaurant("svc-rest-1", 1, "")
			},
			expected: false,
		},
		{
			name: "restaurant with set meal",
			setup: func(c *Composer) {
				c.AddDay("Day one", "")
				_ = c.SelectRestaurant("svc-rest-1", 1, "")
				_ = c.SelectSetMeal(models.SetMealSelection{SetMealID: "meal-1", DayNumber: 1, MealSession: models.MealSessionNoon})
			},
			expected: true,
		},
		{
			name: "transportation alone",
			setup: func(c *Composer) {
				c.SelectTransportation("svc-bus-1", "")
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestComposer(&fakePricing{})
			tt.setup(c)
			assert.Equal(t, tt.expected, c.ShouldRequestQuote())
		})
	}
}

func TestRefreshQuote_NoSelectionsSkipsServer(t *testing.T) {
	pricing := &fakePricing{quote: models.PriceQuote{TotalPrice: 999}}
	c := newTestComposer(pricing)

	quote, err := c.RefreshQuote(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.0, quote.TotalPrice)
	assert.Zero(t, pricing.calls, "no network call when nothing is priceable")

	_, has := c.Quote()
	assert.False(t, has)
}

func TestRefreshQuote_ResetsStaleQuoteWhenSelectionsCleared(t *testing.T) {
	pricing := &fakePricing{quote: models.PriceQuote{TotalPrice: 500}}
	c := newTestComposer(pricing)
	c.SelectTransportation("svc-bus-1", "")

	_, err := c.RefreshQuote(context.Background())
	require.NoError(t, err)
	quote, has := c.Quote()
	require.True(t, has)
	assert.Equal(t, 500.0, quote.TotalPrice)

	c.ClearTransportation()
	quote, err = c.RefreshQuote(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.0, quote.TotalPrice)
	_, has = c.Quote()
	assert.False(t, has)
	assert.Equal(t, 1, pricing.calls)
}

func TestRefreshQuote_PayloadShape(t *testing.T) {
	pricing := &fakePricing{quote: models.PriceQuote{TotalPrice: 100}}
	c := newTestComposer(pricing)
	c.SelectAccommodation("svc-hotel-1", "")
	require.NoError(t, c.SelectRoom(models.Room{ID: "room-quad", RoomType: "Standard Quad"}, 3))

	_, err := c.RefreshQuote(context.Background())
	require.NoError(t, err)

	req := pricing.lastReq
	require.Len(t, req.RoomBookings, 1)
	assert.Equal(t, "room-quad", req.RoomBookings[0].RoomID)
	assert.Equal(t, 3, req.RoomBookings[0].Quantity)
	assert.Equal(t, 5, req.Duration)
	assert.Equal(t, 12, req.NumberOfMembers)
	require.NotNil(t, req.Services.Accommodation)
	assert.Equal(t, "svc-hotel-1", req.Services.Accommodation.ServiceID)
}

func TestBuildPriceRequest_EmptyRoomBookingsWithoutRoom(t *testing.T) {
	c := newTestComposer(&fakePricing{})
	c.SelectTransportation("svc-bus-1", "")

	req := c.BuildPriceRequest()
	assert.NotNil(t, req.RoomBookings)
	assert.Empty(t, req.RoomBookings)
}

func TestRefreshQuote_ErrorKeepsLastQuote(t *testing.T) {
	pricing := &fakePricing{quote: models.PriceQuote{TotalPrice: 300}}
	c := newTestComposer(pricing)
	c.SelectTransportation("svc-bus-1", "")

	_, err := c.RefreshQuote(context.Background())
	require.NoError(t, err)

	pricing.err = assert.AnError
	_, err = c.RefreshQuote(context.Background())
	require.Error(t, err)

	quote, has := c.Quote()
	assert.True(t, has)
	assert.Equal(t, 300.0, quote.TotalPrice)
}

// pricingCall pairs one in-flight request with its private response channel
type pricingCall struct {
	req     models.PriceRequest
	respond chan models.PriceQuote
}

// blockingPricing hands each call to the test, which releases them in any order
type blockingPricing struct {
	calls chan pricingCall
}

func (b *blockingPricing) CalculatePrice(_ context.Context, req models.PriceRequest) (models.PriceQuote, error) {
	call := pricingCall{req: req, respond: make(chan models.PriceQuote)}
	b.calls <- call
	return <-call.respond, nil
}

func TestRefreshQuote_StaleResponseDiscarded(t *testing.T) {
	pricing := &blockingPricing{calls: make(chan pricingCall)}
	c := New(pricing, nil)
	require.NoError(t, c.SetBasics("Coastal Escape", "", "city-1", "city-2", 5))
	c.SelectTransportation("svc-bus-1", "")

	firstDone := make(chan struct{})
	secondDone := make(chan struct{})

	// First request goes out and stalls in flight
	go func() {
		defer close(firstDone)
		_, _ = c.RefreshQuote(context.Background())
	}()
	first := <-pricing.calls

	// Second request supersedes it while the first is still in flight
	go func() {
		defer close(secondDone)
		_, _ = c.RefreshQuote(context.Background())
	}()
	second := <-pricing.calls

	// The newer request resolves first, then the stale one trickles in
	second.respond <- models.PriceQuote{TotalPrice: 200}
	<-secondDone
	first.respond <- models.PriceQuote{TotalPrice: 100}
	<-firstDone

	quote, has := c.Quote()
	require.True(t, has)
	assert.Equal(t, 200.0, quote.TotalPrice, "stale response must not overwrite the fresher one")
}
