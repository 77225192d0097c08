// Package estimator computes the rough running total shown while a
// customer customizes a booking. The result is advisory only; checkout
// pricing is always re-derived server-side.
package estimator

import (
	"math"
	"time"
)

// FixedRoomRate is the flat per-room nightly rate used by the local
// estimate. The authoritative room price lives on the server.
const FixedRoomRate = 80.0

// Attraction is a selectable attraction priced per guest
type Attraction struct {
	ID    string
	Name  string
	Price float64
}

// AddOn is a selectable add-on priced per day
type AddOn struct {
	ID    string
	Name  string
	Price float64
}

// Discount is a selected discount applied per day
type Discount struct {
	ID     string
	Name   string
	Amount float64
}

// Selection is the customer's current customization state
type Selection struct {
	BasePrice   float64
	Guests      int
	Rooms       int
	Attractions []Attraction
	StartDate   time.Time
	EndDate     time.Time
	AddOns      []AddOn
	Discounts   []Discount
}

// Days returns the trip length in days: ceil((end - start) / 24h).
// A non-positive span yields 0 days.
func Days(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// Total computes the local estimate. It is a pure function of the
// selection: per-guest base and attraction prices, a flat room rate, all
// scaled by trip length, then per-day add-ons and discounts. Discounts are
// not floored at zero.
func Total(sel Selection) float64 {
	total := sel.BasePrice * float64(sel.Guests)
	total += float64(sel.Rooms) * FixedRoomRate

	for _, attraction := range sel.Attractions {
		total += attraction.Price * float64(sel.Guests)
	}

	days := Days(sel.StartDate, sel.EndDate)
	total *= float64(days)

	for _, addOn := range sel.AddOns {
		total += addOn.Price * float64(days)
	}

	for _, discount := range sel.Discounts {
		total -= discount.Amount * float64(days)
	}

	return total
}
