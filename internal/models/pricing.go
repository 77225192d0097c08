package models

// PriceRequest is the payload sent to the server-side price calculation.
// The client assembles it from the composer's current selections and never
// computes the price itself.
type PriceRequest struct {
	Services         ServiceSelection   `json:"services"`
	RoomBookings     []RoomBooking      `json:"roomBookings"`
	SelectedSetMeals []SetMealSelection `json:"selectedSetMeals"`
	Duration         int                `json:"duration"`
	NumberOfMembers  int                `json:"number_of_members"`
}

// PriceBreakdownItem is one line of the server's price breakdown
type PriceBreakdownItem struct {
	Label    string  `json:"label"`
	Amount   float64 `json:"amount"`
	Quantity int     `json:"quantity,omitempty"`
}

// PriceQuote is the server's pricing response, stored verbatim.
// The client performs no validation of the numbers.
type PriceQuote struct {
	TotalPrice float64              `json:"total_price"`
	Breakdown  []PriceBreakdownItem `json:"breakdown"`
}
