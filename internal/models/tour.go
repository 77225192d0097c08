package models

import (
	"errors"
	"fmt"
	"strings"
)

// MealSession identifies the slot of a day a set meal is served in
type MealSession string

const (
	MealSessionMorning MealSession = "morning"
	MealSessionNoon    MealSession = "noon"
	MealSessionEvening MealSession = "evening"
)

// IsValid reports whether the meal session is one of the three known slots
func (m MealSession) IsValid() bool {
	return m == MealSessionMorning || m == MealSessionNoon || m == MealSessionEvening
}

// Checkpoint represents a single activity inside an itinerary day
type Checkpoint struct {
	CheckpointTime      string `json:"checkpoint_time"` // "HH:MM"
	ActivityTitle       string `json:"activity_title"`
	ActivityDescription string `json:"activity_description"`
	Location            string `json:"location"`
	DisplayOrder        int    `json:"display_order"`
}

// DayCheckpoints groups a day's checkpoints by session
type DayCheckpoints struct {
	Morning []Checkpoint `json:"morning"`
	Noon    []Checkpoint `json:"noon"`
	Evening []Checkpoint `json:"evening"`
}

// ItineraryDay represents one day of a tour itinerary.
// Day numbers are 1-based and kept contiguous; deleting a day renumbers the rest.
type ItineraryDay struct {
	DayNumber   int            `json:"day_number"`
	DayTitle    string         `json:"day_title"`
	DaySummary  string         `json:"day_summary"`
	Checkpoints DayCheckpoints `json:"checkpoints"`
}

// RestaurantSelection assigns a restaurant service to a specific day
type RestaurantSelection struct {
	ServiceID string `json:"service_id"`
	DayNumber int    `json:"day_number"`
	Notes     string `json:"notes,omitempty"`
}

// ServiceRef points at a selected accommodation or transportation service
type ServiceRef struct {
	ServiceID string `json:"service_id"`
	Notes     string `json:"notes,omitempty"`
}

// ServiceSelection holds the tour's selected services.
// At most one accommodation and one transportation service per tour;
// restaurants are keyed by (service_id, day_number) with at most one per day.
type ServiceSelection struct {
	Restaurants    []RestaurantSelection `json:"restaurants"`
	Accommodation  *ServiceRef           `json:"accommodation"`
	Transportation *ServiceRef           `json:"transportation"`
}

// RoomBooking represents the single room type/quantity pair a tour supports
type RoomBooking struct {
	RoomID   string `json:"room_id"`
	Quantity int    `json:"quantity"`
}

// SetMealSelection assigns a restaurant set meal to a (day, session) slot
type SetMealSelection struct {
	SetMealID   string      `json:"set_meal_id"`
	DayNumber   int         `json:"day_number"`
	MealSession MealSession `json:"meal_session"`
}

// Tour represents a tour definition as exchanged with the backend.
// NumberOfMembers is derived from the room booking whenever a room is
// selected, never edited independently.
type Tour struct {
	ID                string           `json:"id,omitempty"`
	Name              string           `json:"name"`
	Duration          int              `json:"duration"` // days
	Description       string           `json:"description"`
	DestinationCityID string           `json:"destination_city_id"`
	DepartureCityID   string           `json:"departure_city_id"`
	IsActive          bool             `json:"is_active"`
	IsPublished       bool             `json:"is_published"`
	Images            []string         `json:"images"`
	Itinerary         []ItineraryDay   `json:"itinerary"`
	NumberOfMembers   int              `json:"number_of_members"`
	Services          ServiceSelection `json:"services"`
	RoomBooking       *RoomBooking     `json:"room_booking,omitempty"`
	SetMeals          []SetMealSelection `json:"set_meals,omitempty"`
}

// Validate validates a tour before it is submitted as one unit on save
func (t *Tour) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("name is required")
	}
	if t.Duration < 1 {
		return errors.New("duration must be at least 1 day")
	}
	if t.RoomBooking != nil && t.RoomBooking.Quantity < 1 {
		return errors.New("room quantity must be at least 1")
	}
	for i, day := range t.Itinerary {
		if day.DayNumber != i+1 {
			return fmt.Errorf("itinerary day numbers must be contiguous: expected %d, got %d", i+1, day.DayNumber)
		}
	}
	return nil
}

// TourService represents a bookable partner service offered to the composer
type TourService struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ServiceType   string  `json:"service_type"` // accommodation, restaurant, transportation
	CityID        string  `json:"city_id"`
	Price         float64 `json:"price"`
	MaxPassengers int     `json:"max_passengers,omitempty"` // transportation only
}

// Room represents a room type offered by an accommodation service
type Room struct {
	ID       string  `json:"id"`
	RoomType string  `json:"room_type"`
	Price    float64 `json:"price"`
}

// SetMeal represents a set meal offered by a restaurant service
type SetMeal struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ServiceID string  `json:"service_id"`
	Price     float64 `json:"price"`
}

// PeoplePerRoom returns how many members a single room of the given type
// holds: a "Standard Quad" room holds 4, every other room type holds 2.
func PeoplePerRoom(roomType string) int {
	if roomType == "Standard Quad" {
		return 4
	}
	return 2
}
