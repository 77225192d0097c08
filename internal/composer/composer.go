// Package composer manages the admin's working tour draft: itinerary days,
// service selections, room bookings and set meals, plus the rules for when
// a server-side price recalculation is requested.
package composer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/voyara/voyara-client/internal/models"
)

// PriceService requests an authoritative price for the current selections.
// The composer never computes prices itself.
type PriceService interface {
	CalculatePrice(ctx context.Context, req models.PriceRequest) (models.PriceQuote, error)
}

// Composer holds one tour draft being built or edited. The draft is
// mutated through composer methods so the selection invariants hold at all
// times; it is submitted to the backend as one unit on save.
type Composer struct {
	pricing PriceService
	logger  *logrus.Logger

	mu    sync.Mutex
	draft models.Tour
	// room type of the selected room booking, needed for member derivation
	selectedRoomType string

	// Quote sequencing: responses are applied only if no newer request has
	// been issued, so a slow stale response cannot overwrite a fresher one.
	nextSeq    uint64
	appliedSeq uint64
	quote      models.PriceQuote
	hasQuote   bool
}

// New creates a composer for a fresh, empty draft
func New(pricing PriceService, logger *logrus.Logger) *Composer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Composer{
		pricing: pricing,
		logger:  logger,
	}
}

// Load replaces the working draft with an existing tour for editing
func (c *Composer) Load(tour models.Tour) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = tour
	c.hasQuote = false
	c.quote = models.PriceQuote{}
}

// Draft returns a copy of the current working draft
func (c *Composer) Draft() models.Tour {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SetBasics updates the draft's descriptive fields
func (c *Composer) SetBasics(name, description, destinationCityID, departureCityID string, duration int) error {
	if duration < 1 {
		return errors.New("duration must be at least 1 day")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Name = name
	c.draft.Description = description
	c.draft.DestinationCityID = destinationCityID
	c.draft.DepartureCityID = departureCityID
	c.draft.Duration = duration
	return nil
}

// SetNumberOfMembers sets the member count directly. It is rejected while
// a room is selected because the count is then derived from the booking.
func (c *Composer) SetNumberOfMembers(n int) error {
	if n < 0 {
		return errors.New("number_of_members must not be negative")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft.RoomBooking != nil {
		return errors.New("number_of_members is derived from the room booking while a room is selected")
	}
	c.draft.NumberOfMembers = n
	return nil
}

// AddDay appends a new itinerary day with the next contiguous day number
func (c *Composer) AddDay(title, summary string) models.ItineraryDay {
	c.mu.Lock()
	defer c.mu.Unlock()
	day := models.ItineraryDay{
		DayNumber:  len(c.draft.Itinerary) + 1,
		DayTitle:   title,
		DaySummary: summary,
	}
	c.draft.Itinerary = append(c.draft.Itinerary, day)
	return day
}

// RemoveDay deletes an itinerary day and renumbers the remaining days so
// numbering stays 1-based and contiguous. Restaurant and set-meal
// selections for the removed day are dropped; selections for later days
// shift down with their day.
func (c *Composer) RemoveDay(dayNumber int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if dayNumber < 1 || dayNumber > len(c.draft.Itinerary) {
		return fmt.Errorf("no itinerary day %d", dayNumber)
	}

	days := c.draft.Itinerary
	days = append(days[:dayNumber-1], days[dayNumber:]...)
	for i := range days {
		days[i].DayNumber = i + 1
	}
	c.draft.Itinerary = days

	restaurants := c.draft.Services.Restaurants[:0]
	for _, r := range c.draft.Services.Restaurants {
		switch {
		case r.DayNumber == dayNumber:
			continue
		case r.DayNumber > dayNumber:
			r.DayNumber--
		}
		restaurants = append(restaurants, r)
	}
	c.draft.Services.Restaurants = restaurants

	setMeals := c.draft.SetMeals[:0]
	for _, m := range c.draft.SetMeals {
		switch {
		case m.DayNumber == dayNumber:
			continue
		case m.DayNumber > dayNumber:
			m.DayNumber--
		}
		setMeals = append(setMeals, m)
	}
	c.draft.SetMeals = setMeals

	return nil
}

// AddCheckpoint appends a checkpoint to the given day and session with the
// next display order for that session
func (c *Composer) AddCheckpoint(dayNumber int, session models.MealSession, cp models.Checkpoint) error {
	if !session.IsValid() {
		return fmt.Errorf("invalid session: %s", session)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if dayNumber < 1 || dayNumber > len(c.draft.Itinerary) {
		return fmt.Errorf("no itinerary day %d", dayNumber)
	}

	day := &c.draft.Itinerary[dayNumber-1]
	switch session {
	case models.MealSessionMorning:
		cp.DisplayOrder = len(day.Checkpoints.Morning) + 1
		day.Checkpoints.Morning = append(day.Checkpoints.Morning, cp)
	case models.MealSessionNoon:
		cp.DisplayOrder = len(day.Checkpoints.Noon) + 1
		day.Checkpoints.Noon = append(day.Checkpoints.Noon, cp)
	case models.MealSessionEvening:
		cp.DisplayOrder = len(day.Checkpoints.Evening) + 1
		day.Checkpoints.Evening = append(day.Checkpoints.Evening, cp)
	}
	return nil
}

// SelectAccommodation sets the tour's accommodation service, replacing any
// previous selection. Changing accommodation clears the room booking since
// rooms belong to a specific service.
func (c *Composer) SelectAccommodation(serviceID, notes string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.draft.Services.Accommodation
	c.draft.Services.Accommodation = &models.ServiceRef{ServiceID: serviceID, Notes: notes}
	if prev == nil || prev.ServiceID != serviceID {
		c.draft.RoomBooking = nil
		c.selectedRoomType = ""
	}
}

// ClearAccommodation removes the accommodation selection and its room booking
func (c *Composer) ClearAccommodation() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Services.Accommodation = nil
	c.draft.RoomBooking = nil
	c.selectedRoomType = ""
}

// SelectRoom books quantity rooms of the given type and derives the
// tour's member count from it: quantity times the room capacity.
func (c *Composer) SelectRoom(room models.Room, quantity int) error {
	if quantity < 1 {
		return errors.New("room quantity must be at least 1")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft.Services.Accommodation == nil {
		return errors.New("select an accommodation service before booking rooms")
	}
	c.draft.RoomBooking = &models.RoomBooking{RoomID: room.ID, Quantity: quantity}
	c.selectedRoomType = room.RoomType
	c.draft.NumberOfMembers = quantity * models.PeoplePerRoom(room.RoomType)
	return nil
}

// SelectTransportation sets the tour's transportation service, replacing
// any previous selection
func (c *Composer) SelectTransportation(serviceID, notes string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Services.Transportation = &models.ServiceRef{ServiceID: serviceID, Notes: notes}
}

// ClearTransportation removes the transportation selection
func (c *Composer) ClearTransportation() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Services.Transportation = nil
}

// SelectRestaurant assigns a restaurant service to a day, replacing any
// restaurant already assigned to that day
func (c *Composer) SelectRestaurant(serviceID string, dayNumber int, notes string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if dayNumber < 1 || dayNumber > len(c.draft.Itinerary) {
		return fmt.Errorf("no itinerary day %d", dayNumber)
	}

	selection := models.RestaurantSelection{ServiceID: serviceID, DayNumber: dayNumber, Notes: notes}
	for i, r := range c.draft.Services.Restaurants {
		if r.DayNumber == dayNumber {
			// Replacing the day's restaurant orphans its set meals
			c.dropSetMealsForDayLocked(dayNumber)
			c.draft.Services.Restaurants[i] = selection
			return nil
		}
	}
	c.draft.Services.Restaurants = append(c.draft.Services.Restaurants, selection)
	return nil
}

// RemoveRestaurant clears the restaurant assigned to a day along with the
// day's set meals
func (c *Composer) RemoveRestaurant(dayNumber int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	restaurants := c.draft.Services.Restaurants[:0]
	for _, r := range c.draft.Services.Restaurants {
		if r.DayNumber != dayNumber {
			restaurants = append(restaurants, r)
		}
	}
	c.draft.Services.Restaurants = restaurants
	c.dropSetMealsForDayLocked(dayNumber)
}

func (c *Composer) dropSetMealsForDayLocked(dayNumber int) {
	setMeals := c.draft.SetMeals[:0]
	for _, m := range c.draft.SetMeals {
		if m.DayNumber != dayNumber {
			setMeals = append(setMeals, m)
		}
	}
	c.draft.SetMeals = setMeals
}

// SelectSetMeal assigns a set meal to a (day, session) slot. A slot holds
// at most one meal; selecting into an occupied slot replaces the previous
// entry.
func (c *Composer) SelectSetMeal(sel models.SetMealSelection) error {
	if !sel.MealSession.IsValid() {
		return fmt.Errorf("invalid meal_session: %s", sel.MealSession)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	hasRestaurant := false
	for _, r := range c.draft.Services.Restaurants {
		if r.DayNumber == sel.DayNumber {
			hasRestaurant = true
			break
		}
	}
	if !hasRestaurant {
		return fmt.Errorf("no restaurant selected for day %d", sel.DayNumber)
	}

	for i, m := range c.draft.SetMeals {
		if m.DayNumber == sel.DayNumber && m.MealSession == sel.MealSession {
			c.draft.SetMeals[i] = sel
			return nil
		}
	}
	c.draft.SetMeals = append(c.draft.SetMeals, sel)
	return nil
}

// RemoveSetMeal clears the set meal for a (day, session) slot
func (c *Composer) RemoveSetMeal(dayNumber int, session models.MealSession) {
	c.mu.Lock()
	defer c.mu.Unlock()
	setMeals := c.draft.SetMeals[:0]
	for _, m := range c.draft.SetMeals {
		if m.DayNumber != dayNumber || m.MealSession != session {
			setMeals = append(setMeals, m)
		}
	}
	c.draft.SetMeals = setMeals
}

// FilterTransportOptions narrows vehicle options to those whose capacity
// fits the current member count: members <= max_passengers <= 2*members.
// The filter is UI convenience only; the pricing call does not enforce it.
func (c *Composer) FilterTransportOptions(options []models.TourService) []models.TourService {
	c.mu.Lock()
	members := c.draft.NumberOfMembers
	c.mu.Unlock()

	var filtered []models.TourService
	for _, opt := range options {
		if opt.MaxPassengers >= members && opt.MaxPassengers <= 2*members {
			filtered = append(filtered, opt)
		}
	}
	return filtered
}
