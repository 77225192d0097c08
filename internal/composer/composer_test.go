package composer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyara/voyara-client/internal/models"
)

// fakePricing counts calls and returns a configurable quote
type fakePricing struct {
	calls   int
	quote   models.PriceQuote
	err     error
	lastReq models.PriceRequest
}

func (f *fakePricing) CalculatePrice(_ context.Context, req models.PriceRequest) (models.PriceQuote, error) {
	f.calls++
	f.lastReq = req
	return f.quote, f.err
}

func newTestComposer(pricing *fakePricing) *Composer {
	c := New(pricing, nil)
	_ = c.SetBasics("Coastal Escape", "three coastal towns", "city-1", "city-2", 5)
	return c
}

func TestMemberDerivation(t *testing.T) {
	tests := []struct {
		name     string
		roomType string
		quantity int
		expected int
	}{
		{"standard quad times three", "Standard Quad", 3, 12},
		{"standard double times two", "Standard", 2, 4},
		{"standard single room", "Standard", 1, 2},
		{"standard twin", "Standard Twin", 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestComposer(&fakePricing{})
			c.SelectAccommodation("svc-hotel-1", "")

			err := c.SelectRoom(models.Room{ID: "room-1", RoomType: tt.roomType}, tt.quantity)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c.Draft().NumberOfMembers)
		})
	}
}

func TestMemberCountLockedWhileRoomSelected(t *testing.T) {
	c := newTestComposer(&fakePricing{})
	c.SelectAccommodation("svc-hotel-1", "")
	require.NoError(t, c.SelectRoom(models.Room{ID: "room-1", RoomType: "Standard"}, 2))

	err := c.SetNumberOfMembers(10)
	assert.Error(t, err)
	assert.Equal(t, 4, c.Draft().NumberOfMembers)

	c.ClearAccommodation()
	require.NoError(t, c.SetNumberOfMembers(10))
	assert.Equal(t, 10, c.Draft().NumberOfMembers)
}

func TestSelectRoomRequiresAccommodation(t *testing.T) {
	c := newTestComposer(&fakePricing{})
	err := c.SelectRoom(models.Room{ID: "room-1", RoomType: "Standard"}, 1)
	assert.Error(t, err)
}

func TestChangingAccommodationClearsRoom(t *testing.T) {
	c := newTestComposer(&fakePricing{})
	c.SelectAccommodation("svc-hotel-1", "")
	require.NoError(t, c.SelectRoom(models.Room{ID: "room-1", RoomType: "Standard Quad"}, 1))

	c.SelectAccommodation("svc-hotel-2", "")
	assert.Nil(t, c.Draft().RoomBooking)

	// Re-selecting the same service keeps the booking
	c.SelectAccommodation("svc-hotel-1", "")
	require.NoError(t, c.SelectRoom(models.Room{ID: "room-1", RoomType: "Standard Quad"}, 1))
	c.SelectAccommodation("svc-hotel-1", "updated notes")
	assert.NotNil(t, c.Draft().RoomBooking)
}

func TestAddDayNumbersAreContiguous(t *testing.T) {
	c := newTestComposer(&fakePricing{})
	c.AddDay("Arrival", "")
	c.AddDay("Old town", "")
	c.AddDay("Departure", "")

	draft := c.Draft()
	require.Len(t, draft.Itinerary, 3)
	for i, day := range draft.Itinerary {
		assert.Equal(t, i+1, day.DayNumber)
	}
}

func TestRemoveDayRenumbersAndShiftsSelections(t *testing.T) {
	c := newTestComposer(&fakePricing{})
	c.AddDay("Day one", "")
	c.AddDay("Day two", "")
	c.AddDay("Day three", "")

	require.NoError(t, c.SelectRestaurant("svc-rest-1", 2, ""))
	require.NoError(t, c.SelectRestaurant("svc-rest-2", 3, ""))
	require.NoError(t, c.SelectSetMeal(models.SetMealSelection{SetMealID: "meal-1", DayNumber: 2, MealSession: models.MealSessionNoon}))
	require.NoError(t, c.SelectSetMeal(models.SetMealSelection{SetMealID: "meal-2", DayNumber: 3, MealSession: models.MealSessionEvening}))

	require.NoError(t, c.RemoveDay(2))

	draft := c.Draft()
	require.Len(t, draft.Itinerary, 2)
	assert.Equal(t, 1, draft.Itinerary[0].DayNumber)
	assert.Equal(t, 2, draft.Itinerary[1].DayNumber)
	assert.Equal(t, "Day three", draft.Itinerary[1].DayTitle)

	// Day 2's restaurant and meal are gone; day 3's shifted to day 2
	require.Len(t, draft.Services.Restaurants, 1)
	assert.Equal(t, "svc-rest-2", draft.Services.Restaurants[0].ServiceID)
	assert.Equal(t, 2, draft.Services.Restaurants[0].DayNumber)

	require.Len(t, draft.SetMeals, 1)
	assert.Equal(t, "meal-2", draft.SetMeals[0].SetMealID)
	assert.Equal(t, 2, draft.SetMeals[0].DayNumber)
}

func TestRemoveDayOutOfRange(t *testing.T) {
	c := newTestComposer(&fakePricing{})
	c.AddDay("Only day", "")
	assert.Error(t, c.RemoveDay(0))
	assert.Error(t, c.RemoveDay(2))
}

func TestSetMealSlotExclusivity(t *testing.T) {
	c := newTestComposer(&fakePricing{})
	c.AddDay("Day one", "")
	c.AddDay("Day two", "")
	require.NoError(t, c.SelectRestaurant("svc-rest-1", 2, ""))

	mealA := models.SetMealSelection{SetMealID: "meal-A", DayNumber: 2, MealSession: models.MealSessionNoon}
	mealB := models.SetMealSelection{SetMealID: "meal-B", DayNumber: 2, MealSession: models.MealSessionNoon}

	require.NoError(t, c.SelectSetMeal(mealA))
	require.NoError(t, c.SelectSetMeal(mealB))

	draft := c.Draft()
	require.Len(t, draft.SetMeals, 1)
	assert.Equal(t, "meal-B", draft.SetMeals[0].SetMealID)
	assert.Equal(t, models.MealSessionNoon, draft.SetMeals[0].MealSession)

	// A different session on the same day is its own slot
	require.NoError(t, c.SelectSetMeal(models.SetMealSelection{SetMealID: "meal-C", DayNumber: 2, MealSession: models.MealSessionEvening}))
	assert.Len(t, c.Draft().SetMeals, 2)
}

func TestSetMealRequiresRestaurant(t *testing.T) {
	c := newTestComposer(&fakePricing{})
	c.AddDay("Day one", "")

	err := c.SelectSetMeal(models.SetMealSelection{SetMealID: "meal-1", DayNumber: 1, MealSession: models.MealSessionNoon})
	assert.Error(t, err)
}

func TestSetMealRejectsInvalidSession(t *testing.T) {
	c := newTestComposer(&fakePricing{})
	c.AddDay("Day one", "")
	require.NoError(t, c.SelectRestaurant("svc-rest-1", 1, ""))

	err := c.SelectSetMeal(models.SetMealSelection{SetMealID: "meal-1", DayNumber: 1, MealSession: "midnight"})
	assert.Error(t, err)
}

func TestReplacingRestaurantDropsDaySetMeals(t *testing.T) {
	c := newTestComposer(&fakePricing{})
	c.AddDay("Day one", "")
	require.NoError(t, c.SelectRestaurant("svc-rest-1", 1, ""))
	require.NoError(t, c.SelectSetMeal(models.SetMealSelection{SetMealID: "meal-1", DayNumber: 1, MealSession: models.MealSessionNoon}))

	require.NoError(t, c.SelectRestaurant("svc-rest-2", 1, ""))
	assert.Empty(t, c.Draft().SetMeals)

	restaurants := c.Draft().Services.Restaurants
	require.Len(t, restaurants, 1)
	assert.Equal(t, "svc-rest-2", restaurants[0].ServiceID)
}

func TestFilterTransportOptions(t *testing.T) {
	c := newTestComposer(&fakePricing{})
	require.NoError(t, c.SetNumberOfMembers(8))

	options := []models.TourService{
		{ID: "small", MaxPassengers: 6},   // below member count
		{ID: "fit", MaxPassengers: 8},     // exact fit
		{ID: "roomy", MaxPassengers: 12},  // within 2x
		{ID: "double", MaxPassengers: 16}, // exactly 2x
		{ID: "coach", MaxPassengers: 40},  // above 2x
	}

	filtered := c.FilterTransportOptions(options)
	ids := make([]string, len(filtered))
	for i, f := range filtered {
		ids[i] = f.ID
	}
	assert.Equal(t, []string{"fit", "roomy", "double"}, ids)
}

func TestAddCheckpointAssignsDisplayOrder(t *testing.T) {
	c := newTestComposer(&fakePricing{})
	c.AddDay("Day one", "")

	require.NoError(t, c.AddCheckpoint(1, models.MealSessionMorning, models.Checkpoint{
		CheckpointTime: "09:00",
		ActivityTitle:  "Harbor walk",
	}))
	require.NoError(t, c.AddCheckpoint(1, models.MealSessionMorning, models.Checkpoint{
		CheckpointTime: "11:00",
		ActivityTitle:  "Market visit",
	}))

	morning := c.Draft().Itinerary[0].Checkpoints.Morning
	require.Len(t, morning, 2)
	assert.Equal(t, 1, morning[0].DisplayOrder)
	assert.Equal(t, 2, morning[1].DisplayOrder)
}
