package prompt

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel-madlibs/internal/models"
)

// ============================================================================
// DESTINATION PAYLOAD TESTS
// ============================================================================

func TestDestinations(t *testing.T) {
	q := models.TravelQuery{
		TripIdea:        "a relaxing beach vacation",
		TravelCompanion: "my partner",
		Location:        "somewhere warm",
		ComingFrom:      "Chicago",
	}

	p := Destinations(q)

	assert.Equal(t, TaskDestinations, p.Task)
	assert.True(t, p.JSONMode)
	assert.Equal(t, 0.7, p.Temperature)
	assert.Equal(t, 2000, p.MaxTokens)
	assert.Contains(t, p.System, `"matchPercentage": 70-100`)
	assert.Equal(t,
		`Generate travel recommendations for someone from Chicago who wants "a relaxing beach vacation" with my partner in somewhere warm. Return exactly up to 10 destinations that best match the criteria.`,
		p.User,
	)
}

func TestDestinations_WithTravelProfile(t *testing.T) {
	q := models.TravelQuery{
		TripIdea:        "hiking",
		TravelCompanion: "friends",
		Location:        "the mountains",
		ComingFrom:      "Denver",
		TravelProfile:   "Prefers hostels, vegetarian food.",
	}

	p := Destinations(q)

	assert.Contains(t, p.User, "Additional travel profile information:\nPrefers hostels, vegetarian food.")
}

func TestDestinations_IsPure(t *testing.T) {
	q := models.TravelQuery{TripIdea: "a", TravelCompanion: "b", Location: "c", ComingFrom: "d"}
	assert.Equal(t, Destinations(q), Destinations(q))
}

// ============================================================================
// HOTEL RANKING PAYLOAD TESTS
// ============================================================================

func TestHotelRanking(t *testing.T) {
	pool := []models.Hotel{
		{Name: "Hotel Mar", Address: "Rua Augusta 100", Rating: "4.5-star", PriceRange: "$120-$200", Image: "https://img.example/mar.jpg"},
		{Name: "Casa Rio"},
	}

	p := HotelRanking("Lisbon, Portugal", pool, "foodie trip", 5)

	assert.Equal(t, TaskHotelRanking, p.Task)
	assert.True(t, p.JSONMode)
	assert.Equal(t, 0.3, p.Temperature)
	assert.Contains(t, p.System, "The traveller wants to foodie trip.")
	assert.Contains(t, p.System, "Select the most relevant hotels (max 5)")
	assert.Contains(t, p.System, "Do not output more than 5 hotels.")

	var user struct {
		Destination string                       `json:"destination"`
		Hotels      []map[string]json.RawMessage `json:"hotels"`
	}
	require.NoError(t, json.Unmarshal([]byte(p.User), &user))
	assert.Equal(t, "Lisbon, Portugal", user.Destination)
	require.Len(t, user.Hotels, 2)

	// Only name/rating/priceRange are forwarded; address and image are
	// token-cost dead weight.
	assert.Contains(t, user.Hotels[0], "name")
	assert.Contains(t, user.Hotels[0], "rating")
	assert.Contains(t, user.Hotels[0], "priceRange")
	assert.NotContains(t, user.Hotels[0], "address")
	assert.NotContains(t, user.Hotels[0], "image")
}

func TestHotelRanking_DefaultGoal(t *testing.T) {
	p := HotelRanking("Lisbon", []models.Hotel{{Name: "Hotel Mar"}}, "", 10)
	assert.Contains(t, p.System, "The traveller wants to make the most of their trip.")
}

func TestHotelRanking_TrimsCandidateList(t *testing.T) {
	pool := make([]models.Hotel, 80)
	for i := range pool {
		pool[i] = models.Hotel{Name: fmt.Sprintf("Hotel %d", i+1)}
	}

	p := HotelRanking("Lisbon", pool, "", 10)

	var user struct {
		Hotels []map[string]interface{} `json:"hotels"`
	}
	require.NoError(t, json.Unmarshal([]byte(p.User), &user))
	assert.Len(t, user.Hotels, MaxPromptHotels)
	assert.Equal(t, "Hotel 1", user.Hotels[0]["name"])
	assert.Equal(t, "Hotel 50", user.Hotels[49]["name"])
}

// ============================================================================
// LEGACY AND WARM-UP PAYLOAD TESTS
// ============================================================================

func TestHotelRecommendations(t *testing.T) {
	p := HotelRecommendations("Lisbon", "Portugal")

	assert.Equal(t, TaskHotelRecommendations, p.Task)
	assert.True(t, p.JSONMode)
	assert.Contains(t, p.User, "Recommend 3 highly-rated hotels in Lisbon, Portugal.")
	assert.Contains(t, p.System, `"hotels" array`)
}

func TestWarm(t *testing.T) {
	p := Warm()

	assert.Equal(t, TaskWarm, p.Task)
	assert.Equal(t, 1, p.MaxTokens)
	assert.False(t, p.JSONMode)
	assert.Empty(t, p.User)
}
