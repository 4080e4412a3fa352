// Package prompt constructs chat-completion payloads for the pipeline's
// LLM tasks. Builders are pure: no I/O, same payload for the same input.
package prompt

import (
	"encoding/json"
	"fmt"

	"travel-madlibs/internal/models"
)

// Task labels identify a payload for logging, metrics and tracing.
const (
	TaskDestinations         = "destinations"
	TaskHotelRanking         = "hotel-ranking"
	TaskHotelRecommendations = "hotel-recommendations"
	TaskWarm                 = "warm"
)

const (
	// MaxPromptHotels caps the candidate list serialized into the ranking
	// prompt to bound token cost.
	MaxPromptHotels = 50

	destinationTemperature = 0.7
	rankingTemperature     = 0.3
	destinationMaxTokens   = 2000
)

// Payload is a fully-built chat request: messages plus generation
// parameters. The gateway sends it verbatim.
type Payload struct {
	Task        string
	System      string
	User        string
	Temperature float64
	MaxTokens   int
	JSONMode    bool
}

const destinationSystem = `You are a travel-recommendation engine.

Reply ONLY with valid JSON exactly matching this schema:
{
  "summary": string (<=225 chars),
  "destinations": [
    {
      "name": string,
      "region": string,
      "description": string (~2 sentences),
      "bestTimeToVisit": string (months + reason),
      "highlights": string[3-5],
      "matchPercentage": 70-100,
      "transportation": {
        "method": string,
        "duration": string,
        "description": string
      }
    }
  ]
}

Rules:
- Suggest up to 10 distinct CITIES (no hotels) that fit the traveller's query; skip anything below 70 % and use unique matchPercentage values.
- Use varied destination types & countries.
- Fill EVERY field (no nulls) and base transportation on the traveller's origin.
- Respond with JSON only - no markdown, extra keys, or prose.`

// Destinations builds the primary recommendation payload from the
// mad-libs query.
func Destinations(q models.TravelQuery) Payload {
	profile := ""
	if q.TravelProfile != "" {
		profile = fmt.Sprintf("\n\nAdditional travel profile information:\n%s", q.TravelProfile)
	}

	user := fmt.Sprintf(
		"Generate travel recommendations for someone from %s who wants %q with %s in %s.%s Return exactly up to 10 destinations that best match the criteria.",
		q.ComingFrom, q.TripIdea, q.TravelCompanion, q.Location, profile,
	)

	return Payload{
		Task:        TaskDestinations,
		System:      destinationSystem,
		User:        user,
		Temperature: destinationTemperature,
		MaxTokens:   destinationMaxTokens,
		JSONMode:    true,
	}
}

// promptHotel is the trimmed candidate shape sent to the ranking task.
// Address and image are deliberately excluded.
type promptHotel struct {
	Name       string `json:"name"`
	Rating     string `json:"rating,omitempty"`
	PriceRange string `json:"priceRange,omitempty"`
}

// HotelRanking builds the ranking/haiku payload over a factual candidate
// pool. The candidate list is trimmed to MaxPromptHotels entries.
func HotelRanking(destinationLabel string, pool []models.Hotel, tripIdea string, topN int) Payload {
	goal := tripIdea
	if goal == "" {
		goal = "make the most of their trip"
	}

	system := fmt.Sprintf(`You are a hotel-ranking API. The traveller wants to %s. Select the most relevant hotels (max %d) for the traveller and return ONLY valid JSON with this exact shape (no extra keys or text):
{
  "hotels": [
    {
      "name": "Hotel name from list",
      "rankingPercentage": 70-100,
      "haiku": "Three-line haiku about the hotel"
    }
  ]
}

Rules:
- The "name" must match one of the provided hotels exactly.
- Use distinct rankingPercentage values between 70-100 (higher = better).
- Do not output more than %d hotels.
- Respond with JSON only - no markdown, no prose.`, goal, topN, topN)

	candidates := pool
	if len(candidates) > MaxPromptHotels {
		candidates = candidates[:MaxPromptHotels]
	}

	trimmed := make([]promptHotel, 0, len(candidates))
	for _, h := range candidates {
		trimmed = append(trimmed, promptHotel{
			Name:       h.Name,
			Rating:     h.Rating,
			PriceRange: h.PriceRange,
		})
	}

	user, _ := json.Marshal(map[string]interface{}{
		"destination": destinationLabel,
		"hotels":      trimmed,
	})

	return Payload{
		Task:        TaskHotelRanking,
		System:      system,
		User:        string(user),
		Temperature: rankingTemperature,
		JSONMode:    true,
	}
}

const hotelRecommendationSystem = `You are a creative hotel recommendation API that provides recommendations with poetic haiku descriptions. Return ONLY a JSON object with a "hotels" array containing hotel objects. Each hotel must have name, address, rating, priceRange, and haiku properties. The haiku should capture the essence of why this hotel is special. NO additional text.

Example response format:
{
  "hotels": [
    {
      "name": "Hotel Name",
      "address": "Full Address",
      "rating": "5-star",
      "priceRange": "$$$",
      "haiku": "Mountain views at dawn\nLuxury in every room\nPeace finds you at last"
    }
  ]
}`

// HotelRecommendations builds the legacy pure-LLM hotel payload. The
// hybrid flow superseded it but the operation is still exposed.
func HotelRecommendations(destination, region string) Payload {
	user := fmt.Sprintf(
		"Recommend 3 highly-rated hotels in %s, %s. Include a mix of luxury and mid-range options. For each hotel, create a unique haiku that captures its special qualities and why travelers should choose it.",
		destination, region,
	)

	return Payload{
		Task:        TaskHotelRecommendations,
		System:      hotelRecommendationSystem,
		User:        user,
		Temperature: destinationTemperature,
		JSONMode:    true,
	}
}

// Warm builds the minimal ping payload used to pre-open the provider
// connection.
func Warm() Payload {
	return Payload{
		Task:      TaskWarm,
		System:    "ping",
		MaxTokens: 1,
	}
}
