// Package models defines the typed contract between the pipeline and its
// consumers. Destinations are produced wholesale by completion validation;
// Hotels converge from two provenances (factual source records and LLM
// ranking annotations).
package models

// TravelQuery is the mad-libs form input. Immutable once submitted; lives
// only for the duration of one request.
type TravelQuery struct {
	TripIdea        string `json:"tripIdea"`
	TravelCompanion string `json:"travelCompanion"`
	Location        string `json:"location"`
	ComingFrom      string `json:"comingFrom"`
	TravelProfile   string `json:"travelProfile,omitempty"`
}

// Transportation is required on every Destination.
type Transportation struct {
	Method      string `json:"method"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// BudgetEstimate is optional, present only when the model supplies it.
type BudgetEstimate struct {
	Currency           string `json:"currency"`
	Budget             string `json:"budget"`
	AccommodationRange string `json:"accommodationRange"`
	MealCosts          string `json:"mealCosts"`
}

type Destination struct {
	Name            string         `json:"name"`
	Region          string         `json:"region"`
	Description     string         `json:"description"`
	BestTimeToVisit string         `json:"bestTimeToVisit"`
	Highlights      []string       `json:"highlights"`
	MatchPercentage int            `json:"matchPercentage"`
	Transportation  Transportation `json:"transportation"`

	// Additional details for the expanded view
	WeatherInfo      string          `json:"weatherInfo,omitempty"`
	LocalCuisine     []string        `json:"localCuisine,omitempty"`
	CulturalNotes    string          `json:"culturalNotes,omitempty"`
	BudgetEstimate   *BudgetEstimate `json:"budgetEstimate,omitempty"`
	VisaRequirements string          `json:"visaRequirements,omitempty"`
	Languages        []string        `json:"languages,omitempty"`
}

// Hotel carries fields from both provenances: factual records fill
// name/address/rating/priceRange/image with an empty haiku; ranking
// annotations fill haiku and rankingPercentage. Reconciliation joins the
// two by case-insensitive exact name match.
type Hotel struct {
	Name              string `json:"name"`
	Address           string `json:"address"`
	Rating            string `json:"rating,omitempty"`
	PriceRange        string `json:"priceRange,omitempty"`
	Haiku             string `json:"haiku"`
	Image             string `json:"image,omitempty"`
	RankingPercentage int    `json:"rankingPercentage,omitempty"`
}

// RecommendationResponse is the top-level contract returned to the UI.
// Error and a populated Destinations list are mutually exclusive: the
// error path always carries an empty list.
type RecommendationResponse struct {
	Destinations []Destination `json:"destinations"`
	Summary      string        `json:"summary,omitempty"`
	Error        string        `json:"error,omitempty"`
}
