// Package validate turns raw completion text into typed pipeline values.
// The destination path fails closed: one bad element invalidates the whole
// batch. The hotel-ranking path fails open: bad output degrades to an
// empty ranking because enrichment is optional.
package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "travel-madlibs/internal/common/errors"
	"travel-madlibs/internal/common/logger"
	"travel-madlibs/internal/models"
)

// MaxDestinations caps the accepted batch; the provider may over-deliver.
const MaxDestinations = 10

var destinationRequiredFields = []string{
	"name",
	"region",
	"description",
	"bestTimeToVisit",
	"highlights",
	"matchPercentage",
	"transportation",
}

var transportationRequiredFields = []string{"method", "duration", "description"}

// Recommendations parses and structurally validates a destination
// completion. Either the entire batch is accepted or an error names the
// first offending destination (1-based) and its missing fields.
func Recommendations(raw string) ([]models.Destination, string, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, "", apperrors.NewParseError(err)
	}

	rawDests, ok := doc["destinations"].([]interface{})
	if !ok {
		return nil, "", apperrors.NewSchemaError("Invalid response format: missing destinations array")
	}

	summary, ok := doc["summary"].(string)
	if !ok || summary == "" {
		return nil, "", apperrors.NewSchemaError("Invalid response format: missing or invalid summary")
	}

	for i, rawDest := range rawDests {
		if err := validateDestination(i+1, rawDest); err != nil {
			return nil, "", err
		}
	}

	encoded, err := json.Marshal(rawDests)
	if err != nil {
		return nil, "", apperrors.NewParseError(err)
	}
	var dests []models.Destination
	if err := json.Unmarshal(encoded, &dests); err != nil {
		return nil, "", apperrors.NewParseError(err)
	}

	if len(dests) > MaxDestinations {
		dests = dests[:MaxDestinations]
	}

	return dests, summary, nil
}

func validateDestination(index int, rawDest interface{}) error {
	dest, ok := rawDest.(map[string]interface{})
	if !ok {
		return apperrors.NewSchemaError(fmt.Sprintf("Destination %d is not an object", index))
	}

	var missing []string
	for _, field := range destinationRequiredFields {
		if _, present := dest[field]; !present {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewSchemaError(fmt.Sprintf(
			"Destination %d is missing required fields: %s", index, strings.Join(missing, ", "),
		))
	}

	if _, ok := dest["highlights"].([]interface{}); !ok {
		return apperrors.NewSchemaError(fmt.Sprintf("Destination %d highlights must be an array", index))
	}

	pct, ok := dest["matchPercentage"].(float64)
	if !ok || pct < 70 || pct > 100 || pct != math.Trunc(pct) {
		return apperrors.NewSchemaError(fmt.Sprintf("Destination %d has invalid match percentage", index))
	}

	transportation, ok := dest["transportation"].(map[string]interface{})
	var missingTransport []string
	for _, field := range transportationRequiredFields {
		if !ok {
			missingTransport = append(missingTransport, field)
			continue
		}
		if _, present := transportation[field]; !present {
			missingTransport = append(missingTransport, field)
		}
	}
	if len(missingTransport) > 0 {
		return apperrors.NewSchemaError(fmt.Sprintf(
			"Destination %d transportation is missing required fields: %s",
			index, strings.Join(missingTransport, ", "),
		))
	}

	return nil
}

// RankedHotel is one annotation from the hotel-ranking completion.
type RankedHotel struct {
	Name              string
	RankingPercentage int
	Haiku             string
}

const hotelRankingSchema = `{
  "type": "object",
  "required": ["hotels"],
  "properties": {
    "hotels": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string"},
          "rankingPercentage": {"type": "number"},
          "haiku": {"type": "string"}
        }
      }
    }
  }
}`

// HotelRanking parses a ranking completion leniently: any parse or shape
// failure is logged and yields an empty ranking, never an error.
func HotelRanking(raw string, log logger.Logger) []RankedHotel {
	if strings.TrimSpace(raw) == "" {
		log.Warn("empty hotel ranking response", nil)
		return nil
	}

	schemaLoader := gojsonschema.NewStringLoader(hotelRankingSchema)
	documentLoader := gojsonschema.NewStringLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		log.WithError(err).Warn("failed to parse hotel ranking response", nil)
		return nil
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		log.Warn("hotel ranking response failed schema check", map[string]interface{}{
			"errors": errs,
		})
		return nil
	}

	var out struct {
		Hotels []struct {
			Name              string  `json:"name"`
			RankingPercentage float64 `json:"rankingPercentage"`
			Haiku             string  `json:"haiku"`
		} `json:"hotels"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.WithError(err).Warn("failed to decode hotel ranking response", nil)
		return nil
	}

	ranked := make([]RankedHotel, 0, len(out.Hotels))
	for _, h := range out.Hotels {
		if strings.TrimSpace(h.Name) == "" {
			continue
		}
		ranked = append(ranked, RankedHotel{
			Name:              h.Name,
			RankingPercentage: int(math.Round(h.RankingPercentage)),
			Haiku:             h.Haiku,
		})
	}
	return ranked
}

// Hotels parses the legacy pure-LLM hotel completion. Unlike the ranking
// path this one is fatal on bad output.
func Hotels(raw string) ([]models.Hotel, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, apperrors.NewParseError(err)
	}

	rawHotels, ok := doc["hotels"]
	if !ok {
		return nil, apperrors.NewSchemaError("Invalid response format: hotels array not found")
	}

	var hotels []models.Hotel
	if err := json.Unmarshal(rawHotels, &hotels); err != nil {
		return nil, apperrors.NewSchemaError("Invalid response format: hotels array not found")
	}

	return hotels, nil
}
