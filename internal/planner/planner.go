// Package planner sequences the recommendation pipeline: prompt build,
// completion, validation, factual fetch and hybrid ranking. It owns the
// two-tier failure policy: destination calls fail closed with an explicit
// error message, hotel enrichment fails open with an empty list.
package planner

import (
	"context"

	"github.com/google/uuid"

	"travel-madlibs/internal/common/config"
	apperrors "travel-madlibs/internal/common/errors"
	"travel-madlibs/internal/common/logger"
	"travel-madlibs/internal/models"
	"travel-madlibs/internal/prompt"
	"travel-madlibs/internal/validate"
)

// LLMGateway is the slice of the completion client the planner needs.
type LLMGateway interface {
	CompleteJSON(ctx context.Context, p prompt.Payload) (string, error)
	Warm(ctx context.Context) error
}

// HotelSource supplies the factual hotel pool for a destination.
type HotelSource interface {
	FetchHotels(ctx context.Context, destination string, limit int) []models.Hotel
}

// HotelRanker merges the factual pool with the generative ranking pass.
type HotelRanker interface {
	Rank(ctx context.Context, destinationLabel string, pool []models.Hotel, tripIdea string, topN int) []models.Hotel
}

type Service struct {
	llm    LLMGateway
	source HotelSource
	ranker HotelRanker
	cfg    config.PlannerConfig
	logger logger.Logger
}

func NewService(llm LLMGateway, source HotelSource, ranker HotelRanker, cfg config.PlannerConfig, log logger.Logger) *Service {
	if cfg.HotelLimit <= 0 {
		cfg.HotelLimit = 10
	}
	if cfg.FactualPoolLimit <= 0 {
		cfg.FactualPoolLimit = 100
	}
	return &Service{llm: llm, source: source, ranker: ranker, cfg: cfg, logger: log}
}

// GenerateTravelRecommendations runs one destination round trip. Any
// gateway or validation failure yields an empty destination list with the
// user-facing message in Error; callers never see partial batches. No
// automatic retry; retry is a user action.
func (s *Service) GenerateTravelRecommendations(ctx context.Context, query models.TravelQuery) models.RecommendationResponse {
	log := s.logger.WithFields(map[string]interface{}{
		"request_id": uuid.NewString(),
		"trip_idea":  query.TripIdea,
		"location":   query.Location,
	})
	log.Info("generating travel recommendations", nil)

	raw, err := s.llm.CompleteJSON(ctx, prompt.Destinations(query))
	if err != nil {
		log.WithError(err).Error("destination completion failed", nil)
		return errorResponse(err)
	}

	destinations, summary, err := validate.Recommendations(raw)
	if err != nil {
		log.WithError(err).Error("destination completion failed validation", nil)
		return errorResponse(err)
	}

	log.Info("travel recommendations generated", map[string]interface{}{
		"destinations": len(destinations),
	})
	return models.RecommendationResponse{Destinations: destinations, Summary: summary}
}

func errorResponse(err error) models.RecommendationResponse {
	return models.RecommendationResponse{
		Destinations: []models.Destination{},
		Error:        apperrors.Message(err),
	}
}

// FetchHybridHotels pulls a broad factual pool and delegates to the
// ranker. An empty pool returns immediately without a ranking call, and
// nothing on this path ever surfaces an error.
func (s *Service) FetchHybridHotels(ctx context.Context, destination, region, tripIdea string, cap int) []models.Hotel {
	if cap <= 0 {
		cap = s.cfg.HotelLimit
	}

	log := s.logger.WithFields(map[string]interface{}{
		"request_id":  uuid.NewString(),
		"destination": destination,
	})

	pool := s.source.FetchHotels(ctx, destination, s.cfg.FactualPoolLimit)
	if len(pool) == 0 {
		log.Info("factual hotel pool is empty, skipping ranking", nil)
		return []models.Hotel{}
	}

	label := destination
	if region != "" {
		label = destination + ", " + region
	}

	ranked := s.ranker.Rank(ctx, label, pool, tripIdea, cap)
	log.Info("hybrid hotel fetch complete", map[string]interface{}{
		"pool":   len(pool),
		"ranked": len(ranked),
	})
	return ranked
}

// FetchHotelRecommendations is the pure-LLM hotel path, kept for callers
// without hotel-search credentials. Unlike the hybrid path it fails hard.
func (s *Service) FetchHotelRecommendations(ctx context.Context, destination, region string) ([]models.Hotel, error) {
	raw, err := s.llm.CompleteJSON(ctx, prompt.HotelRecommendations(destination, region))
	if err != nil {
		return nil, err
	}
	return validate.Hotels(raw)
}

// WarmConnection fires a minimal completion to cut first-call latency.
// Failures are logged and otherwise ignored.
func (s *Service) WarmConnection(ctx context.Context) {
	if err := s.llm.Warm(ctx); err != nil {
		s.logger.WithError(err).Warn("connection warm-up failed", nil)
	}
}
