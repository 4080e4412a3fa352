// Package ranker merges a factual hotel pool with an LLM-generated
// relevance ranking and haiku annotation, reconciling the two lists by
// name.
package ranker

import (
	"context"
	"strings"

	"travel-madlibs/internal/common/logger"
	"travel-madlibs/internal/models"
	"travel-madlibs/internal/prompt"
	"travel-madlibs/internal/validate"
)

// Completer is the slice of the LLM gateway the ranker needs.
type Completer interface {
	CompleteJSON(ctx context.Context, p prompt.Payload) (string, error)
	Configured() bool
}

type Ranker struct {
	llm    Completer
	logger logger.Logger
}

func New(llm Completer, log logger.Logger) *Ranker {
	return &Ranker{llm: llm, logger: log}
}

// Rank asks the LLM to pick and annotate the most relevant hotels from
// the factual pool, then reconciles the annotations back onto the pool
// entries by case-insensitive exact name. The result carries only hotels
// with a non-empty haiku, truncated to topN. Ranking is an enhancement:
// every failure degrades rather than errors.
func (r *Ranker) Rank(ctx context.Context, destinationLabel string, pool []models.Hotel, tripIdea string, topN int) []models.Hotel {
	if len(pool) == 0 || topN <= 0 {
		return nil
	}

	if !r.llm.Configured() {
		// Without credentials ranking cannot add haikus, so only pool
		// entries that already carry one survive the final filter.
		return withHaiku(pool, topN)
	}

	raw, err := r.llm.CompleteJSON(ctx, prompt.HotelRanking(destinationLabel, pool, tripIdea, topN))
	var annotations []validate.RankedHotel
	if err != nil {
		r.logger.WithError(err).Warn("hotel ranking completion failed, proceeding unranked", map[string]interface{}{
			"destination": destinationLabel,
		})
	} else {
		annotations = validate.HotelRanking(raw, r.logger)
	}

	return reconcile(pool, annotations, topN)
}

// reconcile joins annotations onto the pool by normalized name, first
// match wins. Unmatched pool entries fill remaining slots in their
// original order, then the haiku filter drops anything unannotated.
func reconcile(pool []models.Hotel, annotations []validate.RankedHotel, topN int) []models.Hotel {
	used := make([]bool, len(pool))
	ranked := make([]models.Hotel, 0, topN)

	for _, ann := range annotations {
		if len(ranked) == topN {
			break
		}
		nameLower := strings.ToLower(ann.Name)
		for i := range pool {
			if used[i] || strings.ToLower(pool[i].Name) != nameLower {
				continue
			}
			hotel := pool[i]
			if ann.Haiku != "" {
				hotel.Haiku = ann.Haiku
			}
			if ann.RankingPercentage != 0 {
				hotel.RankingPercentage = ann.RankingPercentage
			}
			ranked = append(ranked, hotel)
			used[i] = true
			break
		}
	}

	for i := range pool {
		if len(ranked) == topN {
			break
		}
		if !used[i] {
			ranked = append(ranked, pool[i])
			used[i] = true
		}
	}

	return withHaiku(ranked, topN)
}

func withHaiku(hotels []models.Hotel, topN int) []models.Hotel {
	kept := make([]models.Hotel, 0, topN)
	for _, h := range hotels {
		if strings.TrimSpace(h.Haiku) == "" {
			continue
		}
		kept = append(kept, h)
		if len(kept) == topN {
			break
		}
	}
	return kept
}
