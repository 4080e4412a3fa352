// Package hotelsource fetches factual hotel records from the Xotelo
// (RapidAPI) hotel-search service. Hotel enrichment is optional relative
// to the destination flow, so every failure here degrades to an empty
// pool rather than an error.
package hotelsource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"travel-madlibs/internal/common/config"
	apperrors "travel-madlibs/internal/common/errors"
	"travel-madlibs/internal/common/httpclient"
	"travel-madlibs/internal/common/logger"
	"travel-madlibs/internal/common/metrics"
	"travel-madlibs/internal/models"
)

// maxPageSize is the provider's per-call listing cap.
const maxPageSize = 100

type Client struct {
	apiKey     string
	apiHost    string
	baseURL    string
	httpClient *httpclient.Client
	logger     logger.Logger
}

func NewClient(cfg config.XoteloConfig, log logger.Logger) *Client {
	return &Client{
		apiKey:     cfg.APIKey,
		apiHost:    cfg.Host,
		baseURL:    cfg.BaseURL,
		httpClient: httpclient.NewClient(config.GetDuration(cfg.Timeout)),
		logger:     log,
	}
}

// Configured reports whether provider credentials are present.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.apiHost != "" && c.baseURL != ""
}

type searchResponse struct {
	Result struct {
		List []struct {
			LocationKey string `json:"location_key"`
		} `json:"list"`
	} `json:"result"`
}

type listResponse struct {
	Result struct {
		TotalCount int         `json:"total_count"`
		List       []listHotel `json:"list"`
	} `json:"result"`
}

type listHotel struct {
	Name          string `json:"name"`
	StreetAddress string `json:"street_address"`
	PlaceName     string `json:"place_name"`
	ReviewSummary *struct {
		Rating float64 `json:"rating"`
	} `json:"review_summary"`
	PriceRanges *struct {
		Minimum int `json:"minimum"`
		Maximum int `json:"maximum"`
	} `json:"price_ranges"`
	Image string `json:"image"`
}

// FetchHotels resolves the destination to a location key and accumulates
// hotel pages until limit is reached or the source is exhausted. It never
// returns more than limit entries, and it returns an empty slice (never
// an error) when credentials are missing or the destination cannot be
// resolved.
func (c *Client) FetchHotels(ctx context.Context, destination string, limit int) []models.Hotel {
	if !c.Configured() {
		c.logger.Warn("hotel search credentials are not configured, skipping factual fetch", map[string]interface{}{
			"destination": destination,
		})
		return nil
	}
	if limit <= 0 {
		return nil
	}

	locationKey, ok := c.geoSearch(ctx, destination)
	if !ok {
		return nil
	}

	raw := c.listHotels(ctx, locationKey, limit)
	if len(raw) > limit {
		raw = raw[:limit]
	}

	hotels := make([]models.Hotel, len(raw))
	for i, h := range raw {
		hotels[i] = mapHotel(h)
	}
	metrics.HotelSourceHotels.Add(float64(len(hotels)))

	c.logger.Debug("fetched factual hotel pool", map[string]interface{}{
		"destination": destination,
		"count":       len(hotels),
	})
	return hotels
}

// geoSearch resolves a destination string to the provider's opaque
// location key.
func (c *Client) geoSearch(ctx context.Context, destination string) (string, bool) {
	searchURL := fmt.Sprintf("%s/search?query=%s&location_type=geo", c.baseURL, url.QueryEscape(destination))
	metrics.HotelSourceRequests.WithLabelValues("search").Inc()

	var parsed searchResponse
	if err := c.getJSON(ctx, searchURL, &parsed); err != nil {
		srcErr := apperrors.NewSourceUnavailableError("Hotel geo search failed", err)
		c.logger.WithError(srcErr).Warn("hotel geo search failed", map[string]interface{}{
			"destination": destination,
		})
		return "", false
	}

	if len(parsed.Result.List) == 0 || parsed.Result.List[0].LocationKey == "" {
		c.logger.Warn("no location key found for destination", map[string]interface{}{
			"destination": destination,
		})
		return "", false
	}
	return parsed.Result.List[0].LocationKey, true
}

// listHotels paginates the listing endpoint. The termination bound is
// re-evaluated each page from the first page's reported total, and each
// page request is shrunk to the remaining need so the loop never asks
// the provider for more than limit records in total.
func (c *Client) listHotels(ctx context.Context, locationKey string, limit int) []listHotel {
	var acc []listHotel
	offset := 0
	totalAvailable := -1 // unknown until the first page reports it

	for len(acc) < limit && (totalAvailable < 0 || offset < totalAvailable) {
		pageSize := limit - len(acc)
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}

		listURL := fmt.Sprintf("%s/list?location_key=%s&limit=%d&offset=%d&sort=popularity",
			c.baseURL, url.QueryEscape(locationKey), pageSize, offset)
		metrics.HotelSourceRequests.WithLabelValues("list").Inc()

		var parsed listResponse
		if err := c.getJSON(ctx, listURL, &parsed); err != nil {
			srcErr := apperrors.NewSourceUnavailableError("Hotel listing fetch failed", err)
			c.logger.WithError(srcErr).Warn("hotel listing page failed", map[string]interface{}{
				"location_key": locationKey,
				"offset":       offset,
			})
			return acc
		}

		totalAvailable = parsed.Result.TotalCount
		if len(parsed.Result.List) == 0 {
			break
		}
		acc = append(acc, parsed.Result.List...)
		offset += len(parsed.Result.List)
	}

	return acc
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.apiHost)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("hotel search provider returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func mapHotel(h listHotel) models.Hotel {
	address := h.StreetAddress
	if address == "" {
		address = h.PlaceName
	}

	var rating string
	if h.ReviewSummary != nil && h.ReviewSummary.Rating > 0 {
		rating = strconv.FormatFloat(h.ReviewSummary.Rating, 'f', -1, 64) + "-star"
	}

	var priceRange string
	if h.PriceRanges != nil {
		priceRange = fmt.Sprintf("$%d-$%d", h.PriceRanges.Minimum, h.PriceRanges.Maximum)
	}

	return models.Hotel{
		Name:       h.Name,
		Address:    address,
		Rating:     rating,
		PriceRange: priceRange,
		Haiku:      "",
		Image:      h.Image,
	}
}
