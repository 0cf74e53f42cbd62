// File: services/booking/catalog.go
package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	ratecardRepo "stagelink/database/repository/ratecard"
	"stagelink/models"

	"github.com/go-redis/redis/v8"
)

const (
	rateCardCacheKey = "ratecard:all"
	rateCardCacheTTL = 10 * time.Minute
)

// CatalogService serves the rate card, fronted by a redis cache. The card is
// reference data, so a short TTL is enough to absorb reseeds.
type CatalogService struct {
	Repo  ratecardRepo.RateCardRepository
	Cache *redis.Client
}

// GetAvailableServices returns the full rate card, from cache when warm.
func (s *CatalogService) GetAvailableServices(ctx context.Context) ([]models.Service, error) {
	if data, err := s.Cache.Get(ctx, rateCardCacheKey).Result(); err == nil {
		var services []models.Service
		if err := json.Unmarshal([]byte(data), &services); err == nil {
			return services, nil
		}
		// A corrupt cache entry falls through to the repository.
	}

	services, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate card: %w", err)
	}

	if data, err := json.Marshal(services); err == nil {
		// Best effort: a cache write failure only costs the next read.
		s.Cache.Set(ctx, rateCardCacheKey, data, rateCardCacheTTL)
	}
	return services, nil
}
