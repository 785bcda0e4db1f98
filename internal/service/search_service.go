package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/bookshelf-service/internal/googlebooks"
	apperrors "github.com/spec-kit/bookshelf-service/pkg/util"
)

// SearchCache is the slice of the Redis wrapper the search service needs.
type SearchCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// SearchService fronts the external volume search with a Redis cache.
// Cache failures degrade to a direct upstream call.
type SearchService struct {
	client   *googlebooks.Client
	cache    SearchCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewSearchService builds the service.
func NewSearchService(client *googlebooks.Client, cache SearchCache, cacheTTL time.Duration, logger *zap.Logger) *SearchService {
	return &SearchService{client: client, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// ExternalSearch returns normalized external results for a title/author pair.
func (s *SearchService) ExternalSearch(ctx context.Context, title, author string) ([]googlebooks.SearchResult, error) {
	key := cacheKey(title, author)

	if cached, ok := s.fromCache(ctx, key); ok {
		return cached, nil
	}

	results, err := s.client.Search(ctx, title, author)
	if err != nil {
		s.logger.Error("external search failed", zap.Error(err))
		return nil, apperrors.NewBadGateway("external book search unavailable")
	}

	s.storeInCache(ctx, key, results)
	return results, nil
}

func cacheKey(title, author string) string {
	return "booksearch:" + title + "|" + author
}

func (s *SearchService) fromCache(ctx context.Context, key string) ([]googlebooks.SearchResult, bool) {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Debug("search cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var results []googlebooks.SearchResult
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		s.logger.Debug("search cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return results, true
}

func (s *SearchService) storeInCache(ctx context.Context, key string, results []googlebooks.SearchResult) {
	encoded, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(encoded), s.cacheTTL); err != nil {
		s.logger.Debug("search cache write failed", zap.Error(err))
	}
}
