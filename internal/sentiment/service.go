package sentiment

import (
	"context"

	"github.com/AlessandroLop/evaluacion-api/internal/domain"
	"github.com/AlessandroLop/evaluacion-api/internal/metrics"
)

// MaxTexts is the provider-imposed ceiling on documents per request.
const MaxTexts = 10

// Analyzer is the outbound provider call, satisfied by *Client.
type Analyzer interface {
	Analyze(ctx context.Context, texts []string) ([]domain.SentimentResult, error)
}

// Service composes the result cache with the provider gateway.
type Service struct {
	client Analyzer
	cache  *Cache
}

// NewService wires the gateway behind the cache.
func NewService(client Analyzer, cache *Cache) *Service {
	return &Service{client: client, cache: cache}
}

// Analyze serves the texts from the cache when possible, otherwise calls
// the provider and caches the outcome. The bool reports whether the
// response came from the cache.
func (s *Service) Analyze(ctx context.Context, texts []string) ([]domain.SentimentResult, bool, error) {
	key := Key(texts)

	// Expired entries are dropped before every lookup; Get alone never
	// removes anything.
	s.cache.Sweep()

	if cached, ok := s.cache.Get(key); ok {
		metrics.SentimentCacheHits.Inc()
		return cached, true, nil
	}
	metrics.SentimentCacheMisses.Inc()

	results, err := s.client.Analyze(ctx, texts)
	if err != nil {
		return nil, false, err
	}

	s.cache.Put(key, results)
	return results, false, nil
}
