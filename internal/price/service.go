package price

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKey = "price:v1:nano:eur"

// tickerInfo mirrors the coinmarketcap ticker response, reduced to the
// fields the bot reads.
type tickerInfo struct {
	Data struct {
		Quotes struct {
			EUR struct {
				Price float64 `json:"price"`
			} `json:"EUR"`
		} `json:"quotes"`
	} `json:"data"`
}

// Service fetches the NANO price in euros from a public ticker, keeping the
// last quote in Redis for a short TTL. Cache trouble fails open to a direct
// fetch; a nil cache disables caching entirely.
type Service struct {
	url    string
	ttl    time.Duration
	client *http.Client
	cache  *redis.Client
	logger *slog.Logger
}

// NewService builds a price service.
func NewService(url string, ttl time.Duration, timeout time.Duration, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{
		url:    url,
		ttl:    ttl,
		client: &http.Client{Timeout: timeout},
		cache:  cache,
		logger: logger,
	}
}

// NanoPriceEUR returns the current price of one NANO in euros.
func (s *Service) NanoPriceEUR(ctx context.Context) (float64, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Float64()
		if err == nil {
			return cached, nil
		}
		if err != redis.Nil {
			s.logger.Warn("price cache lookup failed", "error", err)
		}
	}

	value, err := s.fetch(ctx)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, value, s.ttl).Err(); err != nil {
			s.logger.Warn("price cache store failed", "error", err)
		}
	}
	return value, nil
}

func (s *Service) fetch(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return 0, fmt.Errorf("build ticker request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call ticker: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read ticker response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("ticker returned status %d", resp.StatusCode)
	}

	var info tickerInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return 0, fmt.Errorf("decode ticker response: %w", err)
	}
	return info.Data.Quotes.EUR.Price, nil
}
