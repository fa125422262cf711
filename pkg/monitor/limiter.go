package monitor

import (
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiterStore hands out one limiter per key (a city for the on-demand
// weather endpoint, a client for gRPC calls).
type RateLimiterStore struct {
	limiters     map[string]*rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
}

func NewRateLimiterStore(defaultRate rate.Limit, defaultBurst int) *RateLimiterStore {
	return &RateLimiterStore{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  defaultRate,
		defaultBurst: defaultBurst,
	}
}

func (s *RateLimiterStore) GetLimiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(s.defaultRate, s.defaultBurst)
		s.limiters[key] = limiter
	}
	return limiter
}

func (s *RateLimiterStore) SetLimiter(key string, keyRate rate.Limit, keyBurst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limiters[key] = rate.NewLimiter(keyRate, keyBurst)
}

// Allow reports whether a call for key may proceed now.
func (s *RateLimiterStore) Allow(key string) bool {
	return s.GetLimiter(key).Allow()
}

// Len reports how many keys hold a limiter.
func (s *RateLimiterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}
