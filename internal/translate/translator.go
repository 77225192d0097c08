// Package translate calls the third-party translation API for itinerary
// and list content. Fan-out over many items is bounded by a semaphore and
// throttled by a rate limiter so large itineraries cannot overwhelm the
// API, and results are cached per (language, text).
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Config holds translator configuration
type Config struct {
	BaseURL        string
	TargetLanguage string
	MaxConcurrency int
	RatePerSecond  float64
	RateBurst      int
	Timeout        time.Duration
}

// Translator is a rate-limited, caching client for the translation API
type Translator struct {
	baseURL string
	target  string
	client  *http.Client
	limiter *rate.Limiter
	sem     chan struct{}
	logger  *logrus.Logger

	mu    sync.RWMutex
	cache map[cacheKey]string
}

type cacheKey struct {
	lang string
	text string
}

type translateRequest struct {
	Text   string `json:"q"`
	Target string `json:"target"`
}

type translateResponse struct {
	TranslatedText string `json:"translated_text"`
}

// New creates a translator
func New(cfg Config, logger *logrus.Logger) *Translator {
	if logger == nil {
		logger = logrus.New()
	}
	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = 4
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 5
	}
	if cfg.RateBurst < 1 {
		cfg.RateBurst = 1
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Translator{
		baseURL: cfg.BaseURL,
		target:  cfg.TargetLanguage,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
		sem:     make(chan struct{}, cfg.MaxConcurrency),
		logger:  logger,
	}
}

// Translate translates one text, serving repeats from the cache
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", nil
	}

	key := cacheKey{lang: t.target, text: text}
	t.mu.RLock()
	cached, ok := t.cache[key]
	t.mu.RUnlock()
	if ok {
		return cached, nil
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait cancelled: %w", err)
	}

	translated, err := t.call(ctx, text)
	if err != nil {
		return "", err
	}

	t.mu.Lock()
	if t.cache == nil {
		t.cache = make(map[cacheKey]string)
	}
	t.cache[key] = translated
	t.mu.Unlock()

	return translated, nil
}

// TranslateBatch translates texts concurrently, at most MaxConcurrency in
// flight at once, and returns translations in input order. The first error
// aborts nothing already in flight but is reported once all items finish.
func (t *Translator) TranslateBatch(ctx context.Context, texts []string) ([]string, error) {
	results := make([]string, len(texts))
	errs := make([]error, len(texts))

	var wg sync.WaitGroup
	for i, text := range texts {
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()

			select {
			case t.sem <- struct{}{}:
			case <-ctx.Done():
				errs[i] = ctx.Err()
				return
			}
			defer func() { <-t.sem }()

			translated, err := t.Translate(ctx, text)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = translated
		}(i, text)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, fmt.Errorf("batch translation failed: %w", err)
		}
	}
	return results, nil
}

// CacheSize returns the number of cached translations
func (t *Translator) CacheSize() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.cache)
}

func (t *Translator) call(ctx context.Context, text string) (string, error) {
	jsonData, err := json.Marshal(translateRequest{Text: text, Target: t.target})
	if err != nil {
		return "", fmt.Errorf("failed to marshal translation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/translate", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create translation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read translation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
		}).Warn("translation API error")
		return "", fmt.Errorf("translation API returned status %d", resp.StatusCode)
	}

	var parsed translateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse translation response: %w", err)
	}
	return parsed.TranslatedText, nil
}
