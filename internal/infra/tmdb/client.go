// Package tmdb implements the TMDB movie metadata client.
package tmdb

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/eguilbert/cineapi/internal/domain"
)

// ClientConfig holds configuration for the TMDB client. Either a v4
// bearer token or a v3 api key must be set.
type ClientConfig struct {
	BaseURL  string
	Bearer   string
	APIKey   string
	Language string
	Timeout  time.Duration
	Retry    RetryConfig
	CB       CBConfig
}

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxAttempts int
	WaitTime    time.Duration
	MaxWaitTime time.Duration
}

// CBConfig holds circuit breaker configuration.
type CBConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
}

// Client implements domain.Catalog against the TMDB REST API.
type Client struct {
	client   *resty.Client
	cb       *gobreaker.CircuitBreaker[*resty.Response]
	language string
	logger   *zap.Logger
}

// New creates a new TMDB client.
func New(cfg ClientConfig, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retry.MaxAttempts).
		SetRetryWaitTime(cfg.Retry.WaitTime).
		SetRetryMaxWaitTime(cfg.Retry.MaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Retry on network errors or 5xx status codes
			if err != nil {
				return true
			}

			return r.StatusCode() >= 500
		})

	if cfg.Bearer != "" {
		client.SetAuthToken(cfg.Bearer)
	} else if cfg.APIKey != "" {
		client.SetQueryParam("api_key", cfg.APIKey)
	}

	language := cfg.Language
	if language == "" {
		language = "fr-FR"
	}

	settings := gobreaker.Settings{
		Name:        "tmdb",
		MaxRequests: cfg.CB.MaxRequests,
		Interval:    cfg.CB.Interval,
		Timeout:     cfg.CB.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.Requests >= 3 && failureRatio >= cfg.CB.FailureRatio
		},
	}

	return &Client{
		client:   client,
		cb:       gobreaker.NewCircuitBreaker[*resty.Response](settings),
		language: language,
		logger:   logger,
	}
}

// FetchMovie retrieves full metadata for one movie: details plus credits
// and videos in a single round trip. The returned Film has no internal ID.
func (c *Client) FetchMovie(ctx context.Context, tmdbID int64) (*domain.Film, error) {
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		var result movieResponse
		r, err := c.client.R().
			SetContext(ctx).
			SetResult(&result).
			SetQueryParam("language", c.language).
			SetQueryParam("append_to_response", "credits,videos,release_dates").
			Get(fmt.Sprintf("/movie/%d", tmdbID))
		if err != nil {
			return nil, err
		}
		if r.StatusCode() == 404 {
			return nil, domain.NotFoundf("tmdb movie %d", tmdbID)
		}
		if r.IsError() {
			return nil, fmt.Errorf("tmdb returned status %d", r.StatusCode())
		}

		return r, nil
	})

	if err != nil {
		if domain.IsNotFound(err) {
			return nil, err
		}

		c.logger.Warn("tmdb fetch failed",
			zap.Int64("tmdb_id", tmdbID),
			zap.Error(err),
			zap.String("state", c.cb.State().String()),
		)

		return nil, fmt.Errorf("fetching tmdb movie %d: %w", tmdbID, err)
	}

	result := resp.Result().(*movieResponse)
	film := result.ToDomain()

	c.logger.Debug("tmdb fetch completed",
		zap.Int64("tmdb_id", tmdbID),
		zap.String("title", film.Title),
	)

	return film, nil
}

// HealthCheck verifies the TMDB API is accessible.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Get("/configuration")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("health check returned status %d", resp.StatusCode())
	}

	return nil
}
