package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/jstittsworth/fpl-rewind/internal/fpl"
)

const defaultFPLBaseURL = "https://fantasy.premierleague.com/api"

// FPLClient talks to the public Fantasy Premier League API. Requests are rate
// limited client-side and go through a circuit breaker so a flapping upstream
// fails fast instead of tying up request handlers.
type FPLClient struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *logrus.Logger
}

// NewFPLClient creates a new FPL API client. rps bounds outgoing requests per
// second; breakerThreshold is the consecutive-failure count that opens the
// circuit.
func NewFPLClient(baseURL string, timeout time.Duration, rps, breakerThreshold int, logger *logrus.Logger) *FPLClient {
	if baseURL == "" {
		baseURL = defaultFPLBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if rps <= 0 {
		rps = 5
	}
	if breakerThreshold <= 0 {
		breakerThreshold = 5
	}

	settings := gobreaker.Settings{
		Name: "fpl-api",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(breakerThreshold)
		},
	}

	return &FPLClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

type bootstrapResponse struct {
	Elements []fpl.ElementRef `json:"elements"`
}

type elementSummaryResponse struct {
	History []fpl.HistoryRow `json:"history"`
}

// GetBootstrapElements fetches the bootstrap element list used to resolve
// incoming identifiers (element ids vs. codes).
func (c *FPLClient) GetBootstrapElements(ctx context.Context) ([]fpl.ElementRef, error) {
	var resp bootstrapResponse
	if err := c.getJSON(ctx, "/bootstrap-static/", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch bootstrap elements: %w", err)
	}
	return resp.Elements, nil
}

// GetElementHistory fetches a player's per-round history for the current
// season.
func (c *FPLClient) GetElementHistory(ctx context.Context, elementID int) ([]fpl.HistoryRow, error) {
	var resp elementSummaryResponse
	path := fmt.Sprintf("/element-summary/%d/", elementID)
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch element %d history: %w", elementID, err)
	}
	return resp.History, nil
}

func (c *FPLClient) getJSON(ctx context.Context, path string, target interface{}) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.makeRequest(ctx, c.baseURL+path, target)
	})
	return err
}

// makeRequest performs an HTTP GET with exponential backoff. Non-retryable
// client errors return immediately; transport failures and 5xx/429 responses
// retry up to three attempts.
func (c *FPLClient) makeRequest(ctx context.Context, url string, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			waitTime := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			c.logger.Warnf("Request failed (attempt %d), waiting %v: %v", attempt, waitTime, lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(waitTime):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "Mozilla/5.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			if !isRetryableStatus(resp.StatusCode) {
				return lastErr
			}
			continue
		}

		err = json.NewDecoder(resp.Body).Decode(target)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	return fmt.Errorf("request failed after retries: %w", lastErr)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
