// Package rates looks up currency exchange rates from an HTTP rate service
// that answers GET {base_url}/{BASE} with {"base": "...", "rates": {...}}.
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"physcalc/internal/config"
	"physcalc/internal/observability"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

var (
	// ErrUnknownCurrency means the service has no rate for the requested code.
	ErrUnknownCurrency = errors.New("unknown currency")
	// ErrInvalidCode means a currency code is not three letters.
	ErrInvalidCode = errors.New("currency code must be three letters")
	// ErrInvalidRate means the service answered with a rate that is not positive.
	ErrInvalidRate = errors.New("exchange rate must be positive")
)

var codePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Client fetches rates with a single request per lookup. It does not cache
// or retry.
type Client struct {
	baseURL string
	http    *http.Client
}

type latestResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// New builds a client from the rates configuration. The transport is traced
// so lookups appear as child spans of the evaluation.
func New(cfg config.RatesConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Rates returns every rate quoted against base.
func (c *Client) Rates(ctx context.Context, base string) (map[string]float64, error) {
	base, err := normalize(base)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+base, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	observability.LoggerWithTrace(ctx).Debug("rate lookup",
		zap.String("base", base),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("rate service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode rate response: %w", err)
	}
	if len(payload.Rates) == 0 {
		return nil, errors.New("rate response contains no rates")
	}

	return payload.Rates, nil
}

// Rate returns how many units of to one unit of from buys.
func (c *Client) Rate(ctx context.Context, from, to string) (float64, error) {
	to, err := normalize(to)
	if err != nil {
		return 0, err
	}

	all, err := c.Rates(ctx, from)
	if err != nil {
		return 0, err
	}

	rate, ok := all[to]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCurrency, to)
	}
	if !(rate > 0) {
		return 0, fmt.Errorf("%w: %s->%s is %g", ErrInvalidRate, from, to, rate)
	}
	return rate, nil
}

func normalize(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !codePattern.MatchString(code) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}
	return code, nil
}
