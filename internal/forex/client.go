package forex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// APIError represents an error reported by the forex provider, either as
// an HTTP status or as an error object inside a 200 response.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("forex api error %d: %s", e.Code, e.Message)
}

// Client provides access to the forex quote API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new forex API client.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// quote is the provider's per-symbol response shape.
type quote struct {
	Price string `json:"price"`
}

// Prices fetches quotes for all symbols in one batched request and returns
// a map keyed by forex symbol. Symbols the provider did not quote are
// absent from the map.
func (c *Client) Prices(ctx context.Context, symbols []string) (map[string]float64, error) {
	if len(symbols) == 0 {
		return map[string]float64{}, nil
	}

	query := url.Values{}
	query.Set("symbol", strings.Join(symbols, ","))
	if c.apiKey != "" {
		query.Set("apikey", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	return parsePrices(body, symbols)
}

// parsePrices decodes the provider response. The provider returns a flat
// quote object for a single symbol and a symbol-keyed object for a batch;
// error conditions come back as a 200 body carrying a "code" field.
func parsePrices(body []byte, symbols []string) (map[string]float64, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if _, ok := raw["code"]; ok {
		provErr := struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		}{Message: "provider error"}
		_ = json.Unmarshal(body, &provErr)
		return nil, &APIError{Code: provErr.Code, Message: provErr.Message}
	}

	prices := make(map[string]float64, len(symbols))

	// Single-symbol responses are a bare quote object.
	if priceRaw, ok := raw["price"]; ok && len(symbols) == 1 {
		var p string
		if err := json.Unmarshal(priceRaw, &p); err != nil {
			return nil, fmt.Errorf("unmarshal price: %w", err)
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("parse price %q: %w", p, err)
		}
		prices[symbols[0]] = v
		return prices, nil
	}

	for _, sym := range symbols {
		qRaw, ok := raw[sym]
		if !ok {
			continue
		}
		var q quote
		if err := json.Unmarshal(qRaw, &q); err != nil || q.Price == "" {
			continue
		}
		v, err := strconv.ParseFloat(q.Price, 64)
		if err != nil {
			continue
		}
		prices[sym] = v
	}

	return prices, nil
}
