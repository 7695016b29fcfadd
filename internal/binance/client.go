package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Depth is the raw order book for one market: best-first rows of
// [priceString, qtyString].
type Depth struct {
	Bids [][]string `json:"bids"`
	Asks [][]string `json:"asks"`
}

// Client provides access to the exchange depth endpoint.
type Client struct {
	baseURL    string
	proxyURL   string
	userAgent  string
	depth      int
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new depth client.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   baseURL,
		userAgent: "Mozilla/5.0",
		depth:     10,
		httpClient: &http.Client{
			Timeout: 8 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithProxy routes requests through the given relay prefix. The target URL
// is appended query-escaped.
func WithProxy(proxyURL string) ClientOption {
	return func(c *Client) {
		c.proxyURL = proxyURL
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithDepth sets the requested depth limit.
func WithDepth(n int) ClientOption {
	return func(c *Client) {
		c.depth = n
	}
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

// Depth fetches the order book for one market symbol.
func (c *Client) Depth(ctx context.Context, symbol string) (*Depth, error) {
	query := url.Values{}
	query.Set("symbol", symbol)
	query.Set("limit", strconv.Itoa(c.depth))
	target := c.baseURL + "?" + query.Encode()

	fullURL := target
	if c.proxyURL != "" {
		fullURL = c.proxyURL + url.QueryEscape(target)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

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
		return nil, fmt.Errorf("depth %s: status %d", symbol, resp.StatusCode)
	}

	var depth Depth
	if err := json.Unmarshal(body, &depth); err != nil {
		return nil, fmt.Errorf("unmarshal depth: %w", err)
	}

	return &depth, nil
}
