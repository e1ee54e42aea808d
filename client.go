package yahoofinance

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"

	"golang.org/x/net/publicsuffix"

	"yahoofinance/internal/httpx"
)

//go:generate mockgen -package=yahoofinance_test -destination=mock_round_tripper_test.go net/http RoundTripper

const (
	defaultQueryBaseURL  = "https://query1.finance.yahoo.com"
	defaultPageBaseURL   = "https://finance.yahoo.com"
	defaultSearchBaseURL = "https://s.yimg.com"

	defaultSearchRegion = "US"
	defaultSearchLang   = "en-US"
)

// Client talks to the Yahoo Finance web endpoints. It is stateless across
// calls: quote and search requests go out cookie-less, and each
// historical-data call runs its own short-lived cookie session.
type Client struct {
	// queryBaseURL hosts the quote, chart and download endpoints.
	queryBaseURL string
	// pageBaseURL hosts the human-facing quote page the crumb is scraped from.
	pageBaseURL string
	// searchBaseURL hosts the symbol suggestion endpoint.
	searchBaseURL string

	searchRegion string
	searchLang   string

	transport http.RoundTripper
	userAgent string
	log       *slog.Logger

	// plain serves the single-request endpoints that need no cookies.
	plain *http.Client
}

// Option is a configuration option for the client.
type Option func(*Client)

// WithQueryBaseURL overrides the data API host.
func WithQueryBaseURL(u string) Option {
	return func(c *Client) { c.queryBaseURL = u }
}

// WithPageBaseURL overrides the host of the scraped quote page.
func WithPageBaseURL(u string) Option {
	return func(c *Client) { c.pageBaseURL = u }
}

// WithSearchBaseURL overrides the symbol search host.
func WithSearchBaseURL(u string) Option {
	return func(c *Client) { c.searchBaseURL = u }
}

// WithSearchLocale sets the region and language sent with search requests.
func WithSearchLocale(region, lang string) Option {
	return func(c *Client) {
		c.searchRegion = region
		c.searchLang = lang
	}
}

// WithTransport sets the HTTP transport used for every request. Timeouts,
// retries and connection pooling all belong to the transport; the client
// adds nothing on top.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.transport = rt }
}

// WithUserAgent pins the User-Agent instead of the default rotation.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger sets the logger for request-level debug logging.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a client with default endpoints and transport.
func New(options ...Option) (*Client, error) {
	c := &Client{
		queryBaseURL:  defaultQueryBaseURL,
		pageBaseURL:   defaultPageBaseURL,
		searchBaseURL: defaultSearchBaseURL,
		searchRegion:  defaultSearchRegion,
		searchLang:    defaultSearchLang,
		transport:     httpx.NewTransport(),
		userAgent:     httpx.RandomUserAgent(),
		log:           slog.Default(),
	}
	for _, option := range options {
		option(c)
	}
	c.plain = &http.Client{Transport: c.transport}
	return c, nil
}

// newSession builds an http.Client with a fresh cookie jar for one
// two-step historical fetch. The jar is never reused across calls.
func (c *Client) newSession() (*http.Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	return &http.Client{Transport: c.transport, Jar: jar}, nil
}

// get issues one GET and returns the full body. Transport failures and
// non-OK statuses are returned without wrapping in an error kind.
func (c *Client) get(ctx context.Context, hc *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "*/*")

	c.log.Debug("yahoofinance: GET", slog.String("url", url))

	res, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return nil, fmt.Errorf("GET %s: unexpected status %d: %s", url, res.StatusCode, b)
	}
	return io.ReadAll(res.Body)
}
