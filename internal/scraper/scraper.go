package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/lastfm-events/internal/logger"
)

const (
	DefaultBaseURL = "https://www.last.fm"
	UserAgent      = "lastfm-events/1.0 (github.com/pfrederiksen/lastfm-events)"
	Timeout        = 30 * time.Second
)

// Scraper handles fetching Last.fm user event pages
type Scraper struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// Option configures a Scraper
type Option func(*Scraper)

// WithBaseURL overrides the site the events page is fetched from
func WithBaseURL(baseURL string) Option {
	return func(s *Scraper) {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithUserAgent overrides the User-Agent header sent with the request
func WithUserAgent(userAgent string) Option {
	return func(s *Scraper) {
		s.userAgent = userAgent
	}
}

// New creates a new Scraper using client for all requests.
// A nil client is replaced by one with the default timeout.
func New(client *http.Client, opts ...Option) *Scraper {
	if client == nil {
		client = &http.Client{
			Timeout: Timeout,
		}
	}

	s := &Scraper{
		client:    client,
		baseURL:   DefaultBaseURL,
		userAgent: UserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BaseURL returns the site the scraper fetches from
func (s *Scraper) BaseURL() string {
	return s.baseURL
}

// EventsURL builds the events page URL for a user.
// An empty year yields the upcoming events page.
func EventsURL(baseURL, username, year string) string {
	return fmt.Sprintf("%s/user/%s/events/%s",
		strings.TrimRight(baseURL, "/"), url.PathEscape(username), url.PathEscape(year))
}

// Fetch retrieves and parses the events page for username and year
func (s *Scraper) Fetch(ctx context.Context, username, year string) (*goquery.Document, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrUsernameRequired
	}

	pageURL := EventsURL(s.baseURL, username, year)
	logger.Debug("Fetching events page", logger.Fields{"url": pageURL})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			URL:        pageURL,
			StatusCode: resp.StatusCode,
			Err:        errors.New(resp.Status),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	elapsed := time.Since(start)
	logger.RecordTiming("fetch", elapsed)
	logger.Info("Fetched events page", logger.Fields{
		"url":         pageURL,
		"status":      resp.StatusCode,
		"duration_ms": elapsed.Milliseconds(),
	})

	return doc, nil
}

// Events fetches the events page and returns an iterator over its rows
func (s *Scraper) Events(ctx context.Context, username, year string) (*Iterator, error) {
	doc, err := s.Fetch(ctx, username, year)
	if err != nil {
		return nil, err
	}
	return NewIterator(doc, s.baseURL), nil
}
