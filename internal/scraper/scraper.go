package scraper

import (
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/Vina-13dev/FbrefBoT/internal/logger"
	"github.com/Vina-13dev/FbrefBoT/internal/matchlog"
)

// Identity is one browser fingerprint: a user agent and the header set
// that browser would actually send alongside it.
type Identity struct {
	UserAgent string
	Headers   map[string]string
}

// Config holds the fetch identity pool and pacing parameters. It is
// injected rather than read from package globals so tests can run with
// a fixed identity and zero delay.
type Config struct {
	// Identities is the pool a random fingerprint is drawn from per
	// request. Must be non-empty.
	Identities []Identity

	// DelayMin/DelayMax bound the randomized pause before each request.
	DelayMin time.Duration
	DelayMax time.Duration

	// SettleMin/SettleMax bound a second randomized pause after a
	// successful response, so the request cadence never looks fixed.
	SettleMin time.Duration
	SettleMax time.Duration

	// Timeout applies to the whole HTTP exchange.
	Timeout time.Duration
}

// chromeHeaders is the header set Chrome on Windows sends for a
// top-level navigation. Accept-Encoding is deliberately absent: the Go
// transport negotiates gzip itself (and transparently decompresses),
// which matches what a browser puts on the wire.
var chromeHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9,pt-BR;q=0.8",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Sec-Fetch-User":            "?1",
}

var firefoxHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.5",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Sec-Fetch-User":            "?1",
}

// DefaultConfig returns the production fetch configuration: a pool of
// current desktop-browser identities and multi-second randomized
// pacing.
func DefaultConfig() Config {
	return Config{
		Identities: []Identity{
			{
				UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
				Headers:   chromeHeaders,
			},
			{
				UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
				Headers:   chromeHeaders,
			},
			{
				UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:127.0) Gecko/20100101 Firefox/127.0",
				Headers:   firefoxHeaders,
			},
			{
				UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
				Headers:   firefoxHeaders,
			},
		},
		DelayMin:  2 * time.Second,
		DelayMax:  5 * time.Second,
		SettleMin: 1 * time.Second,
		SettleMax: 3 * time.Second,
		Timeout:   40 * time.Second,
	}
}

// Scraper fetches and parses FBref match-log pages.
type Scraper struct {
	client *http.Client
	cfg    Config
	rng    *rand.Rand
}

// New creates a Scraper with the given configuration.
func New(cfg Config) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		cfg: cfg,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// MatchLogs fetches a team's statistics page and extracts its recent
// matches in the given competition. teamName is stamped onto every
// record as supplied by the caller.
func (s *Scraper) MatchLogs(pageURL, teamName, competition string) ([]matchlog.Record, error) {
	body, err := s.Fetch(pageURL)
	if err != nil {
		return nil, err
	}

	// The match-log table is frequently emitted inside an HTML
	// comment; strip the markers before structural parsing.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(StripComments(body)))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	table, err := findMatchLogTable(doc)
	if err != nil {
		return nil, err
	}

	records, err := extract(table, teamName, competition)
	if err != nil {
		return nil, err
	}

	logger.Info("extracted match log", logger.Fields{
		"team":        teamName,
		"competition": competition,
		"records":     len(records),
	})
	return records, nil
}

// Fetch issues a single GET for the page under a randomized identity
// and randomized pacing, and classifies failures. It never retries.
func (s *Scraper) Fetch(pageURL string) (string, error) {
	s.sleep(s.cfg.DelayMin, s.cfg.DelayMax)

	req, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	id := s.cfg.Identities[s.rng.Intn(len(s.cfg.Identities))]
	req.Header.Set("User-Agent", id.UserAgent)
	for k, v := range id.Headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logger.IncrCounter("fetch.transport_error")
		return "", &matchlog.TransportError{Detail: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", classifyStatus(resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.IncrCounter("fetch.transport_error")
		return "", &matchlog.TransportError{Detail: "reading response body", Err: err}
	}

	logger.IncrCounter("fetch.ok")
	logger.Debug("fetched page", logger.Fields{
		"url":   pageURL,
		"bytes": len(body),
	})

	s.sleep(s.cfg.SettleMin, s.cfg.SettleMax)
	return string(body), nil
}

// sleep pauses for a uniformly random duration in [min, max].
func (s *Scraper) sleep(min, max time.Duration) {
	if max <= 0 {
		return
	}
	d := min
	if max > min {
		d += time.Duration(s.rng.Int63n(int64(max - min + 1)))
	}
	time.Sleep(d)
}

// classifyStatus maps a non-2xx status to the failure taxonomy: 403 is
// an active block, 429 a rate limit, everything else a plain transport
// failure.
func classifyStatus(status int, pageURL string) error {
	switch status {
	case http.StatusForbidden:
		logger.IncrCounter("fetch.blocked")
		return fmt.Errorf("fetching %s: %w", pageURL, matchlog.ErrBlocked)
	case http.StatusTooManyRequests:
		logger.IncrCounter("fetch.rate_limited")
		return fmt.Errorf("fetching %s: %w", pageURL, matchlog.ErrRateLimited)
	default:
		logger.IncrCounter("fetch.transport_error")
		return &matchlog.TransportError{Detail: fmt.Sprintf("unexpected status %d for %s", status, pageURL)}
	}
}
