package scraper

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/Vina-13dev/FbrefBoT/internal/matchlog"
)

// testConfig is a deterministic fetch configuration: one fixed
// identity, no delays.
func testConfig() Config {
	return Config{
		Identities: []Identity{
			{UserAgent: "fbrefbot-test/1.0", Headers: map[string]string{"Accept": "text/html"}},
		},
		Timeout: 5 * time.Second,
	}
}

func TestFetchSendsIdentity(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	s := New(testConfig())
	body, err := s.Fetch(srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if body != "<html></html>" {
		t.Errorf("unexpected body: %q", body)
	}
	if gotUA != "fbrefbot-test/1.0" {
		t.Errorf("expected configured user agent, got %q", gotUA)
	}
	if gotAccept != "text/html" {
		t.Errorf("expected configured Accept header, got %q", gotAccept)
	}
}

func TestFetchClassifiesStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{
			name:   "403 is blocked",
			status: http.StatusForbidden,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, matchlog.ErrBlocked) {
					t.Errorf("expected ErrBlocked, got %v", err)
				}
			},
		},
		{
			name:   "429 is rate limited",
			status: http.StatusTooManyRequests,
			check: func(t *testing.T, err error) {
				if !errors.Is(err, matchlog.ErrRateLimited) {
					t.Errorf("expected ErrRateLimited, got %v", err)
				}
			},
		},
		{
			name:   "500 is a transport error",
			status: http.StatusInternalServerError,
			check: func(t *testing.T, err error) {
				var te *matchlog.TransportError
				if !errors.As(err, &te) {
					t.Errorf("expected TransportError, got %v", err)
				}
			},
		},
		{
			name:   "404 is a transport error",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				var te *matchlog.TransportError
				if !errors.As(err, &te) {
					t.Errorf("expected TransportError, got %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			s := New(testConfig())
			if _, err := s.Fetch(srv.URL); err == nil {
				t.Fatal("expected an error")
			} else {
				tt.check(t, err)
			}
		})
	}
}

func TestFetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // fetch against a closed server

	s := New(testConfig())
	_, err := s.Fetch(srv.URL)
	var te *matchlog.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestMatchLogsFromFixture(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/squad_page.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()

	s := New(testConfig())
	records, err := s.MatchLogs(srv.URL, "Juventus", "Serie A")
	if err != nil {
		t.Fatalf("MatchLogs failed: %v", err)
	}

	// The fixture's table lives inside an HTML comment; reaching it at
	// all proves the sanitize step ran before parsing. Of its four
	// rows, the Coppa Italia row fails the filter and the Supercoppa
	// row has a neutral venue.
	expected := []matchlog.Record{
		{Team: "Juventus", Venue: matchlog.VenueHome, XGFor: "1.8", XGAgainst: "0.9"},
		{Team: "Juventus", Venue: matchlog.VenueAway, XGFor: "1.2", XGAgainst: "1.5"},
	}
	if len(records) != len(expected) {
		t.Fatalf("expected %d records, got %d: %+v", len(expected), len(records), records)
	}
	for i, want := range expected {
		if records[i] != want {
			t.Errorf("record %d = %+v, expected %+v", i, records[i], want)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if len(cfg.Identities) == 0 {
		t.Fatal("default config must carry a user-agent pool")
	}
	for i, id := range cfg.Identities {
		if id.UserAgent == "" {
			t.Errorf("identity %d has an empty user agent", i)
		}
		if len(id.Headers) == 0 {
			t.Errorf("identity %d has no matched headers", i)
		}
	}
	if cfg.DelayMax < cfg.DelayMin {
		t.Error("delay range is inverted")
	}
	if cfg.Timeout < 30*time.Second || cfg.Timeout > 45*time.Second {
		t.Errorf("timeout %v outside the expected generous range", cfg.Timeout)
	}
}
