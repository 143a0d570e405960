package understat

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/Vina-13dev/FbrefBoT/internal/matchlog"
)

// stubSource is a canned Source for adapter tests.
type stubSource struct {
	teams      []Team
	results    []Result
	gotLeague  string
	gotSeason  string
	gotTeamKey string
}

func (s *stubSource) LeagueTeams(leagueCode, season string) ([]Team, error) {
	s.gotLeague = leagueCode
	s.gotSeason = season
	return s.teams, nil
}

func (s *stubSource) TeamResults(teamKey, season string) ([]Result, error) {
	s.gotTeamKey = teamKey
	return s.results, nil
}

func TestLeagueCode(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"Premier League", "EPL", true},
		{"La Liga", "La_liga", true},
		{"Serie A", "Serie_A", true},
		{"Russian Premier League", "RFPL", true},
		{"EPL", "EPL", true}, // already a code
		{"Eredivisie", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := LeagueCode(tt.name)
			if ok != tt.ok || code != tt.want {
				t.Errorf("LeagueCode(%q) = (%q, %v), expected (%q, %v)", tt.name, code, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestTeamMatches(t *testing.T) {
	src := &stubSource{
		teams: []Team{
			{ID: "89", Title: "Manchester United"},
			{ID: "87", Title: "Liverpool"},
		},
		results: []Result{
			{ID: "1", Side: "h", XG: 1.834, XGA: 0.251},
			{ID: "2", Side: "a", XG: 0.9, XGA: 2.4},
		},
	}

	records, err := TeamMatches(src, "manchester united", "Premier League", "2025")
	if err != nil {
		t.Fatalf("TeamMatches failed: %v", err)
	}

	if src.gotLeague != "EPL" || src.gotSeason != "2025" {
		t.Errorf("roster queried with (%q, %q), expected (EPL, 2025)", src.gotLeague, src.gotSeason)
	}
	// Results are keyed by the resolved display title, underscored and
	// case preserved.
	if src.gotTeamKey != "Manchester_United" {
		t.Errorf("results queried with key %q, expected Manchester_United", src.gotTeamKey)
	}

	expected := []matchlog.Record{
		{Team: "Manchester United", Venue: matchlog.VenueHome, XGFor: "1.83", XGAgainst: "0.25"},
		{Team: "Manchester United", Venue: matchlog.VenueAway, XGFor: "0.90", XGAgainst: "2.40"},
	}
	if len(records) != len(expected) {
		t.Fatalf("expected %d records, got %d", len(expected), len(records))
	}
	for i, want := range expected {
		if records[i] != want {
			t.Errorf("record %d = %+v, expected %+v", i, records[i], want)
		}
	}
}

func TestTeamMatchesCap(t *testing.T) {
	src := &stubSource{
		teams: []Team{{ID: "87", Title: "Liverpool"}},
	}
	for i := 0; i < 30; i++ {
		src.results = append(src.results, Result{ID: fmt.Sprint(i), Side: "h", XG: float64(i), XGA: 1})
	}

	records, err := TeamMatches(src, "Liverpool", "Premier League", "2025")
	if err != nil {
		t.Fatalf("TeamMatches failed: %v", err)
	}
	if len(records) != matchlog.MaxRecords {
		t.Fatalf("expected %d records, got %d", matchlog.MaxRecords, len(records))
	}
	if records[0].XGFor != "0.00" || records[14].XGFor != "14.00" {
		t.Errorf("cap did not keep the first results in order: %+v", records)
	}
}

func TestTeamMatchesTeamNotFound(t *testing.T) {
	src := &stubSource{
		teams: []Team{
			{ID: "1", Title: "Arsenal"},
			{ID: "2", Title: "Chelsea"},
		},
	}

	_, err := TeamMatches(src, "Leeds", "Premier League", "2025")
	var notFound *matchlog.TeamNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected TeamNotFoundError, got %v", err)
	}

	names := append([]string(nil), notFound.Available...)
	sort.Strings(names)
	if len(names) != 2 || names[0] != "Arsenal" || names[1] != "Chelsea" {
		t.Errorf("expected full roster in diagnostics, got %v", names)
	}
}

func TestTeamMatchesUnknownLeague(t *testing.T) {
	if _, err := TeamMatches(&stubSource{}, "Ajax", "Eredivisie", "2025"); err == nil {
		t.Fatal("expected an error for an unsupported league")
	}
}

func TestClientEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/league/EPL/2025/teams":
			fmt.Fprint(w, `[{"id":"89","title":"Manchester United"}]`)
		case "/team/Manchester_United/2025/results":
			fmt.Fprint(w, `[{"id":"101","side":"a","xG":1.5,"xGA":0.7}]`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.URL)

	teams, err := c.LeagueTeams("EPL", "2025")
	if err != nil {
		t.Fatalf("LeagueTeams failed: %v", err)
	}
	if len(teams) != 1 || teams[0].Title != "Manchester United" {
		t.Errorf("unexpected roster: %+v", teams)
	}

	results, err := c.TeamResults("Manchester_United", "2025")
	if err != nil {
		t.Fatalf("TeamResults failed: %v", err)
	}
	if len(results) != 1 || results[0].Side != "a" || results[0].XG != 1.5 {
		t.Errorf("unexpected results: %+v", results)
	}

	if _, err := c.LeagueTeams("EPL", "1999"); err == nil {
		t.Error("expected an error for a missing season")
	}
}
