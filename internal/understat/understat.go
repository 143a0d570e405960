// Package understat produces canonical match records from the Understat
// statistics service instead of scraping FBref.
//
// Understat covers six leagues with structured per-match xG data, which
// removes the whole anti-bot problem at the cost of narrower coverage.
// The transport behind the Source interface is a plain JSON client;
// everything interesting lives in the adapter: resolving a stored team
// name against the league roster and mapping the first fifteen results
// into the shared record shape.
package understat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Vina-13dev/FbrefBoT/internal/matchlog"
	"github.com/Vina-13dev/FbrefBoT/internal/normalize"
)

// leagueCodes maps the display names offered to users onto Understat's
// short league codes. Coverage starts with the 2014/15 season.
var leagueCodes = map[string]string{
	"Premier League":         "EPL",
	"La Liga":                "La_liga",
	"Bundesliga":             "Bundesliga",
	"Serie A":                "Serie_A",
	"Ligue 1":                "Ligue_1",
	"Russian Premier League": "RFPL",
}

// Leagues returns the supported league display names, sorted.
func Leagues() []string {
	names := make([]string, 0, len(leagueCodes))
	for name := range leagueCodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LeagueCode resolves a league display name to its Understat code. A
// value that already is a code passes through unchanged.
func LeagueCode(name string) (string, bool) {
	if code, ok := leagueCodes[name]; ok {
		return code, true
	}
	for _, code := range leagueCodes {
		if code == name {
			return name, true
		}
	}
	return "", false
}

// Team is one entry of a league roster.
type Team struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Result is one match of a team's season history. Side is "h" for home
// and "a" for away.
type Result struct {
	ID   string  `json:"id"`
	Side string  `json:"side"`
	XG   float64 `json:"xG"`
	XGA  float64 `json:"xGA"`
}

// Source is the Understat transport boundary: a league roster lookup
// and a team's season results. The HTTP client implements it; tests
// substitute a stub.
type Source interface {
	LeagueTeams(leagueCode, season string) ([]Team, error)
	TeamResults(teamKey, season string) ([]Result, error)
}

// TeamMatches resolves teamName against the league's roster and maps
// the team's most recent matches into canonical records.
//
// Resolution is exact equality after coarse normalization (lowercase,
// trimmed, spaces to underscores) — not the substring matching the
// FBref path uses for competitions. On a miss the error carries every
// roster display name so the user can fix the stored spelling.
func TeamMatches(src Source, teamName, league, season string) ([]matchlog.Record, error) {
	code, ok := LeagueCode(league)
	if !ok {
		return nil, fmt.Errorf("unknown league %q (available: %s)", league, strings.Join(Leagues(), ", "))
	}

	teams, err := src.LeagueTeams(code, season)
	if err != nil {
		return nil, fmt.Errorf("loading %s roster: %w", league, err)
	}

	want := normalize.Key(teamName)
	var resolved *Team
	for i := range teams {
		if normalize.Key(teams[i].Title) == want {
			resolved = &teams[i]
			break
		}
	}
	if resolved == nil {
		available := make([]string, 0, len(teams))
		for _, t := range teams {
			available = append(available, t.Title)
		}
		return nil, &matchlog.TeamNotFoundError{Name: teamName, Available: available}
	}

	// Understat keys team pages by the display title with spaces
	// replaced by underscores, case preserved.
	results, err := src.TeamResults(strings.ReplaceAll(resolved.Title, " ", "_"), season)
	if err != nil {
		return nil, fmt.Errorf("loading results for %s: %w", resolved.Title, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no matches found for %s in season %s", resolved.Title, season)
	}

	if len(results) > matchlog.MaxRecords {
		results = results[:matchlog.MaxRecords]
	}

	records := make([]matchlog.Record, 0, len(results))
	for _, r := range results {
		venue := matchlog.VenueAway
		if r.Side == "h" {
			venue = matchlog.VenueHome
		}
		records = append(records, matchlog.Record{
			Team:      resolved.Title,
			Venue:     venue,
			XGFor:     fmt.Sprintf("%.2f", r.XG),
			XGAgainst: fmt.Sprintf("%.2f", r.XGA),
		})
	}
	return records, nil
}
