package scraper

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/Vina-13dev/FbrefBoT/internal/matchlog"
	"github.com/Vina-13dev/FbrefBoT/internal/normalize"
)

// idPrefixes and captionMarkers identify the "all competitions" match
// log among the many stat tables on a squad page.
var (
	idPrefixes     = []string{"matchlogs_", "sched_"}
	captionMarkers = []string{"all competitions", "scores", "fixtures"}
)

// sentinels are the "no data" tokens FBref puts in xG cells for
// matches without advanced stats.
var sentinels = map[string]bool{
	"":  true,
	"-": true,
	"—": true,
}

// findMatchLogTable walks the document's tables in order and returns
// the first one whose id looks like a match log and whose caption
// mentions scores/fixtures. First match wins.
func findMatchLogTable(doc *goquery.Document) (*goquery.Selection, error) {
	var table *goquery.Selection

	doc.Find("table").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		id := sel.AttrOr("id", "")
		if !hasMatchLogID(id) {
			return true
		}

		caption := strings.ToLower(strings.TrimSpace(sel.Find("caption").First().Text()))
		for _, marker := range captionMarkers {
			if strings.Contains(caption, marker) {
				table = sel
				return false
			}
		}
		return true
	})

	if table == nil {
		return nil, matchlog.ErrTableNotFound
	}
	return table, nil
}

func hasMatchLogID(id string) bool {
	for _, prefix := range idPrefixes {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(id), "scores")
}

// extract walks the table body in document order and collects up to
// MaxRecords matches in the given competition. Rows with missing or
// sentinel xG cells, unparseable xG values, or a venue other than
// exactly Home/Away are silently excluded. If nothing is accepted the
// error carries every competition label seen in the body, so the
// caller can show what the table actually contained.
func extract(table *goquery.Selection, teamName, competition string) ([]matchlog.Record, error) {
	tbody := table.Find("tbody").First()
	if tbody.Length() == 0 {
		return nil, matchlog.ErrBodyNotFound
	}

	wantComp := normalize.Fold(competition)
	observed := make(map[string]bool)
	records := make([]matchlog.Record, 0, matchlog.MaxRecords)

	tbody.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if len(records) >= matchlog.MaxRecords {
			return false
		}

		compCell := row.Find(`td[data-stat="comp"]`).First()
		if compCell.Length() == 0 {
			return true
		}
		compText := strings.TrimSpace(compCell.Text())
		observed[compText] = true

		if !strings.Contains(normalize.Fold(compText), wantComp) {
			return true
		}

		xgFor := cellText(row, "xg_for")
		xgAgainst := cellText(row, "xg_against")
		if sentinels[xgFor] || sentinels[xgAgainst] {
			return true
		}
		if _, err := strconv.ParseFloat(xgFor, 64); err != nil {
			return true
		}
		if _, err := strconv.ParseFloat(xgAgainst, 64); err != nil {
			return true
		}

		var venue matchlog.Venue
		switch cellText(row, "venue") {
		case "Home":
			venue = matchlog.VenueHome
		case "Away":
			venue = matchlog.VenueAway
		default:
			// Neutral grounds and blank cells are excluded, never
			// defaulted.
			return true
		}

		records = append(records, matchlog.Record{
			Team:      teamName,
			Venue:     venue,
			XGFor:     xgFor,
			XGAgainst: xgAgainst,
		})
		return true
	})

	if len(records) == 0 {
		comps := make([]string, 0, len(observed))
		for c := range observed {
			comps = append(comps, c)
		}
		return nil, &matchlog.NoMatchingRowsError{Filter: competition, Competitions: comps}
	}
	return records, nil
}

// cellText returns the trimmed text of the row's cell with the given
// data-stat attribute, or "" if the cell is absent.
func cellText(row *goquery.Selection, stat string) string {
	cell := row.Find(`td[data-stat="` + stat + `"]`).First()
	if cell.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(cell.Text())
}
