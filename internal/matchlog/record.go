package matchlog

// MaxRecords caps every result sequence at the team's most recent 15
// matches, in source order. No producer re-sorts.
const MaxRecords = 15

// Venue says whether a match was played at home or away. The values
// are the localized labels used in the exported dataset.
type Venue string

const (
	VenueHome Venue = "casa"
	VenueAway Venue = "fora"
)

// Record is one match of a team's log. XGFor and XGAgainst keep the
// source's decimal text rather than parsed floats so that export
// reproduces the source values exactly.
type Record struct {
	Team      string `json:"time"`
	Venue     Venue  `json:"local"`
	XGFor     string `json:"xg_feitos"`
	XGAgainst string `json:"xg_sofridos"`
}

// Columns returns the canonical column order of the exported dataset.
func Columns() []string {
	return []string{"time", "local", "xg_feitos", "xg_sofridos"}
}
