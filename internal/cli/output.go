package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/Vina-13dev/FbrefBoT/internal/matchlog"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatCSV   OutputFormat = "csv"
	FormatJSON  OutputFormat = "json"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatTable, FormatCSV, FormatJSON:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'table', 'csv' or 'json')", s)
	}
}

// WriteRecords writes the result dataset in the specified format.
func WriteRecords(w io.Writer, records []matchlog.Record, format OutputFormat) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, records)
	case FormatJSON:
		return writeJSON(w, records)
	case FormatTable:
		return writeTable(w, records)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeCSV outputs the four canonical columns as delimited text.
func writeCSV(w io.Writer, records []matchlog.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(matchlog.Columns()); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Team, string(r.Venue), r.XGFor, r.XGAgainst}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeJSON outputs the records as an indented JSON array.
func writeJSON(w io.Writer, records []matchlog.Record) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

// writeTable outputs an aligned table followed by a short summary:
// match counts per venue and the average xG for.
func writeTable(w io.Writer, records []matchlog.Record) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No matches found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tLOCAL\tXG FEITOS\tXG SOFRIDOS")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Team, r.Venue, r.XGFor, r.XGAgainst)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	home, away := 0, 0
	var sum float64
	parsed := 0
	for _, r := range records {
		switch r.Venue {
		case matchlog.VenueHome:
			home++
		case matchlog.VenueAway:
			away++
		}
		if v, err := strconv.ParseFloat(r.XGFor, 64); err == nil {
			sum += v
			parsed++
		}
	}

	fmt.Fprintf(w, "\n%d match(es): %d casa, %d fora", len(records), home, away)
	if parsed > 0 {
		fmt.Fprintf(w, " | avg xG %.2f", sum/float64(parsed))
	}
	fmt.Fprintln(w)
	return nil
}
