// Package importer turns a user-supplied tabular file into canonical
// match records.
//
// This is the fallback path for when FBref blocks automated retrieval:
// the user exports the match-log table by hand and feeds the file in.
// Only the schema is validated — the three required columns must exist
// by name, in any order. Cell values are trusted as already cleaned;
// unlike the scraped path there is no venue or xG re-validation.
package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Vina-13dev/FbrefBoT/internal/matchlog"
	"github.com/xuri/excelize/v2"
)

// Required column names. Extra columns are ignored; a team column, if
// present, is overwritten by the caller-supplied name.
const (
	columnVenue     = "local"
	columnXGFor     = "xg_feitos"
	columnXGAgainst = "xg_sofridos"
)

// File reads a CSV or XLSX file from disk and returns its records with
// teamName stamped onto every row.
func File(path, teamName string) ([]matchlog.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return CSV(f, teamName)
	case ".xlsx":
		return XLSX(f, teamName)
	default:
		return nil, fmt.Errorf("unsupported file type %q (want .csv or .xlsx)", ext)
	}
}

// CSV parses delimited text. The delimiter is sniffed from the header
// line: semicolons win over commas, since spreadsheet exports in
// pt-BR locales use them.
func CSV(r io.Reader, teamName string) ([]matchlog.Record, error) {
	br := bufio.NewReader(r)
	line, _ := br.ReadString('\n')

	reader := csv.NewReader(io.MultiReader(strings.NewReader(line), br))
	reader.FieldsPerRecord = -1
	if strings.Count(line, ";") > strings.Count(line, ",") {
		reader.Comma = ';'
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return fromRows(rows, teamName)
}

// XLSX parses the first sheet of an Excel workbook.
func XLSX(r io.Reader, teamName string) ([]matchlog.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	return fromRows(rows, teamName)
}

// fromRows validates the header and reshapes data rows into records in
// canonical column order.
func fromRows(rows [][]string, teamName string) ([]matchlog.Record, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("import file has no header row")
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, col := range []string{columnVenue, columnXGFor, columnXGAgainst} {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &matchlog.SchemaError{Missing: missing}
	}

	cell := func(row []string, col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]matchlog.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}
		records = append(records, matchlog.Record{
			Team:      teamName,
			Venue:     matchlog.Venue(cell(row, columnVenue)),
			XGFor:     cell(row, columnXGFor),
			XGAgainst: cell(row, columnXGAgainst),
		})
	}
	return records, nil
}
