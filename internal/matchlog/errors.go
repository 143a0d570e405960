package matchlog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel failures with no diagnostic payload.
var (
	// ErrTableNotFound means no table in the document satisfied the
	// match-log heuristics.
	ErrTableNotFound = errors.New("match log table not found")

	// ErrBodyNotFound means a match-log table was located but had no
	// body section to walk.
	ErrBodyNotFound = errors.New("match log table has no body")

	// ErrBlocked means the remote source refused the request outright
	// (HTTP 403). The recovery path is the manual import fallback, not
	// a retry.
	ErrBlocked = errors.New("request blocked by remote source")

	// ErrRateLimited means the remote source throttled the request
	// (HTTP 429).
	ErrRateLimited = errors.New("request rate-limited by remote source")
)

// TransportError wraps any transport-level failure that is neither a
// block nor a rate limit: DNS, timeout, connection reset, unexpected
// status.
type TransportError struct {
	Detail string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport error: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("transport error: %s", e.Detail)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NoMatchingRowsError means the table was walked but zero rows passed
// the competition filter. Competitions holds the distinct raw labels
// observed in the table body, including rows excluded for other
// reasons, so the caller can tell the user what was actually there.
type NoMatchingRowsError struct {
	Filter       string
	Competitions []string
}

func (e *NoMatchingRowsError) Error() string {
	comps := append([]string(nil), e.Competitions...)
	sort.Strings(comps)
	return fmt.Sprintf("no matches found for competition %q; competitions available: %s",
		e.Filter, strings.Join(comps, ", "))
}

// TeamNotFoundError means the Understat roster for a league had no team
// whose normalized name matched. Available holds every display name in
// the roster.
type TeamNotFoundError struct {
	Name      string
	Available []string
}

func (e *TeamNotFoundError) Error() string {
	names := append([]string(nil), e.Available...)
	sort.Strings(names)
	return fmt.Sprintf("team %q not found; teams available: %s",
		e.Name, strings.Join(names, ", "))
}

// SchemaError means a manually imported file is missing required
// columns.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("import file is missing required columns: %s",
		strings.Join(e.Missing, ", "))
}
