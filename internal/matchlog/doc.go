// Package matchlog defines the canonical match record produced by every
// data source (FBref scraping, the Understat API, manual file import)
// and the shared failure taxonomy those sources report.
//
// All three producers emit the same flat record shape — team, venue,
// expected goals for and against — so the downstream consumer (table,
// CSV or JSON output) never needs to know where the data came from.
// Failures carry their diagnostic payloads (observed competitions,
// available team names, missing columns) as typed errors so callers can
// surface them with errors.As.
package matchlog
