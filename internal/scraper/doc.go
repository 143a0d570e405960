// Package scraper fetches a team's match-log page from FBref and
// extracts its recent matches as canonical records.
//
// FBref actively resists automated access, so the fetch side presents a
// randomized browser-like identity (user agent plus a matching header
// set) and paces requests with randomized delays. The parse side deals
// with FBref's habit of shipping the match-log table inside an HTML
// comment: comment markers are stripped textually before the document
// is parsed, then the right table is located by id prefix and caption
// heuristics and its rows are filtered by competition.
//
// There is no automatic retry. A blocked or rate-limited fetch is
// reported as such; the documented recovery path is the manual file
// import, since hammering an active block only makes it worse.
package scraper
