package scraper

import "strings"

// StripComments removes every HTML comment-open and comment-close
// marker from the raw document text, turning commented-out markup into
// live markup. FBref ships most secondary tables this way. This is a
// textual transform and must run before the document is parsed;
// stripping after parsing would lose the commented content entirely.
// Idempotent.
func StripComments(html string) string {
	html = strings.ReplaceAll(html, "<!--", "")
	return strings.ReplaceAll(html, "-->", "")
}
