// Package normalize provides the text canonicalization used for fuzzy
// matching of competition and team names.
//
// Two distinct normalizers exist on purpose. Fold is used to compare a
// competition filter against FBref competition labels; Key is used to
// compare team names against the Understat roster. They have different
// semantics and must not be merged.
package normalize

import "strings"

// accentFolder maps the accented Latin vowels that show up in
// competition labels (Ligue 1 clubs, Primeira Liga, etc.) to their
// unaccented equivalents.
var accentFolder = strings.NewReplacer(
	"é", "e",
	"á", "a",
	"ã", "a",
	"í", "i",
	"ó", "o",
	"ú", "u",
)

// Fold canonicalizes text for competition-label matching: lowercase,
// accents folded, surrounding whitespace trimmed, and internal
// whitespace runs collapsed to single spaces. Fold is idempotent.
func Fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = accentFolder.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Key canonicalizes a team name the way Understat keys its teams:
// lowercase, trimmed, spaces replaced with underscores. Accents are
// left alone — Understat's own titles keep them.
func Key(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, " ", "_")
}
