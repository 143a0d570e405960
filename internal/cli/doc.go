// Package cli implements the command-line interface for fbrefbot.
//
// The cli package provides the Cobra-based CLI with commands for
// fetching a team's xG match log from FBref (fetch), from the
// Understat API (api), or from a manually exported file (import), and
// for managing the saved team store (team add/remove/list). Results
// are written as an aligned table, CSV, or JSON, to stdout or to a
// file.
package cli
