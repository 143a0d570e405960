// Package teams persists the user's saved teams: a mapping from a
// display name to either an FBref page URL or an Understat search
// name and league.
//
// The store is a single JSON file, read in full at the start of a
// session and rewritten in full on every add or remove. Names are
// unique keys; there is no locking — concurrent writers are not part
// of the usage pattern.
package teams

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one saved team. URL is set for the FBref variant;
// SearchName and League for the Understat variant.
type Entry struct {
	URL        string `json:"url,omitempty"`
	SearchName string `json:"search_name,omitempty"`
	League     string `json:"league,omitempty"`
}

// Teams maps display names to entries.
type Teams map[string]Entry

// Names returns the saved display names, sorted.
func (t Teams) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Store reads and writes the team file.
type Store struct {
	path string
}

// NewStore creates a Store for the given file path, expanding a
// leading ~ and creating the parent directory if needed.
func NewStore(path string) (*Store, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	return &Store{path: path}, nil
}

// Load reads the whole team file. A missing file is an empty store,
// not an error.
func (s *Store) Load() (Teams, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(Teams), nil
		}
		return nil, fmt.Errorf("reading team file: %w", err)
	}

	var teams Teams
	if err := json.Unmarshal(data, &teams); err != nil {
		return nil, fmt.Errorf("parsing team file: %w", err)
	}
	if teams == nil {
		teams = make(Teams)
	}
	return teams, nil
}

// Save rewrites the whole team file.
func (s *Store) Save(teams Teams) error {
	data, err := json.MarshalIndent(teams, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding team file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing team file: %w", err)
	}
	return nil
}

// Add saves a new team and persists immediately. Adding a name that
// already exists is an error; use Remove first to replace an entry.
func (s *Store) Add(name string, entry Entry) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("team name is required")
	}

	teams, err := s.Load()
	if err != nil {
		return err
	}
	if _, exists := teams[name]; exists {
		return fmt.Errorf("team %q already exists", name)
	}

	teams[name] = entry
	return s.Save(teams)
}

// Remove deletes a team and persists immediately.
func (s *Store) Remove(name string) error {
	teams, err := s.Load()
	if err != nil {
		return err
	}
	if _, exists := teams[name]; !exists {
		return fmt.Errorf("team %q not found", name)
	}

	delete(teams, name)
	return s.Save(teams)
}

// Get returns a saved team's entry.
func (s *Store) Get(name string) (Entry, error) {
	teams, err := s.Load()
	if err != nil {
		return Entry{}, err
	}
	entry, exists := teams[name]
	if !exists {
		return Entry{}, fmt.Errorf("team %q not found (saved teams: %s)", name, strings.Join(teams.Names(), ", "))
	}
	return entry, nil
}
