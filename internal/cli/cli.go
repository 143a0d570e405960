package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Vina-13dev/FbrefBoT/internal/importer"
	"github.com/Vina-13dev/FbrefBoT/internal/logger"
	"github.com/Vina-13dev/FbrefBoT/internal/matchlog"
	"github.com/Vina-13dev/FbrefBoT/internal/scraper"
	"github.com/Vina-13dev/FbrefBoT/internal/teams"
	"github.com/Vina-13dev/FbrefBoT/internal/understat"
	"github.com/spf13/cobra"
)

const defaultStorePath = "times_salvos.json"

var (
	flagStore   string
	flagFormat  string
	flagOutput  string
	flagVerbose bool

	flagCompetition string
	flagSeason      string
	flagTeam        string
	flagURL         string
	flagSearchName  string
	flagLeague      string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fbrefbot",
		Short: "Fetch a football team's recent xG match log",
		Long: `Fetch a team's recent expected-goals (xG) match log from FBref or
Understat, or import a manually exported file, and present it as a
flat dataset of up to 15 matches (team, venue, xG for, xG against).`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
			}
		},
	}

	cmd.PersistentFlags().StringVar(&flagStore, "store", defaultStorePath, "Path to the saved-team file")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "table", "Output format: table, csv or json")
	cmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Write results to a file instead of stdout")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.AddCommand(newFetchCmd())
	cmd.AddCommand(newAPICmd())
	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newTeamCmd())

	return cmd
}

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <team>",
		Short: "Scrape a saved team's match log from its FBref page",
		Args:  cobra.ExactArgs(1),
		RunE:  runFetch,
	}
	cmd.Flags().StringVarP(&flagCompetition, "competition", "c", "", "Competition name or part of it (required)")
	cmd.MarkFlagRequired("competition")
	return cmd
}

func runFetch(cmd *cobra.Command, args []string) error {
	name := args[0]

	store, err := teams.NewStore(flagStore)
	if err != nil {
		return fmt.Errorf("opening team store: %w", err)
	}
	entry, err := store.Get(name)
	if err != nil {
		return err
	}
	if entry.URL == "" {
		return fmt.Errorf("team %q has no FBref URL; it is saved for the Understat source (use 'fbrefbot api')", name)
	}

	records, err := scraper.New(scraper.DefaultConfig()).MatchLogs(entry.URL, name, flagCompetition)
	if err != nil {
		if errors.Is(err, matchlog.ErrBlocked) {
			return fmt.Errorf("%w\nFBref refused the request; retrying now tends to harden the block. Export the Scores & Fixtures table manually and load it with 'fbrefbot import'", err)
		}
		if errors.Is(err, matchlog.ErrRateLimited) {
			return fmt.Errorf("%w\nWait a few minutes before querying again, or load an export with 'fbrefbot import'", err)
		}
		return err
	}

	return writeResult(records)
}

func newAPICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api <team>",
		Short: "Fetch a saved team's match log from the Understat API",
		Long: `Fetch a saved team's match log from Understat instead of scraping
FBref. Coverage: ` + joinLeagues() + ` (since 2014/15).`,
		Args: cobra.ExactArgs(1),
		RunE: runAPI,
	}
	cmd.Flags().StringVarP(&flagSeason, "season", "s", "", "Season start year, e.g. 2025 (required)")
	cmd.MarkFlagRequired("season")
	return cmd
}

func runAPI(cmd *cobra.Command, args []string) error {
	name := args[0]

	store, err := teams.NewStore(flagStore)
	if err != nil {
		return fmt.Errorf("opening team store: %w", err)
	}
	entry, err := store.Get(name)
	if err != nil {
		return err
	}
	if entry.League == "" {
		return fmt.Errorf("team %q has no league; it is saved for the FBref source (use 'fbrefbot fetch')", name)
	}

	searchName := entry.SearchName
	if searchName == "" {
		searchName = name
	}

	records, err := understat.TeamMatches(understat.NewClient(), searchName, entry.League, flagSeason)
	if err != nil {
		return err
	}
	return writeResult(records)
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load a manually exported match-log file (CSV or XLSX)",
		Long: `Load a manually exported match-log file. This is the fallback for
when FBref blocks automated retrieval. The file must have columns
'local', 'xg_feitos' and 'xg_sofridos' (any order, extra columns
ignored); every row is stamped with the team given by --team.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
	cmd.Flags().StringVarP(&flagTeam, "team", "t", "", "Team name to stamp onto every row (required)")
	cmd.MarkFlagRequired("team")
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	records, err := importer.File(args[0], flagTeam)
	if err != nil {
		return err
	}
	if len(records) > matchlog.MaxRecords {
		records = records[:matchlog.MaxRecords]
	}
	return writeResult(records)
}

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage the saved team store",
	}

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Save a team (give --url for FBref, or --league for Understat)",
		Args:  cobra.ExactArgs(1),
		RunE:  runTeamAdd,
	}
	add.Flags().StringVar(&flagURL, "url", "", "FBref squad page URL")
	add.Flags().StringVar(&flagSearchName, "search-name", "", "Exact team name on Understat (defaults to <name>)")
	add.Flags().StringVar(&flagLeague, "league", "", "Understat league: "+joinLeagues())

	remove := &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a saved team",
		Args:  cobra.ExactArgs(1),
		RunE:  runTeamRemove,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved teams",
		Args:  cobra.NoArgs,
		RunE:  runTeamList,
	}

	cmd.AddCommand(add, remove, list)
	return cmd
}

func runTeamAdd(cmd *cobra.Command, args []string) error {
	name := args[0]

	if flagURL == "" && flagLeague == "" {
		return fmt.Errorf("give either --url (FBref source) or --league (Understat source)")
	}
	if flagURL != "" && flagLeague != "" {
		return fmt.Errorf("--url and --league are mutually exclusive; save the team twice under different names to use both sources")
	}
	if flagLeague != "" {
		if _, ok := understat.LeagueCode(flagLeague); !ok {
			return fmt.Errorf("unknown league %q (available: %s)", flagLeague, joinLeagues())
		}
	}

	store, err := teams.NewStore(flagStore)
	if err != nil {
		return fmt.Errorf("opening team store: %w", err)
	}
	entry := teams.Entry{URL: flagURL, SearchName: flagSearchName, League: flagLeague}
	if err := store.Add(name, entry); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved team %q.\n", name)
	return nil
}

func runTeamRemove(cmd *cobra.Command, args []string) error {
	store, err := teams.NewStore(flagStore)
	if err != nil {
		return fmt.Errorf("opening team store: %w", err)
	}
	if err := store.Remove(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed team %q.\n", args[0])
	return nil
}

func runTeamList(cmd *cobra.Command, args []string) error {
	store, err := teams.NewStore(flagStore)
	if err != nil {
		return fmt.Errorf("opening team store: %w", err)
	}
	saved, err := store.Load()
	if err != nil {
		return err
	}
	if len(saved) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No teams saved yet. Use 'fbrefbot team add'.")
		return nil
	}

	for _, name := range saved.Names() {
		entry := saved[name]
		if entry.URL != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t(fbref: %s)\n", name, entry.URL)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t(understat: %s)\n", name, entry.League)
		}
	}
	return nil
}

// writeResult writes records in the selected format to stdout or to
// the --output file.
func writeResult(records []matchlog.Record) error {
	format, err := ParseFormat(flagFormat)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return WriteRecords(w, records, format)
}

func joinLeagues() string {
	out := ""
	for i, l := range understat.Leagues() {
		if i > 0 {
			out += ", "
		}
		out += l
	}
	return out
}
