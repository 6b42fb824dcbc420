//go:build !lambda

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tidwall/match"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"sleep-optimizer/internal/gamedata"
	"sleep-optimizer/internal/sim"
	"sleep-optimizer/internal/solve"
)

var (
	// Global flags
	verbose    bool
	jsonOut    bool
	configPath string
	seed       int64
	iterations int

	// Set up before every command
	logger    *zap.Logger
	cfg       Config
	requestID string
)

var rootCmd = &cobra.Command{
	Use:   "sleep-optimizer",
	Short: "Simulate team production and solve recipe coverage",
	Long: `sleep-optimizer estimates what a team of helpers produces over a
sleep/wake cycle by Monte-Carlo simulation, and finds the smallest
additions to a team that cover a recipe every meal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		base, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		requestID = uuid.NewString()
		logger = base.With(zap.String("request_id", requestID))

		if cfg, err = LoadConfig(configPath); err != nil {
			return err
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = seed
		}
		if cmd.Flags().Changed("iterations") {
			cfg.Iterations = iterations
			cfg.SolveIterations = iterations
		}
		return cfg.checkIterations()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate <team.yaml>...",
	Short: "Simulate one or more teams and report per-day production",
	Long: `Runs one warm-up day and then the configured number of recorded days
for every team file, in parallel, and prints the per-day means.

Example:
  sleep-optimizer simulate team.yaml --iterations 100 --log`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSimulate,
}

var solveCmd = &cobra.Command{
	Use:   "solve <recipe> [team.yaml]",
	Short: "Find the smallest teams that cover a recipe every meal",
	Long: `Simulates the members of the optional team file, subtracts what they
produce per meal from the recipe, and searches for the fewest candidates
that cover the rest.

Example:
  sleep-optimizer solve FANCY_APPLE_CURRY team.yaml --exclude 'DITTO*'`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSolve,
}

var listCmd = &cobra.Command{
	Use:       "list <pokemon|recipes|skills|ingredients|islands> [pattern]",
	Short:     "List game data, optionally filtered by a wildcard pattern",
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"pokemon", "recipes", "skills", "ingredients", "islands"},
	RunE:      runList,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "sleep-optimizer.yaml", "Config file")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Random seed (overrides config)")
	rootCmd.PersistentFlags().IntVarP(&iterations, "iterations", "n", 0, "Recorded days per simulation (overrides config)")

	simulateCmd.Flags().Bool("log", false, "Include the event log of the last simulated day")

	solveCmd.Flags().StringSlice("exclude", nil, "Candidate name patterns to skip (* and ? wildcards)")
	solveCmd.Flags().Int("max-team-size", 0, "Team size including the team file's members (default from config)")
	solveCmd.Flags().Int("level", 0, "Candidate level (default from config)")

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(listCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	store := gamedata.Default()
	withLog, _ := cmd.Flags().GetBool("log")

	var reqs []solve.TeamRequest
	for _, path := range args {
		tf, err := LoadTeamFile(path)
		if err != nil {
			return err
		}
		req, err := tf.Request(store)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		reqs = append(reqs, req)
	}

	svc := solve.NewService(store, logger, cfg.solveOptions(cfg.Iterations))
	results, err := svc.SimulateTeams(cmd.Context(), reqs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, tp := range results {
		report := NewTeamReport(reqs[i].Name, tp, reqs[i].Settings, store)
		report.RequestID = requestID
		if !withLog {
			for j := range report.Members {
				report.Members[j].Log = nil
			}
		}
		if err := writeOutput(out, report, FormatTeamReport(report)); err != nil {
			return err
		}
	}
	return nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	store := gamedata.Default()
	recipe, err := store.Recipe(args[0])
	if err != nil {
		return err
	}
	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	maxTeam, _ := cmd.Flags().GetInt("max-team-size")
	level, _ := cmd.Flags().GetInt("level")
	if maxTeam == 0 {
		maxTeam = cfg.MaxTeamSize
	}
	if level == 0 {
		level = cfg.SolveLevel
	}

	in := solve.SolveInput{
		Settings: solve.SolveSettings{
			Level:   level,
			Team:    sim.DefaultTeamSettings(),
			Exclude: exclude,
		},
		MaxTeamSize: maxTeam,
	}
	if len(args) == 2 {
		tf, err := LoadTeamFile(args[1])
		if err != nil {
			return err
		}
		req, err := tf.Request(store)
		if err != nil {
			return fmt.Errorf("%s: %w", args[1], err)
		}
		in.IncludedMembers = req.Members
		in.Settings.Team = req.Settings
	}

	svc := solve.NewService(store, logger, cfg.solveOptions(cfg.SolveIterations))
	res, err := svc.SolveRecipe(cmd.Context(), recipe, in)
	if err != nil {
		return err
	}
	report := NewSolveReport(res, store)
	report.RequestID = requestID
	return writeOutput(cmd.OutOrStdout(), report, FormatSolveReport(report))
}

func runList(cmd *cobra.Command, args []string) error {
	pattern := "*"
	if len(args) == 2 {
		pattern = args[1]
	}
	lines, err := listNames(gamedata.Default(), args[0], pattern)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), lines, strings.Join(lines, "\n")+"\n")
}

// listNames describes every entry of one game data table whose name
// matches pattern.
func listNames(store *gamedata.Store, kind, pattern string) ([]string, error) {
	pattern = strings.ToUpper(pattern)
	keep := func(name string) bool { return match.Match(strings.ToUpper(name), pattern) }
	lines := []string{}
	switch kind {
	case "pokemon":
		for _, p := range store.AllPokemon() {
			if keep(p.Name) {
				lines = append(lines, fmt.Sprintf("%s (%s, %s, %s)", p.Name, p.Specialty, p.Berry.Name, p.Skill.Name))
			}
		}
	case "recipes":
		for _, r := range store.AllRecipes() {
			if keep(r.Name) {
				var ings []string
				for _, set := range r.Ingredients {
					ings = append(ings, fmt.Sprintf("%s %.0f", set.Ingredient.Name, set.Amount))
				}
				lines = append(lines, fmt.Sprintf("%s (%s, %d): %s", r.Name, r.Type, r.Value, strings.Join(ings, ", ")))
			}
		}
	case "skills":
		for _, sk := range store.AllSkills() {
			if keep(sk.Name) {
				lines = append(lines, fmt.Sprintf("%s (%s, max lv%d)", sk.Name, sk.Unit, sk.MaxLevel))
			}
		}
	case "ingredients":
		for _, ing := range store.Ingredients() {
			if keep(ing.Name) {
				lines = append(lines, fmt.Sprintf("%s (%d)", ing.Name, ing.Value))
			}
		}
	case "islands":
		for _, is := range store.AllIslands() {
			if keep(is.Name) {
				lines = append(lines, fmt.Sprintf("%s (+%.0f%%)", is.Name, is.AreaBonus))
			}
		}
	default:
		return nil, fmt.Errorf("unknown list %q, want pokemon, recipes, skills, ingredients or islands", kind)
	}
	return lines, nil
}

func writeOutput(w io.Writer, v any, text string) error {
	if !jsonOut {
		_, err := io.WriteString(w, text)
		return err
	}
	b, err := marshalPretty(v)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
