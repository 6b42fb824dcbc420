package solve

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/tidwall/match"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sleep-optimizer/internal/gamedata"
	"sleep-optimizer/internal/sim"
)

var ErrInvalidInput = errors.New("invalid solve input")

const (
	DefaultMealsPerDay  = 3
	DefaultMaxNodes     = 1_000_000
	DefaultMaxSolutions = 50
)

type Options struct {
	Iterations   int   // simulated days per candidate
	Workers      int   // candidate simulations run in parallel
	Seed         int64 // every candidate derives its own seed from this
	MealsPerDay  int
	MaxNodes     int
	MaxSolutions int
}

func (o Options) withDefaults() Options {
	if o.Iterations <= 0 {
		o.Iterations = sim.DefaultIterations
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.MealsPerDay <= 0 {
		o.MealsPerDay = DefaultMealsPerDay
	}
	if o.MaxNodes == 0 {
		o.MaxNodes = DefaultMaxNodes
	}
	if o.MaxSolutions == 0 {
		o.MaxSolutions = DefaultMaxSolutions
	}
	return o
}

// Service runs simulations and recipe solves against one game data store.
type Service struct {
	store  *gamedata.Store
	logger *zap.Logger
	opts   Options
}

func NewService(store *gamedata.Store, logger *zap.Logger, opts Options) *Service {
	if store == nil {
		store = gamedata.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, opts: opts.withDefaults()}
}

func (s *Service) Store() *gamedata.Store { return s.store }

// SolveSettings describe the candidates the solver may add.
type SolveSettings struct {
	Level  int
	Ribbon int
	Team   sim.TeamSettings
	// Exclude drops candidates whose name matches any of these patterns
	// (* and ? wildcards, case-insensitive).
	Exclude []string
}

type SolveInput struct {
	IncludedMembers []sim.Member
	Settings        SolveSettings
	MaxTeamSize     int // 0 means sim.MaxTeamSize
}

// SolveMember is one team member with its ingredients per meal.
type SolveMember struct {
	Member   sim.Member
	Produce  gamedata.IngredientAmounts
	Included bool
}

type SolveRecipeSolution struct {
	Members []SolveMember
	Produce gamedata.IngredientAmounts // per meal, whole team
	Surplus gamedata.IngredientAmounts // Produce minus the recipe
}

type SolveResult struct {
	Recipe     *gamedata.Recipe
	Teams      []SolveRecipeSolution
	Exhaustive bool
	Candidates int
}

// setup is a candidate member and what it produces per meal.
type setup struct {
	member  sim.Member
	produce gamedata.IngredientAmounts
}

// SolveRecipe finds the smallest sets of additional members that, together
// with in.IncludedMembers, produce the recipe's ingredients every meal.
func (s *Service) SolveRecipe(ctx context.Context, recipe *gamedata.Recipe, in SolveInput) (*SolveResult, error) {
	if recipe == nil {
		return nil, fmt.Errorf("%w: no recipe", ErrInvalidInput)
	}
	maxTeam := in.MaxTeamSize
	if maxTeam == 0 {
		maxTeam = sim.MaxTeamSize
	}
	if maxTeam < 0 || maxTeam > sim.MaxTeamSize {
		return nil, fmt.Errorf("%w: max team size %d outside 0-%d", ErrInvalidInput, maxTeam, sim.MaxTeamSize)
	}
	if len(in.IncludedMembers) > maxTeam {
		return nil, fmt.Errorf("%w: %d included members exceed team size %d", ErrInvalidInput, len(in.IncludedMembers), maxTeam)
	}
	log := s.logger.With(zap.String("recipe", recipe.Name))

	required := recipe.Requirement.Amounts()
	if len(required) < s.store.IngredientCount() {
		required = append(required, make(gamedata.IngredientAmounts, s.store.IngredientCount()-len(required))...)
	}
	included, err := s.includedSetups(in.IncludedMembers, in.Settings.Team)
	if err != nil {
		return nil, err
	}
	need := required.Clone()
	for _, su := range included {
		need.Sub(su.produce)
	}

	res := &SolveResult{Recipe: recipe}
	if need.Satisfied() {
		res.Teams = []SolveRecipeSolution{s.solution(required, included, nil)}
		res.Exhaustive = true
		log.Debug("included members already cover the recipe")
		return res, nil
	}

	pool, err := s.candidates(ctx, need, in.Settings)
	if err != nil {
		return nil, err
	}
	res.Candidates = len(pool)

	producers := make([]gamedata.IngredientAmounts, len(pool))
	for i, su := range pool {
		producers[i] = su.produce
	}
	cover := NewSetCover(producers, SetCoverOptions{
		MaxTeamSize:  maxTeam - len(included),
		MaxNodes:     s.opts.MaxNodes,
		MaxSolutions: s.opts.MaxSolutions,
	})
	teams, exhaustive := cover.Solve(need)
	for _, team := range teams {
		added := make([]setup, len(team))
		for i, pi := range team {
			added[i] = pool[pi]
		}
		res.Teams = append(res.Teams, s.solution(required, included, added))
	}
	res.Exhaustive = exhaustive
	log.Info("solved recipe",
		zap.Int("candidates", len(pool)),
		zap.Int("teams", len(res.Teams)),
		zap.Int("nodes", cover.NodesVisited()),
		zap.Bool("exhaustive", exhaustive))
	return res, nil
}

func (s *Service) includedSetups(members []sim.Member, settings sim.TeamSettings) ([]setup, error) {
	if len(members) == 0 {
		return nil, nil
	}
	prod, err := sim.SimulateTeamProduction(members, settings, s.simOptions("included"))
	if err != nil {
		return nil, fmt.Errorf("simulating included members: %w", err)
	}
	out := make([]setup, len(members))
	for i, mp := range prod.Members {
		out[i] = setup{member: members[i], produce: s.perMeal(mp.Produce.Ingredients)}
	}
	return out, nil
}

// candidates builds the pool of setups that produce at least one missing
// ingredient, simulating each once on a bounded worker pool.
func (s *Service) candidates(ctx context.Context, need gamedata.IngredientAmounts, settings SolveSettings) ([]setup, error) {
	level := settings.Level
	if level == 0 {
		level = 1
	}
	settingsCache := make(map[string]sim.Member)
	var keys []string
	for _, p := range s.store.AllPokemon() {
		if excluded(p.Name, settings.Exclude) {
			continue
		}
		for _, choice := range ingredientChoices(p) {
			m, err := sim.NewMember(s.store, p.Name, sim.MemberSettings{
				Level:       level,
				Ribbon:      settings.Ribbon,
				Ingredients: choice,
			})
			if err != nil {
				return nil, err
			}
			if !producesAny(m, need) {
				continue
			}
			key := setupKey(m)
			if _, ok := settingsCache[key]; ok {
				continue
			}
			settingsCache[key] = m
			keys = append(keys, key)
		}
	}

	pool := make([]setup, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, key := range keys {
		m := settingsCache[key]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			prod, err := sim.SimulateTeamProduction([]sim.Member{m}, settings.Team, s.simOptions(key))
			if err != nil {
				return fmt.Errorf("simulating %s: %w", key, err)
			}
			pool[i] = setup{member: m, produce: s.perMeal(prod.Members[0].Produce.Ingredients)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.logger.Debug("built candidate pool", zap.Int("setups", len(pool)))
	return pool, nil
}

func (s *Service) simOptions(salt string) sim.Options {
	return sim.Options{
		Store:      s.store,
		Iterations: s.opts.Iterations,
		Rand:       sim.NewRand(sim.DeriveSeed(s.opts.Seed, salt)),
		Logger:     s.logger,
	}
}

func (s *Service) perMeal(daily gamedata.IngredientAmounts) gamedata.IngredientAmounts {
	out := daily.Clone()
	out.Scale(1 / float64(s.opts.MealsPerDay))
	return out
}

func (s *Service) solution(required gamedata.IngredientAmounts, included, added []setup) SolveRecipeSolution {
	sol := SolveRecipeSolution{Produce: make(gamedata.IngredientAmounts, len(required))}
	for _, su := range included {
		sol.Members = append(sol.Members, SolveMember{Member: su.member, Produce: su.produce, Included: true})
		sol.Produce.Add(su.produce)
	}
	for _, su := range added {
		sol.Members = append(sol.Members, SolveMember{Member: su.member, Produce: su.produce})
		sol.Produce.Add(su.produce)
	}
	sol.Surplus = sol.Produce.Clone()
	sol.Surplus.Sub(required)
	return sol
}

// ingredientChoices lists every combination of one option per ingredient
// tier.
func ingredientChoices(p *gamedata.Pokemon) [][]gamedata.IngredientSet {
	out := [][]gamedata.IngredientSet{nil}
	for _, tier := range [][]gamedata.IngredientSet{p.Ingredient0, p.Ingredient30, p.Ingredient60} {
		if len(tier) == 0 {
			break
		}
		var next [][]gamedata.IngredientSet
		for _, prefix := range out {
			for _, opt := range tier {
				next = append(next, append(prefix[:len(prefix):len(prefix)], opt))
			}
		}
		out = next
	}
	return out
}

func producesAny(m sim.Member, need gamedata.IngredientAmounts) bool {
	for _, set := range m.UnlockedIngredients() {
		if need[set.Ingredient.Index] > coverEpsilon {
			return true
		}
	}
	return false
}

// setupKey names a member by what it can actually produce, so tier choices
// the level has not unlocked collapse into one setup.
func setupKey(m sim.Member) string {
	parts := []string{m.Pokemon.Name}
	for _, set := range m.UnlockedIngredients() {
		parts = append(parts, set.Ingredient.Name)
	}
	return strings.Join(parts, "/")
}

func excluded(name string, patterns []string) bool {
	name = strings.ToUpper(name)
	for _, p := range patterns {
		if match.Match(name, strings.ToUpper(p)) {
			return true
		}
	}
	return false
}
