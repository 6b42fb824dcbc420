package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"sleep-optimizer/internal/gamedata"
	"sleep-optimizer/internal/sim"
	"sleep-optimizer/internal/solve"
)

// Config holds the simulation and search knobs. Adjust these to trade speed
// for estimate quality.
type Config struct {
	// Seed is the root of every random source; equal seeds replay equal runs.
	Seed int64 `yaml:"seed"`
	// Iterations is the number of recorded days per team simulation.
	Iterations int `yaml:"iterations"`
	// SolveIterations is the number of recorded days per solver candidate.
	SolveIterations int `yaml:"solve_iterations"`
	// Workers bounds parallel simulations; 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
	// MaxTeamSize caps included plus added members in a solve.
	MaxTeamSize int `yaml:"max_team_size"`
	// MaxSolutions stops the solver after this many teams.
	MaxSolutions int `yaml:"max_solutions"`
	// MaxNodes is the solver's search budget.
	MaxNodes int `yaml:"max_nodes"`
	// MealsPerDay divides daily production into per-meal production.
	MealsPerDay int `yaml:"meals_per_day"`
	// SolveLevel is the level given to solver candidates.
	SolveLevel int `yaml:"solve_level"`
	// MaxIterations caps iterations and solve_iterations, including
	// overrides from flags and lambda requests.
	MaxIterations int `yaml:"max_iterations"`
}

func DefaultConfig() Config {
	return Config{
		Seed:            0,
		Iterations:      sim.DefaultIterations,
		SolveIterations: 20,
		Workers:         0,
		MaxTeamSize:     sim.MaxTeamSize,
		MaxSolutions:    solve.DefaultMaxSolutions,
		MaxNodes:        solve.DefaultMaxNodes,
		MealsPerDay:     solve.DefaultMealsPerDay,
		SolveLevel:      30,
		MaxIterations:   1000,
	}
}

// LoadConfig overlays the yaml file at path on DefaultConfig. A missing
// file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.MaxTeamSize < 1 || cfg.MaxTeamSize > sim.MaxTeamSize {
		return cfg, fmt.Errorf("config %s: max_team_size %d outside 1-%d", path, cfg.MaxTeamSize, sim.MaxTeamSize)
	}
	if err := cfg.checkIterations(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// checkIterations keeps both iteration counts within 1-MaxIterations.
func (c Config) checkIterations() error {
	for _, n := range []int{c.Iterations, c.SolveIterations} {
		if n < 1 || n > c.MaxIterations {
			return fmt.Errorf("%w: iterations %d outside 1-%d", sim.ErrInvalidSettings, n, c.MaxIterations)
		}
	}
	return nil
}

func (c Config) solveOptions(iterations int) solve.Options {
	return solve.Options{
		Iterations:   iterations,
		Workers:      c.Workers,
		Seed:         c.Seed,
		MealsPerDay:  c.MealsPerDay,
		MaxNodes:     c.MaxNodes,
		MaxSolutions: c.MaxSolutions,
	}
}

// TeamFile is the yaml description of a team and its day.
type TeamFile struct {
	Name      string       `yaml:"name"`
	Camp      bool         `yaml:"camp"`
	Wakeup    string       `yaml:"wakeup"`
	Bedtime   string       `yaml:"bedtime"`
	Island    string       `yaml:"island"`
	Cooking   string       `yaml:"cooking"` // curry, salad or dessert; empty disables the pot
	MealTimes []string     `yaml:"meal_times"`
	Members   []MemberFile `yaml:"members"`
}

type MemberFile struct {
	Name       string   `yaml:"name"`
	ID         string   `yaml:"id"`
	Level      int      `yaml:"level"`
	Ribbon     int      `yaml:"ribbon"`
	SkillLevel int      `yaml:"skill_level"`
	Nature     string   `yaml:"nature"`
	Subskills  []string `yaml:"subskills"`
	// Ingredients names the choice for each tier in unlock order; empty
	// entries keep the tier's first option.
	Ingredients []string `yaml:"ingredients"`
}

func LoadTeamFile(path string) (*TeamFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading team file: %w", err)
	}
	tf, err := ParseTeamFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if tf.Name == "" {
		tf.Name = path
	}
	return tf, nil
}

func ParseTeamFile(data []byte) (*TeamFile, error) {
	var tf TeamFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tf); err != nil {
		return nil, fmt.Errorf("parsing team file: %w", err)
	}
	return &tf, nil
}

// Settings resolves the day described by the file. Unset times fall back to
// sim.DefaultTeamSettings.
func (tf *TeamFile) Settings(store *gamedata.Store) (sim.TeamSettings, error) {
	settings := sim.DefaultTeamSettings()
	settings.Camp = tf.Camp
	var err error
	if tf.Wakeup != "" {
		if settings.Wakeup, err = sim.ParseTimeOfDay(tf.Wakeup); err != nil {
			return settings, err
		}
	}
	if tf.Bedtime != "" {
		if settings.Bedtime, err = sim.ParseTimeOfDay(tf.Bedtime); err != nil {
			return settings, err
		}
	}
	if len(tf.MealTimes) > 0 {
		settings.MealTimes = nil
		for _, mt := range tf.MealTimes {
			t, err := sim.ParseTimeOfDay(mt)
			if err != nil {
				return settings, err
			}
			settings.MealTimes = append(settings.MealTimes, t)
		}
	}
	if tf.Island != "" {
		if settings.Island, err = store.Island(tf.Island); err != nil {
			return settings, err
		}
	}
	if tf.Cooking != "" {
		rt := gamedata.ParseRecipeType(tf.Cooking)
		if rt == gamedata.RecipeNone {
			return settings, fmt.Errorf("%w: cooking %q, want curry, salad or dessert", sim.ErrInvalidSettings, tf.Cooking)
		}
		settings.Cooking = &sim.CookingSettings{RecipeType: rt}
	}
	return settings, nil
}

// Members resolves every member against store.
func (tf *TeamFile) Members(store *gamedata.Store) ([]sim.Member, error) {
	var out []sim.Member
	for i, mf := range tf.Members {
		m, err := mf.build(store)
		if err != nil {
			return nil, fmt.Errorf("member %d (%s): %w", i+1, mf.Name, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func (mf MemberFile) build(store *gamedata.Store) (sim.Member, error) {
	settings := sim.MemberSettings{
		Level:      mf.Level,
		Ribbon:     mf.Ribbon,
		SkillLevel: mf.SkillLevel,
		ExternalID: mf.ID,
	}
	if settings.Level == 0 {
		settings.Level = 1
	}
	if mf.Nature != "" {
		n, err := store.Nature(mf.Nature)
		if err != nil {
			return sim.Member{}, err
		}
		settings.Nature = n
	}
	for _, name := range mf.Subskills {
		ss, err := store.Subskill(name)
		if err != nil {
			return sim.Member{}, err
		}
		settings.Subskills = append(settings.Subskills, ss)
	}
	for _, name := range mf.Ingredients {
		if name == "" {
			settings.Ingredients = append(settings.Ingredients, gamedata.IngredientSet{})
			continue
		}
		ing, err := store.Ingredient(name)
		if err != nil {
			return sim.Member{}, err
		}
		settings.Ingredients = append(settings.Ingredients, gamedata.IngredientSet{Ingredient: ing})
	}
	return sim.NewMember(store, mf.Name, settings)
}

// Request resolves the file into a simulation request.
func (tf *TeamFile) Request(store *gamedata.Store) (solve.TeamRequest, error) {
	members, err := tf.Members(store)
	if err != nil {
		return solve.TeamRequest{}, err
	}
	settings, err := tf.Settings(store)
	if err != nil {
		return solve.TeamRequest{}, err
	}
	return solve.TeamRequest{Name: tf.Name, Members: members, Settings: settings}, nil
}

// ParseTeamJSON reads the JSON form of a team file, as sent to the
// lambda handler. Keys are the camelCase forms of the yaml keys.
func ParseTeamJSON(team gjson.Result) (*TeamFile, error) {
	if !team.IsObject() {
		return nil, fmt.Errorf("%w: team must be an object", sim.ErrInvalidSettings)
	}
	tf := &TeamFile{
		Name:      team.Get("name").String(),
		Camp:      team.Get("camp").Bool(),
		Wakeup:    team.Get("wakeup").String(),
		Bedtime:   team.Get("bedtime").String(),
		Island:    team.Get("island").String(),
		Cooking:   team.Get("cooking").String(),
		MealTimes: stringList(team.Get("mealTimes")),
	}
	team.Get("members").ForEach(func(_, m gjson.Result) bool {
		tf.Members = append(tf.Members, MemberFile{
			Name:        m.Get("name").String(),
			ID:          m.Get("id").String(),
			Level:       int(m.Get("level").Int()),
			Ribbon:      int(m.Get("ribbon").Int()),
			SkillLevel:  int(m.Get("skillLevel").Int()),
			Nature:      m.Get("nature").String(),
			Subskills:   stringList(m.Get("subskills")),
			Ingredients: stringList(m.Get("ingredients")),
		})
		return true
	})
	if len(tf.Members) == 0 {
		return nil, fmt.Errorf("%w: team has no members", sim.ErrInvalidSettings)
	}
	return tf, nil
}

func stringList(r gjson.Result) []string {
	var out []string
	r.ForEach(func(_, v gjson.Result) bool {
		out = append(out, v.String())
		return true
	})
	return out
}
