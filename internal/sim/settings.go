package sim

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"sleep-optimizer/internal/gamedata"
)

var ErrInvalidSettings = errors.New("invalid settings")

const (
	MaxTeamSize       = 5
	MaxLevel          = 100
	MaxRibbon         = 4
	DefaultIterations = 50
)

// Subskill slots open at these levels, in slot order.
var subskillUnlockLevels = [...]int{10, 25, 50, 75, 100}

// Ingredient tiers open at these levels.
var ingredientUnlockLevels = [...]int{1, 30, 60}

var ribbonCarryBonus = [...]int{0, 1, 2, 3, 4}

// TimeOfDay is seconds since midnight.
type TimeOfDay int

const secondsPerDay = 24 * 60 * 60

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("%w: time %q, want HH:MM", ErrInvalidSettings, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: hour in %q", ErrInvalidSettings, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: minute in %q", ErrInvalidSettings, s)
	}
	return TimeOfDay(h*3600 + m*60), nil
}

func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) String() string {
	s := int(t) % secondsPerDay
	if s < 0 {
		s += secondsPerDay
	}
	return fmt.Sprintf("%02d:%02d", s/3600, (s%3600)/60)
}

// until returns the seconds from t forward to o, wrapping past midnight.
func (t TimeOfDay) until(o TimeOfDay) int {
	d := (int(o) - int(t)) % secondsPerDay
	if d < 0 {
		d += secondsPerDay
	}
	return d
}

type MemberSettings struct {
	Level      int
	Ribbon     int
	SkillLevel int // 0 means one level per previous evolution, starting at 1
	Nature     *gamedata.Nature
	Subskills  []*gamedata.Subskill
	// Ingredients holds the chosen ingredient for each unlock tier (level 1, 30, 60).
	Ingredients []gamedata.IngredientSet
	ExternalID  string
}

type Member struct {
	Pokemon  *gamedata.Pokemon
	Settings MemberSettings
}

// NewMember resolves name and validates settings against the pokemon's tables.
// Unset tier choices default to the tier's first option.
func NewMember(store *gamedata.Store, name string, settings MemberSettings) (Member, error) {
	p, err := store.Pokemon(name)
	if err != nil {
		return Member{}, err
	}
	if settings.Level < 1 || settings.Level > MaxLevel {
		return Member{}, fmt.Errorf("%w: %s level %d outside 1-%d", ErrInvalidSettings, p.Name, settings.Level, MaxLevel)
	}
	if settings.Ribbon < 0 || settings.Ribbon > MaxRibbon {
		return Member{}, fmt.Errorf("%w: %s ribbon %d outside 0-%d", ErrInvalidSettings, p.Name, settings.Ribbon, MaxRibbon)
	}
	if len(settings.Subskills) > len(subskillUnlockLevels) {
		return Member{}, fmt.Errorf("%w: %s has %d subskills, max %d", ErrInvalidSettings, p.Name, len(settings.Subskills), len(subskillUnlockLevels))
	}
	if settings.Nature == nil {
		settings.Nature = store.NeutralNature()
	}
	if settings.SkillLevel == 0 {
		settings.SkillLevel = 1 + p.PreviousEvolutions
	}
	if settings.SkillLevel < 0 {
		return Member{}, fmt.Errorf("%w: %s skill level %d", ErrInvalidSettings, p.Name, settings.SkillLevel)
	}

	tiers := [][]gamedata.IngredientSet{p.Ingredient0, p.Ingredient30, p.Ingredient60}
	if len(settings.Ingredients) > len(tiers) {
		return Member{}, fmt.Errorf("%w: %s has %d ingredient choices, max %d", ErrInvalidSettings, p.Name, len(settings.Ingredients), len(tiers))
	}
	chosen := make([]gamedata.IngredientSet, len(tiers))
	for i, options := range tiers {
		if len(options) == 0 {
			return Member{}, fmt.Errorf("%w: %s has no ingredient at level %d", ErrInvalidSettings, p.Name, ingredientUnlockLevels[i])
		}
		if i >= len(settings.Ingredients) || settings.Ingredients[i].Ingredient == nil {
			chosen[i] = options[0]
			continue
		}
		want := settings.Ingredients[i].Ingredient
		found := false
		for _, opt := range options {
			if opt.Ingredient.Name == want.Name {
				chosen[i] = opt
				found = true
				break
			}
		}
		if !found {
			return Member{}, fmt.Errorf("%w: %s cannot find %s at level %d", ErrInvalidSettings, p.Name, want.Name, ingredientUnlockLevels[i])
		}
	}
	settings.Ingredients = chosen
	return Member{Pokemon: p, Settings: settings}, nil
}

// UnlockedIngredients lists the ingredient choices the member's level has opened.
func (m Member) UnlockedIngredients() []gamedata.IngredientSet {
	var out []gamedata.IngredientSet
	for i, lvl := range ingredientUnlockLevels {
		if i < len(m.Settings.Ingredients) && m.Settings.Level >= lvl {
			out = append(out, m.Settings.Ingredients[i])
		}
	}
	return out
}

// UnlockedSubskills lists the subskills the member's level has opened.
func (m Member) UnlockedSubskills() []*gamedata.Subskill {
	var out []*gamedata.Subskill
	for i, ss := range m.Settings.Subskills {
		if ss != nil && m.Settings.Level >= subskillUnlockLevels[i] {
			out = append(out, ss)
		}
	}
	return out
}

func (m Member) String() string {
	return fmt.Sprintf("%s lv%d", m.Pokemon.Name, m.Settings.Level)
}

type CookingSettings struct {
	RecipeType gamedata.RecipeType
}

type TeamSettings struct {
	Camp      bool
	Wakeup    TimeOfDay
	Bedtime   TimeOfDay
	Island    *gamedata.Island
	Cooking   *CookingSettings // nil disables the pot
	MealTimes []TimeOfDay
}

func DefaultTeamSettings() TeamSettings {
	return TeamSettings{
		Wakeup:  MustParseTimeOfDay("06:00"),
		Bedtime: MustParseTimeOfDay("21:30"),
		MealTimes: []TimeOfDay{
			MustParseTimeOfDay("08:00"),
			MustParseTimeOfDay("12:00"),
			MustParseTimeOfDay("18:00"),
		},
	}
}

func (s TeamSettings) dayLength() int {
	d := s.Wakeup.until(s.Bedtime)
	if d == 0 {
		return secondsPerDay
	}
	return d
}

func (s TeamSettings) validate() error {
	d := s.dayLength()
	if d == secondsPerDay {
		return fmt.Errorf("%w: wakeup and bedtime are both %s", ErrInvalidSettings, s.Wakeup)
	}
	return nil
}

type Options struct {
	Store      *gamedata.Store // nil means gamedata.Default()
	Iterations int
	Rand       *rand.Rand
	Logger     *zap.Logger
	Registry   *Registry
	IncludeLog bool
}

func (o Options) withDefaults() Options {
	if o.Iterations <= 0 {
		o.Iterations = DefaultIterations
	}
	if o.Rand == nil {
		o.Rand = NewRand(0)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Registry == nil {
		o.Registry = DefaultRegistry()
	}
	if o.Store == nil {
		o.Store = gamedata.Default()
	}
	return o
}
