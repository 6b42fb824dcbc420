package main

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tidwall/pretty"

	"sleep-optimizer/internal/gamedata"
	"sleep-optimizer/internal/sim"
	"sleep-optimizer/internal/solve"
	"sleep-optimizer/internal/strength"
)

// MemberReport is one member's per-day means, flattened for output.
type MemberReport struct {
	Name             string             `json:"name"`
	ID               string             `json:"id,omitempty"`
	Level            int                `json:"level"`
	Berries          map[string]float64 `json:"berries"`
	Ingredients      map[string]float64 `json:"ingredients"`
	SkillLevel       int                `json:"skillLevel"`
	SkillProcs       float64            `json:"skillProcs"`
	NightSkillProcs  float64            `json:"nightSkillProcs"`
	SkillValues      map[string]float64 `json:"skillValues"`
	DayHelps         float64            `json:"dayHelps"`
	NightHelps       float64            `json:"nightHelps"`
	SneakySnackHelps float64            `json:"sneakySnackHelps"`
	WakeupEnergy     float64            `json:"wakeupEnergy"`
	BedtimeEnergy    float64            `json:"bedtimeEnergy"`
	WastedEnergy     float64            `json:"wastedEnergy"`
	Strength         float64            `json:"strength"`
	Log              []string           `json:"log,omitempty"`
}

type CookingReport struct {
	Meals    float64  `json:"meals"`
	Crits    float64  `json:"crits"`
	Strength float64  `json:"strength"`
	LastDay  []string `json:"lastDay"`
}

// TeamReport is the output of one team simulation.
type TeamReport struct {
	RequestID   string             `json:"requestId,omitempty"`
	Name        string             `json:"name"`
	Members     []MemberReport     `json:"members"`
	Berries     map[string]float64 `json:"berries"`
	Ingredients map[string]float64 `json:"ingredients"`
	Cooking     *CookingReport     `json:"cooking,omitempty"`
	Strength    float64            `json:"strength"`
}

type SolveTeamReport struct {
	Members []string           `json:"members"`
	Added   []string           `json:"added"`
	Produce map[string]float64 `json:"produce"`
	Surplus map[string]float64 `json:"surplus"`
}

// SolveReport is the output of one recipe solve.
type SolveReport struct {
	RequestID  string             `json:"requestId,omitempty"`
	Recipe     string             `json:"recipe"`
	Required   map[string]float64 `json:"required"`
	Exhaustive bool               `json:"exhaustive"`
	Candidates int                `json:"candidates"`
	Teams      []SolveTeamReport  `json:"teams"`
}

func NewTeamReport(name string, tp *sim.TeamProduction, settings sim.TeamSettings, store *gamedata.Store) TeamReport {
	ts := teamStrength(tp, settings)
	r := TeamReport{
		Name:        name,
		Berries:     berryMap(tp.Team.Produce),
		Ingredients: ingredientMap(store, tp.Team.Produce.Ingredients),
		Strength:    ts.Total,
	}
	for i, mp := range tp.Members {
		mr := MemberReport{
			Name:             mp.Member.Pokemon.Name,
			ID:               mp.Member.Settings.ExternalID,
			Level:            mp.Member.Settings.Level,
			Berries:          berryMap(mp.Produce),
			Ingredients:      ingredientMap(store, mp.Produce.Ingredients),
			SkillLevel:       mp.Skill.SkillLevel,
			SkillProcs:       mp.Skill.SkillProcs,
			NightSkillProcs:  mp.Skill.NightSkillProcs,
			SkillValues:      make(map[string]float64),
			DayHelps:         mp.Help.DayHelps,
			NightHelps:       mp.Help.NightHelps,
			SneakySnackHelps: mp.Help.SneakySnackHelps,
			WakeupEnergy:     mp.Energy.WakeupEnergy,
			BedtimeEnergy:    mp.Energy.BedtimeEnergy,
			WastedEnergy:     mp.Energy.Wasted,
			Strength:         ts.Members[i].Total,
		}
		for u, v := range mp.SkillValues {
			mr.SkillValues[u.String()] = v.Total()
		}
		for _, e := range mp.Log {
			mr.Log = append(mr.Log, e.String())
		}
		r.Members = append(r.Members, mr)
	}
	if c := tp.Team.Cooking; c != nil {
		cr := &CookingReport{Meals: c.Meals, Crits: c.Crits, Strength: c.Strength}
		for _, meal := range c.LastDay {
			cr.LastDay = append(cr.LastDay, fmt.Sprintf("%s %s %.0f", meal.Time, meal.Name(), meal.Strength))
		}
		r.Cooking = cr
	}
	return r
}

// teamStrength scores a simulation on the team's island.
func teamStrength(tp *sim.TeamProduction, settings sim.TeamSettings) strength.TeamStrength {
	var areaBonus float64
	if settings.Island != nil {
		areaBonus = settings.Island.AreaBonus
	}
	inputs := make([]strength.Input, len(tp.Members))
	for i, mp := range tp.Members {
		inputs[i] = strength.Input{
			Level:        mp.Member.Settings.Level,
			Produce:      mp.ProduceWithoutSkill,
			SkillProduce: mp.ProduceFromSkill,
			SkillValue:   mp.SkillValues[gamedata.UnitStrength].Total(),
			Island:       settings.Island,
			AreaBonus:    areaBonus,
		}
	}
	var cooking float64
	if tp.Team.Cooking != nil {
		cooking = tp.Team.Cooking.Strength
	}
	return strength.CalculateTeamStrength(inputs, cooking, areaBonus)
}

func NewSolveReport(res *solve.SolveResult, store *gamedata.Store) SolveReport {
	r := SolveReport{
		Recipe:     res.Recipe.Name,
		Required:   ingredientMap(store, res.Recipe.Requirement.Amounts()),
		Exhaustive: res.Exhaustive,
		Candidates: res.Candidates,
		Teams:      []SolveTeamReport{},
	}
	for _, team := range res.Teams {
		tr := SolveTeamReport{
			Members: []string{},
			Added:   []string{},
			Produce: ingredientMap(store, team.Produce),
			Surplus: ingredientMap(store, team.Surplus),
		}
		for _, m := range team.Members {
			name := memberLabel(m.Member)
			tr.Members = append(tr.Members, name)
			if !m.Included {
				tr.Added = append(tr.Added, name)
			}
		}
		r.Teams = append(r.Teams, tr)
	}
	return r
}

func memberLabel(m sim.Member) string {
	var ings []string
	for _, set := range m.UnlockedIngredients() {
		ings = append(ings, set.Ingredient.Name)
	}
	if len(ings) == 0 {
		return m.String()
	}
	return fmt.Sprintf("%s (%s)", m.String(), strings.Join(ings, "/"))
}

func berryMap(p gamedata.Produce) map[string]float64 {
	out := make(map[string]float64)
	for _, set := range p.Berries {
		if set.Berry != nil && set.Amount > 0 {
			out[set.Berry.Name] += round1(set.Amount)
		}
	}
	return out
}

// ingredientMap keys v by ingredient name, dropping zero components. The
// surplus of a solve may be negative, so only exact zeros are dropped.
func ingredientMap(store *gamedata.Store, v gamedata.IngredientAmounts) map[string]float64 {
	out := make(map[string]float64)
	ings := store.Ingredients()
	for i, amount := range v {
		if r := round1(amount); r != 0 && i < len(ings) {
			out[ings[i].Name] = r
		}
	}
	return out
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// FormatTeamReport renders a simulation as plain text.
func FormatTeamReport(r TeamReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Team: %s -> %.0f strength/day\n", r.Name, r.Strength)
	for _, m := range r.Members {
		b.WriteString("-------------------\n")
		fmt.Fprintf(&b, "%s lv%d -> %.0f strength\n", m.Name, m.Level, m.Strength)
		fmt.Fprintf(&b, "  helps: %.1f day / %.1f night (%.1f sneaky snack)\n",
			m.DayHelps, m.NightHelps, m.SneakySnackHelps)
		fmt.Fprintf(&b, "  skill lv%d: %.2f procs (%.2f at night)", m.SkillLevel, m.SkillProcs, m.NightSkillProcs)
		if len(m.SkillValues) > 0 {
			fmt.Fprintf(&b, " %s", formatMap(m.SkillValues))
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "  energy: wake %.1f, bed %.1f, wasted %.1f\n", m.WakeupEnergy, m.BedtimeEnergy, m.WastedEnergy)
		fmt.Fprintf(&b, "  berries: %s\n", formatMap(m.Berries))
		fmt.Fprintf(&b, "  ingredients: %s\n", formatMap(m.Ingredients))
		for _, line := range m.Log {
			fmt.Fprintf(&b, "    %s\n", line)
		}
	}
	b.WriteString("===================\n")
	fmt.Fprintf(&b, "berries: %s\n", formatMap(r.Berries))
	fmt.Fprintf(&b, "ingredients: %s\n", formatMap(r.Ingredients))
	if c := r.Cooking; c != nil {
		fmt.Fprintf(&b, "cooking: %.1f meals, %.2f crits, %.0f strength\n", c.Meals, c.Crits, c.Strength)
		for _, meal := range c.LastDay {
			fmt.Fprintf(&b, "  %s\n", meal)
		}
	}
	return b.String()
}

// FormatSolveReport renders a solve as plain text.
func FormatSolveReport(r SolveReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recipe: %s needs %s per meal\n", r.Recipe, formatMap(r.Required))
	fmt.Fprintf(&b, "%d teams from %d candidates (exhaustive: %t)\n", len(r.Teams), r.Candidates, r.Exhaustive)
	for i, t := range r.Teams {
		fmt.Fprintf(&b, "%d. %s\n", i+1, strings.Join(t.Members, " + "))
		fmt.Fprintf(&b, "   surplus: %s\n", formatMap(t.Surplus))
	}
	return b.String()
}

func formatMap(m map[string]float64) string {
	if len(m) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s %.1f", k, m[k])
	}
	return strings.Join(parts, ", ")
}

// marshalPretty encodes v as indented JSON.
func marshalPretty(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return pretty.Pretty(raw), nil
}
