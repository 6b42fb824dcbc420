package sim

import (
	"go.uber.org/zap"

	"sleep-optimizer/internal/gamedata"
)

type HelpSummary struct {
	DayHelps           float64
	NightHelps         float64
	NightHelpsBeforeSS float64
	SneakySnackHelps   float64
	Frequency          float64 // seconds per help before the energy factor
	Carry              int
}

type SkillSummary struct {
	SkillLevel      int
	SkillProcs      float64
	DaySkillProcs   float64
	NightSkillProcs float64
	SkillCrits      float64
	// NightProcOdds[k] is the share of nights that stored k procs.
	NightProcOdds []float64
	// ProcDistribution[k] is the share of days with exactly k procs.
	ProcDistribution []float64
}

type EnergySummary struct {
	SleepRecovery float64
	MealRecovery  float64
	SkillRecovery float64
	Wasted        float64
	Degraded      float64
	WakeupEnergy  float64
	BedtimeEnergy float64
	MinEnergy     float64
}

// MemberProduction holds one member's per-day means.
type MemberProduction struct {
	Member              Member
	Produce             gamedata.Produce
	ProduceWithoutSkill gamedata.Produce
	ProduceFromSkill    gamedata.Produce
	SneakySnack         gamedata.Produce
	SpilledIngredients  gamedata.IngredientAmounts
	SkillValues         map[gamedata.Unit]SkillValue
	Help                HelpSummary
	Skill               SkillSummary
	Energy              EnergySummary
	Log                 []Event // last simulated day, when requested
}

type CookingSummary struct {
	Meals    float64
	Crits    float64
	Strength float64
	LastDay  []MealRecord
}

type TeamSummary struct {
	Produce gamedata.Produce
	Cooking *CookingSummary
}

type TeamProduction struct {
	Members []MemberProduction
	Team    TeamSummary
}

// memberAccumulator sums dayStats over the recorded days.
type memberAccumulator struct {
	days      int
	sum       dayStats
	procDays  map[int]int
	nightOdds []int
}

func newMemberAccumulator(ingredientCount, maxStored int) *memberAccumulator {
	a := &memberAccumulator{
		sum:       newDayStats(ingredientCount),
		procDays:  make(map[int]int),
		nightOdds: make([]int, maxStored+1),
	}
	a.sum.energy.min = 0
	return a
}

func (a *memberAccumulator) add(d dayStats) {
	a.days++
	s := &a.sum
	s.dayHelps += d.dayHelps
	s.nightHelps += d.nightHelps
	s.nightHelpsBeforeSS += d.nightHelpsBeforeSS
	s.sneakySnackHelps += d.sneakySnackHelps
	s.skillProcs += d.skillProcs
	s.nightSkillProcs += d.nightSkillProcs
	s.skillCrits += d.skillCrits
	s.helpProduce.Add(d.helpProduce)
	s.skillProduce.Add(d.skillProduce)
	s.sneakySnack.Add(d.sneakySnack)
	s.spilled.Add(d.spilled)
	for u, v := range d.skillValues {
		acc := s.skillValues[u]
		acc.Regular += v.Regular
		acc.Crit += v.Crit
		s.skillValues[u] = acc
	}
	e := &s.energy
	e.sleep += d.energy.sleep
	e.meal += d.energy.meal
	e.skill += d.energy.skill
	e.wasted += d.energy.wasted
	e.degraded += d.energy.degraded
	e.wakeup += d.energy.wakeup
	e.bedtime += d.energy.bedtime
	e.min += d.energy.min

	a.procDays[d.skillProcs]++
	a.nightOdds[min(d.storedProcs, len(a.nightOdds)-1)]++
}

func (a *memberAccumulator) result(m *MemberState) MemberProduction {
	n := float64(a.days)
	s := a.sum
	mean := func(v int) float64 { return float64(v) / n }

	helpProduce := s.helpProduce.Clone()
	helpProduce.Scale(1 / n)
	skillProduce := s.skillProduce.Clone()
	skillProduce.Scale(1 / n)
	total := helpProduce.Clone()
	total.Add(skillProduce)
	sneaky := s.sneakySnack.Clone()
	sneaky.Scale(1 / n)
	spilled := s.spilled.Clone()
	spilled.Scale(1 / n)

	values := make(map[gamedata.Unit]SkillValue, len(s.skillValues))
	for u, v := range s.skillValues {
		values[u] = SkillValue{Regular: v.Regular / n, Crit: v.Crit / n}
	}

	maxProcs := 0
	for k := range a.procDays {
		maxProcs = max(maxProcs, k)
	}
	dist := make([]float64, maxProcs+1)
	for k, c := range a.procDays {
		dist[k] = float64(c) / n
	}
	odds := make([]float64, len(a.nightOdds))
	for k, c := range a.nightOdds {
		odds[k] = float64(c) / n
	}

	return MemberProduction{
		Member:              m.Member,
		Produce:             total,
		ProduceWithoutSkill: helpProduce,
		ProduceFromSkill:    skillProduce,
		SneakySnack:         sneaky,
		SpilledIngredients:  spilled,
		SkillValues:         values,
		Help: HelpSummary{
			DayHelps:           mean(s.dayHelps),
			NightHelps:         mean(s.nightHelps),
			NightHelpsBeforeSS: mean(s.nightHelpsBeforeSS),
			SneakySnackHelps:   mean(s.sneakySnackHelps),
			Frequency:          m.stats.frequency,
			Carry:              m.stats.carry,
		},
		Skill: SkillSummary{
			SkillLevel:       m.stats.skillLevel,
			SkillProcs:       mean(s.skillProcs),
			DaySkillProcs:    mean(s.skillProcs - s.nightSkillProcs),
			NightSkillProcs:  mean(s.nightSkillProcs),
			SkillCrits:       mean(s.skillCrits),
			NightProcOdds:    odds,
			ProcDistribution: dist,
		},
		Energy: EnergySummary{
			SleepRecovery: s.energy.sleep / n,
			MealRecovery:  s.energy.meal / n,
			SkillRecovery: s.energy.skill / n,
			Wasted:        s.energy.wasted / n,
			Degraded:      s.energy.degraded / n,
			WakeupEnergy:  s.energy.wakeup / n,
			BedtimeEnergy: s.energy.bedtime / n,
			MinEnergy:     s.energy.min / n,
		},
	}
}

// SimulateTeamProduction runs one warm-up day and then opts.Iterations
// recorded days, carrying energy and unrolled night helps from each day
// into the next, and returns per-day means. The result depends only on
// the inputs and the state of opts.Rand.
func SimulateTeamProduction(team []Member, settings TeamSettings, opts Options) (*TeamProduction, error) {
	opts = opts.withDefaults()
	t, err := newTeamState(opts.Store, team, settings, opts)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("simulating team",
		zap.Stringers("members", team),
		zap.Int("iterations", opts.Iterations))

	t.runDay()
	if t.cooking != nil {
		t.cooking.Meals = nil
	}

	ingredientCount := opts.Store.IngredientCount()
	accs := make([]*memberAccumulator, len(t.members))
	for i, m := range t.members {
		accs[i] = newMemberAccumulator(ingredientCount, m.stats.maxStoredProcs)
	}
	var lastDayMeals []MealRecord
	for it := 0; it < opts.Iterations; it++ {
		last := it == opts.Iterations-1
		t.enableLog(last && opts.IncludeLog)
		mealsBefore := 0
		if t.cooking != nil {
			mealsBefore = len(t.cooking.Meals)
		}
		t.runDay()
		for i, m := range t.members {
			accs[i].add(m.day)
		}
		if last && t.cooking != nil {
			lastDayMeals = append([]MealRecord(nil), t.cooking.Meals[mealsBefore:]...)
		}
	}

	out := &TeamProduction{Team: TeamSummary{Produce: gamedata.NewProduce(ingredientCount)}}
	for i, m := range t.members {
		mp := accs[i].result(m)
		if m.log != nil {
			mp.Log = m.log.events
		}
		out.Team.Produce.Add(mp.Produce)
		out.Members = append(out.Members, mp)
	}
	if t.cooking != nil {
		cs := &CookingSummary{LastDay: lastDayMeals}
		for _, meal := range t.cooking.Meals {
			cs.Meals++
			cs.Strength += meal.Strength
			if meal.Crit {
				cs.Crits++
			}
		}
		n := float64(opts.Iterations)
		cs.Meals /= n
		cs.Strength /= n
		cs.Crits /= n
		out.Team.Cooking = cs
	}
	t.enableLog(false)
	return out, nil
}
