package sim

import (
	"fmt"
	"math"

	"sleep-optimizer/internal/gamedata"
)

const (
	MaxEnergy   = 150.0
	sleepCap    = 100.0
	mealEnergy  = 5.0
	decayPerTen = 1.0
)

type EnergySource int

const (
	SourceSleep EnergySource = iota
	SourceMeal
	SourceSkill
)

func (s EnergySource) String() string {
	switch s {
	case SourceSleep:
		return "sleep"
	case SourceMeal:
		return "meal"
	}
	return "skill"
}

type SkillValue struct {
	Regular float64
	Crit    float64
}

func (v SkillValue) Total() float64 { return v.Regular + v.Crit }

type energyTotals struct {
	sleep, meal, skill float64
	wasted, degraded   float64
	wakeup, bedtime    float64
	min                float64
}

// dayStats accumulate from one wake-up to the next.
type dayStats struct {
	dayHelps, nightHelps        int
	nightHelpsBeforeSS          int
	sneakySnackHelps            int
	skillProcs, nightSkillProcs int
	skillCrits                  int
	storedProcs                 int
	helpProduce                 gamedata.Produce
	skillProduce                gamedata.Produce
	sneakySnack                 gamedata.Produce
	spilled                     gamedata.IngredientAmounts
	skillValues                 map[gamedata.Unit]SkillValue
	energy                      energyTotals
}

func newDayStats(ingredientCount int) dayStats {
	return dayStats{
		helpProduce:  gamedata.NewProduce(ingredientCount),
		skillProduce: gamedata.NewProduce(ingredientCount),
		sneakySnack:  gamedata.NewProduce(ingredientCount),
		spilled:      make(gamedata.IngredientAmounts, ingredientCount),
		skillValues:  make(map[gamedata.Unit]SkillValue),
		energy:       energyTotals{min: MaxEnergy},
	}
}

// MemberState is one member's mutable state for a single run. Members
// address each other through the team arena by index and only mutate
// each other through the exported methods below.
type MemberState struct {
	Member Member

	index   int
	team    *teamState
	stats   memberStats
	effects *EffectSet

	energy            float64
	progress          float64
	inventory         float64
	full              bool
	pendingNightHelps int

	day dayStats
	log *eventLog
}

func (m *MemberState) Index() int { return m.index }
func (m *MemberState) Energy() float64 { return m.energy }
func (m *MemberState) SkillLevel() int { return m.stats.skillLevel }
func (m *MemberState) Carry() int { return m.stats.carry }
func (m *MemberState) Berry() *gamedata.Berry { return m.Member.Pokemon.Berry }

// Team lists every member state, including m. Read-only.
func (m *MemberState) Team() []*MemberState { return m.team.members }

// OtherMembers lists the team without m.
func (m *MemberState) OtherMembers() []*MemberState {
	out := make([]*MemberState, 0, len(m.team.members)-1)
	for _, o := range m.team.members {
		if o.index != m.index {
			out = append(out, o)
		}
	}
	return out
}

// Cooking returns the team's pot, nil when cooking is disabled.
func (m *MemberState) Cooking() *CookingState { return m.team.cooking }

func (m *MemberState) setEnergy(e float64) {
	m.energy = math.Max(0, math.Min(MaxEnergy, e))
	if m.energy < m.day.energy.min {
		m.day.energy.min = m.energy
	}
}

// RecoverEnergy adds amount, scaled by the member's nature for sleep and
// skill sources, and returns what was actually recovered. Anything above
// the cap is passed to WasteEnergy.
func (m *MemberState) RecoverEnergy(amount float64, source EnergySource) float64 {
	if amount <= 0 {
		return 0
	}
	if source != SourceMeal {
		amount *= m.Member.Settings.Nature.Energy
	}
	limit := MaxEnergy
	if source == SourceSleep {
		limit = sleepCap
	}
	recovered := math.Max(0, math.Min(amount, limit-m.energy))
	if source != SourceSleep && amount > recovered {
		m.WasteEnergy(amount - recovered)
	}
	m.setEnergy(m.energy + recovered)
	switch source {
	case SourceSleep:
		m.day.energy.sleep += recovered
	case SourceMeal:
		m.day.energy.meal += recovered
	default:
		m.day.energy.skill += recovered
	}
	m.log.add(m.team.clock, EventEnergy, func() string { return fmt.Sprintf("+%.1f energy from %s (%.1f)", recovered, source, m.energy) })
	return recovered
}

// DegradeEnergy removes up to amount and returns what was removed.
func (m *MemberState) DegradeEnergy(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	removed := math.Min(amount, m.energy)
	m.setEnergy(m.energy - removed)
	m.day.energy.degraded += removed
	m.log.add(m.team.clock, EventEnergy, func() string { return fmt.Sprintf("-%.1f energy degraded (%.1f)", removed, m.energy) })
	return removed
}

// WasteEnergy records recovery lost to the energy cap.
func (m *MemberState) WasteEnergy(amount float64) {
	if amount > 0 {
		m.day.energy.wasted += amount
	}
}

func (m *MemberState) decay(amount float64) {
	m.setEnergy(m.energy - amount)
}

// AddSkillHelps credits n extra helps worth of average produce.
func (m *MemberState) AddSkillHelps(n float64) {
	if n <= 0 {
		return
	}
	p := m.stats.averageProduce.Clone()
	p.Scale(n)
	m.addSkillProduce(p)
}

// AddSkillBerries credits amount of the member's own berry.
func (m *MemberState) AddSkillBerries(amount float64) {
	if amount <= 0 {
		return
	}
	p := gamedata.NewProduce(len(m.day.skillProduce.Ingredients))
	p.AddBerries(m.Berry(), amount, m.Member.Settings.Level)
	m.addSkillProduce(p)
}

// AddSkillIngredients credits an ingredient vector and pushes it into the pot.
func (m *MemberState) AddSkillIngredients(amounts gamedata.IngredientAmounts) {
	p := gamedata.Produce{Ingredients: amounts}
	m.addSkillProduce(p)
}

func (m *MemberState) addSkillProduce(p gamedata.Produce) {
	m.day.skillProduce.Add(p)
	if c := m.team.cooking; c != nil {
		c.AddIngredients(p.Ingredients)
	}
}

func (m *MemberState) addHelpProduce(p gamedata.Produce) {
	m.day.helpProduce.Add(p)
	if c := m.team.cooking; c != nil {
		c.AddIngredients(p.Ingredients)
	}
}

// helpInterval is the current seconds per help, energy included.
func (m *MemberState) helpInterval() float64 {
	return m.stats.frequency * energyFactor(m.energy)
}

// advance moves the member through a slice of time, performing due helps.
func (m *MemberState) advance(seconds int, night bool) {
	m.progress += float64(seconds) / m.helpInterval()
	for m.progress >= 1 {
		m.progress--
		if night {
			m.nightHelp()
		} else {
			m.dayHelp()
		}
	}
	m.decay(decayPerTen * float64(seconds) / chunkSeconds)
}

func (m *MemberState) dayHelp() {
	m.day.dayHelps++
	m.addHelpProduce(m.stats.averageProduce)
	m.log.add(m.team.clock, EventHelp, func() string { return fmt.Sprintf("help (%.1f energy)", m.energy) })
	if roll(m.team.rng, m.stats.skillChance) {
		m.team.activateSkill(m)
	}
}

func (m *MemberState) nightHelp() {
	m.day.nightHelps++
	if !m.full && m.inventory+m.stats.itemsPerHelp <= float64(m.stats.carry) {
		m.inventory += m.stats.itemsPerHelp
		m.day.nightHelpsBeforeSS++
		m.addHelpProduce(m.stats.averageProduce)
		m.log.add(m.team.clock, EventHelp, func() string { return fmt.Sprintf("night help, inventory %.1f/%d", m.inventory, m.stats.carry) })
		return
	}
	if !m.full {
		m.full = true
		m.log.add(m.team.clock, EventHelp, func() string { return fmt.Sprintf("inventory full at %.1f/%d", m.inventory, m.stats.carry) })
	}
	m.day.sneakySnackHelps++
	m.day.helpProduce.Add(m.stats.berryHelp)
	m.day.sneakySnack.Add(m.stats.berryHelp)
	m.day.spilled.Add(m.stats.ingredientPart)
}

// wakeUp applies sleep recovery and releases skills stored overnight.
func (m *MemberState) wakeUp(nightSeconds int, erb int) {
	m.day = newDayStats(len(m.day.spilled))
	m.RecoverEnergy(sleepScore(nightSeconds)*erbFactor(erb), SourceSleep)
	m.day.energy.wakeup = m.energy
	m.log.add(m.team.clock, EventSleep, func() string { return fmt.Sprintf("woke up with %.1f energy", m.energy) })

	stored := 0
	for i := 0; i < m.pendingNightHelps && stored < m.stats.maxStoredProcs; i++ {
		if roll(m.team.rng, m.stats.skillChance) {
			stored++
		}
	}
	m.pendingNightHelps = 0
	m.inventory = 0
	m.full = false
	m.day.storedProcs = stored
	for range stored {
		m.day.nightSkillProcs++
		m.team.activateSkill(m)
	}
}

func (m *MemberState) goToBed() {
	m.day.energy.bedtime = m.energy
	m.log.add(m.team.clock, EventSleep, func() string { return fmt.Sprintf("went to bed with %.1f energy", m.energy) })
}

// endNight carries the helps that can still roll a skill into the next morning.
func (m *MemberState) endNight() {
	m.pendingNightHelps = m.day.nightHelpsBeforeSS
}

func (m *MemberState) recordSkill(act Activation) {
	m.day.skillProcs++
	if act.Crit() {
		m.day.skillCrits++
	}
	for _, o := range act.Outcomes {
		v := m.day.skillValues[o.Unit]
		v.Regular += o.Regular
		v.Crit += o.Crit
		m.day.skillValues[o.Unit] = v
	}
	m.log.add(m.team.clock, EventSkill, func() string { return act.String() })
}
