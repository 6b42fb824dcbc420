package sim

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"sleep-optimizer/internal/gamedata"
)

const chunkSeconds = 600

// teamState is the arena every MemberState of one run lives in.
type teamState struct {
	members  []*MemberState
	settings TeamSettings
	store    *gamedata.Store
	cooking  *CookingState
	rng      *rand.Rand
	logger   *zap.Logger
	mods     teamModifiers

	dayLength   int
	nightLength int
	mealOffsets []int // seconds after wakeup, within the day
	clock       TimeOfDay
}

func newTeamState(store *gamedata.Store, team []Member, settings TeamSettings, opts Options) (*teamState, error) {
	if len(team) == 0 || len(team) > MaxTeamSize {
		return nil, fmt.Errorf("%w: team size %d outside 1-%d", ErrInvalidSettings, len(team), MaxTeamSize)
	}
	if err := settings.validate(); err != nil {
		return nil, err
	}
	t := &teamState{
		settings: settings,
		store:    store,
		rng:      opts.Rand,
		logger:   opts.Logger,
		mods:     teamModifiersOf(team, settings.Camp),
	}
	t.dayLength = settings.dayLength()
	t.nightLength = secondsPerDay - t.dayLength
	for _, mt := range settings.MealTimes {
		if off := settings.Wakeup.until(mt); off < t.dayLength {
			t.mealOffsets = append(t.mealOffsets, off)
		}
	}
	if settings.Cooking != nil {
		t.cooking = NewCookingState(store, *settings.Cooking, settings.Camp)
	}
	for i, m := range team {
		if m.Pokemon == nil || m.Settings.Nature == nil {
			return nil, fmt.Errorf("%w: member %d was not built with NewMember", ErrInvalidSettings, i)
		}
		ms := &MemberState{
			Member:  m,
			index:   i,
			team:    t,
			stats:   deriveStats(m, t.mods, store.IngredientCount()),
			effects: opts.Registry.NewEffectSet(),
			day:     newDayStats(store.IngredientCount()),
		}
		t.members = append(t.members, ms)
	}
	return t, nil
}

// runDay simulates one wake-up to the next.
func (t *teamState) runDay() {
	t.clock = t.settings.Wakeup
	for _, m := range t.members {
		m.wakeUp(t.nightLength, t.mods.erb)
	}
	t.runPeriod(t.dayLength, false)
	for _, m := range t.members {
		m.goToBed()
	}
	t.runPeriod(t.nightLength, true)
	for _, m := range t.members {
		m.endNight()
	}
}

func (t *teamState) runPeriod(length int, night bool) {
	start := t.clock
	for off := 0; off < length; off += chunkSeconds {
		chunk := min(chunkSeconds, length-off)
		t.clock = start + TimeOfDay(off)
		if !night {
			for _, mo := range t.mealOffsets {
				if mo >= off && mo < off+chunk {
					t.serveMeal(t.settings.Wakeup + TimeOfDay(mo))
				}
			}
		}
		for _, m := range t.members {
			m.advance(chunk, night)
		}
	}
	t.clock = start + TimeOfDay(length)
}

func (t *teamState) serveMeal(at TimeOfDay) {
	for _, m := range t.members {
		m.RecoverEnergy(mealEnergy, SourceMeal)
	}
	if t.cooking == nil {
		return
	}
	meal := t.cooking.Cook(t.rng, at)
	for _, m := range t.members {
		m.log.add(at, EventCooking, func() string { return fmt.Sprintf("%s for %.0f strength (crit %t)", meal.Name(), meal.Strength, meal.Crit) })
	}
}

func (t *teamState) activateSkill(m *MemberState) {
	skill := m.Member.Pokemon.Skill
	eff, ok := m.effects.Get(skill.Name)
	if !ok {
		t.logger.Error("missing skill effect", zap.String("skill", skill.Name))
		return
	}
	act := eff.Activate(&SkillState{
		Member:  m,
		Skill:   skill,
		Level:   m.stats.skillLevel,
		Rand:    t.rng,
		Effects: m.effects,
		Store:   t.store,
		Logger:  t.logger,
	})
	for i, o := range act.Outcomes {
		if o.Target != TargetMember {
			continue
		}
		target := t.pickMember(o.ChanceToTargetLowestMember)
		if o.Unit == gamedata.UnitEnergy {
			act.Outcomes[i].Regular = target.RecoverEnergy(o.Regular, SourceSkill)
			act.Outcomes[i].Crit = 0
		}
	}
	m.recordSkill(act)
}

// pickMember returns the lowest-energy member with the given chance and a
// uniformly random member otherwise.
func (t *teamState) pickMember(lowestChance float64) *MemberState {
	if roll(t.rng, lowestChance) {
		lowest := t.members[0]
		for _, m := range t.members[1:] {
			if m.energy < lowest.energy {
				lowest = m
			}
		}
		return lowest
	}
	return t.members[t.rng.IntN(len(t.members))]
}

func (t *teamState) enableLog(on bool) {
	for _, m := range t.members {
		if on {
			m.log = &eventLog{}
		} else {
			m.log = nil
		}
	}
}
