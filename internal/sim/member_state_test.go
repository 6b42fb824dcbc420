package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRecoverEnergyCapsAndWastes(t *testing.T) {
	store := fixtureStore(t)
	ts := fixtureTeam(t, store, []Member{fixtureMember(t, store, "CHARGER", 10)}, shortDay(), 1)
	m := ts.members[0]
	m.setEnergy(140)

	got := m.RecoverEnergy(50, SourceSkill)
	assert.Equal(t, 10.0, got)
	assert.Equal(t, MaxEnergy, m.Energy())
	assert.Equal(t, 40.0, m.day.energy.wasted)
	assert.Equal(t, 10.0, m.day.energy.skill)
}

func TestRecoverEnergyAppliesNature(t *testing.T) {
	store := fixtureStore(t)
	relaxed, err := store.Nature("RELAXED")
	require.NoError(t, err)
	member, err := NewMember(store, "TESTMON", MemberSettings{Level: 10, Nature: relaxed})
	require.NoError(t, err)
	m := fixtureTeam(t, store, []Member{member}, shortDay(), 1).members[0]
	m.setEnergy(50)

	assert.InDelta(t, 12.0, m.RecoverEnergy(10, SourceSkill), 1e-9)
	assert.InDelta(t, 5.0, m.RecoverEnergy(5, SourceMeal), 1e-9, "meals ignore nature")
}

func TestSleepRecoveryStopsAt100(t *testing.T) {
	store := fixtureStore(t)
	m := fixtureTeam(t, store, []Member{fixtureMember(t, store, "TESTMON", 10)}, shortDay(), 1).members[0]

	m.setEnergy(90)
	assert.Equal(t, 10.0, m.RecoverEnergy(100, SourceSleep))
	assert.Equal(t, 0.0, m.day.energy.wasted, "sleep above the cap is not waste")

	m.setEnergy(120)
	assert.Equal(t, 0.0, m.RecoverEnergy(100, SourceSleep))
	assert.Equal(t, 120.0, m.Energy())
}

func TestDegradeEnergyFloorsAtZero(t *testing.T) {
	store := fixtureStore(t)
	m := fixtureTeam(t, store, []Member{fixtureMember(t, store, "TESTMON", 10)}, shortDay(), 1).members[0]
	m.setEnergy(5)
	assert.Equal(t, 5.0, m.DegradeEnergy(12))
	assert.Equal(t, 0.0, m.Energy())
	assert.Equal(t, 5.0, m.day.energy.degraded)
}

func TestEnergyStaysInBounds(t *testing.T) {
	store := fixtureStore(t)
	team := []Member{fixtureMember(t, store, "TESTMON", 10), fixtureMember(t, store, "CHARGER", 10)}

	rapid.Check(t, func(rt *rapid.T) {
		ts := fixtureTeam(t, store, team, shortDay(), 1)
		m := ts.members[rapid.IntRange(0, 1).Draw(rt, "member")]
		m.setEnergy(rapid.Float64Range(0, MaxEnergy).Draw(rt, "start"))
		ops := rapid.SliceOfN(rapid.IntRange(0, 4), 1, 40).Draw(rt, "ops")
		for i, op := range ops {
			amount := rapid.Float64Range(0, 200).Draw(rt, "amount")
			switch op {
			case 0:
				m.RecoverEnergy(amount, SourceSkill)
			case 1:
				m.RecoverEnergy(amount, SourceMeal)
			case 2:
				m.RecoverEnergy(amount, SourceSleep)
			case 3:
				m.DegradeEnergy(amount)
			case 4:
				m.decay(amount)
			}
			if e := m.Energy(); e < 0 || e > MaxEnergy {
				rt.Fatalf("op %d (%d, %v): energy %v out of bounds", i, op, amount, e)
			}
		}
	})
}

func TestAddSkillIngredientsFeedsPot(t *testing.T) {
	store := fixtureStore(t)
	settings := shortDay()
	settings.Cooking = &CookingSettings{}
	ts := fixtureTeam(t, store, []Member{fixtureMember(t, store, "TESTMON", 10)}, settings, 1)
	m := ts.members[0]

	m.AddSkillIngredients([]float64{2, 0, 1})
	assert.Equal(t, []float64{2, 0, 1}, []float64(m.day.skillProduce.Ingredients))
	assert.Equal(t, []float64{2, 0, 1}, []float64(ts.cooking.Stock))
}

func TestAddSkillHelpsUsesAverageProduce(t *testing.T) {
	store := fixtureStore(t)
	m := fixtureTeam(t, store, []Member{fixtureMember(t, store, "TESTMON", 10)}, shortDay(), 1).members[0]

	m.AddSkillHelps(3)
	// TESTMON never finds ingredients, so every help is one ORAN.
	assert.InDelta(t, 3.0, m.day.skillProduce.BerryTotal(), 1e-9)
	assert.InDelta(t, 0.0, m.day.skillProduce.Ingredients.Total(), 1e-9)
}

func TestEventLogDescribesOnlyWhenOn(t *testing.T) {
	calls := 0
	describe := func() string {
		calls++
		return "help"
	}

	var off *eventLog
	off.add(MustParseTimeOfDay("06:00"), EventHelp, describe)
	assert.Zero(t, calls, "a nil log must not format")

	on := &eventLog{}
	on.add(MustParseTimeOfDay("06:00"), EventHelp, describe)
	assert.Equal(t, 1, calls)
	require.Len(t, on.events, 1)
	assert.Equal(t, "help", on.events[0].Description)
}

func TestRunDayWithoutLogAllocatesLess(t *testing.T) {
	store := fixtureStore(t)
	ts := fixtureTeam(t, store, []Member{fixtureMember(t, store, "CHARGER", 10)}, DefaultTeamSettings(), 1)

	ts.enableLog(false)
	off := testing.AllocsPerRun(5, ts.runDay)
	ts.enableLog(true)
	on := testing.AllocsPerRun(5, ts.runDay)
	assert.Less(t, off, on)
}
