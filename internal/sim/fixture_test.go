package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sleep-optimizer/internal/gamedata"
)

// fixtureJSON is a small hand-checked data set: TESTMON helps every hour at
// level 1, never finds ingredients and never procs its skill.
const fixtureJSON = `{
  "ingredients": [
    {"name": "APPLE", "longName": "Apple", "value": 90},
    {"name": "EGG", "longName": "Egg", "value": 115},
    {"name": "MILK", "longName": "Milk", "value": 98}
  ],
  "berries": [
    {"name": "ORAN", "type": "water", "value": 31},
    {"name": "PECHA", "type": "electric", "value": 25},
    {"name": "WIKI", "type": "dark", "value": 31}
  ],
  "natures": [
    {"name": "BASHFUL", "frequency": 1, "energy": 1, "ingredient": 1, "skill": 1},
    {"name": "RELAXED", "frequency": 1, "energy": 1.2, "ingredient": 1, "skill": 1}
  ],
  "subskills": [
    {"name": "HELPING_BONUS", "kind": "helpingBonus", "amount": 0.05},
    {"name": "HELPING_SPEED_M", "kind": "helpingSpeed", "amount": 0.14},
    {"name": "INVENTORY_UP_L", "kind": "inventory", "amount": 18},
    {"name": "SKILL_LEVEL_UP_M", "kind": "skillLevel", "amount": 2},
    {"name": "ENERGY_RECOVERY_BONUS", "kind": "energyRecovery", "amount": 1}
  ],
  "skills": [
    {"name": "Charge Strength S", "unit": "strength", "maxLevel": 3, "amount": [400, 569, 785]},
    {"name": "Charge Energy S", "unit": "energy", "maxLevel": 2, "amount": [50, 60]},
    {"name": "Energizing Cheer S", "unit": "energy", "maxLevel": 1, "amount": [20], "lowestMemberChance": 1},
    {"name": "Energy For Everyone S", "unit": "energy", "maxLevel": 1, "amount": [10]},
    {"name": "Charge Strength S (Stockpile)", "unit": "strength", "maxLevel": 2, "amount": [600, 853],
     "base": "Charge Strength S", "modifier": "Stockpile", "critChance": 0,
     "extra": {"maxStock": [2, 3]}, "stockpile": [[600, 1248, 1896], [853, 1774, 2695, 3617]]},
    {"name": "Bad Dreams", "unit": "strength", "maxLevel": 1, "amount": [2400], "extra": {"energy": [12]}},
    {"name": "Ingredient Draw S", "unit": "ingredients", "maxLevel": 1, "amount": [5]},
    {"name": "Ingredient Magnet S", "unit": "ingredients", "maxLevel": 1, "amount": [6]},
    {"name": "Extra Helpful S", "unit": "helps", "maxLevel": 1, "amount": [4]},
    {"name": "Berry Burst", "unit": "berries", "maxLevel": 1, "amount": [8], "extra": {"team": [1]}},
    {"name": "Metronome", "unit": "none", "maxLevel": 3, "amount": [1, 2, 3]},
    {"name": "Skill Copy", "unit": "none", "maxLevel": 3, "amount": [1, 2, 3]},
    {"name": "Transform", "unit": "none", "maxLevel": 3, "amount": [1, 2, 3], "base": "Skill Copy", "modifier": "Transform"}
  ],
  "metronome": ["Charge Strength S"],
  "pokemon": [
    {"name": "TESTMON", "displayName": "Testmon", "specialty": "ingredient", "frequency": 3600,
     "ingredientPercentage": 0, "skillPercentage": 0, "berry": "ORAN", "carry": 10, "previousEvolutions": 0,
     "skill": "Charge Strength S",
     "ingredient0": [{"name": "APPLE", "amount": 1}],
     "ingredient30": [{"name": "EGG", "amount": 2}, {"name": "APPLE", "amount": 2}],
     "ingredient60": [{"name": "MILK", "amount": 4}]},
    {"name": "CHARGER", "displayName": "Charger", "specialty": "skill", "frequency": 3600,
     "ingredientPercentage": 0, "skillPercentage": 100, "berry": "PECHA", "carry": 10,
     "skill": "Charge Energy S",
     "ingredient0": [{"name": "EGG", "amount": 1}], "ingredient30": [{"name": "EGG", "amount": 2}],
     "ingredient60": [{"name": "EGG", "amount": 3}]},
    {"name": "HOARDER", "displayName": "Hoarder", "specialty": "berry", "frequency": 3000,
     "ingredientPercentage": 20, "skillPercentage": 5, "berry": "ORAN", "carry": 20,
     "skill": "Charge Strength S (Stockpile)",
     "ingredient0": [{"name": "APPLE", "amount": 1}], "ingredient30": [{"name": "APPLE", "amount": 2}],
     "ingredient60": [{"name": "APPLE", "amount": 3}]},
    {"name": "DREAMER", "displayName": "Dreamer", "specialty": "berry", "frequency": 3600,
     "ingredientPercentage": 20, "skillPercentage": 5, "berry": "WIKI", "carry": 20,
     "skill": "Bad Dreams",
     "ingredient0": [{"name": "MILK", "amount": 1}], "ingredient30": [{"name": "MILK", "amount": 2}],
     "ingredient60": [{"name": "MILK", "amount": 3}]},
    {"name": "METRO", "displayName": "Metro", "specialty": "skill", "frequency": 2600,
     "ingredientPercentage": 15, "skillPercentage": 6, "berry": "PECHA", "carry": 15,
     "skill": "Metronome",
     "ingredient0": [{"name": "EGG", "amount": 1}], "ingredient30": [{"name": "EGG", "amount": 2}],
     "ingredient60": [{"name": "EGG", "amount": 3}]},
    {"name": "COPYCAT", "displayName": "Copycat", "specialty": "skill", "frequency": 3500,
     "ingredientPercentage": 20, "skillPercentage": 4, "berry": "ORAN", "carry": 12,
     "skill": "Transform",
     "ingredient0": [{"name": "MILK", "amount": 1}], "ingredient30": [{"name": "MILK", "amount": 2}],
     "ingredient60": [{"name": "MILK", "amount": 3}]},
    {"name": "CHEERER", "displayName": "Cheerer", "specialty": "skill", "frequency": 3000,
     "ingredientPercentage": 20, "skillPercentage": 4, "berry": "ORAN", "carry": 12,
     "skill": "Energizing Cheer S",
     "ingredient0": [{"name": "APPLE", "amount": 1}], "ingredient30": [{"name": "APPLE", "amount": 2}],
     "ingredient60": [{"name": "APPLE", "amount": 3}]}
  ],
  "recipes": [
    {"name": "APPLE_CURRY", "displayName": "Apple Curry", "type": "curry", "bonus": 0,
     "ingredients": [{"name": "APPLE", "amount": 7}]},
    {"name": "EGG_CURRY", "displayName": "Egg Curry", "type": "curry", "bonus": 10,
     "ingredients": [{"name": "EGG", "amount": 10}, {"name": "APPLE", "amount": 10}]}
  ],
  "islands": [{"name": "CYAN", "displayName": "Cyan", "areaBonus": 0, "berries": ["ORAN"]}]
}`

func fixtureStore(t testing.TB) *gamedata.Store {
	t.Helper()
	s, err := gamedata.Load(fixtureJSON)
	require.NoError(t, err)
	return s
}

func fixtureMember(t testing.TB, store *gamedata.Store, name string, level int) Member {
	t.Helper()
	m, err := NewMember(store, name, MemberSettings{Level: level})
	require.NoError(t, err)
	return m
}

// shortDay is a one hour day with no meals.
func shortDay() TeamSettings {
	return TeamSettings{
		Wakeup:  MustParseTimeOfDay("06:00"),
		Bedtime: MustParseTimeOfDay("07:00"),
	}
}

func fixtureTeam(t testing.TB, store *gamedata.Store, team []Member, settings TeamSettings, seed int64) *teamState {
	t.Helper()
	ts, err := newTeamState(store, team, settings, Options{Store: store, Rand: NewRand(seed)}.withDefaults())
	require.NoError(t, err)
	return ts
}
