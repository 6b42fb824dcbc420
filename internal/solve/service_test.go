package solve

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"sleep-optimizer/internal/gamedata"
	"sleep-optimizer/internal/sim"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// Every fixture pokemon finds three of its single ingredient on every help,
// so one of them covers a 7-ingredient recipe on its own.
const fixtureJSON = `{
  "ingredients": [
    {"name": "APPLE", "longName": "Apple", "value": 90},
    {"name": "EGG", "longName": "Egg", "value": 115},
    {"name": "MILK", "longName": "Milk", "value": 98}
  ],
  "berries": [{"name": "ORAN", "type": "water", "value": 31}],
  "natures": [{"name": "BASHFUL", "frequency": 1, "energy": 1, "ingredient": 1, "skill": 1}],
  "subskills": [{"name": "HELPING_BONUS", "kind": "helpingBonus", "amount": 0.05}],
  "skills": [{"name": "Charge Strength S", "unit": "strength", "maxLevel": 1, "amount": [400]}],
  "metronome": ["Charge Strength S"],
  "pokemon": [
    {"name": "APPLER", "displayName": "Appler", "specialty": "ingredient", "frequency": 1200,
     "ingredientPercentage": 100, "skillPercentage": 0, "berry": "ORAN", "carry": 30,
     "skill": "Charge Strength S",
     "ingredient0": [{"name": "APPLE", "amount": 3}], "ingredient30": [{"name": "APPLE", "amount": 5}],
     "ingredient60": [{"name": "APPLE", "amount": 7}]},
    {"name": "EGGER", "displayName": "Egger", "specialty": "ingredient", "frequency": 1200,
     "ingredientPercentage": 100, "skillPercentage": 0, "berry": "ORAN", "carry": 30,
     "skill": "Charge Strength S",
     "ingredient0": [{"name": "EGG", "amount": 3}], "ingredient30": [{"name": "EGG", "amount": 5}],
     "ingredient60": [{"name": "EGG", "amount": 7}]},
    {"name": "MILKER", "displayName": "Milker", "specialty": "ingredient", "frequency": 1200,
     "ingredientPercentage": 100, "skillPercentage": 0, "berry": "ORAN", "carry": 30,
     "skill": "Charge Strength S",
     "ingredient0": [{"name": "MILK", "amount": 3}], "ingredient30": [{"name": "MILK", "amount": 5}],
     "ingredient60": [{"name": "MILK", "amount": 7}]}
  ],
  "recipes": [
    {"name": "APPLE_CURRY", "displayName": "Apple Curry", "type": "curry", "bonus": 0,
     "ingredients": [{"name": "APPLE", "amount": 7}]},
    {"name": "MIXED_CURRY", "displayName": "Mixed Curry", "type": "curry", "bonus": 0,
     "ingredients": [{"name": "APPLE", "amount": 7}, {"name": "EGG", "amount": 7}]}
  ],
  "islands": [{"name": "CYAN", "displayName": "Cyan", "areaBonus": 0, "berries": ["ORAN"]}]
}`

func fixtureService(t *testing.T, workers int) *Service {
	t.Helper()
	store, err := gamedata.Load(fixtureJSON)
	require.NoError(t, err)
	return NewService(store, zaptest.NewLogger(t), Options{Iterations: 3, Workers: workers, Seed: 7})
}

func recipe(t *testing.T, s *Service, name string) *gamedata.Recipe {
	t.Helper()
	r, err := s.Store().Recipe(name)
	require.NoError(t, err)
	return r
}

func memberNames(sol SolveRecipeSolution) []string {
	var out []string
	for _, m := range sol.Members {
		out = append(out, m.Member.Pokemon.Name)
	}
	return out
}

func defaultInput() SolveInput {
	return SolveInput{Settings: SolveSettings{Level: 1, Team: sim.DefaultTeamSettings()}}
}

func TestSolveZeroRecipeIsEmptyTeam(t *testing.T) {
	s := fixtureService(t, 2)
	empty := &gamedata.Recipe{Name: "NOTHING", Requirement: make(gamedata.IngredientCounts, 3)}

	res, err := s.SolveRecipe(context.Background(), empty, defaultInput())
	require.NoError(t, err)
	assert.True(t, res.Exhaustive)
	require.Len(t, res.Teams, 1)
	assert.Empty(t, res.Teams[0].Members)
	assert.Zero(t, res.Candidates)
}

func TestSolveSingleProducer(t *testing.T) {
	s := fixtureService(t, 2)
	res, err := s.SolveRecipe(context.Background(), recipe(t, s, "APPLE_CURRY"), defaultInput())
	require.NoError(t, err)

	assert.True(t, res.Exhaustive)
	assert.Equal(t, 1, res.Candidates, "only apple producers are simulated")
	require.Len(t, res.Teams, 1)
	assert.Equal(t, []string{"APPLER"}, memberNames(res.Teams[0]))
	assert.True(t, res.Teams[0].Produce.Dominates(recipe(t, s, "APPLE_CURRY").Requirement.Amounts()))
}

func TestSolveCombinesProducers(t *testing.T) {
	s := fixtureService(t, 2)
	res, err := s.SolveRecipe(context.Background(), recipe(t, s, "MIXED_CURRY"), defaultInput())
	require.NoError(t, err)

	assert.True(t, res.Exhaustive)
	require.Len(t, res.Teams, 1)
	assert.ElementsMatch(t, []string{"APPLER", "EGGER"}, memberNames(res.Teams[0]))
	for _, v := range res.Teams[0].Surplus {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestSolveWithIncludedMembers(t *testing.T) {
	s := fixtureService(t, 2)
	appler, err := sim.NewMember(s.Store(), "APPLER", sim.MemberSettings{Level: 1})
	require.NoError(t, err)
	in := defaultInput()
	in.IncludedMembers = []sim.Member{appler}

	res, err := s.SolveRecipe(context.Background(), recipe(t, s, "APPLE_CURRY"), in)
	require.NoError(t, err)
	assert.True(t, res.Exhaustive)
	assert.Zero(t, res.Candidates, "covered before any search")
	require.Len(t, res.Teams, 1)
	assert.Equal(t, []string{"APPLER"}, memberNames(res.Teams[0]))
	assert.True(t, res.Teams[0].Members[0].Included)

	res, err = s.SolveRecipe(context.Background(), recipe(t, s, "MIXED_CURRY"), in)
	require.NoError(t, err)
	require.Len(t, res.Teams, 1)
	assert.Equal(t, []string{"APPLER", "EGGER"}, memberNames(res.Teams[0]))
	assert.False(t, res.Teams[0].Members[1].Included)
}

func TestSolveInfeasibleIsNotAnError(t *testing.T) {
	s := fixtureService(t, 2)
	mixed := recipe(t, s, "MIXED_CURRY")

	in := defaultInput()
	in.MaxTeamSize = 1
	res, err := s.SolveRecipe(context.Background(), mixed, in)
	require.NoError(t, err)
	assert.Empty(t, res.Teams)
	assert.False(t, res.Exhaustive)

	in = defaultInput()
	in.Settings.Exclude = []string{"egg*"}
	res, err = s.SolveRecipe(context.Background(), mixed, in)
	require.NoError(t, err)
	assert.Empty(t, res.Teams)
	assert.False(t, res.Exhaustive)
}

func TestSolveRejectsOversizedTeam(t *testing.T) {
	s := fixtureService(t, 2)
	appler, err := sim.NewMember(s.Store(), "APPLER", sim.MemberSettings{Level: 1})
	require.NoError(t, err)

	in := defaultInput()
	in.IncludedMembers = []sim.Member{appler, appler}
	in.MaxTeamSize = 1
	_, err = s.SolveRecipe(context.Background(), recipe(t, s, "APPLE_CURRY"), in)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.SolveRecipe(context.Background(), nil, defaultInput())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSolveIndependentOfWorkerCount(t *testing.T) {
	mixed := func(workers int) *SolveResult {
		s := fixtureService(t, workers)
		res, err := s.SolveRecipe(context.Background(), recipe(t, s, "MIXED_CURRY"), defaultInput())
		require.NoError(t, err)
		return res
	}
	if diff := cmp.Diff(mixed(1), mixed(4)); diff != "" {
		t.Fatalf("worker count changed the result (-1 worker +4 workers):\n%s", diff)
	}
}

func TestIngredientChoices(t *testing.T) {
	p := &gamedata.Pokemon{
		Ingredient0:  []gamedata.IngredientSet{{Amount: 1}},
		Ingredient30: []gamedata.IngredientSet{{Amount: 2}, {Amount: 3}},
		Ingredient60: []gamedata.IngredientSet{{Amount: 4}, {Amount: 5}, {Amount: 6}},
	}
	choices := ingredientChoices(p)
	assert.Len(t, choices, 6)
	for _, c := range choices {
		assert.Len(t, c, 3)
		assert.Equal(t, 1.0, c[0].Amount)
	}
}

func TestExcluded(t *testing.T) {
	assert.True(t, excluded("PIKACHU_HALLOWEEN", []string{"pikachu*"}))
	assert.True(t, excluded("EEVEE", []string{"DITTO", "e?vee"}))
	assert.False(t, excluded("RAICHU", []string{"pikachu*"}))
	assert.False(t, excluded("RAICHU", nil))
}
