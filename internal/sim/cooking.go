package sim

import (
	"math"
	"math/rand/v2"
	"sort"

	"sleep-optimizer/internal/gamedata"
)

const (
	basePotSize       = 15
	campPotMultiplier = 1.5
	baseCritChance    = 0.1
	maxCritChance     = 0.7
	critMealFactor    = 2
)

type MealRecord struct {
	Time        TimeOfDay
	Recipe      *gamedata.Recipe // nil for a mixed meal
	Ingredients gamedata.IngredientCounts
	Strength    float64
	Crit        bool
}

func (r MealRecord) Name() string {
	if r.Recipe == nil {
		return "mixed meal"
	}
	return r.Recipe.DisplayName
}

// CookingState is the team pot: the ingredient stock and crit chance carried
// between meals.
type CookingState struct {
	PotSize      int
	BonusPotSize float64
	CritChance   float64
	Stock        gamedata.IngredientAmounts
	Meals        []MealRecord

	ingredients []*gamedata.Ingredient
	recipes     []*gamedata.Recipe // best first
}

func NewCookingState(store *gamedata.Store, settings CookingSettings, camp bool) *CookingState {
	pot := basePotSize
	if camp {
		pot = int(math.Floor(float64(pot) * campPotMultiplier))
	}
	recipes := append([]*gamedata.Recipe(nil), store.Recipes(settings.RecipeType)...)
	sort.SliceStable(recipes, func(i, j int) bool { return recipes[i].Value > recipes[j].Value })
	return &CookingState{
		PotSize:     pot,
		CritChance:  baseCritChance,
		Stock:       make(gamedata.IngredientAmounts, store.IngredientCount()),
		ingredients: store.Ingredients(),
		recipes:     recipes,
	}
}

func (c *CookingState) AddIngredients(v gamedata.IngredientAmounts) {
	c.Stock.Add(v)
}

// AddPotSize enlarges the pot for the next meal only.
func (c *CookingState) AddPotSize(n float64) {
	c.BonusPotSize += n
}

func (c *CookingState) AddCritChance(p float64) {
	c.CritChance = math.Min(maxCritChance, c.CritChance+p)
}

// Cook prepares the most valuable recipe the pot and stock allow, falling
// back to a mixed meal of whatever is in stock.
func (c *CookingState) Cook(rng *rand.Rand, at TimeOfDay) MealRecord {
	size := c.PotSize + int(c.BonusPotSize)
	c.BonusPotSize = 0
	have := c.Stock.Floor()

	meal := MealRecord{Time: at}
	for _, r := range c.recipes {
		if r.NrOfIngredients > size || !fits(have, r.Requirement) {
			continue
		}
		meal.Recipe = r
		meal.Ingredients = append(gamedata.IngredientCounts(nil), r.Requirement...)
		meal.Strength = float64(r.Value)
		break
	}
	if meal.Recipe == nil {
		meal.Ingredients = make(gamedata.IngredientCounts, len(have))
		left := size
		for i, n := range have {
			take := min(n, left)
			meal.Ingredients[i] = take
			left -= take
			meal.Strength += float64(take * c.ingredients[i].Value)
		}
	}
	c.Stock.Sub(meal.Ingredients.Amounts())
	for i, v := range c.Stock {
		if v < 0 {
			c.Stock[i] = 0
		}
	}

	if roll(rng, c.CritChance) {
		meal.Crit = true
		meal.Strength *= critMealFactor
		c.CritChance = baseCritChance
	}
	c.Meals = append(c.Meals, meal)
	return meal
}

func fits(have, need gamedata.IngredientCounts) bool {
	for i, n := range need {
		if have[i] < n {
			return false
		}
	}
	return true
}
