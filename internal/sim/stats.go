package sim

import (
	"math"

	"sleep-optimizer/internal/gamedata"
)

const (
	maxHelpingSpeedReduction = 0.35
	helpingBonusPerMember    = 0.05
	levelFrequencyReduction  = 0.002
	campSpeedDivisor         = 1.2
	campCarryMultiplier      = 1.2
	erbFactorPerStack        = 0.12
	maxERBStacks             = 5
)

// memberStats are the per-run constants derived from a member and its team.
type memberStats struct {
	frequency        float64 // seconds per help before the energy factor
	ingredientChance float64
	skillChance      float64
	carry            int
	skillLevel       int
	berriesPerHelp   float64
	maxStoredProcs   int
	averageProduce   gamedata.Produce // expected yield of one help
	itemsPerHelp     float64
	berryHelp        gamedata.Produce // sneaky snack yield
	ingredientPart   gamedata.IngredientAmounts
}

type teamModifiers struct {
	helpingBonus int
	erb          int
	camp         bool
}

func teamModifiersOf(team []Member, camp bool) teamModifiers {
	mods := teamModifiers{camp: camp}
	for _, m := range team {
		for _, ss := range m.UnlockedSubskills() {
			switch ss.Kind {
			case gamedata.SubskillHelpingBonus:
				mods.helpingBonus++
			case gamedata.SubskillEnergyRecovery:
				mods.erb++
			}
		}
	}
	return mods
}

func deriveStats(m Member, mods teamModifiers, ingredientCount int) memberStats {
	p := m.Pokemon
	s := m.Settings
	var speed, finder, trigger, inventory, skillLevels float64
	berryFinding := false
	for _, ss := range m.UnlockedSubskills() {
		switch ss.Kind {
		case gamedata.SubskillHelpingSpeed:
			speed += ss.Amount
		case gamedata.SubskillIngredientFinder:
			finder += ss.Amount
		case gamedata.SubskillSkillTrigger:
			trigger += ss.Amount
		case gamedata.SubskillInventory:
			inventory += ss.Amount
		case gamedata.SubskillSkillLevel:
			skillLevels += ss.Amount
		case gamedata.SubskillBerryFinding:
			berryFinding = true
		}
	}

	st := memberStats{}
	speedReduction := math.Min(maxHelpingSpeedReduction, speed+helpingBonusPerMember*float64(mods.helpingBonus))
	st.frequency = p.Frequency *
		(1 - float64(s.Level-1)*levelFrequencyReduction) *
		s.Nature.Frequency *
		(1 - speedReduction)
	if mods.camp {
		st.frequency /= campSpeedDivisor
	}

	st.ingredientChance = math.Min(1, p.IngredientPercentage/100*s.Nature.Ingredient*(1+finder))
	st.skillChance = math.Min(1, p.SkillPercentage/100*s.Nature.Skill*(1+trigger))

	carry := p.Carry + ribbonCarryBonus[s.Ribbon] + int(inventory)
	if mods.camp {
		carry = int(math.Ceil(float64(carry) * campCarryMultiplier))
	}
	st.carry = carry

	st.skillLevel = p.Skill.ClampLevel(s.SkillLevel + int(skillLevels))

	st.berriesPerHelp = 1
	if p.Specialty == gamedata.SpecialtyBerry {
		st.berriesPerHelp++
	}
	if berryFinding {
		st.berriesPerHelp++
	}

	st.maxStoredProcs = 1
	if p.Specialty == gamedata.SpecialtySkill {
		st.maxStoredProcs = 2
	}

	st.ingredientPart = make(gamedata.IngredientAmounts, ingredientCount)
	unlocked := m.UnlockedIngredients()
	for _, set := range unlocked {
		st.ingredientPart[set.Ingredient.Index] += set.Amount / float64(len(unlocked))
	}
	st.ingredientPart.Scale(st.ingredientChance)

	st.averageProduce = gamedata.NewProduce(ingredientCount)
	st.averageProduce.AddBerries(p.Berry, (1-st.ingredientChance)*st.berriesPerHelp, s.Level)
	st.averageProduce.Ingredients.Add(st.ingredientPart)
	st.itemsPerHelp = st.averageProduce.BerryTotal() + st.averageProduce.Ingredients.Total()

	st.berryHelp = gamedata.NewProduce(ingredientCount)
	st.berryHelp.AddBerries(p.Berry, st.berriesPerHelp, s.Level)
	return st
}

// energyFactor scales the help interval by current energy.
func energyFactor(energy float64) float64 {
	switch {
	case energy > 80:
		return 0.45
	case energy > 60:
		return 0.52
	case energy > 40:
		return 0.58
	case energy > 0:
		return 0.66
	}
	return 1
}

// sleepScore is the 0-100 score of a night of the given length.
func sleepScore(nightSeconds int) float64 {
	return math.Min(100, float64(nightSeconds)/60/510*100)
}

func erbFactor(stacks int) float64 {
	return 1 + erbFactorPerStack*float64(min(maxERBStacks, stacks))
}
