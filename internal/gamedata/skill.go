package gamedata

// Skill names the simulator dispatches on.
const (
	SkillChargeStrengthS          = "Charge Strength S"
	SkillChargeStrengthM          = "Charge Strength M"
	SkillChargeStrengthSRange     = "Charge Strength S (Range)"
	SkillChargeStrengthSStockpile = "Charge Strength S (Stockpile)"
	SkillDreamShardMagnetS        = "Dream Shard Magnet S"
	SkillDreamShardMagnetSRange   = "Dream Shard Magnet S (Range)"
	SkillEnergizingCheerS         = "Energizing Cheer S"
	SkillEnergyForEveryone        = "Energy For Everyone S"
	SkillEnergyForEveryoneLunar   = "Energy For Everyone S (Lunar Blessing)"
	SkillChargeEnergyS            = "Charge Energy S"
	SkillChargeEnergySMoonlight   = "Charge Energy S (Moonlight)"
	SkillExtraHelpfulS            = "Extra Helpful S"
	SkillHelperBoost              = "Helper Boost"
	SkillIngredientMagnetS        = "Ingredient Magnet S"
	SkillIngredientMagnetSPlus    = "Ingredient Magnet S (Plus)"
	SkillIngredientDrawS          = "Ingredient Draw S"
	SkillIngredientDrawSSuperLuck = "Ingredient Draw S (Super Luck)"
	SkillIngredientDrawSHyper     = "Ingredient Draw S (Hyper Cutter)"
	SkillCookingPowerUpS          = "Cooking Power-Up S"
	SkillTastyChanceS             = "Tasty Chance S"
	SkillBerryBurst               = "Berry Burst"
	SkillBerryBurstDisguise       = "Berry Burst (Disguise)"
	SkillBadDreams                = "Bad Dreams"
	SkillMetronome                = "Metronome"
	SkillSkillCopy                = "Skill Copy"
	SkillMimic                    = "Mimic"
	SkillTransform                = "Transform"
)

// ClampLevel bounds level into [1, MaxLevel].
func (s *Skill) ClampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if s.MaxLevel > 0 && level > s.MaxLevel {
		return s.MaxLevel
	}
	return level
}

// AmountAt returns the primary amount at the clamped level.
func (s *Skill) AmountAt(level int) float64 {
	return tableAt(s.Amount, s.ClampLevel(level))
}

// ExtraAt returns the level entry of a secondary table, 0 if the table is absent.
func (s *Skill) ExtraAt(key string, level int) float64 {
	return tableAt(s.Extra[key], s.ClampLevel(level))
}

// CritMultiplierOr1 treats a missing multiplier as no boost.
func (s *Skill) CritMultiplierOr1() float64 {
	if s.CritMultiplier <= 0 {
		return 1
	}
	return s.CritMultiplier
}

// IsCopy reports whether the skill delegates to a teammate's skill.
func (s *Skill) IsCopy() bool {
	if s == nil {
		return false
	}
	if s.Name == SkillSkillCopy {
		return true
	}
	return s.Base != nil && s.Base.Name == SkillSkillCopy
}

// RootName walks modifier chains back to the unmodified skill.
func (s *Skill) RootName() string {
	for s.Base != nil {
		s = s.Base
	}
	return s.Name
}

func tableAt(table []float64, level int) float64 {
	if len(table) == 0 {
		return 0
	}
	if level > len(table) {
		level = len(table)
	}
	return table[level-1]
}
