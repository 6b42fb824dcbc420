// Package strength turns simulated produce into the game's strength score.
package strength

import (
	"math"

	"sleep-optimizer/internal/gamedata"
)

const berryLevelGrowth = 1.025

// favoredMultiplier doubles berries the island favors.
const favoredMultiplier = 2

// BerryPower is the strength of one berry at the given level: linear
// growth early, compound growth later, whichever is larger.
func BerryPower(b *gamedata.Berry, level int) float64 {
	if b == nil {
		return 0
	}
	level = max(1, level)
	linear := float64(b.Value + level - 1)
	compound := math.Round(float64(b.Value) * math.Pow(berryLevelGrowth, float64(level-1)))
	return math.Max(linear, compound)
}

// Input is one member's share of a simulation result.
type Input struct {
	// Level is used for berry sets that carry no level of their own.
	Level        int
	Produce      gamedata.Produce // produce without skill
	SkillProduce gamedata.Produce
	// SkillValue is the strength-unit skill value per day.
	SkillValue float64
	Island     *gamedata.Island
	AreaBonus  float64 // percent
}

// BerryStrength splits berry strength into its base, the favored-berry
// extra and the island bonus, each floored.
type BerryStrength struct {
	Base        float64
	Favored     float64
	IslandBonus float64
	Total       float64
}

type SkillStrength struct {
	Berries BerryStrength
	Value   float64
	Total   float64
}

type MemberStrength struct {
	Berries BerryStrength
	Skill   SkillStrength
	Total   float64
}

// CalculateMemberStrength converts one member's produce to strength. Every
// breakdown part is floored on its own and the total is floored again.
func CalculateMemberStrength(in Input) MemberStrength {
	berries := berryStrength(in.Produce, in.Level, in.Island, in.AreaBonus)
	skillBerries := berryStrength(in.SkillProduce, in.Level, in.Island, in.AreaBonus)
	value := math.Floor(in.SkillValue)
	skill := SkillStrength{
		Berries: skillBerries,
		Value:   value,
		Total:   math.Floor(skillBerries.Total + value),
	}
	return MemberStrength{
		Berries: berries,
		Skill:   skill,
		Total:   math.Floor(berries.Total + skill.Total),
	}
}

func berryStrength(p gamedata.Produce, level int, island *gamedata.Island, areaBonus float64) BerryStrength {
	var base, favored float64
	for _, set := range p.Berries {
		lvl := set.Level
		if lvl == 0 {
			lvl = level
		}
		v := set.Amount * BerryPower(set.Berry, lvl)
		base += v
		if island.Favors(set.Berry) {
			favored += v * (favoredMultiplier - 1)
		}
	}
	s := BerryStrength{
		Base:        math.Floor(base),
		Favored:     math.Floor(favored),
		IslandBonus: math.Floor((base + favored) * areaBonus / 100),
	}
	s.Total = math.Floor(s.Base + s.Favored + s.IslandBonus)
	return s
}

type TeamStrength struct {
	Members []MemberStrength
	Cooking float64
	Total   float64
}

// CalculateTeamStrength sums the members and the cooking strength, with
// the area bonus applied to cooking as well.
func CalculateTeamStrength(members []Input, cooking float64, areaBonus float64) TeamStrength {
	ts := TeamStrength{
		Cooking: math.Floor(cooking * (1 + areaBonus/100)),
	}
	ts.Total = ts.Cooking
	for _, in := range members {
		ms := CalculateMemberStrength(in)
		ts.Members = append(ts.Members, ms)
		ts.Total += ms.Total
	}
	return ts
}
