package strength

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"sleep-optimizer/internal/gamedata"
)

var (
	oran  = &gamedata.Berry{Name: "ORAN", Type: "water", Value: 31}
	pecha = &gamedata.Berry{Name: "PECHA", Type: "electric", Value: 25}
	cyan  = &gamedata.Island{Name: "CYAN", AreaBonus: 10, Berries: []*gamedata.Berry{oran}}
)

func berries(sets ...gamedata.BerrySet) gamedata.Produce {
	return gamedata.Produce{Berries: sets}
}

func TestBerryPower(t *testing.T) {
	assert.Equal(t, 31.0, BerryPower(oran, 1))
	assert.Equal(t, 40.0, BerryPower(oran, 10), "linear growth wins early")
	assert.Equal(t, 63.0, BerryPower(oran, 30), "compound growth wins late")
	assert.Equal(t, 31.0, BerryPower(oran, 0))
	assert.Zero(t, BerryPower(nil, 10))
}

func TestBerryPowerNeverDecreases(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		b := &gamedata.Berry{Value: rapid.IntRange(1, 200).Draw(rt, "value")}
		lvl := rapid.IntRange(1, 99).Draw(rt, "level")
		if BerryPower(b, lvl+1) < BerryPower(b, lvl) {
			rt.Fatalf("power dropped from level %d to %d", lvl, lvl+1)
		}
	})
}

func TestCalculateMemberStrength(t *testing.T) {
	got := CalculateMemberStrength(Input{
		Level: 1,
		Produce: berries(
			gamedata.BerrySet{Berry: oran, Amount: 10, Level: 1},
			gamedata.BerrySet{Berry: pecha, Amount: 4.5, Level: 1},
		),
		SkillProduce: berries(gamedata.BerrySet{Berry: oran, Amount: 1}),
		SkillValue:   400.7,
		Island:       cyan,
		AreaBonus:    cyan.AreaBonus,
	})

	assert.Equal(t, BerryStrength{Base: 422, Favored: 310, IslandBonus: 73, Total: 805}, got.Berries)
	assert.Equal(t, BerryStrength{Base: 31, Favored: 31, IslandBonus: 6, Total: 68}, got.Skill.Berries)
	assert.Equal(t, 400.0, got.Skill.Value)
	assert.Equal(t, 468.0, got.Skill.Total)
	assert.Equal(t, 1273.0, got.Total)
}

func TestBreakdownFloorsEachPart(t *testing.T) {
	// 0.6 ORAN is 18.6 base and 18.6 favored: 36 after flooring each part,
	// one less than flooring the sum.
	got := CalculateMemberStrength(Input{
		Level:   1,
		Produce: berries(gamedata.BerrySet{Berry: oran, Amount: 0.6, Level: 1}),
		Island:  cyan,
	})
	assert.Equal(t, 36.0, got.Berries.Total)
}

func TestNoIslandMeansNoFavoredBerries(t *testing.T) {
	got := CalculateMemberStrength(Input{
		Level:   1,
		Produce: berries(gamedata.BerrySet{Berry: oran, Amount: 10, Level: 1}),
	})
	assert.Equal(t, BerryStrength{Base: 310, Total: 310}, got.Berries)
}

func TestCalculateTeamStrength(t *testing.T) {
	members := []Input{
		{Level: 1, Produce: berries(gamedata.BerrySet{Berry: oran, Amount: 10, Level: 1})},
		{Level: 1, SkillValue: 785},
	}
	got := CalculateTeamStrength(members, 1000.5, 10)
	assert.Len(t, got.Members, 2)
	assert.Equal(t, 1100.0, got.Cooking)
	assert.Equal(t, 310+785+1100.0, got.Total)
}

func TestStrengthIsIntegral(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		in := Input{
			Level:      rapid.IntRange(1, 100).Draw(rt, "level"),
			Produce:    berries(gamedata.BerrySet{Berry: oran, Amount: rapid.Float64Range(0, 200).Draw(rt, "oran")}),
			SkillValue: rapid.Float64Range(0, 5000).Draw(rt, "skill"),
			Island:     cyan,
			AreaBonus:  rapid.Float64Range(0, 100).Draw(rt, "bonus"),
		}
		ms := CalculateMemberStrength(in)
		for _, v := range []float64{ms.Berries.Base, ms.Berries.Favored, ms.Berries.IslandBonus, ms.Total} {
			if v != math.Floor(v) || v < 0 {
				rt.Fatalf("part %v is not a whole non-negative number", v)
			}
		}
		if ms.Berries.Favored != ms.Berries.Base {
			rt.Fatalf("favored %v != base %v for an all-favored produce", ms.Berries.Favored, ms.Berries.Base)
		}
	})
}
