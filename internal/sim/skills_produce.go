package sim

import "sleep-optimizer/internal/gamedata"

func extraHelpful(s *SkillState) Activation {
	team := s.Member.Team()
	each := s.Amount() / float64(len(team))
	for _, m := range team {
		m.AddSkillHelps(each)
	}
	return Activation{Skill: s.Skill, Outcomes: []Outcome{teamOutcome(gamedata.UnitHelps, s.Amount())}}
}

// helperBoost grows with the number of distinct berry types on the team.
func helperBoost(s *SkillState) Activation {
	team := s.Member.Team()
	types := make(map[string]struct{}, len(team))
	for _, m := range team {
		types[m.Berry().Type] = struct{}{}
	}
	bonus := 0.0
	if table := s.Skill.Extra["unique"]; len(table) > 0 {
		bonus = table[min(len(types), len(table))-1]
	}
	each := s.Amount() + bonus
	for _, m := range team {
		m.AddSkillHelps(each)
	}
	return Activation{Skill: s.Skill, Outcomes: []Outcome{teamOutcome(gamedata.UnitHelps, each*float64(len(team)))}}
}

// ingredientMagnet scatters whole ingredients uniformly over every ingredient type.
func ingredientMagnet(s *SkillState) Activation {
	amount := s.Amount()
	s.Member.AddSkillIngredients(scatterIngredients(s, int(amount)))
	return Activation{Skill: s.Skill, Outcomes: []Outcome{selfOutcome(gamedata.UnitIngredients, amount)}}
}

func ingredientMagnetPlus(s *SkillState) Activation {
	amount := s.Amount()
	v := scatterIngredients(s, int(amount))
	plus := s.Extra("plus")
	if unlocked := s.Member.Member.UnlockedIngredients(); len(unlocked) > 0 {
		v[unlocked[0].Ingredient.Index] += plus
	} else {
		plus = 0
	}
	s.Member.AddSkillIngredients(v)
	return Activation{Skill: s.Skill, Outcomes: []Outcome{selfOutcome(gamedata.UnitIngredients, amount+plus)}}
}

func scatterIngredients(s *SkillState, n int) gamedata.IngredientAmounts {
	v := make(gamedata.IngredientAmounts, s.Store.IngredientCount())
	if len(v) == 0 {
		return v
	}
	for range n {
		v[s.Rand.IntN(len(v))]++
	}
	return v
}

// drawIngredient puts amount of one random ingredient type into the member's produce.
func drawIngredient(s *SkillState, amount float64) {
	v := make(gamedata.IngredientAmounts, s.Store.IngredientCount())
	if len(v) == 0 {
		return
	}
	v[s.Rand.IntN(len(v))] = amount
	s.Member.AddSkillIngredients(v)
}

func ingredientDraw(s *SkillState) Activation {
	drawIngredient(s, s.Amount())
	return Activation{Skill: s.Skill, Outcomes: []Outcome{selfOutcome(gamedata.UnitIngredients, s.Amount())}}
}

func superLuck(s *SkillState) Activation {
	act := ingredientDraw(s)
	if s.rollCrit() {
		act.Outcomes = append(act.Outcomes, Outcome{Target: TargetSelf, Unit: gamedata.UnitDreamShards, Crit: s.Extra("shards")})
	}
	return act
}

func hyperCutter(s *SkillState) Activation {
	amount := s.Amount()
	o := selfOutcome(gamedata.UnitIngredients, amount)
	if s.rollCrit() {
		o.Crit = amount * (s.Skill.CritMultiplierOr1() - 1)
	}
	drawIngredient(s, o.Total())
	return Activation{Skill: s.Skill, Outcomes: []Outcome{o}}
}

func cookingPowerUp(s *SkillState) Activation {
	if c := s.Member.Cooking(); c != nil {
		c.AddPotSize(s.Amount())
	}
	return Activation{Skill: s.Skill, Outcomes: []Outcome{teamOutcome(gamedata.UnitPotSize, s.Amount())}}
}

func tastyChance(s *SkillState) Activation {
	if c := s.Member.Cooking(); c != nil {
		c.AddCritChance(s.Amount() / 100)
	}
	return Activation{Skill: s.Skill, Outcomes: []Outcome{teamOutcome(gamedata.UnitChance, s.Amount())}}
}

// berryBurst pays the user's berries, crit-boosted when the skill can crit,
// and a smaller share of each teammate's own berry.
func berryBurst(s *SkillState) Activation {
	amount := s.Amount()
	self := selfOutcome(gamedata.UnitBerries, amount)
	if s.rollCrit() {
		self.Crit = amount * (s.Skill.CritMultiplierOr1() - 1)
	}
	s.Member.AddSkillBerries(self.Total())

	share := s.Extra("team")
	others := s.Member.OtherMembers()
	for _, m := range others {
		m.AddSkillBerries(share)
	}
	return Activation{Skill: s.Skill, Outcomes: []Outcome{
		self,
		teamOutcome(gamedata.UnitBerries, share*float64(len(others))),
	}}
}
