package sim

import "sleep-optimizer/internal/gamedata"

// energizingCheer leaves the recipient to the caller, who honours the
// lowest-member chance.
func energizingCheer(s *SkillState) Activation {
	return Activation{Skill: s.Skill, Outcomes: []Outcome{{
		Target:                     TargetMember,
		Unit:                       gamedata.UnitEnergy,
		Regular:                    s.Amount(),
		ChanceToTargetLowestMember: s.Skill.LowestMemberChance,
	}}}
}

func energyForEveryone(s *SkillState) Activation {
	return Activation{Skill: s.Skill, Outcomes: []Outcome{recoverTeam(s, s.Amount())}}
}

func lunarBlessing(s *SkillState) Activation {
	energy := recoverTeam(s, s.Amount())
	berries := s.Extra("berries")
	team := s.Member.Team()
	for _, m := range team {
		m.AddSkillBerries(berries)
	}
	return Activation{Skill: s.Skill, Outcomes: []Outcome{
		energy,
		teamOutcome(gamedata.UnitBerries, berries*float64(len(team))),
	}}
}

func recoverTeam(s *SkillState, amount float64) Outcome {
	total := 0.0
	for _, m := range s.Member.Team() {
		total += m.RecoverEnergy(amount, SourceSkill)
	}
	return teamOutcome(gamedata.UnitEnergy, total)
}

func chargeEnergy(s *SkillState) Activation {
	recovered := s.Member.RecoverEnergy(s.Amount(), SourceSkill)
	return Activation{Skill: s.Skill, Outcomes: []Outcome{selfOutcome(gamedata.UnitEnergy, recovered)}}
}

// moonlight is Charge Energy whose crit also restores a random teammate.
func moonlight(s *SkillState) Activation {
	act := chargeEnergy(s)
	if !s.rollCrit() {
		return act
	}
	others := s.Member.OtherMembers()
	if len(others) == 0 {
		return act
	}
	target := others[s.Rand.IntN(len(others))]
	recovered := target.RecoverEnergy(s.Extra("crit"), SourceSkill)
	act.Outcomes = append(act.Outcomes, Outcome{Target: TargetTeam, Unit: gamedata.UnitEnergy, Crit: recovered})
	return act
}
