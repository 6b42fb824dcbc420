package sim

import (
	"math"

	"sleep-optimizer/internal/gamedata"
)

func chargeStrength(s *SkillState) Activation {
	return Activation{Skill: s.Skill, Outcomes: []Outcome{selfOutcome(gamedata.UnitStrength, s.Amount())}}
}

func dreamShardMagnet(s *SkillState) Activation {
	return Activation{Skill: s.Skill, Outcomes: []Outcome{selfOutcome(gamedata.UnitDreamShards, s.Amount())}}
}

// rangeEffect pays a uniform roll between the amount and the "max" table.
func rangeEffect(s *SkillState) Activation {
	lo, hi := s.Amount(), s.Extra("max")
	v := lo
	if hi > lo {
		v = math.Round(lo + s.Rand.Float64()*(hi-lo))
	}
	return Activation{Skill: s.Skill, Outcomes: []Outcome{selfOutcome(s.Skill.Unit, v)}}
}

// stockpileEffect banks activations until a crit or a full stock releases them.
type stockpileEffect struct {
	stock int
}

func (e *stockpileEffect) Activate(s *SkillState) Activation {
	maxStock := int(s.Extra("maxStock"))
	crit := s.rollCrit()
	if !crit && e.stock < maxStock {
		e.stock++
		return Activation{Skill: s.Skill, Outcomes: []Outcome{selfOutcome(gamedata.UnitStrength, 0)}}
	}
	payout := e.payout(s)
	e.stock = 0
	o := selfOutcome(gamedata.UnitStrength, payout)
	if crit {
		o = Outcome{Target: TargetSelf, Unit: gamedata.UnitStrength, Crit: payout}
	}
	return Activation{Skill: s.Skill, Outcomes: []Outcome{o}}
}

func (e *stockpileEffect) payout(s *SkillState) float64 {
	level := s.Skill.ClampLevel(s.Level)
	if level-1 >= len(s.Skill.Stockpile) {
		return s.Amount()
	}
	row := s.Skill.Stockpile[level-1]
	if len(row) == 0 {
		return s.Amount()
	}
	return row[min(e.stock, len(row)-1)]
}

// badDreams drains teammates whose berry type differs from the user's.
func badDreams(s *SkillState) Activation {
	drain := s.Extra("energy")
	total := 0.0
	for _, o := range s.Member.OtherMembers() {
		if o.Berry().Type != s.Member.Berry().Type {
			total += o.DegradeEnergy(drain)
		}
	}
	return Activation{Skill: s.Skill, Outcomes: []Outcome{
		selfOutcome(gamedata.UnitStrength, s.Amount()),
		teamOutcome(gamedata.UnitEnergy, -total),
	}}
}
