package sim

import (
	"fmt"

	"go.uber.org/zap"

	"sleep-optimizer/internal/gamedata"
)

// metronome uses a random skill from the store's metronome list.
func metronome(s *SkillState) Activation {
	pool := s.Store.MetronomeSkills()
	if len(pool) == 0 {
		s.Logger.Error("metronome has no skills to draw from")
		return s.noop()
	}
	drawn := pool[s.Rand.IntN(len(pool))]
	eff, ok := s.Effects.Get(drawn.Name)
	if !ok {
		s.Logger.Error("missing skill effect",
			zap.String("skill", drawn.Name),
			zap.String("via", s.Skill.Name))
		return s.noop()
	}
	return eff.Activate(s.with(drawn))
}

// delegateToSkillCopy backs Mimic and Transform.
func delegateToSkillCopy(s *SkillState) Activation {
	eff, ok := s.Effects.Get(gamedata.SkillSkillCopy)
	if !ok {
		panic(fmt.Sprintf("sim: %s needs the %q effect, which is not registered", s.Skill.Name, gamedata.SkillSkillCopy))
	}
	return eff.Activate(s)
}

// skillCopy uses the skill of a random teammate that does not copy skills itself.
func skillCopy(s *SkillState) Activation {
	var candidates []*MemberState
	for _, o := range s.Member.OtherMembers() {
		if !o.Member.Pokemon.Skill.IsCopy() {
			candidates = append(candidates, o)
		}
	}
	if len(candidates) == 0 {
		return s.noop()
	}
	target := candidates[s.Rand.IntN(len(candidates))]
	if target == s.Member {
		panic(fmt.Sprintf("sim: %s resolved to its own member", s.Skill.Name))
	}
	copied := target.Member.Pokemon.Skill
	eff, ok := s.Effects.Get(copied.Name)
	if !ok {
		s.Logger.Error("missing skill effect",
			zap.String("skill", copied.Name),
			zap.String("via", s.Skill.Name))
		return s.noop()
	}
	return eff.Activate(s.with(copied))
}
