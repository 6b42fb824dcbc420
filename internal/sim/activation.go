package sim

import (
	"fmt"
	"strings"

	"sleep-optimizer/internal/gamedata"
)

type Target int

const (
	TargetSelf Target = iota
	TargetTeam
	// TargetMember outcomes are not yet applied; the caller picks the recipient.
	TargetMember
)

func (t Target) String() string {
	switch t {
	case TargetTeam:
		return "team"
	case TargetMember:
		return "member"
	}
	return "self"
}

type Outcome struct {
	Target                     Target
	Unit                       gamedata.Unit
	Regular                    float64
	Crit                       float64
	ChanceToTargetLowestMember float64
}

func (o Outcome) Total() float64 { return o.Regular + o.Crit }

// Activation reports what a skill delivered. Side effects have already been
// applied when it is returned, apart from TargetMember outcomes.
type Activation struct {
	Skill    *gamedata.Skill
	Outcomes []Outcome
}

func (a Activation) Crit() bool {
	for _, o := range a.Outcomes {
		if o.Crit != 0 {
			return true
		}
	}
	return false
}

func (a Activation) IsNoop() bool {
	for _, o := range a.Outcomes {
		if o.Total() != 0 {
			return false
		}
	}
	return true
}

func (a Activation) String() string {
	name := "<none>"
	if a.Skill != nil {
		name = a.Skill.Name
	}
	if len(a.Outcomes) == 0 {
		return name + ": nothing"
	}
	parts := make([]string, 0, len(a.Outcomes))
	for _, o := range a.Outcomes {
		s := fmt.Sprintf("%s %.1f %s", o.Target, o.Regular, o.Unit)
		if o.Crit != 0 {
			s += fmt.Sprintf(" (+%.1f crit)", o.Crit)
		}
		parts = append(parts, s)
	}
	return name + ": " + strings.Join(parts, ", ")
}

func selfOutcome(unit gamedata.Unit, regular float64) Outcome {
	return Outcome{Target: TargetSelf, Unit: unit, Regular: regular}
}

func teamOutcome(unit gamedata.Unit, regular float64) Outcome {
	return Outcome{Target: TargetTeam, Unit: unit, Regular: regular}
}
