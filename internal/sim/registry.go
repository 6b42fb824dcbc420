package sim

import (
	"math/rand/v2"
	"sort"

	"go.uber.org/zap"

	"sleep-optimizer/internal/gamedata"
)

// SkillEffect applies a skill to the activating member's state and reports
// what it delivered.
type SkillEffect interface {
	Activate(s *SkillState) Activation
}

// SkillEffectFunc adapts a stateless function to SkillEffect.
type SkillEffectFunc func(s *SkillState) Activation

func (f SkillEffectFunc) Activate(s *SkillState) Activation { return f(s) }

// SkillState binds one activation: who, which skill, at what level.
type SkillState struct {
	Member  *MemberState
	Skill   *gamedata.Skill
	Level   int
	Rand    *rand.Rand
	Effects *EffectSet
	Store   *gamedata.Store
	Logger  *zap.Logger
}

func (s *SkillState) Amount() float64 { return s.Skill.AmountAt(s.Level) }

func (s *SkillState) Extra(key string) float64 { return s.Skill.ExtraAt(key, s.Level) }

func (s *SkillState) rollCrit() bool { return roll(s.Rand, s.Skill.CritChance) }

// with returns a copy bound to another skill at the same member, clamping the level.
func (s *SkillState) with(sk *gamedata.Skill) *SkillState {
	c := *s
	c.Skill = sk
	c.Level = sk.ClampLevel(s.Level)
	return &c
}

func (s *SkillState) noop() Activation { return Activation{Skill: s.Skill} }

// Registry maps skill names to effect constructors. Constructors run once
// per member per run, so effects may keep state for the run's duration.
type Registry struct {
	factories map[string]func() SkillEffect
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]func() SkillEffect)}
}

func (r *Registry) Register(name string, factory func() SkillEffect) {
	r.factories[name] = factory
}

// RegisterFunc registers a stateless effect.
func (r *Registry) RegisterFunc(name string, f SkillEffectFunc) {
	r.factories[name] = func() SkillEffect { return f }
}

func (r *Registry) Unregister(name string) {
	delete(r.factories, name)
}

func (r *Registry) Has(name string) bool {
	_, ok := r.factories[name]
	return ok
}

func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// NewEffectSet creates an empty per-run effect cache backed by r.
func (r *Registry) NewEffectSet() *EffectSet {
	return &EffectSet{registry: r, effects: make(map[string]SkillEffect)}
}

// EffectSet holds one member's effect instances for one run.
type EffectSet struct {
	registry *Registry
	effects  map[string]SkillEffect
}

func (e *EffectSet) Get(name string) (SkillEffect, bool) {
	if eff, ok := e.effects[name]; ok {
		return eff, true
	}
	factory, ok := e.registry.factories[name]
	if !ok {
		return nil, false
	}
	eff := factory()
	e.effects[name] = eff
	return eff, true
}

// DefaultRegistry wires every skill in the game data.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.RegisterFunc(gamedata.SkillChargeStrengthS, chargeStrength)
	r.RegisterFunc(gamedata.SkillChargeStrengthM, chargeStrength)
	r.RegisterFunc(gamedata.SkillChargeStrengthSRange, rangeEffect)
	r.Register(gamedata.SkillChargeStrengthSStockpile, func() SkillEffect { return &stockpileEffect{} })
	r.RegisterFunc(gamedata.SkillDreamShardMagnetS, dreamShardMagnet)
	r.RegisterFunc(gamedata.SkillDreamShardMagnetSRange, rangeEffect)
	r.RegisterFunc(gamedata.SkillBadDreams, badDreams)

	r.RegisterFunc(gamedata.SkillEnergizingCheerS, energizingCheer)
	r.RegisterFunc(gamedata.SkillEnergyForEveryone, energyForEveryone)
	r.RegisterFunc(gamedata.SkillEnergyForEveryoneLunar, lunarBlessing)
	r.RegisterFunc(gamedata.SkillChargeEnergyS, chargeEnergy)
	r.RegisterFunc(gamedata.SkillChargeEnergySMoonlight, moonlight)

	r.RegisterFunc(gamedata.SkillExtraHelpfulS, extraHelpful)
	r.RegisterFunc(gamedata.SkillHelperBoost, helperBoost)

	r.RegisterFunc(gamedata.SkillIngredientMagnetS, ingredientMagnet)
	r.RegisterFunc(gamedata.SkillIngredientMagnetSPlus, ingredientMagnetPlus)
	r.RegisterFunc(gamedata.SkillIngredientDrawS, ingredientDraw)
	r.RegisterFunc(gamedata.SkillIngredientDrawSSuperLuck, superLuck)
	r.RegisterFunc(gamedata.SkillIngredientDrawSHyper, hyperCutter)

	r.RegisterFunc(gamedata.SkillCookingPowerUpS, cookingPowerUp)
	r.RegisterFunc(gamedata.SkillTastyChanceS, tastyChance)

	r.RegisterFunc(gamedata.SkillBerryBurst, berryBurst)
	r.RegisterFunc(gamedata.SkillBerryBurstDisguise, berryBurst)

	r.RegisterFunc(gamedata.SkillMetronome, metronome)
	r.RegisterFunc(gamedata.SkillSkillCopy, skillCopy)
	r.RegisterFunc(gamedata.SkillMimic, delegateToSkillCopy)
	r.RegisterFunc(gamedata.SkillTransform, delegateToSkillCopy)
	return r
}
