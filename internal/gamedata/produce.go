package gamedata

import "math"

// IngredientCounts is an integer vector indexed by Ingredient.Index.
type IngredientCounts []int

// IngredientAmounts is a fractional vector indexed by Ingredient.Index.
type IngredientAmounts []float64

func (c IngredientCounts) Amounts() IngredientAmounts {
	out := make(IngredientAmounts, len(c))
	for i, v := range c {
		out[i] = float64(v)
	}
	return out
}

func (c IngredientCounts) Total() int {
	total := 0
	for _, v := range c {
		total += v
	}
	return total
}

func (a IngredientAmounts) Clone() IngredientAmounts {
	if a == nil {
		return nil
	}
	out := make(IngredientAmounts, len(a))
	copy(out, a)
	return out
}

// Add accumulates b into a. Both vectors share the store's ingredient ordering.
func (a IngredientAmounts) Add(b IngredientAmounts) {
	for i := range b {
		a[i] += b[i]
	}
}

func (a IngredientAmounts) Sub(b IngredientAmounts) {
	for i := range b {
		a[i] -= b[i]
	}
}

func (a IngredientAmounts) Scale(f float64) {
	for i := range a {
		a[i] *= f
	}
}

func (a IngredientAmounts) Total() float64 {
	total := 0.0
	for _, v := range a {
		total += v
	}
	return total
}

// Satisfied reports whether no component is still positive.
func (a IngredientAmounts) Satisfied() bool {
	for _, v := range a {
		if v > epsilon {
			return false
		}
	}
	return true
}

// Positive lists the indices that still hold a positive amount.
func (a IngredientAmounts) Positive() []int {
	var out []int
	for i, v := range a {
		if v > epsilon {
			out = append(out, i)
		}
	}
	return out
}

// Dominates reports whether a >= b component-wise.
func (a IngredientAmounts) Dominates(b IngredientAmounts) bool {
	for i := range b {
		var av float64
		if i < len(a) {
			av = a[i]
		}
		if av+epsilon < b[i] {
			return false
		}
	}
	return true
}

// Floor rounds every component down, used when counting whole ingredients.
func (a IngredientAmounts) Floor() IngredientCounts {
	out := make(IngredientCounts, len(a))
	for i, v := range a {
		out[i] = int(math.Floor(v + epsilon))
	}
	return out
}

const epsilon = 1e-9

type BerrySet struct {
	Berry  *Berry
	Amount float64
	Level  int
}

// Produce is everything a member hands over: berries plus an ingredient vector.
type Produce struct {
	Berries     []BerrySet
	Ingredients IngredientAmounts
}

func NewProduce(ingredientCount int) Produce {
	return Produce{Ingredients: make(IngredientAmounts, ingredientCount)}
}

func (p *Produce) AddBerries(b *Berry, amount float64, level int) {
	if b == nil || amount == 0 {
		return
	}
	for i := range p.Berries {
		if p.Berries[i].Berry.Name == b.Name && p.Berries[i].Level == level {
			p.Berries[i].Amount += amount
			return
		}
	}
	p.Berries = append(p.Berries, BerrySet{Berry: b, Amount: amount, Level: level})
}

func (p *Produce) Add(o Produce) {
	for _, bs := range o.Berries {
		p.AddBerries(bs.Berry, bs.Amount, bs.Level)
	}
	if p.Ingredients == nil {
		p.Ingredients = make(IngredientAmounts, len(o.Ingredients))
	}
	p.Ingredients.Add(o.Ingredients)
}

func (p *Produce) Scale(f float64) {
	for i := range p.Berries {
		p.Berries[i].Amount *= f
	}
	p.Ingredients.Scale(f)
}

func (p Produce) Clone() Produce {
	out := Produce{Ingredients: p.Ingredients.Clone()}
	if p.Berries != nil {
		out.Berries = make([]BerrySet, len(p.Berries))
		copy(out.Berries, p.Berries)
	}
	return out
}

func (p Produce) BerryTotal() float64 {
	total := 0.0
	for _, bs := range p.Berries {
		total += bs.Amount
	}
	return total
}
