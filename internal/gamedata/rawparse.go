package gamedata

import (
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

// Load parses a game data document into a Store and validates its cross references.
func Load(dataJSON string) (*Store, error) {
	if !gjson.Valid(dataJSON) {
		return nil, fmt.Errorf("game data: invalid JSON")
	}
	s := newStore()

	gjson.Get(dataJSON, "ingredients").ForEach(func(_, v gjson.Result) bool {
		ing := &Ingredient{
			Name:     v.Get("name").String(),
			LongName: v.Get("longName").String(),
			Value:    int(v.Get("value").Int()),
			Index:    len(s.ingredients),
		}
		s.ingredients = append(s.ingredients, ing)
		s.ingredientByName[normalizeName(ing.Name)] = ing
		return true
	})

	gjson.Get(dataJSON, "berries").ForEach(func(_, v gjson.Result) bool {
		b := &Berry{
			Name:  v.Get("name").String(),
			Type:  v.Get("type").String(),
			Value: int(v.Get("value").Int()),
		}
		s.berries = append(s.berries, b)
		s.berryByName[normalizeName(b.Name)] = b
		return true
	})

	gjson.Get(dataJSON, "natures").ForEach(func(_, v gjson.Result) bool {
		n := &Nature{
			Name:       v.Get("name").String(),
			Frequency:  floatOr(v.Get("frequency"), 1),
			Energy:     floatOr(v.Get("energy"), 1),
			Ingredient: floatOr(v.Get("ingredient"), 1),
			Skill:      floatOr(v.Get("skill"), 1),
		}
		s.natures = append(s.natures, n)
		s.natureByName[normalizeName(n.Name)] = n
		return true
	})

	gjson.Get(dataJSON, "subskills").ForEach(func(_, v gjson.Result) bool {
		ss := &Subskill{
			Name:   v.Get("name").String(),
			Kind:   parseSubskillKind(v.Get("kind").String()),
			Amount: v.Get("amount").Float(),
		}
		s.subskills = append(s.subskills, ss)
		s.subskillByName[normalizeName(ss.Name)] = ss
		return true
	})

	// Skills reference their base by name, resolved in a second pass.
	baseNames := make(map[*Skill]string)
	gjson.Get(dataJSON, "skills").ForEach(func(_, v gjson.Result) bool {
		sk := &Skill{
			Name:               v.Get("name").String(),
			Unit:               ParseUnit(v.Get("unit").String()),
			MaxLevel:           int(v.Get("maxLevel").Int()),
			Amount:             readFloatSlice(v.Get("amount")),
			RP:                 readIntSlice(v.Get("rp")),
			CritChance:         v.Get("critChance").Float(),
			CritMultiplier:     v.Get("critMultiplier").Float(),
			LowestMemberChance: v.Get("lowestMemberChance").Float(),
			Modifier:           v.Get("modifier").String(),
		}
		if extra := v.Get("extra"); extra.IsObject() {
			sk.Extra = make(map[string][]float64)
			extra.ForEach(func(key, val gjson.Result) bool {
				sk.Extra[key.String()] = readFloatSlice(val)
				return true
			})
		}
		v.Get("stockpile").ForEach(func(_, row gjson.Result) bool {
			sk.Stockpile = append(sk.Stockpile, readFloatSlice(row))
			return true
		})
		if sk.MaxLevel == 0 {
			sk.MaxLevel = len(sk.Amount)
		}
		if base := v.Get("base").String(); base != "" {
			baseNames[sk] = base
		}
		s.skills = append(s.skills, sk)
		s.skillByName[normalizeName(sk.Name)] = sk
		return true
	})
	for _, sk := range s.skills {
		name, ok := baseNames[sk]
		if !ok {
			continue
		}
		base, err := s.Skill(name)
		if err != nil {
			return nil, fmt.Errorf("skill %q base: %w", sk.Name, err)
		}
		sk.Base = base
	}

	var loadErr error
	gjson.Get(dataJSON, "metronome").ForEach(func(_, v gjson.Result) bool {
		sk, err := s.Skill(v.String())
		if err != nil {
			loadErr = fmt.Errorf("metronome: %w", err)
			return false
		}
		s.metronome = append(s.metronome, sk)
		return true
	})
	if loadErr != nil {
		return nil, loadErr
	}

	gjson.Get(dataJSON, "pokemon").ForEach(func(_, v gjson.Result) bool {
		p, err := s.parsePokemon(v)
		if err != nil {
			loadErr = err
			return false
		}
		s.pokemon = append(s.pokemon, p)
		s.pokemonByName[normalizeName(p.Name)] = p
		return true
	})
	if loadErr != nil {
		return nil, loadErr
	}

	gjson.Get(dataJSON, "recipes").ForEach(func(_, v gjson.Result) bool {
		r, err := s.parseRecipe(v)
		if err != nil {
			loadErr = err
			return false
		}
		s.recipes = append(s.recipes, r)
		s.recipeByName[normalizeName(r.Name)] = r
		return true
	})
	if loadErr != nil {
		return nil, loadErr
	}

	gjson.Get(dataJSON, "islands").ForEach(func(_, v gjson.Result) bool {
		isl := &Island{
			Name:        v.Get("name").String(),
			DisplayName: v.Get("displayName").String(),
			AreaBonus:   v.Get("areaBonus").Float(),
		}
		v.Get("berries").ForEach(func(_, b gjson.Result) bool {
			berry, err := s.Berry(b.String())
			if err != nil {
				loadErr = fmt.Errorf("island %q: %w", isl.Name, err)
				return false
			}
			isl.Berries = append(isl.Berries, berry)
			return true
		})
		if loadErr != nil {
			return false
		}
		s.islands = append(s.islands, isl)
		s.islandByName[normalizeName(isl.Name)] = isl
		return true
	})
	if loadErr != nil {
		return nil, loadErr
	}

	return s, nil
}

func (s *Store) parsePokemon(v gjson.Result) (*Pokemon, error) {
	name := v.Get("name").String()
	berry, err := s.Berry(v.Get("berry").String())
	if err != nil {
		return nil, fmt.Errorf("pokemon %q: %w", name, err)
	}
	skill, err := s.Skill(v.Get("skill").String())
	if err != nil {
		return nil, fmt.Errorf("pokemon %q: %w", name, err)
	}
	p := &Pokemon{
		Name:                 name,
		DisplayName:          v.Get("displayName").String(),
		Specialty:            parseSpecialty(v.Get("specialty").String()),
		Frequency:            v.Get("frequency").Float(),
		IngredientPercentage: v.Get("ingredientPercentage").Float(),
		SkillPercentage:      v.Get("skillPercentage").Float(),
		Berry:                berry,
		Carry:                int(v.Get("carry").Int()),
		PreviousEvolutions:   int(v.Get("previousEvolutions").Int()),
		Skill:                skill,
	}
	tiers := []struct {
		key string
		dst *[]IngredientSet
	}{
		{"ingredient0", &p.Ingredient0},
		{"ingredient30", &p.Ingredient30},
		{"ingredient60", &p.Ingredient60},
	}
	for _, t := range tiers {
		sets, err := s.readIngredientSets(v.Get(t.key))
		if err != nil {
			return nil, fmt.Errorf("pokemon %q %s: %w", name, t.key, err)
		}
		*t.dst = sets
	}
	if p.Frequency <= 0 {
		return nil, fmt.Errorf("pokemon %q: frequency %g must be positive", name, p.Frequency)
	}
	for i, t := range tiers {
		if len(*t.dst) == 0 {
			return nil, fmt.Errorf("pokemon %q: no ingredient at level %d", name, []int{0, 30, 60}[i])
		}
	}
	return p, nil
}

func (s *Store) parseRecipe(v gjson.Result) (*Recipe, error) {
	name := v.Get("name").String()
	sets, err := s.readIngredientSets(v.Get("ingredients"))
	if err != nil {
		return nil, fmt.Errorf("recipe %q: %w", name, err)
	}
	r := &Recipe{
		Name:        name,
		DisplayName: v.Get("displayName").String(),
		Type:        ParseRecipeType(v.Get("type").String()),
		Bonus:       v.Get("bonus").Float(),
		Ingredients: sets,
		Requirement: make(IngredientCounts, len(s.ingredients)),
	}
	baseValue := 0.0
	for _, set := range sets {
		n := int(set.Amount)
		r.Requirement[set.Ingredient.Index] += n
		r.NrOfIngredients += n
		baseValue += set.Amount * float64(set.Ingredient.Value)
	}
	r.Value = int(math.Round(baseValue * (1 + r.Bonus/100)))
	return r, nil
}

func (s *Store) readIngredientSets(v gjson.Result) ([]IngredientSet, error) {
	var out []IngredientSet
	var err error
	v.ForEach(func(_, item gjson.Result) bool {
		ing, lookupErr := s.Ingredient(item.Get("name").String())
		if lookupErr != nil {
			err = lookupErr
			return false
		}
		out = append(out, IngredientSet{Ingredient: ing, Amount: item.Get("amount").Float()})
		return true
	})
	return out, err
}

func readFloatSlice(v gjson.Result) []float64 {
	if !v.Exists() || !v.IsArray() {
		return nil
	}
	arr := v.Array()
	out := make([]float64, len(arr))
	for i, item := range arr {
		out[i] = item.Float()
	}
	return out
}

func readIntSlice(v gjson.Result) []int {
	if !v.Exists() || !v.IsArray() {
		return nil
	}
	arr := v.Array()
	out := make([]int, len(arr))
	for i, item := range arr {
		out[i] = int(item.Int())
	}
	return out
}

func floatOr(v gjson.Result, def float64) float64 {
	if !v.Exists() {
		return def
	}
	return v.Float()
}
