package gamedata

import (
	_ "embed"
	"sync"
)

//go:embed data/gamedata.json
var embeddedData string

// Default returns the store parsed from the embedded game data.
var Default = sync.OnceValue(func() *Store {
	s, err := Load(embeddedData)
	if err != nil {
		panic("gamedata: embedded data is corrupt: " + err.Error())
	}
	return s
})

// Store is a read-only lookup service over the static game data.
// It is safe for concurrent use once loaded.
type Store struct {
	ingredients []*Ingredient
	berries     []*Berry
	natures     []*Nature
	subskills   []*Subskill
	skills      []*Skill
	metronome   []*Skill
	pokemon     []*Pokemon
	recipes     []*Recipe
	islands     []*Island

	ingredientByName map[string]*Ingredient
	berryByName      map[string]*Berry
	natureByName     map[string]*Nature
	subskillByName   map[string]*Subskill
	skillByName      map[string]*Skill
	pokemonByName    map[string]*Pokemon
	recipeByName     map[string]*Recipe
	islandByName     map[string]*Island
}

func newStore() *Store {
	return &Store{
		ingredientByName: make(map[string]*Ingredient),
		berryByName:      make(map[string]*Berry),
		natureByName:     make(map[string]*Nature),
		subskillByName:   make(map[string]*Subskill),
		skillByName:      make(map[string]*Skill),
		pokemonByName:    make(map[string]*Pokemon),
		recipeByName:     make(map[string]*Recipe),
		islandByName:     make(map[string]*Island),
	}
}

func (s *Store) Pokemon(name string) (*Pokemon, error) {
	if p, ok := s.pokemonByName[normalizeName(name)]; ok {
		return p, nil
	}
	return nil, unknownName(ErrUnknownPokemon, name, names(s.pokemon, func(p *Pokemon) string { return p.Name }))
}

func (s *Store) Skill(name string) (*Skill, error) {
	if sk, ok := s.skillByName[normalizeName(name)]; ok {
		return sk, nil
	}
	return nil, unknownName(ErrUnknownSkill, name, names(s.skills, func(sk *Skill) string { return sk.Name }))
}

func (s *Store) Berry(name string) (*Berry, error) {
	if b, ok := s.berryByName[normalizeName(name)]; ok {
		return b, nil
	}
	return nil, unknownName(ErrUnknownBerry, name, names(s.berries, func(b *Berry) string { return b.Name }))
}

func (s *Store) Ingredient(name string) (*Ingredient, error) {
	if ing, ok := s.ingredientByName[normalizeName(name)]; ok {
		return ing, nil
	}
	return nil, unknownName(ErrUnknownIngredient, name, names(s.ingredients, func(i *Ingredient) string { return i.Name }))
}

func (s *Store) Recipe(name string) (*Recipe, error) {
	if r, ok := s.recipeByName[normalizeName(name)]; ok {
		return r, nil
	}
	return nil, unknownName(ErrUnknownRecipe, name, names(s.recipes, func(r *Recipe) string { return r.Name }))
}

func (s *Store) Island(name string) (*Island, error) {
	if isl, ok := s.islandByName[normalizeName(name)]; ok {
		return isl, nil
	}
	return nil, unknownName(ErrUnknownIsland, name, names(s.islands, func(i *Island) string { return i.Name }))
}

func (s *Store) Nature(name string) (*Nature, error) {
	if n, ok := s.natureByName[normalizeName(name)]; ok {
		return n, nil
	}
	return nil, unknownName(ErrUnknownNature, name, names(s.natures, func(n *Nature) string { return n.Name }))
}

func (s *Store) Subskill(name string) (*Subskill, error) {
	if ss, ok := s.subskillByName[normalizeName(name)]; ok {
		return ss, nil
	}
	return nil, unknownName(ErrUnknownSubskill, name, names(s.subskills, func(ss *Subskill) string { return ss.Name }))
}

// IngredientIndex returns the global ordinal of the named ingredient.
func (s *Store) IngredientIndex(name string) (int, error) {
	ing, err := s.Ingredient(name)
	if err != nil {
		return -1, err
	}
	return ing.Index, nil
}

// Ingredients lists every ingredient in index order. The slice must not be modified.
func (s *Store) Ingredients() []*Ingredient { return s.ingredients }

func (s *Store) IngredientCount() int { return len(s.ingredients) }

func (s *Store) AllPokemon() []*Pokemon { return s.pokemon }

func (s *Store) AllSkills() []*Skill { return s.skills }

func (s *Store) AllRecipes() []*Recipe { return s.recipes }

func (s *Store) AllIslands() []*Island { return s.islands }

// Recipes lists the recipes of one type, in load order.
func (s *Store) Recipes(t RecipeType) []*Recipe {
	var out []*Recipe
	for _, r := range s.recipes {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

// MetronomeSkills lists the skills Metronome may draw from.
func (s *Store) MetronomeSkills() []*Skill { return s.metronome }

// NeutralNature is the nature used when a member does not specify one.
func (s *Store) NeutralNature() *Nature {
	if n, ok := s.natureByName["BASHFUL"]; ok {
		return n
	}
	return &Nature{Name: "BASHFUL", Frequency: 1, Energy: 1, Ingredient: 1, Skill: 1}
}

func names[T any](items []T, name func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = name(it)
	}
	return out
}
