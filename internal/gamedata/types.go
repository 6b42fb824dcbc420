package gamedata

type Specialty int

const (
	SpecialtyNone Specialty = iota
	SpecialtyBerry
	SpecialtyIngredient
	SpecialtySkill
)

func (s Specialty) String() string {
	switch s {
	case SpecialtyBerry:
		return "berry"
	case SpecialtyIngredient:
		return "ingredient"
	case SpecialtySkill:
		return "skill"
	}
	return "none"
}

// Unit is what a skill's amount table measures.
type Unit int

const (
	UnitNone Unit = iota
	UnitEnergy
	UnitStrength
	UnitIngredients
	UnitDreamShards
	UnitHelps
	UnitPotSize
	UnitChance
	UnitBerries
	UnitCandy
	UnitItems
)

func (u Unit) String() string {
	switch u {
	case UnitEnergy:
		return "energy"
	case UnitStrength:
		return "strength"
	case UnitIngredients:
		return "ingredients"
	case UnitDreamShards:
		return "dream shards"
	case UnitHelps:
		return "helps"
	case UnitPotSize:
		return "pot size"
	case UnitChance:
		return "chance"
	case UnitBerries:
		return "berries"
	case UnitCandy:
		return "candy"
	case UnitItems:
		return "items"
	}
	return "none"
}

type SubskillKind int

const (
	SubskillInert SubskillKind = iota
	SubskillHelpingSpeed
	SubskillHelpingBonus
	SubskillIngredientFinder
	SubskillSkillTrigger
	SubskillInventory
	SubskillBerryFinding
	SubskillEnergyRecovery
	SubskillSkillLevel
	SubskillDreamShard
)

type RecipeType int

const (
	RecipeNone RecipeType = iota
	RecipeCurry
	RecipeSalad
	RecipeDessert
)

func (t RecipeType) String() string {
	switch t {
	case RecipeCurry:
		return "curry"
	case RecipeSalad:
		return "salad"
	case RecipeDessert:
		return "dessert"
	}
	return "none"
}

func parseSpecialty(s string) Specialty {
	switch s {
	case "berry", "BERRY":
		return SpecialtyBerry
	case "ingredient", "INGREDIENT":
		return SpecialtyIngredient
	case "skill", "SKILL":
		return SpecialtySkill
	}
	return SpecialtyNone
}

func ParseUnit(s string) Unit {
	switch s {
	case "energy":
		return UnitEnergy
	case "strength":
		return UnitStrength
	case "ingredients":
		return UnitIngredients
	case "dream shards":
		return UnitDreamShards
	case "helps":
		return UnitHelps
	case "pot size":
		return UnitPotSize
	case "chance":
		return UnitChance
	case "berries":
		return UnitBerries
	case "candy":
		return UnitCandy
	case "items":
		return UnitItems
	}
	return UnitNone
}

func parseSubskillKind(s string) SubskillKind {
	switch s {
	case "helpingSpeed":
		return SubskillHelpingSpeed
	case "helpingBonus":
		return SubskillHelpingBonus
	case "ingredientFinder":
		return SubskillIngredientFinder
	case "skillTrigger":
		return SubskillSkillTrigger
	case "inventory":
		return SubskillInventory
	case "berryFinding":
		return SubskillBerryFinding
	case "energyRecovery":
		return SubskillEnergyRecovery
	case "skillLevel":
		return SubskillSkillLevel
	case "dreamShard":
		return SubskillDreamShard
	}
	return SubskillInert
}

func ParseRecipeType(s string) RecipeType {
	switch s {
	case "curry", "CURRY":
		return RecipeCurry
	case "salad", "SALAD":
		return RecipeSalad
	case "dessert", "DESSERT":
		return RecipeDessert
	}
	return RecipeNone
}

type Ingredient struct {
	Name     string
	LongName string
	Value    int
	Index    int // global ordinal into every IngredientAmounts / IngredientCounts
}

type IngredientSet struct {
	Ingredient *Ingredient
	Amount     float64
}

type Berry struct {
	Name  string
	Type  string
	Value int
}

type Nature struct {
	Name       string
	Frequency  float64
	Energy     float64
	Ingredient float64
	Skill      float64
}

type Subskill struct {
	Name   string
	Kind   SubskillKind
	Amount float64
}

type Skill struct {
	Name               string
	Unit               Unit
	MaxLevel           int
	Amount             []float64 // Amount[level-1]
	RP                 []int
	CritChance         float64
	CritMultiplier     float64
	LowestMemberChance float64
	Modifier           string
	Base               *Skill
	Extra              map[string][]float64
	Stockpile          [][]float64 // Stockpile[level-1][stock count]
}

type Pokemon struct {
	Name                 string
	DisplayName          string
	Specialty            Specialty
	Frequency            float64 // seconds between helps at level 1
	IngredientPercentage float64
	SkillPercentage      float64
	Berry                *Berry
	Carry                int
	PreviousEvolutions   int
	Skill                *Skill
	Ingredient0          []IngredientSet
	Ingredient30         []IngredientSet
	Ingredient60         []IngredientSet
}

type Recipe struct {
	Name            string
	DisplayName     string
	Type            RecipeType
	Bonus           float64
	Ingredients     []IngredientSet
	Requirement     IngredientCounts
	NrOfIngredients int
	Value           int
}

type Island struct {
	Name        string
	DisplayName string
	AreaBonus   float64
	Berries     []*Berry
}

// Favors reports whether the island's favored berry list contains b.
func (i *Island) Favors(b *Berry) bool {
	if i == nil || b == nil {
		return false
	}
	for _, fb := range i.Berries {
		if fb.Name == b.Name {
			return true
		}
	}
	return false
}
