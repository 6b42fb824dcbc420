package gamedata

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

var (
	ErrUnknownPokemon    = errors.New("unknown pokemon")
	ErrUnknownSkill      = errors.New("unknown skill")
	ErrUnknownIngredient = errors.New("unknown ingredient")
	ErrUnknownBerry      = errors.New("unknown berry")
	ErrUnknownRecipe     = errors.New("unknown recipe")
	ErrUnknownIsland     = errors.New("unknown island")
	ErrUnknownNature     = errors.New("unknown nature")
	ErrUnknownSubskill   = errors.New("unknown subskill")
)

// IsNotFound reports whether err comes from a failed name lookup.
func IsNotFound(err error) bool {
	for _, sentinel := range []error{
		ErrUnknownPokemon, ErrUnknownSkill, ErrUnknownIngredient, ErrUnknownBerry,
		ErrUnknownRecipe, ErrUnknownIsland, ErrUnknownNature, ErrUnknownSubskill,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// unknownName wraps sentinel with the closest known names, if any are close enough.
func unknownName(sentinel error, name string, known []string) error {
	if s := suggest(name, known); len(s) > 0 {
		return fmt.Errorf("%w %q (did you mean %s?)", sentinel, name, strings.Join(s, ", "))
	}
	return fmt.Errorf("%w %q", sentinel, name)
}

func suggest(name string, known []string) []string {
	type cand struct {
		name string
		dist int
	}
	needle := normalizeName(name)
	if len(needle) < 3 {
		return nil
	}
	var cands []cand
	for _, k := range known {
		dist := levenshtein.ComputeDistance(needle, normalizeName(k))
		if dist > levenshteinLimit(len(k)) {
			continue
		}
		cands = append(cands, cand{k, dist})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].dist == cands[j].dist {
			return cands[i].name < cands[j].name
		}
		return cands[i].dist < cands[j].dist
	})
	out := make([]string, 0, 3)
	for _, c := range cands {
		out = append(out, c.name)
		if len(out) == 3 {
			break
		}
	}
	return out
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// normalizeName folds case and separators so "mr mime", "Mr-Mime" and "MR_MIME" collide.
func normalizeName(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_", ".", "").Replace(s)
}
