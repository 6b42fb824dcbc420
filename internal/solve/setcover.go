// Package solve finds the smallest additions to a team that cover a recipe.
package solve

import (
	"slices"
	"strconv"
	"strings"

	"sleep-optimizer/internal/gamedata"
)

const coverEpsilon = 1e-9

type SetCoverOptions struct {
	MaxTeamSize  int
	MaxNodes     int // 0 means unbounded
	MaxSolutions int // 0 means unbounded
}

// SetCover searches for minimal subsets of producers whose summed vectors
// meet a demand vector. A SetCover is not safe for concurrent use.
type SetCover struct {
	producers    []gamedata.IngredientAmounts
	byIngredient [][]int // ingredient index -> producers with a positive amount
	opts         SetCoverOptions

	memo      map[string]struct{} // subproblems known to have no cover
	nodes     int
	capped    bool // MaxSolutions reached
	cut       bool
	seen      map[string]bool
	solutions [][]int
}

func NewSetCover(producers []gamedata.IngredientAmounts, opts SetCoverOptions) *SetCover {
	width := 0
	for _, p := range producers {
		width = max(width, len(p))
	}
	byIngredient := make([][]int, width)
	for pi, p := range producers {
		for i, v := range p {
			if v > coverEpsilon {
				byIngredient[i] = append(byIngredient[i], pi)
			}
		}
	}
	return &SetCover{producers: producers, byIngredient: byIngredient, opts: opts}
}

// Solve returns every minimal team (as sorted producer indices) covering
// demand. exhaustive is true only when at least one team was found and no
// node or solution bound cut the search short. Hitting MaxSolutions only
// counts as a cut when another node was still due. A demand that is already
// met yields a single empty team.
func (s *SetCover) Solve(demand gamedata.IngredientAmounts) (solutions [][]int, exhaustive bool) {
	s.memo = make(map[string]struct{})
	s.seen = make(map[string]bool)
	s.nodes = 0
	s.capped = false
	s.cut = false
	s.solutions = nil

	if demand.Satisfied() {
		return [][]int{{}}, true
	}
	for size := 1; size <= s.opts.MaxTeamSize; size++ {
		s.search(demand.Clone(), size, nil)
		if len(s.solutions) > 0 || s.cut {
			break
		}
	}
	return s.solutions, len(s.solutions) > 0 && !s.cut
}

// NodesVisited reports the work done by the last Solve.
func (s *SetCover) NodesVisited() int { return s.nodes }

func (s *SetCover) search(remaining gamedata.IngredientAmounts, slots int, used []int) bool {
	if s.capped {
		s.cut = true
	}
	if s.cut {
		return false
	}
	s.nodes++
	if s.opts.MaxNodes > 0 && s.nodes > s.opts.MaxNodes {
		s.cut = true
		return false
	}

	ing, candidates := s.scarcest(remaining, used)
	if ing < 0 {
		s.record(used)
		return true
	}
	if slots == 0 || len(candidates) == 0 {
		return false
	}
	key := memoKey(remaining, slots, used)
	if _, dead := s.memo[key]; dead {
		return false
	}

	best := 0.0
	for _, p := range candidates {
		best = max(best, s.producers[p][ing])
	}
	if best*float64(slots) < remaining[ing]-coverEpsilon {
		s.memo[key] = struct{}{}
		return false
	}

	found := false
	for _, p := range candidates {
		next := remaining.Clone()
		next.Sub(s.producers[p])
		if s.search(next, slots-1, append(used[:len(used):len(used)], p)) {
			found = true
		}
		if s.cut {
			return found
		}
	}
	if !found {
		s.memo[key] = struct{}{}
	}
	return found
}

// scarcest picks the unmet ingredient with the fewest unused producers.
// It returns -1 when nothing is unmet.
func (s *SetCover) scarcest(remaining gamedata.IngredientAmounts, used []int) (int, []int) {
	ing := -1
	var candidates []int
	for i, v := range remaining {
		if v <= coverEpsilon {
			continue
		}
		var free []int
		if i < len(s.byIngredient) {
			for _, p := range s.byIngredient[i] {
				if !slices.Contains(used, p) {
					free = append(free, p)
				}
			}
		}
		if ing < 0 || len(free) < len(candidates) {
			ing, candidates = i, free
		}
		if len(free) == 0 {
			break
		}
	}
	return ing, candidates
}

func (s *SetCover) record(used []int) {
	team := slices.Clone(used)
	slices.Sort(team)
	key := joinInts(team)
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.solutions = append(s.solutions, team)
	if s.opts.MaxSolutions > 0 && len(s.solutions) >= s.opts.MaxSolutions {
		s.capped = true
	}
}

func memoKey(remaining gamedata.IngredientAmounts, slots int, used []int) string {
	var b strings.Builder
	for i, v := range remaining {
		if v > coverEpsilon {
			b.WriteString(strconv.Itoa(i))
			b.WriteByte(':')
			b.WriteString(strconv.FormatFloat(v, 'g', 10, 64))
			b.WriteByte(',')
		}
	}
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(slots))
	b.WriteByte('|')
	sorted := slices.Clone(used)
	slices.Sort(sorted)
	b.WriteString(joinInts(sorted))
	return b.String()
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
