package generator

import (
	"context"
	"math/rand"
	"sort"

	"hexdoku_gen_go/internal/solver"
	"hexdoku_gen_go/internal/types"
)

const (
	// symmetricCapRatio and symmetricCapMax bound phase 1: symmetric
	// removal stops once min(ratio*target, max) cells are cleared. The
	// remainder is left to the checked removal of phase 2.
	symmetricCapRatio = 0.6
	symmetricCapMax   = 100

	// carveAttemptFactor multiplies the remaining target into phase 2's
	// attempt budget. Hard mode checks uniqueness on every attempt and
	// rejects more candidates, so it gets the larger factor.
	carveAttemptFactor     = 2
	carveAttemptFactorHard = 4

	// maxRestorations bounds phase 3: cells restored from the solution
	// before the puzzle ships unverified. Bounds worst-case quality
	// degradation instead of looping indefinitely.
	maxRestorations = 20

	// basePriority anchors the phase 2 removal priority so that less
	// locally repeated values sort first.
	basePriority = 50
)

// checkEvery returns the phase 2 sampling rate: a uniqueness check runs
// on every n-th removal attempt.
func checkEvery(d types.Difficulty) int {
	switch d {
	case types.Easy:
		return 3
	case types.Medium:
		return 2
	}
	return 1
}

// carve clears cells out of a solved board until the difficulty's empty
// target is met, keeping the completion unique with high probability.
// verified reports whether the final exact uniqueness check passed.
func carve(ctx context.Context, rng *rand.Rand, solution types.Board, d types.Difficulty) (puzzle types.Board, verified bool, st solver.Stats, err error) {
	puzzle = solution

	if d == types.Test {
		carveTest(rng, &puzzle)
		return puzzle, false, st, nil
	}

	target := d.EmptyTarget()
	cleared := clearSymmetricPairs(rng, &puzzle, target)

	_, ph2Stats, err := clearByPriority(ctx, rng, &puzzle, d, target-cleared)
	st.Nodes += ph2Stats.Nodes
	st.Duration += ph2Stats.Duration
	if err != nil {
		return puzzle, false, st, err
	}

	verified, ph3Stats, err := restoreUntilUnique(ctx, rng, &puzzle, &solution)
	st.Nodes += ph3Stats.Nodes
	st.Duration += ph3Stats.Duration
	return puzzle, verified, st, err
}

// carveTest clears exactly two random cells with no verification.
func carveTest(rng *rand.Rand, puzzle *types.Board) {
	positions := rng.Perm(types.CellCount)
	for _, pos := range positions[:2] {
		(*puzzle)[pos] = types.Empty
	}
}

// clearSymmetricPairs walks a shuffled list of cell pairs related by
// point symmetry about the grid center, clearing both cells of each
// pair. Symmetric removal tends to preserve uniqueness and needs no
// per-step check, so it front-loads most of the carving cheaply.
func clearSymmetricPairs(rng *rand.Rand, puzzle *types.Board, target int) int {
	limit := int(symmetricCapRatio * float64(target))
	if limit > symmetricCapMax {
		limit = symmetricCapMax
	}

	pairs := make([][2]int, 0, types.CellCount/2)
	for pos := 0; pos < types.CellCount/2; pos++ {
		mirror := types.CellCount - 1 - pos
		if mirror == pos {
			continue
		}
		pairs = append(pairs, [2]int{pos, mirror})
	}
	rng.Shuffle(len(pairs), func(i, j int) {
		pairs[i], pairs[j] = pairs[j], pairs[i]
	})

	cleared := 0
	for _, pair := range pairs {
		if cleared+2 > limit {
			break
		}
		(*puzzle)[pair[0]] = types.Empty
		(*puzzle)[pair[1]] = types.Empty
		cleared += 2
	}
	return cleared
}

// removalCandidate is a filled cell with its phase 2 priority.
type removalCandidate struct {
	pos      int
	priority float64
}

// removalPriority favors values that appear sparsely around the cell:
// removing a densely repeated value is safer because its other
// instances still pin the completion, so those sort last.
func removalPriority(rng *rand.Rand, puzzle *types.Board, pos int) float64 {
	row, col := pos/types.Size, pos%types.Size
	v := (*puzzle)[pos]

	occurrences := 0
	for c := 0; c < types.Size; c++ {
		if puzzle.At(row, c) == v {
			occurrences++
		}
	}
	for r := 0; r < types.Size; r++ {
		if puzzle.At(r, col) == v {
			occurrences++
		}
	}
	br, bc := types.BlockOrigin(row, col)
	for r := br; r < br+types.BoxSize; r++ {
		for c := bc; c < bc+types.BoxSize; c++ {
			if puzzle.At(r, c) == v {
				occurrences++
			}
		}
	}

	return float64(basePriority-occurrences) + rng.Float64()
}

// clearByPriority tentatively clears cells in priority order, running a
// bounded uniqueness check at the difficulty's sampling rate and
// restoring any cell whose removal breaks it. Stops at the remaining
// target or the attempt budget.
func clearByPriority(ctx context.Context, rng *rand.Rand, puzzle *types.Board, d types.Difficulty, remaining int) (int, solver.Stats, error) {
	var st solver.Stats
	if remaining <= 0 {
		return 0, st, nil
	}

	candidates := make([]removalCandidate, 0, puzzle.FilledCount())
	for pos := 0; pos < types.CellCount; pos++ {
		if (*puzzle)[pos] == types.Empty {
			continue
		}
		candidates = append(candidates, removalCandidate{pos: pos, priority: removalPriority(rng, puzzle, pos)})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].priority > candidates[j].priority
	})

	budget := remaining * carveAttemptFactor
	if d == types.Hard {
		budget = remaining * carveAttemptFactorHard
	}
	interval := checkEvery(d)

	removed := 0
	attempts := 0
	for _, cand := range candidates {
		if removed >= remaining || attempts >= budget {
			break
		}
		attempts++

		old := (*puzzle)[cand.pos]
		(*puzzle)[cand.pos] = types.Empty

		if attempts%interval == 0 {
			unique, checkStats, err := solver.HasUniqueSolutionBounded(ctx, *puzzle)
			st.Nodes += checkStats.Nodes
			st.Duration += checkStats.Duration
			if err != nil {
				(*puzzle)[cand.pos] = old
				return removed, st, err
			}
			if !unique {
				(*puzzle)[cand.pos] = old
				continue
			}
		}
		removed++
	}
	return removed, st, nil
}

// restoreUntilUnique runs the authoritative exact uniqueness check and,
// while it fails, puts shuffled empty cells back from the solution one
// at a time, re-checking after each. Gives up after maxRestorations.
func restoreUntilUnique(ctx context.Context, rng *rand.Rand, puzzle, solution *types.Board) (bool, solver.Stats, error) {
	var st solver.Stats

	unique, checkStats, err := solver.HasUniqueSolution(ctx, *puzzle)
	st.Nodes += checkStats.Nodes
	st.Duration += checkStats.Duration
	if err != nil || unique {
		return unique, st, err
	}

	empties := make([]int, 0, puzzle.EmptyCount())
	for pos := 0; pos < types.CellCount; pos++ {
		if (*puzzle)[pos] == types.Empty {
			empties = append(empties, pos)
		}
	}
	rng.Shuffle(len(empties), func(i, j int) {
		empties[i], empties[j] = empties[j], empties[i]
	})

	for i := 0; i < len(empties) && i < maxRestorations; i++ {
		pos := empties[i]
		(*puzzle)[pos] = (*solution)[pos]

		unique, checkStats, err = solver.HasUniqueSolution(ctx, *puzzle)
		st.Nodes += checkStats.Nodes
		st.Duration += checkStats.Duration
		if err != nil || unique {
			return unique, st, err
		}
	}
	return false, st, nil
}
