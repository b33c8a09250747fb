package generator

import (
	"context"
	"math/rand"

	"hexdoku_gen_go/internal/types"
	"hexdoku_gen_go/internal/validator"
)

const (
	// maxBuildAttempts restarts of the randomized fill before the
	// deterministic fallback engages. A random row-major fill of a
	// 16x16 board almost always succeeds on the first attempt; the
	// restarts absorb pathological candidate orderings.
	maxBuildAttempts = 8

	// maxBuildNodes bounds node expansions per fill attempt.
	maxBuildNodes = 2_000_000

	// maxRepairPasses bounds the fallback scan-repair loop. Exhausting
	// it with conflicts left marks the solution degraded.
	maxRepairPasses = 1000

	// cancelCheckInterval is how many node expansions pass between
	// context polls.
	cancelCheckInterval = 256
)

// buildFrame mirrors the solver's stack frame for the randomized fill.
type buildFrame struct {
	pos        int
	candidates []uint8
	next       int
}

// BuildSolution produces a fully filled, constraint-satisfying board,
// different per rng stream. If every randomized attempt blows its node
// budget, a deterministic fallback construction plus a repair pass is
// used instead; degraded reports whether that repair failed to converge.
func BuildSolution(ctx context.Context, rng *rand.Rand) (b types.Board, degraded bool, err error) {
	for attempt := 0; attempt < maxBuildAttempts; attempt++ {
		b = types.Board{}
		ok, fillErr := fillRandom(ctx, rng, &b)
		if fillErr != nil {
			return b, false, fillErr
		}
		if ok {
			return b, false, nil
		}
	}

	b = fallbackPattern()
	if !repairConflicts(&b) {
		return b, true, nil
	}
	return b, false, nil
}

// fillRandom backtracks over empty cells in row-major order, trying the
// 16 symbols in a fresh random order at each cell. Runs on an explicit
// stack with cancellation polled between expansions. Returns false if
// the node budget runs out first.
func fillRandom(ctx context.Context, rng *rand.Rand, b *types.Board) (bool, error) {
	nodes := 0

	pos, ok := b.FirstEmpty()
	if !ok {
		return true, nil
	}

	stack := make([]buildFrame, 0, types.CellCount)
	stack = append(stack, buildFrame{pos: pos, candidates: shuffledLegalValues(rng, b, pos)})

	for len(stack) > 0 {
		if nodes%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return false, err
			}
		}
		if nodes > maxBuildNodes {
			return false, nil
		}

		top := &stack[len(stack)-1]
		if top.next >= len(top.candidates) {
			// Dead end: clear and let the previous frame's loop resume.
			b[top.pos] = types.Empty
			stack = stack[:len(stack)-1]
			continue
		}

		v := top.candidates[top.next]
		top.next++
		nodes++
		b[top.pos] = v

		next, ok := b.FirstEmpty()
		if !ok {
			return true, nil
		}
		stack = append(stack, buildFrame{pos: next, candidates: shuffledLegalValues(rng, b, next)})
	}

	return false, nil
}

func shuffledLegalValues(rng *rand.Rand, b *types.Board, pos int) []uint8 {
	row, col := pos/types.Size, pos%types.Size
	out := make([]uint8, 0, types.Size)
	for v := uint8(1); v <= types.Size; v++ {
		if validator.IsLegal(b, row, col, v) {
			out = append(out, v)
		}
	}
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// fallbackPattern fills row 0 with the symbols in order and shifts each
// later row by row*4 plus a per-block-row extra of 0, 4, 8, or 12. The
// pattern is structurally regular but not conflict-free everywhere;
// repairConflicts cleans it up afterwards.
func fallbackPattern() types.Board {
	var b types.Board
	for r := 0; r < types.Size; r++ {
		offset := r*types.BoxSize + (r/types.BoxSize)*types.BoxSize
		for c := 0; c < types.Size; c++ {
			b.Set(r, c, uint8((c+offset)%types.Size)+1)
		}
	}
	return b
}

// repairConflicts scans for conflicted cells and reassigns each to the
// first currently legal symbol, looping until the board is solved or
// maxRepairPasses is spent. Reports whether the board ended up solved.
func repairConflicts(b *types.Board) bool {
	for pass := 0; pass < maxRepairPasses; pass++ {
		if validator.IsSolved(b) {
			return true
		}
		for r := 0; r < types.Size; r++ {
			for c := 0; c < types.Size; c++ {
				if b.At(r, c) != types.Empty && len(validator.ConflictsOf(b, r, c)) == 0 {
					continue
				}
				b.Set(r, c, types.Empty)
				for v := uint8(1); v <= types.Size; v++ {
					if validator.IsLegal(b, r, c, v) {
						b.Set(r, c, v)
						break
					}
				}
			}
		}
	}
	return validator.IsSolved(b)
}
