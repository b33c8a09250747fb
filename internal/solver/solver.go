// Package solver counts completions of a partially filled board, capped
// at a small limit, to classify uniqueness without a full enumeration.
package solver

import (
	"context"
	"time"

	"hexdoku_gen_go/internal/types"
	"hexdoku_gen_go/internal/validator"
)

// Stats captures performance characteristics of a search.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

const (
	// boundedSearchDepth caps the frame depth of the bounded counter.
	// A subtree cut off at this depth is optimistically counted as one
	// completion, so the bounded counter can under-detect multiple
	// solutions on deep searches. That trade is deliberate: it keeps
	// the carver's inner-loop checks cheap. The authoritative check
	// after carving always uses the exact counter.
	boundedSearchDepth = 50

	// cancelCheckInterval is how many node expansions pass between
	// context polls.
	cancelCheckInterval = 256
)

// frame is one cell of the explicit backtracking stack: the cell being
// filled and the candidates still untried there.
type frame struct {
	pos        int
	candidates []uint8
	next       int
}

// CountCompletions counts assignments completing b, short-circuiting
// once limit is reached. The board is taken by value; the caller's copy
// is never touched.
func CountCompletions(ctx context.Context, b types.Board, limit int) (int, Stats, error) {
	return countCompletions(ctx, &b, limit, 0)
}

// CountCompletionsBounded is CountCompletions with the search cut off at
// a fixed depth; see boundedSearchDepth for the approximation it makes.
func CountCompletionsBounded(ctx context.Context, b types.Board, limit int) (int, Stats, error) {
	return countCompletions(ctx, &b, limit, boundedSearchDepth)
}

// HasUniqueSolution reports whether b has exactly one completion,
// using the exact counter.
func HasUniqueSolution(ctx context.Context, b types.Board) (bool, Stats, error) {
	n, st, err := CountCompletions(ctx, b, 2)
	return n == 1, st, err
}

// HasUniqueSolutionBounded is the depth-capped variant. It may report
// true for a board with multiple solutions hidden below the depth cap.
func HasUniqueSolutionBounded(ctx context.Context, b types.Board) (bool, Stats, error) {
	n, st, err := CountCompletionsBounded(ctx, b, 2)
	return n == 1, st, err
}

// legalValues collects the symbols currently placeable at pos. The
// board below an active frame does not change while the frame is live,
// so candidates can be fixed when the frame is pushed.
func legalValues(b *types.Board, pos int) []uint8 {
	row, col := pos/types.Size, pos%types.Size
	out := make([]uint8, 0, types.Size)
	for v := uint8(1); v <= types.Size; v++ {
		if validator.IsLegal(b, row, col, v) {
			out = append(out, v)
		}
	}
	return out
}

// countCompletions runs an iterative depth-first search over the first
// empty cell in row-major order. depthLimit == 0 means exact.
func countCompletions(ctx context.Context, b *types.Board, limit, depthLimit int) (int, Stats, error) {
	start := time.Now()
	count := 0
	nodes := 0

	pos, ok := b.FirstEmpty()
	if !ok {
		// Already complete.
		return 1, Stats{Duration: time.Since(start)}, nil
	}

	stack := make([]frame, 0, types.CellCount)
	stack = append(stack, frame{pos: pos, candidates: legalValues(b, pos)})

	for len(stack) > 0 {
		if nodes%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return count, Stats{Nodes: nodes, Duration: time.Since(start)}, err
			}
		}

		top := &stack[len(stack)-1]
		if top.next >= len(top.candidates) {
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
			count++
			if count >= limit {
				return count, Stats{Nodes: nodes, Duration: time.Since(start)}, nil
			}
			continue
		}

		if depthLimit > 0 && len(stack) >= depthLimit {
			// Depth budget hit: stop searching and assume the
			// unexplored subtree completes exactly once.
			count++
			return count, Stats{Nodes: nodes, Duration: time.Since(start)}, nil
		}

		stack = append(stack, frame{pos: next, candidates: legalValues(b, next)})
	}

	return count, Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}
