package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"hexdoku_gen_go/internal/types"
)

// patternBoard builds a valid solved board from the classic shifted-row
// construction: cell (r, c) holds (c + (r%4)*4 + r/4) mod 16.
func patternBoard() types.Board {
	var b types.Board
	for r := 0; r < types.Size; r++ {
		offset := (r%4)*types.BoxSize + r/types.BoxSize
		for c := 0; c < types.Size; c++ {
			b.Set(r, c, uint8((c+offset)%types.Size)+1)
		}
	}
	return b
}

func TestCountCompletionsFullBoard(t *testing.T) {
	b := patternBoard()
	n, st, err := CountCompletions(context.Background(), b, 2)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Zero(t, st.Nodes)
}

func TestCountCompletionsSingleHole(t *testing.T) {
	b := patternBoard()
	b.Set(9, 9, types.Empty)

	n, _, err := CountCompletions(context.Background(), b, 2)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	unique, _, err := HasUniqueSolution(context.Background(), b)
	require.NoError(t, err)
	require.True(t, unique)
}

// Clearing an unavoidable rectangle gives a board with exactly two
// completions: (0,0),(0,8),(2,0),(2,8) hold the values 1,9,9,1 in the
// pattern, the columns sit 8 apart and each column pair shares a block,
// so swapping 1 and 9 across the rectangle is the only other completion.
func clearedRectangle() types.Board {
	b := patternBoard()
	b.Set(0, 0, types.Empty)
	b.Set(0, 8, types.Empty)
	b.Set(2, 0, types.Empty)
	b.Set(2, 8, types.Empty)
	return b
}

func TestCountCompletionsDetectsSecondSolution(t *testing.T) {
	b := clearedRectangle()

	n, _, err := CountCompletions(context.Background(), b, 2)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	unique, _, err := HasUniqueSolution(context.Background(), b)
	require.NoError(t, err)
	require.False(t, unique)
}

func TestCountCompletionsRespectsCap(t *testing.T) {
	b := clearedRectangle()
	n, _, err := CountCompletions(context.Background(), b, 1)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestBoundedMatchesExactOnShallowBoards(t *testing.T) {
	// Well under the depth cap, the bounded counter is exact.
	b := clearedRectangle()
	n, _, err := CountCompletionsBounded(context.Background(), b, 2)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	b = patternBoard()
	b.Set(0, 0, types.Empty)
	unique, _, err := HasUniqueSolutionBounded(context.Background(), b)
	require.NoError(t, err)
	require.True(t, unique)
}

func TestBoundedCutsOffDeepSearches(t *testing.T) {
	// Clear four full rows: 64 empty cells put every completion past
	// the depth cap, so the bounded counter must return quickly with
	// an optimistic answer instead of enumerating.
	b := patternBoard()
	for r := 0; r < 4; r++ {
		for c := 0; c < types.Size; c++ {
			b.Set(r, c, types.Empty)
		}
	}

	n, st, err := CountCompletionsBounded(context.Background(), b, 2)
	require.NoError(t, err)
	require.GreaterOrEqual(t, n, 1)
	require.LessOrEqual(t, n, 2)
	// The cutoff keeps the search far below an exhaustive node count.
	require.Less(t, st.Nodes, 1_000_000)
}

func TestCountCompletionsHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var b types.Board
	_, _, err := CountCompletions(ctx, b, 2)
	require.ErrorIs(t, err, context.Canceled)
}
