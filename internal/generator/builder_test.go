package generator

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"hexdoku_gen_go/internal/types"
	"hexdoku_gen_go/internal/validator"
)

// validPattern builds a conflict-free solved board, unlike the
// deliberately imperfect fallbackPattern.
func validPattern() types.Board {
	var b types.Board
	for r := 0; r < types.Size; r++ {
		offset := (r%4)*types.BoxSize + r/types.BoxSize
		for c := 0; c < types.Size; c++ {
			b.Set(r, c, uint8((c+offset)%types.Size)+1)
		}
	}
	return b
}

func TestBuildSolutionProducesSolvedBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b, degraded, err := BuildSolution(context.Background(), rng)
	require.NoError(t, err)
	require.False(t, degraded)
	require.True(t, validator.IsSolved(&b))
}

func TestBuildSolutionIsSeedReproducible(t *testing.T) {
	a, _, err := BuildSolution(context.Background(), rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, _, err := BuildSolution(context.Background(), rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestBuildSolutionVariesAcrossSeeds(t *testing.T) {
	a, _, err := BuildSolution(context.Background(), rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	b, _, err := BuildSolution(context.Background(), rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestBuildSolutionHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := BuildSolution(ctx, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, context.Canceled)
}

func TestRepairConflictsFixesLocalDamage(t *testing.T) {
	b := validPattern()
	// Duplicate a neighbor's value; repair should put the original
	// symbol back, as it is the only legal one for the cell.
	original := b.At(0, 0)
	b.Set(0, 0, b.At(0, 1))
	require.False(t, validator.IsSolved(&b))

	require.True(t, repairConflicts(&b))
	require.True(t, validator.IsSolved(&b))
	require.Equal(t, original, b.At(0, 0))
}

func TestFallbackPatternIsFilled(t *testing.T) {
	b := fallbackPattern()
	require.Equal(t, 0, b.EmptyCount())
	// Row 0 is the symbols in order; later rows are shifted copies and
	// are not guaranteed conflict-free, which is why the repair pass
	// exists.
	for c := 0; c < types.Size; c++ {
		require.Equal(t, uint8(c+1), b.At(0, c))
	}
}
