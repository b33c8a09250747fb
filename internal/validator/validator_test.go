package validator

import (
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

func TestIsSolvedOnValidBoard(t *testing.T) {
	b := patternBoard()
	require.True(t, IsSolved(&b))
}

func TestIsSolvedRejectsGapsAndDuplicates(t *testing.T) {
	b := patternBoard()
	b.Set(4, 4, types.Empty)
	require.False(t, IsSolved(&b))

	b = patternBoard()
	b.Set(0, 1, b.At(0, 0))
	require.False(t, IsSolved(&b))
}

func TestIsLegalOwnValue(t *testing.T) {
	b := patternBoard()
	// A filled cell stays legal for the value it already holds.
	for r := 0; r < types.Size; r++ {
		for c := 0; c < types.Size; c++ {
			require.True(t, IsLegal(&b, r, c, b.At(r, c)))
		}
	}
}

func TestIsLegalRejectsUnitDuplicates(t *testing.T) {
	b := patternBoard()
	// On a solved board, every other symbol conflicts somewhere in the
	// cell's row, column, or block.
	for v := uint8(1); v <= types.Size; v++ {
		if v == b.At(0, 0) {
			continue
		}
		require.False(t, IsLegal(&b, 0, 0, v), "symbol %d", v)
	}
}

func TestIsLegalOnEmptyBoard(t *testing.T) {
	var b types.Board
	for v := uint8(1); v <= types.Size; v++ {
		require.True(t, IsLegal(&b, 7, 7, v))
	}
	require.False(t, IsLegal(&b, 7, 7, types.Empty))
}

func TestConflictsOfCleanBoard(t *testing.T) {
	b := patternBoard()
	for r := 0; r < types.Size; r++ {
		for c := 0; c < types.Size; c++ {
			require.Empty(t, ConflictsOf(&b, r, c))
		}
	}
}

func TestConflictsOfEmptyCell(t *testing.T) {
	b := patternBoard()
	b.Set(5, 5, types.Empty)
	require.Empty(t, ConflictsOf(&b, 5, 5))
}

func TestConflictsIncludeSelfAndAreSymmetric(t *testing.T) {
	b := patternBoard()
	// Duplicate the value of (0,0) into (0,1): conflicts via row and
	// block, plus a column conflict for (0,1) at (15,1) where the
	// pattern already places that value.
	b.Set(0, 1, b.At(0, 0))

	from00 := ConflictsOf(&b, 0, 0)
	require.ElementsMatch(t, []types.CellCoord{
		{Row: 0, Col: 1},
		{Row: 0, Col: 0},
	}, from00)

	from01 := ConflictsOf(&b, 0, 1)
	require.ElementsMatch(t, []types.CellCoord{
		{Row: 0, Col: 0},
		{Row: 15, Col: 1},
		{Row: 0, Col: 1},
	}, from01)

	// Symmetry: each side of the pair lists the other plus itself.
	require.Contains(t, from00, types.CellCoord{Row: 0, Col: 1})
	require.Contains(t, from01, types.CellCoord{Row: 0, Col: 0})
}
