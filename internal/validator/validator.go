// Package validator provides the constraint checks shared by the
// generator and by callers validating moves during play. All functions
// only read the board.
package validator

import (
	"hexdoku_gen_go/internal/types"
)

// IsLegal reports whether v could be placed at (row, col) without
// duplicating a value in the cell's row, column, or block. The cell
// itself is excluded, so a filled cell stays legal for its own value.
func IsLegal(b *types.Board, row, col int, v uint8) bool {
	if v == types.Empty {
		return false
	}

	// Row
	rowStart := row * types.Size
	for c := 0; c < types.Size; c++ {
		if c != col && b[rowStart+c] == v {
			return false
		}
	}

	// Column
	for r := 0; r < types.Size; r++ {
		if r != row && b[r*types.Size+col] == v {
			return false
		}
	}

	// Block
	br, bc := types.BlockOrigin(row, col)
	for r := br; r < br+types.BoxSize; r++ {
		for c := bc; c < bc+types.BoxSize; c++ {
			if (r != row || c != col) && b.At(r, c) == v {
				return false
			}
		}
	}

	return true
}

// ConflictsOf returns every cell sharing a row, column, or block with
// (row, col) that holds the same value, plus (row, col) itself when any
// such cell exists. An empty or conflict-free cell yields no coordinates.
func ConflictsOf(b *types.Board, row, col int) []types.CellCoord {
	v := b.At(row, col)
	if v == types.Empty {
		return nil
	}

	var seen [types.CellCount]bool
	conflicts := make([]types.CellCoord, 0, 4)
	add := func(r, c int) {
		pos := types.Index(r, c)
		if !seen[pos] {
			seen[pos] = true
			conflicts = append(conflicts, types.CellCoord{Row: r, Col: c})
		}
	}

	for c := 0; c < types.Size; c++ {
		if c != col && b.At(row, c) == v {
			add(row, c)
		}
	}
	for r := 0; r < types.Size; r++ {
		if r != row && b.At(r, col) == v {
			add(r, col)
		}
	}
	br, bc := types.BlockOrigin(row, col)
	for r := br; r < br+types.BoxSize; r++ {
		for c := bc; c < bc+types.BoxSize; c++ {
			if (r != row || c != col) && b.At(r, c) == v {
				add(r, c)
			}
		}
	}

	if len(conflicts) == 0 {
		return nil
	}
	// Include the queried cell so callers can highlight the whole group.
	add(row, col)
	return conflicts
}

// fullMask has one bit set per symbol 1..16.
const fullMask = (1<<types.Size - 1) << 1

// IsSolved reports whether every cell is filled and every row, column,
// and block holds all 16 symbols exactly once.
func IsSolved(b *types.Board) bool {
	for r := 0; r < types.Size; r++ {
		m := 0
		for c := 0; c < types.Size; c++ {
			v := b.At(r, c)
			if v == types.Empty {
				return false
			}
			m |= 1 << v
		}
		if m != fullMask {
			return false
		}
	}

	for c := 0; c < types.Size; c++ {
		m := 0
		for r := 0; r < types.Size; r++ {
			m |= 1 << b.At(r, c)
		}
		if m != fullMask {
			return false
		}
	}

	for br := 0; br < types.Size; br += types.BoxSize {
		for bc := 0; bc < types.Size; bc += types.BoxSize {
			m := 0
			for r := br; r < br+types.BoxSize; r++ {
				for c := bc; c < bc+types.BoxSize; c++ {
					m |= 1 << b.At(r, c)
				}
			}
			if m != fullMask {
				return false
			}
		}
	}

	return true
}
