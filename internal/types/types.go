package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// Size is the board edge length and the number of symbols.
	Size = 16
	// BoxSize is the edge length of one aligned block.
	BoxSize = 4
	// CellCount is the total number of cells on a board.
	CellCount = Size * Size

	// Empty marks an unfilled cell. Filled cells hold 1..Size,
	// displayed as the hex digits 0..F.
	Empty uint8 = 0
)

// symbolRunes maps a filled cell value v to symbolRunes[v-1].
const symbolRunes = "0123456789ABCDEF"

// emptyRune renders an empty cell in the string encoding.
const emptyRune = '.'

// Board is a flat row-major 16x16 grid. Index with r*Size+c.
// It is a value type; assignment copies the whole board.
type Board [CellCount]uint8

// CellCoord identifies a cell on the board.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Index converts (row, col) to a flat cell index.
func Index(row, col int) int { return row*Size + col }

// BlockOrigin returns the top-left cell of the block containing (row, col).
func BlockOrigin(row, col int) (int, int) {
	return (row / BoxSize) * BoxSize, (col / BoxSize) * BoxSize
}

// At returns the value at (row, col).
func (b *Board) At(row, col int) uint8 { return b[Index(row, col)] }

// Set places v at (row, col).
func (b *Board) Set(row, col int, v uint8) { b[Index(row, col)] = v }

// FirstEmpty returns the flat index of the first empty cell in
// row-major order.
func (b *Board) FirstEmpty() (int, bool) {
	for pos := 0; pos < CellCount; pos++ {
		if b[pos] == Empty {
			return pos, true
		}
	}
	return 0, false
}

// EmptyCount returns the number of unfilled cells.
func (b *Board) EmptyCount() int {
	n := 0
	for pos := 0; pos < CellCount; pos++ {
		if b[pos] == Empty {
			n++
		}
	}
	return n
}

// FilledCount returns the number of filled cells.
func (b *Board) FilledCount() int { return CellCount - b.EmptyCount() }

// SymbolRune returns the display rune for a cell value.
func SymbolRune(v uint8) rune {
	if v == Empty {
		return emptyRune
	}
	return rune(symbolRunes[v-1])
}

// Encode renders the board as a 256-character string of hex digits,
// empty cells as '.'. Value receiver so it can be called on any board
// expression, like MarshalJSON.
func (b Board) Encode() string {
	var sb strings.Builder
	sb.Grow(CellCount)
	for pos := 0; pos < CellCount; pos++ {
		sb.WriteRune(SymbolRune(b[pos]))
	}
	return sb.String()
}

// DecodeBoard parses the string form produced by Encode.
func DecodeBoard(s string) (Board, error) {
	var b Board
	if len(s) != CellCount {
		return b, fmt.Errorf("board encoding must be %d characters, got %d", CellCount, len(s))
	}
	for pos := 0; pos < CellCount; pos++ {
		ch := s[pos]
		if ch == emptyRune {
			continue
		}
		idx := strings.IndexByte(symbolRunes, ch)
		if idx < 0 {
			return b, fmt.Errorf("invalid symbol %q at cell %d", ch, pos)
		}
		b[pos] = uint8(idx + 1)
	}
	return b, nil
}

// MarshalJSON encodes the board as its compact string form.
func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Encode())
}

// UnmarshalJSON accepts the compact string form.
func (b *Board) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	decoded, err := DecodeBoard(s)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

// Difficulty selects how many cells are carved out of a solution.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	// Test clears exactly two cells with no uniqueness verification.
	// Diagnostic mode only, not gameplay-calibrated.
	Test Difficulty = "test"
)

// EmptyTarget returns the number of cells to clear for the difficulty.
func (d Difficulty) EmptyTarget() int {
	switch d {
	case Easy:
		return 60
	case Medium:
		return 100
	case Hard:
		return 140
	case Test:
		return 2
	}
	return 60
}

// ParseDifficulty validates a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(s)); d {
	case Easy, Medium, Hard, Test:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// GenerateStatus qualifies a generated grid. The generator never fails
// outright; degradations are reported here instead.
type GenerateStatus struct {
	// SolutionDegraded is set when the deterministic fallback builder
	// exhausted its repair passes with conflicts left. Callers should
	// discard the grid and retry generation.
	SolutionDegraded bool `json:"solutionDegraded,omitempty"`
	// UniquenessVerified is set when the final exact solution count
	// confirmed exactly one completion. Test-mode grids and grids that
	// exhausted restoration repair leave it false.
	UniquenessVerified bool `json:"uniquenessVerified"`
}

// Grid is a generated puzzle together with its full solution.
// Both boards are immutable once returned; play happens on a caller-held
// working copy.
type Grid struct {
	Puzzle     Board          `json:"grid"`
	Solution   Board          `json:"solution"`
	Difficulty Difficulty     `json:"difficulty"`
	Status     GenerateStatus `json:"status"`
}

// ToJSON converts the grid to JSON bytes.
func (g *Grid) ToJSON() ([]byte, error) {
	return json.Marshal(g)
}

// FromJSON creates a Grid from JSON bytes.
func FromJSON(data []byte) (*Grid, error) {
	var grid Grid
	err := json.Unmarshal(data, &grid)
	return &grid, err
}
