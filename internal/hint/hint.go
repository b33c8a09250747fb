// Package hint derives per-symbol fill progress from a board, for
// optional "focus on this value next" display.
package hint

import (
	"math"

	"hexdoku_gen_go/internal/types"
)

// Progress is the fill state of one symbol across the board.
type Progress struct {
	Filled     int     `json:"filled"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Focus names the symbol closest to completion. Value is types.Empty
// when every symbol is done.
type Focus struct {
	Value      uint8 `json:"value"`
	Percentage int   `json:"percentage"`
	Remaining  int   `json:"remaining"`
}

// CompletionStats counts each symbol's occurrences on the board. A
// symbol is complete at 16, one per row.
func CompletionStats(b *types.Board) map[uint8]Progress {
	counts := make(map[uint8]int, types.Size)
	for pos := 0; pos < types.CellCount; pos++ {
		if b[pos] != types.Empty {
			counts[b[pos]]++
		}
	}

	stats := make(map[uint8]Progress, types.Size)
	for v := uint8(1); v <= types.Size; v++ {
		filled := counts[v]
		stats[v] = Progress{
			Filled:     filled,
			Total:      types.Size,
			Percentage: 100 * float64(filled) / float64(types.Size),
		}
	}
	return stats
}

// NextFocusValue picks the symbol with the strictly highest completion
// percentage below 100, scanning symbols in order so ties keep the
// first one encountered.
func NextFocusValue(b *types.Board) Focus {
	stats := CompletionStats(b)

	focus := Focus{Value: types.Empty}
	best := -1.0
	for v := uint8(1); v <= types.Size; v++ {
		p := stats[v]
		if p.Percentage >= 100 {
			continue
		}
		if p.Percentage > best {
			best = p.Percentage
			focus = Focus{
				Value:      v,
				Percentage: int(math.Round(p.Percentage)),
				Remaining:  p.Total - p.Filled,
			}
		}
	}
	return focus
}
