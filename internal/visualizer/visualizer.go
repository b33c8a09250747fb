// Package visualizer renders hexdoku boards for the terminal.
package visualizer

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"

	"hexdoku_gen_go/internal/types"
)

// Visualizer handles grid visualization.
type Visualizer struct {
	grid *types.Grid
}

func NewVisualizer(grid *types.Grid) *Visualizer {
	return &Visualizer{grid: grid}
}

// Print renders the puzzle with block borders, givens in bold and empty
// cells dimmed.
func (v *Visualizer) Print() {
	printBoard(&v.grid.Puzzle, nil)
}

// PrintSolution renders the full solution, highlighting the cells that
// are hidden in the puzzle.
func (v *Visualizer) PrintSolution() {
	printBoard(&v.grid.Solution, &v.grid.Puzzle)
}

func printBoard(b *types.Board, puzzle *types.Board) {
	printHorizontalBorder()

	for r := 0; r < types.Size; r++ {
		fmt.Print("│ ")
		for c := 0; c < types.Size; c++ {
			cell := string(types.SymbolRune(b.At(r, c)))
			switch {
			case b.At(r, c) == types.Empty:
				fmt.Print(aurora.Faint(cell).String())
			case puzzle != nil && puzzle.At(r, c) == types.Empty:
				// A carved cell, shown from the solution.
				fmt.Print(aurora.Cyan(cell).String())
			default:
				fmt.Print(aurora.Bold(cell).String())
			}
			fmt.Print(" ")

			if (c+1)%types.BoxSize == 0 && c < types.Size-1 {
				fmt.Print("│ ")
			}
		}
		fmt.Println("│")

		if (r+1)%types.BoxSize == 0 && r < types.Size-1 {
			printHorizontalBorder()
		}
	}

	printHorizontalBorder()
}

func printHorizontalBorder() {
	fmt.Print("├")
	for c := 0; c < types.Size; c++ {
		fmt.Print(strings.Repeat("─", 2))
		if (c+1)%types.BoxSize == 0 && c < types.Size-1 {
			fmt.Print("┼")
		}
	}
	fmt.Println("┤")
}
