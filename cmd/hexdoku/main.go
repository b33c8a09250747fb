package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hexdoku_gen_go/db"
	"hexdoku_gen_go/internal/generator"
	"hexdoku_gen_go/internal/hint"
	"hexdoku_gen_go/internal/types"
	"hexdoku_gen_go/internal/visualizer"
)

var (
	difficultyName string
	count          int
	seed           int64
	timeout        time.Duration
	showSolution   bool
	upload         bool
)

func main() {
	command := &cobra.Command{
		Use:   "hexdoku",
		Short: "16x16 hexadecimal sudoku generator",
	}

	generateCommand := &cobra.Command{
		Use:   "generate",
		Short: "Generate puzzles with verified-unique completions",
		Run:   runGenerate,
	}
	generateCommand.Flags().StringVarP(&difficultyName, "difficulty", "d", "medium", "easy, medium, hard or test")
	generateCommand.Flags().IntVarP(&count, "count", "n", 1, "number of puzzles to generate")
	generateCommand.Flags().Int64VarP(&seed, "seed", "s", 0, "random seed, 0 picks one from the clock")
	generateCommand.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "per-puzzle generation deadline")
	generateCommand.Flags().BoolVar(&showSolution, "solution", false, "also print the solution")
	generateCommand.Flags().BoolVar(&upload, "upload", false, "store generated puzzles in PocketBase")
	command.AddCommand(generateCommand)

	if err := command.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func runGenerate(cmd *cobra.Command, args []string) {
	difficulty, err := types.ParseDifficulty(difficultyName)
	if err != nil {
		logrus.Fatal(err)
	}

	if upload {
		if err := db.Authenticate(); err != nil {
			logrus.Fatal("connect storage: ", err)
		}
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	gen := generator.New()
	for i := 0; i < count; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		grid, stats, err := gen.Generate(ctx, seed+int64(i), difficulty)
		cancel()
		if err != nil {
			logrus.Fatal("generate puzzle: ", err)
		}

		fmt.Printf("\n━━━ Puzzle %d/%d (%s, %d empty cells) ━━━\n",
			i+1, count, difficulty, grid.Puzzle.EmptyCount())

		viz := visualizer.NewVisualizer(grid)
		viz.Print()
		if showSolution {
			fmt.Println("\nSolution:")
			viz.PrintSolution()
		}

		if focus := hint.NextFocusValue(&grid.Puzzle); focus.Value != types.Empty {
			fmt.Printf("Focus value: %c (%d%% placed, %d remaining)\n",
				types.SymbolRune(focus.Value), focus.Percentage, focus.Remaining)
		}

		fmt.Printf("✓ Generated in %s (%d search nodes)\n",
			formatDuration(stats.Duration), stats.Nodes)
		if grid.Status.SolutionDegraded {
			fmt.Println("⚠️ Solution came from the degraded fallback path; retry with another seed")
		}
		if !grid.Status.UniquenessVerified {
			fmt.Println("⚠️ Uniqueness not verified for this puzzle")
		}

		if upload {
			id := db.NewRecordID()
			if _, err := db.UploadPuzzle(id, grid); err != nil {
				logrus.Error("upload puzzle: ", err)
				continue
			}
			fmt.Printf("✓ Stored as %s\n", id)
		}
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
