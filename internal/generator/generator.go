// Package generator builds solved 16x16 hexdoku boards and carves them
// into graded puzzles with (near-)guaranteed unique completions.
package generator

import (
	"context"
	"math/rand"
	"time"

	"hexdoku_gen_go/internal/solver"
	"hexdoku_gen_go/internal/types"
)

// HexdokuGenerator produces puzzle/solution pairs for a difficulty.
type HexdokuGenerator interface {
	Generate(ctx context.Context, seed int64, d types.Difficulty) (*types.Grid, solver.Stats, error)
}

// Generator implements HexdokuGenerator with the carving pipeline.
// The zero value is ready to use.
type Generator struct{}

func New() *Generator { return &Generator{} }

// Generate builds a fresh solution and carves it down to the
// difficulty's empty target. The same seed reproduces the same grid.
// Generation is synchronous and can take hundreds of milliseconds;
// latency-sensitive callers should run it off their interaction path.
// The only error is context cancellation; degradations are reported in
// the grid's Status instead.
func (g *Generator) Generate(ctx context.Context, seed int64, d types.Difficulty) (*types.Grid, solver.Stats, error) {
	start := time.Now()
	rng := rand.New(rand.NewSource(seed))

	solution, degraded, err := BuildSolution(ctx, rng)
	if err != nil {
		return nil, solver.Stats{Duration: time.Since(start)}, err
	}

	puzzle, verified, st, err := carve(ctx, rng, solution, d)
	if err != nil {
		return nil, solver.Stats{Nodes: st.Nodes, Duration: time.Since(start)}, err
	}

	grid := &types.Grid{
		Puzzle:     puzzle,
		Solution:   solution,
		Difficulty: d,
		Status: types.GenerateStatus{
			SolutionDegraded:   degraded,
			UniquenessVerified: verified,
		},
	}
	return grid, solver.Stats{Nodes: st.Nodes, Duration: time.Since(start)}, nil
}
