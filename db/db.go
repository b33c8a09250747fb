// Package db persists generated hexdoku puzzles to PocketBase. The core
// generator never touches storage; this is the collaborator side of the
// library boundary.
package db

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/duke-git/lancet/v2/random"
	"github.com/habibrosyad/pocketbase-go-sdk"
	"github.com/joho/godotenv"

	"hexdoku_gen_go/internal/types"
)

const collection = "hexdokus"

// HexdokuRecord represents a record in the PocketBase database.
type HexdokuRecord struct {
	ID         string `json:"id"`
	Puzzle     string `json:"puzzle"`
	Solution   string `json:"solution"`
	Difficulty string `json:"difficulty"`
	Verified   bool   `json:"verified"`
	Created    string `json:"created"`
	Updated    string `json:"updated"`
}

var client *pocketbase.Client

func init() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Warning: No .env file found")
	}

	url := os.Getenv("POCKETBASE_URL")
	if url == "" {
		url = "https://base.mljr.eu"
	}
	email := os.Getenv("POCKETBASE_EMAIL")
	password := os.Getenv("POCKETBASE_PASSWORD")

	client = pocketbase.NewClient(url,
		pocketbase.WithSuperuserEmailPassword(email, password))
}

// Authenticate tries to authenticate with PocketBase and keeps the
// session fresh in the background.
func Authenticate() error {
	if err := client.Authorize(); err != nil {
		return fmt.Errorf("authentication failed: %v", err)
	}

	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		for range ticker.C {
			if err := client.Authorize(); err != nil {
				fmt.Printf("⚠️ Re-authentication failed: %v\n", err)
			}
		}
	}()
	return nil
}

// NewRecordID returns a fresh 6-character record identifier.
func NewRecordID() string {
	return strings.ToLower(random.RandString(6))
}

// UploadPuzzle stores a generated grid under the given ID.
func UploadPuzzle(id string, grid *types.Grid) (*pocketbase.ResponseCreate, error) {
	if len(id) == 0 || len(id) > 6 {
		return nil, fmt.Errorf("invalid ID: must be 1-6 characters")
	}

	exists, err := PuzzleExists(id)
	if err != nil {
		return nil, fmt.Errorf("failed to check if puzzle exists: %v", err)
	}
	if exists {
		return nil, fmt.Errorf("puzzle with ID %s already exists", id)
	}

	data := map[string]any{
		"id":         id,
		"puzzle":     grid.Puzzle.Encode(),
		"solution":   grid.Solution.Encode(),
		"difficulty": string(grid.Difficulty),
		"verified":   grid.Status.UniquenessVerified,
	}

	record, err := client.Create(collection, data)
	if err != nil {
		return nil, fmt.Errorf("failed to upload puzzle: %v", err)
	}
	return &record, nil
}

// GetPuzzle loads a stored grid by ID.
func GetPuzzle(id string) (*types.Grid, error) {
	record, err := client.One(collection, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load puzzle %s: %v", id, err)
	}
	return gridFromRecord(id, record)
}

// gridFromRecord rebuilds a grid from a stored record, rejecting
// records with missing or malformed board fields.
func gridFromRecord(id string, record map[string]any) (*types.Grid, error) {
	rawPuzzle, ok := record["puzzle"].(string)
	if !ok {
		return nil, fmt.Errorf("corrupt puzzle record %s: missing puzzle field", id)
	}
	puzzle, err := types.DecodeBoard(rawPuzzle)
	if err != nil {
		return nil, fmt.Errorf("corrupt puzzle record %s: %v", id, err)
	}

	rawSolution, ok := record["solution"].(string)
	if !ok {
		return nil, fmt.Errorf("corrupt puzzle record %s: missing solution field", id)
	}
	solution, err := types.DecodeBoard(rawSolution)
	if err != nil {
		return nil, fmt.Errorf("corrupt solution record %s: %v", id, err)
	}

	verified, _ := record["verified"].(bool)
	return &types.Grid{
		Puzzle:     puzzle,
		Solution:   solution,
		Difficulty: types.Difficulty(fmt.Sprintf("%v", record["difficulty"])),
		Status:     types.GenerateStatus{UniquenessVerified: verified},
	}, nil
}

// ListPuzzles pages through stored puzzles with optional filters.
func ListPuzzles(page int, perPage int, filters map[string]string, sortField string, sortOrder string) (*pocketbase.ResponseList[map[string]any], error) {
	var filterRules []string

	if diff, ok := filters["difficulty"]; ok {
		filterRules = append(filterRules, fmt.Sprintf("difficulty = %q", diff))
	}
	if verified, ok := filters["verified"]; ok {
		filterRules = append(filterRules, fmt.Sprintf("verified = %s", verified))
	}

	sort := sortField
	if sortOrder == "desc" {
		sort = "-" + sortField
	}

	params := pocketbase.ParamsList{
		Page:    page,
		Size:    perPage,
		Sort:    sort,
		Filters: strings.Join(filterRules, " && "),
	}

	result, err := client.List(collection, params)
	return &result, err
}

// PuzzleExists checks whether a record with this ID is already stored.
func PuzzleExists(id string) (bool, error) {
	_, err := client.One(collection, id)
	if err != nil {
		if strings.Contains(err.Error(), "404") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
