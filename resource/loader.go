// Package resource loads the static game catalogs: the good definitions,
// the random event catalog, and the tile map. Catalogs are read once at
// startup and treated as immutable configuration data.
package resource

import (
	"encoding/json"
	"fmt"
	"os"
)

// Good categories as they appear in goods.json.
const (
	CategoryFoodstuffs  = "Foodstuffs"
	CategoryBasic       = "Basic Goods"
	CategoryAdventuring = "Adventuring Goods"
	CategorySpiritual   = "Spiritual Goods"
	CategoryMagical     = "Magical Goods"
	CategoryExotic      = "Exotic Goods"
)

// Good is one entry of the master good catalog.
type Good struct {
	ID           string `json:"id"`
	Description  string `json:"description"`
	Type         string `json:"type"`
	LowestPrice  int    `json:"lowest_price"`
	HighestPrice int    `json:"highest_price"`
}

// Solution is one way a player may resolve a random event.
type Solution struct {
	Text string `json:"solutionText"`
	Stat string `json:"solutionStat"`
	DC   int    `json:"solutionDC"`
}

// Outcome targets.
const (
	AffectsGold      = "Gold"
	AffectsInventory = "Inventory"
)

// Event is one entry of the random event catalog.
type Event struct {
	Description    string     `json:"description"`
	SuccessOutcome string     `json:"successOutcome"`
	FailureOutcome string     `json:"failureOutcome"`
	Positive       bool       `json:"positiveEvent"`
	Affects        string     `json:"resultAffects"`
	Amount         int        `json:"resultAmount"`
	Solutions      []Solution `json:"solutions"`
}

// Loader holds all loaded catalogs.
type Loader struct {
	Goods   []Good
	Events  []Event
	MapRows [][]string // tile names, row-major; empty if no map file configured

	goodsPath  string
	eventsPath string
	mapPath    string
}

// NewLoader creates a Loader for the given catalog file paths.
// mapPath may be empty; the caller then generates a map instead.
func NewLoader(goodsPath, eventsPath, mapPath string) *Loader {
	return &Loader{goodsPath: goodsPath, eventsPath: eventsPath, mapPath: mapPath}
}

// Load reads and validates every configured catalog file.
func (l *Loader) Load() error {
	if err := readJSON(l.goodsPath, &l.Goods); err != nil {
		return fmt.Errorf("goods catalog: %w", err)
	}
	if err := readJSON(l.eventsPath, &l.Events); err != nil {
		return fmt.Errorf("event catalog: %w", err)
	}
	if l.mapPath != "" {
		if err := readJSON(l.mapPath, &l.MapRows); err != nil {
			return fmt.Errorf("map data: %w", err)
		}
	}
	return l.Validate()
}

// Validate checks catalog integrity. Malformed catalog data is a startup
// precondition failure; the engine never sees an invalid catalog.
func (l *Loader) Validate() error {
	if len(l.Goods) == 0 {
		return fmt.Errorf("goods catalog is empty")
	}
	seen := make(map[string]bool, len(l.Goods))
	for i, g := range l.Goods {
		if g.ID == "" {
			return fmt.Errorf("good %d has no id", i)
		}
		if seen[g.ID] {
			return fmt.Errorf("duplicate good id %q", g.ID)
		}
		seen[g.ID] = true
		if g.LowestPrice < 0 || g.HighestPrice < g.LowestPrice {
			return fmt.Errorf("good %q: bad price range [%d, %d]", g.ID, g.LowestPrice, g.HighestPrice)
		}
	}
	for i, ev := range l.Events {
		if ev.Description == "" {
			return fmt.Errorf("event %d has no description", i)
		}
		if ev.Affects != AffectsGold && ev.Affects != AffectsInventory {
			return fmt.Errorf("event %d: unknown target %q", i, ev.Affects)
		}
		if ev.Amount < 0 {
			return fmt.Errorf("event %d: negative amount %d", i, ev.Amount)
		}
		if len(ev.Solutions) == 0 {
			return fmt.Errorf("event %d has no solutions", i)
		}
		for j, sol := range ev.Solutions {
			if sol.Stat == "" || sol.DC < 1 {
				return fmt.Errorf("event %d solution %d: bad stat check", i, j)
			}
		}
	}
	return nil
}

// GoodByID returns the catalog entry with the given id, or nil.
func (l *Loader) GoodByID(id string) *Good {
	for i := range l.Goods {
		if l.Goods[i].ID == id {
			return &l.Goods[i]
		}
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
