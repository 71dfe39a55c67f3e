// Package player defines the runtime player character: the finalized
// creation record, the eight ability stats, gold, and the owned inventory.
package player

import (
	"fmt"
)

// The eight ability stats.
const (
	StatStrength     = "Strength"
	StatCharm        = "Charm"
	StatCunning      = "Cunning"
	StatIntelligence = "Intelligence"
	StatDexterity    = "Dexterity"
	StatEndurance    = "Endurance"
	StatPerception   = "Perception"
	StatLuck         = "Luck"
)

// AllStats lists every stat a character record must carry.
var AllStats = []string{
	StatStrength, StatCharm, StatCunning, StatIntelligence,
	StatDexterity, StatEndurance, StatPerception, StatLuck,
}

// Stats maps stat name to value.
type Stats map[string]int

// Get returns the value of a named stat. ok is false when the record does
// not carry the stat, which callers report as an unknown stat reference.
func (s Stats) Get(name string) (int, bool) {
	v, ok := s[name]
	return v, ok
}

// Item is one line of the player's inventory: a good plus the price it was
// stocked at and the quantity owned.
type Item struct {
	GoodID      string `json:"id"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Price       int    `json:"price"`
	Qty         int    `json:"amountAvailable"`
}

// Character is the finalized player character. Identity fields and stats
// are immutable after creation except through random event outcomes; gold
// and inventory mutate through the trade and event engines.
type Character struct {
	Race       string  `json:"race"`
	Gender     string  `json:"gender"`
	Background string  `json:"background"`
	Name       string  `json:"name"`
	Language   string  `json:"language"`
	Alignment  string  `json:"alignment"`
	Stats      Stats   `json:"stats"`
	Gold       int     `json:"gold"`
	Inventory  []*Item `json:"inventory"`
}

// Validate checks a character record loaded from the store or submitted at
// finalization. A schema mismatch is an explicit error, never silently
// propagated zero values.
func (c *Character) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("character has no name")
	}
	if c.Stats == nil {
		return fmt.Errorf("character has no stats")
	}
	for _, name := range AllStats {
		v, ok := c.Stats[name]
		if !ok {
			return fmt.Errorf("character record is missing stat %q", name)
		}
		if v < 1 {
			return fmt.Errorf("stat %q must be at least 1, got %d", name, v)
		}
	}
	if c.Gold < 0 {
		return fmt.Errorf("gold must not be negative, got %d", c.Gold)
	}
	return nil
}

// MovePoints derives the per-day movement budget: ceil(Endurance / 2).
func (c *Character) MovePoints() int {
	end := c.Stats[StatEndurance]
	return (end + 1) / 2
}

// FindItem returns the inventory line for a good, or nil.
func (c *Character) FindItem(goodID string) *Item {
	for _, it := range c.Inventory {
		if it.GoodID == goodID {
			return it
		}
	}
	return nil
}

// RemoveItem deletes the inventory line for a good, preserving order.
func (c *Character) RemoveItem(goodID string) {
	for i, it := range c.Inventory {
		if it.GoodID == goodID {
			c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
			return
		}
	}
}
