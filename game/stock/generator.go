// Package stock generates per-city inventories from the master good
// catalog. Stock lists are regenerated wholesale each in-game month and
// mutated only by trade depletion in between.
package stock

import (
	"math"
	"math/rand"

	"github.com/ireantrader/server/game/worldmap"
	"github.com/ireantrader/server/resource"
)

// Rarity is assigned per generation pass, never persisted on the catalog.
type Rarity int

const (
	Common Rarity = iota
	Rare
)

// rareChance is the probability a good rolls Rare in a generation pass.
const rareChance = 0.3

// Entry is one tradeable good instance in a city's stock list: a catalog
// good with a generated price and quantity. Available is fractional
// because purchases deplete stock by half the bought quantity.
type Entry struct {
	Good      resource.Good `json:"good"`
	Rarity    Rarity        `json:"-"`
	Price     int           `json:"price"`
	Available float64       `json:"amountAvailable"`
}

// CityStock is the stock list of a single city.
type CityStock []*Entry

// Find returns the entry for a good id, or nil.
func (cs CityStock) Find(goodID string) *Entry {
	for _, e := range cs {
		if e.Good.ID == goodID {
			return e
		}
	}
	return nil
}

// Generator produces city stock lists from the catalog with an injected
// random source, so tests can pin outcomes.
type Generator struct {
	catalog []resource.Good
	rng     *rand.Rand
}

// NewGenerator creates a Generator over the good catalog.
func NewGenerator(catalog []resource.Good, rng *rand.Rand) *Generator {
	return &Generator{catalog: catalog, rng: rng}
}

// Generate produces one independent stock list per city.
func (g *Generator) Generate(cities []worldmap.Coord) []CityStock {
	stocks := make([]CityStock, len(cities))
	for i := range cities {
		stocks[i] = g.generateCity()
	}
	return stocks
}

type rolled struct {
	good   resource.Good
	rarity Rarity
}

func (g *Generator) generateCity() CityStock {
	// Roll a rarity for every catalog good, then filter by category rule.
	candidates := make([]rolled, 0, len(g.catalog))
	for _, good := range g.catalog {
		r := Common
		if g.rng.Float64() < rareChance {
			r = Rare
		}
		if includeGood(good.Type, r) {
			candidates = append(candidates, rolled{good: good, rarity: r})
		}
	}

	g.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	candidates = ensureRareMagical(candidates)
	candidates = ensureRareAny(candidates)

	entries := make(CityStock, 0, len(candidates))
	for _, c := range candidates {
		entries = append(entries, g.rollEntry(c))
	}
	return entries
}

// includeGood applies the category rule: staples always stock, adventuring
// and spiritual goods only when common, magical and exotic goods only when
// rare. Unrecognized categories stock unconditionally.
func includeGood(category string, r Rarity) bool {
	switch category {
	case resource.CategoryFoodstuffs, resource.CategoryBasic:
		return true
	case resource.CategoryAdventuring, resource.CategorySpiritual:
		return r == Common
	case resource.CategoryMagical, resource.CategoryExotic:
		return r == Rare
	default:
		return true
	}
}

// ensureRareMagical guarantees at least one rare magical or exotic good.
// The guarantee is additive: finding one marks it kept, and every other
// candidate is kept regardless, so the pass never excludes anything.
func ensureRareMagical(candidates []rolled) []rolled {
	found := false
	kept := candidates[:0]
	for _, c := range candidates {
		if !found && c.rarity == Rare &&
			(c.good.Type == resource.CategoryMagical || c.good.Type == resource.CategoryExotic) {
			found = true
		}
		kept = append(kept, c)
	}
	return kept
}

// ensureRareAny guarantees at least one rare good overall, with the same
// additive, keep-everything behavior.
func ensureRareAny(candidates []rolled) []rolled {
	found := false
	kept := candidates[:0]
	for _, c := range candidates {
		if !found && c.rarity == Rare {
			found = true
		}
		kept = append(kept, c)
	}
	return kept
}

// rollEntry prices a candidate and rolls its available quantity, scaled by
// rarity and clamped to at least 1.
func (g *Generator) rollEntry(c rolled) *Entry {
	price := c.good.LowestPrice
	if span := c.good.HighestPrice - c.good.LowestPrice; span > 0 {
		price += g.rng.Intn(span + 1)
	}
	amount := float64(1 + g.rng.Intn(100))
	switch c.rarity {
	case Rare:
		amount = math.Ceil(amount * 0.1)
	case Common:
		amount = math.Ceil(amount * 0.5)
	}
	if amount < 1 {
		amount = 1
	}
	return &Entry{Good: c.good, Rarity: c.rarity, Price: price, Available: amount}
}
