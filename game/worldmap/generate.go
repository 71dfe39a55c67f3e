// Overworld generation from layered simplex noise, used when no map file
// is configured. A shipped map file always takes precedence.
package worldmap

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds map generation parameters.
type GenConfig struct {
	Width    int
	Height   int
	Seed     int64 // 0 = random
	Cities   int
	ForestLvl   float64 // noise threshold for forest
	MountainLvl float64 // noise threshold for mountains
}

// DefaultGenConfig returns a map about the size of the shipped one.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:       24,
		Height:      16,
		Cities:      4,
		ForestLvl:   0.62,
		MountainLvl: 0.78,
	}
}

// Generate builds a playable overworld: noise-derived terrain, one river
// crossed by a bridge, and cities on open ground joined by a road.
func Generate(cfg GenConfig) *Map {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(seed))
	noise := opensimplex.NewNormalized(seed)

	tiles := make([][]Tile, cfg.Height)
	for y := range tiles {
		tiles[y] = make([]Tile, cfg.Width)
		for x := range tiles[y] {
			// Two octaves keep terrain patches a few tiles wide.
			v := noise.Eval2(float64(x)*0.18, float64(y)*0.18)*0.7 +
				noise.Eval2(float64(x)*0.45, float64(y)*0.45)*0.3
			switch {
			case v >= cfg.MountainLvl:
				tiles[y][x] = TileMountain
			case v >= cfg.ForestLvl:
				tiles[y][x] = TileForest
			default:
				tiles[y][x] = TileEmpty
			}
		}
	}

	m := &Map{tiles: tiles, width: cfg.Width, height: cfg.Height}
	carveRiver(m, rng)
	placeCities(m, rng, cfg.Cities)
	return m
}

// carveRiver cuts a top-to-bottom river that drifts with the terrain and
// bridges it at one random crossing.
func carveRiver(m *Map, rng *rand.Rand) {
	x := m.width/3 + rng.Intn(m.width/3)
	bridgeY := 1 + rng.Intn(m.height-2)
	for y := 0; y < m.height; y++ {
		if x < 1 {
			x = 1
		}
		if x > m.width-2 {
			x = m.width - 2
		}
		if y == bridgeY {
			m.tiles[y][x] = TileBridge
		} else {
			m.tiles[y][x] = TileRiver
		}
		x += rng.Intn(3) - 1
	}
}

// placeCities drops cities on open ground, keeping them apart, then lays a
// road between the first pair.
func placeCities(m *Map, rng *rand.Rand, count int) {
	var placed []Coord
	for attempts := 0; len(placed) < count && attempts < 500; attempts++ {
		c := Coord{X: rng.Intn(m.width), Y: rng.Intn(m.height)}
		if m.tiles[c.Y][c.X] != TileEmpty {
			continue
		}
		tooClose := false
		for _, p := range placed {
			if Chebyshev(c, p) < 4 {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}
		m.tiles[c.Y][c.X] = TileCity
		placed = append(placed, c)
	}
	if len(placed) >= 2 {
		layRoad(m, placed[0], placed[1])
	}
}

// layRoad walks tile by tile toward the destination, converting open
// ground to road. Rivers keep their course; the bridge is the crossing.
func layRoad(m *Map, from, to Coord) {
	c := from
	for c != to {
		if c.X < to.X {
			c.X++
		} else if c.X > to.X {
			c.X--
		}
		if c.Y < to.Y {
			c.Y++
		} else if c.Y > to.Y {
			c.Y--
		}
		if m.tiles[c.Y][c.X] == TileEmpty || m.tiles[c.Y][c.X] == TileForest {
			m.tiles[c.Y][c.X] = TileRoad
		}
	}
}
