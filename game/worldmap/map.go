// Package worldmap holds the static tile grid and the movement rules over
// it: tile lookup, move costs, and Chebyshev-distance reachability.
package worldmap

import "fmt"

// Tile is one terrain variant of the grid.
type Tile int

const (
	TileEmpty Tile = iota
	TileCity
	TileForest
	TileMountain
	TileRiver
	TileBridge
	TileRoad
)

var tileNames = map[string]Tile{
	"empty":    TileEmpty,
	"city":     TileCity,
	"forest":   TileForest,
	"mountain": TileMountain,
	"river":    TileRiver,
	"bridge":   TileBridge,
	"road":     TileRoad,
}

// Name returns the tile's data-file name.
func (t Tile) Name() string {
	for name, tile := range tileNames {
		if tile == t {
			return name
		}
	}
	return "empty"
}

// Symbol returns the single-character map glyph for a tile.
func (t Tile) Symbol() string {
	switch t {
	case TileEmpty:
		return "."
	case TileCity:
		return "C"
	case TileForest:
		return "F"
	case TileMountain:
		return "M"
	case TileRiver:
		return "R"
	case TileBridge:
		return "B"
	case TileRoad:
		return "*"
	default:
		return "?"
	}
}

// Coord addresses a grid tile. Origin is top-left; y selects the row.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Map is the immutable tile grid.
type Map struct {
	tiles  [][]Tile
	width  int
	height int
}

// Parse builds a Map from rows of tile names as stored in map.json.
// Rows must be non-empty and rectangular.
func Parse(rows [][]string) (*Map, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("map data is empty")
	}
	width := len(rows[0])
	tiles := make([][]Tile, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("map row %d has %d tiles, want %d", y, len(row), width)
		}
		tiles[y] = make([]Tile, width)
		for x, name := range row {
			tile, ok := tileNames[name]
			if !ok {
				return nil, fmt.Errorf("unknown tile %q at (%d, %d)", name, x, y)
			}
			tiles[y][x] = tile
		}
	}
	return &Map{tiles: tiles, width: width, height: len(rows)}, nil
}

// Width returns the grid width in tiles.
func (m *Map) Width() int { return m.width }

// Height returns the grid height in tiles.
func (m *Map) Height() int { return m.height }

// In reports whether a coordinate lies on the grid.
func (m *Map) In(c Coord) bool {
	return c.X >= 0 && c.X < m.width && c.Y >= 0 && c.Y < m.height
}

// TileAt returns the tile at a coordinate. Off-grid coordinates are empty.
func (m *Map) TileAt(c Coord) Tile {
	if !m.In(c) {
		return TileEmpty
	}
	return m.tiles[c.Y][c.X]
}

// MoveCost returns the move point cost of entering a tile. Mountains cost
// 2, everything else 1. Rivers carry a cost too, but are never reachable.
func MoveCost(t Tile) int {
	if t == TileMountain {
		return 2
	}
	return 1
}

// Chebyshev returns max(|dx|, |dy|) between two coordinates.
func Chebyshev(a, b Coord) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// IsReachable reports whether the player can enter the target tile this
// day. Rivers are never reachable; mountains additionally require at least
// 2 move points; every target must be within Chebyshev range.
func (m *Map) IsReachable(from, to Coord, movePoints int) bool {
	if !m.In(to) {
		return false
	}
	tile := m.TileAt(to)
	if tile == TileRiver {
		return false
	}
	if tile == TileMountain && movePoints < 2 {
		return false
	}
	return Chebyshev(from, to) <= movePoints
}

// FindTile returns the first coordinate, scanning rows top to bottom, whose
// tile satisfies the predicate. ok is false when no tile matches.
func (m *Map) FindTile(pred func(Tile) bool) (Coord, bool) {
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if pred(m.tiles[y][x]) {
				return Coord{X: x, Y: y}, true
			}
		}
	}
	return Coord{}, false
}

// Cities enumerates every city coordinate in scan order.
func (m *Map) Cities() []Coord {
	var cities []Coord
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.tiles[y][x] == TileCity {
				cities = append(cities, Coord{X: x, Y: y})
			}
		}
	}
	return cities
}

// SymbolRows renders the grid as rows of tile glyphs for the map view.
func (m *Map) SymbolRows() []string {
	rows := make([]string, m.height)
	for y := 0; y < m.height; y++ {
		row := make([]byte, m.width)
		for x := 0; x < m.width; x++ {
			row[x] = m.tiles[y][x].Symbol()[0]
		}
		rows[y] = string(row)
	}
	return rows
}
