package session

import (
	"github.com/ireantrader/server/game/calendar"
	"github.com/ireantrader/server/game/player"
	"github.com/ireantrader/server/game/stock"
	"github.com/ireantrader/server/game/worldmap"
)

// Snapshot is the engine's outward surface after each transition. The
// presentation layer renders it; the engine never calls back out.
type Snapshot struct {
	Position     worldmap.Coord  `json:"position"`
	MovePoints   int             `json:"movePoints"`
	Days         int             `json:"days"`
	DayOfMonth   int             `json:"dayOfMonth"`
	Date         string          `json:"date"`
	Gold         int             `json:"playerGold"`
	Inventory    []*player.Item  `json:"playerInventory"`
	InCity       bool            `json:"inCity"`
	CityStock    stock.CityStock `json:"currentCityStock,omitempty"`
	EventPending bool            `json:"eventPending"`
	Messages     []string        `json:"messages"`
}

// Snapshot returns the current simulation state for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	date := calendar.DateFor(s.clock.DaysElapsed)
	// Day of month is tracked on the clock, not derived from the date.
	date.Day = s.clock.DayOfMonth

	snap := Snapshot{
		Position:     s.pos,
		MovePoints:   s.movePoints,
		Days:         s.clock.DaysElapsed,
		DayOfMonth:   s.clock.DayOfMonth,
		Date:         date.String(),
		Gold:         s.player.Gold,
		Inventory:    append([]*player.Item(nil), s.player.Inventory...),
		EventPending: s.blocked(),
		Messages:     append([]string(nil), s.messages...),
	}
	if idx := s.cityIndex(); idx >= 0 {
		snap.InCity = true
		snap.CityStock = s.stocks[idx]
	}
	return snap
}

// Viewport is the 7x7 window the map screen renders around the player.
type Viewport struct {
	StartX int `json:"startX"`
	StartY int `json:"startY"`
	EndX   int `json:"endX"`
	EndY   int `json:"endY"`
}

// MapView returns the full symbol grid plus the viewport bounds around
// the player's position.
func (s *Session) MapView() ([]string, Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.worldMap
	vp := Viewport{
		StartX: max(0, s.pos.X-3),
		StartY: max(0, s.pos.Y-3),
		EndX:   min(m.Width()-1, s.pos.X+3),
		EndY:   min(m.Height()-1, s.pos.Y+3),
	}
	return m.SymbolRows(), vp
}
