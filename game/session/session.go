// Package session runs the single-player simulation: it owns the player,
// the world clock, move points, the per-city stocks, and the message log,
// and applies the move / end-day / trade / event transitions atomically.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/ireantrader/server/game/calendar"
	"github.com/ireantrader/server/game/event"
	"github.com/ireantrader/server/game/player"
	"github.com/ireantrader/server/game/stock"
	"github.com/ireantrader/server/game/trade"
	"github.com/ireantrader/server/game/worldmap"
	"github.com/ireantrader/server/model"
	"github.com/ireantrader/server/resource"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrOutOfRange   = errors.New("cannot move there, out of range")
	ErrEventPending = errors.New("an event awaits resolution")
	ErrNotInCity    = errors.New("you are not in a city")
	ErrNoSavedData  = errors.New("no saved game data found")
)

// Session is the running simulation. All transitions lock; shared state is
// only ever mutated by the single active transition.
type Session struct {
	mu  sync.Mutex
	log *zap.Logger
	db  *gorm.DB
	rng *rand.Rand

	worldMap *worldmap.Map
	cities   []worldmap.Coord
	gen      *stock.Generator
	events   *event.Engine

	player     *player.Character
	clock      calendar.WorldClock
	pos        worldmap.Coord
	movePoints int
	stocks     []stock.CityStock
	messages   []string
}

// New starts a fresh session at the first city on the map with a full
// day's move points and freshly generated city stocks.
func New(p *player.Character, m *worldmap.Map, catalogs *resource.Loader, db *gorm.DB, rng *rand.Rand, log *zap.Logger) (*Session, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	start, ok := m.FindTile(func(t worldmap.Tile) bool { return t == worldmap.TileCity })
	if !ok {
		return nil, fmt.Errorf("map has no city to start at")
	}
	s := &Session{
		log:      log,
		db:       db,
		rng:      rng,
		worldMap: m,
		cities:   m.Cities(),
		gen:      stock.NewGenerator(catalogs.Goods, rng),
		events:   event.NewEngine(catalogs.Events, rng),
		player:   p,
		clock:    calendar.NewWorldClock(),
		pos:      start,
	}
	s.movePoints = p.MovePoints()
	s.stocks = s.gen.Generate(s.cities)
	return s, nil
}

// Player returns the session's player character.
func (s *Session) Player() *player.Character {
	return s.player
}

// Map returns the session's world map.
func (s *Session) Map() *worldmap.Map {
	return s.worldMap
}

func (s *Session) say(line string) {
	s.messages = append(s.messages, line)
}

// blocked reports whether a pending event blocks day-advancing actions.
func (s *Session) blocked() bool {
	return s.events.State() == event.Offered
}

// cityIndex returns the index of the city at the player's position, or -1.
func (s *Session) cityIndex() int {
	for i, c := range s.cities {
		if c == s.pos {
			return i
		}
	}
	return -1
}

// Move handles a tile click. Clicking the occupied tile is a no-op with
// move points left and a forced rest without; any unreachable target is
// rejected with no state change.
func (s *Session) Move(x, y int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.blocked() {
		s.say("You must deal with what is in front of you first.")
		return ErrEventPending
	}

	target := worldmap.Coord{X: x, Y: y}
	if target == s.pos {
		if s.movePoints > 0 {
			s.say("You are already here.")
			return nil
		}
		s.say("Too tired to go on, you make camp.")
		s.endDay()
		return nil
	}

	if !s.worldMap.IsReachable(s.pos, target, s.movePoints) {
		s.say(fmt.Sprintf("Cannot move to (%d, %d), out of range.", x, y))
		return ErrOutOfRange
	}

	tile := s.worldMap.TileAt(target)
	s.pos = target
	s.movePoints -= worldmap.MoveCost(tile)
	s.say(fmt.Sprintf("Moved to (%d, %d).", x, y))
	if tile == worldmap.TileCity {
		s.say("You arrive at the city gates.")
	}
	s.log.Debug("player moved",
		zap.Int("x", x), zap.Int("y", y),
		zap.Int("move_points", s.movePoints),
	)
	return nil
}

// EndDay finishes the day: the event engine rolls first, then the
// calendar advances, move points reset, and a month boundary regenerates
// every city's stock.
func (s *Session) EndDay() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.blocked() {
		s.say("You must deal with what is in front of you first.")
		return ErrEventPending
	}
	s.endDay()
	return nil
}

func (s *Session) endDay() {
	perception := s.player.Stats[player.StatPerception]
	if ev := s.events.Offer(perception); ev != nil {
		s.say(ev.Description)
	}

	monthWrapped := s.clock.Advance()
	s.movePoints = s.player.MovePoints()
	s.say("Day ended.")

	if monthWrapped {
		s.stocks = s.gen.Generate(s.cities)
		s.say("A new month begins; the city markets have restocked.")
	}

	s.log.Info("day ended",
		zap.Int("days", s.clock.DaysElapsed),
		zap.Int("day_of_month", s.clock.DayOfMonth),
		zap.Bool("month_wrapped", monthWrapped),
		zap.Bool("event_pending", s.blocked()),
	)
}

// PendingEvent returns the offered event awaiting resolution, or nil.
func (s *Session) PendingEvent() *resource.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.Pending()
}

// ResolveEvent runs the chosen solution's stat check and applies the
// outcome. Movement and day advancement unblock afterwards.
func (s *Session) ResolveEvent(solution int) (*event.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.events.Resolve(s.player, solution)
	if err != nil {
		if errors.Is(err, event.ErrUnknownStat) {
			s.say("You have no way to attempt that.")
		}
		return nil, err
	}
	s.say(res.Narration)
	for _, line := range res.Outcomes {
		s.say(line)
	}
	return res, nil
}

// CityStock returns the stock list of the city the player stands in.
func (s *Session) CityStock() (stock.CityStock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.cityIndex()
	if idx < 0 {
		return nil, ErrNotInCity
	}
	return s.stocks[idx], nil
}

// Buy purchases goods from the current city.
func (s *Session) Buy(goodID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.blocked() {
		return ErrEventPending
	}
	idx := s.cityIndex()
	if idx < 0 {
		return ErrNotInCity
	}
	msg, err := trade.Buy(s.player, s.stocks[idx], goodID, qty)
	if err != nil {
		s.say(err.Error())
		return err
	}
	s.say(msg)
	return nil
}

// Sell sells owned goods to the current city.
func (s *Session) Sell(goodID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.blocked() {
		return ErrEventPending
	}
	idx := s.cityIndex()
	if idx < 0 {
		return ErrNotInCity
	}
	msg, err := trade.Sell(s.player, s.stocks[idx], goodID, qty)
	if err != nil {
		s.say(err.Error())
		return err
	}
	s.say(msg)
	return nil
}

// saveData is the serialized game snapshot written to the game slot.
type saveData struct {
	PlayerData      *player.Character `json:"playerData"`
	CurrentPosition worldmap.Coord    `json:"currentPosition"`
	Days            int               `json:"days"`
	DayOfMonth      int               `json:"dayOfMonth"`
	MovePoints      int               `json:"movePoints"`
	PlayerInventory []*player.Item    `json:"playerInventory"`
	PlayerGold      int               `json:"playerGold"`
}

// Save serializes the game state into the game slot of the store.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(saveData{
		PlayerData:      s.player,
		CurrentPosition: s.pos,
		Days:            s.clock.DaysElapsed,
		DayOfMonth:      s.clock.DayOfMonth,
		MovePoints:      s.movePoints,
		PlayerInventory: s.player.Inventory,
		PlayerGold:      s.player.Gold,
	})
	if err != nil {
		return err
	}
	if err := model.PutSlot(s.db, model.SlotGame, payload); err != nil {
		return err
	}
	s.say("Game saved.")
	return nil
}

// Load restores the game slot. An absent slot is a no-op beyond the
// user-visible message. Saved snapshots carry no city stocks, so every
// city is restocked for the restored month.
func (s *Session) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, ok, err := model.GetSlot(s.db, model.SlotGame)
	if err != nil {
		return err
	}
	if !ok {
		s.say("No saved game data found.")
		return ErrNoSavedData
	}

	var data saveData
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("saved game is corrupt: %w", err)
	}
	if data.PlayerData == nil {
		return fmt.Errorf("saved game is corrupt: no player data")
	}
	data.PlayerData.Inventory = data.PlayerInventory
	data.PlayerData.Gold = data.PlayerGold
	if err := data.PlayerData.Validate(); err != nil {
		return fmt.Errorf("saved game is corrupt: %w", err)
	}
	if data.DayOfMonth < 1 || data.DayOfMonth > calendar.DaysInMonth {
		return fmt.Errorf("saved game is corrupt: day of month %d", data.DayOfMonth)
	}

	s.player = data.PlayerData
	s.pos = data.CurrentPosition
	s.clock = calendar.WorldClock{DaysElapsed: data.Days, DayOfMonth: data.DayOfMonth}
	s.movePoints = data.MovePoints
	s.stocks = s.gen.Generate(s.cities)
	s.say("Game loaded.")
	return nil
}
