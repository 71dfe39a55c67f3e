package session

import (
	"math/rand"
	"testing"

	"github.com/ireantrader/server/game/calendar"
	"github.com/ireantrader/server/game/player"
	"github.com/ireantrader/server/game/trade"
	"github.com/ireantrader/server/game/worldmap"
	"github.com/ireantrader/server/resource"
	"github.com/ireantrader/server/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// The test grid: start city at (0, 0), a second city at (1, 2), a
// mountain and a river to bounce off.
var testRows = [][]string{
	{"city", "empty", "mountain"},
	{"empty", "empty", "river"},
	{"empty", "city", "empty"},
}

var testGoods = []resource.Good{
	{ID: "bread", Description: "Bread", Type: resource.CategoryFoodstuffs, LowestPrice: 2, HighestPrice: 2},
}

var testEvents = []resource.Event{{
	Description:    "A stranger blocks the road.",
	SuccessOutcome: "You pass unhindered.",
	FailureOutcome: "It costs you.",
	Positive:       true,
	Affects:        resource.AffectsGold,
	Amount:         5,
	Solutions:      []resource.Solution{{Text: "Walk on", Stat: player.StatCharm, DC: 1}},
}}

func testCharacter() *player.Character {
	stats := player.Stats{}
	for _, name := range player.AllStats {
		stats[name] = 1
	}
	stats[player.StatEndurance] = 4 // two move points per day
	return &player.Character{Name: "Aldric", Stats: stats, Gold: 100}
}

func newTestSession(t *testing.T, events []resource.Event, p *player.Character) (*Session, *gorm.DB) {
	t.Helper()
	m, err := worldmap.Parse(testRows)
	require.NoError(t, err)

	db := testutil.SetupTestDB(t)
	catalogs := &resource.Loader{Goods: testGoods, Events: events}
	s, err := New(p, m, catalogs, db, rand.New(rand.NewSource(1)), zap.NewNop())
	require.NoError(t, err)
	return s, db
}

func TestNewStartsAtFirstCity(t *testing.T) {
	s, _ := newTestSession(t, nil, testCharacter())
	snap := s.Snapshot()

	assert.Equal(t, worldmap.Coord{X: 0, Y: 0}, snap.Position)
	assert.Equal(t, 2, snap.MovePoints)
	assert.Equal(t, 0, snap.Days)
	assert.Equal(t, 1, snap.DayOfMonth)
	assert.Equal(t, "1 Winter's Start, 1690", snap.Date)
	assert.Equal(t, 100, snap.Gold)
	assert.True(t, snap.InCity)
	assert.NotEmpty(t, snap.CityStock)
	assert.False(t, snap.EventPending)
}

func TestNewRejectsInvalidCharacter(t *testing.T) {
	m, err := worldmap.Parse(testRows)
	require.NoError(t, err)
	db := testutil.SetupTestDB(t)
	catalogs := &resource.Loader{Goods: testGoods}

	bad := testCharacter()
	bad.Name = ""
	_, err = New(bad, m, catalogs, db, rand.New(rand.NewSource(1)), zap.NewNop())
	assert.Error(t, err)
}

func TestMoveSpendsPoints(t *testing.T) {
	s, _ := newTestSession(t, nil, testCharacter())

	require.NoError(t, s.Move(1, 0))
	snap := s.Snapshot()
	assert.Equal(t, worldmap.Coord{X: 1, Y: 0}, snap.Position)
	assert.Equal(t, 1, snap.MovePoints)
	assert.False(t, snap.InCity)
}

func TestMoveMountainNeedsTwoPoints(t *testing.T) {
	s, _ := newTestSession(t, nil, testCharacter())

	// Burn one point, then the mountain is out of reach.
	require.NoError(t, s.Move(1, 0))
	err := s.Move(2, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)

	snap := s.Snapshot()
	assert.Equal(t, worldmap.Coord{X: 1, Y: 0}, snap.Position, "rejected move must not relocate")
	assert.Equal(t, 1, snap.MovePoints)
}

func TestMoveMountainCostsTwo(t *testing.T) {
	s, _ := newTestSession(t, nil, testCharacter())

	require.NoError(t, s.Move(1, 1))
	require.NoError(t, s.EndDay())
	require.NoError(t, s.Move(2, 0))
	assert.Equal(t, 0, s.Snapshot().MovePoints)
}

func TestMoveRiverNever(t *testing.T) {
	s, _ := newTestSession(t, nil, testCharacter())

	require.NoError(t, s.Move(1, 0))
	assert.ErrorIs(t, s.Move(2, 1), ErrOutOfRange)
}

func TestMoveOwnTile(t *testing.T) {
	s, _ := newTestSession(t, nil, testCharacter())

	// With points left, staying put is a no-op.
	require.NoError(t, s.Move(0, 0))
	assert.Equal(t, 2, s.Snapshot().MovePoints)
	assert.Equal(t, 0, s.Snapshot().Days)

	// Without points, it is a forced rest.
	require.NoError(t, s.Move(1, 0))
	require.NoError(t, s.Move(1, 1))
	require.Equal(t, 0, s.Snapshot().MovePoints)

	require.NoError(t, s.Move(1, 1))
	snap := s.Snapshot()
	assert.Equal(t, 1, snap.Days, "forced rest must advance the day")
	assert.Equal(t, 2, snap.MovePoints)
}

func TestMoveIntoCityAnnouncesArrival(t *testing.T) {
	s, _ := newTestSession(t, nil, testCharacter())

	require.NoError(t, s.Move(1, 1))
	require.NoError(t, s.Move(1, 2))
	snap := s.Snapshot()
	assert.True(t, snap.InCity)
	assert.Contains(t, snap.Messages, "You arrive at the city gates.")
}

func TestEndDayResetsMovePoints(t *testing.T) {
	s, _ := newTestSession(t, nil, testCharacter())

	require.NoError(t, s.Move(1, 0))
	require.NoError(t, s.EndDay())
	snap := s.Snapshot()
	assert.Equal(t, 2, snap.MovePoints)
	assert.Equal(t, 1, snap.Days)
	assert.Equal(t, 2, snap.DayOfMonth)
}

func TestMonthWrapRestocksCities(t *testing.T) {
	s, _ := newTestSession(t, nil, testCharacter())

	cs, err := s.CityStock()
	require.NoError(t, err)
	require.NotEmpty(t, cs)
	cs[0].Available = 0.25

	for i := 0; i < calendar.DaysInMonth; i++ {
		require.NoError(t, s.EndDay())
	}
	snap := s.Snapshot()
	assert.Equal(t, 1, snap.DayOfMonth)
	assert.Equal(t, calendar.DaysInMonth, snap.Days)
	assert.Contains(t, snap.Messages, "A new month begins; the city markets have restocked.")

	fresh, err := s.CityStock()
	require.NoError(t, err)
	for _, e := range fresh {
		assert.GreaterOrEqual(t, e.Available, 1.0, "restocked %s", e.Good.ID)
	}
}

func TestBuyAndSellInCity(t *testing.T) {
	p := testCharacter()
	p.Inventory = []*player.Item{{GoodID: "lantern", Description: "Lantern", Price: 10, Qty: 2}}
	s, _ := newTestSession(t, nil, p)

	// bread is priced 2; discount floors at 1, so the effective cost is 1.
	require.NoError(t, s.Buy("bread", 1))
	assert.Equal(t, 99, s.Snapshot().Gold)

	// The city does not stock lanterns, so it buys them.
	require.NoError(t, s.Sell("lantern", 1))
	assert.Equal(t, 110, s.Snapshot().Gold)

	assert.ErrorIs(t, s.Buy("silk", 1), trade.ErrUnknownGood)
	assert.ErrorIs(t, s.Sell("bread", 1), trade.ErrNotSellableHere)
}

func TestTradeRequiresCity(t *testing.T) {
	s, _ := newTestSession(t, nil, testCharacter())

	require.NoError(t, s.Move(1, 0))
	_, err := s.CityStock()
	assert.ErrorIs(t, err, ErrNotInCity)
	assert.ErrorIs(t, s.Buy("bread", 1), ErrNotInCity)
	assert.ErrorIs(t, s.Sell("bread", 1), ErrNotInCity)
}

func TestPendingEventBlocksDayActions(t *testing.T) {
	s, _ := newTestSession(t, testEvents, testCharacter())

	for i := 0; i < 1000 && s.PendingEvent() == nil; i++ {
		require.NoError(t, s.EndDay())
	}
	require.NotNil(t, s.PendingEvent(), "no event fired in 1000 days")

	assert.ErrorIs(t, s.Move(1, 0), ErrEventPending)
	assert.ErrorIs(t, s.EndDay(), ErrEventPending)
	assert.ErrorIs(t, s.Buy("bread", 1), ErrEventPending)
	assert.ErrorIs(t, s.Sell("bread", 1), ErrEventPending)
	assert.True(t, s.Snapshot().EventPending)

	res, err := s.ResolveEvent(0)
	require.NoError(t, err)
	assert.True(t, res.Success, "DC 1 check cannot fail")
	assert.Nil(t, s.PendingEvent())

	require.NoError(t, s.EndDay())
}

func TestResolveEventWithoutOffer(t *testing.T) {
	s, _ := newTestSession(t, testEvents, testCharacter())
	_, err := s.ResolveEvent(0)
	assert.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	s, _ := newTestSession(t, nil, testCharacter())

	require.NoError(t, s.Move(1, 0))
	require.NoError(t, s.EndDay())
	require.NoError(t, s.Save())

	saved := s.Snapshot()

	require.NoError(t, s.Move(1, 1))
	require.NoError(t, s.EndDay())
	require.NoError(t, s.EndDay())

	require.NoError(t, s.Load())
	restored := s.Snapshot()

	assert.Equal(t, saved.Position, restored.Position)
	assert.Equal(t, saved.Days, restored.Days)
	assert.Equal(t, saved.DayOfMonth, restored.DayOfMonth)
	assert.Equal(t, saved.MovePoints, restored.MovePoints)
	assert.Equal(t, saved.Gold, restored.Gold)
	assert.Contains(t, restored.Messages, "Game loaded.")
}

func TestLoadWithoutSave(t *testing.T) {
	s, _ := newTestSession(t, nil, testCharacter())
	assert.ErrorIs(t, s.Load(), ErrNoSavedData)
	assert.Contains(t, s.Snapshot().Messages, "No saved game data found.")
}

func TestLoadRegeneratesStocks(t *testing.T) {
	s, _ := newTestSession(t, nil, testCharacter())

	cs, err := s.CityStock()
	require.NoError(t, err)
	require.NoError(t, s.Save())
	cs[0].Available = 0.25

	require.NoError(t, s.Load())
	fresh, err := s.CityStock()
	require.NoError(t, err)
	for _, e := range fresh {
		assert.GreaterOrEqual(t, e.Available, 1.0)
	}
}

func TestMapViewViewportClamps(t *testing.T) {
	s, _ := newTestSession(t, nil, testCharacter())

	rows, vp := s.MapView()
	assert.Len(t, rows, 3)
	assert.Equal(t, Viewport{StartX: 0, StartY: 0, EndX: 2, EndY: 2}, vp)
}
