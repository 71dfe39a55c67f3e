package resource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodsJSON = `[
	{"id": "bread", "description": "Bread", "type": "Foodstuffs", "lowest_price": 1, "highest_price": 3},
	{"id": "rope", "description": "Rope", "type": "Adventuring Goods", "lowest_price": 6, "highest_price": 14}
]`

const eventsJSON = `[
	{
		"description": "A cart has thrown a wheel.",
		"successOutcome": "Fixed.",
		"failureOutcome": "Not fixed.",
		"positiveEvent": true,
		"resultAffects": "Gold",
		"resultAmount": 25,
		"solutions": [{"solutionText": "Lift it", "solutionStat": "Strength", "solutionDC": 12}]
	}
]`

const mapJSON = `[["empty", "city"], ["river", "bridge"]]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func catalogPaths(t *testing.T, goods, events, mapData string) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	g := writeFile(t, dir, "goods.json", goods)
	e := writeFile(t, dir, "events.json", events)
	m := ""
	if mapData != "" {
		m = writeFile(t, dir, "map.json", mapData)
	}
	return g, e, m
}

func TestLoad(t *testing.T) {
	g, e, m := catalogPaths(t, goodsJSON, eventsJSON, mapJSON)
	l := NewLoader(g, e, m)
	require.NoError(t, l.Load())

	assert.Len(t, l.Goods, 2)
	assert.Len(t, l.Events, 1)
	assert.Len(t, l.MapRows, 2)

	rope := l.GoodByID("rope")
	require.NotNil(t, rope)
	assert.Equal(t, CategoryAdventuring, rope.Type)
	assert.Equal(t, 6, rope.LowestPrice)
	assert.Equal(t, 14, rope.HighestPrice)

	assert.Nil(t, l.GoodByID("silk"))
}

func TestLoadWithoutMap(t *testing.T) {
	g, e, _ := catalogPaths(t, goodsJSON, eventsJSON, "")
	l := NewLoader(g, e, "")
	require.NoError(t, l.Load())
	assert.Empty(t, l.MapRows)
}

func TestLoadMissingFile(t *testing.T) {
	l := NewLoader("/nonexistent/goods.json", "/nonexistent/events.json", "")
	assert.Error(t, l.Load())
}

func TestValidateRejectsBadCatalogs(t *testing.T) {
	tests := []struct {
		name   string
		goods  string
		events string
	}{
		{"empty goods", `[]`, eventsJSON},
		{"good without id", `[{"description": "Bread", "type": "Foodstuffs", "lowest_price": 1, "highest_price": 3}]`, eventsJSON},
		{"duplicate good id", `[
			{"id": "bread", "type": "Foodstuffs", "lowest_price": 1, "highest_price": 3},
			{"id": "bread", "type": "Foodstuffs", "lowest_price": 1, "highest_price": 3}
		]`, eventsJSON},
		{"inverted price range", `[{"id": "bread", "type": "Foodstuffs", "lowest_price": 5, "highest_price": 2}]`, eventsJSON},
		{"event without description", goodsJSON, `[{
			"successOutcome": "x", "failureOutcome": "y", "positiveEvent": true,
			"resultAffects": "Gold", "resultAmount": 1,
			"solutions": [{"solutionText": "a", "solutionStat": "Luck", "solutionDC": 5}]
		}]`},
		{"event with unknown target", goodsJSON, `[{
			"description": "d", "successOutcome": "x", "failureOutcome": "y", "positiveEvent": true,
			"resultAffects": "Reputation", "resultAmount": 1,
			"solutions": [{"solutionText": "a", "solutionStat": "Luck", "solutionDC": 5}]
		}]`},
		{"event with negative amount", goodsJSON, `[{
			"description": "d", "successOutcome": "x", "failureOutcome": "y", "positiveEvent": true,
			"resultAffects": "Gold", "resultAmount": -5,
			"solutions": [{"solutionText": "a", "solutionStat": "Luck", "solutionDC": 5}]
		}]`},
		{"event without solutions", goodsJSON, `[{
			"description": "d", "successOutcome": "x", "failureOutcome": "y", "positiveEvent": true,
			"resultAffects": "Gold", "resultAmount": 1, "solutions": []
		}]`},
		{"solution without stat", goodsJSON, `[{
			"description": "d", "successOutcome": "x", "failureOutcome": "y", "positiveEvent": true,
			"resultAffects": "Gold", "resultAmount": 1,
			"solutions": [{"solutionText": "a", "solutionDC": 5}]
		}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, e, _ := catalogPaths(t, tt.goods, tt.events, "")
			l := NewLoader(g, e, "")
			assert.Error(t, l.Load())
		})
	}
}

func TestLoadShippedCatalogs(t *testing.T) {
	l := NewLoader("../data/goods.json", "../data/events.json", "../data/map.json")
	require.NoError(t, l.Load())
	assert.NotEmpty(t, l.Goods)
	assert.NotEmpty(t, l.Events)
	assert.NotEmpty(t, l.MapRows)
}
