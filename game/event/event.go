// Package event draws random events at day's end and resolves the
// player's chosen stat check against them. The engine is a small state
// machine: Idle until an event is offered, back to Idle once resolved.
package event

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/ireantrader/server/game/player"
	"github.com/ireantrader/server/resource"
)

// State of the event engine.
type State int

const (
	Idle State = iota
	Offered
)

const (
	// offerChance is the base probability an event fires at day's end.
	offerChance = 0.3
	// perceptionRate shifts the positive/negative split per Perception point.
	perceptionRate = 0.02
	// ConsolationGold is the flat grant when a loss finds nothing to take.
	ConsolationGold = 10
)

var (
	ErrNoPendingEvent = errors.New("no event to resolve")
	ErrBadSolution    = errors.New("no such solution")
	ErrUnknownStat    = errors.New("solution references an unknown stat")
)

// Result reports one resolved event.
type Result struct {
	Success   bool     `json:"success"`
	Roll      int      `json:"roll"` // d20 + stat
	DC        int      `json:"dc"`
	Narration string   `json:"narration"`
	Outcomes  []string `json:"outcomes"` // applied effects, human readable
}

// Engine selects and resolves random events with an injected random
// source.
type Engine struct {
	catalog []resource.Event
	rng     *rand.Rand
	state   State
	pending *resource.Event
}

// NewEngine creates an event engine over the event catalog.
func NewEngine(catalog []resource.Event, rng *rand.Rand) *Engine {
	return &Engine{catalog: catalog, rng: rng}
}

// State returns the engine's current state.
func (e *Engine) State() State { return e.state }

// Pending returns the offered event awaiting resolution, or nil.
func (e *Engine) Pending() *resource.Event { return e.pending }

// Offer rolls for a day's-end event. With 30% base probability an event is
// drawn; higher Perception tilts the draw toward positive events. Returns
// nil when no event fires or the chosen category is empty.
func (e *Engine) Offer(perception int) *resource.Event {
	if e.state != Idle {
		return e.pending
	}
	if e.rng.Float64() >= offerChance {
		return nil
	}

	positiveChance := 0.5 + perceptionRate*float64(perception)
	if positiveChance > 1 {
		positiveChance = 1
	}
	wantPositive := e.rng.Float64() < positiveChance

	var pool []*resource.Event
	for i := range e.catalog {
		if e.catalog[i].Positive == wantPositive {
			pool = append(pool, &e.catalog[i])
		}
	}
	if len(pool) == 0 {
		return nil
	}

	e.pending = pool[e.rng.Intn(len(pool))]
	e.state = Offered
	return e.pending
}

// Resolve runs the stat check for the chosen solution and applies the
// outcome to the player. Success means d20 + stat >= DC; the event's
// magnitude is gained on success and lost on failure. The engine always
// returns to Idle afterwards; a failed precondition leaves the offer
// standing and the player unchanged.
func (e *Engine) Resolve(p *player.Character, solution int) (*Result, error) {
	if e.state != Offered || e.pending == nil {
		return nil, ErrNoPendingEvent
	}
	ev := e.pending
	if solution < 0 || solution >= len(ev.Solutions) {
		return nil, ErrBadSolution
	}
	sol := ev.Solutions[solution]
	stat, ok := p.Stats.Get(sol.Stat)
	if !ok {
		return nil, ErrUnknownStat
	}

	roll := e.rng.Intn(20) + 1 + stat
	success := roll >= sol.DC

	// Catalog magnitudes are non-negative; the sign follows the check.
	delta := ev.Amount
	if !success {
		delta = -delta
	}

	res := &Result{
		Success: success,
		Roll:    roll,
		DC:      sol.DC,
	}
	if success {
		res.Narration = ev.SuccessOutcome
	} else {
		res.Narration = ev.FailureOutcome
	}
	res.Outcomes = e.apply(p, ev.Affects, delta)

	// The event is discarded; resolving twice is not possible.
	e.pending = nil
	e.state = Idle
	return res, nil
}

// apply puts the outcome onto gold or inventory. Losses follow the
// fallback chain: nothing to lose at all yields a flat consolation grant,
// an empty target redirects to the other resource. Gains land on the
// stated target, except an inventory gain with no item lines to increment
// lands on gold.
func (e *Engine) apply(p *player.Character, target string, delta int) []string {
	if delta == 0 {
		return nil
	}

	if delta < 0 {
		if p.Gold == 0 && len(p.Inventory) == 0 {
			p.Gold += ConsolationGold
			return []string{fmt.Sprintf("You had nothing to lose. Received %d gold in consolation.", ConsolationGold)}
		}
		if target == resource.AffectsGold && p.Gold == 0 {
			target = resource.AffectsInventory
		}
		if target == resource.AffectsInventory && len(p.Inventory) == 0 {
			target = resource.AffectsGold
		}
	} else if target == resource.AffectsInventory && len(p.Inventory) == 0 {
		target = resource.AffectsGold
	}

	if target == resource.AffectsGold {
		p.Gold += delta
		if p.Gold < 0 {
			p.Gold = 0
		}
		if delta > 0 {
			return []string{fmt.Sprintf("Gained %d gold.", delta)}
		}
		return []string{fmt.Sprintf("Lost %d gold.", -delta)}
	}

	// Inventory outcomes hit one uniformly random owned item.
	item := p.Inventory[e.rng.Intn(len(p.Inventory))]
	newQty := item.Qty + delta
	if newQty <= 0 {
		p.RemoveItem(item.GoodID)
		return []string{fmt.Sprintf("Lost all of your %s.", item.GoodID)}
	}
	item.Qty = newQty
	if delta > 0 {
		return []string{fmt.Sprintf("Gained %d x %s.", delta, item.GoodID)}
	}
	return []string{fmt.Sprintf("Lost %d x %s.", -delta, item.GoodID)}
}
