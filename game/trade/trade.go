// Package trade applies stat-modified pricing and moves goods and gold
// between the player and a city's stock. Every failure leaves both sides
// untouched.
package trade

import (
	"errors"
	"fmt"
	"math"

	"github.com/ireantrader/server/game/player"
	"github.com/ireantrader/server/game/stock"
)

var (
	ErrInsufficientStock     = errors.New("the city does not have that much in stock")
	ErrInsufficientFunds     = errors.New("not enough gold")
	ErrInsufficientInventory = errors.New("you do not own that much")
	ErrNotSellableHere       = errors.New("the city already sells this, they won't buy it back")
	ErrBadQuantity           = errors.New("quantity must be at least 1")
	ErrUnknownGood           = errors.New("no such good")
)

// statRate is the per-point price modifier for Charm discounts and
// Cunning markups: 2% of the base cost per stat point.
const statRate = 0.02

// Buy purchases qty of a good from the city stock. The Charm stat grants a
// discount of max(floor(cost*0.02*Charm), 1). Stock depletes by half the
// purchased quantity, fractions kept.
func Buy(p *player.Character, cs stock.CityStock, goodID string, qty int) (string, error) {
	if qty < 1 {
		return "", ErrBadQuantity
	}
	entry := cs.Find(goodID)
	if entry == nil {
		return "", ErrUnknownGood
	}
	if entry.Available < float64(qty) {
		return "", ErrInsufficientStock
	}

	cost := entry.Price * qty
	charm := p.Stats[player.StatCharm]
	discount := int(math.Floor(float64(cost) * statRate * float64(charm)))
	if discount < 1 {
		discount = 1
	}
	effective := cost - discount
	if p.Gold < effective {
		return "", ErrInsufficientFunds
	}

	p.Gold -= effective
	if it := p.FindItem(goodID); it != nil {
		it.Qty += qty
	} else {
		p.Inventory = append(p.Inventory, &player.Item{
			GoodID:      entry.Good.ID,
			Description: entry.Good.Description,
			Type:        entry.Good.Type,
			Price:       entry.Price,
			Qty:         qty,
		})
	}
	entry.Available -= float64(qty) / 2

	return fmt.Sprintf("Bought %d x %s for %d gold.", qty, goodID, effective), nil
}

// Sell sells qty of an owned good to the visiting city. A city refuses
// goods it already stocks. The Cunning stat adds a markup of
// ceil(cost*0.02*Cunning) on top of the base value.
func Sell(p *player.Character, cs stock.CityStock, goodID string, qty int) (string, error) {
	if qty < 1 {
		return "", ErrBadQuantity
	}
	if cs.Find(goodID) != nil {
		return "", ErrNotSellableHere
	}
	item := p.FindItem(goodID)
	if item == nil || item.Qty < qty {
		return "", ErrInsufficientInventory
	}

	cost := item.Price * qty
	cunning := p.Stats[player.StatCunning]
	markup := int(math.Ceil(float64(cost) * statRate * float64(cunning)))
	proceeds := cost + markup

	p.Gold += proceeds
	item.Qty -= qty
	if item.Qty <= 0 {
		p.RemoveItem(goodID)
	}

	return fmt.Sprintf("Sold %d x %s for %d gold.", qty, goodID, proceeds), nil
}
