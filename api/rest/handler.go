// Package rest exposes the simulation to the browser frontend. Handlers
// translate HTTP into engine transitions and sentinel errors into status
// codes; all game rules live in the game packages.
package rest

import (
	"errors"
	"net/http"
	"sync"

	"github.com/ireantrader/server/game/event"
	"github.com/ireantrader/server/game/session"
	"github.com/ireantrader/server/game/trade"
)

// SessionRef shares the running session between handlers. The session is
// nil until a character is finalized.
type SessionRef struct {
	mu sync.RWMutex
	s  *session.Session
}

// Get returns the current session, or nil.
func (r *SessionRef) Get() *session.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s
}

// Set installs the running session.
func (r *SessionRef) Set(s *session.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s = s
}

// statusFor maps engine sentinel errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, trade.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, trade.ErrUnknownGood),
		errors.Is(err, session.ErrNoSavedData):
		return http.StatusNotFound
	case errors.Is(err, session.ErrEventPending):
		return http.StatusConflict
	case errors.Is(err, trade.ErrInsufficientStock),
		errors.Is(err, trade.ErrInsufficientInventory),
		errors.Is(err, trade.ErrNotSellableHere),
		errors.Is(err, trade.ErrBadQuantity),
		errors.Is(err, session.ErrOutOfRange),
		errors.Is(err, session.ErrNotInCity),
		errors.Is(err, event.ErrNoPendingEvent),
		errors.Is(err, event.ErrBadSolution),
		errors.Is(err, event.ErrUnknownStat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
