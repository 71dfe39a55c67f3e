package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ireantrader/server/game/session"
)

// GameHandler handles movement, day advancement, events, and save/load.
type GameHandler struct {
	ref *SessionRef
}

// NewGameHandler creates a GameHandler.
func NewGameHandler(ref *SessionRef) *GameHandler {
	return &GameHandler{ref: ref}
}

// requireSession fetches the running session or answers 409.
func requireSession(c *gin.Context, ref *SessionRef) (*session.Session, bool) {
	sess := ref.Get()
	if sess == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "character not created"})
		return nil, false
	}
	return sess, true
}

// State returns the current snapshot.
// GET /api/game/state
func (h *GameHandler) State(c *gin.Context) {
	sess, ok := requireSession(c, h.ref)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

// MapView returns the symbol grid and the viewport around the player.
// GET /api/game/map
func (h *GameHandler) MapView(c *gin.Context) {
	sess, ok := requireSession(c, h.ref)
	if !ok {
		return
	}
	rows, vp := sess.MapView()
	c.JSON(http.StatusOK, gin.H{"rows": rows, "viewport": vp})
}

type moveRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Move handles a tile click.
// POST /api/game/move
func (h *GameHandler) Move(c *gin.Context) {
	sess, ok := requireSession(c, h.ref)
	if !ok {
		return
	}
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := sess.Move(req.X, req.Y); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "state": sess.Snapshot()})
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

// EndDay advances the calendar.
// POST /api/game/end-day
func (h *GameHandler) EndDay(c *gin.Context) {
	sess, ok := requireSession(c, h.ref)
	if !ok {
		return
	}
	if err := sess.EndDay(); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "state": sess.Snapshot()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"state": sess.Snapshot(),
		"event": sess.PendingEvent(),
	})
}

// Event returns the pending event, if any.
// GET /api/game/event
func (h *GameHandler) Event(c *gin.Context) {
	sess, ok := requireSession(c, h.ref)
	if !ok {
		return
	}
	ev := sess.PendingEvent()
	if ev == nil {
		c.JSON(http.StatusOK, gin.H{"pending": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": true, "event": ev})
}

type resolveRequest struct {
	Solution *int `json:"solution" binding:"required"`
}

// ResolveEvent runs the chosen solution's stat check.
// POST /api/game/event/resolve
func (h *GameHandler) ResolveEvent(c *gin.Context) {
	sess, ok := requireSession(c, h.ref)
	if !ok {
		return
	}
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := sess.ResolveEvent(*req.Solution)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res, "state": sess.Snapshot()})
}

// Save writes the game snapshot to the store.
// POST /api/game/save
func (h *GameHandler) Save(c *gin.Context) {
	sess, ok := requireSession(c, h.ref)
	if !ok {
		return
	}
	if err := sess.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

// Load restores the saved snapshot, if one exists.
// POST /api/game/load
func (h *GameHandler) Load(c *gin.Context) {
	sess, ok := requireSession(c, h.ref)
	if !ok {
		return
	}
	if err := sess.Load(); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}
