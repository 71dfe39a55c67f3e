package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ireantrader/server/config"
	"github.com/ireantrader/server/game/player"
	"github.com/ireantrader/server/game/session"
	"github.com/ireantrader/server/model"
	"gorm.io/gorm"
)

// CharacterRecord is the finalized character-creation result, stored
// under the character slot. Its presence routes a returning session
// straight into the game.
type CharacterRecord struct {
	Race       string       `json:"race" binding:"required"`
	Gender     string       `json:"gender" binding:"required"`
	Background string       `json:"background" binding:"required"`
	Name       string       `json:"name" binding:"required"`
	Language   string       `json:"language"`
	Alignment  string       `json:"alignment"`
	Stats      player.Stats `json:"stats" binding:"required"`
}

// CharacterHandler finalizes and reports the player character.
type CharacterHandler struct {
	db      *gorm.DB
	game    config.GameConfig
	ref     *SessionRef
	startFn func(*player.Character) (*session.Session, error)
}

// NewCharacterHandler creates a CharacterHandler. startFn builds the
// simulation session for a freshly finalized character.
func NewCharacterHandler(db *gorm.DB, game config.GameConfig, ref *SessionRef, startFn func(*player.Character) (*session.Session, error)) *CharacterHandler {
	return &CharacterHandler{db: db, game: game, ref: ref, startFn: startFn}
}

// Get returns the finalized character record, or created=false.
// GET /api/character
func (h *CharacterHandler) Get(c *gin.Context) {
	payload, ok, err := model.GetSlot(h.db, model.SlotCharacter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store read failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"created": false})
		return
	}
	var rec CharacterRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "character record is corrupt"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"created": true, "character": rec})
}

// Create finalizes the character and starts the simulation.
// POST /api/character
func (h *CharacterHandler) Create(c *gin.Context) {
	if h.ref.Get() != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "character already created"})
		return
	}

	var rec CharacterRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := &player.Character{
		Race:       rec.Race,
		Gender:     rec.Gender,
		Background: rec.Background,
		Name:       rec.Name,
		Language:   rec.Language,
		Alignment:  rec.Alignment,
		Stats:      rec.Stats,
		Gold:       h.game.StartingGold,
	}
	if err := p.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "serialize failed"})
		return
	}
	if err := model.PutSlot(h.db, model.SlotCharacter, payload); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store write failed"})
		return
	}

	sess, err := h.startFn(p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.ref.Set(sess)
	c.JSON(http.StatusOK, gin.H{"created": true, "state": sess.Snapshot()})
}
