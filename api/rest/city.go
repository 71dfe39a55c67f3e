package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CityHandler handles trading with the city the player stands in.
type CityHandler struct {
	ref *SessionRef
}

// NewCityHandler creates a CityHandler.
func NewCityHandler(ref *SessionRef) *CityHandler {
	return &CityHandler{ref: ref}
}

// Stock returns the current city's stock list.
// GET /api/city/stock
func (h *CityHandler) Stock(c *gin.Context) {
	sess, ok := requireSession(c, h.ref)
	if !ok {
		return
	}
	cs, err := sess.CityStock()
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": cs})
}

type tradeRequest struct {
	ID  string `json:"id" binding:"required"`
	Qty int    `json:"qty"`
}

// Buy purchases goods from the current city.
// POST /api/city/buy
func (h *CityHandler) Buy(c *gin.Context) {
	sess, ok := requireSession(c, h.ref)
	if !ok {
		return
	}
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Qty <= 0 {
		req.Qty = 1
	}
	if err := sess.Buy(req.ID, req.Qty); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

// Sell sells owned goods to the current city.
// POST /api/city/sell
func (h *CityHandler) Sell(c *gin.Context) {
	sess, ok := requireSession(c, h.ref)
	if !ok {
		return
	}
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Qty <= 0 {
		req.Qty = 1
	}
	if err := sess.Sell(req.ID, req.Qty); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}
