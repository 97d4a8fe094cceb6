package manager

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"Doudizhu/internal/game/card"
	"Doudizhu/internal/game/engine"
	"Doudizhu/internal/game/rules"
	"Doudizhu/internal/storage"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type matchRequest struct {
	GameID string `json:"gameId" binding:"required"`
}

type bidRequest struct {
	GameID string `json:"gameId" binding:"required"`
	Amount *int   `json:"amount" binding:"required"`
}

type playRequest struct {
	GameID string      `json:"gameId" binding:"required"`
	Cards  []card.Card `json:"cards" binding:"required"`
}

// POST /game/create
func (h *Handler) Create(c *gin.Context) {
	playerID := c.GetString("player_id")
	id, err := h.svc.CreateMatch(c.Request.Context(), playerID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"gameId": id})
}

// POST /game/join  body: {gameId}
func (h *Handler) Join(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.JoinMatch(c.Request.Context(), req.GameID, c.GetString("player_id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /game/bid  body: {gameId, amount}  amount 0 = 不叫
func (h *Handler) Bid(c *gin.Context) {
	var req bidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.Bid(c.Request.Context(), req.GameID, c.GetString("player_id"), *req.Amount); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /game/play  body: {gameId, cards: [{suit, rank}, ...]}
func (h *Handler) Play(c *gin.Context) {
	var req playRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.Play(c.Request.Context(), req.GameID, c.GetString("player_id"), req.Cards); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /game/pass  body: {gameId}
func (h *Handler) Pass(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.Pass(c.Request.Context(), req.GameID, c.GetString("player_id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /game/state?gameId=xxx
func (h *Handler) State(c *gin.Context) {
	gameID := c.Query("gameId")
	if gameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gameId is required"})
		return
	}
	view, err := h.svc.ViewFor(c.Request.Context(), gameID, c.GetString("player_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": view})
}

// respondErr 把引擎错误族映射到 HTTP 状态码
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrRoomFull),
		errors.Is(err, storage.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrNotYourTurn),
		errors.Is(err, engine.ErrInvalidBid),
		errors.Is(err, engine.ErrCardsNotInHand),
		errors.Is(err, engine.ErrMustPlay),
		errors.Is(err, engine.ErrWrongPhase),
		errors.Is(err, rules.ErrInvalidCombination),
		errors.Is(err, rules.ErrDoesNotBeat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
