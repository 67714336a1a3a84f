package handlers

import (
	"net/http"

	"github.com/BattleKash/battlekash-admin-backend/internal/middleware"
	"github.com/BattleKash/battlekash-admin-backend/internal/models"
	"github.com/BattleKash/battlekash-admin-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TournamentHandler handles tournament-related HTTP requests
type TournamentHandler struct {
	tournamentService services.TournamentService
	settlementService services.SettlementService
}

// NewTournamentHandler creates a new TournamentHandler
func NewTournamentHandler(tournamentService services.TournamentService, settlementService services.SettlementService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: tournamentService,
		settlementService: settlementService,
	}
}

// CreateTournament handles POST /tournaments
func (h *TournamentHandler) CreateTournament(c *gin.Context) {
	var tournament models.Tournament
	if err := c.ShouldBindJSON(&tournament); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.tournamentService.CreateTournament(c, &tournament); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tournament)
}

// GetAllTournaments handles GET /tournaments
func (h *TournamentHandler) GetAllTournaments(c *gin.Context) {
	page, limit := parsePagination(c)

	tournaments, err := h.tournamentService.GetAllTournaments(c, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tournaments)
}

// GetTournamentByID handles GET /tournaments/:id
func (h *TournamentHandler) GetTournamentByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	tournament, err := h.tournamentService.GetTournamentByID(c, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tournament)
}

// GetEconomics handles GET /tournaments/:id/economics
func (h *TournamentHandler) GetEconomics(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	summary, err := h.tournamentService.GetEconomics(c, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// UpdateRewardConfig handles PUT /tournaments/:id/reward-config
func (h *TournamentHandler) UpdateRewardConfig(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var update services.RewardConfigUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	tournament, err := h.tournamentService.UpdateRewardConfig(c, id, &update)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tournament)
}

// UpdateStatus handles PATCH /tournaments/:id/status
func (h *TournamentHandler) UpdateStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var req struct {
		Status models.TournamentStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if err := h.tournamentService.UpdateStatus(c, id, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "status": req.Status})
}

// DistributeRewards handles POST /tournaments/:id/distribute-rewards
func (h *TournamentHandler) DistributeRewards(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	report, err := h.settlementService.DistributeAll(c, id)
	if err != nil {
		middleware.CountDistribution("failure")
		respondError(c, err)
		return
	}
	middleware.CountDistribution("success")

	c.JSON(http.StatusOK, report)
}
