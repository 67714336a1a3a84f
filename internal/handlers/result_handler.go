package handlers

import (
	"net/http"

	"github.com/BattleKash/battlekash-admin-backend/internal/middleware"
	"github.com/BattleKash/battlekash-admin-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResultHandler handles result verification and distribution HTTP requests
type ResultHandler struct {
	resultService     services.ResultService
	settlementService services.SettlementService
}

// NewResultHandler creates a new ResultHandler
func NewResultHandler(resultService services.ResultService, settlementService services.SettlementService) *ResultHandler {
	return &ResultHandler{
		resultService:     resultService,
		settlementService: settlementService,
	}
}

// GetTournamentResults handles GET /tournaments/:id/results
func (h *ResultHandler) GetTournamentResults(c *gin.Context) {
	tournamentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	results, err := h.resultService.ListByTournament(c, tournamentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// SubmitResult handles POST /tournaments/:id/results
func (h *ResultHandler) SubmitResult(c *gin.Context) {
	tournamentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var req struct {
		RegistrationID string `json:"registrationId" binding:"required"`
		services.SubmitResultInput
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	registrationID, err := primitive.ObjectIDFromHex(req.RegistrationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration ID format"})
		return
	}

	result, err := h.resultService.SubmitResult(c, tournamentID, registrationID, &req.SubmitResultInput)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateResult handles PATCH /results/:id
func (h *ResultHandler) UpdateResult(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var input services.UpdateResultInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.resultService.UpdateResult(c, id, &input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// VerifyResult handles POST /results/:id/verify
func (h *ResultHandler) VerifyResult(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var input services.VerifyResultInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	// The auth middleware stores the admin identity from the JWT claims.
	verifiedBy := c.GetString("email")
	if verifiedBy == "" {
		verifiedBy = c.GetString("user_id")
	}

	result, err := h.resultService.VerifyResult(c, id, &input, verifiedBy)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Distribute handles POST /results/:id/distribute
func (h *ResultHandler) Distribute(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	entry, err := h.settlementService.Distribute(c, id)
	if err != nil {
		middleware.CountDistribution("failure")
		respondError(c, err)
		return
	}
	middleware.CountDistribution("success")

	c.JSON(http.StatusOK, entry)
}

// GetScreenshotURL handles GET /results/:id/screenshot-url
func (h *ResultHandler) GetScreenshotURL(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	url, err := h.resultService.ResultImageURL(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if url == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No screenshot on record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
