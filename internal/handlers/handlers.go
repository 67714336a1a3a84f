package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/BattleKash/battlekash-admin-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the admin UI's error envelope.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrBudgetExceeded),
		errors.Is(err, services.ErrInvalidStatus):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrTournamentNotFound),
		errors.Is(err, services.ErrResultNotFound),
		errors.Is(err, services.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrImmutableAfterSettlement),
		errors.Is(err, services.ErrNotEligibleForSettlement),
		errors.Is(err, services.ErrTournamentNotStarted),
		errors.Is(err, services.ErrEmailTaken):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// parsePagination reads the standard page/limit query parameters.
func parsePagination(c *gin.Context) (int, int) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func queryInt(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return value
}
