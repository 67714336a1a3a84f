package handlers

import (
	"net/http"

	"github.com/BattleKash/battlekash-admin-backend/internal/repositories"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WalletHandler serves read-only ledger views for the audit screens. It talks
// to the repository directly: the reads carry no business rules.
type WalletHandler struct {
	transactionRepo repositories.WalletTransactionRepository
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(transactionRepo repositories.WalletTransactionRepository) *WalletHandler {
	return &WalletHandler{transactionRepo: transactionRepo}
}

// GetUserTransactions handles GET /users/:id/transactions
func (h *WalletHandler) GetUserTransactions(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	page, limit := parsePagination(c)

	transactions, err := h.transactionRepo.FindByUserID(c, userID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get transactions: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// GetTournamentTransactions handles GET /tournaments/:id/transactions
func (h *WalletHandler) GetTournamentTransactions(c *gin.Context) {
	tournamentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	page, limit := parsePagination(c)

	transactions, err := h.transactionRepo.FindByTournamentID(c, tournamentID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get transactions: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, transactions)
}
