package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Wallet transaction types for prize settlement
const (
	TransactionTypePrizeFirst  = "prize_first"
	TransactionTypePrizeSecond = "prize_second"
	TransactionTypePrize       = "prize"
	TransactionTypePrizeKills  = "prize_kills"
)

// Wallet transaction statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

// WalletTransaction records a single wallet credit produced by settling a
// verified result. The ledger holds at most one non-failed transaction per
// (resultId, type) pair.
type WalletTransaction struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	TournamentID primitive.ObjectID `bson:"tournamentId" json:"tournamentId"`
	ResultID     primitive.ObjectID `bson:"resultId" json:"resultId"`
	Amount       float64            `bson:"amount" json:"amount"`
	Type         string             `bson:"type" json:"type"`
	Status       string             `bson:"status" json:"status"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
