package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DistributionEntry reports a single successful (or already-settled) payout
type DistributionEntry struct {
	ResultID           primitive.ObjectID   `json:"resultId"`
	RegistrationID     primitive.ObjectID   `json:"registrationId"`
	UserID             primitive.ObjectID   `json:"userId"`
	TransactionIDs     []primitive.ObjectID `json:"transactionIds"`
	Amount             float64              `json:"amount"`
	AlreadyDistributed bool                 `json:"alreadyDistributed"`
}

// DistributionFailure reports a payout that could not be settled
type DistributionFailure struct {
	ResultID primitive.ObjectID `json:"resultId"`
	UserID   primitive.ObjectID `json:"userId"`
	Reason   string             `json:"reason"`
}

// DistributionReport aggregates the outcome of a batch distribution run.
// TotalDistributed only counts amounts paid out in this run.
type DistributionReport struct {
	TournamentID     primitive.ObjectID    `json:"tournamentId"`
	TotalDistributed float64               `json:"totalDistributed"`
	Succeeded        []DistributionEntry   `json:"succeeded"`
	Failed           []DistributionFailure `json:"failed"`
}
