package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a platform player. WalletBalance is only ever mutated by
// additive increments from the settlement ledger.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username      string             `bson:"username" json:"username"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	WalletBalance float64            `bson:"walletBalance" json:"walletBalance"`
	KYCVerified   bool               `bson:"kycVerified" json:"kycVerified"`
	LastActivity  time.Time          `bson:"lastActivity,omitempty" json:"lastActivity,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
