package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Registration links a platform user (or their team) to a tournament slot
type Registration struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TournamentID primitive.ObjectID `bson:"tournamentId" json:"tournamentId"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	DisplayName  string             `bson:"displayName" json:"displayName"`
	TeamName     string             `bson:"teamName,omitempty" json:"teamName,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
