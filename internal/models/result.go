package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Result holds the match outcome for one registration in one tournament,
// together with the derived reward snapshot. A result becomes immutable
// (apart from verification notes) once RewardDistributed is set.
type Result struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TournamentID      primitive.ObjectID `bson:"tournamentId" json:"tournamentId"`
	RegistrationID    primitive.ObjectID `bson:"registrationId" json:"registrationId"`
	UserID            primitive.ObjectID `bson:"userId" json:"userId"`
	Kills             int                `bson:"kills" json:"kills"`
	Position          int                `bson:"position" json:"position"` // 0 = unknown
	ScreenshotURL     string             `bson:"screenshotUrl,omitempty" json:"screenshotUrl,omitempty"`
	ResultSubmitted   bool               `bson:"resultSubmitted" json:"resultSubmitted"`
	ResultSubmittedAt time.Time          `bson:"resultSubmittedAt,omitempty" json:"resultSubmittedAt,omitempty"`
	ResultVerified    bool               `bson:"resultVerified" json:"resultVerified"`
	ResultVerifiedAt  time.Time          `bson:"resultVerifiedAt,omitempty" json:"resultVerifiedAt,omitempty"`
	VerifiedBy        string             `bson:"verifiedBy,omitempty" json:"verifiedBy,omitempty"`
	VerificationNotes string             `bson:"verificationNotes,omitempty" json:"verificationNotes,omitempty"`
	KillReward        float64            `bson:"killReward" json:"killReward"`
	PlacementReward   float64            `bson:"placementReward" json:"placementReward"`
	TotalReward       float64            `bson:"totalReward" json:"totalReward"`
	RewardDistributed bool               `bson:"rewardDistributed" json:"rewardDistributed"`
	DistributedAt     time.Time          `bson:"distributedAt,omitempty" json:"distributedAt,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
