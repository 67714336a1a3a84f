package models

import (
	"time"

	"github.com/BattleKash/battlekash-admin-backend/internal/rewards"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TournamentStatus represents the lifecycle status of a tournament
type TournamentStatus string

const (
	TournamentStatusUpcoming  TournamentStatus = "upcoming"
	TournamentStatusLive      TournamentStatus = "live"
	TournamentStatusCompleted TournamentStatus = "completed"
	TournamentStatusCancelled TournamentStatus = "cancelled"
)

// Started reports whether results for the tournament may be processed.
func (s TournamentStatus) Started() bool {
	return s == TournamentStatusLive || s == TournamentStatusCompleted
}

// RewardValue is a reward amount tagged with how it was set. Auto values are
// recomputed from the reward policy; manual values survive recalculation until
// an explicit reset.
type RewardValue struct {
	Amount float64 `bson:"amount" json:"amount"`
	Manual bool    `bson:"manual" json:"manual"`
}

// PositionReward maps a finishing position to a percentage of the prize pool
type PositionReward struct {
	Position int     `bson:"position" json:"position"`
	Percent  float64 `bson:"percent" json:"percent"`
}

// Tournament represents a battle-royale tournament and its configured economics
type Tournament struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name                 string             `bson:"name" json:"name"`
	Game                 string             `bson:"game" json:"game"`
	MatchType            string             `bson:"matchType" json:"matchType"` // solo, duo, trio, squad, custom
	EntryFee             float64            `bson:"entryFee" json:"entryFee"`
	MaxTeams             int                `bson:"maxTeams" json:"maxTeams"`
	CommissionPercentage float64            `bson:"commissionPercentage" json:"commissionPercentage"`
	FirstPlacePrize      RewardValue        `bson:"firstPlacePrize" json:"firstPlacePrize"`
	KillRewardPerKill    RewardValue        `bson:"killRewardPerKill" json:"killRewardPerKill"`
	PositionRewards      []PositionReward   `bson:"positionRewards" json:"positionRewards"`
	Status               TournamentStatus   `bson:"status" json:"status"`
	ScheduledAt          time.Time          `bson:"scheduledAt,omitempty" json:"scheduledAt,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Economics extracts the pure reward-rules input from the tournament record.
func (t *Tournament) Economics() rewards.Economics {
	return rewards.Economics{
		EntryFee:          t.EntryFee,
		MaxTeams:          t.MaxTeams,
		MatchType:         t.MatchType,
		CommissionPercent: t.CommissionPercentage,
	}
}

// RewardTable converts the position reward list into a lookup table.
func (t *Tournament) RewardTable() map[int]float64 {
	table := make(map[int]float64, len(t.PositionRewards))
	for _, pr := range t.PositionRewards {
		table[pr.Position] = pr.Percent
	}
	return table
}

// EconomicsSummary is the derived economics view returned to the admin UI
type EconomicsSummary struct {
	TournamentID        primitive.ObjectID `json:"tournamentId"`
	TotalPlayers        int                `json:"totalPlayers"`
	PrizePool           float64            `json:"prizePool"`
	EstimatedTotalKills int                `json:"estimatedTotalKills"`
	SuggestedFirstPrize float64            `json:"suggestedFirstPrize"`
	SuggestedKillReward float64            `json:"suggestedKillReward"`
	FirstPlacePrize     RewardValue        `json:"firstPlacePrize"`
	KillRewardPerKill   RewardValue        `json:"killRewardPerKill"`
}
