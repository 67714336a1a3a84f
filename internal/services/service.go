package services

import (
	"context"

	"github.com/BattleKash/battlekash-admin-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TournamentService defines the interface for tournament economics operations
type TournamentService interface {
	// CreateTournament validates the economics and fills auto-calculated
	// reward values before persisting.
	CreateTournament(ctx context.Context, tournament *models.Tournament) error

	// GetTournamentByID retrieves a tournament by its ID
	GetTournamentByID(ctx context.Context, id primitive.ObjectID) (*models.Tournament, error)

	// GetAllTournaments retrieves tournaments with pagination
	GetAllTournaments(ctx context.Context, page, limit int) ([]*models.Tournament, error)

	// GetEconomics returns the derived economics view (prize pool, suggested split)
	GetEconomics(ctx context.Context, id primitive.ObjectID) (*models.EconomicsSummary, error)

	// UpdateRewardConfig applies manual reward overrides or recalculates auto
	// values; manual configurations are validated against the prize pool.
	UpdateRewardConfig(ctx context.Context, id primitive.ObjectID, update *RewardConfigUpdate) (*models.Tournament, error)

	// UpdateStatus moves the tournament through its lifecycle
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.TournamentStatus) error
}

// RewardConfigUpdate carries a manual reward configuration change. Nil fields
// are untouched. Recalculate resets auto values from the policy; it never
// touches values whose manual flag is set.
type RewardConfigUpdate struct {
	FirstPlacePrize   *float64                `json:"firstPlacePrize"`
	KillRewardPerKill *float64                `json:"killRewardPerKill"`
	PositionRewards   []models.PositionReward `json:"positionRewards"`
	Recalculate       bool                    `json:"recalculate"`
}

// ResultService defines the interface for the result record store and the
// verification workflow
type ResultService interface {
	// ListByTournament returns one record per registration, synthesizing
	// zero-valued records for registrations without a stored result.
	ListByTournament(ctx context.Context, tournamentID primitive.ObjectID) ([]*models.Result, error)

	// GetResultByID retrieves a result by its ID
	GetResultByID(ctx context.Context, id primitive.ObjectID) (*models.Result, error)

	// SubmitResult records a player's submission (or admin manual entry) and
	// flips the submitted flag.
	SubmitResult(ctx context.Context, tournamentID, registrationID primitive.ObjectID, input *SubmitResultInput) (*models.Result, error)

	// UpdateResult edits result fields with all-or-nothing validation and an
	// immediate reward recomputation.
	UpdateResult(ctx context.Context, id primitive.ObjectID, input *UpdateResultInput) (*models.Result, error)

	// VerifyResult finalizes kills/position, computes the reward snapshot and
	// flips the verified flag. Rejected while the tournament has not started.
	VerifyResult(ctx context.Context, id primitive.ObjectID, input *VerifyResultInput, verifiedBy string) (*models.Result, error)

	// ResultImageURL resolves the screenshot URL for a result, empty when unset
	ResultImageURL(ctx context.Context, id primitive.ObjectID) (string, error)
}

// SubmitResultInput is the player-facing submission payload
type SubmitResultInput struct {
	Kills         int    `json:"kills"`
	Position      int    `json:"position"`
	ScreenshotURL string `json:"screenshotUrl"`
}

// UpdateResultInput is the admin field-edit payload; nil fields are untouched
type UpdateResultInput struct {
	Kills         *int    `json:"kills"`
	Position      *int    `json:"position"`
	ScreenshotURL *string `json:"screenshotUrl"`
	Notes         *string `json:"notes"`
}

// VerifyResultInput is the admin verification payload
type VerifyResultInput struct {
	Kills    int    `json:"kills" binding:"min=0"`
	Position int    `json:"position" binding:"required,min=1"`
	Notes    string `json:"notes"`
}

// SettlementService defines the interface for the settlement ledger and the
// batch distribution orchestrator
type SettlementService interface {
	// Distribute settles a single verified result: one wallet transaction per
	// non-zero reward component plus a wallet credit, then the distributed
	// flag. Re-invocation on a settled result is a no-op returning the
	// recorded amount.
	Distribute(ctx context.Context, resultID primitive.ObjectID) (*models.DistributionEntry, error)

	// DistributeAll settles every verified, undistributed result of the
	// tournament sequentially, continuing past per-result failures.
	DistributeAll(ctx context.Context, tournamentID primitive.ObjectID) (*models.DistributionReport, error)
}

// AuthService defines the interface for admin authentication operations
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AdminUser, error)
	Login(ctx context.Context, req *models.LoginRequest) (string, error) // Returns JWT token
}
