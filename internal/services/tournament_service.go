package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/BattleKash/battlekash-admin-backend/internal/models"
	"github.com/BattleKash/battlekash-admin-backend/internal/repositories"
	"github.com/BattleKash/battlekash-admin-backend/internal/rewards"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure TournamentServiceImpl implements TournamentService
var _ TournamentService = (*TournamentServiceImpl)(nil)

// TournamentServiceImpl handles tournament economics business logic
type TournamentServiceImpl struct {
	tournamentRepo repositories.TournamentRepository
	policy         rewards.Policy
}

// NewTournamentService creates a new TournamentServiceImpl
func NewTournamentService(tournamentRepo repositories.TournamentRepository, policy rewards.Policy) *TournamentServiceImpl {
	return &TournamentServiceImpl{
		tournamentRepo: tournamentRepo,
		policy:         policy,
	}
}

// CreateTournament validates the configured economics, fills auto-calculated
// reward values from the policy and persists the tournament.
func (s *TournamentServiceImpl) CreateTournament(ctx context.Context, tournament *models.Tournament) error {
	if err := validateEconomics(tournament); err != nil {
		return err
	}
	if tournament.Status == "" {
		tournament.Status = models.TournamentStatusUpcoming
	}

	applyAutoRewards(tournament, s.policy)

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		slog.Error("Failed to create tournament", "error", err, "name", tournament.Name)
		return fmt.Errorf("failed to save tournament: %w", err)
	}

	slog.Info("Tournament created", "tournamentId", tournament.ID, "name", tournament.Name,
		"prizePool", rewards.PrizePool(tournament.Economics()))
	return nil
}

// GetTournamentByID retrieves a tournament by its ID
func (s *TournamentServiceImpl) GetTournamentByID(ctx context.Context, id primitive.ObjectID) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to retrieve tournament: %w", err)
	}
	return tournament, nil
}

// GetAllTournaments retrieves tournaments with pagination
func (s *TournamentServiceImpl) GetAllTournaments(ctx context.Context, page, limit int) ([]*models.Tournament, error) {
	return s.tournamentRepo.FindAll(ctx, page, limit)
}

// GetEconomics returns the derived economics view for a tournament
func (s *TournamentServiceImpl) GetEconomics(ctx context.Context, id primitive.ObjectID) (*models.EconomicsSummary, error) {
	tournament, err := s.GetTournamentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	econ := tournament.Economics()
	suggestion := rewards.Suggest(econ, s.policy)

	return &models.EconomicsSummary{
		TournamentID:        tournament.ID,
		TotalPlayers:        rewards.TotalPlayers(econ),
		PrizePool:           rewards.PrizePool(econ),
		EstimatedTotalKills: suggestion.EstimatedTotalKills,
		SuggestedFirstPrize: suggestion.FirstPlacePrize,
		SuggestedKillReward: suggestion.KillRewardPerKill,
		FirstPlacePrize:     tournament.FirstPlacePrize,
		KillRewardPerKill:   tournament.KillRewardPerKill,
	}, nil
}

// UpdateRewardConfig applies a manual reward configuration or recalculates the
// auto-managed values. Manual configurations that would exceed the prize pool
// are rejected before anything is persisted.
func (s *TournamentServiceImpl) UpdateRewardConfig(ctx context.Context, id primitive.ObjectID, update *RewardConfigUpdate) (*models.Tournament, error) {
	tournament, err := s.GetTournamentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.PositionRewards != nil {
		if err := validatePositionRewards(update.PositionRewards); err != nil {
			return nil, err
		}
		tournament.PositionRewards = update.PositionRewards
	}

	if update.FirstPlacePrize != nil {
		if *update.FirstPlacePrize < 0 {
			return nil, fmt.Errorf("%w: first place prize must be non-negative", ErrValidation)
		}
		tournament.FirstPlacePrize = models.RewardValue{Amount: *update.FirstPlacePrize, Manual: true}
	}
	if update.KillRewardPerKill != nil {
		if *update.KillRewardPerKill < 0 {
			return nil, fmt.Errorf("%w: kill reward must be non-negative", ErrValidation)
		}
		tournament.KillRewardPerKill = models.RewardValue{Amount: *update.KillRewardPerKill, Manual: true}
	}

	// Explicit reset: recompute auto values only. Manual values are never
	// overwritten by recalculation; Recalculate clears the flags first, which
	// is the one sanctioned way back to auto management.
	if update.Recalculate {
		tournament.FirstPlacePrize.Manual = false
		tournament.KillRewardPerKill.Manual = false
	}
	applyAutoRewards(tournament, s.policy)

	econ := tournament.Economics()
	if !rewards.WithinBudget(tournament.FirstPlacePrize.Amount, tournament.KillRewardPerKill.Amount, econ, s.policy) {
		planned := rewards.PlannedSpend(tournament.FirstPlacePrize.Amount, tournament.KillRewardPerKill.Amount, econ, s.policy)
		slog.Warn("Rejected reward config exceeding prize pool", "tournamentId", id,
			"planned", planned, "prizePool", rewards.PrizePool(econ))
		return nil, fmt.Errorf("%w: planned payout %.2f over pool %.2f", ErrBudgetExceeded, planned, rewards.PrizePool(econ))
	}

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		slog.Error("Failed to update reward config", "error", err, "tournamentId", id)
		return nil, fmt.Errorf("failed to save reward config: %w", err)
	}

	slog.Info("Reward config updated", "tournamentId", id,
		"firstPlacePrize", tournament.FirstPlacePrize.Amount, "manualFirst", tournament.FirstPlacePrize.Manual,
		"killRewardPerKill", tournament.KillRewardPerKill.Amount, "manualKill", tournament.KillRewardPerKill.Manual)
	return tournament, nil
}

// UpdateStatus moves the tournament through its lifecycle
func (s *TournamentServiceImpl) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.TournamentStatus) error {
	switch status {
	case models.TournamentStatusUpcoming, models.TournamentStatusLive,
		models.TournamentStatusCompleted, models.TournamentStatusCancelled:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	if err := s.tournamentRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to update tournament status: %w", err)
	}
	slog.Info("Tournament status updated", "tournamentId", id, "status", status)
	return nil
}

// applyAutoRewards fills reward values still under auto management from the
// policy suggestion. Manual values are left untouched.
func applyAutoRewards(tournament *models.Tournament, policy rewards.Policy) {
	suggestion := rewards.Suggest(tournament.Economics(), policy)
	if !tournament.FirstPlacePrize.Manual {
		tournament.FirstPlacePrize.Amount = suggestion.FirstPlacePrize
	}
	if !tournament.KillRewardPerKill.Manual {
		tournament.KillRewardPerKill.Amount = suggestion.KillRewardPerKill
	}
}

func validateEconomics(tournament *models.Tournament) error {
	if tournament.EntryFee < 0 {
		return fmt.Errorf("%w: entry fee must be non-negative", ErrValidation)
	}
	if tournament.MaxTeams <= 0 {
		return fmt.Errorf("%w: max teams must be positive", ErrValidation)
	}
	if tournament.CommissionPercentage < 0 || tournament.CommissionPercentage > 100 {
		return fmt.Errorf("%w: commission percentage must be between 0 and 100", ErrValidation)
	}
	return validatePositionRewards(tournament.PositionRewards)
}

func validatePositionRewards(positionRewards []models.PositionReward) error {
	total := 0.0
	for _, pr := range positionRewards {
		if pr.Position <= 0 {
			return fmt.Errorf("%w: position must be positive", ErrValidation)
		}
		if pr.Percent < 0 {
			return fmt.Errorf("%w: position percentage must be non-negative", ErrValidation)
		}
		total += pr.Percent
	}
	if total > 100 {
		return fmt.Errorf("%w: position percentages sum to %.2f, over 100", ErrValidation, total)
	}
	return nil
}
