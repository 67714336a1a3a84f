package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BattleKash/battlekash-admin-backend/internal/models"
	"github.com/BattleKash/battlekash-admin-backend/internal/repositories"
	"github.com/BattleKash/battlekash-admin-backend/internal/rewards"
	"github.com/BattleKash/battlekash-admin-backend/pkg/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure ResultServiceImpl implements ResultService
var _ ResultService = (*ResultServiceImpl)(nil)

// ResultServiceImpl handles the result record store and verification workflow
type ResultServiceImpl struct {
	resultRepo       repositories.ResultRepository
	registrationRepo repositories.RegistrationRepository
	tournamentRepo   repositories.TournamentRepository
	assets           storage.AssetStore
}

// NewResultService creates a new ResultServiceImpl. The asset store may be nil
// when no screenshot bucket is configured.
func NewResultService(
	resultRepo repositories.ResultRepository,
	registrationRepo repositories.RegistrationRepository,
	tournamentRepo repositories.TournamentRepository,
	assets storage.AssetStore,
) *ResultServiceImpl {
	return &ResultServiceImpl{
		resultRepo:       resultRepo,
		registrationRepo: registrationRepo,
		tournamentRepo:   tournamentRepo,
		assets:           assets,
	}
}

// ListByTournament returns one result record per registration. Registrations
// without a stored result get a synthesized zero-valued record so the admin
// view is always complete.
func (s *ResultServiceImpl) ListByTournament(ctx context.Context, tournamentID primitive.ObjectID) ([]*models.Result, error) {
	registrations, err := s.registrationRepo.FindByTournament(ctx, tournamentID)
	if err != nil {
		slog.Error("Failed to list registrations", "error", err, "tournamentId", tournamentID)
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}

	stored, err := s.resultRepo.FindByTournament(ctx, tournamentID)
	if err != nil {
		slog.Error("Failed to list results", "error", err, "tournamentId", tournamentID)
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	byRegistration := make(map[primitive.ObjectID]*models.Result, len(stored))
	for _, result := range stored {
		byRegistration[result.RegistrationID] = result
	}

	results := make([]*models.Result, 0, len(registrations))
	for _, registration := range registrations {
		if result, ok := byRegistration[registration.ID]; ok {
			results = append(results, result)
			continue
		}
		// Unsubmitted participant: zero-valued placeholder, not persisted.
		results = append(results, &models.Result{
			TournamentID:   tournamentID,
			RegistrationID: registration.ID,
			UserID:         registration.UserID,
		})
	}
	return results, nil
}

// GetResultByID retrieves a result by its ID
func (s *ResultServiceImpl) GetResultByID(ctx context.Context, id primitive.ObjectID) (*models.Result, error) {
	result, err := s.resultRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to retrieve result: %w", err)
	}
	return result, nil
}

// SubmitResult records a submission for a registration, creating the result
// record if the participant has none yet.
func (s *ResultServiceImpl) SubmitResult(ctx context.Context, tournamentID, registrationID primitive.ObjectID, input *SubmitResultInput) (*models.Result, error) {
	if input.Kills < 0 {
		return nil, fmt.Errorf("%w: kills must be non-negative", ErrValidation)
	}
	if input.Position < 0 {
		return nil, fmt.Errorf("%w: position must be non-negative", ErrValidation)
	}

	registration, err := s.registrationRepo.FindByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: registration not found", ErrValidation)
		}
		return nil, fmt.Errorf("failed to retrieve registration: %w", err)
	}

	result, err := s.resultRepo.FindByTournamentAndRegistration(ctx, tournamentID, registrationID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to retrieve result: %w", err)
	}
	if result == nil {
		result = &models.Result{
			TournamentID:   tournamentID,
			RegistrationID: registrationID,
			UserID:         registration.UserID,
		}
		if err := s.resultRepo.Create(ctx, result); err != nil {
			slog.Error("Failed to create result record", "error", err, "registrationId", registrationID)
			return nil, fmt.Errorf("failed to create result: %w", err)
		}
	}
	if result.RewardDistributed {
		return nil, ErrImmutableAfterSettlement
	}

	result.Kills = input.Kills
	result.Position = input.Position
	if input.ScreenshotURL != "" {
		result.ScreenshotURL = input.ScreenshotURL
	}
	result.ResultSubmitted = true
	result.ResultSubmittedAt = time.Now()

	if err := s.recomputeAndSave(ctx, result); err != nil {
		return nil, err
	}
	slog.Info("Result submitted", "resultId", result.ID, "tournamentId", tournamentID,
		"kills", result.Kills, "position", result.Position)
	return result, nil
}

// UpdateResult edits result fields. Validation is all-or-nothing: nothing is
// mutated unless every supplied field is valid. Distributed records only
// accept notes edits.
func (s *ResultServiceImpl) UpdateResult(ctx context.Context, id primitive.ObjectID, input *UpdateResultInput) (*models.Result, error) {
	if input.Kills != nil && *input.Kills < 0 {
		return nil, fmt.Errorf("%w: kills must be non-negative", ErrValidation)
	}
	if input.Position != nil && *input.Position <= 0 {
		return nil, fmt.Errorf("%w: position must be positive", ErrValidation)
	}

	result, err := s.GetResultByID(ctx, id)
	if err != nil {
		return nil, err
	}

	notesOnly := input.Kills == nil && input.Position == nil && input.ScreenshotURL == nil && input.Notes != nil
	if result.RewardDistributed {
		if !notesOnly {
			return nil, ErrImmutableAfterSettlement
		}
		result.VerificationNotes = *input.Notes
		if err := s.resultRepo.UpdateNotes(ctx, id, *input.Notes); err != nil {
			return nil, fmt.Errorf("failed to update notes: %w", err)
		}
		return result, nil
	}

	if input.Kills != nil {
		result.Kills = *input.Kills
	}
	if input.Position != nil {
		result.Position = *input.Position
	}
	if input.ScreenshotURL != nil {
		result.ScreenshotURL = *input.ScreenshotURL
	}
	if input.Notes != nil {
		result.VerificationNotes = *input.Notes
	}

	if err := s.recomputeAndSave(ctx, result); err != nil {
		return nil, err
	}
	slog.Info("Result updated", "resultId", id, "kills", result.Kills, "position", result.Position,
		"totalReward", result.TotalReward)
	return result, nil
}

// VerifyResult finalizes a result: the admin-confirmed kills and position are
// stored, the reward snapshot is computed and the verified flag set.
// Re-verification of an unsettled result recomputes the snapshot in place.
func (s *ResultServiceImpl) VerifyResult(ctx context.Context, id primitive.ObjectID, input *VerifyResultInput, verifiedBy string) (*models.Result, error) {
	if input.Kills < 0 {
		return nil, fmt.Errorf("%w: kills must be non-negative", ErrValidation)
	}
	if input.Position <= 0 {
		return nil, fmt.Errorf("%w: position must be positive", ErrValidation)
	}

	result, err := s.GetResultByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if result.RewardDistributed {
		return nil, ErrImmutableAfterSettlement
	}

	tournament, err := s.tournamentRepo.FindByID(ctx, result.TournamentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to retrieve tournament: %w", err)
	}
	if !tournament.Status.Started() {
		slog.Warn("Verification attempted before tournament start", "resultId", id,
			"tournamentId", tournament.ID, "status", tournament.Status)
		return nil, fmt.Errorf("%w: status is %q", ErrTournamentNotStarted, tournament.Status)
	}

	result.Kills = input.Kills
	result.Position = input.Position
	if input.Notes != "" {
		result.VerificationNotes = input.Notes
	}
	result.ResultVerified = true
	result.ResultVerifiedAt = time.Now()
	result.VerifiedBy = verifiedBy

	breakdown := rewards.Compute(result.Kills, result.Position,
		rewards.PrizePool(tournament.Economics()), tournament.RewardTable(),
		tournament.KillRewardPerKill.Amount)
	result.PlacementReward = breakdown.PlacementReward
	result.KillReward = breakdown.KillReward
	result.TotalReward = breakdown.TotalReward

	if err := s.resultRepo.UpdateGuarded(ctx, result); err != nil {
		if errors.Is(err, repositories.ErrResultLocked) {
			return nil, ErrImmutableAfterSettlement
		}
		slog.Error("Failed to save verified result", "error", err, "resultId", id)
		return nil, fmt.Errorf("failed to save verified result: %w", err)
	}

	slog.Info("Result verified", "resultId", id, "verifiedBy", verifiedBy,
		"kills", result.Kills, "position", result.Position, "totalReward", result.TotalReward)
	return result, nil
}

// ResultImageURL resolves the screenshot URL for a result. Absolute URLs are
// returned as stored; bare object keys are resolved through the asset store.
func (s *ResultServiceImpl) ResultImageURL(ctx context.Context, id primitive.ObjectID) (string, error) {
	result, err := s.GetResultByID(ctx, id)
	if err != nil {
		return "", err
	}
	if result.ScreenshotURL == "" {
		return "", nil
	}
	if strings.HasPrefix(result.ScreenshotURL, "http://") || strings.HasPrefix(result.ScreenshotURL, "https://") {
		return result.ScreenshotURL, nil
	}
	if s.assets == nil {
		return "", nil
	}
	return s.assets.GetPublicURL(result.ScreenshotURL), nil
}

// recomputeAndSave refreshes the derived reward snapshot from the tournament
// economics and persists the record through the distributed-guarded update.
func (s *ResultServiceImpl) recomputeAndSave(ctx context.Context, result *models.Result) error {
	tournament, err := s.tournamentRepo.FindByID(ctx, result.TournamentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to retrieve tournament: %w", err)
	}

	breakdown := rewards.Compute(result.Kills, result.Position,
		rewards.PrizePool(tournament.Economics()), tournament.RewardTable(),
		tournament.KillRewardPerKill.Amount)
	result.PlacementReward = breakdown.PlacementReward
	result.KillReward = breakdown.KillReward
	result.TotalReward = breakdown.TotalReward

	if err := s.resultRepo.UpdateGuarded(ctx, result); err != nil {
		if errors.Is(err, repositories.ErrResultLocked) {
			return ErrImmutableAfterSettlement
		}
		slog.Error("Failed to save result", "error", err, "resultId", result.ID)
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}
