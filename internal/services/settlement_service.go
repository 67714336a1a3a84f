package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BattleKash/battlekash-admin-backend/internal/models"
	"github.com/BattleKash/battlekash-admin-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure SettlementServiceImpl implements SettlementService
var _ SettlementService = (*SettlementServiceImpl)(nil)

// SettlementServiceImpl writes the settlement ledger and credits wallets.
// Idempotency rests on two conditions: at most one non-failed transaction per
// (resultId, type) pair, and the distributed flag flipped only after every
// component settled.
type SettlementServiceImpl struct {
	resultRepo      repositories.ResultRepository
	tournamentRepo  repositories.TournamentRepository
	transactionRepo repositories.WalletTransactionRepository
	userRepo        repositories.UserRepository
}

// NewSettlementService creates a new SettlementServiceImpl
func NewSettlementService(
	resultRepo repositories.ResultRepository,
	tournamentRepo repositories.TournamentRepository,
	transactionRepo repositories.WalletTransactionRepository,
	userRepo repositories.UserRepository,
) *SettlementServiceImpl {
	return &SettlementServiceImpl{
		resultRepo:      resultRepo,
		tournamentRepo:  tournamentRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
	}
}

// rewardComponent is one payable slice of a settled result
type rewardComponent struct {
	txType      string
	amount      float64
	description string
}

// Distribute settles a single verified result. Calling it again on a settled
// result is a benign no-op that reports the recorded amount.
func (s *SettlementServiceImpl) Distribute(ctx context.Context, resultID primitive.ObjectID) (*models.DistributionEntry, error) {
	result, err := s.resultRepo.FindByID(ctx, resultID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to retrieve result: %w", err)
	}

	if result.RewardDistributed {
		existing, err := s.transactionRepo.FindNonFailedByResult(ctx, resultID)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve ledger entries: %w", err)
		}
		txIDs := make([]primitive.ObjectID, 0, len(existing))
		for _, tx := range existing {
			txIDs = append(txIDs, tx.ID)
		}
		slog.Info("Result already settled, skipping", "resultId", resultID, "totalReward", result.TotalReward)
		return &models.DistributionEntry{
			ResultID:           result.ID,
			RegistrationID:     result.RegistrationID,
			UserID:             result.UserID,
			TransactionIDs:     txIDs,
			Amount:             result.TotalReward,
			AlreadyDistributed: true,
		}, nil
	}

	if !result.ResultVerified {
		return nil, fmt.Errorf("%w: result has not been verified", ErrNotEligibleForSettlement)
	}

	tournament, err := s.tournamentRepo.FindByID(ctx, result.TournamentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to retrieve tournament: %w", err)
	}
	if tournament.Status == models.TournamentStatusCancelled {
		return nil, fmt.Errorf("%w: tournament is cancelled", ErrNotEligibleForSettlement)
	}

	components := buildComponents(result, tournament)

	txIDs := make([]primitive.ObjectID, 0, len(components))
	for _, component := range components {
		txID, err := s.settleComponent(ctx, result, component)
		if err != nil {
			return nil, err
		}
		txIDs = append(txIDs, txID)
	}

	if err := s.resultRepo.MarkDistributed(ctx, resultID, result.TotalReward); err != nil {
		if errors.Is(err, repositories.ErrResultLocked) {
			// Concurrent settlement won the race; the ledger guards kept
			// the credits single-shot, so report the recorded amount.
			slog.Warn("Result settled concurrently", "resultId", resultID)
		} else {
			slog.Error("Failed to mark result distributed", "error", err, "resultId", resultID)
			return nil, fmt.Errorf("failed to mark result distributed: %w", err)
		}
	}

	slog.Info("Result settled", "resultId", resultID, "userId", result.UserID,
		"amount", result.TotalReward, "transactions", len(txIDs))
	return &models.DistributionEntry{
		ResultID:       result.ID,
		RegistrationID: result.RegistrationID,
		UserID:         result.UserID,
		TransactionIDs: txIDs,
		Amount:         result.TotalReward,
	}, nil
}

// DistributeAll settles every verified, undistributed result of a tournament.
// A failed result does not stop the batch; it is reported and the run moves on.
func (s *SettlementServiceImpl) DistributeAll(ctx context.Context, tournamentID primitive.ObjectID) (*models.DistributionReport, error) {
	if _, err := s.tournamentRepo.FindByID(ctx, tournamentID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to retrieve tournament: %w", err)
	}

	eligible, err := s.resultRepo.FindEligibleForDistribution(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible results: %w", err)
	}

	report := &models.DistributionReport{
		TournamentID: tournamentID,
		Succeeded:    []models.DistributionEntry{},
		Failed:       []models.DistributionFailure{},
	}

	for _, result := range eligible {
		entry, err := s.Distribute(ctx, result.ID)
		if err != nil {
			slog.Error("Distribution failed for result", "error", err,
				"resultId", result.ID, "userId", result.UserID)
			report.Failed = append(report.Failed, models.DistributionFailure{
				ResultID: result.ID,
				UserID:   result.UserID,
				Reason:   err.Error(),
			})
			continue
		}
		report.Succeeded = append(report.Succeeded, *entry)
		if !entry.AlreadyDistributed {
			report.TotalDistributed += entry.Amount
		}
	}

	slog.Info("Batch distribution finished", "tournamentId", tournamentID,
		"succeeded", len(report.Succeeded), "failed", len(report.Failed),
		"totalDistributed", report.TotalDistributed)
	return report, nil
}

// settleComponent writes one ledger entry and applies its wallet credit.
// A surviving non-failed entry for the same (resultId, type) means a previous
// attempt got this far, so the component is skipped rather than paid twice.
func (s *SettlementServiceImpl) settleComponent(ctx context.Context, result *models.Result, component rewardComponent) (primitive.ObjectID, error) {
	existing, err := s.transactionRepo.FindNonFailedByResultAndType(ctx, result.ID, component.txType)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return primitive.NilObjectID, fmt.Errorf("failed to check ledger: %w", err)
	}
	if existing != nil {
		slog.Info("Component already settled, skipping", "resultId", result.ID,
			"type", component.txType, "transactionId", existing.ID)
		return existing.ID, nil
	}

	transaction := &models.WalletTransaction{
		UserID:       result.UserID,
		TournamentID: result.TournamentID,
		ResultID:     result.ID,
		Amount:       component.amount,
		Type:         component.txType,
		Status:       models.TransactionStatusPending,
		Description:  component.description,
	}
	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		slog.Error("Failed to create ledger entry", "error", err,
			"resultId", result.ID, "type", component.txType)
		return primitive.NilObjectID, fmt.Errorf("%w: %v", ErrLedgerWrite, err)
	}

	if err := s.userRepo.IncrementWalletBalance(ctx, result.UserID, component.amount); err != nil {
		slog.Error("Wallet credit failed", "error", err, "userId", result.UserID,
			"transactionId", transaction.ID, "amount", component.amount)
		reason := fmt.Sprintf("wallet credit failed at %s: %v", time.Now().Format(time.RFC3339), err)
		if markErr := s.transactionRepo.UpdateStatus(ctx, transaction.ID, models.TransactionStatusFailed, reason); markErr != nil {
			slog.Error("Failed to mark ledger entry failed", "error", markErr, "transactionId", transaction.ID)
		}
		return primitive.NilObjectID, fmt.Errorf("%w: wallet credit failed: %v", ErrLedgerWrite, err)
	}

	if err := s.transactionRepo.UpdateStatus(ctx, transaction.ID, models.TransactionStatusCompleted, component.description); err != nil {
		// Credit already landed; the entry stays pending and the per-type
		// guard keeps a retry from paying the component again.
		slog.Error("Failed to complete ledger entry", "error", err, "transactionId", transaction.ID)
		return primitive.NilObjectID, fmt.Errorf("%w: %v", ErrLedgerWrite, err)
	}

	return transaction.ID, nil
}

// buildComponents splits a verified result's reward snapshot into the ledger
// entries it should produce. Zero-amount components produce no entry.
func buildComponents(result *models.Result, tournament *models.Tournament) []rewardComponent {
	components := make([]rewardComponent, 0, 2)
	if result.PlacementReward > 0 {
		components = append(components, rewardComponent{
			txType:      placementTransactionType(result.Position),
			amount:      result.PlacementReward,
			description: fmt.Sprintf("Position %d prize for %s", result.Position, tournament.Name),
		})
	}
	if result.KillReward > 0 {
		components = append(components, rewardComponent{
			txType:      models.TransactionTypePrizeKills,
			amount:      result.KillReward,
			description: fmt.Sprintf("Kill rewards (%d kills) for %s", result.Kills, tournament.Name),
		})
	}
	return components
}

func placementTransactionType(position int) string {
	switch position {
	case 1:
		return models.TransactionTypePrizeFirst
	case 2:
		return models.TransactionTypePrizeSecond
	default:
		return models.TransactionTypePrize
	}
}
