package services

import (
	"context"
	"testing"

	"github.com/BattleKash/battlekash-admin-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type settlementTestEnv struct {
	svc          *SettlementServiceImpl
	tournament   *models.Tournament
	tournaments  *fakeTournamentRepo
	results      *fakeResultRepo
	transactions *fakeTransactionRepo
	users        *fakeUserRepo
}

func newSettlementTestEnv(t *testing.T) *settlementTestEnv {
	t.Helper()
	tournaments := newFakeTournamentRepo()
	results := newFakeResultRepo()
	transactions := newFakeTransactionRepo()
	users := newFakeUserRepo()

	tournament := squadTournament()
	tournament.Status = models.TournamentStatusCompleted
	require.NoError(t, tournaments.Create(context.Background(), tournament))

	return &settlementTestEnv{
		svc:          NewSettlementService(results, tournaments, transactions, users),
		tournament:   tournament,
		tournaments:  tournaments,
		results:      results,
		transactions: transactions,
		users:        users,
	}
}

// verifiedResult stores a verified result with the given reward snapshot and a
// freshly created user to credit.
func (e *settlementTestEnv) verifiedResult(t *testing.T, position int, placement, kill float64) *models.Result {
	t.Helper()
	user := &models.User{Username: "player-" + primitive.NewObjectID().Hex()[:6]}
	require.NoError(t, e.users.Create(context.Background(), user))

	result := &models.Result{
		TournamentID:    e.tournament.ID,
		RegistrationID:  primitive.NewObjectID(),
		UserID:          user.ID,
		Position:        position,
		Kills:           12,
		ResultVerified:  true,
		PlacementReward: placement,
		KillReward:      kill,
		TotalReward:     placement + kill,
	}
	require.NoError(t, e.results.Create(context.Background(), result))
	return result
}

func (e *settlementTestEnv) walletBalance(t *testing.T, userID primitive.ObjectID) float64 {
	t.Helper()
	user, err := e.users.FindByID(context.Background(), userID)
	require.NoError(t, err)
	return user.WalletBalance
}

func TestDistributeCreatesLedgerEntriesAndCreditsWallet(t *testing.T) {
	env := newSettlementTestEnv(t)
	result := env.verifiedResult(t, 1, 540, 120)

	entry, err := env.svc.Distribute(context.Background(), result.ID)
	require.NoError(t, err)

	assert.False(t, entry.AlreadyDistributed)
	assert.Equal(t, 660.0, entry.Amount)
	require.Len(t, entry.TransactionIDs, 2)
	assert.Equal(t, 660.0, env.walletBalance(t, result.UserID))

	first, err := env.transactions.FindNonFailedByResultAndType(context.Background(), result.ID, models.TransactionTypePrizeFirst)
	require.NoError(t, err)
	assert.Equal(t, 540.0, first.Amount)
	assert.Equal(t, models.TransactionStatusCompleted, first.Status)

	kills, err := env.transactions.FindNonFailedByResultAndType(context.Background(), result.ID, models.TransactionTypePrizeKills)
	require.NoError(t, err)
	assert.Equal(t, 120.0, kills.Amount)
	assert.Equal(t, models.TransactionStatusCompleted, kills.Status)

	stored, err := env.results.FindByID(context.Background(), result.ID)
	require.NoError(t, err)
	assert.True(t, stored.RewardDistributed)
	assert.False(t, stored.DistributedAt.IsZero())
}

func TestDistributePlacementTransactionTypes(t *testing.T) {
	env := newSettlementTestEnv(t)

	tests := []struct {
		position int
		txType   string
	}{
		{1, models.TransactionTypePrizeFirst},
		{2, models.TransactionTypePrizeSecond},
		{5, models.TransactionTypePrize},
	}

	for _, tc := range tests {
		result := env.verifiedResult(t, tc.position, 100, 0)
		_, err := env.svc.Distribute(context.Background(), result.ID)
		require.NoError(t, err)

		tx, err := env.transactions.FindNonFailedByResultAndType(context.Background(), result.ID, tc.txType)
		require.NoError(t, err)
		assert.Equal(t, 100.0, tx.Amount)
	}
}

func TestDistributeIsIdempotent(t *testing.T) {
	env := newSettlementTestEnv(t)
	result := env.verifiedResult(t, 1, 540, 120)

	first, err := env.svc.Distribute(context.Background(), result.ID)
	require.NoError(t, err)

	second, err := env.svc.Distribute(context.Background(), result.ID)
	require.NoError(t, err)

	assert.True(t, second.AlreadyDistributed)
	assert.Equal(t, first.Amount, second.Amount)
	assert.ElementsMatch(t, first.TransactionIDs, second.TransactionIDs)
	// No double credit, no extra ledger entries.
	assert.Equal(t, 660.0, env.walletBalance(t, result.UserID))
	assert.Len(t, env.transactions.transactions, 2)
}

func TestDistributeNotEligible(t *testing.T) {
	env := newSettlementTestEnv(t)

	t.Run("unverified result", func(t *testing.T) {
		result := env.verifiedResult(t, 1, 540, 120)
		stored := env.results.results[result.ID]
		stored.ResultVerified = false

		_, err := env.svc.Distribute(context.Background(), result.ID)
		assert.ErrorIs(t, err, ErrNotEligibleForSettlement)
	})

	t.Run("cancelled tournament", func(t *testing.T) {
		result := env.verifiedResult(t, 1, 540, 120)
		require.NoError(t, env.tournaments.UpdateStatus(context.Background(), env.tournament.ID, models.TournamentStatusCancelled))
		defer func() {
			require.NoError(t, env.tournaments.UpdateStatus(context.Background(), env.tournament.ID, models.TournamentStatusCompleted))
		}()

		_, err := env.svc.Distribute(context.Background(), result.ID)
		assert.ErrorIs(t, err, ErrNotEligibleForSettlement)
	})

	t.Run("missing result", func(t *testing.T) {
		_, err := env.svc.Distribute(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrResultNotFound)
	})
}

func TestDistributeWalletFailureIsRetrySafe(t *testing.T) {
	env := newSettlementTestEnv(t)
	result := env.verifiedResult(t, 1, 540, 120)
	env.users.failCredits[result.UserID] = true

	_, err := env.svc.Distribute(context.Background(), result.ID)
	assert.ErrorIs(t, err, ErrLedgerWrite)

	// The distributed flag never flipped and the failed attempt left only a
	// failed entry behind.
	stored, findErr := env.results.FindByID(context.Background(), result.ID)
	require.NoError(t, findErr)
	assert.False(t, stored.RewardDistributed)
	_, err = env.transactions.FindNonFailedByResultAndType(context.Background(), result.ID, models.TransactionTypePrizeFirst)
	assert.Error(t, err)
	assert.Equal(t, 0.0, env.walletBalance(t, result.UserID))

	// Retry after the outage pays exactly once.
	env.users.failCredits[result.UserID] = false
	entry, err := env.svc.Distribute(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, 660.0, entry.Amount)
	assert.Equal(t, 660.0, env.walletBalance(t, result.UserID))
}

func TestDistributeSkipsSettledComponents(t *testing.T) {
	env := newSettlementTestEnv(t)
	result := env.verifiedResult(t, 1, 540, 120)

	// A previous attempt settled the placement component before crashing.
	placementTx := &models.WalletTransaction{
		UserID:       result.UserID,
		TournamentID: result.TournamentID,
		ResultID:     result.ID,
		Amount:       540,
		Type:         models.TransactionTypePrizeFirst,
		Status:       models.TransactionStatusCompleted,
	}
	require.NoError(t, env.transactions.Create(context.Background(), placementTx))
	require.NoError(t, env.users.IncrementWalletBalance(context.Background(), result.UserID, 540))

	entry, err := env.svc.Distribute(context.Background(), result.ID)
	require.NoError(t, err)

	// Only the kill component paid in this run; the placement credit stands.
	assert.Contains(t, entry.TransactionIDs, placementTx.ID)
	assert.Equal(t, 660.0, env.walletBalance(t, result.UserID))
	assert.Len(t, env.transactions.transactions, 2)
}

func TestDistributeAllContinuesPastFailures(t *testing.T) {
	env := newSettlementTestEnv(t)
	first := env.verifiedResult(t, 1, 540, 120)
	second := env.verifiedResult(t, 2, 200, 50)
	third := env.verifiedResult(t, 7, 0, 30)
	env.users.failCredits[second.UserID] = true

	report, err := env.svc.DistributeAll(context.Background(), env.tournament.ID)
	require.NoError(t, err)

	require.Len(t, report.Succeeded, 2)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, second.ID, report.Failed[0].ResultID)
	assert.NotEmpty(t, report.Failed[0].Reason)
	// Only the two successes count.
	assert.Equal(t, 690.0, report.TotalDistributed)
	assert.Equal(t, 660.0, env.walletBalance(t, first.UserID))
	assert.Equal(t, 0.0, env.walletBalance(t, second.UserID))
	assert.Equal(t, 30.0, env.walletBalance(t, third.UserID))
}

func TestDistributeAllSkipsAlreadyDistributed(t *testing.T) {
	env := newSettlementTestEnv(t)
	settled := env.verifiedResult(t, 1, 540, 120)
	fresh := env.verifiedResult(t, 3, 0, 80)

	_, err := env.svc.Distribute(context.Background(), settled.ID)
	require.NoError(t, err)

	report, err := env.svc.DistributeAll(context.Background(), env.tournament.ID)
	require.NoError(t, err)

	// The settled result is no longer eligible, so only the fresh one pays.
	require.Len(t, report.Succeeded, 1)
	assert.Equal(t, fresh.ID, report.Succeeded[0].ResultID)
	assert.Equal(t, 80.0, report.TotalDistributed)
	assert.Equal(t, 660.0, env.walletBalance(t, settled.UserID))
}

func TestDistributeZeroRewardMarksDistributed(t *testing.T) {
	env := newSettlementTestEnv(t)
	result := env.verifiedResult(t, 9, 0, 0)

	entry, err := env.svc.Distribute(context.Background(), result.ID)
	require.NoError(t, err)

	assert.Empty(t, entry.TransactionIDs)
	assert.Equal(t, 0.0, entry.Amount)
	stored, err := env.results.FindByID(context.Background(), result.ID)
	require.NoError(t, err)
	assert.True(t, stored.RewardDistributed)
}
