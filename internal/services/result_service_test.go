package services

import (
	"context"
	"testing"

	"github.com/BattleKash/battlekash-admin-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type resultTestEnv struct {
	svc        *ResultServiceImpl
	tournament *models.Tournament
	results    *fakeResultRepo
	regs       *fakeRegistrationRepo
}

// newResultTestEnv builds a live squad tournament with a 900 pool, a 60%
// first-place share and a manual 10-per-kill reward.
func newResultTestEnv(t *testing.T) *resultTestEnv {
	t.Helper()
	tournaments := newFakeTournamentRepo()
	results := newFakeResultRepo()
	regs := &fakeRegistrationRepo{}

	tournament := squadTournament()
	tournament.Status = models.TournamentStatusLive
	tournament.PositionRewards = []models.PositionReward{{Position: 1, Percent: 60}}
	tournament.KillRewardPerKill = models.RewardValue{Amount: 10, Manual: true}
	require.NoError(t, tournaments.Create(context.Background(), tournament))

	return &resultTestEnv{
		svc:        NewResultService(results, regs, tournaments, &fakeAssetStore{baseURL: "https://assets.battlekash.in"}),
		tournament: tournament,
		results:    results,
		regs:       regs,
	}
}

func (e *resultTestEnv) register(t *testing.T) *models.Registration {
	t.Helper()
	reg := &models.Registration{
		TournamentID: e.tournament.ID,
		UserID:       primitive.NewObjectID(),
		DisplayName:  "player",
	}
	require.NoError(t, e.regs.Create(context.Background(), reg))
	return reg
}

func (e *resultTestEnv) storedResult(t *testing.T, reg *models.Registration) *models.Result {
	t.Helper()
	result := &models.Result{
		TournamentID:   e.tournament.ID,
		RegistrationID: reg.ID,
		UserID:         reg.UserID,
	}
	require.NoError(t, e.results.Create(context.Background(), result))
	return result
}

func TestListByTournamentSynthesizesMissingResults(t *testing.T) {
	env := newResultTestEnv(t)
	regWithResult := env.register(t)
	regWithout := env.register(t)
	stored := env.storedResult(t, regWithResult)

	listed, err := env.svc.ListByTournament(context.Background(), env.tournament.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	byRegistration := make(map[primitive.ObjectID]*models.Result)
	for _, r := range listed {
		byRegistration[r.RegistrationID] = r
	}
	assert.Equal(t, stored.ID, byRegistration[regWithResult.ID].ID)

	synthesized := byRegistration[regWithout.ID]
	assert.True(t, synthesized.ID.IsZero())
	assert.Equal(t, regWithout.UserID, synthesized.UserID)
	assert.Zero(t, synthesized.Kills)
	assert.False(t, synthesized.ResultSubmitted)
}

func TestSubmitResultCreatesRecord(t *testing.T) {
	env := newResultTestEnv(t)
	reg := env.register(t)

	result, err := env.svc.SubmitResult(context.Background(), env.tournament.ID, reg.ID, &SubmitResultInput{
		Kills:         7,
		Position:      3,
		ScreenshotURL: "screens/match-1.png",
	})
	require.NoError(t, err)

	assert.True(t, result.ResultSubmitted)
	assert.False(t, result.ResultSubmittedAt.IsZero())
	assert.Equal(t, 7, result.Kills)
	assert.Equal(t, 3, result.Position)
	// Position 3 is not in the table; kills still pay out.
	assert.Equal(t, 0.0, result.PlacementReward)
	assert.Equal(t, 70.0, result.KillReward)
	assert.Equal(t, 70.0, result.TotalReward)
}

func TestVerifyResultComputesRewardSnapshot(t *testing.T) {
	env := newResultTestEnv(t)
	reg := env.register(t)
	stored := env.storedResult(t, reg)

	verified, err := env.svc.VerifyResult(context.Background(), stored.ID, &VerifyResultInput{
		Kills:    12,
		Position: 1,
		Notes:    "screenshot checked",
	}, "admin@battlekash.in")
	require.NoError(t, err)

	assert.True(t, verified.ResultVerified)
	assert.False(t, verified.ResultVerifiedAt.IsZero())
	assert.Equal(t, "admin@battlekash.in", verified.VerifiedBy)
	assert.Equal(t, 540.0, verified.PlacementReward)
	assert.Equal(t, 120.0, verified.KillReward)
	assert.Equal(t, 660.0, verified.TotalReward)
}

func TestVerifyResultRejectedBeforeTournamentStart(t *testing.T) {
	env := newResultTestEnv(t)
	reg := env.register(t)
	stored := env.storedResult(t, reg)
	require.NoError(t, env.svc.tournamentRepo.UpdateStatus(context.Background(), env.tournament.ID, models.TournamentStatusUpcoming))

	_, err := env.svc.VerifyResult(context.Background(), stored.ID, &VerifyResultInput{
		Kills:    12,
		Position: 1,
	}, "admin@battlekash.in")
	assert.ErrorIs(t, err, ErrTournamentNotStarted)

	// Nothing on the record moved.
	after, findErr := env.results.FindByID(context.Background(), stored.ID)
	require.NoError(t, findErr)
	assert.False(t, after.ResultVerified)
	assert.Zero(t, after.Kills)
	assert.Zero(t, after.TotalReward)
}

func TestUpdateResultRecomputesRewards(t *testing.T) {
	env := newResultTestEnv(t)
	reg := env.register(t)
	stored := env.storedResult(t, reg)

	kills := 4
	position := 1
	updated, err := env.svc.UpdateResult(context.Background(), stored.ID, &UpdateResultInput{
		Kills:    &kills,
		Position: &position,
	})
	require.NoError(t, err)

	assert.Equal(t, 540.0, updated.PlacementReward)
	assert.Equal(t, 40.0, updated.KillReward)
	assert.Equal(t, updated.PlacementReward+updated.KillReward, updated.TotalReward)
}

func TestUpdateResultValidationIsAllOrNothing(t *testing.T) {
	env := newResultTestEnv(t)
	reg := env.register(t)
	stored := env.storedResult(t, reg)

	badKills := -1
	position := 1
	_, err := env.svc.UpdateResult(context.Background(), stored.ID, &UpdateResultInput{
		Kills:    &badKills,
		Position: &position,
	})
	assert.ErrorIs(t, err, ErrValidation)

	after, findErr := env.results.FindByID(context.Background(), stored.ID)
	require.NoError(t, findErr)
	assert.Zero(t, after.Position)
}

func TestUpdateResultImmutableAfterDistribution(t *testing.T) {
	env := newResultTestEnv(t)
	reg := env.register(t)
	stored := env.storedResult(t, reg)
	require.NoError(t, env.results.MarkDistributed(context.Background(), stored.ID, 660))

	kills := 20
	_, err := env.svc.UpdateResult(context.Background(), stored.ID, &UpdateResultInput{Kills: &kills})
	assert.ErrorIs(t, err, ErrImmutableAfterSettlement)

	// Notes stay editable after settlement.
	notes := "disputed, reviewed again"
	updated, err := env.svc.UpdateResult(context.Background(), stored.ID, &UpdateResultInput{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.VerificationNotes)

	after, findErr := env.results.FindByID(context.Background(), stored.ID)
	require.NoError(t, findErr)
	assert.Equal(t, notes, after.VerificationNotes)
	assert.Zero(t, after.Kills)
}

func TestSubmitResultRejectedAfterDistribution(t *testing.T) {
	env := newResultTestEnv(t)
	reg := env.register(t)
	stored := env.storedResult(t, reg)
	require.NoError(t, env.results.MarkDistributed(context.Background(), stored.ID, 660))

	_, err := env.svc.SubmitResult(context.Background(), env.tournament.ID, reg.ID, &SubmitResultInput{Kills: 1})
	assert.ErrorIs(t, err, ErrImmutableAfterSettlement)
}

func TestResultImageURL(t *testing.T) {
	env := newResultTestEnv(t)
	reg := env.register(t)

	tests := []struct {
		name          string
		screenshotURL string
		want          string
	}{
		{"absolute url passthrough", "https://cdn.example.com/shot.png", "https://cdn.example.com/shot.png"},
		{"object key resolved", "screens/shot.png", "https://assets.battlekash.in/screens/shot.png"},
		{"unset", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := env.storedResult(t, reg)
			if tc.screenshotURL != "" {
				result.ScreenshotURL = tc.screenshotURL
				require.NoError(t, env.results.UpdateGuarded(context.Background(), result))
			}

			url, err := env.svc.ResultImageURL(context.Background(), result.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, url)
		})
	}
}
