package services

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/BattleKash/battlekash-admin-backend/internal/models"
	"github.com/BattleKash/battlekash-admin-backend/internal/repositories"
	"github.com/BattleKash/battlekash-admin-backend/pkg/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repositories mirroring the MongoDB implementations' contracts,
// including mongo.ErrNoDocuments on misses and the distributed-flag guards.

type fakeTournamentRepo struct {
	tournaments map[primitive.ObjectID]*models.Tournament
}

var _ repositories.TournamentRepository = (*fakeTournamentRepo)(nil)

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{tournaments: make(map[primitive.ObjectID]*models.Tournament)}
}

func (r *fakeTournamentRepo) Create(ctx context.Context, tournament *models.Tournament) error {
	tournament.ID = primitive.NewObjectID()
	tournament.CreatedAt = time.Now()
	tournament.UpdatedAt = time.Now()
	copied := *tournament
	r.tournaments[tournament.ID] = &copied
	return nil
}

func (r *fakeTournamentRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tournament, error) {
	tournament, ok := r.tournaments[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *tournament
	return &copied, nil
}

func (r *fakeTournamentRepo) FindAll(ctx context.Context, page, limit int) ([]*models.Tournament, error) {
	out := make([]*models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		copied := *t
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeTournamentRepo) FindByStatus(ctx context.Context, status models.TournamentStatus, page, limit int) ([]*models.Tournament, error) {
	out := make([]*models.Tournament, 0)
	for _, t := range r.tournaments {
		if t.Status == status {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeTournamentRepo) Update(ctx context.Context, tournament *models.Tournament) error {
	if _, ok := r.tournaments[tournament.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	tournament.UpdatedAt = time.Now()
	copied := *tournament
	r.tournaments[tournament.ID] = &copied
	return nil
}

func (r *fakeTournamentRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.TournamentStatus) error {
	tournament, ok := r.tournaments[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	tournament.Status = status
	return nil
}

func (r *fakeTournamentRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.tournaments)), nil
}

type fakeRegistrationRepo struct {
	registrations []*models.Registration
}

var _ repositories.RegistrationRepository = (*fakeRegistrationRepo)(nil)

func (r *fakeRegistrationRepo) Create(ctx context.Context, registration *models.Registration) error {
	registration.ID = primitive.NewObjectID()
	registration.CreatedAt = time.Now()
	copied := *registration
	r.registrations = append(r.registrations, &copied)
	return nil
}

func (r *fakeRegistrationRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Registration, error) {
	for _, reg := range r.registrations {
		if reg.ID == id {
			copied := *reg
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeRegistrationRepo) FindByTournament(ctx context.Context, tournamentID primitive.ObjectID) ([]*models.Registration, error) {
	out := make([]*models.Registration, 0)
	for _, reg := range r.registrations {
		if reg.TournamentID == tournamentID {
			copied := *reg
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) CountByTournament(ctx context.Context, tournamentID primitive.ObjectID) (int64, error) {
	regs, _ := r.FindByTournament(ctx, tournamentID)
	return int64(len(regs)), nil
}

type fakeResultRepo struct {
	results map[primitive.ObjectID]*models.Result
}

var _ repositories.ResultRepository = (*fakeResultRepo)(nil)

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{results: make(map[primitive.ObjectID]*models.Result)}
}

func (r *fakeResultRepo) Create(ctx context.Context, result *models.Result) error {
	result.ID = primitive.NewObjectID()
	result.CreatedAt = time.Now()
	result.UpdatedAt = time.Now()
	copied := *result
	r.results[result.ID] = &copied
	return nil
}

func (r *fakeResultRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Result, error) {
	result, ok := r.results[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *result
	return &copied, nil
}

func (r *fakeResultRepo) FindByTournament(ctx context.Context, tournamentID primitive.ObjectID) ([]*models.Result, error) {
	out := make([]*models.Result, 0)
	for _, result := range r.results {
		if result.TournamentID == tournamentID {
			copied := *result
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeResultRepo) FindByTournamentAndRegistration(ctx context.Context, tournamentID, registrationID primitive.ObjectID) (*models.Result, error) {
	for _, result := range r.results {
		if result.TournamentID == tournamentID && result.RegistrationID == registrationID {
			copied := *result
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeResultRepo) FindEligibleForDistribution(ctx context.Context, tournamentID primitive.ObjectID) ([]*models.Result, error) {
	out := make([]*models.Result, 0)
	for _, result := range r.results {
		if result.TournamentID == tournamentID && result.ResultVerified && !result.RewardDistributed {
			copied := *result
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeResultRepo) UpdateGuarded(ctx context.Context, result *models.Result) error {
	stored, ok := r.results[result.ID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if stored.RewardDistributed {
		return repositories.ErrResultLocked
	}
	result.UpdatedAt = time.Now()
	copied := *result
	r.results[result.ID] = &copied
	return nil
}

func (r *fakeResultRepo) UpdateNotes(ctx context.Context, id primitive.ObjectID, notes string) error {
	stored, ok := r.results[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	stored.VerificationNotes = notes
	return nil
}

func (r *fakeResultRepo) MarkDistributed(ctx context.Context, id primitive.ObjectID, totalReward float64) error {
	stored, ok := r.results[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if stored.RewardDistributed {
		return repositories.ErrResultLocked
	}
	stored.RewardDistributed = true
	stored.DistributedAt = time.Now()
	stored.TotalReward = totalReward
	return nil
}

type fakeTransactionRepo struct {
	transactions map[primitive.ObjectID]*models.WalletTransaction
}

var _ repositories.WalletTransactionRepository = (*fakeTransactionRepo)(nil)

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{transactions: make(map[primitive.ObjectID]*models.WalletTransaction)}
}

func (r *fakeTransactionRepo) Create(ctx context.Context, transaction *models.WalletTransaction) error {
	transaction.ID = primitive.NewObjectID()
	transaction.CreatedAt = time.Now()
	transaction.UpdatedAt = time.Now()
	copied := *transaction
	r.transactions[transaction.ID] = &copied
	return nil
}

func (r *fakeTransactionRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.WalletTransaction, error) {
	tx, ok := r.transactions[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *tx
	return &copied, nil
}

func (r *fakeTransactionRepo) FindByUserID(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]*models.WalletTransaction, error) {
	out := make([]*models.WalletTransaction, 0)
	for _, tx := range r.transactions {
		if tx.UserID == userID {
			copied := *tx
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) FindByTournamentID(ctx context.Context, tournamentID primitive.ObjectID, page, limit int) ([]*models.WalletTransaction, error) {
	out := make([]*models.WalletTransaction, 0)
	for _, tx := range r.transactions {
		if tx.TournamentID == tournamentID {
			copied := *tx
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) FindNonFailedByResult(ctx context.Context, resultID primitive.ObjectID) ([]*models.WalletTransaction, error) {
	out := make([]*models.WalletTransaction, 0)
	for _, tx := range r.transactions {
		if tx.ResultID == resultID && tx.Status != models.TransactionStatusFailed {
			copied := *tx
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) FindNonFailedByResultAndType(ctx context.Context, resultID primitive.ObjectID, txType string) (*models.WalletTransaction, error) {
	for _, tx := range r.transactions {
		if tx.ResultID == resultID && tx.Type == txType && tx.Status != models.TransactionStatusFailed {
			copied := *tx
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeTransactionRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string, description string) error {
	tx, ok := r.transactions[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	tx.Status = status
	tx.Description = description
	tx.UpdatedAt = time.Now()
	return nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
	// failCredits holds user IDs whose wallet credits should fail.
	failCredits map[primitive.ObjectID]bool
}

var _ repositories.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:       make(map[primitive.ObjectID]*models.User),
		failCredits: make(map[primitive.ObjectID]bool),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) IncrementWalletBalance(ctx context.Context, userID primitive.ObjectID, amount float64) error {
	if r.failCredits[userID] {
		return errors.New("write concern error")
	}
	user, ok := r.users[userID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	user.WalletBalance += amount
	return nil
}

type fakeAdminUserRepo struct {
	adminUsers map[primitive.ObjectID]*models.AdminUser
}

var _ repositories.AdminUserRepository = (*fakeAdminUserRepo)(nil)

func newFakeAdminUserRepo() *fakeAdminUserRepo {
	return &fakeAdminUserRepo{adminUsers: make(map[primitive.ObjectID]*models.AdminUser)}
}

func (r *fakeAdminUserRepo) Create(ctx context.Context, adminUser *models.AdminUser) error {
	adminUser.ID = primitive.NewObjectID()
	adminUser.CreatedAt = time.Now()
	adminUser.UpdatedAt = time.Now()
	copied := *adminUser
	r.adminUsers[adminUser.ID] = &copied
	return nil
}

func (r *fakeAdminUserRepo) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	for _, adminUser := range r.adminUsers {
		if adminUser.Email == email {
			copied := *adminUser
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeAdminUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	adminUser, ok := r.adminUsers[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *adminUser
	return &copied, nil
}

// fakeAssetStore resolves keys against a fixed base URL
type fakeAssetStore struct {
	baseURL string
}

var _ storage.AssetStore = (*fakeAssetStore)(nil)

func (s *fakeAssetStore) GetPublicURL(key string) string {
	return s.baseURL + "/" + key
}

func (s *fakeAssetStore) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	return &storage.UploadResult{Key: key, Location: s.GetPublicURL(key)}, nil
}

func (s *fakeAssetStore) Delete(ctx context.Context, key string) error {
	return nil
}
