package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"estructura/coach-app/internal/domain"
	"estructura/coach-app/internal/repository"
	"estructura/coach-app/internal/storage"
	"estructura/coach-app/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrClientNotManaged  = errors.New("client is not managed by this trainer")
	ErrWeightLogNotFound = errors.New("weight log not found")
	ErrPhotoNotAttached  = errors.New("weight log has no progress photo")
)

// DetailView selects which slice of a client's records a trainer detail
// request returns.
type DetailView string

const (
	ViewOverview DetailView = "overview"
	ViewDiet     DetailView = "diet"
	ViewTraining DetailView = "training"
)

// RosterClient is one client on the trainer's roster: the profile plus a
// bounded window of recent records.
type RosterClient struct {
	Profile       domain.Profile             `json:"profile"`
	DietPlans     []domain.DietPlanEntry     `json:"dietPlans"`
	MealLogs      []domain.MealLog           `json:"mealLogs"`
	ExerciseLogs  []domain.ExerciseLog       `json:"exerciseLogs"`
	WeightLogs    []domain.WeightLog         `json:"weightLogs"`
	TrainingPlans []domain.TrainingPlanEntry `json:"trainingPlans"`
}

// Roster is the trainer's full client list with activity counts.
type Roster struct {
	Clients         []RosterClient `json:"clients"`
	ActiveClients   int            `json:"activeClients"`
	InactiveClients int            `json:"inactiveClients"`
}

// ClientDetail is a single managed client shaped for a detail view.
type ClientDetail struct {
	View          DetailView                 `json:"view"`
	Profile       domain.Profile             `json:"profile"`
	DietPlans     []domain.DietPlanEntry     `json:"dietPlans,omitempty"`
	MealLogs      []domain.MealLog           `json:"mealLogs,omitempty"`
	ExerciseLogs  []domain.ExerciseLog       `json:"exerciseLogs,omitempty"`
	WeightLogs    []domain.WeightLog         `json:"weightLogs,omitempty"`
	TrainingPlans []domain.TrainingPlanEntry `json:"trainingPlans,omitempty"`
}

type TrainerService interface {
	// GetRoster returns all clients managed by the trainer, newest first,
	// each carrying a bounded window of recent records.
	GetRoster(ctx context.Context, trainerID primitive.ObjectID) (*Roster, error)

	// GetClientDetail returns one managed client shaped for the requested
	// view. Returns ErrClientNotManaged when the client does not belong to
	// the trainer.
	GetClientDetail(ctx context.Context, trainerID, clientID primitive.ObjectID, view DetailView) (*ClientDetail, error)

	// CreateClientAccount registers a new client under this trainer. The
	// credential insert and the profile insert are sequenced; a failure of
	// the second leaves the identity without a profile.
	CreateClientAccount(ctx context.Context, trainerID primitive.ObjectID, email, password, fullName string) (*domain.Profile, error)

	// Plan authoring (trainer-owned facts on the client's timeline).
	AddDietPlanEntry(ctx context.Context, trainerID, clientID primitive.ObjectID, mealName, mealDescription string, recommendedTime *string) (*domain.DietPlanEntry, error)
	AddTrainingPlanEntry(ctx context.Context, trainerID, clientID primitive.ObjectID, exerciseName string, sets, reps int, notes *string) (*domain.TrainingPlanEntry, error)

	// SetPaymentStatus activates or suspends a managed client.
	SetPaymentStatus(ctx context.Context, trainerID, clientID primitive.ObjectID, active bool) error

	// GetWeightPhotoDownloadURL returns a pre-signed GET URL for the progress
	// photo attached to a managed client's weight log.
	GetWeightPhotoDownloadURL(ctx context.Context, trainerID, clientID, weightID primitive.ObjectID) (string, error)
}

// --- Service Implementation ---

type trainerService struct {
	fetcher          recordFetcher
	credentialRepo   repository.CredentialRepository
	profileRepo      repository.ProfileRepository
	dietPlanRepo     repository.DietPlanRepository
	trainingPlanRepo repository.TrainingPlanRepository
	weightLogRepo    repository.WeightLogRepository
	fileStorage      storage.FileStorage
	log              *logger.Logger
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(
	credentialRepo repository.CredentialRepository,
	profileRepo repository.ProfileRepository,
	dietPlanRepo repository.DietPlanRepository,
	mealLogRepo repository.MealLogRepository,
	exerciseLogRepo repository.ExerciseLogRepository,
	weightLogRepo repository.WeightLogRepository,
	trainingPlanRepo repository.TrainingPlanRepository,
	fileStorage storage.FileStorage,
	log *logger.Logger,
) TrainerService {
	return &trainerService{
		fetcher: recordFetcher{
			dietPlanRepo:     dietPlanRepo,
			mealLogRepo:      mealLogRepo,
			exerciseLogRepo:  exerciseLogRepo,
			weightLogRepo:    weightLogRepo,
			trainingPlanRepo: trainingPlanRepo,
			log:              log,
		},
		credentialRepo:   credentialRepo,
		profileRepo:      profileRepo,
		dietPlanRepo:     dietPlanRepo,
		trainingPlanRepo: trainingPlanRepo,
		weightLogRepo:    weightLogRepo,
		fileStorage:      fileStorage,
		log:              log,
	}
}

// GetRoster loads the trainer's clients and, for each, a bounded recent
// window of records. The per-client aggregates are fetched concurrently;
// the client list itself is the one load that can fail the operation.
func (s *trainerService) GetRoster(ctx context.Context, trainerID primitive.ObjectID) (*Roster, error) {
	if trainerID == primitive.NilObjectID {
		return nil, errors.New("trainer ID is required")
	}

	profiles, err := s.profileRepo.GetClientsByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	roster := &Roster{Clients: make([]RosterClient, len(profiles))}
	var wg sync.WaitGroup
	wg.Add(len(profiles))
	for i := range profiles {
		go func(i int) {
			defer wg.Done()
			agg := s.fetcher.fetch(ctx, profiles[i].ID, rosterLimits)
			roster.Clients[i] = RosterClient{
				Profile:       profiles[i],
				DietPlans:     agg.dietPlans,
				MealLogs:      agg.mealLogs,
				ExerciseLogs:  agg.exerciseLogs,
				WeightLogs:    agg.weightLogs,
				TrainingPlans: agg.trainingPlans,
			}
		}(i)
	}
	wg.Wait()

	for i := range roster.Clients {
		if roster.Clients[i].Profile.PaymentStatus {
			roster.ActiveClients++
		} else {
			roster.InactiveClients++
		}
	}
	return roster, nil
}

// GetClientDetail verifies ownership, then loads the bounded aggregate and
// shapes it for the requested view.
func (s *trainerService) GetClientDetail(ctx context.Context, trainerID, clientID primitive.ObjectID, view DetailView) (*ClientDetail, error) {
	profile, err := s.requireManagedClient(ctx, trainerID, clientID)
	if err != nil {
		return nil, err
	}

	switch view {
	case ViewOverview, ViewDiet, ViewTraining:
	case "":
		view = ViewOverview
	default:
		return nil, fmt.Errorf("%w: unknown view %q", ErrValidation, view)
	}

	agg := s.fetcher.fetch(ctx, clientID, rosterLimits)
	detail := &ClientDetail{View: view, Profile: *profile}
	switch view {
	case ViewDiet:
		detail.DietPlans = agg.dietPlans
		detail.MealLogs = agg.mealLogs
	case ViewTraining:
		detail.TrainingPlans = agg.trainingPlans
		detail.ExerciseLogs = agg.exerciseLogs
	default:
		detail.DietPlans = agg.dietPlans
		detail.MealLogs = agg.mealLogs
		detail.ExerciseLogs = agg.exerciseLogs
		detail.WeightLogs = agg.weightLogs
		detail.TrainingPlans = agg.trainingPlans
	}
	return detail, nil
}

// CreateClientAccount registers a client under the trainer. Trainer-created
// clients start active.
func (s *trainerService) CreateClientAccount(ctx context.Context, trainerID primitive.ObjectID, email, password, fullName string) (*domain.Profile, error) {
	if trainerID == primitive.NilObjectID {
		return nil, errors.New("trainer ID is required")
	}
	if email == "" || password == "" || fullName == "" {
		return nil, fmt.Errorf("%w: email, password, and full name are required", ErrValidation)
	}

	_, err := s.credentialRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	// Effect 1: authentication identity.
	cred := &domain.Credential{
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	principalID, err := s.credentialRepo.Create(ctx, cred)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	// Effect 2: profile keyed by the identity. On failure the identity stays
	// orphaned and the store error is surfaced as-is.
	profile := &domain.Profile{
		ID:            principalID,
		FullName:      fullName,
		Role:          domain.RoleClient,
		PaymentStatus: true,
		TrainerID:     &trainerID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		s.log.Errorw("profile creation failed after credential insert, identity orphaned",
			"principalId", principalID.Hex(), "trainerId", trainerID.Hex(), "error", err)
		return nil, err
	}
	return profile, nil
}

// AddDietPlanEntry records a diet plan entry authored by the trainer on a
// managed client's timeline.
func (s *trainerService) AddDietPlanEntry(ctx context.Context, trainerID, clientID primitive.ObjectID, mealName, mealDescription string, recommendedTime *string) (*domain.DietPlanEntry, error) {
	if _, err := s.requireManagedClient(ctx, trainerID, clientID); err != nil {
		return nil, err
	}
	if mealName == "" || mealDescription == "" {
		return nil, fmt.Errorf("%w: meal name and description are required", ErrValidation)
	}

	entry := &domain.DietPlanEntry{
		ClientID:        clientID,
		CreatedBy:       trainerID,
		MealName:        mealName,
		MealDescription: mealDescription,
		RecommendedTime: recommendedTime,
	}
	id, err := s.dietPlanRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	return entry, nil
}

// AddTrainingPlanEntry records a training plan entry authored by the trainer.
func (s *trainerService) AddTrainingPlanEntry(ctx context.Context, trainerID, clientID primitive.ObjectID, exerciseName string, sets, reps int, notes *string) (*domain.TrainingPlanEntry, error) {
	if _, err := s.requireManagedClient(ctx, trainerID, clientID); err != nil {
		return nil, err
	}
	if exerciseName == "" {
		return nil, fmt.Errorf("%w: exercise name is required", ErrValidation)
	}
	if sets <= 0 || reps <= 0 {
		return nil, fmt.Errorf("%w: sets and reps must be positive", ErrValidation)
	}

	entry := &domain.TrainingPlanEntry{
		ClientID:     clientID,
		CreatedBy:    trainerID,
		ExerciseName: exerciseName,
		Sets:         sets,
		Reps:         reps,
		Notes:        notes,
	}
	id, err := s.trainingPlanRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	return entry, nil
}

// SetPaymentStatus flips a managed client's active flag. The flag only
// gates logging affordances on the client's next load; no records are
// touched.
func (s *trainerService) SetPaymentStatus(ctx context.Context, trainerID, clientID primitive.ObjectID, active bool) error {
	if _, err := s.requireManagedClient(ctx, trainerID, clientID); err != nil {
		return err
	}
	if err := s.profileRepo.SetPaymentStatus(ctx, clientID, active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	return nil
}

// GetWeightPhotoDownloadURL resolves the weight log, checks it belongs to a
// managed client, and signs a download URL for its photo.
func (s *trainerService) GetWeightPhotoDownloadURL(ctx context.Context, trainerID, clientID, weightID primitive.ObjectID) (string, error) {
	if _, err := s.requireManagedClient(ctx, trainerID, clientID); err != nil {
		return "", err
	}

	weightLog, err := s.weightLogRepo.GetByID(ctx, weightID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrWeightLogNotFound
		}
		return "", err
	}
	if weightLog.ClientID != clientID {
		return "", ErrWeightLogNotFound
	}
	if weightLog.PhotoObjectKey == nil || *weightLog.PhotoObjectKey == "" {
		return "", ErrPhotoNotAttached
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, *weightLog.PhotoObjectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		s.log.Errorw("presigned download URL generation failed",
			"weightId", weightID.Hex(), "objectKey", *weightLog.PhotoObjectKey, "error", err)
		return "", ErrUploadURLError
	}
	return downloadURL, nil
}

// requireManagedClient loads the client profile and verifies it is a client
// managed by the trainer.
func (s *trainerService) requireManagedClient(ctx context.Context, trainerID, clientID primitive.ObjectID) (*domain.Profile, error) {
	if trainerID == primitive.NilObjectID || clientID == primitive.NilObjectID {
		return nil, errors.New("trainer ID and client ID are required")
	}

	profile, err := s.profileRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotManaged
		}
		return nil, err
	}
	if !profile.IsClient() || profile.TrainerID == nil || *profile.TrainerID != trainerID {
		return nil, ErrClientNotManaged
	}
	return profile, nil
}
