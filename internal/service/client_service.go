package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"estructura/coach-app/internal/domain"
	"estructura/coach-app/internal/repository"
	"estructura/coach-app/internal/storage"
	"estructura/coach-app/pkg/logger"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrValidation     = errors.New("validation error")
	ErrUploadURLError = errors.New("failed to generate upload URL")
)

// ClientDashboard is the full client aggregate: the five record streams plus
// the metrics derived from them. Metrics are recomputed on every load and
// never persisted.
type ClientDashboard struct {
	Profile       domain.Profile             `json:"profile"`
	DietPlans     []domain.DietPlanEntry     `json:"dietPlans"`
	MealLogs      []domain.MealLog           `json:"mealLogs"`
	ExerciseLogs  []domain.ExerciseLog       `json:"exerciseLogs"`
	WeightLogs    []domain.WeightLog         `json:"weightLogs"`
	TrainingPlans []domain.TrainingPlanEntry `json:"trainingPlans"`

	TotalCaloriesBurned int        `json:"totalCaloriesBurned"`
	LatestWeight        *float64   `json:"latestWeight,omitempty"`
	WeightChange        float64    `json:"weightChange"`
	WeightDeltas        []*float64 `json:"weightDeltas"`

	// LoggingEnabled mirrors the profile's payment status. It only disables
	// logging affordances at the point of use; the write path itself does
	// not enforce it.
	LoggingEnabled bool `json:"loggingEnabled"`
}

// PhotoUploadURL carries a pre-signed PUT URL plus the object key the client
// reports back when it logs the weight entry.
type PhotoUploadURL struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

type ClientService interface {
	// GetDashboard loads and joins the client's five record streams and
	// computes the derived metrics.
	GetDashboard(ctx context.Context, clientID primitive.ObjectID) (*ClientDashboard, error)

	// Mutation gateway (client-owned facts). Each call is a single
	// independent write; the caller reloads the dashboard afterwards.
	LogMeal(ctx context.Context, clientID primitive.ObjectID, mealTime time.Time, description string, dietPlanID *primitive.ObjectID) (*domain.MealLog, error)
	LogExercise(ctx context.Context, clientID primitive.ObjectID, name string, exerciseTime time.Time, durationMinutes int, notes *string) (*domain.ExerciseLog, error)
	LogWeight(ctx context.Context, clientID primitive.ObjectID, weightKg float64, measuredAt time.Time, photoObjectKey *string) (*domain.WeightLog, error)

	// RequestPhotoUploadURL returns a pre-signed URL for attaching a progress
	// photo to a weight entry.
	RequestPhotoUploadURL(ctx context.Context, clientID primitive.ObjectID, contentType string) (*PhotoUploadURL, error)
}

// --- Service Implementation ---

type clientService struct {
	fetcher         recordFetcher
	profileRepo     repository.ProfileRepository
	mealLogRepo     repository.MealLogRepository
	exerciseLogRepo repository.ExerciseLogRepository
	weightLogRepo   repository.WeightLogRepository
	fileStorage     storage.FileStorage
	log             *logger.Logger
}

// NewClientService creates a new instance of clientService.
func NewClientService(
	profileRepo repository.ProfileRepository,
	dietPlanRepo repository.DietPlanRepository,
	mealLogRepo repository.MealLogRepository,
	exerciseLogRepo repository.ExerciseLogRepository,
	weightLogRepo repository.WeightLogRepository,
	trainingPlanRepo repository.TrainingPlanRepository,
	fileStorage storage.FileStorage,
	log *logger.Logger,
) ClientService {
	return &clientService{
		fetcher: recordFetcher{
			dietPlanRepo:     dietPlanRepo,
			mealLogRepo:      mealLogRepo,
			exerciseLogRepo:  exerciseLogRepo,
			weightLogRepo:    weightLogRepo,
			trainingPlanRepo: trainingPlanRepo,
			log:              log,
		},
		profileRepo:     profileRepo,
		mealLogRepo:     mealLogRepo,
		exerciseLogRepo: exerciseLogRepo,
		weightLogRepo:   weightLogRepo,
		fileStorage:     fileStorage,
		log:             log,
	}
}

// GetDashboard runs the client aggregation: profile lookup, then five
// concurrent unbounded fetches, then the derived metrics.
func (s *clientService) GetDashboard(ctx context.Context, clientID primitive.ObjectID) (*ClientDashboard, error) {
	if clientID == primitive.NilObjectID {
		return nil, errors.New("client ID is required")
	}

	profile, err := s.profileRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	agg := s.fetcher.fetch(ctx, clientID, aggregateLimits{})
	dash := &ClientDashboard{
		Profile:             *profile,
		DietPlans:           agg.dietPlans,
		MealLogs:            agg.mealLogs,
		ExerciseLogs:        agg.exerciseLogs,
		WeightLogs:          agg.weightLogs,
		TrainingPlans:       agg.trainingPlans,
		TotalCaloriesBurned: domain.TotalCaloriesBurned(agg.exerciseLogs),
		LatestWeight:        domain.LatestWeight(agg.weightLogs),
		WeightChange:        domain.WeightChange(agg.weightLogs),
		WeightDeltas:        domain.WeightDeltas(agg.weightLogs),
		LoggingEnabled:      profile.PaymentStatus,
	}
	return dash, nil
}

// === Mutation Gateway ===

// LogMeal records a meal eaten by the client.
func (s *clientService) LogMeal(ctx context.Context, clientID primitive.ObjectID, mealTime time.Time, description string, dietPlanID *primitive.ObjectID) (*domain.MealLog, error) {
	if clientID == primitive.NilObjectID {
		return nil, errors.New("client ID is required")
	}
	if description == "" {
		return nil, fmt.Errorf("%w: meal description is required", ErrValidation)
	}
	if mealTime.IsZero() {
		return nil, fmt.Errorf("%w: meal time is required", ErrValidation)
	}

	log := &domain.MealLog{
		ClientID:    clientID,
		MealTime:    mealTime,
		Description: description,
		DietPlanID:  dietPlanID,
	}
	id, err := s.mealLogRepo.Create(ctx, log)
	if err != nil {
		return nil, err
	}
	log.ID = id
	return log, nil
}

// LogExercise records an exercise session. The stored calories are computed
// from the duration here, at write time.
func (s *clientService) LogExercise(ctx context.Context, clientID primitive.ObjectID, name string, exerciseTime time.Time, durationMinutes int, notes *string) (*domain.ExerciseLog, error) {
	if clientID == primitive.NilObjectID {
		return nil, errors.New("client ID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name is required", ErrValidation)
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be a positive number of minutes", ErrValidation)
	}
	if exerciseTime.IsZero() {
		return nil, fmt.Errorf("%w: exercise time is required", ErrValidation)
	}

	log := &domain.ExerciseLog{
		ClientID:        clientID,
		ExerciseName:    name,
		ExerciseTime:    exerciseTime,
		DurationMinutes: durationMinutes,
		CaloriesBurned:  domain.CaloriesBurned(durationMinutes),
		Notes:           notes,
	}
	id, err := s.exerciseLogRepo.Create(ctx, log)
	if err != nil {
		return nil, err
	}
	log.ID = id
	return log, nil
}

// LogWeight records a weight measurement, optionally linking a previously
// uploaded progress photo.
func (s *clientService) LogWeight(ctx context.Context, clientID primitive.ObjectID, weightKg float64, measuredAt time.Time, photoObjectKey *string) (*domain.WeightLog, error) {
	if clientID == primitive.NilObjectID {
		return nil, errors.New("client ID is required")
	}
	if weightKg <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive", ErrValidation)
	}
	if measuredAt.IsZero() {
		return nil, fmt.Errorf("%w: measurement time is required", ErrValidation)
	}

	log := &domain.WeightLog{
		ClientID:       clientID,
		WeightKg:       weightKg,
		MeasuredAt:     measuredAt,
		PhotoObjectKey: photoObjectKey,
	}
	id, err := s.weightLogRepo.Create(ctx, log)
	if err != nil {
		return nil, err
	}
	log.ID = id
	return log, nil
}

// RequestPhotoUploadURL generates a pre-signed PUT URL under a fresh object
// key scoped to the client.
func (s *clientService) RequestPhotoUploadURL(ctx context.Context, clientID primitive.ObjectID, contentType string) (*PhotoUploadURL, error) {
	if clientID == primitive.NilObjectID {
		return nil, errors.New("client ID is required")
	}
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, fmt.Errorf("%w: invalid or missing image content type", ErrValidation)
	}

	fileExtension := ""
	parts := strings.Split(contentType, "/")
	if len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("progress-photos", clientID.Hex(), fmt.Sprintf("%s.%s", uuid.NewString(), fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		s.log.Errorw("presigned upload URL generation failed", "clientId", clientID.Hex(), "error", err)
		return nil, ErrUploadURLError
	}

	return &PhotoUploadURL{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}
