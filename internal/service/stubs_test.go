package service

import (
	"context"
	"time"

	"estructura/coach-app/internal/domain"
	"estructura/coach-app/internal/repository"
	"estructura/coach-app/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Function-field stubs for the repository interfaces. Unset fields return
// zero values so each test only wires what it exercises.

func newTestLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

type stubCredentialRepo struct {
	createFn     func(ctx context.Context, cred *domain.Credential) (primitive.ObjectID, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.Credential, error)
}

func (s *stubCredentialRepo) Create(ctx context.Context, cred *domain.Credential) (primitive.ObjectID, error) {
	if s.createFn != nil {
		return s.createFn(ctx, cred)
	}
	return primitive.NewObjectID(), nil
}

func (s *stubCredentialRepo) GetByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, repository.ErrNotFound
}

type stubProfileRepo struct {
	createFn           func(ctx context.Context, profile *domain.Profile) error
	getByIDFn          func(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error)
	clientsByTrainerFn func(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Profile, error)
	setPaymentFn       func(ctx context.Context, clientID primitive.ObjectID, active bool) error
}

func (s *stubProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	if s.createFn != nil {
		return s.createFn(ctx, profile)
	}
	return nil
}

func (s *stubProfileRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (s *stubProfileRepo) GetClientsByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Profile, error) {
	if s.clientsByTrainerFn != nil {
		return s.clientsByTrainerFn(ctx, trainerID)
	}
	return []domain.Profile{}, nil
}

func (s *stubProfileRepo) SetPaymentStatus(ctx context.Context, clientID primitive.ObjectID, active bool) error {
	if s.setPaymentFn != nil {
		return s.setPaymentFn(ctx, clientID, active)
	}
	return nil
}

type stubDietPlanRepo struct {
	createFn      func(ctx context.Context, entry *domain.DietPlanEntry) (primitive.ObjectID, error)
	getByClientFn func(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.DietPlanEntry, error)
}

func (s *stubDietPlanRepo) Create(ctx context.Context, entry *domain.DietPlanEntry) (primitive.ObjectID, error) {
	if s.createFn != nil {
		return s.createFn(ctx, entry)
	}
	return primitive.NewObjectID(), nil
}

func (s *stubDietPlanRepo) GetByClientID(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.DietPlanEntry, error) {
	if s.getByClientFn != nil {
		return s.getByClientFn(ctx, clientID, limit)
	}
	return []domain.DietPlanEntry{}, nil
}

type stubMealLogRepo struct {
	createFn      func(ctx context.Context, log *domain.MealLog) (primitive.ObjectID, error)
	getByClientFn func(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.MealLog, error)
}

func (s *stubMealLogRepo) Create(ctx context.Context, log *domain.MealLog) (primitive.ObjectID, error) {
	if s.createFn != nil {
		return s.createFn(ctx, log)
	}
	return primitive.NewObjectID(), nil
}

func (s *stubMealLogRepo) GetByClientID(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.MealLog, error) {
	if s.getByClientFn != nil {
		return s.getByClientFn(ctx, clientID, limit)
	}
	return []domain.MealLog{}, nil
}

type stubExerciseLogRepo struct {
	createFn      func(ctx context.Context, log *domain.ExerciseLog) (primitive.ObjectID, error)
	getByClientFn func(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.ExerciseLog, error)
}

func (s *stubExerciseLogRepo) Create(ctx context.Context, log *domain.ExerciseLog) (primitive.ObjectID, error) {
	if s.createFn != nil {
		return s.createFn(ctx, log)
	}
	return primitive.NewObjectID(), nil
}

func (s *stubExerciseLogRepo) GetByClientID(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.ExerciseLog, error) {
	if s.getByClientFn != nil {
		return s.getByClientFn(ctx, clientID, limit)
	}
	return []domain.ExerciseLog{}, nil
}

type stubWeightLogRepo struct {
	createFn      func(ctx context.Context, log *domain.WeightLog) (primitive.ObjectID, error)
	getByIDFn     func(ctx context.Context, id primitive.ObjectID) (*domain.WeightLog, error)
	getByClientFn func(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.WeightLog, error)
}

func (s *stubWeightLogRepo) Create(ctx context.Context, log *domain.WeightLog) (primitive.ObjectID, error) {
	if s.createFn != nil {
		return s.createFn(ctx, log)
	}
	return primitive.NewObjectID(), nil
}

func (s *stubWeightLogRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WeightLog, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (s *stubWeightLogRepo) GetByClientID(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.WeightLog, error) {
	if s.getByClientFn != nil {
		return s.getByClientFn(ctx, clientID, limit)
	}
	return []domain.WeightLog{}, nil
}

type stubTrainingPlanRepo struct {
	createFn      func(ctx context.Context, entry *domain.TrainingPlanEntry) (primitive.ObjectID, error)
	getByClientFn func(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.TrainingPlanEntry, error)
}

func (s *stubTrainingPlanRepo) Create(ctx context.Context, entry *domain.TrainingPlanEntry) (primitive.ObjectID, error) {
	if s.createFn != nil {
		return s.createFn(ctx, entry)
	}
	return primitive.NewObjectID(), nil
}

func (s *stubTrainingPlanRepo) GetByClientID(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.TrainingPlanEntry, error) {
	if s.getByClientFn != nil {
		return s.getByClientFn(ctx, clientID, limit)
	}
	return []domain.TrainingPlanEntry{}, nil
}

type stubFileStorage struct {
	uploadURLFn   func(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error)
	downloadURLFn func(ctx context.Context, objectKey string, expires time.Duration) (string, error)
}

func (s *stubFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	if s.uploadURLFn != nil {
		return s.uploadURLFn(ctx, objectKey, contentType, expires)
	}
	return "https://storage.example/" + objectKey, nil
}

func (s *stubFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	if s.downloadURLFn != nil {
		return s.downloadURLFn(ctx, objectKey, expires)
	}
	return "https://storage.example/" + objectKey, nil
}

func (s *stubFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	return nil
}
