package repository

import (
	"context"

	"estructura/coach-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound = RepositoryError("not found")
	ErrConflict = RepositoryError("conflict")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// CredentialRepository stores authentication identities. Account creation
// inserts a credential first and a profile second; the repositories are
// intentionally unaware of each other.
type CredentialRepository interface {
	Create(ctx context.Context, cred *domain.Credential) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.Credential, error)
}

// ProfileRepository defines the interface for interacting with profile data.
// Profiles are keyed by the credential's ID, so GetByID is the resolver's
// single keyed lookup.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error)
	GetClientsByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Profile, error)
	SetPaymentStatus(ctx context.Context, clientID primitive.ObjectID, active bool) error
}

// DietPlanRepository defines the interface for diet plan entries.
type DietPlanRepository interface {
	Create(ctx context.Context, entry *domain.DietPlanEntry) (primitive.ObjectID, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.DietPlanEntry, error)
}

// MealLogRepository defines the interface for meal logs.
type MealLogRepository interface {
	Create(ctx context.Context, log *domain.MealLog) (primitive.ObjectID, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.MealLog, error)
}

// ExerciseLogRepository defines the interface for exercise logs.
type ExerciseLogRepository interface {
	Create(ctx context.Context, log *domain.ExerciseLog) (primitive.ObjectID, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.ExerciseLog, error)
}

// WeightLogRepository defines the interface for weight logs.
type WeightLogRepository interface {
	Create(ctx context.Context, log *domain.WeightLog) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WeightLog, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.WeightLog, error)
}

// TrainingPlanRepository defines the interface for training plan entries.
type TrainingPlanRepository interface {
	Create(ctx context.Context, entry *domain.TrainingPlanEntry) (primitive.ObjectID, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.TrainingPlanEntry, error)
}
