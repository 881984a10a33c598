package mongo

import (
	"context"
	"errors"

	"estructura/coach-app/internal/domain"
	"estructura/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const profileCollectionName = "profiles"

// mongoProfileRepository implements the repository.ProfileRepository interface using MongoDB.
type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a new instance of mongoProfileRepository.
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(profileCollectionName),
	}
}

// Create inserts a new profile. The caller supplies the ID (the credential's
// ID) and CreatedAt; the document is stored as-is so the two-step account
// creation keeps identity and profile keyed identically.
func (r *mongoProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	if profile.ID == primitive.NilObjectID || profile.FullName == "" || profile.Role == "" {
		return errors.New("profile id, full name, and role are required")
	}

	_, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

// GetByID retrieves a profile by the principal's ID.
func (r *mongoProfileRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error) {
	var profile domain.Profile
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// GetClientsByTrainerID retrieves all client profiles referencing the given
// trainer, newest-created first.
func (r *mongoProfileRepository) GetClientsByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Profile, error) {
	filter := bson.M{"trainerId": trainerID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	clients := []domain.Profile{}
	if err = cursor.All(ctx, &clients); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return clients, nil
}

// SetPaymentStatus toggles a client's payment flag. Filtering on the client
// role guarantees the update cannot touch a trainer document.
func (r *mongoProfileRepository) SetPaymentStatus(ctx context.Context, clientID primitive.ObjectID, active bool) error {
	filter := bson.M{"_id": clientID, "role": domain.RoleClient}
	update := bson.M{"$set": bson.M{"paymentStatus": active}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureProfileIndexes creates necessary indexes for the profiles collection.
// Call this once during application startup.
func EnsureProfileIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetSparse(true), // not all profiles carry trainerId
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
