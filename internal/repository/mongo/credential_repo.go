package mongo

import (
	"context"
	"errors"
	"time"

	"estructura/coach-app/internal/domain"
	"estructura/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const credentialCollectionName = "credentials"

// mongoCredentialRepository implements repository.CredentialRepository using MongoDB.
type mongoCredentialRepository struct {
	collection *mongo.Collection
}

// NewMongoCredentialRepository creates a new instance of mongoCredentialRepository.
func NewMongoCredentialRepository(db *mongo.Database) repository.CredentialRepository {
	return &mongoCredentialRepository{
		collection: db.Collection(credentialCollectionName),
	}
}

// Create inserts a new authentication identity.
func (r *mongoCredentialRepository) Create(ctx context.Context, cred *domain.Credential) (primitive.ObjectID, error) {
	if cred.Email == "" || cred.PasswordHash == "" {
		return primitive.NilObjectID, errors.New("credential email and password hash are required")
	}

	cred.ID = primitive.NewObjectID()
	cred.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, cred)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByEmail retrieves a credential by its email address.
func (r *mongoCredentialRepository) GetByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	var cred domain.Credential
	filter := bson.M{"email": email}

	err := r.collection.FindOne(ctx, filter).Decode(&cred)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &cred, nil
}

// EnsureCredentialIndexes creates necessary indexes for the credentials
// collection. Call this once during application startup.
func EnsureCredentialIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
