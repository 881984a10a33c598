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

const dietPlanCollectionName = "diet_plans"

// mongoDietPlanRepository implements repository.DietPlanRepository
type mongoDietPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoDietPlanRepository creates a new DietPlan repository.
func NewMongoDietPlanRepository(db *mongo.Database) repository.DietPlanRepository {
	return &mongoDietPlanRepository{
		collection: db.Collection(dietPlanCollectionName),
	}
}

// Create inserts a new diet plan entry.
func (r *mongoDietPlanRepository) Create(ctx context.Context, entry *domain.DietPlanEntry) (primitive.ObjectID, error) {
	if entry.ClientID == primitive.NilObjectID || entry.CreatedBy == primitive.NilObjectID || entry.MealName == "" {
		return primitive.NilObjectID, errors.New("diet plan entry requires clientId, createdBy, and mealName")
	}
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted diet plan ID")
	}
	return insertedID, nil
}

// GetByClientID retrieves diet plan entries for a client, newest-created
// first. limit <= 0 fetches all entries.
func (r *mongoDietPlanRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.DietPlanEntry, error) {
	filter := bson.M{"clientId": clientID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []domain.DietPlanEntry{}
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// EnsureDietPlanIndexes creates necessary indexes. Call during startup.
func EnsureDietPlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
