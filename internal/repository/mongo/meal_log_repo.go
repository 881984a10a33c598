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

const mealLogCollectionName = "meal_logs"

// mongoMealLogRepository implements repository.MealLogRepository
type mongoMealLogRepository struct {
	collection *mongo.Collection
}

// NewMongoMealLogRepository creates a new MealLog repository.
func NewMongoMealLogRepository(db *mongo.Database) repository.MealLogRepository {
	return &mongoMealLogRepository{
		collection: db.Collection(mealLogCollectionName),
	}
}

// Create inserts a new meal log.
func (r *mongoMealLogRepository) Create(ctx context.Context, log *domain.MealLog) (primitive.ObjectID, error) {
	if log.ClientID == primitive.NilObjectID || log.Description == "" {
		return primitive.NilObjectID, errors.New("meal log requires clientId and description")
	}
	log.ID = primitive.NewObjectID()
	log.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted meal log ID")
	}
	return insertedID, nil
}

// GetByClientID retrieves meal logs for a client, newest meal-time first.
// limit <= 0 fetches all logs.
func (r *mongoMealLogRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.MealLog, error) {
	filter := bson.M{"clientId": clientID}
	findOptions := options.Find().SetSort(bson.D{{Key: "mealTime", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := []domain.MealLog{}
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

// EnsureMealLogIndexes creates necessary indexes. Call during startup.
func EnsureMealLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "mealTime", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
