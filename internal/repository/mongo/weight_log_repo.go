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

const weightLogCollectionName = "weight_logs"

// mongoWeightLogRepository implements repository.WeightLogRepository
type mongoWeightLogRepository struct {
	collection *mongo.Collection
}

// NewMongoWeightLogRepository creates a new WeightLog repository.
func NewMongoWeightLogRepository(db *mongo.Database) repository.WeightLogRepository {
	return &mongoWeightLogRepository{
		collection: db.Collection(weightLogCollectionName),
	}
}

// Create inserts a new weight log.
func (r *mongoWeightLogRepository) Create(ctx context.Context, log *domain.WeightLog) (primitive.ObjectID, error) {
	if log.ClientID == primitive.NilObjectID || log.WeightKg <= 0 {
		return primitive.NilObjectID, errors.New("weight log requires clientId and a positive weight")
	}
	log.ID = primitive.NewObjectID()
	log.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted weight log ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single weight log. Used to resolve a progress photo's
// object key before generating a download URL.
func (r *mongoWeightLogRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WeightLog, error) {
	var log domain.WeightLog
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// GetByClientID retrieves weight logs for a client, newest measurement first.
// limit <= 0 fetches all logs.
func (r *mongoWeightLogRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID, limit int64) ([]domain.WeightLog, error) {
	filter := bson.M{"clientId": clientID}
	findOptions := options.Find().SetSort(bson.D{{Key: "measuredAt", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := []domain.WeightLog{}
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

// EnsureWeightLogIndexes creates necessary indexes. Call during startup.
func EnsureWeightLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "measuredAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
