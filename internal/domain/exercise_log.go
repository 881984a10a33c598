package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseLog is one exercise session recorded by the client. CaloriesBurned
// is computed from the duration at write time (see CaloriesBurned in
// metrics.go) and is the only stored derived quantity in the system.
type ExerciseLog struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID        primitive.ObjectID `bson:"clientId" json:"clientId"`
	ExerciseName    string             `bson:"exerciseName" json:"exerciseName"`
	ExerciseTime    time.Time          `bson:"exerciseTime" json:"exerciseTime"`
	DurationMinutes int                `bson:"durationMinutes" json:"durationMinutes"`
	CaloriesBurned  int                `bson:"caloriesBurned" json:"caloriesBurned"`
	Notes           *string            `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
