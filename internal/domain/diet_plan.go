package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DietPlanEntry is one meal prescription authored by a trainer for a client.
type DietPlanEntry struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID        primitive.ObjectID `bson:"clientId" json:"clientId"`
	CreatedBy       primitive.ObjectID `bson:"createdBy" json:"createdBy"` // authoring trainer
	MealName        string             `bson:"mealName" json:"mealName"`
	MealDescription string             `bson:"mealDescription" json:"mealDescription"`
	RecommendedTime *string            `bson:"recommendedTime,omitempty" json:"recommendedTime,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
