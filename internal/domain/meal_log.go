package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealLog is a meal recorded by the client themself. It may optionally
// reference the diet plan entry it corresponds to.
type MealLog struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ClientID    primitive.ObjectID  `bson:"clientId" json:"clientId"`
	MealTime    time.Time           `bson:"mealTime" json:"mealTime"`
	Description string              `bson:"mealDescription" json:"mealDescription"`
	DietPlanID  *primitive.ObjectID `bson:"dietPlanId,omitempty" json:"dietPlanId,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
}
