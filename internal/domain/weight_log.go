package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeightLog is one weight measurement recorded by the client. An optional
// progress photo can be attached via a pre-signed upload; PhotoObjectKey is
// the storage key the client reports back after uploading.
type WeightLog struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID       primitive.ObjectID `bson:"clientId" json:"clientId"`
	WeightKg       float64            `bson:"weightKg" json:"weightKg"`
	MeasuredAt     time.Time          `bson:"measuredAt" json:"measuredAt"`
	PhotoObjectKey *string            `bson:"photoObjectKey,omitempty" json:"photoObjectKey,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
