package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Credential is the authentication identity record. It is deliberately
// separate from Profile: account creation first inserts a credential, then a
// profile keyed by the same ID. A credential without a profile is an orphaned
// identity (the second step failed) and resolves to ErrProfileNotFound.
type Credential struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"` // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
