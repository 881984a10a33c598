package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleTrainer Role = "trainer"
	RoleClient  Role = "client"
)

// Profile represents the stored identity record for a Trainer or a Client.
// The ID is the authentication identity's ID (see Credential), so resolving
// a principal to its profile is a single keyed lookup.
type Profile struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	FullName  string             `bson:"fullName" json:"fullName"`
	Role      Role               `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`

	// --- Client-specific ---
	// PaymentStatus gates the client's logging affordances. Trainers are
	// implicitly always active.
	PaymentStatus bool `bson:"paymentStatus" json:"paymentStatus"`
	// TrainerID references the trainer managing this client. Nil for trainers.
	TrainerID *primitive.ObjectID `bson:"trainerId,omitempty" json:"trainerId,omitempty"`
}

func (p *Profile) IsTrainer() bool {
	return p.Role == RoleTrainer
}

func (p *Profile) IsClient() bool {
	return p.Role == RoleClient
}
