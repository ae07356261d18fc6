package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered athlete account.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"` // stored lowercase, unique
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	PasswordHash string             `bson:"passwordHash" json:"-"` // never expose via JSON
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Optional intervals.icu link. Both fields are set together by connect
	// and cleared together by disconnect; never partially present.
	IntervalsAthleteID *string `bson:"intervalsAthleteId,omitempty" json:"intervalsAthleteId,omitempty"`
	IntervalsAPIKey    *string `bson:"intervalsApiKey,omitempty" json:"-"`
}

// IsProviderConnected reports whether the user has stored intervals.icu
// credentials.
func (u *User) IsProviderConnected() bool {
	return u.IntervalsAthleteID != nil && u.IntervalsAPIKey != nil
}
