package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a user's safety report for a place. PlaceID is checked to exist
// when the review is created; UserID is stored as given, unvalidated.
type Review struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     UserID             `json:"user_id" bson:"user_id"`
	PlaceID    PlaceID            `json:"place_id" bson:"place_id"`
	Rating     int                `json:"rating" bson:"rating"`
	SafetyTags []string           `json:"safety_tags" bson:"safety_tags"`
	Comment    *string            `json:"comment,omitempty" bson:"comment,omitempty"`
	NightSafe  bool               `json:"night_safe" bson:"night_safe"`
	Harassment bool               `json:"harassment" bson:"harassment"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}
