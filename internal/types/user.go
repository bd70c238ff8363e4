package types

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is an identity-by-email profile. saved_places has set semantics: the
// repository adds entries with $addToSet so a place is never stored twice.
type User struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	Photo       *string            `json:"photo,omitempty" bson:"photo,omitempty"`
	SavedPlaces []PlaceID          `json:"saved_places" bson:"saved_places"`
	SavedCities []string           `json:"saved_cities" bson:"saved_cities"`
}
