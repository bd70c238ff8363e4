package types

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlaceID and UserID are distinct string wrappers around the 24-hex document
// identifier so a place reference can't be assigned where a user reference is
// expected. References stored inside other documents stay strings, matching
// how the store keeps them.

type PlaceID string

type UserID string

// ParsePlaceID validates the 24-hex wire format of a place identifier.
func ParsePlaceID(s string) (PlaceID, error) {
	if _, err := primitive.ObjectIDFromHex(s); err != nil {
		return "", fmt.Errorf("invalid place ID format %q: %w", s, ErrValidation)
	}
	return PlaceID(s), nil
}

// ParseUserID validates the 24-hex wire format of a user identifier.
func ParseUserID(s string) (UserID, error) {
	if _, err := primitive.ObjectIDFromHex(s); err != nil {
		return "", fmt.Errorf("invalid user ID format %q: %w", s, ErrValidation)
	}
	return UserID(s), nil
}

// ObjectID converts a validated PlaceID back to its store representation.
// Callers must have parsed the ID first.
func (id PlaceID) ObjectID() primitive.ObjectID {
	oid, _ := primitive.ObjectIDFromHex(string(id))
	return oid
}

func (id UserID) ObjectID() primitive.ObjectID {
	oid, _ := primitive.ObjectIDFromHex(string(id))
	return oid
}

func (id PlaceID) String() string { return string(id) }

func (id UserID) String() string { return string(id) }
