package types

import "go.mongodb.org/mongo-driver/bson/primitive"

// DefaultSafetyScore is assigned to a place before it has any reviews.
const DefaultSafetyScore = 3.5

// Place is a directory entry: a hotel, restaurant or neighborhood with a
// community safety score. The type field is free text.
type Place struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	City        string             `json:"city" bson:"city"`
	Type        string             `json:"type" bson:"type"`
	SafetyScore float64            `json:"safety_score" bson:"safety_score"`
	Description string             `json:"description" bson:"description"`
	MainTags    []string           `json:"main_tags" bson:"main_tags"`
}

// PlaceFilter carries the optional directory filters. City and Type match the
// whole field case-insensitively; Query matches a substring of name,
// description or any tag.
type PlaceFilter struct {
	City  string
	Type  string
	Query string
}
