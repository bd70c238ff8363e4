package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Persona labels produced by the quiz scoring function.
const (
	PersonaTrailblazer      = "Trailblazer"
	PersonaPlanner          = "Planner"
	PersonaCautiousExplorer = "Cautious Explorer"
)

// QuizAnswers is the submitted quiz snapshot. The values are free text from
// the client; scoring only recognizes the documented options.
type QuizAnswers struct {
	ComfortLevel        string   `json:"comfort_level" bson:"comfort_level" validate:"required"`
	SoloExperience      string   `json:"solo_experience" bson:"solo_experience" validate:"required"`
	NightTravel         string   `json:"night_travel" bson:"night_travel" validate:"required"`
	AnxietyTriggers     []string `json:"anxiety_triggers" bson:"anxiety_triggers"`
	TransportConfidence string   `json:"transport_confidence" bson:"transport_confidence" validate:"required"`
}

// QuizResult persists one quiz evaluation. UserID is optional and stored as
// submitted, without checking the user exists.
type QuizResult struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID          *UserID            `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Persona         string             `json:"persona" bson:"persona"`
	Recommendations []string           `json:"recommendations" bson:"recommendations"`
	Answers         QuizAnswers        `json:"answers" bson:"answers"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
}
