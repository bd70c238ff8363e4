package quiz

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/solosafe/solosafe-api/app/observability/metrics"
	"github.com/solosafe/solosafe-api/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Evaluation is the outcome of scoring one quiz submission.
type Evaluation struct {
	ID              primitive.ObjectID
	Persona         string
	Recommendations []string
}

// Service defines the business logic contract for the travel-comfort quiz.
type Service interface {
	// EvaluateQuiz scores the answers, persists the result and returns the
	// persona with its recommended destinations. Same answers always yield
	// the same persona and recommendations.
	EvaluateQuiz(ctx context.Context, answers types.QuizAnswers, userID *types.UserID) (*Evaluation, error)
}

type ServiceImpl struct {
	logger         *slog.Logger
	quizRepository Repository
}

func NewServiceImpl(quizRepository Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:         logger,
		quizRepository: quizRepository,
	}
}

// scoreAnswers is the deterministic point scoring over the five quiz fields.
func scoreAnswers(answers types.QuizAnswers) int {
	score := 0
	switch answers.ComfortLevel {
	case "high":
		score += 2
	case "medium":
		score++
	}
	switch answers.SoloExperience {
	case "5+":
		score += 2
	case "2-4":
		score++
	}
	if answers.NightTravel == "comfortable" {
		score += 2
	}
	if !slices.Contains(answers.AnxietyTriggers, "crowds") {
		score++
	}
	if answers.TransportConfidence == "metro" || answers.TransportConfidence == "ride-share" {
		score++
	}
	return score
}

// personaForScore maps a score to its persona and fixed destination list.
func personaForScore(score int) (string, []string) {
	switch {
	case score >= 6:
		return types.PersonaTrailblazer, []string{"Singapore", "Lisbon", "Copenhagen"}
	case score >= 4:
		return types.PersonaPlanner, []string{"Tokyo", "Vienna", "Seoul"}
	default:
		return types.PersonaCautiousExplorer, []string{"Reykjavik", "Zurich", "Taipei"}
	}
}

func (s *ServiceImpl) EvaluateQuiz(ctx context.Context, answers types.QuizAnswers, userID *types.UserID) (*Evaluation, error) {
	persona, recs := personaForScore(scoreAnswers(answers))

	result := types.QuizResult{
		UserID:          userID,
		Persona:         persona,
		Recommendations: recs,
		Answers:         answers,
		CreatedAt:       time.Now().UTC(),
	}

	id, err := s.quizRepository.Insert(ctx, result)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to persist quiz result", slog.Any("error", err))
		return nil, err
	}
	metrics.Get().QuizEvaluationsTotal.Add(ctx, 1)

	return &Evaluation{
		ID:              id,
		Persona:         persona,
		Recommendations: recs,
	}, nil
}
