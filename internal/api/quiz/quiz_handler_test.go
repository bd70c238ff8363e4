package quiz

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/solosafe/solosafe-api/internal/types"
)

// MockQuizService is a mock implementation of the Service interface
type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) EvaluateQuiz(ctx context.Context, answers types.QuizAnswers, userID *types.UserID) (*Evaluation, error) {
	args := m.Called(ctx, answers, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Evaluation), args.Error(1)
}

const validQuizBody = `{
	"comfort_level": "high",
	"solo_experience": "5+",
	"night_travel": "comfortable",
	"anxiety_triggers": [],
	"transport_confidence": "metro"
}`

func TestEvaluateQuizHandler(t *testing.T) {
	logger := slog.Default()

	t.Run("MissingAnswersRejected", func(t *testing.T) {
		mockService := new(MockQuizService)
		handler := NewHandler(mockService, logger)

		req := httptest.NewRequest(http.MethodPost, "/quiz", bytes.NewReader([]byte(`{"comfort_level":"high"}`)))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		handler.EvaluateQuiz(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "EvaluateQuiz", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockQuizService)
		handler := NewHandler(mockService, logger)

		id := primitive.NewObjectID()
		mockService.On("EvaluateQuiz", mock.Anything, mock.AnythingOfType("types.QuizAnswers"), (*types.UserID)(nil)).
			Return(&Evaluation{
				ID:              id,
				Persona:         types.PersonaTrailblazer,
				Recommendations: []string{"Singapore", "Lisbon", "Copenhagen"},
			}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/quiz", bytes.NewReader([]byte(validQuizBody)))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		handler.EvaluateQuiz(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), id.Hex())
		assert.Contains(t, rr.Body.String(), types.PersonaTrailblazer)
		mockService.AssertExpectations(t)
	})

	t.Run("UserIDQueryParamIsForwarded", func(t *testing.T) {
		mockService := new(MockQuizService)
		handler := NewHandler(mockService, logger)

		wantID := types.UserID("64b0c1f2a3d4e5f60718293a")
		mockService.On("EvaluateQuiz", mock.Anything, mock.AnythingOfType("types.QuizAnswers"), &wantID).
			Return(&Evaluation{ID: primitive.NewObjectID(), Persona: types.PersonaPlanner}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/quiz?user_id="+wantID.String(), bytes.NewReader([]byte(validQuizBody)))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		handler.EvaluateQuiz(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockService.AssertExpectations(t)
	})
}
