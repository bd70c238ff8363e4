package system

import (
	"log/slog"
	"net/http"
	"os"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/solosafe/solosafe-api/internal/api"
)

// Handler serves the introspection endpoints: service banner, schema
// descriptors and the connectivity diagnostic.
type Handler struct {
	db     *mongo.Database
	logger *slog.Logger
}

func NewHandler(db *mongo.Database, logger *slog.Logger) *Handler {
	return &Handler{
		db:     db,
		logger: logger,
	}
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{
		"message": "SoloSafe travel safety API running",
	})
}

// schemaDescriptor is the static collection/model description served to
// client tooling. Field types mirror the wire representation.
var schemaDescriptor = map[string]interface{}{
	"collections": []string{"user", "place", "review", "quizresult"},
	"models": map[string]interface{}{
		"user": map[string]string{
			"id": "string", "name": "string", "email": "string",
			"photo": "string?", "saved_places": "[]string", "saved_cities": "[]string",
		},
		"place": map[string]string{
			"id": "string", "name": "string", "city": "string", "type": "string",
			"safety_score": "float", "description": "string", "main_tags": "[]string",
		},
		"review": map[string]string{
			"id": "string", "user_id": "string", "place_id": "string",
			"rating": "int[1..5]", "safety_tags": "[]string", "comment": "string?",
			"night_safe": "bool", "harassment": "bool", "created_at": "timestamp",
		},
		"quizresult": map[string]string{
			"id": "string", "user_id": "string?", "persona": "string",
			"recommendations": "[]string", "answers": "object", "created_at": "timestamp",
		},
	},
}

// GetSchema exposes the collection and model descriptors.
func (h *Handler) GetSchema(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, schemaDescriptor)
}

// TestDatabase reports connectivity with the document store. It never fails
// the request; degraded states show up in the payload instead.
func (h *Handler) TestDatabase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "TestDatabase"))

	response := map[string]interface{}{
		"backend":           "running",
		"database":          "not available",
		"database_url":      os.Getenv("MONGO_URI") != "",
		"database_name":     os.Getenv("MONGO_DB") != "",
		"connection_status": "not connected",
		"collections":       []string{},
	}

	if h.db != nil {
		if err := h.db.Client().Ping(ctx, nil); err != nil {
			l.WarnContext(ctx, "Store ping failed during diagnostic", slog.Any("error", err))
			response["database"] = "error: " + err.Error()
		} else {
			response["database"] = "connected"
			response["connection_status"] = "connected"

			names, err := h.db.ListCollectionNames(ctx, bson.M{})
			if err != nil {
				l.WarnContext(ctx, "Listing collections failed during diagnostic", slog.Any("error", err))
				response["database"] = "connected but error: " + err.Error()
			} else {
				if len(names) > 10 {
					names = names[:10]
				}
				response["collections"] = names
			}
		}
	}

	api.WriteJSONResponse(w, r, http.StatusOK, response)
}
