package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/solosafe/solosafe-api/internal/types"
)

func TestSavedPlaceUpdate(t *testing.T) {
	placeID := types.PlaceID("74b0c1f2a3d4e5f60718293b")

	update := savedPlaceUpdate(placeID)

	// Saving must be set-addition, so repeating a save leaves the document
	// unchanged instead of duplicating the entry.
	set, ok := update["$addToSet"].(bson.M)
	assert.True(t, ok, "save must use $addToSet, not $push")
	assert.Equal(t, placeID, set["saved_places"])
	assert.NotContains(t, update, "$push")
}
