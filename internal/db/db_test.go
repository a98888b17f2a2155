package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-pseudonymizer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileID(t *testing.T) {
	t.Run("nil profile", func(t *testing.T) {
		_, err := profileID(nil)
		assert.Error(t, err)
	})

	t.Run("missing id generates one", func(t *testing.T) {
		id, err := profileID(&types.Profile{Name: "Max"})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
	})

	t.Run("existing id is kept", func(t *testing.T) {
		want := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")
		id, err := profileID(&types.Profile{ID: want.String()})
		require.NoError(t, err)
		assert.Equal(t, want, id)
	})

	t.Run("non-uuid id is rejected", func(t *testing.T) {
		_, err := profileID(&types.Profile{ID: "candidate-7"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "candidate-7")
	})
}

func TestSchemaSQL(t *testing.T) {
	assert.Contains(t, schemaSQL, "candidate_profiles")
	assert.Contains(t, schemaSQL, "pseudonymized_profiles")
	assert.Contains(t, schemaSQL, "REFERENCES candidate_profiles(id)")
}

func TestCloseWithoutPool(t *testing.T) {
	db := &DB{}
	assert.NotPanics(t, db.Close)
}
