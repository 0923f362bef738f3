package cfg

import (
	"testing"

	"github.com/google/uuid"
	"gotest.tools/v3/assert"
)

func TestEnvString(t *testing.T) {
	key := uuid.NewString()
	value := uuid.NewString()
	notsetKey := uuid.NewString()
	t.Setenv(key, value)

	t.Run("if key not set; error is returned", func(t *testing.T) {
		_, err := EnvString(notsetKey)
		assert.ErrorContains(t, err, notsetKey)
		assert.ErrorContains(t, err, "environment variable not set")
	})

	t.Run("returns set value", func(t *testing.T) {
		v, err := EnvString(key)
		assert.NilError(t, err)

		assert.Equal(t, v, value)
	})
}

func TestDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DirEnvVar, dir)
	assert.Equal(t, Dir(), dir)
}
