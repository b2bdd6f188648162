package util_test

import (
	"testing"

	"github.com/lumberg/petitions/internal/util"
	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("PETITIONS_TEST_STRING", "value")

	assert.Equal(t, "value", util.GetEnv("PETITIONS_TEST_STRING", "default"))
	assert.Equal(t, "default", util.GetEnv("PETITIONS_TEST_MISSING", "default"))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("PETITIONS_TEST_INT", "42")
	t.Setenv("PETITIONS_TEST_NOT_INT", "forty-two")

	assert.Equal(t, 42, util.GetEnvAsInt("PETITIONS_TEST_INT", 7))
	assert.Equal(t, 7, util.GetEnvAsInt("PETITIONS_TEST_NOT_INT", 7))
	assert.Equal(t, 7, util.GetEnvAsInt("PETITIONS_TEST_MISSING", 7))
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("PETITIONS_TEST_BOOL", "true")

	assert.True(t, util.GetEnvAsBool("PETITIONS_TEST_BOOL", false))
	assert.True(t, util.GetEnvAsBool("PETITIONS_TEST_MISSING", true))
}

func TestGetEnvAsStringArr(t *testing.T) {
	t.Setenv("PETITIONS_TEST_ARR", "a, b ,c,")

	assert.Equal(t, []string{"a", "b", "c"}, util.GetEnvAsStringArr("PETITIONS_TEST_ARR", nil))
	assert.Equal(t, []string{"x"}, util.GetEnvAsStringArr("PETITIONS_TEST_MISSING", []string{"x"}))
}
