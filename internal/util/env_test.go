package util

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetEnv_nested(t *testing.T) {
	const key = "JAPJAP_UTIL_TEST"
	_, set := os.LookupEnv(key)
	assert.False(t, set)

	restoreOuter := SetEnv(key, "outer")
	restoreInner := SetEnv(key, "inner")
	assert.Equal(t, "inner", os.Getenv(key))

	restoreInner()
	assert.Equal(t, "outer", os.Getenv(key))

	restoreOuter()
	_, set = os.LookupEnv(key)
	assert.False(t, set, "unset again once every override is undone")
}

func TestGetenv(t *testing.T) {
	defer SetEnv("JAPJAP_UTIL_SET", "value")()
	defer SetEnv("JAPJAP_UTIL_EMPTY", "")()

	for key, want := range map[string]string{
		"JAPJAP_UTIL_SET":     "value",
		"JAPJAP_UTIL_EMPTY":   "fallback",
		"JAPJAP_UTIL_MISSING": "fallback",
	} {
		assert.Equal(t, want, Getenv(key, "fallback"), key)
	}
}
