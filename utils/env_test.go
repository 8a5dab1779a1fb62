package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("CHAT_TEST_VALUE", "")
	assert.Equal(t, "fallback", GetEnv("CHAT_TEST_VALUE", "fallback"))

	t.Setenv("CHAT_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("CHAT_TEST_VALUE", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", 7},
		{"12", 12},
		{"0", 7},
		{"-3", 7},
		{"abc", 7},
	}

	for _, tt := range tests {
		t.Setenv("CHAT_TEST_INT", tt.value)
		assert.Equal(t, tt.want, GetEnvInt("CHAT_TEST_INT", 7), "value %q", tt.value)
	}
}

func TestGetEnvNonNegativeInt(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", 5},
		{"0", 0},
		{"9", 9},
		{"-1", 5},
		{"x", 5},
	}

	for _, tt := range tests {
		t.Setenv("CHAT_TEST_NONNEG", tt.value)
		assert.Equal(t, tt.want, GetEnvNonNegativeInt("CHAT_TEST_NONNEG", 5), "value %q", tt.value)
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", time.Minute},
		{"250ms", 250 * time.Millisecond},
		{"3", 3 * time.Second},
		{"-1s", time.Minute},
		{"later", time.Minute},
	}

	for _, tt := range tests {
		t.Setenv("CHAT_TEST_DURATION", tt.value)
		assert.Equal(t, tt.want, GetEnvDuration("CHAT_TEST_DURATION", time.Minute), "value %q", tt.value)
	}
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("CHAT_TEST_LIST", " a , ,b,")
	assert.Equal(t, []string{"a", "b"}, GetEnvList("CHAT_TEST_LIST", nil))

	t.Setenv("CHAT_TEST_LIST", " , ")
	assert.Equal(t, []string{"x"}, GetEnvList("CHAT_TEST_LIST", []string{"x"}))
}
