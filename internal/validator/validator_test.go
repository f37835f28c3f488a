package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_FirstMessageWins(t *testing.T) {
	v := New()
	v.AddError("email", "must be provided")
	v.AddError("email", "must be a valid email address")

	assert.False(t, v.IsValid())
	assert.Equal(t, "must be provided", v.Errors["email"])
}

func TestValidator_Checks(t *testing.T) {
	v := New()
	v.CheckNotBlank("   ", "username", "must be provided")
	v.CheckMaxLength("abcdef", 5, "first_name", "too long")
	v.CheckMinLength("short", 8, "password", "too short")
	v.CheckEmail("not-an-email", "email", "invalid")
	v.Check(true, "ok", "never recorded")

	assert.Equal(t, map[string]string{
		"username":   "must be provided",
		"first_name": "too long",
		"password":   "too short",
		"email":      "invalid",
	}, v.Errors)
}

func TestIsMatch(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"alice", true},
		{"alice.smith+test@home-1_x", true},
		{"alice smith", false},
		{"alice/smith", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMatch(tt.value, UsernameRX))
		})
	}

	assert.True(t, IsMatch("alice@example.com", EmailRX))
	assert.False(t, IsMatch("alice@", EmailRX))
}
