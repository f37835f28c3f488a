package data

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSetPassword(t *testing.T) {
	user := &User{Username: "alice"}
	require.NoError(t, user.SetPassword("correct horse"))
	assert.NotEqual(t, []byte("correct horse"), user.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword(user.Password, []byte("correct horse")))

	cost, err := bcrypt.Cost(user.Password)
	require.NoError(t, err)
	assert.Equal(t, passwordCost, cost)
}

func TestUserJSON_HidesPassword(t *testing.T) {
	user := &User{ID: 1, Username: "alice", Email: "alice@example.com", IsActive: true}
	require.NoError(t, user.SetPassword("correct horse"))

	js, err := json.Marshal(user)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(js, &fields))
	assert.NotContains(t, fields, "password")
	assert.Contains(t, fields, "date_joined")
	assert.Equal(t, true, fields["is_active"])
}
