// File: internal/domain/user_test.go
package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	u := &User{}

	require.NoError(t, u.HashPassword("secret123"))
	assert.NotEqual(t, "secret123", u.Password)
	assert.NoError(t, u.ValidatePassword("secret123"))
	assert.Error(t, u.ValidatePassword("wrong"))
}

func TestHashPassword_TooShort(t *testing.T) {
	u := &User{}
	assert.Error(t, u.HashPassword("12345"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Deniz", (&User{FirstName: "Deniz", Username: "dk99"}).DisplayName())
	assert.Equal(t, "dk99", (&User{Username: "dk99"}).DisplayName())
}

func TestSessionIsValid(t *testing.T) {
	now := time.Now()
	valid := Session{Token: "t", ExpiresAt: now.Add(time.Hour)}
	expired := Session{Token: "t", ExpiresAt: now.Add(-time.Hour)}

	assert.True(t, valid.IsValid(now))
	assert.False(t, expired.IsValid(now))
}
