package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestConfigureTokens(t *testing.T) {
	origSecret := jwtSecret
	origTTL := accessTokenTTL
	defer func() {
		jwtSecret = origSecret
		accessTokenTTL = origTTL
	}()

	userID := primitive.NewObjectID()
	before, err := GenerateAccessToken(userID, "alice")
	require.NoError(t, err)

	ConfigureTokens("an-entirely-different-secret", time.Minute)

	_, err = ValidateToken(before)
	assert.Error(t, err, "tokens signed with the previous secret must stop validating")

	fresh, err := GenerateAccessToken(userID, "alice")
	require.NoError(t, err)
	claims, err := ValidateToken(fresh)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Minute), claims.ExpiresAt.Time, 5*time.Second)
	assert.Equal(t, int64(60), AccessTokenTTL())
}

func TestConfigureTokensKeepsDefaultsForZeroValues(t *testing.T) {
	origSecret := jwtSecret
	origTTL := accessTokenTTL
	defer func() {
		jwtSecret = origSecret
		accessTokenTTL = origTTL
	}()

	ConfigureTokens("", 0)

	assert.Equal(t, origSecret, jwtSecret)
	assert.Equal(t, origTTL, accessTokenTTL)
}
