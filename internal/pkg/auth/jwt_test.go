package auth

import (
	"testing"
	"time"

	"github.com/schoolhub/schoolhub/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret-key-for-signing",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "schoolhub.test",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:     42,
		Name:   "Jane Doe",
		Email:  "jane@school.test",
		RoleID: models.RoleStudentID,
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	service := newTestJWTService(time.Hour)

	access, refresh, expiresIn, refreshExpiresIn, err := service.GenerateTokenPair(testUser(), models.RoleStudent)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.Equal(t, int(time.Hour.Seconds()), expiresIn)
	assert.Equal(t, int((24 * time.Hour).Seconds()), refreshExpiresIn)

	claims, err := service.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "jane@school.test", claims.Email)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, "schoolhub.test", claims.Issuer)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	service := newTestJWTService(-time.Minute)

	access, _, _, _, err := service.GenerateTokenPair(testUser(), models.RoleStudent)
	require.NoError(t, err)

	_, err = service.ValidateToken(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	service := newTestJWTService(time.Hour)
	other := NewJWTService(JWTConfig{
		SecretKey:       "another-key-entirely",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "schoolhub.test",
	})

	access, _, _, _, err := service.GenerateTokenPair(testUser(), models.RoleTeacher)
	require.NoError(t, err)

	_, err = other.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	service := newTestJWTService(time.Hour)

	_, err := service.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateAndExtractClaims(t *testing.T) {
	service := newTestJWTService(time.Hour)

	_, err := service.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	access, _, _, _, err := service.GenerateTokenPair(testUser(), models.RoleTeacher)
	require.NoError(t, err)

	claims, err := service.ValidateAndExtractClaims(access)
	require.NoError(t, err)
	assert.Equal(t, "teacher", claims.Role)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	token, err = ExtractBearerToken("abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	service := newTestJWTService(time.Hour)

	_, first, _, _, err := service.GenerateTokenPair(testUser(), models.RoleStudent)
	require.NoError(t, err)
	_, second, _, _, err := service.GenerateTokenPair(testUser(), models.RoleStudent)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
