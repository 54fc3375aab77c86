package services

import (
	"context"
	"testing"
	"time"

	"github.com/schoolhub/schoolhub/internal/app/models"
	"github.com/schoolhub/schoolhub/internal/app/models/dto"
	"github.com/schoolhub/schoolhub/internal/pkg/apperrors"
	"github.com/schoolhub/schoolhub/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	service   AuthService
	userRepo  *fakeUserRepo
	roleRepo  *fakeRoleRepo
	tokenRepo *fakeTokenRepo
	publisher *fakePublisher
}

func newAuthFixture() *authFixture {
	userRepo := newFakeUserRepo()
	roleRepo := newFakeRoleRepo()
	tokenRepo := newFakeTokenRepo()
	publisher := &fakePublisher{}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "service-test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "schoolhub.test",
	})

	return &authFixture{
		service:   NewAuthService(userRepo, roleRepo, tokenRepo, jwtService, publisher),
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		tokenRepo: tokenRepo,
		publisher: publisher,
	}
}

func registerRequest(role int64) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:                 "Jane Doe",
		Email:                "jane@school.test",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
		Role:                 role,
	}
}

func TestRegisterTeacherCreatesUserAndProfile(t *testing.T) {
	f := newAuthFixture()

	user, role, tokens, err := f.service.Register(context.Background(), registerRequest(models.RoleTeacherID))
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, role)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	teacher, err := f.userRepo.GetTeacherByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", teacher.Name)

	_, err = f.userRepo.GetStudentByUserID(context.Background(), user.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestRegisterStudentCreatesUserAndProfile(t *testing.T) {
	f := newAuthFixture()

	user, role, _, err := f.service.Register(context.Background(), registerRequest(models.RoleStudentID))
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, role)

	student, err := f.userRepo.GetStudentByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", student.Name)
}

func TestRegisterHashesThePassword(t *testing.T) {
	f := newAuthFixture()

	user, _, _, err := f.service.Register(context.Background(), registerRequest(models.RoleStudentID))
	require.NoError(t, err)

	stored, err := f.userRepo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.True(t, auth.CheckPassword(stored.Password, "secret123"))
}

func TestRegisterDuplicateEmailRejectedWithoutWrites(t *testing.T) {
	f := newAuthFixture()

	_, _, _, err := f.service.Register(context.Background(), registerRequest(models.RoleStudentID))
	require.NoError(t, err)

	_, _, _, err = f.service.Register(context.Background(), registerRequest(models.RoleTeacherID))
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	assert.Len(t, f.userRepo.users, 1)
	assert.Empty(t, f.userRepo.teachers)
}

func TestRegisterConcurrentDuplicateSurfacesSameError(t *testing.T) {
	f := newAuthFixture()
	// The pre-check passes but the insert hits the unique constraint
	f.userRepo.createErr = apperrors.ErrEmailAlreadyExists

	_, _, _, err := f.service.Register(context.Background(), registerRequest(models.RoleStudentID))
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	assert.Empty(t, f.publisher.published)
}

func TestRegisterUnsupportedRoleRejectedWithoutWrites(t *testing.T) {
	f := newAuthFixture()

	req := registerRequest(999)
	_, _, _, err := f.service.Register(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedRole)

	assert.Empty(t, f.userRepo.users)
	assert.Empty(t, f.userRepo.teachers)
	assert.Empty(t, f.userRepo.students)
	assert.Empty(t, f.publisher.published)
}

func TestRegisterRoleMissingFromTableRejected(t *testing.T) {
	f := newAuthFixture()
	delete(f.roleRepo.roles, models.RoleStudentID)

	_, _, _, err := f.service.Register(context.Background(), registerRequest(models.RoleStudentID))
	assert.ErrorIs(t, err, apperrors.ErrRoleNotFound)
	assert.Empty(t, f.userRepo.users)
}

func TestRegisterWeakPasswordRejected(t *testing.T) {
	f := newAuthFixture()

	cases := []string{"short1", "onlyletters", "12345678"}
	for _, password := range cases {
		req := registerRequest(models.RoleStudentID)
		req.Password = password
		req.PasswordConfirmation = password

		_, _, _, err := f.service.Register(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword, "password %q", password)
	}

	assert.Empty(t, f.userRepo.users)
}

func TestRegisterPublishesEvent(t *testing.T) {
	f := newAuthFixture()

	user, _, _, err := f.service.Register(context.Background(), registerRequest(models.RoleTeacherID))
	require.NoError(t, err)

	require.Len(t, f.publisher.published, 1)
	event := f.publisher.published[0]
	assert.Equal(t, user.ID, event.UserID)
	assert.Equal(t, "jane@school.test", event.Email)
	assert.Equal(t, models.RoleTeacher, event.Role)
}

func TestRegisterSucceedsWhenPublishFails(t *testing.T) {
	f := newAuthFixture()
	f.publisher.err = assert.AnError

	// The event is best effort; registration must still commit
	user, _, tokens, err := f.service.Register(context.Background(), registerRequest(models.RoleStudentID))
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestLoginWithValidCredentials(t *testing.T) {
	f := newAuthFixture()

	registered, _, _, err := f.service.Register(context.Background(), registerRequest(models.RoleStudentID))
	require.NoError(t, err)

	user, role, tokens, err := f.service.Login(context.Background(), "jane@school.test", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, models.RoleStudent, role)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture()

	_, _, _, err := f.service.Register(context.Background(), registerRequest(models.RoleStudentID))
	require.NoError(t, err)

	_, _, _, err = f.service.Login(context.Background(), "jane@school.test", "wrong-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newAuthFixture()

	// Unknown email and bad password are indistinguishable to the caller
	_, _, _, err := f.service.Login(context.Background(), "nobody@school.test", "secret123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefreshTokenRotates(t *testing.T) {
	f := newAuthFixture()

	_, _, tokens, err := f.service.Register(context.Background(), registerRequest(models.RoleStudentID))
	require.NoError(t, err)

	refreshed, err := f.service.RefreshToken(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, refreshed.RefreshToken)

	// The spent token no longer works
	_, err = f.service.RefreshToken(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestRefreshTokenUnknown(t *testing.T) {
	f := newAuthFixture()

	_, err := f.service.RefreshToken(context.Background(), "never-issued")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestLogoutRevokesAllTokens(t *testing.T) {
	f := newAuthFixture()

	user, _, _, err := f.service.Register(context.Background(), registerRequest(models.RoleStudentID))
	require.NoError(t, err)

	_, _, _, err = f.service.Login(context.Background(), "jane@school.test", "secret123")
	require.NoError(t, err)
	require.Equal(t, 2, f.tokenRepo.activeTokensFor(user.ID))

	require.NoError(t, f.service.Logout(context.Background(), user.ID))
	assert.Equal(t, 0, f.tokenRepo.activeTokensFor(user.ID))
}

func TestGetUser(t *testing.T) {
	f := newAuthFixture()

	registered, _, _, err := f.service.Register(context.Background(), registerRequest(models.RoleTeacherID))
	require.NoError(t, err)

	user, role, err := f.service.GetUser(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", user.Name)
	assert.Equal(t, models.RoleTeacher, role)

	_, _, err = f.service.GetUser(context.Background(), 9999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("secret123"))
	assert.NoError(t, ValidatePassword("a1b2c3d4"))

	assert.ErrorIs(t, ValidatePassword("short1"), apperrors.ErrInvalidPassword)
	assert.ErrorIs(t, ValidatePassword("onlyletters"), apperrors.ErrInvalidPassword)
	assert.ErrorIs(t, ValidatePassword("1234567890"), apperrors.ErrInvalidPassword)
	assert.ErrorIs(t, ValidatePassword(""), apperrors.ErrInvalidPassword)
}
