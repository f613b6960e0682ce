package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	authpkg "github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/config"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/pkg/util"
)

func newAuthService(repo *userRepoMock) *AuthService {
	cfg := config.AuthConfig{JWTSecret: "secret", TokenTTLMinutes: 120, BcryptCost: bcrypt.MinCost}
	return NewAuthService(cfg, repo, nil, nil, zap.NewNop())
}

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := authpkg.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           testUserID,
		Email:        "a@x.com",
		PasswordHash: hash,
		Name:         "A",
		IsActive:     true,
		Roles:        []domain.Role{domain.RoleUser},
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := new(userRepoMock)
	svc := newAuthService(repo)

	repo.On("GetByEmail", mock.Anything, "a@x.com").Return(activeUser(t, "Abc123"), nil).Once()

	result, err := svc.Login(context.Background(), "a@x.com", "Abc123")
	require.NoError(t, err)

	assert.Equal(t, testUserID, result.User.ID)
	assert.NotEmpty(t, result.Token)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), result.ExpiresAt, time.Minute)

	// The minted token resolves straight back to the subject.
	subject, err := svc.TokenManager().Validate(result.Token)
	require.NoError(t, err)
	assert.Equal(t, testUserID, subject)
	repo.AssertExpectations(t)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := new(userRepoMock)
	svc := newAuthService(repo)

	repo.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, pgx.ErrNoRows).Once()

	_, err := svc.Login(context.Background(), "ghost@x.com", "Abc123")
	assert.True(t, util.IsCode(err, util.CodeInvalidCredentials))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(userRepoMock)
	svc := newAuthService(repo)

	repo.On("GetByEmail", mock.Anything, "a@x.com").Return(activeUser(t, "Abc123"), nil).Once()

	_, err := svc.Login(context.Background(), "a@x.com", "wrong")
	assert.True(t, util.IsCode(err, util.CodeInvalidCredentials))
}

func TestAuthService_Login_FailureKindsIndistinguishable(t *testing.T) {
	repo := new(userRepoMock)
	svc := newAuthService(repo)

	repo.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, pgx.ErrNoRows).Once()
	repo.On("GetByEmail", mock.Anything, "a@x.com").Return(activeUser(t, "Abc123"), nil).Once()

	_, unknownErr := svc.Login(context.Background(), "ghost@x.com", "Abc123")
	_, wrongErr := svc.Login(context.Background(), "a@x.com", "wrong")

	// Unknown email and wrong password must be the same failure.
	assert.Equal(t, util.ToDomainError(unknownErr).Code, util.ToDomainError(wrongErr).Code)
	assert.Equal(t, util.ToDomainError(unknownErr).Message, util.ToDomainError(wrongErr).Message)
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	repo := new(userRepoMock)
	svc := newAuthService(repo)

	user := activeUser(t, "Abc123")
	user.IsActive = false
	repo.On("GetByEmail", mock.Anything, "a@x.com").Return(user, nil).Once()

	_, err := svc.Login(context.Background(), "a@x.com", "Abc123")
	assert.True(t, util.IsCode(err, util.CodeInactiveAccount))
}

func TestAuthService_CheckStatus(t *testing.T) {
	repo := new(userRepoMock)
	svc := newAuthService(repo)

	user := activeUser(t, "Abc123")
	result, err := svc.CheckStatus(context.Background(), user)
	require.NoError(t, err)

	assert.Equal(t, user.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)

	subject, err := svc.TokenManager().Validate(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, subject)
}

func TestAuthService_CheckStatus_MissingPrincipal(t *testing.T) {
	repo := new(userRepoMock)
	svc := newAuthService(repo)

	_, err := svc.CheckStatus(context.Background(), nil)
	assert.True(t, util.IsCode(err, util.CodeMissingPrincipal))
}
