package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/config"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/events"
	"github.com/spec-kit/user-service/internal/repository"
	"github.com/spec-kit/user-service/pkg/util"
)

// AuthService coordinates login and session refresh flows.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	throttle   *LoginThrottle
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuthService builds the service. throttle may be nil when no Redis is
// available; login then runs unthrottled.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, throttle *LoginThrottle, dispatcher events.Dispatcher, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		throttle:   throttle,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// LoginResult is the response for login and session refresh.
type LoginResult struct {
	User      *domain.PublicUser `json:"user"`
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
}

// Login authenticates by email and password. Unknown email and wrong
// password collapse into the same failure so account existence is not
// leaked; an inactive account is reported as such before the password is
// even checked.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if s.throttle != nil && s.throttle.TooManyAttempts(ctx, email) {
		s.logger.Warn("login throttled", zap.String("email", email))
		return nil, util.NewInvalidCredentials()
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.recordFailure(ctx, email)
			return nil, util.NewInvalidCredentials()
		}
		return nil, classifyStoreError(s.logger, err)
	}

	if !user.IsActive {
		return nil, util.NewAccountInactive()
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		s.recordFailure(ctx, email)
		return nil, util.NewInvalidCredentials()
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		// A failed signing fails the whole login; an empty token is never
		// handed to the caller.
		s.logger.Error("failed to sign token", zap.Error(err))
		return nil, err
	}

	if s.throttle != nil {
		s.throttle.Reset(ctx, email)
	}

	s.logger.Info("User "+email+" logged in successfully", zap.String("user_id", user.ID))
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventUserLoggedIn,
			UserID:    user.ID,
			Timestamp: time.Now(),
			Payload:   events.UserLoggedInPayload{Email: user.Email},
		})
	}

	return &LoginResult{User: user.Public(), Token: token, ExpiresAt: expiresAt}, nil
}

// CheckStatus re-issues a fresh token for an already-authenticated caller.
// Credentials are not re-verified; the middleware has already resolved an
// active principal.
func (s *AuthService) CheckStatus(_ context.Context, user *domain.User) (*LoginResult, error) {
	if user == nil {
		return nil, util.NewMissingPrincipal()
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error("failed to sign token", zap.Error(err))
		return nil, err
	}
	return &LoginResult{User: user.Public(), Token: token, ExpiresAt: expiresAt}, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	s.logger.Warn("Failed login attempt for user, Credentials are not valid", zap.String("email", email))
	if s.throttle != nil {
		s.throttle.RecordFailure(ctx, email)
	}
}
