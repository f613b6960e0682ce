package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/repository"
	"github.com/spec-kit/user-service/internal/seed"
)

// SeedService wipes the users table and inserts the development fixtures.
// Never wired in production.
type SeedService struct {
	users      repository.UserRepository
	logger     *zap.Logger
	bcryptCost int
}

// NewSeedService builds the service.
func NewSeedService(users repository.UserRepository, logger *zap.Logger, bcryptCost int) *SeedService {
	return &SeedService{users: users, logger: logger, bcryptCost: bcryptCost}
}

// Run replaces all rows with the fixture set and returns a confirmation
// message.
func (s *SeedService) Run(ctx context.Context) (string, error) {
	if err := s.users.Clear(ctx); err != nil {
		return "", classifyStoreError(s.logger, err)
	}

	for _, su := range seed.InitialUsers() {
		hash, err := auth.HashPassword(su.Password, s.bcryptCost)
		if err != nil {
			return "", classifyStoreError(s.logger, err)
		}
		user := &domain.User{
			Email:        su.Email,
			PasswordHash: hash,
			Name:         su.Name,
			IsActive:     true,
			Roles:        su.Roles,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return "", classifyStoreError(s.logger, err)
		}
	}

	s.logger.Info("seed executed", zap.Int("users", len(seed.InitialUsers())))
	return "SEED EXECUTED", nil
}
