package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/events"
	"github.com/spec-kit/user-service/internal/repository"
	"github.com/spec-kit/user-service/pkg/util"
)

// UserService owns the account lifecycle: create, list, read, update and
// deactivate. Deactivation is a soft delete; the Active -> Inactive
// transition is terminal and every operation here refuses inactive rows.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger, bcryptCost int) *UserService {
	return &UserService{
		users:      users,
		dispatcher: dispatcher,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// PageResult is a single page of active accounts.
type PageResult struct {
	Items       []*domain.User `json:"items"`
	Total       int            `json:"total"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
}

// UpdateUserInput carries a partial update. Nil fields are left unchanged.
type UpdateUserInput struct {
	Email    *string
	Name     *string
	Password *string
	Roles    []domain.Role
}

// Create registers a new account. The password is hashed before anything is
// persisted and the returned projection carries neither the hash nor the
// active flag.
func (s *UserService) Create(ctx context.Context, email, name, password string, roles []domain.Role) (*domain.PublicUser, error) {
	if len(roles) == 0 {
		roles = domain.DefaultRoles()
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, util.NewUnknown(err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		IsActive:     true,
		Roles:        roles,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, classifyStoreError(s.logger, err)
	}

	s.logger.Info("User created successfully", zap.String("user_id", user.ID))
	s.publish(ctx, events.Event{
		Type:      events.EventUserRegistered,
		UserID:    user.ID,
		Timestamp: time.Now(),
		Payload:   events.UserRegisteredPayload{Email: user.Email, Roles: user.Roles},
	})

	return user.Public(), nil
}

// FindAll lists active accounts page by page. Inactive rows are invisible
// here; an offset past the end yields an empty page, not an error.
func (s *UserService) FindAll(ctx context.Context, limit, offset int) (*PageResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	items, err := s.users.ListActive(ctx, limit, offset)
	if err != nil {
		return nil, classifyStoreError(s.logger, err)
	}
	total, err := s.users.CountActive(ctx)
	if err != nil {
		return nil, classifyStoreError(s.logger, err)
	}

	s.logger.Info("Operation find users success")
	return &PageResult{
		Items:       items,
		Total:       total,
		CurrentPage: offset/limit + 1,
		TotalPages:  (total + limit - 1) / limit,
	}, nil
}

// FindByID resolves a single account. The id shape is checked before any
// store access. An inactive row is a client error distinct from absence: the
// row's existence is deliberately surfaced.
func (s *UserService) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if uuid.Validate(id) != nil {
		s.logger.Warn("Invalid UUID", zap.String("id", id))
		return nil, util.NewInvalidIdentifier(id)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("User not exists in database", zap.String("id", id))
			return nil, util.NewNotFound(id)
		}
		return nil, classifyStoreError(s.logger, err)
	}
	if !user.IsActive {
		s.logger.Error("The user is inactive in database", zap.String("id", id))
		return nil, util.NewInactiveAccount(id)
	}

	s.logger.Info("Find user by id success", zap.String("user_id", id))
	return user, nil
}

// Update merges the partial input onto the stored row. Unsupplied fields are
// left unchanged; a supplied password is re-hashed. Inactive rows reject the
// update.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error) {
	if uuid.Validate(id) != nil {
		s.logger.Warn("Invalid UUID", zap.String("id", id))
		return nil, util.NewInvalidIdentifier(id)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("User not exists in database", zap.String("id", id))
			return nil, util.NewNotFound(id)
		}
		return nil, classifyStoreError(s.logger, err)
	}
	if !user.IsActive {
		s.logger.Error("The user is inactive in database", zap.String("id", id))
		return nil, util.NewInactiveAccount(id)
	}

	changed := make([]string, 0, 4)
	if in.Email != nil {
		user.Email = *in.Email
		changed = append(changed, "email")
	}
	if in.Name != nil {
		user.Name = *in.Name
		changed = append(changed, "name")
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return nil, util.NewUnknown(err)
		}
		user.PasswordHash = hash
		changed = append(changed, "password")
	}
	if len(in.Roles) > 0 {
		user.Roles = in.Roles
		changed = append(changed, "roles")
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, classifyStoreError(s.logger, err)
	}

	s.logger.Info("User updated successfully", zap.String("user_id", id))
	s.publish(ctx, events.Event{
		Type:      events.EventUserUpdated,
		UserID:    id,
		Timestamp: time.Now(),
		Payload:   events.UserUpdatedPayload{ChangedFields: changed},
	})

	return user, nil
}

// Deactivate flips the soft-delete flag. It resolves through FindByID, so a
// second deactivation fails the same way any read of an inactive account
// does. There is no operation that reactivates.
func (s *UserService) Deactivate(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsActive = false
	if err := s.users.Save(ctx, user); err != nil {
		return nil, classifyStoreError(s.logger, err)
	}

	s.logger.Info("Delete user success", zap.String("user_id", id))
	s.publish(ctx, events.Event{
		Type:      events.EventUserDeactivated,
		UserID:    id,
		Timestamp: time.Now(),
		Payload:   events.UserDeactivatedPayload{Email: user.Email},
	})

	return user, nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
