package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/pkg/util"
)

const testUserID = "0ea31cf0-8283-4661-bb6e-774f6f095e55"

type userRepoMock struct {
	mock.Mock
}

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *userRepoMock) Save(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *userRepoMock) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *userRepoMock) ListActive(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *userRepoMock) CountActive(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *userRepoMock) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func newUserService(repo *userRepoMock) *UserService {
	return NewUserService(repo, nil, zap.NewNop(), bcrypt.MinCost)
}

func TestUserService_Create(t *testing.T) {
	repo := new(userRepoMock)
	svc := newUserService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "a@x.com" && u.IsActive && u.PasswordHash != "" && u.PasswordHash != "Abc123"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = testUserID
	}).Return(nil).Once()

	got, err := svc.Create(context.Background(), "a@x.com", "A", "Abc123", nil)
	require.NoError(t, err)

	assert.Equal(t, testUserID, got.ID)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, []domain.Role{domain.RoleUser}, got.Roles)
	repo.AssertExpectations(t)
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	repo := new(userRepoMock)
	svc := newUserService(repo)

	repo.On("Create", mock.Anything, mock.Anything).
		Return(&pgconn.PgError{Code: uniqueViolation, Detail: "Key (email)=(a@x.com) already exists."}).Once()

	_, err := svc.Create(context.Background(), "a@x.com", "A", "Abc123", nil)
	assert.True(t, util.IsCode(err, util.CodeDuplicateEmail))
}

func TestUserService_Create_UnclassifiedStorageFault(t *testing.T) {
	repo := new(userRepoMock)
	svc := newUserService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()

	_, err := svc.Create(context.Background(), "a@x.com", "A", "Abc123", nil)
	require.True(t, util.IsCode(err, util.CodeUnknown))
	// Raw detail never reaches the caller's message.
	assert.NotContains(t, util.ToDomainError(err).Message, "connection reset")
}

func TestUserService_Create_KeepsExplicitRoles(t *testing.T) {
	repo := new(userRepoMock)
	svc := newUserService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	got, err := svc.Create(context.Background(), "a@x.com", "A", "Abc123", []domain.Role{domain.RoleAdmin, "sales"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Role{domain.RoleAdmin, "sales"}, got.Roles)
	assert.Equal(t, domain.Role("admin"), (&domain.User{Roles: got.Roles}).PrimaryRole())
}

func TestUserService_FindByID_InvalidUUID(t *testing.T) {
	repo := new(userRepoMock)
	svc := newUserService(repo)

	_, err := svc.FindByID(context.Background(), "123-not-a-uuid")
	assert.True(t, util.IsCode(err, util.CodeInvalidIdentifier))
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUserService_FindByID_NotFound(t *testing.T) {
	repo := new(userRepoMock)
	svc := newUserService(repo)

	repo.On("GetByID", mock.Anything, testUserID).Return(nil, pgx.ErrNoRows).Once()

	_, err := svc.FindByID(context.Background(), testUserID)
	assert.True(t, util.IsCode(err, util.CodeNotFound))
}

func TestUserService_FindByID_Inactive(t *testing.T) {
	repo := new(userRepoMock)
	svc := newUserService(repo)

	repo.On("GetByID", mock.Anything, testUserID).
		Return(&domain.User{ID: testUserID, IsActive: false}, nil).Once()

	_, err := svc.FindByID(context.Background(), testUserID)
	require.True(t, util.IsCode(err, util.CodeInactiveAccount))
	// Inactive is a client error distinct from absence.
	assert.Equal(t, 400, util.ToDomainError(err).HTTPStatus)
}

func TestUserService_FindAll_Pagination(t *testing.T) {
	tests := []struct {
		name            string
		limit, offset   int
		total           int
		items           int
		wantLimit       int
		wantCurrentPage int
		wantTotalPages  int
	}{
		{name: "first page", limit: 10, offset: 0, total: 11, items: 10, wantLimit: 10, wantCurrentPage: 1, wantTotalPages: 2},
		{name: "second page", limit: 10, offset: 10, total: 11, items: 1, wantLimit: 10, wantCurrentPage: 2, wantTotalPages: 2},
		{name: "defaults applied", limit: 0, offset: 0, total: 3, items: 3, wantLimit: 10, wantCurrentPage: 1, wantTotalPages: 1},
		{name: "exact multiple", limit: 5, offset: 5, total: 10, items: 5, wantLimit: 5, wantCurrentPage: 2, wantTotalPages: 2},
		{name: "offset past the end", limit: 10, offset: 50, total: 11, items: 0, wantLimit: 10, wantCurrentPage: 6, wantTotalPages: 2},
		{name: "no users", limit: 10, offset: 0, total: 0, items: 0, wantLimit: 10, wantCurrentPage: 1, wantTotalPages: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(userRepoMock)
			svc := newUserService(repo)

			users := make([]*domain.User, tt.items)
			for i := range users {
				users[i] = &domain.User{IsActive: true}
			}
			repo.On("ListActive", mock.Anything, tt.wantLimit, tt.offset).Return(users, nil).Once()
			repo.On("CountActive", mock.Anything).Return(tt.total, nil).Once()

			page, err := svc.FindAll(context.Background(), tt.limit, tt.offset)
			require.NoError(t, err)
			assert.Len(t, page.Items, tt.items)
			assert.Equal(t, tt.total, page.Total)
			assert.Equal(t, tt.wantCurrentPage, page.CurrentPage)
			assert.Equal(t, tt.wantTotalPages, page.TotalPages)
			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_Update_MergesPartialFields(t *testing.T) {
	repo := new(userRepoMock)
	svc := newUserService(repo)

	existing := &domain.User{
		ID:           testUserID,
		Email:        "a@x.com",
		PasswordHash: "old-hash",
		Name:         "A",
		IsActive:     true,
		Roles:        []domain.Role{domain.RoleUser},
	}
	repo.On("GetByID", mock.Anything, testUserID).Return(existing, nil).Once()
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	newName := "B"
	got, err := svc.Update(context.Background(), testUserID, UpdateUserInput{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "B", got.Name)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, "old-hash", got.PasswordHash)
	repo.AssertExpectations(t)
}

func TestUserService_Update_RehashesPassword(t *testing.T) {
	repo := new(userRepoMock)
	svc := newUserService(repo)

	existing := &domain.User{ID: testUserID, Email: "a@x.com", PasswordHash: "old-hash", IsActive: true}
	repo.On("GetByID", mock.Anything, testUserID).Return(existing, nil).Once()
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	newPassword := "Newpass1"
	got, err := svc.Update(context.Background(), testUserID, UpdateUserInput{Password: &newPassword})
	require.NoError(t, err)

	assert.NotEqual(t, "old-hash", got.PasswordHash)
	assert.NotEqual(t, "Newpass1", got.PasswordHash)
	assert.True(t, auth.VerifyPassword("Newpass1", got.PasswordHash))
}

func TestUserService_Update_InvalidUUID(t *testing.T) {
	repo := new(userRepoMock)
	svc := newUserService(repo)

	_, err := svc.Update(context.Background(), "nope", UpdateUserInput{})
	assert.True(t, util.IsCode(err, util.CodeInvalidIdentifier))
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestUserService_Update_NotFound(t *testing.T) {
	repo := new(userRepoMock)
	svc := newUserService(repo)

	repo.On("GetByID", mock.Anything, testUserID).Return(nil, pgx.ErrNoRows).Once()

	_, err := svc.Update(context.Background(), testUserID, UpdateUserInput{})
	assert.True(t, util.IsCode(err, util.CodeNotFound))
}

func TestUserService_Update_InactiveRowRejected(t *testing.T) {
	repo := new(userRepoMock)
	svc := newUserService(repo)

	repo.On("GetByID", mock.Anything, testUserID).
		Return(&domain.User{ID: testUserID, IsActive: false}, nil).Once()

	_, err := svc.Update(context.Background(), testUserID, UpdateUserInput{})
	assert.True(t, util.IsCode(err, util.CodeInactiveAccount))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserService_Update_DuplicateEmailConflict(t *testing.T) {
	repo := new(userRepoMock)
	svc := newUserService(repo)

	existing := &domain.User{ID: testUserID, Email: "a@x.com", IsActive: true}
	repo.On("GetByID", mock.Anything, testUserID).Return(existing, nil).Once()
	repo.On("Save", mock.Anything, mock.Anything).
		Return(&pgconn.PgError{Code: uniqueViolation}).Once()

	taken := "b@x.com"
	_, err := svc.Update(context.Background(), testUserID, UpdateUserInput{Email: &taken})
	assert.True(t, util.IsCode(err, util.CodeDuplicateEmail))
}

func TestUserService_Deactivate(t *testing.T) {
	repo := new(userRepoMock)
	svc := newUserService(repo)

	repo.On("GetByID", mock.Anything, testUserID).
		Return(&domain.User{ID: testUserID, Email: "a@x.com", IsActive: true}, nil).Once()
	repo.On("Save", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return !u.IsActive
	})).Return(nil).Once()

	got, err := svc.Deactivate(context.Background(), testUserID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	repo.AssertExpectations(t)
}

func TestUserService_Deactivate_AlreadyInactive(t *testing.T) {
	repo := new(userRepoMock)
	svc := newUserService(repo)

	repo.On("GetByID", mock.Anything, testUserID).
		Return(&domain.User{ID: testUserID, IsActive: false}, nil).Once()

	// Deactivation is terminal: a second attempt fails, it is not a no-op.
	_, err := svc.Deactivate(context.Background(), testUserID)
	assert.True(t, util.IsCode(err, util.CodeInactiveAccount))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
