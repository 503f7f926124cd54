package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/radio-cms-api/internal/dto"
	"github.com/noah-isme/radio-cms-api/internal/models"
	appErrors "github.com/noah-isme/radio-cms-api/pkg/errors"
)

type mockUserRepo struct {
	users     map[string]*models.User
	listUsers []models.User
	listCount int
	listErr   error
}

func (m *mockUserRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	if m.listUsers != nil {
		return m.listUsers, m.listCount, nil
	}
	var users []models.User
	for _, u := range m.users {
		users = append(users, *u)
	}
	return users, len(users), nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		copy := *user
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) UpdateDisplayName(ctx context.Context, id, name string) error {
	user, ok := m.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.DisplayName = name
	return nil
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id string, role models.UserRole) error {
	user, ok := m.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.Role = role
	return nil
}

func (m *mockUserRepo) CountByRole(ctx context.Context, role models.UserRole) (int, error) {
	total := 0
	for _, u := range m.users {
		if u.Role == role {
			total++
		}
	}
	return total, nil
}

func newUserFixture() *mockUserRepo {
	return &mockUserRepo{users: map[string]*models.User{
		"admin-1":  {ID: "admin-1", Email: "admin@example.com", DisplayName: "Admin", Role: models.RoleAdmin},
		"listener": {ID: "listener", Email: "fan@example.com", DisplayName: "Fan", Role: models.RoleUser},
	}}
}

func TestUserServiceListPagination(t *testing.T) {
	repo := &mockUserRepo{listUsers: []models.User{{ID: "1"}}, listCount: 41}
	svc := NewUserService(repo, nil, zap.NewNop())

	users, pagination, err := svc.List(context.Background(), models.UserFilter{Page: 0, PageSize: 0})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
	assert.Equal(t, 41, pagination.TotalCount)

	bad := models.UserRole("superuser")
	_, _, err = svc.List(context.Background(), models.UserFilter{Role: &bad})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUserServiceProfileRoundTrip(t *testing.T) {
	repo := newUserFixture()
	svc := NewUserService(repo, nil, zap.NewNop())

	saved, err := svc.SaveProfile(context.Background(), "listener", dto.SaveProfileRequest{Name: "  Holly Jolly  "})
	require.NoError(t, err)
	assert.Equal(t, "Holly Jolly", saved.Name)

	profile, err := svc.Profile(context.Background(), "listener")
	require.NoError(t, err)
	assert.Equal(t, "Holly Jolly", profile.Name)

	_, err = svc.SaveProfile(context.Background(), "listener", dto.SaveProfileRequest{Name: "   "})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Profile(context.Background(), "ghost")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestUserServiceAssignRole(t *testing.T) {
	repo := newUserFixture()
	svc := NewUserService(repo, nil, zap.NewNop())

	user, err := svc.AssignRole(context.Background(), dto.AssignRoleRequest{UserID: "listener", Role: models.RoleAdmin}, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, models.RoleAdmin, repo.users["listener"].Role)

	_, err = svc.AssignRole(context.Background(), dto.AssignRoleRequest{UserID: "listener", Role: "root"}, "admin-1")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUserServiceKeepsLastAdmin(t *testing.T) {
	repo := newUserFixture()
	svc := NewUserService(repo, nil, zap.NewNop())

	_, err := svc.AssignRole(context.Background(), dto.AssignRoleRequest{UserID: "admin-1", Role: models.RoleGuest}, "admin-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Equal(t, models.RoleAdmin, repo.users["admin-1"].Role)
}
