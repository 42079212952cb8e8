package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/sellapp/internal/identity/domain"
	"github.com/smallbiznis/sellapp/internal/identity/password"
	"github.com/smallbiznis/sellapp/internal/identity/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Role{}, &domain.User{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zaptest.NewLogger(t),
		GenID: node,
		Roles: repository.ProvideRoleRepository(),
		Users: repository.ProvideUserRepository(),
	}).(*Service)
	return svc, db
}

func createRole(t *testing.T, svc *Service, name string) *domain.RoleResponse {
	t.Helper()
	role, err := svc.CreateRole(context.Background(), domain.CreateRoleRequest{Name: name})
	require.NoError(t, err)
	return role
}

func TestCreateRole(t *testing.T) {
	svc, _ := newTestService(t)

	role := createRole(t, svc, "admin")
	assert.Equal(t, "admin", role.Name)

	_, err := svc.CreateRole(context.Background(), domain.CreateRoleRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.CreateRole(context.Background(), domain.CreateRoleRequest{Name: "admin"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc, db := newTestService(t)
	role := createRole(t, svc, "staff")

	user, err := svc.CreateUser(context.Background(), domain.CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
		RoleID:   role.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "staff", user.RoleName)
	assert.True(t, user.IsActive)

	var stored domain.User
	require.NoError(t, db.First(&stored, "username = ?", "alice").Error)
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.True(t, password.Verify("s3cret", stored.PasswordHash))
	assert.False(t, password.Verify("wrong", stored.PasswordHash))
}

func TestCreateUserValidation(t *testing.T) {
	svc, _ := newTestService(t)
	role := createRole(t, svc, "staff")

	_, err := svc.CreateUser(context.Background(), domain.CreateUserRequest{
		Username: "", Password: "pw", RoleID: role.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidUsername)

	_, err = svc.CreateUser(context.Background(), domain.CreateUserRequest{
		Username: "bob", Password: " ", RoleID: role.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)

	_, err = svc.CreateUser(context.Background(), domain.CreateUserRequest{
		Username: "bob", Password: "pw", RoleID: "not-a-number",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)
	role := createRole(t, svc, "staff")

	_, err := svc.CreateUser(context.Background(), domain.CreateUserRequest{
		Username: "carol", Password: "pw", RoleID: role.ID,
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), domain.CreateUserRequest{
		Username: "carol", Password: "pw2", RoleID: role.ID,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
}

func TestListUsersFilterByRole(t *testing.T) {
	svc, _ := newTestService(t)
	staff := createRole(t, svc, "staff")
	admin := createRole(t, svc, "admin")

	for _, u := range []struct {
		name string
		role string
	}{
		{"dave", staff.ID},
		{"erin", staff.ID},
		{"frank", admin.ID},
	} {
		_, err := svc.CreateUser(context.Background(), domain.CreateUserRequest{
			Username: u.name, Password: "pw", RoleID: u.role,
		})
		require.NoError(t, err)
	}

	users, err := svc.ListUsers(context.Background(), domain.ListUsersRequest{RoleID: staff.ID})
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUpdateAndDeleteUser(t *testing.T) {
	svc, _ := newTestService(t)
	staff := createRole(t, svc, "staff")
	admin := createRole(t, svc, "admin")

	user, err := svc.CreateUser(context.Background(), domain.CreateUserRequest{
		Username: "grace", Password: "pw", RoleID: staff.ID,
	})
	require.NoError(t, err)

	inactive := false
	updated, err := svc.UpdateUser(context.Background(), domain.UpdateUserRequest{
		ID:       user.ID,
		RoleID:   &admin.ID,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, admin.ID, updated.RoleID)
	assert.False(t, updated.IsActive)

	require.NoError(t, svc.DeleteUser(context.Background(), user.ID))
	_, err = svc.GetUser(context.Background(), user.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
