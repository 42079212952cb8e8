package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	identitydomain "github.com/smallbiznis/sellapp/internal/identity/domain"
	"github.com/smallbiznis/sellapp/internal/identity/password"
	"gorm.io/gorm"
)

const (
	defaultAdminRole     = "admin"
	defaultStaffRole     = "staff"
	defaultAdminUsername = "admin"
	defaultAdminEmail    = "admin@sellapp.local"
	defaultAdminPassword = "admin"
)

// EnsureDefaults seeds the baseline roles and the admin account so a
// fresh install is usable without manual setup.
func EnsureDefaults(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		adminRole, err := ensureRoleTx(ctx, tx, node, defaultAdminRole)
		if err != nil {
			return err
		}
		if _, err := ensureRoleTx(ctx, tx, node, defaultStaffRole); err != nil {
			return err
		}
		return ensureAdminUserTx(ctx, tx, node, adminRole.ID)
	})
}

func ensureRoleTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, name string) (*identitydomain.Role, error) {
	var role identitydomain.Role
	err := tx.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if err == nil {
		return &role, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	role = identitydomain.Role{
		ID:        node.Generate().Int64(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func ensureAdminUserTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, roleID int64) error {
	var user identitydomain.User
	err := tx.WithContext(ctx).Where("username = ?", defaultAdminUsername).First(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := password.Hash(defaultAdminPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user = identitydomain.User{
		ID:           node.Generate().Int64(),
		Username:     defaultAdminUsername,
		Email:        defaultAdminEmail,
		PasswordHash: hashed,
		RoleID:       roleID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return tx.WithContext(ctx).Create(&user).Error
}
