package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/sellapp/internal/identity/domain"
	"github.com/smallbiznis/sellapp/internal/identity/password"
	"github.com/smallbiznis/sellapp/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Roles domain.RoleRepository
	Users domain.UserRepository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	roles domain.RoleRepository
	users domain.UserRepository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("identity.service"),
		genID: p.GenID,
		roles: p.Roles,
		users: p.Users,
	}
}

func (s *Service) CreateRole(ctx context.Context, req domain.CreateRoleRequest) (*domain.RoleResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	role := &domain.Role{
		ID:        s.genID.Generate().Int64(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.roles.Insert(ctx, s.db, role); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateName
		}
		return nil, err
	}

	resp := toRoleResponse(role)
	return &resp, nil
}

func (s *Service) ListRoles(ctx context.Context) ([]domain.RoleResponse, error) {
	roles, err := s.roles.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.RoleResponse, 0, len(roles))
	for i := range roles {
		resp = append(resp, toRoleResponse(&roles[i]))
	}
	return resp, nil
}

func (s *Service) GetRole(ctx context.Context, id string) (*domain.RoleResponse, error) {
	roleID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.FindByID(ctx, s.db, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}

	resp := toRoleResponse(role)
	return &resp, nil
}

func (s *Service) UpdateRole(ctx context.Context, req domain.UpdateRoleRequest) (*domain.RoleResponse, error) {
	roleID, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.FindByID(ctx, s.db, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		role.Name = name
	}

	role.UpdatedAt = time.Now().UTC()
	if err := s.roles.Update(ctx, s.db, role); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateName
		}
		return nil, err
	}

	resp := toRoleResponse(role)
	return &resp, nil
}

func (s *Service) DeleteRole(ctx context.Context, id string) error {
	roleID, err := parseID(id)
	if err != nil {
		return err
	}

	role, err := s.roles.FindByID(ctx, s.db, roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.ErrNotFound
	}

	return s.roles.Delete(ctx, s.db, roleID)
}

func (s *Service) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, domain.ErrInvalidUsername
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.ErrInvalidPassword
	}

	roleID, err := parseID(req.RoleID)
	if err != nil {
		return nil, domain.ErrInvalidRole
	}
	role, err := s.roles.FindByID(ctx, s.db, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrInvalidRole
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           s.genID.Generate().Int64(),
		Username:     username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		RoleID:       roleID,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Insert(ctx, s.db, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, err
	}

	resp := s.toUserResponse(user, role)
	return &resp, nil
}

func (s *Service) ListUsers(ctx context.Context, req domain.ListUsersRequest) ([]domain.UserResponse, error) {
	filter := domain.ListUserFilter{IsActive: req.IsActive}
	if strings.TrimSpace(req.RoleID) != "" {
		roleID, err := parseID(req.RoleID)
		if err != nil {
			return nil, domain.ErrInvalidRole
		}
		filter.RoleID = roleID
	}

	users, err := s.users.List(ctx, s.db, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, s.toUserResponse(&users[i], nil))
	}
	return resp, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*domain.UserResponse, error) {
	userID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	role, err := s.roles.FindByID(ctx, s.db, user.RoleID)
	if err != nil {
		return nil, err
	}

	resp := s.toUserResponse(user, role)
	return &resp, nil
}

func (s *Service) UpdateUser(ctx context.Context, req domain.UpdateUserRequest) (*domain.UserResponse, error) {
	userID, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.RoleID != nil {
		roleID, err := parseID(*req.RoleID)
		if err != nil {
			return nil, domain.ErrInvalidRole
		}
		role, err := s.roles.FindByID(ctx, s.db, roleID)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, domain.ErrInvalidRole
		}
		user.RoleID = roleID
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, s.db, user); err != nil {
		return nil, err
	}

	resp := s.toUserResponse(user, nil)
	return &resp, nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	userID, err := parseID(id)
	if err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, s.db, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}

	return s.users.Delete(ctx, s.db, userID)
}

func (s *Service) toUserResponse(u *domain.User, role *domain.Role) domain.UserResponse {
	resp := domain.UserResponse{
		ID:        snowflake.ID(u.ID).String(),
		Username:  u.Username,
		Email:     u.Email,
		RoleID:    snowflake.ID(u.RoleID).String(),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if role != nil {
		resp.RoleName = role.Name
	}
	return resp
}

func toRoleResponse(r *domain.Role) domain.RoleResponse {
	return domain.RoleResponse{
		ID:        snowflake.ID(r.ID).String(),
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func parseID(raw string) (int64, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return parsed.Int64(), nil
}
