// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/opsboard/opsboard/internal/activity"
	"github.com/opsboard/opsboard/internal/auth"
	"github.com/opsboard/opsboard/internal/authz"
	"github.com/opsboard/opsboard/internal/core"
	"github.com/opsboard/opsboard/internal/middleware"
)

var (
	ErrUsernameExists   = errors.New("username already exists")
	ErrSelfModification = errors.New("cannot modify own account this way")
)

type Service struct {
	repo     Repository
	activity *activity.Service
}

func NewService(repo Repository, recorder *activity.Service) *Service {
	return &Service{repo: repo, activity: recorder}
}

// GetByUsername implements the credential-store lookup for the
// authentication gate. Matching is case-insensitive via the canonical
// column; inactive users are returned so the gate can distinguish
// ACCOUNT_INACTIVE from INVALID_CREDENTIALS.
func (s *Service) GetByUsername(
	ctx context.Context,
	username string,
) (*auth.UserInfo, error) {
	u, err := s.repo.GetByUsernameCanonical(ctx, strings.ToLower(username))
	if err != nil {
		return nil, err
	}

	return toUserInfo(u), nil
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(u), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

// CreateUser provisions an account with a generated one-time password.
// Organization admins can only create users inside their own
// organization and cannot grant super admin.
func (s *Service) CreateUser(
	ctx context.Context,
	actor *middleware.Identity,
	req CreateUserRequest,
) (*User, string, error) {
	role := authz.Role(req.Role)
	if !role.Valid() {
		return nil, "", fmt.Errorf(
			"create user: invalid role %q: %w", req.Role, core.ErrInvalidInput,
		)
	}

	orgID := req.OrganizationID

	if actor.Role != authz.RoleSuperAdmin {
		if role == authz.RoleSuperAdmin {
			return nil, "", fmt.Errorf(
				"create user: only super admins grant super admin: %w",
				core.ErrForbidden,
			)
		}
		// Scope the new account to the actor's organization regardless
		// of what the request claimed.
		orgID = actor.OrganizationID
	}

	if role.RequiresOrganization() && orgID == nil {
		return nil, "", fmt.Errorf(
			"create user: role %s requires an organization: %w",
			role, core.ErrInvalidInput,
		)
	}

	if role == authz.RoleSuperAdmin {
		orgID = nil
	}

	password, err := core.GeneratePassword()
	if err != nil {
		return nil, "", fmt.Errorf("generate password: %w", err)
	}

	passwordHash, err := core.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ID:                uuid.New().String(),
		Username:          strings.TrimSpace(req.Username),
		UsernameCanonical: strings.ToLower(strings.TrimSpace(req.Username)),
		Email:             strings.ToLower(req.Email),
		Name:              req.Name,
		PasswordHash:      passwordHash,
		Role:              role,
		OrganizationID:    orgID,
		IsActive:          true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, "", ErrUsernameExists
		}
		return nil, "", err
	}

	s.record(ctx, actor, activity.ActionUserCreated, u)

	return u, password, nil
}

func (s *Service) GetUser(
	ctx context.Context,
	actor *middleware.Identity,
	id string,
) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Cross-organization targets read as missing, not forbidden.
	if !s.canSee(actor, u) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}

	return u, nil
}

func (s *Service) UpdateUser(
	ctx context.Context,
	actor *middleware.Identity,
	id string,
	req UpdateUserRequest,
) (*User, error) {
	u, err := s.GetUser(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = strings.ToLower(*req.Email)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) UpdateRole(
	ctx context.Context,
	actor *middleware.Identity,
	id string,
	role authz.Role,
) (*User, error) {
	if actor.UserID == id {
		return nil, ErrSelfModification
	}

	assignable := false
	for _, a := range authz.AssignableRoles() {
		if role == a {
			assignable = true
			break
		}
	}
	if !assignable {
		return nil, fmt.Errorf(
			"update role: invalid role %q: %w", role, core.ErrInvalidInput,
		)
	}

	u, err := s.GetUser(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateRole(ctx, id, role.String()); err != nil {
		return nil, err
	}

	u.Role = role
	s.record(ctx, actor, activity.ActionUserRoleChanged, u)

	return u, nil
}

func (s *Service) Deactivate(
	ctx context.Context,
	actor *middleware.Identity,
	id string,
) error {
	if actor.UserID == id {
		return ErrSelfModification
	}

	u, err := s.GetUser(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return err
	}

	s.record(ctx, actor, activity.ActionUserDeactivated, u)

	return nil
}

func (s *Service) Reactivate(
	ctx context.Context,
	actor *middleware.Identity,
	id string,
) error {
	u, err := s.GetUser(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.repo.SetActive(ctx, id, true); err != nil {
		return err
	}

	s.record(ctx, actor, activity.ActionUserReactivated, u)

	return nil
}

func (s *Service) ListUsers(
	ctx context.Context,
	actor *middleware.Identity,
	params ListUsersParams,
) ([]User, int, error) {
	if actor.Role != authz.RoleSuperAdmin {
		params.OrganizationID = actor.OrganizationID
	}

	return s.repo.List(ctx, params)
}

// EnsureSuperAdmin provisions the bootstrap account once. Subsequent
// starts are a no-op.
func (s *Service) EnsureSuperAdmin(
	ctx context.Context,
	username, email, password string,
) error {
	canonical := strings.ToLower(strings.TrimSpace(username))

	exists, err := s.repo.ExistsByUsernameCanonical(ctx, canonical)
	if err != nil {
		return fmt.Errorf("check bootstrap admin: %w", err)
	}
	if exists {
		return nil
	}

	passwordHash, err := core.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}

	u := &User{
		ID:                uuid.New().String(),
		Username:          strings.TrimSpace(username),
		UsernameCanonical: canonical,
		Email:             strings.ToLower(email),
		PasswordHash:      passwordHash,
		Role:              authz.RoleSuperAdmin,
		IsActive:          true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		// Lost a race with a concurrent bootstrap; the account exists.
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil
		}
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	return nil
}

func (s *Service) canSee(actor *middleware.Identity, target *User) bool {
	if actor.Role == authz.RoleSuperAdmin {
		return true
	}
	if target.OrganizationID == nil {
		return false
	}
	return authz.SameOrganization(
		actor.Role,
		actor.OrganizationID,
		*target.OrganizationID,
	)
}

func (s *Service) record(
	ctx context.Context,
	actor *middleware.Identity,
	action string,
	target *User,
) {
	if s.activity == nil {
		return
	}

	s.activity.Record(ctx, activity.Entry{
		OrganizationID: target.OrganizationID,
		ActorID:        actor.UserID,
		Action:         action,
		EntityType:     activity.EntityUser,
		EntityID:       &target.ID,
	})
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Name:           u.Name,
		PasswordHash:   u.PasswordHash,
		Role:           u.Role,
		OrganizationID: u.OrganizationID,
		IsActive:       u.IsActive,
	}
}

var _ auth.UserProvider = (*Service)(nil)
