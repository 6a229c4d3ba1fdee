// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/opsboard/opsboard/internal/activity"
	"github.com/opsboard/opsboard/internal/authz"
	"github.com/opsboard/opsboard/internal/core"
	"github.com/opsboard/opsboard/internal/middleware"
)

// ErrInvalidCredentials covers both unknown username and wrong password,
// so the two are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserInfo is the slice of a user record the authentication gate needs.
// The password hash never travels further than this package.
type UserInfo struct {
	ID             string
	Username       string
	Email          string
	Name           string
	PasswordHash   string
	Role           authz.Role
	OrganizationID *string
	IsActive       bool
}

type UserProvider interface {
	GetByUsername(ctx context.Context, username string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type ActivityRecorder interface {
	Record(ctx context.Context, entry activity.Entry)
}

type Service struct {
	users    UserProvider
	tokens   *TokenManager
	activity ActivityRecorder
}

func NewService(
	users UserProvider,
	tokens *TokenManager,
	recorder ActivityRecorder,
) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		activity: recorder,
	}
}

// Login authenticates a username/password pair and mints an access
// token. Beyond token issuance there is no session state; concurrent
// logins for the same user are independent.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*LoginResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // burn a verify so unknown usernames cost the same as wrong passwords
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !user.IsActive {
		return nil, core.ErrAccountInactive
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		//nolint:errcheck // best-effort rehash upgrade
		_ = s.users.UpdatePassword(ctx, user.ID, newHash)
	}

	token, err := s.tokens.Issue(user.ID, user.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	if s.activity != nil {
		s.activity.Record(ctx, activity.Entry{
			OrganizationID: user.OrganizationID,
			ActorID:        user.ID,
			Action:         activity.ActionUserLogin,
			EntityType:     activity.EntityUser,
			EntityID:       &user.ID,
		})
	}

	return &LoginResponse{
		AccessToken:    token,
		TokenType:      "Bearer",
		ExpiresIn:      int(s.tokens.TokenLifetime().Seconds()),
		UserID:         user.ID,
		OrganizationID: user.OrganizationID,
		Role:           user.Role,
	}, nil
}

// ResolveIdentity validates a bearer token and re-fetches the user so
// role changes and deactivation are honored immediately, without any
// token revocation machinery.
func (s *Service) ResolveIdentity(
	ctx context.Context,
	token string,
) (*middleware.Identity, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// Subject deleted after issuance; the token is worthless.
			return nil, fmt.Errorf("resolve identity: %w", core.ErrTokenInvalid)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("resolve identity: %w", core.ErrAccountInactive)
	}

	return &middleware.Identity{
		UserID:         user.ID,
		Username:       user.Username,
		OrganizationID: user.OrganizationID,
		Role:           user.Role,
	}, nil
}

func (s *Service) GetCurrentUser(
	ctx context.Context,
	userID string,
) (*MeResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &MeResponse{
		UserID:         user.ID,
		Username:       user.Username,
		Email:          user.Email,
		Name:           user.Name,
		OrganizationID: user.OrganizationID,
		Role:           user.Role,
	}, nil
}

func (s *Service) ChangePassword(
	ctx context.Context,
	userID, currentPassword, newPassword string,
) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	valid, _, err := core.VerifyPasswordWithRehash(
		currentPassword,
		user.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return ErrInvalidCredentials
	}

	newHash, err := core.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}

var _ middleware.IdentityResolver = (*Service)(nil)
