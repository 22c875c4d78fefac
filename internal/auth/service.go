package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/delanoso/safetyhub/internal/repo"
	pkgauth "github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/auth/session"
	"github.com/delanoso/safetyhub/pkg/config"
	"github.com/delanoso/safetyhub/pkg/db"
	"github.com/delanoso/safetyhub/pkg/db/models"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/logger"
	"github.com/delanoso/safetyhub/pkg/security"
)

const invalidCredentialsMessage = "invalid email or password"

// Service authenticates users and resolves session cookies.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	// ResolveActor maps a session cookie to its caller. Unknown, expired and
	// revoked sessions all report CodeUnauthorized.
	ResolveActor(ctx context.Context, token string) (*pkgauth.Actor, error)
	Me(ctx context.Context, actor pkgauth.Actor) (*models.User, error)
	SessionTTL() time.Duration
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	UpdatePasswordHash(ctx context.Context, id uint, hash string) error
}

type sessionManager interface {
	Create(ctx context.Context, userID uint) (string, error)
	Resolve(ctx context.Context, token string) (uint, error)
	Revoke(ctx context.Context, token string) error
	TTL() time.Duration
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Users       userRepository
	Sessions    sessionManager
	PasswordCfg config.PasswordConfig
	Logger      *logger.Logger
	Now         func() time.Time
}

type service struct {
	users       userRepository
	sessions    sessionManager
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
	now         func() time.Time
}

// NewService constructs the login service.
func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		users:       params.Users,
		sessions:    params.Sessions,
		passwordCfg: params.PasswordCfg,
		logg:        params.Logger,
		now:         now,
	}, nil
}

func (s *service) SessionTTL() time.Duration { return s.sessions.TTL() }

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil && !errors.Is(err, security.ErrInvalidHash) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	if security.IsLegacyHash(user.PasswordHash) {
		s.upgradeHash(ctx, user, req.Password)
	}

	now := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record login")
	}
	user.LastLoginAt = &now

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}
	return &LoginResult{Token: token, User: user}, nil
}

// upgradeHash replaces an imported bcrypt hash with argon2id. Failure only costs
// another bcrypt check next login, so it is logged and ignored.
func (s *service) upgradeHash(ctx context.Context, user *models.User, password string) {
	hash, err := security.HashPassword(password, s.passwordCfg)
	if err == nil {
		err = s.users.UpdatePasswordHash(ctx, user.ID, hash)
	}
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "auth.rehash_failed", err)
		}
		return
	}
	user.PasswordHash = hash
}

func (s *service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) ResolveActor(ctx context.Context, token string) (*pkgauth.Actor, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrInvalidSession) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired or invalid")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve session")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session user no longer exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session user")
	}
	return &pkgauth.Actor{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CompanyID: user.CompanyID,
	}, nil
}

func (s *service) Me(ctx context.Context, actor pkgauth.Actor) (*models.User, error) {
	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, repo.MapError(err, "user", "load")
	}
	return user, nil
}
