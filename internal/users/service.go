package users

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/config"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/security"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service manages login identities for admins and super users.
type Service interface {
	List(ctx context.Context, actor auth.Actor) ([]models.User, error)
	Get(ctx context.Context, actor auth.Actor, id uint) (*models.User, error)
	Create(ctx context.Context, actor auth.Actor, input CreateUserInput) (*models.User, error)
	Update(ctx context.Context, actor auth.Actor, id uint, input UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, actor auth.Actor, id uint) error
}

type service struct {
	repo        *Repository
	tx          txRunner
	passwordCfg config.PasswordConfig
}

// NewService builds the user service.
func NewService(r *Repository, tx txRunner, passwordCfg config.PasswordConfig) (Service, error) {
	if r == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: r, tx: tx, passwordCfg: passwordCfg}, nil
}

func (s *service) List(ctx context.Context, actor auth.Actor) ([]models.User, error) {
	rows, err := s.repo.List(ctx, actor)
	return rows, repo.MapError(err, "user", "list")
}

func (s *service) Get(ctx context.Context, actor auth.Actor, id uint) (*models.User, error) {
	user, err := s.repo.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "user", "load")
	}
	return user, nil
}

func (s *service) Create(ctx context.Context, actor auth.Actor, input CreateUserInput) (*models.User, error) {
	role, err := roleOrDefault(input.Role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role")
	}
	if role == enums.RoleSuper && !actor.IsSuper() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only super users can create super users")
	}

	companyID, err := repo.CompanyFor(actor, input.CompanyID)
	if err != nil {
		return nil, err
	}
	if companyID == nil && role != enums.RoleSuper {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "companyId is required")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
		Name:         strings.TrimSpace(input.Name),
		Role:         role,
		CompanyID:    companyID,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if companyID != nil {
			if err := s.ensureSeat(tx, *companyID); err != nil {
				return err
			}
		}
		return s.repo.CreateTx(tx, user)
	})
	if err != nil {
		return nil, repo.MapError(err, "user", "create")
	}
	return user, nil
}

// ensureSeat rejects the write once the company holds userLimit users.
func (s *service) ensureSeat(tx *gorm.DB, companyID uint) error {
	var company models.Company
	if err := tx.First(&company, companyID).Error; err != nil {
		return repo.MapError(err, "company", "load")
	}
	count, err := s.repo.CountByCompanyTx(tx, companyID)
	if err != nil {
		return err
	}
	if count >= int64(company.UserLimit) {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("user limit reached: %s allows %d users", company.Name, company.UserLimit)).
			WithDetails(map[string]any{"userLimit": company.UserLimit, "userCount": count})
	}
	return nil
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id uint, input UpdateUserInput) (*models.User, error) {
	var user *models.User
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		user, err = s.repo.GetTx(tx, actor, id)
		if err != nil {
			return err
		}
		if user.Role == enums.RoleSuper && !actor.IsSuper() {
			return pkgerrors.New(pkgerrors.CodeForbidden, "only super users can modify super users")
		}

		if input.Email != nil {
			user.Email = normalizeEmail(*input.Email)
		}
		if input.Name != nil {
			user.Name = strings.TrimSpace(*input.Name)
		}
		if input.Role != nil {
			role, err := enums.ParseRole(*input.Role)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role")
			}
			if role == enums.RoleSuper && !actor.IsSuper() {
				return pkgerrors.New(pkgerrors.CodeForbidden, "only super users can grant the super role")
			}
			user.Role = role
		}
		if input.Password != nil {
			hash, err := security.HashPassword(*input.Password, s.passwordCfg)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
			}
			user.PasswordHash = hash
		}
		if input.CompanyID != nil && !sameCompany(user.CompanyID, input.CompanyID) {
			if !actor.IsSuper() {
				return pkgerrors.New(pkgerrors.CodeForbidden, "only super users can move users between companies")
			}
			if err := s.ensureSeat(tx, *input.CompanyID); err != nil {
				return err
			}
			moved := *input.CompanyID
			user.CompanyID = &moved
		}
		return s.repo.SaveTx(tx, user)
	})
	if err != nil {
		return nil, repo.MapError(err, "user", "update")
	}
	return user, nil
}

func (s *service) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	if id == actor.UserID {
		return pkgerrors.New(pkgerrors.CodeValidation, "you cannot delete your own account")
	}
	user, err := s.repo.Get(ctx, actor, id)
	if err != nil {
		return repo.MapError(err, "user", "load")
	}
	if user.Role == enums.RoleSuper && !actor.IsSuper() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only super users can delete super users")
	}
	return repo.MapError(s.repo.Delete(ctx, actor, id), "user", "delete")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sameCompany(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
