package incidents

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/media"
	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the incident register.
type Service interface {
	List(ctx context.Context, actor auth.Actor, filter Filter) ([]models.Incident, error)
	Get(ctx context.Context, actor auth.Actor, id uint) (*models.Incident, error)
	Create(ctx context.Context, actor auth.Actor, input CreateIncidentInput) (*models.Incident, error)
	Update(ctx context.Context, actor auth.Actor, id uint, input UpdateIncidentInput) (*models.Incident, error)
	Delete(ctx context.Context, actor auth.Actor, id uint) error
	AddImages(ctx context.Context, actor auth.Actor, id uint, files []media.File) ([]models.IncidentImage, error)
	DeleteImage(ctx context.Context, actor auth.Actor, id, imageID uint) error
	AddTeamMember(ctx context.Context, actor auth.Actor, id uint, input TeamMemberInput) (*models.IncidentTeamMember, error)
	DeleteTeamMember(ctx context.Context, actor auth.Actor, id, memberID uint) error
}

type service struct {
	repo    *Repository
	tx      txRunner
	uploads media.Service
}

func NewService(r *Repository, tx txRunner, uploads media.Service) (Service, error) {
	if r == nil {
		return nil, fmt.Errorf("incident repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if uploads == nil {
		return nil, fmt.Errorf("upload service required")
	}
	return &service{repo: r, tx: tx, uploads: uploads}, nil
}

func (s *service) List(ctx context.Context, actor auth.Actor, filter Filter) ([]models.Incident, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}
	if filter.Severity != "" && !filter.Severity.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid severity filter")
	}
	rows, err := s.repo.ListFiltered(ctx, actor, filter)
	return rows, repo.MapError(err, "incident", "list")
}

func (s *service) Get(ctx context.Context, actor auth.Actor, id uint) (*models.Incident, error) {
	incident, err := s.repo.FindWithChildren(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "incident", "load")
	}
	return incident, nil
}

func (s *service) Create(ctx context.Context, actor auth.Actor, input CreateIncidentInput) (*models.Incident, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	companyID, err := repo.CompanyFor(actor, input.CompanyID)
	if err != nil {
		return nil, err
	}
	incident := input.toModel(companyID)
	if err := s.repo.Create(ctx, incident); err != nil {
		return nil, repo.MapError(err, "incident", "create")
	}
	return incident, nil
}

func (s *service) Update(ctx context.Context, actor auth.Actor, id uint, input UpdateIncidentInput) (*models.Incident, error) {
	incident, err := s.repo.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "incident", "load")
	}
	input.apply(incident)
	if incident.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
	}
	if err := s.repo.Save(ctx, incident); err != nil {
		return nil, repo.MapError(err, "incident", "update")
	}
	return s.Get(ctx, actor, id)
}

func (s *service) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	var urls []string
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		urls, err = s.repo.DeleteCascadeTx(tx, actor, id)
		return err
	})
	if err != nil {
		return repo.MapError(err, "incident", "delete")
	}
	_ = s.uploads.Remove(ctx, urls...)
	return nil
}

func (s *service) AddImages(ctx context.Context, actor auth.Actor, id uint, files []media.File) ([]models.IncidentImage, error) {
	if len(files) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one image is required")
	}
	incident, err := s.repo.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "incident", "load")
	}

	images := make([]models.IncidentImage, 0, len(files))
	stored := make([]string, 0, len(files))
	for _, f := range files {
		out, err := s.uploads.Store(ctx, incident.CompanyID, enums.UploadFolderIncidents, f, media.Images())
		if err != nil {
			_ = s.uploads.Remove(ctx, stored...)
			return nil, err
		}
		stored = append(stored, out.URL)
		images = append(images, models.IncidentImage{IncidentID: incident.ID, URL: out.URL, FileName: out.FileName})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.AddImagesTx(tx, images)
	})
	if err != nil {
		_ = s.uploads.Remove(ctx, stored...)
		return nil, repo.MapError(err, "incident image", "create")
	}
	return images, nil
}

func (s *service) DeleteImage(ctx context.Context, actor auth.Actor, id, imageID uint) error {
	if _, err := s.repo.Get(ctx, actor, id); err != nil {
		return repo.MapError(err, "incident", "load")
	}
	img, err := s.repo.FindImage(ctx, id, imageID)
	if err != nil {
		return repo.MapError(err, "incident image", "load")
	}
	if err := s.repo.DeleteImage(ctx, img.ID); err != nil {
		return repo.MapError(err, "incident image", "delete")
	}
	_ = s.uploads.Remove(ctx, img.URL)
	return nil
}

func (s *service) AddTeamMember(ctx context.Context, actor auth.Actor, id uint, input TeamMemberInput) (*models.IncidentTeamMember, error) {
	if _, err := s.repo.Get(ctx, actor, id); err != nil {
		return nil, repo.MapError(err, "incident", "load")
	}
	member := &models.IncidentTeamMember{
		IncidentID: id,
		Name:       strings.TrimSpace(input.Name),
		Role:       strings.TrimSpace(input.Role),
	}
	if member.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if err := s.repo.AddTeamMember(ctx, member); err != nil {
		return nil, repo.MapError(err, "team member", "create")
	}
	return member, nil
}

func (s *service) DeleteTeamMember(ctx context.Context, actor auth.Actor, id, memberID uint) error {
	if _, err := s.repo.Get(ctx, actor, id); err != nil {
		return repo.MapError(err, "incident", "load")
	}
	return repo.MapError(s.repo.DeleteTeamMember(ctx, id, memberID), "team member", "delete")
}
