package library

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

// Service is the company document library: named folders holding uploaded files.
type Service interface {
	ListFolders(ctx context.Context, actor auth.Actor) ([]models.LibraryFolder, error)
	CreateFolder(ctx context.Context, actor auth.Actor, input FolderInput) (*models.LibraryFolder, error)
	RenameFolder(ctx context.Context, actor auth.Actor, id uint, input RenameFolderInput) (*models.LibraryFolder, error)
	DeleteFolder(ctx context.Context, actor auth.Actor, id uint) error

	ListFiles(ctx context.Context, actor auth.Actor, filter FileFilter) ([]models.LibraryFile, error)
	UploadFile(ctx context.Context, actor auth.Actor, folderID *uint, file media.File) (*models.LibraryFile, error)
	DeleteFile(ctx context.Context, actor auth.Actor, id uint) error
}

type service struct {
	repo    *Repository
	tx      txRunner
	uploads media.Service
}

func NewService(r *Repository, tx txRunner, uploads media.Service) (Service, error) {
	if r == nil {
		return nil, fmt.Errorf("library repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if uploads == nil {
		return nil, fmt.Errorf("upload service required")
	}
	return &service{repo: r, tx: tx, uploads: uploads}, nil
}

func (s *service) ListFolders(ctx context.Context, actor auth.Actor) ([]models.LibraryFolder, error) {
	rows, err := s.repo.ListFolders(ctx, actor)
	return rows, repo.MapError(err, "folder", "list")
}

func (s *service) CreateFolder(ctx context.Context, actor auth.Actor, input FolderInput) (*models.LibraryFolder, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	companyID, err := repo.CompanyFor(actor, input.CompanyID)
	if err != nil {
		return nil, err
	}
	row := &models.LibraryFolder{CompanyID: companyID, Name: name}
	if err := s.repo.Folders.Create(ctx, row); err != nil {
		return nil, repo.MapError(err, "folder", "create")
	}
	return row, nil
}

func (s *service) RenameFolder(ctx context.Context, actor auth.Actor, id uint, input RenameFolderInput) (*models.LibraryFolder, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	row, err := s.repo.Folders.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "folder", "load")
	}
	row.Name = name
	if err := s.repo.Folders.Save(ctx, row); err != nil {
		return nil, repo.MapError(err, "folder", "update")
	}
	return row, nil
}

// DeleteFolder never leaves files pointing at a missing folder: both go in
// one transaction, and stored objects are removed after commit.
func (s *service) DeleteFolder(ctx context.Context, actor auth.Actor, id uint) error {
	var urls []string
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		urls, err = s.repo.DeleteFolderTx(tx, actor, id)
		return err
	})
	if err != nil {
		return repo.MapError(err, "folder", "delete")
	}
	_ = s.uploads.Remove(ctx, urls...)
	return nil
}

func (s *service) ListFiles(ctx context.Context, actor auth.Actor, filter FileFilter) ([]models.LibraryFile, error) {
	rows, err := s.repo.ListFiles(ctx, actor, filter)
	return rows, repo.MapError(err, "file", "list")
}

func (s *service) UploadFile(ctx context.Context, actor auth.Actor, folderID *uint, file media.File) (*models.LibraryFile, error) {
	var companyID *uint
	if folderID != nil {
		folder, err := s.repo.Folders.Get(ctx, actor, *folderID)
		if err != nil {
			return nil, repo.MapError(err, "folder", "load")
		}
		companyID = folder.CompanyID
	} else {
		var err error
		if companyID, err = repo.CompanyFor(actor, nil); err != nil {
			return nil, err
		}
	}

	stored, err := s.uploads.Store(ctx, companyID, enums.UploadFolderLibrary, file, media.AnyFile())
	if err != nil {
		return nil, err
	}
	row := &models.LibraryFile{
		CompanyID:   companyID,
		FolderID:    folderID,
		Name:        stored.FileName,
		URL:         stored.URL,
		ContentType: stored.ContentType,
		SizeBytes:   stored.SizeBytes,
	}
	if err := s.repo.Files.Create(ctx, row); err != nil {
		_ = s.uploads.Remove(ctx, stored.URL)
		return nil, repo.MapError(err, "file", "create")
	}
	return row, nil
}

func (s *service) DeleteFile(ctx context.Context, actor auth.Actor, id uint) error {
	row, err := s.repo.Files.Get(ctx, actor, id)
	if err != nil {
		return repo.MapError(err, "file", "load")
	}
	if err := s.repo.Files.Delete(ctx, actor, id); err != nil {
		return repo.MapError(err, "file", "delete")
	}
	_ = s.uploads.Remove(ctx, row.URL)
	return nil
}
