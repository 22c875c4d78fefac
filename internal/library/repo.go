package library

import (
	"context"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/models"
)

type Repository struct {
	Folders repo.Scoped[models.LibraryFolder]
	Files   repo.Scoped[models.LibraryFile]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Folders: repo.NewScoped[models.LibraryFolder](db),
		Files:   repo.NewScoped[models.LibraryFile](db),
	}
}

func (r *Repository) ListFolders(ctx context.Context, actor auth.Actor) ([]models.LibraryFolder, error) {
	rows := []models.LibraryFolder{}
	err := r.Folders.DB(ctx).Scopes(repo.Scope(actor)).Order("name").Find(&rows).Error
	return rows, err
}

func (r *Repository) ListFiles(ctx context.Context, actor auth.Actor, f FileFilter) ([]models.LibraryFile, error) {
	return r.Files.List(ctx, actor, func(q *gorm.DB) *gorm.DB {
		if f.FolderID != nil {
			q = q.Where("folder_id = ?", *f.FolderID)
		}
		return q
	})
}

// DeleteFolderTx removes the folder's files and then the folder, returning
// the file URLs for object cleanup.
func (r *Repository) DeleteFolderTx(tx *gorm.DB, actor auth.Actor, id uint) ([]string, error) {
	if _, err := r.Folders.GetTx(tx, actor, id); err != nil {
		return nil, err
	}
	var urls []string
	if err := tx.Model(&models.LibraryFile{}).Where("folder_id = ?", id).Pluck("url", &urls).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("folder_id = ?", id).Delete(&models.LibraryFile{}).Error; err != nil {
		return nil, err
	}
	if err := r.Folders.DeleteTx(tx, actor, id); err != nil {
		return nil, err
	}
	return urls, nil
}
