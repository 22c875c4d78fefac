package inspections

import (
	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/db/models"
)

type Repository struct {
	repo.Scoped[models.Inspection]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Scoped: repo.NewScoped[models.Inspection](db)}
}
