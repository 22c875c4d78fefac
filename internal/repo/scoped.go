package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/delanoso/safetyhub/pkg/auth"
)

// Scoped is the company-scoped CRUD shared by every tenant-owned table.
type Scoped[T any] struct {
	Base
}

// NewScoped binds a scoped repository for model T.
func NewScoped[T any](db *gorm.DB) Scoped[T] {
	return Scoped[T]{Base: NewBase(db)}
}

// List returns the actor's rows, newest first, after applying filters.
func (s Scoped[T]) List(ctx context.Context, actor auth.Actor, filters ...func(*gorm.DB) *gorm.DB) ([]T, error) {
	rows := []T{}
	err := s.DB(ctx).
		Scopes(Scope(actor)).
		Scopes(filters...).
		Order("id DESC").
		Find(&rows).Error
	return rows, err
}

// Get loads one row visible to the actor.
func (s Scoped[T]) Get(ctx context.Context, actor auth.Actor, id uint, preloads ...string) (*T, error) {
	q := s.DB(ctx).Scopes(Scope(actor))
	for _, p := range preloads {
		q = q.Preload(p)
	}
	var row T
	if err := q.First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// GetTx is Get inside an existing transaction.
func (s Scoped[T]) GetTx(tx *gorm.DB, actor auth.Actor, id uint) (*T, error) {
	var row T
	if err := tx.Scopes(Scope(actor)).First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// GetForUpdateTx is GetTx holding a row lock until the transaction ends.
func (s Scoped[T]) GetForUpdateTx(tx *gorm.DB, actor auth.Actor, id uint) (*T, error) {
	return s.GetTx(tx.Clauses(clause.Locking{Strength: "UPDATE"}), actor, id)
}

// UpdateColumnsTx writes only the named columns of row, leaving concurrent
// writes to other columns intact.
func (s Scoped[T]) UpdateColumnsTx(tx *gorm.DB, row *T, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	return tx.Model(row).Select(columns).Updates(row).Error
}

func (s Scoped[T]) Create(ctx context.Context, row *T) error {
	return s.DB(ctx).Omit(clause.Associations).Create(row).Error
}

// Save writes every column of row. Associations are left alone.
func (s Scoped[T]) Save(ctx context.Context, row *T) error {
	return s.DB(ctx).Omit(clause.Associations).Save(row).Error
}

// Delete removes a visible row, reporting gorm.ErrRecordNotFound when nothing matched.
func (s Scoped[T]) Delete(ctx context.Context, actor auth.Actor, id uint) error {
	return s.DeleteTx(s.DB(ctx), actor, id)
}

func (s Scoped[T]) DeleteTx(tx *gorm.DB, actor auth.Actor, id uint) error {
	var row T
	res := tx.Scopes(Scope(actor)).Where("id = ?", id).Delete(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count returns the number of visible rows after filters.
func (s Scoped[T]) Count(ctx context.Context, actor auth.Actor, filters ...func(*gorm.DB) *gorm.DB) (int64, error) {
	var (
		n   int64
		row T
	)
	err := s.DB(ctx).Model(&row).Scopes(Scope(actor)).Scopes(filters...).Count(&n).Error
	return n, err
}
