package elections

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/models"
)

type Repository struct {
	repo.Scoped[models.SHEElection]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Scoped: repo.NewScoped[models.SHEElection](db)}
}

func (r *Repository) CreateCandidate(ctx context.Context, c *models.SHECandidate) error {
	return r.DB(ctx).Create(c).Error
}

func (r *Repository) CreateVoter(ctx context.Context, v *models.SHEVoter) error {
	return r.DB(ctx).Create(v).Error
}

func (r *Repository) DeleteCandidate(ctx context.Context, electionID, candidateID uint) error {
	return deleteChild(r.DB(ctx), &models.SHECandidate{}, electionID, candidateID)
}

func (r *Repository) DeleteVoter(ctx context.Context, electionID, voterID uint) error {
	return deleteChild(r.DB(ctx), &models.SHEVoter{}, electionID, voterID)
}

func deleteChild(db *gorm.DB, model any, electionID, id uint) error {
	res := db.Where("election_id = ? AND id = ?", electionID, id).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) FindVoterByToken(ctx context.Context, token string) (*models.SHEVoter, error) {
	var v models.SHEVoter
	if err := r.DB(ctx).Where("token = ?", token).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repository) ListCandidates(ctx context.Context, electionID uint) ([]models.SHECandidate, error) {
	rows := []models.SHECandidate{}
	err := r.DB(ctx).Where("election_id = ?", electionID).Order("id").Find(&rows).Error
	return rows, err
}

func (r *Repository) FindCandidateTx(tx *gorm.DB, electionID, candidateID uint) (*models.SHECandidate, error) {
	var c models.SHECandidate
	if err := tx.Where("election_id = ?", electionID).First(&c, candidateID).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// CastVoteTx records the choice only if the voter has not voted yet and
// reports whether the row changed.
func (r *Repository) CastVoteTx(tx *gorm.DB, voterID, candidateID uint, at time.Time) (bool, error) {
	res := tx.Model(&models.SHEVoter{}).
		Where("id = ? AND voted_at IS NULL", voterID).
		Updates(map[string]any{"candidate_id": candidateID, "voted_at": at})
	return res.RowsAffected == 1, res.Error
}

type tallyRow struct {
	CandidateID uint
	Votes       int64
}

// Tally counts votes per candidate. Candidates without votes are absent.
func (r *Repository) Tally(ctx context.Context, electionID uint) (map[uint]int64, error) {
	var rows []tallyRow
	err := r.DB(ctx).Model(&models.SHEVoter{}).
		Select("candidate_id, COUNT(*) AS votes").
		Where("election_id = ? AND candidate_id IS NOT NULL", electionID).
		Group("candidate_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]int64, len(rows))
	for _, row := range rows {
		out[row.CandidateID] = row.Votes
	}
	return out, nil
}

func (r *Repository) CountVoters(ctx context.Context, electionID uint) (total, voted int64, err error) {
	q := r.DB(ctx).Model(&models.SHEVoter{}).Where("election_id = ?", electionID)
	if err = q.Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err = r.DB(ctx).Model(&models.SHEVoter{}).
		Where("election_id = ? AND voted_at IS NOT NULL", electionID).
		Count(&voted).Error
	return total, voted, err
}

func (r *Repository) DeleteCascadeTx(tx *gorm.DB, actor auth.Actor, id uint) error {
	if _, err := r.GetTx(tx, actor, id); err != nil {
		return err
	}
	if err := tx.Where("election_id = ?", id).Delete(&models.SHEVoter{}).Error; err != nil {
		return err
	}
	if err := tx.Where("election_id = ?", id).Delete(&models.SHECandidate{}).Error; err != nil {
		return err
	}
	return r.DeleteTx(tx, actor, id)
}
