package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dataarena/dataarena-backend/internal/domain"
	"github.com/dataarena/dataarena-backend/internal/platform/logger"
)

type SubmissionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *domain.Submission) (*domain.Submission, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Submission, error)
	ListByUserAndChallenge(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID) ([]*domain.Submission, error)
	CountByChallenge(ctx context.Context, tx *gorm.DB, challengeID uuid.UUID) (int64, error)
}

type submissionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubmissionRepo(db *gorm.DB, baseLog *logger.Logger) SubmissionRepo {
	return &submissionRepo{db: db, log: baseLog.With("repo", "SubmissionRepo")}
}

func (r *submissionRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.Submission) (*domain.Submission, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.SubmittedAt.IsZero() {
		row.SubmittedAt = time.Now().UTC()
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *submissionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Submission, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*domain.Submission
	if err := t.WithContext(ctx).Where("id = ?", id).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *submissionRepo) ListByUserAndChallenge(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID) ([]*domain.Submission, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Submission
	if userID == uuid.Nil || challengeID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Order("submitted_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *submissionRepo) CountByChallenge(ctx context.Context, tx *gorm.DB, challengeID uuid.UUID) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if challengeID == uuid.Nil {
		return 0, nil
	}
	var n int64
	if err := t.WithContext(ctx).
		Model(&domain.Submission{}).
		Where("challenge_id = ?", challengeID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
