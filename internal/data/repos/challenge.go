package repos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dataarena/dataarena-backend/internal/domain"
	"github.com/dataarena/dataarena-backend/internal/platform/logger"
)

type ChallengeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *domain.Challenge) (*domain.Challenge, error)
	Update(ctx context.Context, tx *gorm.DB, row *domain.Challenge) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Challenge, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Challenge, error)

	// IncrementSubmissionCount advances the counter in the database so
	// concurrent submitters never lose updates. Callers must not write
	// submission_count any other way.
	IncrementSubmissionCount(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type challengeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChallengeRepo(db *gorm.DB, baseLog *logger.Logger) ChallengeRepo {
	return &challengeRepo{db: db, log: baseLog.With("repo", "ChallengeRepo")}
}

func (r *challengeRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.Challenge) (*domain.Challenge, error) {
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
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *challengeRepo) Update(ctx context.Context, tx *gorm.DB, row *domain.Challenge) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if row == nil || row.ID == uuid.Nil {
		return nil
	}
	row.UpdatedAt = time.Now().UTC()
	// Full replace of the editable field set. Counter columns are written
	// with the values carried over by the normalizer, never recomputed here.
	return t.WithContext(ctx).
		Model(&domain.Challenge{}).
		Where("id = ?", row.ID).
		Updates(map[string]interface{}{
			"title":       row.Title,
			"description": row.Description,
			"difficulty":  row.Difficulty,
			"points":      row.Points,
			"dataset_url": row.DatasetURL,
			"image_url":   row.ImageURL,
			"tags":        row.Tags,
			"deadline":    row.Deadline,
			"status":      row.Status,
			"updated_at":  row.UpdatedAt,
		}).Error
}

func (r *challengeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Challenge, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*domain.Challenge
	if err := t.WithContext(ctx).Where("id = ?", id).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *challengeRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Challenge, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Challenge
	if err := t.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *challengeRepo) IncrementSubmissionCount(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	res := t.WithContext(ctx).
		Model(&domain.Challenge{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"submission_count": gorm.Expr("submission_count + 1"),
			"updated_at":       time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("challenge not found")
	}
	return nil
}
