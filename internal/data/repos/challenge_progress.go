package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dataarena/dataarena-backend/internal/domain"
	"github.com/dataarena/dataarena-backend/internal/platform/logger"
)

type ChallengeProgressRepo interface {
	// GetOrCreate lazily creates the (user, challenge) row. The unique
	// index makes the create a no-op when a row already exists, so two
	// racing callers converge on the same record.
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID) (*domain.ChallengeProgress, error)
	Get(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID) (*domain.ChallengeProgress, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.ChallengeProgress, error)

	// MarkCompleted flips completed to true. The guard on completed=false
	// makes repeats no-ops; the returned bool reports whether this call
	// actually flipped the row.
	MarkCompleted(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID) (bool, error)

	// SetAcceptedAt records the first interaction. Only rows with a null
	// accepted_at are touched, so the timestamp is set once.
	SetAcceptedAt(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID, at time.Time) error
}

type challengeProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChallengeProgressRepo(db *gorm.DB, baseLog *logger.Logger) ChallengeProgressRepo {
	return &challengeProgressRepo{db: db, log: baseLog.With("repo", "ChallengeProgressRepo")}
}

func (r *challengeProgressRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID) (*domain.ChallengeProgress, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || challengeID == uuid.Nil {
		return nil, nil
	}

	row := &domain.ChallengeProgress{
		ID:          uuid.New(),
		UserID:      userID,
		ChallengeID: challengeID,
	}
	if err := t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "challenge_id"}},
			DoNothing: true,
		}).
		Create(row).Error; err != nil {
		return nil, err
	}

	// Re-read so callers always see the persisted row, whether this call
	// created it or lost the race.
	return r.Get(ctx, t, userID, challengeID)
}

func (r *challengeProgressRepo) Get(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID) (*domain.ChallengeProgress, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || challengeID == uuid.Nil {
		return nil, nil
	}
	var out []*domain.ChallengeProgress
	if err := t.WithContext(ctx).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *challengeProgressRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.ChallengeProgress, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.ChallengeProgress
	if userID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *challengeProgressRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || challengeID == uuid.Nil {
		return false, nil
	}
	res := t.WithContext(ctx).
		Model(&domain.ChallengeProgress{}).
		Where("user_id = ? AND challenge_id = ? AND completed = ?", userID, challengeID, false).
		Updates(map[string]interface{}{
			"completed":  true,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *challengeProgressRepo) SetAcceptedAt(ctx context.Context, tx *gorm.DB, userID, challengeID uuid.UUID, at time.Time) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if userID == uuid.Nil || challengeID == uuid.Nil {
		return nil
	}
	return t.WithContext(ctx).
		Model(&domain.ChallengeProgress{}).
		Where("user_id = ? AND challenge_id = ? AND accepted_at IS NULL", userID, challengeID).
		Updates(map[string]interface{}{
			"accepted_at": at,
			"updated_at":  time.Now().UTC(),
		}).Error
}
