package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dataarena/dataarena-backend/internal/domain"
	"github.com/dataarena/dataarena-backend/internal/platform/logger"
)

type ContactMessageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *domain.ContactMessage) (*domain.ContactMessage, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.ContactMessage, error)
}

type contactMessageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContactMessageRepo(db *gorm.DB, baseLog *logger.Logger) ContactMessageRepo {
	return &contactMessageRepo{db: db, log: baseLog.With("repo", "ContactMessageRepo")}
}

func (r *contactMessageRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.ContactMessage) (*domain.ContactMessage, error) {
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
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *contactMessageRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.ContactMessage, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.ContactMessage
	if err := t.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
