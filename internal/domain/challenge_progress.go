package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChallengeProgress tracks one user's relationship to one challenge.
// At most one row exists per (user, challenge) pair. Completed is
// monotonic: no operation in this service flips it back to false.
type ChallengeProgress struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"uniqueIndex:idx_user_challenge;not null;column:user_id" json:"user_id"`
	ChallengeID uuid.UUID  `gorm:"uniqueIndex:idx_user_challenge;not null;column:challenge_id" json:"challenge_id"`
	AcceptedAt  *time.Time `gorm:"column:accepted_at" json:"accepted_at,omitempty"`
	Completed   bool       `gorm:"not null;default:false;column:completed" json:"completed"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ChallengeProgress) TableName() string { return "challenge_progress" }
