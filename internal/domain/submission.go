package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	SubmissionStatusPending   = "pending"
	SubmissionStatusEvaluated = "evaluated"
	SubmissionStatusRejected  = "rejected"
)

// Submission is the evidence record of one upload. Rows are immutable
// from this service's perspective; scoring updates Status/Score/Feedback
// out of band.
type Submission struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ChallengeID uuid.UUID  `gorm:"index;not null;column:challenge_id" json:"challenge_id"`
	Challenge   *Challenge `gorm:"foreignKey:ChallengeID;references:ID" json:"-"`
	UserID      uuid.UUID  `gorm:"index;not null;column:user_id" json:"user_id"`
	FileName    string     `gorm:"not null;column:file_name" json:"file_name"`
	Status      string     `gorm:"not null;default:pending;column:status" json:"status"`
	Score       float64    `gorm:"not null;default:0;column:score" json:"score"`
	Feedback    string     `gorm:"column:feedback" json:"feedback"`
	SubmittedAt time.Time  `gorm:"not null;column:submitted_at" json:"submitted_at"`
}

func (Submission) TableName() string { return "submissions" }
