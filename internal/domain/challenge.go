package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

const ChallengeStatusActive = "active"

// Challenge is a published data-analysis task. Points is derived from
// Difficulty and SubmissionCount is advanced only through atomic
// increments; neither is client-writable.
type Challenge struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string                      `gorm:"not null;column:title" json:"title"`
	Description string                      `gorm:"not null;column:description" json:"description"`
	Difficulty  string                      `gorm:"not null;column:difficulty" json:"difficulty"`
	Points      int                         `gorm:"not null;column:points" json:"points"`
	DatasetURL  string                      `gorm:"not null;column:dataset_url" json:"dataset_url"`
	ImageURL    string                      `gorm:"column:image_url" json:"image_url"`
	Tags        datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	Deadline    time.Time                   `gorm:"not null;column:deadline" json:"deadline"`
	Status      string                      `gorm:"not null;default:active;column:status" json:"status"`

	SubmissionCount int `gorm:"not null;default:0;column:submission_count" json:"submission_count"`
	MaxScore        int `gorm:"not null;default:100;column:max_score" json:"max_score"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Challenge) TableName() string { return "challenges" }
