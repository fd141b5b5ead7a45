package services

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/dataarena/dataarena-backend/internal/domain"
)

// deadlineLayout is the calendar-date format the challenge editor sends.
const deadlineLayout = "2006-01-02"

const defaultDeadlineDays = 30

const defaultMaxScore = 100

// ChallengeInput is the editable field set of a challenge create/edit
// request. Points is deliberately absent: it is derived from Difficulty
// and ignored wherever a client supplies it.
type ChallengeInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Difficulty   string `json:"difficulty"`
	DatasetURL   string `json:"dataset_url"`
	ImageURL     string `json:"image_url"`
	TagsText     string `json:"tags"`
	DeadlineText string `json:"deadline"`
}

// NormalizeChallenge validates and normalizes a create/edit request into
// a canonical Challenge. For edits, existing supplies the fields the
// editor never touches (ID, SubmissionCount, MaxScore, CreatedAt). The
// transform is pure; persistence happens in ChallengeService afterwards.
func NormalizeChallenge(in ChallengeInput, existing *domain.Challenge, now time.Time) (*domain.Challenge, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, missingField("title")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, missingField("description")
	}
	datasetURL := strings.TrimSpace(in.DatasetURL)
	if datasetURL == "" {
		return nil, missingField("dataset_url")
	}

	difficulty, ok := ParseDifficulty(in.Difficulty)
	if !ok {
		return nil, &ValidationError{Code: CodeInvalidEnum, Field: "difficulty"}
	}

	deadline, err := parseDeadline(in.DeadlineText, existing != nil, now)
	if err != nil {
		return nil, err
	}

	out := &domain.Challenge{
		Title:       title,
		Description: description,
		Difficulty:  difficulty,
		Points:      PointsForDifficulty(difficulty),
		DatasetURL:  datasetURL,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Tags:        datatypes.NewJSONSlice(ParseTags(in.TagsText)),
		Deadline:    deadline,
		Status:      domain.ChallengeStatusActive,
	}

	if existing != nil {
		out.ID = existing.ID
		out.SubmissionCount = existing.SubmissionCount
		out.MaxScore = existing.MaxScore
		out.CreatedAt = existing.CreatedAt
	} else {
		out.SubmissionCount = 0
		out.MaxScore = defaultMaxScore
	}

	return out, nil
}

// ParseTags splits free-text comma-separated input into tags: segments
// are trimmed, empty segments dropped, order and duplicates preserved.
func ParseTags(tagsText string) []string {
	parts := strings.Split(tagsText, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func parseDeadline(text string, isEdit bool, now time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		if isEdit {
			// The editor always posts the deadline back on edit.
			return time.Time{}, missingField("deadline")
		}
		return now.Add(defaultDeadlineDays * 24 * time.Hour), nil
	}
	deadline, err := time.Parse(deadlineLayout, text)
	if err != nil {
		return time.Time{}, &ValidationError{Code: CodeInvalidDate, Field: "deadline"}
	}
	return deadline, nil
}
