package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dataarena/dataarena-backend/internal/data/repos"
	"github.com/dataarena/dataarena-backend/internal/domain"
	"github.com/dataarena/dataarena-backend/internal/platform/logger"
	"github.com/dataarena/dataarena-backend/internal/realtime"
)

type SubmissionService interface {
	// RecordSubmission persists the evidence record and advances the
	// challenge's submission counter in one transaction, then runs the
	// completion reconciler (direct-upload path).
	RecordSubmission(ctx context.Context, userID, challengeID uuid.UUID, fileName string) (*domain.Submission, error)

	ListOwn(ctx context.Context, userID, challengeID uuid.UUID) ([]*domain.Submission, error)
}

type submissionService struct {
	db              *gorm.DB
	log             *logger.Logger
	submissionRepo  repos.SubmissionRepo
	challengeRepo   repos.ChallengeRepo
	progressService ProgressService
	bus             realtime.EventBus
}

func NewSubmissionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	submissionRepo repos.SubmissionRepo,
	challengeRepo repos.ChallengeRepo,
	progressService ProgressService,
	bus realtime.EventBus,
) SubmissionService {
	return &submissionService{
		db:              db,
		log:             baseLog.With("service", "SubmissionService"),
		submissionRepo:  submissionRepo,
		challengeRepo:   challengeRepo,
		progressService: progressService,
		bus:             bus,
	}
}

func (s *submissionService) RecordSubmission(ctx context.Context, userID, challengeID uuid.UUID, fileName string) (*domain.Submission, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return nil, missingField("file_name")
	}

	challenge, err := s.challengeRepo.GetByID(ctx, nil, challengeID)
	if err != nil {
		return nil, fmt.Errorf("%w: load challenge: %v", ErrStorageFailure, err)
	}
	if challenge == nil {
		return nil, ErrNotFound
	}

	submission := &domain.Submission{
		ID:          uuid.New(),
		ChallengeID: challengeID,
		UserID:      userID,
		FileName:    fileName,
		Status:      domain.SubmissionStatusPending,
		SubmittedAt: time.Now().UTC(),
	}

	// The evidence row and the counter advance commit together or not at
	// all; the increment itself is a single UPDATE so concurrent
	// submitters never clobber each other.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.submissionRepo.Create(ctx, tx, submission); err != nil {
			return fmt.Errorf("create submission: %w", err)
		}
		if err := s.challengeRepo.IncrementSubmissionCount(ctx, tx, challengeID); err != nil {
			return fmt.Errorf("increment submission count: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Error("RecordSubmission: transaction failed", "error", err, "challenge_id", challengeID, "user_id", userID)
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	if err := s.bus.Publish(ctx, realtime.Event{
		Type:        realtime.EventSubmissionCreated,
		UserID:      userID.String(),
		ChallengeID: challengeID.String(),
	}); err != nil {
		s.log.Warn("RecordSubmission: publish failed", "error", err, "challenge_id", challengeID)
	}

	// Direct-upload completion path. Runs only after the submission is
	// committed, so a reconcile failure must not be reported as a failed
	// request: the caller would re-submit intent it already landed. The
	// confirm-completion endpoint reaches the same idempotent reconciler,
	// so completion catches up on the next trigger.
	if _, err := s.progressService.CompleteChallenge(ctx, userID, challengeID); err != nil {
		s.log.Error("RecordSubmission: completion reconcile failed", "error", err, "challenge_id", challengeID, "user_id", userID)
	}

	return submission, nil
}

func (s *submissionService) ListOwn(ctx context.Context, userID, challengeID uuid.UUID) ([]*domain.Submission, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	return s.submissionRepo.ListByUserAndChallenge(ctx, nil, userID, challengeID)
}
