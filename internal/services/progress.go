package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dataarena/dataarena-backend/internal/data/repos"
	"github.com/dataarena/dataarena-backend/internal/domain"
	"github.com/dataarena/dataarena-backend/internal/platform/logger"
	"github.com/dataarena/dataarena-backend/internal/realtime"
)

type ProgressService interface {
	// AcceptChallenge records the user's first interaction with a
	// challenge. Safe to repeat; AcceptedAt is set once.
	AcceptChallenge(ctx context.Context, userID, challengeID uuid.UUID) (*domain.ChallengeProgress, error)

	// CompleteChallenge is the completion reconciler: both the
	// direct-upload path and the external-form acknowledgment converge
	// here. Idempotent; completed never transitions back to false.
	CompleteChallenge(ctx context.Context, userID, challengeID uuid.UUID) (*domain.ChallengeProgress, error)

	GetProgress(ctx context.Context, userID, challengeID uuid.UUID) (*domain.ChallengeProgress, error)
	ListProgressForUser(ctx context.Context, userID uuid.UUID) ([]*domain.ChallengeProgress, error)
}

type progressService struct {
	db            *gorm.DB
	log           *logger.Logger
	progressRepo  repos.ChallengeProgressRepo
	challengeRepo repos.ChallengeRepo
	bus           realtime.EventBus
}

func NewProgressService(
	db *gorm.DB,
	baseLog *logger.Logger,
	progressRepo repos.ChallengeProgressRepo,
	challengeRepo repos.ChallengeRepo,
	bus realtime.EventBus,
) ProgressService {
	return &progressService{
		db:            db,
		log:           baseLog.With("service", "ProgressService"),
		progressRepo:  progressRepo,
		challengeRepo: challengeRepo,
		bus:           bus,
	}
}

func (s *progressService) AcceptChallenge(ctx context.Context, userID, challengeID uuid.UUID) (*domain.ChallengeProgress, error) {
	if userID == uuid.Nil || challengeID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if err := s.requireChallenge(ctx, challengeID); err != nil {
		return nil, err
	}
	if _, err := s.progressRepo.GetOrCreate(ctx, nil, userID, challengeID); err != nil {
		return nil, fmt.Errorf("get or create progress: %w", err)
	}
	if err := s.progressRepo.SetAcceptedAt(ctx, nil, userID, challengeID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("set accepted at: %w", err)
	}
	return s.progressRepo.Get(ctx, nil, userID, challengeID)
}

func (s *progressService) CompleteChallenge(ctx context.Context, userID, challengeID uuid.UUID) (*domain.ChallengeProgress, error) {
	if userID == uuid.Nil || challengeID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if err := s.requireChallenge(ctx, challengeID); err != nil {
		return nil, err
	}

	if _, err := s.progressRepo.GetOrCreate(ctx, nil, userID, challengeID); err != nil {
		return nil, fmt.Errorf("get or create progress: %w", err)
	}

	flipped, err := s.progressRepo.MarkCompleted(ctx, nil, userID, challengeID)
	if err != nil {
		return nil, fmt.Errorf("mark completed: %w", err)
	}
	if flipped {
		s.log.Info("Challenge completed", "user_id", userID, "challenge_id", challengeID)
		// Only the call that flipped the row publishes, so retries
		// never duplicate the event.
		if err := s.bus.Publish(ctx, realtime.Event{
			Type:        realtime.EventChallengeCompleted,
			UserID:      userID.String(),
			ChallengeID: challengeID.String(),
		}); err != nil {
			s.log.Warn("CompleteChallenge: publish failed", "error", err, "challenge_id", challengeID)
		}
	}

	return s.progressRepo.Get(ctx, nil, userID, challengeID)
}

func (s *progressService) GetProgress(ctx context.Context, userID, challengeID uuid.UUID) (*domain.ChallengeProgress, error) {
	return s.progressRepo.Get(ctx, nil, userID, challengeID)
}

func (s *progressService) ListProgressForUser(ctx context.Context, userID uuid.UUID) ([]*domain.ChallengeProgress, error) {
	return s.progressRepo.ListByUser(ctx, nil, userID)
}

func (s *progressService) requireChallenge(ctx context.Context, challengeID uuid.UUID) error {
	row, err := s.challengeRepo.GetByID(ctx, nil, challengeID)
	if err != nil {
		return fmt.Errorf("load challenge: %w", err)
	}
	if row == nil {
		return ErrNotFound
	}
	return nil
}
