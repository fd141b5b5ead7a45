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
	"github.com/dataarena/dataarena-backend/internal/requestdata"
)

type ChallengeService interface {
	CreateChallenge(ctx context.Context, in ChallengeInput) (*domain.Challenge, error)
	UpdateChallenge(ctx context.Context, id uuid.UUID, in ChallengeInput) (*domain.Challenge, error)
	GetChallenge(ctx context.Context, id uuid.UUID) (*domain.Challenge, error)
	ListChallenges(ctx context.Context) ([]*domain.Challenge, error)
}

type challengeService struct {
	db            *gorm.DB
	log           *logger.Logger
	challengeRepo repos.ChallengeRepo
}

func NewChallengeService(db *gorm.DB, baseLog *logger.Logger, challengeRepo repos.ChallengeRepo) ChallengeService {
	return &challengeService{
		db:            db,
		log:           baseLog.With("service", "ChallengeService"),
		challengeRepo: challengeRepo,
	}
}

func (s *challengeService) CreateChallenge(ctx context.Context, in ChallengeInput) (*domain.Challenge, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	row, err := NormalizeChallenge(in, nil, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	created, err := s.challengeRepo.Create(ctx, nil, row)
	if err != nil {
		s.log.Error("CreateChallenge: persist failed", "error", err)
		return nil, fmt.Errorf("create challenge: %w", err)
	}
	s.log.Info("Challenge created", "challenge_id", created.ID, "difficulty", created.Difficulty, "points", created.Points)
	return created, nil
}

func (s *challengeService) UpdateChallenge(ctx context.Context, id uuid.UUID, in ChallengeInput) (*domain.Challenge, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	existing, err := s.challengeRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("load challenge: %w", err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	row, err := NormalizeChallenge(in, existing, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.challengeRepo.Update(ctx, nil, row); err != nil {
		s.log.Error("UpdateChallenge: persist failed", "error", err, "challenge_id", id)
		return nil, fmt.Errorf("update challenge: %w", err)
	}
	return s.challengeRepo.GetByID(ctx, nil, id)
}

func (s *challengeService) GetChallenge(ctx context.Context, id uuid.UUID) (*domain.Challenge, error) {
	row, err := s.challengeRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return row, nil
}

func (s *challengeService) ListChallenges(ctx context.Context) ([]*domain.Challenge, error) {
	return s.challengeRepo.List(ctx, nil)
}

func requireAdmin(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return ErrUnauthorized
	}
	if rd.Role != domain.RoleAdmin {
		return ErrForbidden
	}
	return nil
}
