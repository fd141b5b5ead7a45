package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dataarena/dataarena-backend/internal/data/repos"
	"github.com/dataarena/dataarena-backend/internal/platform/logger"
)

// CertificateEligibility is handed to the external certificate renderer.
// Eligible is derived purely from the progress record.
type CertificateEligibility struct {
	Eligible       bool   `json:"eligible"`
	StudentName    string `json:"student_name,omitempty"`
	ChallengeTitle string `json:"challenge_title,omitempty"`
	FileName       string `json:"file_name,omitempty"`
}

type CertificateService interface {
	Eligibility(ctx context.Context, userID, challengeID uuid.UUID) (*CertificateEligibility, error)
}

type certificateService struct {
	log           *logger.Logger
	progressRepo  repos.ChallengeProgressRepo
	challengeRepo repos.ChallengeRepo
	userRepo      repos.UserRepo
}

func NewCertificateService(
	baseLog *logger.Logger,
	progressRepo repos.ChallengeProgressRepo,
	challengeRepo repos.ChallengeRepo,
	userRepo repos.UserRepo,
) CertificateService {
	return &certificateService{
		log:           baseLog.With("service", "CertificateService"),
		progressRepo:  progressRepo,
		challengeRepo: challengeRepo,
		userRepo:      userRepo,
	}
}

// Eligibility never mutates: a user is eligible iff their progress record
// for the challenge is marked complete.
func (s *certificateService) Eligibility(ctx context.Context, userID, challengeID uuid.UUID) (*CertificateEligibility, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	challenge, err := s.challengeRepo.GetByID(ctx, nil, challengeID)
	if err != nil {
		return nil, fmt.Errorf("load challenge: %w", err)
	}
	if challenge == nil {
		return nil, ErrNotFound
	}

	progress, err := s.progressRepo.Get(ctx, nil, userID, challengeID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if progress == nil || !progress.Completed {
		return &CertificateEligibility{Eligible: false}, nil
	}

	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	name := ""
	if user != nil {
		name = user.Name
	}

	return &CertificateEligibility{
		Eligible:       true,
		StudentName:    name,
		ChallengeTitle: challenge.Title,
		FileName:       fmt.Sprintf("Certificate-%s-%s.pdf", name, challenge.Title),
	}, nil
}
