package app

import (
	"gorm.io/gorm"

	"github.com/dataarena/dataarena-backend/internal/platform/logger"
	"github.com/dataarena/dataarena-backend/internal/realtime"
	"github.com/dataarena/dataarena-backend/internal/services"
)

type Services struct {
	Auth        services.AuthService
	User        services.UserService
	Challenge   services.ChallengeService
	Submission  services.SubmissionService
	Progress    services.ProgressService
	Certificate services.CertificateService
	Contact     services.ContactService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, bus realtime.EventBus) Services {
	log.Info("Wiring services...")

	progressService := services.NewProgressService(db, log, r.ChallengeProgress, r.Challenge, bus)

	return Services{
		Auth: services.NewAuthService(
			db, log, r.User, r.UserToken,
			cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
		),
		User:        services.NewUserService(log, r.User),
		Challenge:   services.NewChallengeService(db, log, r.Challenge),
		Submission:  services.NewSubmissionService(db, log, r.Submission, r.Challenge, progressService, bus),
		Progress:    progressService,
		Certificate: services.NewCertificateService(log, r.ChallengeProgress, r.Challenge, r.User),
		Contact:     services.NewContactService(log, r.ContactMessage),
	}
}
