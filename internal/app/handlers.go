package app

import (
	"github.com/dataarena/dataarena-backend/internal/http/handlers"
	"github.com/dataarena/dataarena-backend/internal/platform/logger"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Challenge   *handlers.ChallengeHandler
	Submission  *handlers.SubmissionHandler
	Progress    *handlers.ProgressHandler
	Certificate *handlers.CertificateHandler
	Contact     *handlers.ContactHandler
	Health      *handlers.HealthHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:        handlers.NewAuthHandler(s.Auth),
		User:        handlers.NewUserHandler(s.User),
		Challenge:   handlers.NewChallengeHandler(log, s.Challenge),
		Submission:  handlers.NewSubmissionHandler(log, s.Submission),
		Progress:    handlers.NewProgressHandler(log, s.Progress),
		Certificate: handlers.NewCertificateHandler(log, s.Certificate),
		Contact:     handlers.NewContactHandler(s.Contact),
		Health:      handlers.NewHealthHandler(),
	}
}
