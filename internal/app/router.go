package app

import (
	"github.com/gin-gonic/gin"

	apihttp "github.com/dataarena/dataarena-backend/internal/http"
)

func wireRouter(cfg Config, h Handlers, mw Middleware) *gin.Engine {
	return apihttp.NewRouter(apihttp.RouterConfig{
		AuthMiddleware: mw.Auth,
		CORSOrigins:    cfg.CORSOrigins,

		AuthHandler:        h.Auth,
		UserHandler:        h.User,
		ChallengeHandler:   h.Challenge,
		SubmissionHandler:  h.Submission,
		ProgressHandler:    h.Progress,
		CertificateHandler: h.Certificate,
		ContactHandler:     h.Contact,
		HealthHandler:      h.Health,
	})
}
