package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/dataarena/dataarena-backend/internal/http/handlers"
	httpMW "github.com/dataarena/dataarena-backend/internal/http/middleware"
)

type RouterConfig struct {
	AuthMiddleware *httpMW.AuthMiddleware
	CORSOrigins    []string

	AuthHandler        *httpH.AuthHandler
	UserHandler        *httpH.UserHandler
	ChallengeHandler   *httpH.ChallengeHandler
	SubmissionHandler  *httpH.SubmissionHandler
	ProgressHandler    *httpH.ProgressHandler
	CertificateHandler *httpH.CertificateHandler
	ContactHandler     *httpH.ContactHandler
	HealthHandler      *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}

		// Contact (public)
		if cfg.ContactHandler != nil {
			api.POST("/contact", cfg.ContactHandler.SubmitMessage)
		}

		// Challenge catalog (public, read-only)
		if cfg.ChallengeHandler != nil {
			api.GET("/challenges", cfg.ChallengeHandler.ListChallenges)
			api.GET("/challenges/:id", cfg.ChallengeHandler.GetChallenge)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/refresh", cfg.AuthHandler.Refresh)
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
		}

		// Challenge administration (admin check lives in the service)
		if cfg.ChallengeHandler != nil {
			protected.POST("/challenges", cfg.ChallengeHandler.CreateChallenge)
			protected.PUT("/challenges/:id", cfg.ChallengeHandler.UpdateChallenge)
		}

		// Submissions
		if cfg.SubmissionHandler != nil {
			protected.POST("/challenges/:id/submissions", cfg.SubmissionHandler.CreateSubmission)
			protected.GET("/challenges/:id/submissions", cfg.SubmissionHandler.ListSubmissions)
		}

		// Progress
		if cfg.ProgressHandler != nil {
			protected.POST("/challenges/:id/accept", cfg.ProgressHandler.AcceptChallenge)
			protected.POST("/challenges/:id/confirm-completion", cfg.ProgressHandler.ConfirmCompletion)
			protected.GET("/challenges/:id/progress", cfg.ProgressHandler.GetProgress)
		}

		// Certificate
		if cfg.CertificateHandler != nil {
			protected.GET("/challenges/:id/certificate", cfg.CertificateHandler.GetEligibility)
		}
	}

	return r
}
