package app

import (
	"gorm.io/gorm"

	"github.com/dataarena/dataarena-backend/internal/data/repos"
	"github.com/dataarena/dataarena-backend/internal/platform/logger"
)

type Repos struct {
	User              repos.UserRepo
	UserToken         repos.UserTokenRepo
	Challenge         repos.ChallengeRepo
	Submission        repos.SubmissionRepo
	ChallengeProgress repos.ChallengeProgressRepo
	ContactMessage    repos.ContactMessageRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:              repos.NewUserRepo(db, log),
		UserToken:         repos.NewUserTokenRepo(db, log),
		Challenge:         repos.NewChallengeRepo(db, log),
		Submission:        repos.NewSubmissionRepo(db, log),
		ChallengeProgress: repos.NewChallengeProgressRepo(db, log),
		ContactMessage:    repos.NewContactMessageRepo(db, log),
	}
}
