package services

import (
	"context"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/dataarena/dataarena-backend/internal/data/repos"
	"github.com/dataarena/dataarena-backend/internal/data/repos/testutil"
	"github.com/dataarena/dataarena-backend/internal/domain"
	"github.com/dataarena/dataarena-backend/internal/realtime"
	"github.com/dataarena/dataarena-backend/internal/requestdata"
)

// serviceHarness wires the lifecycle services over a rolled-back test
// transaction, with events captured in memory.
type serviceHarness struct {
	tx          *gorm.DB
	challenges  repos.ChallengeRepo
	submissions repos.SubmissionRepo
	progressR   repos.ChallengeProgressRepo
	users       repos.UserRepo

	challenge   ChallengeService
	submission  SubmissionService
	progress    ProgressService
	certificate CertificateService

	bus *recordingBus
}

type recordingBus struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (b *recordingBus) Publish(_ context.Context, ev realtime.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ev)
	return nil
}

func (b *recordingBus) Close() error { return nil }

func (b *recordingBus) countByType(eventType string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, ev := range b.events {
		if ev.Type == eventType {
			n++
		}
	}
	return n
}

func newHarness(t *testing.T) *serviceHarness {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	bus := &recordingBus{}

	challenges := repos.NewChallengeRepo(tx, log)
	submissions := repos.NewSubmissionRepo(tx, log)
	progressR := repos.NewChallengeProgressRepo(tx, log)
	users := repos.NewUserRepo(tx, log)

	progress := NewProgressService(tx, log, progressR, challenges, bus)

	return &serviceHarness{
		tx:          tx,
		challenges:  challenges,
		submissions: submissions,
		progressR:   progressR,
		users:       users,
		challenge:   NewChallengeService(tx, log, challenges),
		submission:  NewSubmissionService(tx, log, submissions, challenges, progress, bus),
		progress:    progress,
		certificate: NewCertificateService(log, progressR, challenges, users),
		bus:         bus,
	}
}

func adminCtx(user *domain.User) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID:   user.ID,
		UserName: user.Name,
		Role:     domain.RoleAdmin,
	})
}

func participantCtx(user *domain.User) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{
		UserID:   user.ID,
		UserName: user.Name,
		Role:     domain.RoleParticipant,
	})
}
