package services

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/dataarena/dataarena-backend/internal/data/repos"
	"github.com/dataarena/dataarena-backend/internal/data/repos/testutil"
	"github.com/dataarena/dataarena-backend/internal/domain"
	"github.com/dataarena/dataarena-backend/internal/realtime"
)

func TestRecordSubmissionWorkflow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, h.tx, "sub-workflow@test.dev")
	ch := testutil.SeedChallenge(t, ctx, h.tx, "Workflow")

	sub, err := h.submission.RecordSubmission(ctx, user.ID, ch.ID, "model.ipynb")
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if sub.Status != domain.SubmissionStatusPending {
		t.Fatalf("expected pending status, got %q", sub.Status)
	}
	if sub.FileName != "model.ipynb" {
		t.Fatalf("unexpected file name %q", sub.FileName)
	}

	got, err := h.challenges.GetByID(ctx, nil, ch.ID)
	if err != nil {
		t.Fatalf("get challenge: %v", err)
	}
	if got.SubmissionCount != 1 {
		t.Fatalf("expected counter 1, got %d", got.SubmissionCount)
	}

	progress, err := h.progress.GetProgress(ctx, user.ID, ch.ID)
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if progress == nil || !progress.Completed {
		t.Fatal("submission must mark the challenge completed")
	}

	if n := h.bus.countByType(realtime.EventSubmissionCreated); n != 1 {
		t.Fatalf("expected one submission event, got %d", n)
	}
	if n := h.bus.countByType(realtime.EventChallengeCompleted); n != 1 {
		t.Fatalf("expected one completion event, got %d", n)
	}
}

func TestRecordSubmissionRepeatsAccumulate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, h.tx, "sub-repeat@test.dev")
	ch := testutil.SeedChallenge(t, ctx, h.tx, "Repeat")

	for i := 0; i < 3; i++ {
		if _, err := h.submission.RecordSubmission(ctx, user.ID, ch.ID, "try.csv"); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	got, err := h.challenges.GetByID(ctx, nil, ch.ID)
	if err != nil {
		t.Fatalf("get challenge: %v", err)
	}
	if got.SubmissionCount != 3 {
		t.Fatalf("every submission counts: expected 3, got %d", got.SubmissionCount)
	}

	subs, err := h.submission.ListOwn(ctx, user.ID, ch.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("expected 3 submission rows, got %d", len(subs))
	}

	// Completion flips once; later submissions are counted but publish no
	// further completion events.
	if n := h.bus.countByType(realtime.EventChallengeCompleted); n != 1 {
		t.Fatalf("expected one completion event, got %d", n)
	}
}

func TestRecordSubmissionConcurrent(t *testing.T) {
	ctx := context.Background()
	// Runs against the shared database, not a per-test transaction: a tx
	// would serialize the writers this test exists to race.
	db := testutil.DB(t)
	if os.Getenv("TEST_POSTGRES_DSN") == "" {
		// SQLite allows one writer at a time; a single-connection pool
		// queues the racing transactions instead of failing them. The
		// increment still executes once per call.
		sqlDB, err := db.DB()
		if err != nil {
			t.Fatalf("sql db: %v", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	log := testutil.Logger(t)
	bus := &recordingBus{}

	challenges := repos.NewChallengeRepo(db, log)
	submissions := repos.NewSubmissionRepo(db, log)
	progressR := repos.NewChallengeProgressRepo(db, log)
	progress := NewProgressService(db, log, progressR, challenges, bus)
	svc := NewSubmissionService(db, log, submissions, challenges, progress, bus)

	user := testutil.SeedUser(t, ctx, db, "sub-concurrent@test.dev")
	ch := testutil.SeedChallenge(t, ctx, db, "Concurrent Counter")

	const n = 8
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordSubmission(ctx, user.ID, ch.ID, "race.csv")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := challenges.GetByID(ctx, nil, ch.ID)
	if err != nil {
		t.Fatalf("get challenge: %v", err)
	}
	if got.SubmissionCount != n {
		t.Fatalf("counter must advance by exactly %d, got %d", n, got.SubmissionCount)
	}
	count, err := submissions.CountByChallenge(ctx, nil, ch.ID)
	if err != nil {
		t.Fatalf("count submissions: %v", err)
	}
	if count != n {
		t.Fatalf("expected exactly %d submission rows, got %d", n, count)
	}
	if flips := bus.countByType(realtime.EventChallengeCompleted); flips != 1 {
		t.Fatalf("racing submitters must flip completion once, got %d events", flips)
	}
}

// failingProgress simulates a reconciler outage after the submission
// transaction has committed.
type failingProgress struct {
	ProgressService
}

func (failingProgress) CompleteChallenge(context.Context, uuid.UUID, uuid.UUID) (*domain.ChallengeProgress, error) {
	return nil, errors.New("transient reconcile outage")
}

func TestRecordSubmissionSurvivesReconcileFailure(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, h.tx, "sub-reconcile-down@test.dev")
	ch := testutil.SeedChallenge(t, ctx, h.tx, "Reconcile Down")

	log := testutil.Logger(t)
	svc := NewSubmissionService(h.tx, log, h.submissions, h.challenges, failingProgress{}, h.bus)

	// The submission and counter are already committed when the
	// reconciler runs; the caller must see success, not a retryable
	// failure that would duplicate intent.
	sub, err := svc.RecordSubmission(ctx, user.ID, ch.ID, "sol.csv")
	if err != nil {
		t.Fatalf("committed submission must not surface as failure: %v", err)
	}
	if sub == nil {
		t.Fatal("expected the created submission back")
	}

	subs, err := svc.ListOwn(ctx, user.ID, ch.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("expected 1 persisted submission, got %d", len(subs))
	}
	got, err := h.challenges.GetByID(ctx, nil, ch.ID)
	if err != nil {
		t.Fatalf("get challenge: %v", err)
	}
	if got.SubmissionCount != 1 {
		t.Fatalf("expected counter 1, got %d", got.SubmissionCount)
	}

	// Completion catches up through the other trigger path.
	progress, err := h.progress.CompleteChallenge(ctx, user.ID, ch.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !progress.Completed {
		t.Fatal("confirm-completion must reconcile the missed flip")
	}
}

func TestRecordSubmissionValidation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, h.tx, "sub-validate@test.dev")
	ch := testutil.SeedChallenge(t, ctx, h.tx, "Validate")

	_, err := h.submission.RecordSubmission(ctx, user.ID, ch.ID, "   ")
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "file_name" {
		t.Fatalf("expected missing file_name error, got %v", err)
	}

	_, err = h.submission.RecordSubmission(ctx, user.ID, uuid.New(), "f.csv")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown challenge, got %v", err)
	}

	// A rejected request leaves no trace.
	got, err := h.challenges.GetByID(ctx, nil, ch.ID)
	if err != nil {
		t.Fatalf("get challenge: %v", err)
	}
	if got.SubmissionCount != 0 {
		t.Fatalf("counter must stay 0 after rejected requests, got %d", got.SubmissionCount)
	}
}
