package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/dataarena/dataarena-backend/internal/data/repos/testutil"
	"github.com/dataarena/dataarena-backend/internal/realtime"
)

func TestAcceptChallenge(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, h.tx, "accept@test.dev")
	ch := testutil.SeedChallenge(t, ctx, h.tx, "Accept")

	progress, err := h.progress.AcceptChallenge(ctx, user.ID, ch.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if progress.AcceptedAt == nil {
		t.Fatal("accept must stamp accepted_at")
	}
	if progress.Completed {
		t.Fatal("accept must not complete the challenge")
	}

	first := *progress.AcceptedAt
	again, err := h.progress.AcceptChallenge(ctx, user.ID, ch.ID)
	if err != nil {
		t.Fatalf("repeat accept: %v", err)
	}
	if !again.AcceptedAt.Equal(first) {
		t.Fatalf("repeat accept must keep the original timestamp, got %v", again.AcceptedAt)
	}
}

func TestCompleteChallengeBothPathsConverge(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, h.tx, "converge@test.dev")
	ch := testutil.SeedChallenge(t, ctx, h.tx, "Converge Paths")

	// Direct upload path first.
	if _, err := h.submission.RecordSubmission(ctx, user.ID, ch.ID, "answer.csv"); err != nil {
		t.Fatalf("record: %v", err)
	}
	// External-form acknowledgment afterwards.
	progress, err := h.progress.CompleteChallenge(ctx, user.ID, ch.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !progress.Completed {
		t.Fatal("progress must stay completed")
	}
	if n := h.bus.countByType(realtime.EventChallengeCompleted); n != 1 {
		t.Fatalf("the second path must not re-publish, got %d events", n)
	}
}

func TestCompleteChallengeWithoutSubmission(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, h.tx, "form-only@test.dev")
	ch := testutil.SeedChallenge(t, ctx, h.tx, "Form Only")

	// External-form acknowledgment with no prior interaction: the
	// progress row is created on the fly.
	progress, err := h.progress.CompleteChallenge(ctx, user.ID, ch.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !progress.Completed {
		t.Fatal("expected completed progress")
	}

	got, err := h.challenges.GetByID(ctx, nil, ch.ID)
	if err != nil {
		t.Fatalf("get challenge: %v", err)
	}
	if got.SubmissionCount != 0 {
		t.Fatalf("completion alone must not advance the counter, got %d", got.SubmissionCount)
	}
}

func TestCompleteChallengeUnknownChallenge(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, h.tx, "unknown-ch@test.dev")

	_, err := h.progress.CompleteChallenge(ctx, user.ID, uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListProgressForUser(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, h.tx, "list-progress@test.dev")
	chA := testutil.SeedChallenge(t, ctx, h.tx, "List A")
	chB := testutil.SeedChallenge(t, ctx, h.tx, "List B")

	if _, err := h.progress.AcceptChallenge(ctx, user.ID, chA.ID); err != nil {
		t.Fatalf("accept A: %v", err)
	}
	if _, err := h.progress.CompleteChallenge(ctx, user.ID, chB.ID); err != nil {
		t.Fatalf("complete B: %v", err)
	}

	rows, err := h.progress.ListProgressForUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 progress rows, got %d", len(rows))
	}
}
