package service

import (
	"context"
	"testing"

	"github.com/avash81/mindmeter-iq-app/internal/repository"
)

func TestStatsSnapshotEmpty(t *testing.T) {
	s := newSessionService(t, 1)

	snap := s.Stats.Snapshot(context.Background())
	if snap.TotalCompleted != 0 || snap.AverageIQ != 0 || snap.CompletedLast30Days != 0 || snap.TotalQuestionsAnswered != 0 {
		t.Fatalf("empty store snapshot = %+v, want zeros", snap)
	}
}

func TestStatsIncrementalMatchesRecompute(t *testing.T) {
	s := newSessionService(t, 1)
	ctx := context.Background()

	// Three completed sessions with different outcomes.
	for i, correct := range []bool{true, false, true} {
		start, err := s.Start(ctx, StartTestRequest{Duration: "short"})
		if err != nil {
			t.Fatalf("Start() #%d error = %v", i, err)
		}
		answerAll(t, s, start, correct)
	}

	snap := s.Stats.Snapshot(ctx)
	recomputed, err := s.Stats.Recompute(ctx)
	if err != nil {
		t.Fatalf("Recompute() error = %v", err)
	}

	if snap.TotalCompleted != 3 {
		t.Errorf("TotalCompleted = %d, want 3", snap.TotalCompleted)
	}
	if snap.CompletedLast30Days != 3 {
		t.Errorf("CompletedLast30Days = %d, want 3", snap.CompletedLast30Days)
	}
	if snap.TotalQuestionsAnswered != 15 {
		t.Errorf("TotalQuestionsAnswered = %d, want 15", snap.TotalQuestionsAnswered)
	}
	if snap.TotalCompleted != recomputed.TotalCompleted ||
		snap.TotalQuestionsAnswered != recomputed.TotalQuestionsAnswered ||
		snap.AverageIQ != recomputed.AverageIQ {
		t.Errorf("incremental counters drifted from recompute:\nincremental %+v\nrecomputed  %+v", snap, recomputed)
	}
}

func TestStatsPrimeBackfillsFromResults(t *testing.T) {
	s := newSessionService(t, 1)
	ctx := context.Background()

	start, err := s.Start(ctx, StartTestRequest{Duration: "short"})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	final := answerAll(t, s, start, true)

	// A new stats service over the same store starts with zero counters
	// until Prime backfills them from the stored results.
	fresh := NewStatsService(repository.NewStatsRepository(nil), s.Results)
	if snap := fresh.Snapshot(ctx); snap.TotalCompleted != 0 {
		t.Fatalf("fresh counters not zero: %+v", snap)
	}

	if err := fresh.Prime(ctx); err != nil {
		t.Fatalf("Prime() error = %v", err)
	}
	snap := fresh.Snapshot(ctx)
	if snap.TotalCompleted != 1 {
		t.Errorf("TotalCompleted = %d, want 1", snap.TotalCompleted)
	}
	if snap.AverageIQ != float64(final.Result.IQScore) {
		t.Errorf("AverageIQ = %v, want %d", snap.AverageIQ, final.Result.IQScore)
	}
	if snap.TotalQuestionsAnswered != 5 {
		t.Errorf("TotalQuestionsAnswered = %d, want 5", snap.TotalQuestionsAnswered)
	}

	// Prime is first-write-wins: a second call must not double the counters.
	if err := fresh.Prime(ctx); err != nil {
		t.Fatalf("second Prime() error = %v", err)
	}
	if again := fresh.Snapshot(ctx); again.TotalCompleted != 1 {
		t.Errorf("repeated Prime changed TotalCompleted to %d", again.TotalCompleted)
	}
}
