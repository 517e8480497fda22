package repository

import (
	"context"
	"testing"
	"time"

	"github.com/avash81/mindmeter-iq-app/internal/model"
)

// These exercise the in-memory fallback used when Redis is not configured; the
// Redis path runs the same key math through go-redis pipelines.

func TestStatsMemoryCounters(t *testing.T) {
	repo := NewStatsRepository(nil)
	ctx := context.Background()
	now := time.Now()

	for _, iq := range []int{120, 130} {
		res := &model.TestResult{IQScore: iq, TotalQuestions: 10}
		if err := repo.RecordCompletion(ctx, res, now); err != nil {
			t.Fatalf("RecordCompletion() error = %v", err)
		}
	}

	snap, err := repo.Snapshot(ctx, now)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if snap.TotalCompleted != 2 || snap.TotalQuestionsAnswered != 20 {
		t.Errorf("counters = %d completed / %d questions, want 2 / 20", snap.TotalCompleted, snap.TotalQuestionsAnswered)
	}
	if snap.AverageIQ != 125.0 {
		t.Errorf("AverageIQ = %v, want 125.0", snap.AverageIQ)
	}
	if snap.CompletedLast30Days != 2 {
		t.Errorf("CompletedLast30Days = %d, want 2", snap.CompletedLast30Days)
	}
}

func TestStatsTrailingWindowExcludesOldDays(t *testing.T) {
	repo := NewStatsRepository(nil)
	ctx := context.Background()
	now := time.Now()

	res := &model.TestResult{IQScore: 100, TotalQuestions: 5}
	if err := repo.RecordCompletion(ctx, res, now.AddDate(0, 0, -40)); err != nil {
		t.Fatalf("RecordCompletion() error = %v", err)
	}
	if err := repo.RecordCompletion(ctx, res, now); err != nil {
		t.Fatalf("RecordCompletion() error = %v", err)
	}

	snap, err := repo.Snapshot(ctx, now)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if snap.TotalCompleted != 2 {
		t.Errorf("TotalCompleted = %d, want 2", snap.TotalCompleted)
	}
	if snap.CompletedLast30Days != 1 {
		t.Errorf("CompletedLast30Days = %d, want 1; the 40-day-old completion must fall outside the window", snap.CompletedLast30Days)
	}
}

func TestStatsPrimeFirstWriteWins(t *testing.T) {
	repo := NewStatsRepository(nil)
	ctx := context.Background()

	if err := repo.Prime(ctx, 10, 1200, 100); err != nil {
		t.Fatalf("Prime() error = %v", err)
	}
	if err := repo.Prime(ctx, 99, 9900, 999); err != nil {
		t.Fatalf("second Prime() error = %v", err)
	}

	snap, err := repo.Snapshot(ctx, time.Now())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if snap.TotalCompleted != 10 || snap.TotalQuestionsAnswered != 100 {
		t.Errorf("repeated Prime overwrote counters: %+v", snap)
	}
	if snap.AverageIQ != 120.0 {
		t.Errorf("AverageIQ = %v, want 120.0", snap.AverageIQ)
	}
}
