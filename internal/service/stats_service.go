package service

import (
	"context"
	"time"

	"github.com/avash81/mindmeter-iq-app/internal/model"
	"github.com/avash81/mindmeter-iq-app/internal/repository"
	"github.com/avash81/mindmeter-iq-app/pkg/logger"

	"go.uber.org/zap"
)

// StatsService maintains the running aggregates over finalized results. The
// mean is updated incrementally from counters rather than re-scanning stored
// results on every read.
type StatsService struct {
	Repo    *repository.StatsRepository
	Results *repository.ResultRepository
}

func NewStatsService(repo *repository.StatsRepository, results *repository.ResultRepository) *StatsService {
	return &StatsService{Repo: repo, Results: results}
}

// Prime backfills the counters from stored results, so restarts don't reset
// the aggregates to zero.
func (s *StatsService) Prime(ctx context.Context) error {
	total, iqSum, questions, err := s.Results.Aggregate()
	if err != nil {
		return err
	}
	if total == 0 {
		return nil
	}
	return s.Repo.Prime(ctx, total, iqSum, questions)
}

// RecordCompletion feeds one finalized result into the counters. Failures are
// logged, not surfaced: losing a stats tick must never fail a submission.
func (s *StatsService) RecordCompletion(ctx context.Context, res *model.TestResult, now time.Time) {
	if err := s.Repo.RecordCompletion(ctx, res, now); err != nil {
		logger.Log.Error("failed to record completion stats",
			zap.String("sessionId", res.SessionID), zap.Error(err))
	}
}

// Snapshot returns the read-only aggregate view. It always succeeds: before
// any completion, or when the counter store is unreachable, it returns zeros.
func (s *StatsService) Snapshot(ctx context.Context) *model.StatsSnapshot {
	snap, err := s.Repo.Snapshot(ctx, time.Now())
	if err != nil {
		logger.Log.Error("failed to read stats snapshot", zap.Error(err))
		return &model.StatsSnapshot{}
	}
	return snap
}

// Recompute builds a snapshot by scanning every stored result. Used to verify
// that the incremental counters have not drifted.
func (s *StatsService) Recompute(ctx context.Context) (*model.StatsSnapshot, error) {
	total, iqSum, questions, err := s.Results.Aggregate()
	if err != nil {
		return nil, err
	}
	snap := &model.StatsSnapshot{
		TotalCompleted:         total,
		TotalQuestionsAnswered: questions,
	}
	if total > 0 {
		snap.AverageIQ = roundToOne(float64(iqSum) / float64(total))
	}
	return snap, nil
}
