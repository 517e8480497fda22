package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avash81/mindmeter-iq-app/internal/model"

	"github.com/go-redis/redis/v8"
)

const (
	statsKeyTotal     = "mindmeter:stats:total"
	statsKeyIQSum     = "mindmeter:stats:iq_sum"
	statsKeyQuestions = "mindmeter:stats:questions"
	statsKeyDayPrefix = "mindmeter:stats:day:"

	statsWindowDays = 30
	dayBucketTTL    = (statsWindowDays + 1) * 24 * time.Hour
)

// StatsRepository keeps the running completion counters. With Redis configured
// the increments are atomic server-side commands, so concurrent completions
// never lose updates; without Redis a single mutex guards in-process counters.
type StatsRepository struct {
	Redis *redis.Client

	mu         sync.Mutex
	total      int64
	iqSum      int64
	questions  int64
	dayBuckets map[string]int64
}

func NewStatsRepository(rdb *redis.Client) *StatsRepository {
	return &StatsRepository{
		Redis:      rdb,
		dayBuckets: make(map[string]int64),
	}
}

func dayKey(t time.Time) string {
	return t.UTC().Format("20060102")
}

// RecordCompletion applies one finalized result to the counters.
func (r *StatsRepository) RecordCompletion(ctx context.Context, res *model.TestResult, now time.Time) error {
	if r.Redis != nil {
		day := statsKeyDayPrefix + dayKey(now)
		pipe := r.Redis.TxPipeline()
		pipe.Incr(ctx, statsKeyTotal)
		pipe.IncrBy(ctx, statsKeyIQSum, int64(res.IQScore))
		pipe.IncrBy(ctx, statsKeyQuestions, int64(res.TotalQuestions))
		pipe.Incr(ctx, day)
		pipe.Expire(ctx, day, dayBucketTTL)
		_, err := pipe.Exec(ctx)
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.total++
	r.iqSum += int64(res.IQScore)
	r.questions += int64(res.TotalQuestions)
	r.dayBuckets[dayKey(now)]++
	return nil
}

// Snapshot reads the counters. It never fails over to an error for an empty
// store: zero counters yield a zero snapshot.
func (r *StatsRepository) Snapshot(ctx context.Context, now time.Time) (*model.StatsSnapshot, error) {
	if r.Redis != nil {
		return r.redisSnapshot(ctx, now)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snap := &model.StatsSnapshot{
		TotalCompleted:         r.total,
		TotalQuestionsAnswered: r.questions,
	}
	for i := 0; i < statsWindowDays; i++ {
		snap.CompletedLast30Days += r.dayBuckets[dayKey(now.AddDate(0, 0, -i))]
	}
	if r.total > 0 {
		snap.AverageIQ = roundOne(float64(r.iqSum) / float64(r.total))
	}
	return snap, nil
}

func (r *StatsRepository) redisSnapshot(ctx context.Context, now time.Time) (*model.StatsSnapshot, error) {
	keys := []string{statsKeyTotal, statsKeyIQSum, statsKeyQuestions}
	for i := 0; i < statsWindowDays; i++ {
		keys = append(keys, statsKeyDayPrefix+dayKey(now.AddDate(0, 0, -i)))
	}

	vals, err := r.Redis.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	nums := make([]int64, len(vals))
	for i, v := range vals {
		if v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		var n int64
		fmt.Sscan(s, &n)
		nums[i] = n
	}

	snap := &model.StatsSnapshot{
		TotalCompleted:         nums[0],
		TotalQuestionsAnswered: nums[2],
	}
	for _, n := range nums[3:] {
		snap.CompletedLast30Days += n
	}
	if nums[0] > 0 {
		snap.AverageIQ = roundOne(float64(nums[1]) / float64(nums[0]))
	}
	return snap, nil
}

// Prime seeds the counters from a full aggregate, so the in-memory fallback
// survives restarts and a fresh Redis can be backfilled.
func (r *StatsRepository) Prime(ctx context.Context, total, iqSum, questions int64) error {
	if r.Redis != nil {
		pipe := r.Redis.TxPipeline()
		pipe.SetNX(ctx, statsKeyTotal, total, 0)
		pipe.SetNX(ctx, statsKeyIQSum, iqSum, 0)
		pipe.SetNX(ctx, statsKeyQuestions, questions, 0)
		_, err := pipe.Exec(ctx)
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.total == 0 {
		r.total = total
		r.iqSum = iqSum
		r.questions = questions
	}
	return nil
}

func roundOne(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
