package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avash81/mindmeter-iq-app/internal/config"
	"github.com/avash81/mindmeter-iq-app/internal/model"
	"github.com/avash81/mindmeter-iq-app/internal/repository"
	"github.com/avash81/mindmeter-iq-app/internal/util"
	"github.com/avash81/mindmeter-iq-app/pkg/database"
	"github.com/avash81/mindmeter-iq-app/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

var dbSeq int64

// newTestDB opens a fresh in-memory database seeded with the default bank.
// Each test gets its own named database so shared-cache connections within a
// test see the same data without leaking across tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newSessionService(t *testing.T, seed int64) *SessionService {
	t.Helper()
	db := newTestDB(t)
	results := repository.NewResultRepository(db)
	stats := NewStatsService(repository.NewStatsRepository(nil), results)
	return NewSessionServiceWithSeed(
		repository.NewSessionRepository(db),
		repository.NewQuestionRepository(db),
		results,
		stats,
		config.TestConfig{MinutesPerQuestion: 1, AbandonGrace: time.Hour},
		seed,
	)
}

// answerAll drives a session to completion, answering every question with the
// bank's correct index when correct is true.
func answerAll(t *testing.T, s *SessionService, start *StartTestResponse, correct bool) *SubmitAnswerResponse {
	t.Helper()
	ctx := context.Background()
	view := start.Question
	for {
		idx := 0
		q, err := s.Questions.FindByID(view.QuestionID)
		if err != nil {
			t.Fatalf("find question %d: %v", view.QuestionID, err)
		}
		if correct {
			idx = q.CorrectIndex
		} else if q.CorrectIndex == 0 {
			idx = 1
		}
		resp, err := s.SubmitAnswer(ctx, start.SessionID, view.QuestionID, idx, 5)
		if err != nil {
			t.Fatalf("submit answer: %v", err)
		}
		if resp.Completed {
			return resp
		}
		view = resp.Question
	}
}

func TestStartValidation(t *testing.T) {
	s := newSessionService(t, 1)
	ctx := context.Background()

	cases := []struct {
		name string
		req  StartTestRequest
		want error
	}{
		{"unknown duration", StartTestRequest{Duration: "marathon"}, util.ErrInvalidConfig},
		{"age below range", StartTestRequest{Duration: "short", Age: 9}, util.ErrInvalidAge},
		{"age above range", StartTestRequest{Duration: "short", Age: 101}, util.ErrInvalidAge},
		{"unknown difficulty", StartTestRequest{Duration: "short", Difficulty: "brutal"}, util.ErrInvalidConfig},
		{"unknown category", StartTestRequest{Duration: "short", QuestionTypes: []string{"music"}}, util.ErrInvalidConfig},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.Start(ctx, tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("Start() error = %v, want %v", err, tc.want)
			}
		})
	}

	var count int64
	s.Sessions.DB.Model(&model.TestSession{}).Count(&count)
	if count != 0 {
		t.Fatalf("%d sessions created by failed starts, want 0", count)
	}
}

func TestStartInsufficientQuestions(t *testing.T) {
	s := newSessionService(t, 1)

	// The seeded bank has no general-knowledge questions.
	_, err := s.Start(context.Background(), StartTestRequest{
		Duration:      "short",
		QuestionTypes: []string{model.CategoryGeneral},
	})
	if !errors.Is(err, util.ErrInsufficientQuestions) {
		t.Fatalf("Start() error = %v, want ErrInsufficientQuestions", err)
	}

	var count int64
	s.Sessions.DB.Model(&model.TestSession{}).Count(&count)
	if count != 0 {
		t.Fatalf("session created despite selection failure")
	}
}

func TestStartDifficultyFallback(t *testing.T) {
	s := newSessionService(t, 1)

	// Only two hard questions exist, so a 5-question hard paper must be
	// padded with other difficulties rather than rejected.
	resp, err := s.Start(context.Background(), StartTestRequest{
		Duration:   "short",
		Difficulty: model.DifficultyHard,
	})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if resp.TotalQuestions != 5 {
		t.Fatalf("TotalQuestions = %d, want 5", resp.TotalQuestions)
	}
}

func TestStartDeterministicWithSeed(t *testing.T) {
	a := newSessionService(t, 42)
	b := newSessionService(t, 42)
	ctx := context.Background()
	req := StartTestRequest{Duration: "medium", QuestionTypes: []string{model.CategoryMath, model.CategoryPattern}}

	ra, err := a.Start(ctx, req)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	rb, err := b.Start(ctx, req)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	sa, _ := a.Sessions.FindByID(ra.SessionID)
	sb, _ := b.Sessions.FindByID(rb.SessionID)
	if len(sa.QuestionIDs) != len(sb.QuestionIDs) {
		t.Fatalf("paper lengths differ: %d vs %d", len(sa.QuestionIDs), len(sb.QuestionIDs))
	}
	for i := range sa.QuestionIDs {
		if sa.QuestionIDs[i] != sb.QuestionIDs[i] {
			t.Fatalf("papers diverge at position %d: %d vs %d", i, sa.QuestionIDs[i], sb.QuestionIDs[i])
		}
	}
}

func TestFullFlowPerfectScore(t *testing.T) {
	s := newSessionService(t, 7)
	ctx := context.Background()

	start, err := s.Start(ctx, StartTestRequest{Duration: "short"})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if start.TotalQuestions != 5 || start.TimeBudgetSeconds != 300 {
		t.Fatalf("start = %d questions / %ds budget, want 5 / 300", start.TotalQuestions, start.TimeBudgetSeconds)
	}
	if start.Question == nil || start.Question.Position != 0 {
		t.Fatalf("start did not return the first question")
	}

	final := answerAll(t, s, start, true)
	if final.Result == nil {
		t.Fatalf("completed response carries no result")
	}
	if final.Result.CorrectCount != 5 || final.Result.Accuracy != 100 {
		t.Errorf("result = %d correct / %.1f%%, want 5 / 100.0", final.Result.CorrectCount, final.Result.Accuracy)
	}
	if final.Result.IQScore != 160 || final.Result.Label != "Genius" {
		t.Errorf("result = iq %d %q, want 160 Genius", final.Result.IQScore, final.Result.Label)
	}

	// Stored result is readable afterwards and matches the returned one.
	stored, err := s.Result(ctx, start.SessionID)
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if stored.IQScore != final.Result.IQScore {
		t.Errorf("stored iq %d != returned iq %d", stored.IQScore, final.Result.IQScore)
	}

	session, _ := s.Sessions.FindByID(start.SessionID)
	if session.Status != model.SessionCompleted || session.CompletedAt == nil {
		t.Errorf("session not marked completed")
	}
}

func TestSubmitQuestionMismatch(t *testing.T) {
	s := newSessionService(t, 7)
	ctx := context.Background()

	start, err := s.Start(ctx, StartTestRequest{Duration: "short"})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	session, _ := s.Sessions.FindByID(start.SessionID)
	wrong := session.QuestionIDs[2] // out of order

	if _, err := s.SubmitAnswer(ctx, start.SessionID, wrong, 0, 1); !errors.Is(err, util.ErrQuestionMismatch) {
		t.Fatalf("SubmitAnswer(out of order) error = %v, want ErrQuestionMismatch", err)
	}
}

func TestSubmitUnknownSession(t *testing.T) {
	s := newSessionService(t, 7)
	if _, err := s.SubmitAnswer(context.Background(), "no-such-session", 1, 0, 1); !errors.Is(err, util.ErrSessionNotFound) {
		t.Fatalf("error = %v, want ErrSessionNotFound", err)
	}
	if _, err := s.CurrentQuestion(context.Background(), "no-such-session"); !errors.Is(err, util.ErrSessionNotFound) {
		t.Fatalf("error = %v, want ErrSessionNotFound", err)
	}
}

func TestIdempotentResubmit(t *testing.T) {
	s := newSessionService(t, 7)
	ctx := context.Background()

	start, err := s.Start(ctx, StartTestRequest{Duration: "short"})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	first := start.Question.QuestionID

	resp, err := s.SubmitAnswer(ctx, start.SessionID, first, 0, 3)
	if err != nil {
		t.Fatalf("SubmitAnswer() error = %v", err)
	}
	next := resp.Question.QuestionID

	// A retry of the question just answered returns the same next question
	// and appends no second record.
	retry, err := s.SubmitAnswer(ctx, start.SessionID, first, 2, 9)
	if err != nil {
		t.Fatalf("retried SubmitAnswer() error = %v", err)
	}
	if retry.Completed || retry.Question.QuestionID != next {
		t.Fatalf("retry advanced the session")
	}

	answers, err := s.Sessions.FindAnswers(start.SessionID)
	if err != nil {
		t.Fatalf("FindAnswers() error = %v", err)
	}
	if len(answers) != 1 {
		t.Fatalf("%d answer records after retry, want 1", len(answers))
	}
	if answers[0].SelectedIndex != 0 {
		t.Errorf("retry overwrote the original answer")
	}
}

func TestSubmitRetryAfterPartialFailure(t *testing.T) {
	s := newSessionService(t, 7)
	ctx := context.Background()

	start, err := s.Start(ctx, StartTestRequest{Duration: "short"})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	first := start.Question.QuestionID

	// Simulate an attempt whose answer record committed but whose position
	// save was lost: the record exists while the session still points at
	// the question.
	rec := &model.AnswerRecord{
		SessionID:        start.SessionID,
		QuestionID:       first,
		Position:         0,
		SelectedIndex:    1,
		TimeTakenSeconds: 3,
	}
	if err := s.Sessions.CreateAnswer(rec); err != nil {
		t.Fatalf("CreateAnswer() error = %v", err)
	}

	retry, err := s.SubmitAnswer(ctx, start.SessionID, first, 2, 9)
	if err != nil {
		t.Fatalf("retried SubmitAnswer() error = %v, want idempotent resolution", err)
	}
	if retry.Completed || retry.Question == nil {
		t.Fatalf("retry did not advance to the next question: %+v", retry)
	}

	answers, err := s.Sessions.FindAnswers(start.SessionID)
	if err != nil {
		t.Fatalf("FindAnswers() error = %v", err)
	}
	if len(answers) != 1 {
		t.Fatalf("%d answer records after retry, want 1", len(answers))
	}
	if answers[0].SelectedIndex != 1 {
		t.Errorf("retry overwrote the committed answer: selected = %d", answers[0].SelectedIndex)
	}

	session, _ := s.Sessions.FindByID(start.SessionID)
	if session.Position != 1 {
		t.Errorf("position = %d after retry, want 1", session.Position)
	}
}

func TestSubmitRetryAfterPartialFailureOnFinalQuestion(t *testing.T) {
	s := newSessionService(t, 7)
	ctx := context.Background()

	start, err := s.Start(ctx, StartTestRequest{Duration: "short"})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Drive to the last question.
	view := start.Question
	for i := 0; i < start.TotalQuestions-1; i++ {
		resp, err := s.SubmitAnswer(ctx, start.SessionID, view.QuestionID, 0, 4)
		if err != nil {
			t.Fatalf("SubmitAnswer() error = %v", err)
		}
		view = resp.Question
	}

	// The final answer committed, then finalization was lost.
	rec := &model.AnswerRecord{
		SessionID:     start.SessionID,
		QuestionID:    view.QuestionID,
		Position:      start.TotalQuestions - 1,
		SelectedIndex: 0,
	}
	if err := s.Sessions.CreateAnswer(rec); err != nil {
		t.Fatalf("CreateAnswer() error = %v", err)
	}

	retry, err := s.SubmitAnswer(ctx, start.SessionID, view.QuestionID, 0, 4)
	if err != nil {
		t.Fatalf("retried final SubmitAnswer() error = %v, want idempotent resolution", err)
	}
	if !retry.Completed || retry.Result == nil {
		t.Fatalf("final retry did not finalize the session: %+v", retry)
	}
	if retry.Result.TotalQuestions != 5 {
		t.Errorf("TotalQuestions = %d, want 5", retry.Result.TotalQuestions)
	}

	answers, _ := s.Sessions.FindAnswers(start.SessionID)
	if len(answers) != 5 {
		t.Errorf("%d answer records after final retry, want 5", len(answers))
	}
}

func TestSessionLockReleasedAfterCompletion(t *testing.T) {
	s := newSessionService(t, 7)

	start, err := s.Start(context.Background(), StartTestRequest{Duration: "short"})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	answerAll(t, s, start, true)

	if _, ok := s.locks.Load(start.SessionID); ok {
		t.Fatalf("lock entry retained after completion")
	}
}

func TestResubmitLastQuestionAfterCompletion(t *testing.T) {
	s := newSessionService(t, 7)
	ctx := context.Background()

	start, err := s.Start(ctx, StartTestRequest{Duration: "short"})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	final := answerAll(t, s, start, false)

	session, _ := s.Sessions.FindByID(start.SessionID)
	last := session.QuestionIDs[len(session.QuestionIDs)-1]

	// Retrying the final answer after the completed response was lost must
	// return the same result, not an error.
	retry, err := s.SubmitAnswer(ctx, start.SessionID, last, 1, 5)
	if err != nil {
		t.Fatalf("retried final SubmitAnswer() error = %v", err)
	}
	if !retry.Completed || retry.Result == nil || retry.Result.IQScore != final.Result.IQScore {
		t.Fatalf("final retry did not resolve to the stored result")
	}

	// Any other question against the finished session is a state error.
	if _, err := s.SubmitAnswer(ctx, start.SessionID, session.QuestionIDs[0], 1, 5); !errors.Is(err, util.ErrSessionCompleted) {
		t.Fatalf("error = %v, want ErrSessionCompleted", err)
	}
}

func TestTimeBudgetExpiryFinalizesSession(t *testing.T) {
	s := newSessionService(t, 7)
	ctx := context.Background()

	start, err := s.Start(ctx, StartTestRequest{Duration: "short"})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Answer two questions, then jump past the budget.
	resp, err := s.SubmitAnswer(ctx, start.SessionID, start.Question.QuestionID, 0, 10)
	if err != nil {
		t.Fatalf("SubmitAnswer() error = %v", err)
	}
	if _, err := s.SubmitAnswer(ctx, start.SessionID, resp.Question.QuestionID, 0, 10); err != nil {
		t.Fatalf("SubmitAnswer() error = %v", err)
	}

	s.now = func() time.Time { return time.Now().Add(time.Duration(start.TimeBudgetSeconds+1) * time.Second) }

	if _, err := s.CurrentQuestion(ctx, start.SessionID); !errors.Is(err, util.ErrSessionCompleted) {
		t.Fatalf("CurrentQuestion() error = %v, want ErrSessionCompleted", err)
	}

	// Expiry finalized the session: unanswered questions were padded with
	// timeout records and the result is available.
	res, err := s.Result(ctx, start.SessionID)
	if err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if res.TotalQuestions != 5 {
		t.Errorf("TotalQuestions = %d, want 5", res.TotalQuestions)
	}

	answers, _ := s.Sessions.FindAnswers(start.SessionID)
	if len(answers) != 5 {
		t.Fatalf("%d answer records after expiry, want 5", len(answers))
	}
	padded := 0
	for _, a := range answers {
		if a.SelectedIndex == -1 {
			padded++
		}
	}
	if padded != 3 {
		t.Errorf("%d padded timeout records, want 3", padded)
	}
}

func TestResultBeforeCompletion(t *testing.T) {
	s := newSessionService(t, 7)
	ctx := context.Background()

	start, err := s.Start(ctx, StartTestRequest{Duration: "short"})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if _, err := s.Result(ctx, start.SessionID); !errors.Is(err, util.ErrResultNotFound) {
		t.Fatalf("Result() error = %v, want ErrResultNotFound", err)
	}
}

func TestAbandonStale(t *testing.T) {
	s := newSessionService(t, 7)
	ctx := context.Background()

	start, err := s.Start(ctx, StartTestRequest{Duration: "short"})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Within budget plus grace: the sweep leaves the session alone.
	if n, err := s.AbandonStale(ctx); err != nil || n != 0 {
		t.Fatalf("AbandonStale() = %d, %v; want 0, nil", n, err)
	}

	budget := time.Duration(start.TimeBudgetSeconds) * time.Second
	s.now = func() time.Time { return time.Now().Add(budget + s.Test.AbandonGrace + time.Minute) }

	n, err := s.AbandonStale(ctx)
	if err != nil {
		t.Fatalf("AbandonStale() error = %v", err)
	}
	if n != 1 {
		t.Fatalf("AbandonStale() abandoned %d sessions, want 1", n)
	}

	session, _ := s.Sessions.FindByID(start.SessionID)
	if session.Status != model.SessionAbandoned {
		t.Errorf("session status = %q, want abandoned", session.Status)
	}
	if _, err := s.Result(ctx, start.SessionID); !errors.Is(err, util.ErrResultNotFound) {
		t.Errorf("abandoned session has a result")
	}
	if _, ok := s.locks.Load(start.SessionID); ok {
		t.Errorf("lock entry retained after abandonment")
	}
}

func TestQuestionViewHidesCorrectIndex(t *testing.T) {
	s := newSessionService(t, 7)

	start, err := s.Start(context.Background(), StartTestRequest{Duration: "short"})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	view := start.Question
	q, _ := s.Questions.FindByID(view.QuestionID)

	if view.Text != q.Text || len(view.Options) != len(q.Options) {
		t.Fatalf("view does not match its question")
	}
	if view.RemainingSeconds <= 0 || view.RemainingSeconds > start.TimeBudgetSeconds {
		t.Errorf("RemainingSeconds = %d, want (0, %d]", view.RemainingSeconds, start.TimeBudgetSeconds)
	}
}
