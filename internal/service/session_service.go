package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/avash81/mindmeter-iq-app/internal/config"
	"github.com/avash81/mindmeter-iq-app/internal/model"
	"github.com/avash81/mindmeter-iq-app/internal/repository"
	"github.com/avash81/mindmeter-iq-app/internal/util"
	"github.com/avash81/mindmeter-iq-app/pkg/logger"
	"github.com/avash81/mindmeter-iq-app/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Question counts per duration class. quick/standard/comprehensive are
// synonyms kept for older clients.
var durationQuestionCount = map[string]int{
	"short":         5,
	"quick":         5,
	"medium":        10,
	"standard":      10,
	"long":          20,
	"comprehensive": 20,
}

const (
	minAge = 10
	maxAge = 100
)

type SessionService struct {
	Sessions  *repository.SessionRepository
	Questions *repository.QuestionRepository
	Results   *repository.ResultRepository
	Stats     *StatsService
	Test      config.TestConfig

	// rng drives question selection; a fixed seed makes the selected paper
	// reproducible for a given bank and filter.
	rng   *rand.Rand
	rngMu sync.Mutex

	// one mutex per live session id; all session mutation is serialized
	// through it, sessions for different users proceed in parallel.
	locks sync.Map

	now func() time.Time
}

func NewSessionService(
	sessions *repository.SessionRepository,
	questions *repository.QuestionRepository,
	results *repository.ResultRepository,
	stats *StatsService,
	testCfg config.TestConfig,
) *SessionService {
	return NewSessionServiceWithSeed(sessions, questions, results, stats, testCfg, time.Now().UnixNano())
}

func NewSessionServiceWithSeed(
	sessions *repository.SessionRepository,
	questions *repository.QuestionRepository,
	results *repository.ResultRepository,
	stats *StatsService,
	testCfg config.TestConfig,
	seed int64,
) *SessionService {
	if testCfg.MinutesPerQuestion <= 0 {
		testCfg.MinutesPerQuestion = 1
	}
	return &SessionService{
		Sessions:  sessions,
		Questions: questions,
		Results:   results,
		Stats:     stats,
		Test:      testCfg,
		rng:       rand.New(rand.NewSource(seed)),
		now:       time.Now,
	}
}

type StartTestRequest struct {
	Duration      string   `json:"duration" binding:"required"`
	QuestionTypes []string `json:"questionTypes"`
	Difficulty    string   `json:"difficulty"`
	Age           int      `json:"age"`
}

// QuestionView is the sanitized question shown to a test taker: no correct
// index, no explanation.
type QuestionView struct {
	QuestionID       uint     `json:"questionId"`
	Text             string   `json:"questionText"`
	Options          []string `json:"options"`
	Category         string   `json:"category"`
	Position         int      `json:"position"`
	TotalQuestions   int      `json:"totalQuestions"`
	TimeLimitSeconds int      `json:"timeLimitSeconds,omitempty"`
	RemainingSeconds int      `json:"remainingSeconds"`
}

type StartTestResponse struct {
	SessionID         string        `json:"sessionId"`
	TotalQuestions    int           `json:"totalQuestions"`
	TimeBudgetSeconds int           `json:"timeBudgetSeconds"`
	Question          *QuestionView `json:"question"`
}

// SubmitAnswerResponse is either the next question or a completed marker
// carrying the scored result.
type SubmitAnswerResponse struct {
	Completed bool              `json:"completed"`
	Question  *QuestionView     `json:"question,omitempty"`
	Result    *model.TestResult `json:"result,omitempty"`
}

// Start validates the configuration, selects the paper and creates the
// session. No session is created when validation or selection fails.
func (s *SessionService) Start(ctx context.Context, req StartTestRequest) (*StartTestResponse, error) {
	n, ok := durationQuestionCount[req.Duration]
	if !ok {
		return nil, util.ErrInvalidConfig
	}
	if req.Age != 0 && (req.Age < minAge || req.Age > maxAge) {
		return nil, util.ErrInvalidAge
	}
	switch req.Difficulty {
	case "", model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
	default:
		return nil, util.ErrInvalidConfig
	}
	for _, c := range req.QuestionTypes {
		if c != "all" && !model.ValidCategory(c) {
			return nil, util.ErrInvalidConfig
		}
	}

	selected, err := s.selectQuestions(req.QuestionTypes, req.Difficulty, n)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(selected))
	for i, q := range selected {
		ids[i] = q.ID
	}

	now := s.now()
	session := &model.TestSession{
		Status:            model.SessionInProgress,
		Position:          0,
		QuestionIDs:       ids,
		DurationClass:     req.Duration,
		Categories:        req.QuestionTypes,
		Difficulty:        req.Difficulty,
		Age:               req.Age,
		TimeBudgetSeconds: n * s.Test.MinutesPerQuestion * 60,
		StartedAt:         now,
	}
	if err := s.Sessions.Create(session); err != nil {
		return nil, err
	}

	monitoring.SessionsStarted.Inc()
	logger.Log.Info("test session started",
		zap.String("sessionId", session.ID),
		zap.String("duration", req.Duration),
		zap.Int("questions", len(ids)))

	return &StartTestResponse{
		SessionID:         session.ID,
		TotalQuestions:    len(ids),
		TimeBudgetSeconds: session.TimeBudgetSeconds,
		Question:          s.questionView(&selected[0], session, now),
	}, nil
}

// selectQuestions picks n questions matching the filters. Strict matches
// (category and difficulty) come first; if the strict pool is short it is
// padded with category-only matches before giving up.
func (s *SessionService) selectQuestions(categories []string, difficulty string, n int) ([]model.Question, error) {
	strict, err := s.Questions.ListFiltered(categories, difficulty)
	if err != nil {
		return nil, err
	}

	pool := strict
	if len(pool) < n && difficulty != "" {
		relaxed, err := s.Questions.ListFiltered(categories, "")
		if err != nil {
			return nil, err
		}
		seen := make(map[uint]bool, len(pool))
		for _, q := range pool {
			seen[q.ID] = true
		}
		for _, q := range relaxed {
			if !seen[q.ID] {
				pool = append(pool, q)
			}
		}
	}

	if len(pool) < n {
		return nil, util.ErrInsufficientQuestions
	}

	s.rngMu.Lock()
	s.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	s.rngMu.Unlock()

	return pool[:n], nil
}

// CurrentQuestion returns the question at the session's position. A session
// whose time budget has already elapsed is finalized on the spot.
func (s *SessionService) CurrentQuestion(ctx context.Context, sessionID string) (*QuestionView, error) {
	mu := s.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.loadInProgress(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if session.Expired(now) {
		if _, err := s.finalize(ctx, session, now); err != nil {
			return nil, err
		}
		return nil, util.ErrSessionCompleted
	}

	q, err := s.Questions.FindByID(session.QuestionIDs[session.Position])
	if err != nil {
		return nil, err
	}
	return s.questionView(q, session, now), nil
}

// SubmitAnswer records one answer and advances the session. SelectedIndex -1
// is a client-side timeout and is always accepted. A resubmission of the most
// recently answered question returns the current state without appending a
// second record, so client retries are safe.
func (s *SessionService) SubmitAnswer(ctx context.Context, sessionID string, questionID uint, selectedIndex, timeTakenSeconds int) (*SubmitAnswerResponse, error) {
	mu := s.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.Sessions.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	if session.Status != model.SessionInProgress {
		// A retried submit for an already-finished session resolves
		// idempotently when the result exists and the question was the
		// session's last; anything else is a state error.
		if resp, ok := s.resolveRetry(session, questionID); ok {
			return resp, nil
		}
		return nil, util.ErrSessionCompleted
	}

	// Retry of the previous question within a live session.
	if session.Position > 0 && session.QuestionIDs[session.Position-1] == questionID {
		if _, err := s.Sessions.FindAnswer(sessionID, questionID); err == nil {
			return s.progressResponse(session)
		}
	}

	if session.Position >= len(session.QuestionIDs) || session.QuestionIDs[session.Position] != questionID {
		return nil, util.ErrQuestionMismatch
	}

	// A record for the current question can already exist when a prior
	// attempt committed the answer but the position save was lost. Skip the
	// insert and let the retry complete the advance instead of tripping the
	// unique index.
	if _, err := s.Sessions.FindAnswer(sessionID, questionID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		record := &model.AnswerRecord{
			SessionID:        sessionID,
			QuestionID:       questionID,
			Position:         session.Position,
			SelectedIndex:    selectedIndex,
			TimeTakenSeconds: timeTakenSeconds,
		}
		if err := s.Sessions.CreateAnswer(record); err != nil {
			return nil, err
		}
	}
	session.Position++

	now := s.now()
	if session.Position >= len(session.QuestionIDs) || session.Expired(now) {
		result, err := s.finalize(ctx, session, now)
		if err != nil {
			return nil, err
		}
		return &SubmitAnswerResponse{Completed: true, Result: result}, nil
	}

	if err := s.Sessions.Save(session); err != nil {
		return nil, err
	}
	return s.progressResponse(session)
}

// Result returns the stored result for a completed session.
func (s *SessionService) Result(ctx context.Context, sessionID string) (*model.TestResult, error) {
	res, err := s.Results.FindBySessionID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrResultNotFound
		}
		return nil, err
	}
	return res, nil
}

// AbandonStale marks in-progress sessions as abandoned once their time budget
// plus the grace period has elapsed. Run from the background sweep.
func (s *SessionService) AbandonStale(ctx context.Context) (int, error) {
	now := s.now()
	candidates, err := s.Sessions.ListInProgressStartedBefore(now.Add(-s.Test.AbandonGrace))
	if err != nil {
		return 0, err
	}

	abandoned := 0
	for i := range candidates {
		session := &candidates[i]
		budget := time.Duration(session.TimeBudgetSeconds) * time.Second
		if session.StartedAt.Add(budget + s.Test.AbandonGrace).After(now) {
			continue
		}

		mu := s.sessionLock(session.ID)
		mu.Lock()
		fresh, err := s.Sessions.FindByID(session.ID)
		if err == nil && fresh.Status == model.SessionInProgress {
			fresh.Status = model.SessionAbandoned
			if err := s.Sessions.Save(fresh); err != nil {
				logger.Log.Error("failed to abandon session", zap.String("sessionId", fresh.ID), zap.Error(err))
			} else {
				s.locks.Delete(fresh.ID)
				abandoned++
			}
		}
		mu.Unlock()
	}
	return abandoned, nil
}

// finalize completes the session, pads unanswered questions with -1 records,
// scores exactly once, stores the result and feeds the stats aggregator.
func (s *SessionService) finalize(ctx context.Context, session *model.TestSession, now time.Time) (*model.TestResult, error) {
	answers, err := s.Sessions.FindAnswers(session.ID)
	if err != nil {
		return nil, err
	}

	answered := make(map[uint]bool, len(answers))
	for _, a := range answers {
		answered[a.QuestionID] = true
	}
	for pos, qid := range session.QuestionIDs {
		if answered[qid] {
			continue
		}
		pad := &model.AnswerRecord{
			SessionID:     session.ID,
			QuestionID:    qid,
			Position:      pos,
			SelectedIndex: -1,
		}
		if err := s.Sessions.CreateAnswer(pad); err != nil {
			return nil, err
		}
		answers = append(answers, *pad)
	}

	questions, err := s.Questions.FindByIDs(session.QuestionIDs)
	if err != nil {
		return nil, err
	}

	result := Score(questions, answers, session.Age)
	result.SessionID = session.ID

	if err := s.Results.Save(result); err != nil {
		return nil, err
	}

	session.Status = model.SessionCompleted
	session.Position = len(session.QuestionIDs)
	session.CompletedAt = &now
	if err := s.Sessions.Save(session); err != nil {
		return nil, err
	}

	// The session can no longer mutate; drop its lock entry.
	s.locks.Delete(session.ID)

	s.Stats.RecordCompletion(ctx, result, now)
	monitoring.SessionsCompleted.Inc()
	logger.Log.Info("test session completed",
		zap.String("sessionId", session.ID),
		zap.Int("iq", result.IQScore),
		zap.Float64("accuracy", result.Accuracy))

	return result, nil
}

func (s *SessionService) resolveRetry(session *model.TestSession, questionID uint) (*SubmitAnswerResponse, bool) {
	n := len(session.QuestionIDs)
	if session.Status != model.SessionCompleted || n == 0 || session.QuestionIDs[n-1] != questionID {
		return nil, false
	}
	res, err := s.Results.FindBySessionID(session.ID)
	if err != nil {
		return nil, false
	}
	return &SubmitAnswerResponse{Completed: true, Result: res}, true
}

func (s *SessionService) progressResponse(session *model.TestSession) (*SubmitAnswerResponse, error) {
	q, err := s.Questions.FindByID(session.QuestionIDs[session.Position])
	if err != nil {
		return nil, err
	}
	return &SubmitAnswerResponse{
		Question: s.questionView(q, session, s.now()),
	}, nil
}

func (s *SessionService) loadInProgress(ctx context.Context, sessionID string) (*model.TestSession, error) {
	session, err := s.Sessions.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	if session.Status != model.SessionInProgress {
		return nil, util.ErrSessionCompleted
	}
	return session, nil
}

func (s *SessionService) questionView(q *model.Question, session *model.TestSession, now time.Time) *QuestionView {
	remaining := session.TimeBudgetSeconds - int(now.Sub(session.StartedAt).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	return &QuestionView{
		QuestionID:       q.ID,
		Text:             q.Text,
		Options:          q.Options,
		Category:         q.Category,
		Position:         session.Position,
		TotalQuestions:   len(session.QuestionIDs),
		TimeLimitSeconds: q.TimeLimitSeconds,
		RemainingSeconds: remaining,
	}
}

func (s *SessionService) sessionLock(id string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
