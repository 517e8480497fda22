package repository

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/avash81/mindmeter-iq-app/internal/model"
	"github.com/avash81/mindmeter-iq-app/internal/util"
	"github.com/avash81/mindmeter-iq-app/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var dbSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
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

func TestResultSaveIsOncePerSession(t *testing.T) {
	repo := NewResultRepository(newTestDB(t))

	first := &model.TestResult{SessionID: "s-1", IQScore: 124, TotalQuestions: 10}
	if err := repo.Save(first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	second := &model.TestResult{SessionID: "s-1", IQScore: 99, TotalQuestions: 10}
	if err := repo.Save(second); !errors.Is(err, util.ErrDuplicateResult) {
		t.Fatalf("second Save() error = %v, want ErrDuplicateResult", err)
	}

	stored, err := repo.FindBySessionID("s-1")
	if err != nil {
		t.Fatalf("FindBySessionID() error = %v", err)
	}
	if stored.IQScore != 124 {
		t.Errorf("duplicate save overwrote the result: iq = %d", stored.IQScore)
	}
}

func TestResultFindMissing(t *testing.T) {
	repo := NewResultRepository(newTestDB(t))
	if _, err := repo.FindBySessionID("nope"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("error = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestResultAggregate(t *testing.T) {
	repo := NewResultRepository(newTestDB(t))

	for i, iq := range []int{120, 100, 140} {
		res := &model.TestResult{SessionID: fmt.Sprintf("s-%d", i), IQScore: iq, TotalQuestions: 5}
		if err := repo.Save(res); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	total, iqSum, questions, err := repo.Aggregate()
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if total != 3 || iqSum != 360 || questions != 15 {
		t.Errorf("Aggregate() = %d, %d, %d; want 3, 360, 15", total, iqSum, questions)
	}
}

func TestAnswerRecordUniquePerSessionQuestion(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))

	a := &model.AnswerRecord{SessionID: "s-1", QuestionID: 7, Position: 0, SelectedIndex: 2}
	if err := repo.CreateAnswer(a); err != nil {
		t.Fatalf("CreateAnswer() error = %v", err)
	}
	dup := &model.AnswerRecord{SessionID: "s-1", QuestionID: 7, Position: 0, SelectedIndex: 3}
	if err := repo.CreateAnswer(dup); err == nil {
		t.Fatalf("duplicate (session, question) record was accepted")
	}
	// Same question in another session is fine.
	other := &model.AnswerRecord{SessionID: "s-2", QuestionID: 7, Position: 0, SelectedIndex: 1}
	if err := repo.CreateAnswer(other); err != nil {
		t.Fatalf("CreateAnswer() in second session error = %v", err)
	}
}

func TestQuestionListFiltered(t *testing.T) {
	repo := NewQuestionRepository(newTestDB(t))

	math, err := repo.ListFiltered([]string{model.CategoryMath}, "")
	if err != nil {
		t.Fatalf("ListFiltered() error = %v", err)
	}
	for _, q := range math {
		if q.Category != model.CategoryMath {
			t.Fatalf("category filter leaked %q", q.Category)
		}
	}

	hard, err := repo.ListFiltered(nil, model.DifficultyHard)
	if err != nil {
		t.Fatalf("ListFiltered() error = %v", err)
	}
	for _, q := range hard {
		if q.Difficulty != model.DifficultyHard {
			t.Fatalf("difficulty filter leaked %q", q.Difficulty)
		}
	}

	// "all" bypasses the category filter entirely.
	all, err := repo.ListFiltered([]string{"all"}, "")
	if err != nil {
		t.Fatalf("ListFiltered() error = %v", err)
	}
	if len(all) != len(database.SeedQuestions()) {
		t.Errorf("all-categories list returned %d questions, want %d", len(all), len(database.SeedQuestions()))
	}
}

func TestQuestionFindByIDsPreservesOrder(t *testing.T) {
	repo := NewQuestionRepository(newTestDB(t))

	ids := []uint{5, 2, 9, 1}
	qs, err := repo.FindByIDs(ids)
	if err != nil {
		t.Fatalf("FindByIDs() error = %v", err)
	}
	if len(qs) != len(ids) {
		t.Fatalf("FindByIDs() returned %d questions, want %d", len(qs), len(ids))
	}
	for i, q := range qs {
		if q.ID != ids[i] {
			t.Errorf("position %d has id %d, want %d", i, q.ID, ids[i])
		}
	}
}
