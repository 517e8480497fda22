package model

import "time"

// Session lifecycle states.
const (
	SessionInProgress = "in_progress"
	SessionCompleted  = "completed"
	SessionAbandoned  = "abandoned"
)

// TestSession is one user's attempt at the test. The selected question ids are
// frozen at start; Position advances one step per accepted answer and the
// session completes when the last question is answered or the whole-session
// time budget runs out, whichever comes first.
// swagger:model TestSession
type TestSession struct {
	UUIDBase
	Status            string   `gorm:"size:20;index;default:'in_progress'" json:"status"`
	Position          int      `gorm:"default:0" json:"position"`
	QuestionIDs       []uint   `gorm:"type:json;serializer:json" json:"questionIds"`
	DurationClass     string   `gorm:"size:20" json:"durationClass"`
	Categories        []string `gorm:"type:json;serializer:json" json:"categories"`
	Difficulty        string   `gorm:"size:20" json:"difficulty"`
	Age               int      `gorm:"default:0" json:"age,omitempty"`
	TimeBudgetSeconds int      `json:"timeBudgetSeconds"`
	StartedAt         time.Time  `json:"startedAt"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
}

func (TestSession) TableName() string {
	return "test_sessions"
}

// Expired reports whether the whole-session time budget has elapsed at now.
func (s *TestSession) Expired(now time.Time) bool {
	return now.Sub(s.StartedAt) > time.Duration(s.TimeBudgetSeconds)*time.Second
}

// AnswerRecord is one submitted answer within a session. SelectedIndex -1
// denotes a timeout / no answer. The (session, question) pair is unique so a
// client retry can never append a duplicate record.
// swagger:model AnswerRecord
type AnswerRecord struct {
	BaseModel
	SessionID        string `gorm:"type:varchar(36);uniqueIndex:idx_session_question" json:"sessionId"`
	QuestionID       uint   `gorm:"uniqueIndex:idx_session_question" json:"questionId"`
	Position         int    `json:"position"`
	SelectedIndex    int    `json:"selectedIndex"`
	TimeTakenSeconds int    `json:"timeTakenSeconds"`
}

func (AnswerRecord) TableName() string {
	return "answer_records"
}
