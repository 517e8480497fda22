package repository

import (
	"time"

	"github.com/avash81/mindmeter-iq-app/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(s *model.TestSession) error {
	return r.DB.Create(s).Error
}

func (r *SessionRepository) FindByID(id string) (*model.TestSession, error) {
	var s model.TestSession
	err := r.DB.Where("id = ?", id).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) Save(s *model.TestSession) error {
	return r.DB.Save(s).Error
}

func (r *SessionRepository) CreateAnswer(a *model.AnswerRecord) error {
	return r.DB.Create(a).Error
}

func (r *SessionRepository) FindAnswers(sessionID string) ([]model.AnswerRecord, error) {
	var as []model.AnswerRecord
	err := r.DB.Where("session_id = ?", sessionID).Order("position asc").Find(&as).Error
	return as, err
}

func (r *SessionRepository) FindAnswer(sessionID string, questionID uint) (*model.AnswerRecord, error) {
	var a model.AnswerRecord
	err := r.DB.Where("session_id = ? AND question_id = ?", sessionID, questionID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListInProgressStartedBefore returns candidate sessions for the abandon
// sweep. The caller still checks each session's own time budget.
func (r *SessionRepository) ListInProgressStartedBefore(cutoff time.Time) ([]model.TestSession, error) {
	var ss []model.TestSession
	err := r.DB.Where("status = ? AND started_at < ?", model.SessionInProgress, cutoff).Find(&ss).Error
	return ss, err
}
