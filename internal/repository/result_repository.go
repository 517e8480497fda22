package repository

import (
	"errors"

	"github.com/avash81/mindmeter-iq-app/internal/model"
	"github.com/avash81/mindmeter-iq-app/internal/util"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

// Save writes a result exactly once per session. A second write for the same
// session id fails with ErrDuplicateResult; the unique index on session_id
// backs the guard under concurrent writers.
func (r *ResultRepository) Save(res *model.TestResult) error {
	var existing model.TestResult
	err := r.DB.Where("session_id = ?", res.SessionID).First(&existing).Error
	if err == nil {
		return util.ErrDuplicateResult
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.DB.Create(res).Error
}

func (r *ResultRepository) FindBySessionID(sessionID string) (*model.TestResult, error) {
	var res model.TestResult
	err := r.DB.Where("session_id = ?", sessionID).First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Aggregate recomputes the stats totals over every stored result. Used by the
// snapshot consistency check and by the in-memory stats fallback at startup.
func (r *ResultRepository) Aggregate() (total int64, iqSum int64, questionSum int64, err error) {
	row := struct {
		Total       int64
		IQSum       int64 `gorm:"column:iq_sum"`
		QuestionSum int64 `gorm:"column:question_sum"`
	}{}
	err = r.DB.Model(&model.TestResult{}).
		Select("COUNT(*) as total, COALESCE(SUM(iq_score),0) as iq_sum, COALESCE(SUM(total_questions),0) as question_sum").
		Scan(&row).Error
	return row.Total, row.IQSum, row.QuestionSum, err
}
