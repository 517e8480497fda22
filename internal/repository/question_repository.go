package repository

import (
	"github.com/avash81/mindmeter-iq-app/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	return &q, err
}

// FindByIDs returns the questions for ids in the same order as ids.
func (r *QuestionRepository) FindByIDs(ids []uint) ([]model.Question, error) {
	var qs []model.Question
	if err := r.DB.Where("id IN ?", ids).Find(&qs).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]model.Question, len(qs))
	for _, q := range qs {
		byID[q.ID] = q
	}

	ordered := make([]model.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}

// ListFiltered returns bank questions matching the category set (empty or
// containing "all" means any category) and difficulty ("" means any).
func (r *QuestionRepository) ListFiltered(categories []string, difficulty string) ([]model.Question, error) {
	query := r.DB.Model(&model.Question{})

	if len(categories) > 0 && !contains(categories, "all") {
		query = query.Where("category IN ?", categories)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var qs []model.Question
	err := query.Order("id asc").Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) List(page, limit int) ([]model.Question, int64, error) {
	var qs []model.Question
	var total int64
	query := r.DB.Model(&model.Question{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("id asc").Offset(offset).Limit(limit).Find(&qs).Error
	return qs, total, err
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
