package service

import (
	"github.com/avash81/mindmeter-iq-app/internal/model"
	"github.com/avash81/mindmeter-iq-app/internal/repository"
	"github.com/avash81/mindmeter-iq-app/internal/util"
)

type QuestionService struct {
	Repo *repository.QuestionRepository
}

func NewQuestionService(repo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{Repo: repo}
}

type QuestionRequest struct {
	Text             string   `json:"questionText" binding:"required"`
	Options          []string `json:"options" binding:"required"`
	CorrectIndex     *int     `json:"correctIndex" binding:"required"`
	Category         string   `json:"category" binding:"required"`
	Difficulty       string   `json:"difficulty"`
	TimeLimitSeconds int      `json:"timeLimitSeconds"`
	Explanation      string   `json:"explanation"`
}

func (r QuestionRequest) validate() error {
	if len(r.Options) < 2 {
		return util.ErrInvalidQuestion
	}
	if r.CorrectIndex == nil || *r.CorrectIndex < 0 || *r.CorrectIndex >= len(r.Options) {
		return util.ErrInvalidQuestion
	}
	if !model.ValidCategory(r.Category) {
		return util.ErrInvalidConfig
	}
	switch r.Difficulty {
	case "", model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
		return nil
	}
	return util.ErrInvalidConfig
}

func (s *QuestionService) Create(req QuestionRequest) (*model.Question, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	q := &model.Question{
		Text:             req.Text,
		Options:          req.Options,
		CorrectIndex:     *req.CorrectIndex,
		Category:         req.Category,
		Difficulty:       req.Difficulty,
		TimeLimitSeconds: req.TimeLimitSeconds,
		Explanation:      req.Explanation,
	}
	if err := s.Repo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) List(page, limit int) ([]model.Question, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Repo.List(page, limit)
}

func (s *QuestionService) Get(id uint) (*model.Question, error) {
	return s.Repo.FindByID(id)
}

func (s *QuestionService) Update(id uint, req QuestionRequest) (*model.Question, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	q, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	q.Text = req.Text
	q.Options = req.Options
	q.CorrectIndex = *req.CorrectIndex
	q.Category = req.Category
	q.Difficulty = req.Difficulty
	q.TimeLimitSeconds = req.TimeLimitSeconds
	q.Explanation = req.Explanation
	if err := s.Repo.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Delete(id uint) error {
	return s.Repo.Delete(id)
}
