package model

// Question categories. Every question belongs to exactly one.
const (
	CategoryPattern = "pattern"
	CategoryMath    = "math"
	CategoryVerbal  = "verbal"
	CategoryGeneral = "general"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question is one multiple-choice item in the bank. CorrectIndex is 0-based
// into Options and must never reach test takers; only the admin API returns it.
// swagger:model Question
type Question struct {
	BaseModel
	Text             string   `gorm:"type:text;not null" json:"questionText"`
	Options          []string `gorm:"type:json;serializer:json" json:"options"`
	CorrectIndex     int      `gorm:"not null" json:"correctIndex"`
	Category         string   `gorm:"size:20;index;not null" json:"category"`
	Difficulty       string   `gorm:"size:20;index" json:"difficulty"`
	TimeLimitSeconds int      `gorm:"default:0" json:"timeLimitSeconds,omitempty"`
	Explanation      string   `gorm:"type:text" json:"explanation,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryPattern, CategoryMath, CategoryVerbal, CategoryGeneral:
		return true
	}
	return false
}
