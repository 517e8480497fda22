package model

// TestResult is the scored outcome of exactly one completed session. It is
// written once when the session completes and never mutated afterwards.
// swagger:model TestResult
type TestResult struct {
	BaseModel
	SessionID        string             `gorm:"type:varchar(36);uniqueIndex" json:"sessionId"`
	IQScore          int                `gorm:"not null" json:"iqScore"`
	Percentile       int                `gorm:"not null" json:"percentile"`
	Label            string             `gorm:"size:30;not null" json:"label"`
	CorrectCount     int                `json:"correctCount"`
	IncorrectCount   int                `json:"incorrectCount"`
	TotalQuestions   int                `json:"totalQuestions"`
	Accuracy         float64            `json:"accuracy"`
	CategoryAccuracy map[string]float64 `gorm:"type:json;serializer:json" json:"categoryAccuracy"`
	TotalTimeSeconds int                `json:"totalTimeSeconds"`
	AvgTimeSeconds   int                `json:"avgTimeSeconds"`
}

func (TestResult) TableName() string {
	return "test_results"
}

// StatsSnapshot is the read-only aggregate over all finalized results.
// swagger:model StatsSnapshot
type StatsSnapshot struct {
	TotalCompleted         int64   `json:"totalCompleted"`
	CompletedLast30Days    int64   `json:"completedLast30Days"`
	AverageIQ              float64 `json:"averageIq"`
	TotalQuestionsAnswered int64   `json:"totalQuestionsAnswered"`
}
