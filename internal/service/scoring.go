package service

import (
	"math"

	"github.com/avash81/mindmeter-iq-app/internal/model"
)

// Scoring constants. The raw-score-to-IQ mapping is a configuration, not a
// law: baseline 100 at 50% accuracy, 1.2 IQ points per accuracy point (30 per
// 25-point band), clamped to [55, 160]. Percentiles assume a normal
// distribution with mean 100 and standard deviation 15.
const (
	iqBaseline = 100.0
	iqSlope    = 1.2
	iqMin      = 55
	iqMax      = 160

	percentileMean   = 100.0
	percentileStdDev = 15.0
)

// Performance labels, highest threshold first. Contiguous and exhaustive:
// every integer IQ in the clamp range maps to exactly one label.
var performanceBands = []struct {
	MinIQ int
	Label string
}{
	{145, "Genius"},
	{130, "Very Superior"},
	{120, "Superior"},
	{110, "High Average"},
	{90, "Average"},
	{80, "Low Average"},
	{math.MinInt32, "Below Average"},
}

// Score turns a completed session's questions and answer records into a
// result. It is a pure function: identical input always yields an identical
// result, and it performs no I/O.
func Score(questions []model.Question, answers []model.AnswerRecord, age int) *model.TestResult {
	byID := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	total := len(questions)
	correct := 0
	totalTime := 0
	catTotal := make(map[string]int)
	catCorrect := make(map[string]int)

	for _, q := range questions {
		catTotal[q.Category]++
	}

	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		totalTime += a.TimeTakenSeconds
		if a.SelectedIndex >= 0 && a.SelectedIndex == q.CorrectIndex {
			correct++
			catCorrect[q.Category]++
		}
	}

	accuracy := 0.0
	if total > 0 {
		accuracy = roundToOne(float64(correct) / float64(total) * 100)
	}

	categoryAccuracy := make(map[string]float64, len(catTotal))
	for cat, n := range catTotal {
		categoryAccuracy[cat] = roundToOne(float64(catCorrect[cat]) / float64(n) * 100)
	}

	iq := clampIQ(int(math.Round(iqBaseline + (accuracy-50)*iqSlope + ageAdjustment(age))))

	avgTime := 0
	if total > 0 {
		avgTime = totalTime / total // floored to whole seconds
	}

	return &model.TestResult{
		IQScore:          iq,
		Percentile:       Percentile(iq),
		Label:            PerformanceLabel(iq),
		CorrectCount:     correct,
		IncorrectCount:   total - correct,
		TotalQuestions:   total,
		Accuracy:         accuracy,
		CategoryAccuracy: categoryAccuracy,
		TotalTimeSeconds: totalTime,
		AvgTimeSeconds:   avgTime,
	}
}

// ageAdjustment is the age-normalization term, applied before clamping when
// the optional age was supplied. Developing (10-15) and senior (65+) takers
// get a small fixed allowance.
func ageAdjustment(age int) float64 {
	switch {
	case age == 0:
		return 0
	case age <= 15:
		return 3
	case age >= 65:
		return 3
	default:
		return 0
	}
}

func clampIQ(iq int) int {
	if iq < iqMin {
		return iqMin
	}
	if iq > iqMax {
		return iqMax
	}
	return iq
}

// Percentile ranks an IQ within the assumed N(100, 15) population, rounded to
// the nearest integer and clamped to [1, 99].
func Percentile(iq int) int {
	z := (float64(iq) - percentileMean) / percentileStdDev
	p := int(math.Round(100 * 0.5 * (1 + math.Erf(z/math.Sqrt2))))
	if p < 1 {
		return 1
	}
	if p > 99 {
		return 99
	}
	return p
}

// PerformanceLabel maps an IQ to its band label.
func PerformanceLabel(iq int) string {
	for _, band := range performanceBands {
		if iq >= band.MinIQ {
			return band.Label
		}
	}
	return performanceBands[len(performanceBands)-1].Label
}

func roundToOne(v float64) float64 {
	return math.Round(v*10) / 10
}
