package database

import "github.com/avash81/mindmeter-iq-app/internal/model"

// SeedQuestions returns the default question bank inserted on first start.
func SeedQuestions() []model.Question {
	return []model.Question{
		{
			Text:         "What number comes next in the sequence: 2, 4, 8, 16, ?",
			Options:      []string{"24", "32", "20", "18"},
			CorrectIndex: 1,
			Category:     model.CategoryMath,
			Difficulty:   model.DifficultyEasy,
		},
		{
			Text:         "If all roses are flowers and some flowers fade quickly, can we conclude that some roses fade quickly?",
			Options:      []string{"Yes", "No", "Cannot be determined", "Only in summer"},
			CorrectIndex: 2,
			Category:     model.CategoryVerbal,
			Difficulty:   model.DifficultyMedium,
		},
		{
			Text:         "Which number doesn't belong: 2, 3, 5, 7, 9, 11?",
			Options:      []string{"2", "9", "7", "11"},
			CorrectIndex: 1,
			Category:     model.CategoryPattern,
			Difficulty:   model.DifficultyMedium,
		},
		{
			Text:         "What is 15% of 200?",
			Options:      []string{"30", "25", "35", "20"},
			CorrectIndex: 0,
			Category:     model.CategoryMath,
			Difficulty:   model.DifficultyEasy,
		},
		{
			Text:         "Book is to Reading as Fork is to ?",
			Options:      []string{"Drawing", "Writing", "Eating", "Stirring"},
			CorrectIndex: 2,
			Category:     model.CategoryVerbal,
			Difficulty:   model.DifficultyEasy,
		},
		{
			Text:         "Complete the pattern: 1, 1, 2, 3, 5, 8, ?",
			Options:      []string{"11", "13", "12", "15"},
			CorrectIndex: 1,
			Category:     model.CategoryPattern,
			Difficulty:   model.DifficultyMedium,
		},
		{
			Text:         "If 5x + 3 = 18, what is x?",
			Options:      []string{"3", "4", "5", "2"},
			CorrectIndex: 0,
			Category:     model.CategoryMath,
			Difficulty:   model.DifficultyMedium,
		},
		{
			Text:         "What comes next: A, C, E, G, ?",
			Options:      []string{"H", "I", "J", "K"},
			CorrectIndex: 1,
			Category:     model.CategoryPattern,
			Difficulty:   model.DifficultyEasy,
		},
		{
			Text:         "Which word is the odd one out: Dog, Cat, Lion, Table, Tiger?",
			Options:      []string{"Dog", "Table", "Lion", "Tiger"},
			CorrectIndex: 1,
			Category:     model.CategoryVerbal,
			Difficulty:   model.DifficultyEasy,
		},
		{
			Text:         "What is the square root of 144?",
			Options:      []string{"11", "12", "13", "14"},
			CorrectIndex: 1,
			Category:     model.CategoryMath,
			Difficulty:   model.DifficultyEasy,
		},
		{
			Text:         "Complete: 3, 6, 12, 24, ?",
			Options:      []string{"36", "48", "42", "30"},
			CorrectIndex: 1,
			Category:     model.CategoryPattern,
			Difficulty:   model.DifficultyMedium,
		},
		{
			Text:         "If you rearrange the letters 'CIFAIPC' you would have the name of a(n):",
			Options:      []string{"City", "Animal", "Ocean", "Country"},
			CorrectIndex: 2,
			Category:     model.CategoryVerbal,
			Difficulty:   model.DifficultyHard,
		},
		{
			Text:         "What is 7 x 8?",
			Options:      []string{"54", "56", "58", "52"},
			CorrectIndex: 1,
			Category:     model.CategoryMath,
			Difficulty:   model.DifficultyEasy,
		},
		{
			Text:         "What comes next: 100, 50, 25, 12.5, ?",
			Options:      []string{"6.25", "6", "7", "5"},
			CorrectIndex: 0,
			Category:     model.CategoryPattern,
			Difficulty:   model.DifficultyMedium,
		},
		{
			Text:         "Pen is to Writer as Brush is to ?",
			Options:      []string{"Paper", "Painter", "Color", "Canvas"},
			CorrectIndex: 1,
			Category:     model.CategoryVerbal,
			Difficulty:   model.DifficultyEasy,
		},
		{
			Text:         "If 3x - 7 = 11, what is x?",
			Options:      []string{"5", "6", "7", "8"},
			CorrectIndex: 1,
			Category:     model.CategoryMath,
			Difficulty:   model.DifficultyMedium,
		},
		{
			Text:         "Complete the sequence: 2, 6, 12, 20, 30, ?",
			Options:      []string{"40", "42", "44", "38"},
			CorrectIndex: 1,
			Category:     model.CategoryPattern,
			Difficulty:   model.DifficultyHard,
		},
		{
			Text:         "Which word means the opposite of 'Ancient'?",
			Options:      []string{"Old", "Modern", "Historic", "Antique"},
			CorrectIndex: 1,
			Category:     model.CategoryVerbal,
			Difficulty:   model.DifficultyEasy,
		},
		{
			Text:         "What is 25% of 80?",
			Options:      []string{"15", "20", "25", "30"},
			CorrectIndex: 1,
			Category:     model.CategoryMath,
			Difficulty:   model.DifficultyEasy,
		},
		{
			Text:         "Find the next number: 1, 4, 9, 16, 25, ?",
			Options:      []string{"30", "35", "36", "49"},
			CorrectIndex: 2,
			Category:     model.CategoryPattern,
			Difficulty:   model.DifficultyMedium,
		},
	}
}
