package memory

import "quizdash/internal/domain"

// SeedCategories is the built-in topic catalog used when no database is
// configured and by the seed command to populate Postgres.
func SeedCategories() []domain.Category {
	return []domain.Category{
		{
			ID:          "science",
			Name:        "Science",
			Description: "Test your knowledge of the natural world",
			Color:       "quiz-science",
			Icon:        "🔬",
		},
		{
			ID:          "math",
			Name:        "Math",
			Description: "Solve mathematical problems and equations",
			Color:       "quiz-math",
			Icon:        "🔢",
		},
		{
			ID:          "history",
			Name:        "History",
			Description: "Explore events and figures from the past",
			Color:       "quiz-history",
			Icon:        "🏛️",
		},
		{
			ID:          "technology",
			Name:        "Technology",
			Description: "Learn about computers, software, and digital innovation",
			Color:       "quiz-technology",
			Icon:        "💻",
		},
	}
}

// SeedQuestions returns the built-in question bank, five questions per
// category.
func SeedQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:                 "sci-1",
			CategoryID:         "science",
			Text:               "What planet is known as the Red Planet?",
			Options:            []string{"Earth", "Venus", "Mars", "Jupiter"},
			CorrectAnswerIndex: 2,
		},
		{
			ID:                 "sci-2",
			CategoryID:         "science",
			Text:               "Which of these is NOT a state of matter?",
			Options:            []string{"Solid", "Liquid", "Gas", "Electricity"},
			CorrectAnswerIndex: 3,
		},
		{
			ID:                 "sci-3",
			CategoryID:         "science",
			Text:               "What is the chemical symbol for gold?",
			Options:            []string{"Go", "Gd", "Au", "Ag"},
			CorrectAnswerIndex: 2,
		},
		{
			ID:                 "sci-4",
			CategoryID:         "science",
			Text:               "Which gas do plants primarily absorb from the atmosphere?",
			Options:            []string{"Oxygen", "Nitrogen", "Carbon Dioxide", "Hydrogen"},
			CorrectAnswerIndex: 2,
		},
		{
			ID:                 "sci-5",
			CategoryID:         "science",
			Text:               "What is the closest star to Earth?",
			Options:            []string{"Proxima Centauri", "Alpha Centauri", "The Sun", "Sirius"},
			CorrectAnswerIndex: 2,
		},
		{
			ID:                 "math-1",
			CategoryID:         "math",
			Text:               "What is the square root of 64?",
			Options:            []string{"6", "8", "10", "12"},
			CorrectAnswerIndex: 1,
		},
		{
			ID:                 "math-2",
			CategoryID:         "math",
			Text:               "What is 7 x 8?",
			Options:            []string{"54", "56", "64", "72"},
			CorrectAnswerIndex: 1,
		},
		{
			ID:                 "math-3",
			CategoryID:         "math",
			Text:               "Which of these is a prime number?",
			Options:            []string{"15", "21", "33", "41"},
			CorrectAnswerIndex: 3,
		},
		{
			ID:                 "math-4",
			CategoryID:         "math",
			Text:               "What is the value of π (pi) rounded to two decimal places?",
			Options:            []string{"3.12", "3.14", "3.16", "3.18"},
			CorrectAnswerIndex: 1,
		},
		{
			ID:                 "math-5",
			CategoryID:         "math",
			Text:               "In geometry, how many sides does a hexagon have?",
			Options:            []string{"5", "6", "7", "8"},
			CorrectAnswerIndex: 1,
		},
		{
			ID:                 "hist-1",
			CategoryID:         "history",
			Text:               "Who was the first President of the United States?",
			Options:            []string{"Abraham Lincoln", "George Washington", "Thomas Jefferson", "John Adams"},
			CorrectAnswerIndex: 1,
		},
		{
			ID:                 "hist-2",
			CategoryID:         "history",
			Text:               "In which year did World War II end?",
			Options:            []string{"1943", "1945", "1947", "1950"},
			CorrectAnswerIndex: 1,
		},
		{
			ID:                 "hist-3",
			CategoryID:         "history",
			Text:               "Which ancient civilization built the pyramids at Giza?",
			Options:            []string{"Romans", "Greeks", "Mayans", "Egyptians"},
			CorrectAnswerIndex: 3,
		},
		{
			ID:                 "hist-4",
			CategoryID:         "history",
			Text:               "The Renaissance period began in which country?",
			Options:            []string{"France", "Germany", "Italy", "England"},
			CorrectAnswerIndex: 2,
		},
		{
			ID:                 "hist-5",
			CategoryID:         "history",
			Text:               "Which document begins with 'We the People'?",
			Options:            []string{"The Declaration of Independence", "The Constitution", "The Gettysburg Address", "The Emancipation Proclamation"},
			CorrectAnswerIndex: 1,
		},
		{
			ID:                 "tech-1",
			CategoryID:         "technology",
			Text:               "What does CPU stand for?",
			Options:            []string{"Central Processing Unit", "Computer Power Unit", "Central Programming Utility", "Core Processor Unit"},
			CorrectAnswerIndex: 0,
		},
		{
			ID:                 "tech-2",
			CategoryID:         "technology",
			Text:               "Which company developed the first iPhone?",
			Options:            []string{"Google", "Samsung", "Apple", "Microsoft"},
			CorrectAnswerIndex: 2,
		},
		{
			ID:                 "tech-3",
			CategoryID:         "technology",
			Text:               "In programming, what does HTML stand for?",
			Options:            []string{"HyperText Markup Language", "High Technology Modern Language", "Home Tool Markup Language", "Hybrid Text Multiple Language"},
			CorrectAnswerIndex: 0,
		},
		{
			ID:                 "tech-4",
			CategoryID:         "technology",
			Text:               "Which of these is not a programming language?",
			Options:            []string{"Java", "Python", "Chrome", "Ruby"},
			CorrectAnswerIndex: 2,
		},
		{
			ID:                 "tech-5",
			CategoryID:         "technology",
			Text:               "The cloud in cloud computing refers to:",
			Options:            []string{"Weather systems", "Remote servers accessible via the Internet", "A type of database", "A network security protocol"},
			CorrectAnswerIndex: 1,
		},
	}
}
