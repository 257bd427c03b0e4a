package game

import "github.com/neuraledu/neural-conquest/internal/models"

// builtinQuestions back the provider when no bank exists for a topic. The
// "General Knowledge" entry doubles as the default for unmatched topics.
var builtinQuestions = map[string][]models.Question{
	"Mathematics": {
		{
			Text:        "What is the derivative of x² in calculus?",
			Options:     []string{"2x", "x²", "2", "x"},
			Correct:     0,
			Difficulty:  2,
			Topic:       "Mathematics",
			Explanation: "The derivative of x² is 2x using the power rule",
		},
		{
			Text:        "What is the Pythagorean theorem?",
			Options:     []string{"a² + b² = c²", "a + b = c", "a² = b² + c²", "a = b + c"},
			Correct:     0,
			Difficulty:  1,
			Topic:       "Mathematics",
			Explanation: "In a right triangle, a² + b² = c²",
		},
		{
			Text:        "What is the value of π (pi) to two decimal places?",
			Options:     []string{"3.14", "3.41", "2.71", "1.41"},
			Correct:     0,
			Difficulty:  1,
			Topic:       "Mathematics",
			Explanation: "π is approximately 3.14159, or 3.14 to two decimal places",
		},
	},
	"Science": {
		{
			Text:        "What is the chemical symbol for gold?",
			Options:     []string{"Go", "Au", "Ag", "Gd"},
			Correct:     1,
			Difficulty:  1,
			Topic:       "Science",
			Explanation: "Au is the symbol for gold, from the Latin \"aurum\"",
		},
		{
			Text:        "What is the speed of light in a vacuum?",
			Options:     []string{"300,000 km/s", "3,000 km/s", "30,000 km/s", "3,000,000 km/s"},
			Correct:     0,
			Difficulty:  2,
			Topic:       "Science",
			Explanation: "Light travels at roughly 300,000 kilometers per second in a vacuum",
		},
		{
			Text:        "What is the most abundant gas in Earth's atmosphere?",
			Options:     []string{"Oxygen", "Nitrogen", "Carbon Dioxide", "Argon"},
			Correct:     1,
			Difficulty:  1,
			Topic:       "Science",
			Explanation: "Nitrogen makes up about 78% of the atmosphere",
		},
	},
	"History": {
		{
			Text:        "When did World War II end?",
			Options:     []string{"1944", "1945", "1946", "1943"},
			Correct:     1,
			Difficulty:  1,
			Topic:       "History",
			Explanation: "World War II ended in 1945 with the surrender of Japan",
		},
		{
			Text:        "Who was the first person to walk on the moon?",
			Options:     []string{"Buzz Aldrin", "Neil Armstrong", "John Glenn", "Alan Shepard"},
			Correct:     1,
			Difficulty:  1,
			Topic:       "History",
			Explanation: "Neil Armstrong walked on the moon on July 20, 1969",
		},
		{
			Text:        "Which ancient wonder of the world was located in Alexandria?",
			Options:     []string{"Hanging Gardens", "Lighthouse of Alexandria", "Colossus of Rhodes", "Temple of Artemis"},
			Correct:     1,
			Difficulty:  2,
			Topic:       "History",
			Explanation: "The Lighthouse of Alexandria was one of the Seven Wonders",
		},
	},
	"Geography": {
		{
			Text:        "What is the capital of Australia?",
			Options:     []string{"Sydney", "Melbourne", "Canberra", "Perth"},
			Correct:     2,
			Difficulty:  1,
			Topic:       "Geography",
			Explanation: "Canberra is the capital city of Australia",
		},
		{
			Text:        "Which is the largest continent by area?",
			Options:     []string{"Asia", "Africa", "Antarctica", "South America"},
			Correct:     0,
			Difficulty:  1,
			Topic:       "Geography",
			Explanation: "Asia covers about 30% of Earth's land area",
		},
		{
			Text:        "What is the longest river in the world?",
			Options:     []string{"Amazon River", "Nile River", "Mississippi River", "Yangtze River"},
			Correct:     1,
			Difficulty:  2,
			Topic:       "Geography",
			Explanation: "The Nile is generally considered the longest river",
		},
	},
	"Biology": {
		{
			Text:        "What is the powerhouse of the cell?",
			Options:     []string{"Nucleus", "Mitochondria", "Ribosome", "Cytoplasm"},
			Correct:     1,
			Difficulty:  1,
			Topic:       "Biology",
			Explanation: "Mitochondria produce the cell's ATP energy",
		},
		{
			Text:        "How many chambers does a human heart have?",
			Options:     []string{"2", "3", "4", "5"},
			Correct:     2,
			Difficulty:  1,
			Topic:       "Biology",
			Explanation: "The human heart has two atria and two ventricles",
		},
	},
	"General Knowledge": {
		{
			Text:        "What is the capital of France?",
			Options:     []string{"London", "Berlin", "Paris", "Madrid"},
			Correct:     2,
			Difficulty:  1,
			Topic:       "General Knowledge",
			Explanation: "Paris is the capital of France",
		},
		{
			Text:        "How many days are in a leap year?",
			Options:     []string{"364", "365", "366", "367"},
			Correct:     2,
			Difficulty:  1,
			Topic:       "General Knowledge",
			Explanation: "A leap year has 366 days",
		},
	},
}
