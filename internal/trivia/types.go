package trivia

import (
	"math"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
)

// QuestionsPerPage is the fixed page size of the question listing.
const QuestionsPerPage = 10

// Question is the client-facing shape of a stored question.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// Categories maps category id to its display label.
type Categories map[int]string

// QuestionPage is one page of the full question listing.
type QuestionPage struct {
	Questions  []Question
	Categories Categories
	Total      int
}

// CategoryQuestions lists the questions of a single category.
type CategoryQuestions struct {
	Questions []Question
	Total     int
	Category  string
}

// NewQuestion carries the validated fields of a create request.
type NewQuestion struct {
	Question   string
	Answer     string
	Category   int
	Difficulty int
}

// QuizRequest selects the next quiz question. CategoryID 0 means all categories.
type QuizRequest struct {
	PreviousQuestions []int
	CategoryID        int
}

// fitsColumn reports whether n fits the int4 columns ids, categories and
// difficulties are stored in.
func fitsColumn(n int) bool {
	return n >= math.MinInt32 && n <= math.MaxInt32
}

func toQuestion(row queries.Question) Question {
	return Question{
		ID:         row.ID,
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   row.Category,
		Difficulty: row.Difficulty,
	}
}

func toQuestions(rows []queries.Question) []Question {
	out := make([]Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, toQuestion(row))
	}
	return out
}

func toCategories(rows []queries.Category) Categories {
	out := make(Categories, len(rows))
	for _, row := range rows {
		out[row.ID] = row.Type
	}
	return out
}
