package queries

// Category mirrors a row of the categories table.
type Category struct {
	ID   int    `db:"id"`
	Type string `db:"type"`
}

// Question mirrors a row of the questions table.
type Question struct {
	ID         int    `db:"id"`
	Question   string `db:"question"`
	Answer     string `db:"answer"`
	Category   int    `db:"category"`
	Difficulty int    `db:"difficulty"`
}

type InsertQuestionParams struct {
	Question   string
	Answer     string
	Category   int
	Difficulty int
}
