// Package queries holds the hand-written SQL for categories and questions.
package queries

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Queries runs the statements below against a DBTX.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const listCategories = `
SELECT id, type
FROM categories
ORDER BY id`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.Query(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Category])
}

const getCategory = `
SELECT id, type
FROM categories
WHERE id = $1`

func (q *Queries) GetCategory(ctx context.Context, id int) (Category, error) {
	rows, err := q.db.Query(ctx, getCategory, id)
	if err != nil {
		return Category{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Category])
}

const listQuestions = `
SELECT id, question, answer, category, difficulty
FROM questions
ORDER BY id`

func (q *Queries) ListQuestions(ctx context.Context) ([]Question, error) {
	rows, err := q.db.Query(ctx, listQuestions)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Question])
}

const listQuestionsByCategory = `
SELECT id, question, answer, category, difficulty
FROM questions
WHERE category = $1
ORDER BY id`

func (q *Queries) ListQuestionsByCategory(ctx context.Context, categoryID int) ([]Question, error) {
	rows, err := q.db.Query(ctx, listQuestionsByCategory, categoryID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Question])
}

const searchQuestions = `
SELECT id, question, answer, category, difficulty
FROM questions
WHERE question ILIKE '%' || $1 || '%'
ORDER BY id`

// SearchQuestions matches term as a literal, case-insensitive substring.
func (q *Queries) SearchQuestions(ctx context.Context, term string) ([]Question, error) {
	rows, err := q.db.Query(ctx, searchQuestions, EscapeLike(term))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Question])
}

const getQuestion = `
SELECT id, question, answer, category, difficulty
FROM questions
WHERE id = $1`

func (q *Queries) GetQuestion(ctx context.Context, id int) (Question, error) {
	rows, err := q.db.Query(ctx, getQuestion, id)
	if err != nil {
		return Question{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Question])
}

const insertQuestion = `
INSERT INTO questions (question, answer, category, difficulty)
VALUES ($1, $2, $3, $4)
RETURNING id, question, answer, category, difficulty`

func (q *Queries) InsertQuestion(ctx context.Context, arg InsertQuestionParams) (Question, error) {
	rows, err := q.db.Query(ctx, insertQuestion, arg.Question, arg.Answer, arg.Category, arg.Difficulty)
	if err != nil {
		return Question{}, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Question])
}

const deleteQuestion = `
DELETE FROM questions
WHERE id = $1`

// DeleteQuestion returns the number of rows removed.
func (q *Queries) DeleteQuestion(ctx context.Context, id int) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteQuestion, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike neutralises LIKE wildcards so the term is matched literally.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}
