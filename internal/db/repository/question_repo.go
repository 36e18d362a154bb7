package repository

import (
	"context"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
)

type questionStore interface {
	ListQuestions(ctx context.Context) ([]queries.Question, error)
	ListQuestionsByCategory(ctx context.Context, categoryID int) ([]queries.Question, error)
	SearchQuestions(ctx context.Context, term string) ([]queries.Question, error)
	GetQuestion(ctx context.Context, id int) (queries.Question, error)
	InsertQuestion(ctx context.Context, arg queries.InsertQuestionParams) (queries.Question, error)
	DeleteQuestion(ctx context.Context, id int) (int64, error)
}

// QuestionRepository wraps the question queries and normalises store errors.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// List returns every question ordered by id.
func (r *QuestionRepository) List(ctx context.Context) ([]queries.Question, error) {
	return r.store.ListQuestions(ctx)
}

// ListByCategory returns the questions of one category ordered by id.
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int) ([]queries.Question, error) {
	return r.store.ListQuestionsByCategory(ctx, categoryID)
}

// Search performs a case-insensitive substring match on the question text.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]queries.Question, error) {
	return r.store.SearchQuestions(ctx, term)
}

// Get fetches a question by id, returning ErrNotFound when absent.
func (r *QuestionRepository) Get(ctx context.Context, id int) (queries.Question, error) {
	q, err := r.store.GetQuestion(ctx, id)
	return q, translate(err)
}

// Insert stores a new question and returns it with its assigned id.
func (r *QuestionRepository) Insert(ctx context.Context, params queries.InsertQuestionParams) (queries.Question, error) {
	q, err := r.store.InsertQuestion(ctx, params)
	return q, translate(err)
}

// Delete removes a question, returning ErrNotFound when nothing was deleted.
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	affected, err := r.store.DeleteQuestion(ctx, id)
	if err != nil {
		return translate(err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
