package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
)

type mockQuestionStore struct {
	mock.Mock
}

func (m *mockQuestionStore) ListQuestions(ctx context.Context) ([]queries.Question, error) {
	args := m.Called(ctx)
	return args.Get(0).([]queries.Question), args.Error(1)
}

func (m *mockQuestionStore) ListQuestionsByCategory(ctx context.Context, categoryID int) ([]queries.Question, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]queries.Question), args.Error(1)
}

func (m *mockQuestionStore) SearchQuestions(ctx context.Context, term string) ([]queries.Question, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]queries.Question), args.Error(1)
}

func (m *mockQuestionStore) GetQuestion(ctx context.Context, id int) (queries.Question, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(queries.Question), args.Error(1)
}

func (m *mockQuestionStore) InsertQuestion(ctx context.Context, arg queries.InsertQuestionParams) (queries.Question, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(queries.Question), args.Error(1)
}

func (m *mockQuestionStore) DeleteQuestion(ctx context.Context, id int) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func TestQuestionRepository_List(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	expect := []queries.Question{{ID: 1, Question: "Q1"}, {ID: 2, Question: "Q2"}}
	store.On("ListQuestions", mock.Anything).Return(expect, nil)

	got, err := repo.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, expect, got)
	store.AssertExpectations(t)
}

func TestQuestionRepository_GetMissing(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	store.On("GetQuestion", mock.Anything, 42).Return(queries.Question{}, pgx.ErrNoRows)

	_, err := repo.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
	store.AssertExpectations(t)
}

func TestQuestionRepository_Insert(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	params := queries.InsertQuestionParams{Question: "Q", Answer: "A", Category: 1, Difficulty: 3}
	expect := queries.Question{ID: 7, Question: "Q", Answer: "A", Category: 1, Difficulty: 3}
	store.On("InsertQuestion", mock.Anything, params).Return(expect, nil)

	got, err := repo.Insert(context.Background(), params)
	assert.NoError(t, err)
	assert.Equal(t, expect, got)
	store.AssertExpectations(t)
}

func TestQuestionRepository_InsertUnknownCategory(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	params := queries.InsertQuestionParams{Question: "Q", Answer: "A", Category: 99, Difficulty: 1}
	store.On("InsertQuestion", mock.Anything, params).
		Return(queries.Question{}, &pgconn.PgError{Code: "23503"})

	_, err := repo.Insert(context.Background(), params)
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestQuestionRepository_Delete(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	store.On("DeleteQuestion", mock.Anything, 5).Return(int64(1), nil)
	store.On("DeleteQuestion", mock.Anything, 6).Return(int64(0), nil)
	store.On("DeleteQuestion", mock.Anything, 7).Return(int64(0), errors.New("connection reset"))

	assert.NoError(t, repo.Delete(context.Background(), 5))
	assert.ErrorIs(t, repo.Delete(context.Background(), 6), ErrNotFound)

	err := repo.Delete(context.Background(), 7)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	store.AssertExpectations(t)
}

func TestQuestionRepository_SearchPassesTerm(t *testing.T) {
	store := new(mockQuestionStore)
	repo := NewQuestionRepository(store)

	expect := []queries.Question{{ID: 3, Question: "What is in the box?"}}
	store.On("SearchQuestions", mock.Anything, "box").Return(expect, nil)
	store.On("ListQuestionsByCategory", mock.Anything, 2).Return([]queries.Question{}, nil)

	got, err := repo.Search(context.Background(), "box")
	assert.NoError(t, err)
	assert.Equal(t, expect, got)

	byCat, err := repo.ListByCategory(context.Background(), 2)
	assert.NoError(t, err)
	assert.Empty(t, byCat)
	store.AssertExpectations(t)
}
