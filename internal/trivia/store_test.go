package trivia

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

// memoryStore satisfies both repository stores with in-process slices.
type memoryStore struct {
	mu         sync.Mutex
	categories []queries.Category
	questions  []queries.Question
	nextID     int
	failWith   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		categories: []queries.Category{
			{ID: 1, Type: "Science"},
			{ID: 2, Type: "Art"},
			{ID: 5, Type: "Entertainment"},
		},
		nextID: 1,
	}
}

func (m *memoryStore) add(question string, category int) queries.Question {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := queries.Question{ID: m.nextID, Question: question, Answer: "answer", Category: category, Difficulty: 1}
	m.nextID++
	m.questions = append(m.questions, q)
	return q
}

func (m *memoryStore) seed(n, category int) {
	for i := 0; i < n; i++ {
		m.add(fmt.Sprintf("Question %d", i+1), category)
	}
}

func (m *memoryStore) ListCategories(ctx context.Context) ([]queries.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	return append([]queries.Category(nil), m.categories...), nil
}

func (m *memoryStore) GetCategory(ctx context.Context, id int) (queries.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return queries.Category{}, m.failWith
	}
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return queries.Category{}, pgx.ErrNoRows
}

func (m *memoryStore) filter(keep func(queries.Question) bool) ([]queries.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []queries.Question{}
	for _, q := range m.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryStore) ListQuestions(ctx context.Context) ([]queries.Question, error) {
	return m.filter(func(queries.Question) bool { return true })
}

func (m *memoryStore) ListQuestionsByCategory(ctx context.Context, categoryID int) ([]queries.Question, error) {
	return m.filter(func(q queries.Question) bool { return q.Category == categoryID })
}

func (m *memoryStore) SearchQuestions(ctx context.Context, term string) ([]queries.Question, error) {
	needle := strings.ToLower(term)
	return m.filter(func(q queries.Question) bool { return strings.Contains(strings.ToLower(q.Question), needle) })
}

func (m *memoryStore) GetQuestion(ctx context.Context, id int) (queries.Question, error) {
	rows, err := m.filter(func(q queries.Question) bool { return q.ID == id })
	if err != nil {
		return queries.Question{}, err
	}
	if len(rows) == 0 {
		return queries.Question{}, pgx.ErrNoRows
	}
	return rows[0], nil
}

func (m *memoryStore) InsertQuestion(ctx context.Context, arg queries.InsertQuestionParams) (queries.Question, error) {
	if _, err := m.GetCategory(ctx, arg.Category); err != nil {
		return queries.Question{}, &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	q := queries.Question{ID: m.nextID, Question: arg.Question, Answer: arg.Answer, Category: arg.Category, Difficulty: arg.Difficulty}
	m.nextID++
	m.questions = append(m.questions, q)
	return q, nil
}

func (m *memoryStore) DeleteQuestion(ctx context.Context, id int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return 0, m.failWith
	}
	for i, q := range m.questions {
		if q.ID == id {
			m.questions = append(m.questions[:i], m.questions[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type recordedEvent struct {
	action string
	id     int
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (p *recordingPublisher) QuestionCreated(ctx context.Context, q Question) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{"created", q.ID})
	return p.err
}

func (p *recordingPublisher) QuestionDeleted(ctx context.Context, q Question) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{"deleted", q.ID})
	return p.err
}

func newTestService(t *testing.T, store *memoryStore, opts ServiceOptions) *Service {
	t.Helper()
	return NewService(
		repository.NewQuestionRepository(store),
		repository.NewCategoryRepository(store),
		opts,
		zerolog.New(io.Discard),
	)
}
