package trivia

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
)

// EventPublisher announces catalog changes to other processes.
type EventPublisher interface {
	QuestionCreated(ctx context.Context, q Question) error
	QuestionDeleted(ctx context.Context, q Question) error
}

// ServiceOptions configures optional collaborators.
type ServiceOptions struct {
	// Events is notified after successful writes. Nil disables notifications.
	Events EventPublisher
	// Intn overrides the random source used for quiz draws.
	Intn func(n int) int
}

// Service implements the trivia operations on top of the repositories.
type Service struct {
	questions  *repository.QuestionRepository
	categories *repository.CategoryRepository
	events     EventPublisher
	intn       func(n int) int
	logger     zerolog.Logger
}

func NewService(questions *repository.QuestionRepository, categories *repository.CategoryRepository, opts ServiceOptions, logger zerolog.Logger) *Service {
	intn := opts.Intn
	if intn == nil {
		intn = rand.Intn
	}
	return &Service{
		questions:  questions,
		categories: categories,
		events:     opts.Events,
		intn:       intn,
		logger:     logger.With().Str("component", "trivia_service").Logger(),
	}
}

// ListCategories returns every category as an id to label mapping.
func (s *Service) ListCategories(ctx context.Context) (Categories, error) {
	rows, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrNotFound)
	}
	return toCategories(rows), nil
}

// ListQuestions returns one page of all questions together with the categories
// and the unpaginated total.
func (s *Service) ListQuestions(ctx context.Context, page int) (QuestionPage, error) {
	rows, err := s.questions.List(ctx)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list questions: %w", err)
	}

	current := Paginate(toQuestions(rows), page, QuestionsPerPage)
	if len(current) == 0 {
		return QuestionPage{}, fmt.Errorf("%w: page %d is empty", ErrNotFound, page)
	}

	cats, err := s.categories.List(ctx)
	if err != nil {
		return QuestionPage{}, fmt.Errorf("list categories: %w", err)
	}

	return QuestionPage{
		Questions:  current,
		Categories: toCategories(cats),
		Total:      len(rows),
	}, nil
}

// DeleteQuestion removes a question and returns its id.
func (s *Service) DeleteQuestion(ctx context.Context, id int) (int, error) {
	if !fitsColumn(id) {
		return 0, fmt.Errorf("%w: question %d", ErrNotFound, id)
	}
	row, err := s.questions.Get(ctx, id)
	if err != nil {
		return 0, s.lookupErr(err, "question %d", id)
	}
	if err := s.questions.Delete(ctx, id); err != nil {
		return 0, s.lookupErr(err, "question %d", id)
	}

	metrics.ObserveMutation("delete")
	s.publish(ctx, "question_deleted", toQuestion(row))
	return id, nil
}

// CreateQuestion stores a new question and returns its assigned id.
func (s *Service) CreateQuestion(ctx context.Context, in NewQuestion) (int, error) {
	if !fitsColumn(in.Category) || !fitsColumn(in.Difficulty) {
		return 0, fmt.Errorf("%w: category or difficulty out of range", ErrUnprocessable)
	}
	row, err := s.questions.Insert(ctx, queries.InsertQuestionParams{
		Question:   in.Question,
		Answer:     in.Answer,
		Category:   in.Category,
		Difficulty: in.Difficulty,
	})
	if err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return 0, fmt.Errorf("%w: category %d does not exist", ErrUnprocessable, in.Category)
		}
		return 0, fmt.Errorf("insert question: %w", err)
	}

	metrics.ObserveMutation("create")
	s.publish(ctx, "question_created", toQuestion(row))
	return row.ID, nil
}

// SearchQuestions returns questions whose text contains term, ignoring case.
func (s *Service) SearchQuestions(ctx context.Context, term string) ([]Question, error) {
	rows, err := s.questions.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no question matches %q", ErrNotFound, term)
	}
	return toQuestions(rows), nil
}

// QuestionsByCategory lists the questions of a category along with its label.
// Unknown categories and categories without questions are both not found.
func (s *Service) QuestionsByCategory(ctx context.Context, categoryID int) (CategoryQuestions, error) {
	if !fitsColumn(categoryID) {
		return CategoryQuestions{}, fmt.Errorf("%w: category %d", ErrNotFound, categoryID)
	}
	cat, err := s.categories.Get(ctx, categoryID)
	if err != nil {
		return CategoryQuestions{}, s.lookupErr(err, "category %d", categoryID)
	}

	rows, err := s.questions.ListByCategory(ctx, categoryID)
	if err != nil {
		return CategoryQuestions{}, fmt.Errorf("list questions of category %d: %w", categoryID, err)
	}
	if len(rows) == 0 {
		return CategoryQuestions{}, fmt.Errorf("%w: category %d has no questions", ErrNotFound, categoryID)
	}

	return CategoryQuestions{
		Questions: toQuestions(rows),
		Total:     len(rows),
		Category:  cat.Type,
	}, nil
}

// NextQuizQuestion draws a question not yet asked from the requested pool.
// A nil question with a nil error means every pool member was already asked.
func (s *Service) NextQuizQuestion(ctx context.Context, req QuizRequest) (*Question, error) {
	var (
		rows []queries.Question
		err  error
	)
	switch {
	case req.CategoryID == 0:
		rows, err = s.questions.List(ctx)
	case fitsColumn(req.CategoryID):
		rows, err = s.questions.ListByCategory(ctx, req.CategoryID)
	}
	if err != nil {
		return nil, fmt.Errorf("load quiz pool: %w", err)
	}

	q, result := drawNext(toQuestions(rows), req.PreviousQuestions, s.intn)
	switch result {
	case drawEmptyPool:
		metrics.ObserveQuizDraw(metrics.DrawEmptyPool)
		return nil, fmt.Errorf("%w: no questions in category %d", ErrUnprocessable, req.CategoryID)
	case drawExhausted:
		metrics.ObserveQuizDraw(metrics.DrawExhausted)
		return nil, nil
	default:
		metrics.ObserveQuizDraw(metrics.DrawQuestion)
		return q, nil
	}
}

func (s *Service) lookupErr(err error, format string, args ...interface{}) error {
	what := fmt.Sprintf(format, args...)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return fmt.Errorf("load %s: %w", what, err)
}

// publish notifies the event bus. The write has already committed, so a
// failure is only logged.
func (s *Service) publish(ctx context.Context, action string, q Question) {
	if s.events == nil {
		return
	}
	var err error
	switch action {
	case "question_created":
		err = s.events.QuestionCreated(ctx, q)
	case "question_deleted":
		err = s.events.QuestionDeleted(ctx, q)
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("action", action).Int("question_id", q.ID).Msg("publish question event failed")
	}
}
