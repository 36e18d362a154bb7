package trivia

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const maxBodyBytes = 1 << 20

var errTrailingData = errors.New("unexpected data after JSON body")

// HTTPHandlers exposes the trivia REST endpoints.
type HTTPHandlers struct {
	service *Service
	timeout time.Duration
	logger  zerolog.Logger
}

// NewHTTPHandlers creates handlers that bound each request's store work by timeout.
func NewHTTPHandlers(service *Service, timeout time.Duration, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		service: service,
		timeout: timeout,
		logger:  logger.With().Str("component", "trivia_http").Logger(),
	}
}

// Register mounts the trivia routes on mux. Method checks happen in the
// handlers so wrong methods get the JSON 405 envelope.
func (h *HTTPHandlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("/categories", h.GetCategories)
	mux.HandleFunc("/categories/{id}/questions", h.GetCategoryQuestions)
	mux.HandleFunc("/questions", h.GetQuestions)
	mux.HandleFunc("/questions/{id}", h.DeleteQuestion)
	mux.HandleFunc("/questions/create", h.CreateQuestion)
	mux.HandleFunc("/questions/search", h.SearchQuestions)
	mux.HandleFunc("/quizzes", h.PlayQuiz)
}

// GetCategories handles GET /categories
func (h *HTTPHandlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	categories, err := h.service.ListCategories(ctx)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": categories,
	})
}

// GetQuestions handles GET /questions?page=N
func (h *HTTPHandlers) GetQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}

	result, err := h.service.ListQuestions(ctx, page)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"categories":       result.Categories,
		"total_questions":  result.Total,
		"current_category": nil,
	})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	id, err := pathID(r)
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	deleted, err := h.service.DeleteQuestion(ctx, id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"deleted_id": deleted,
	})
}

// CreateQuestion handles POST /questions/create
func (h *HTTPHandlers) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var req CreateQuestionRequest
	if err := h.decode(w, r, &req); err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}
	in, err := req.Validate()
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	id, err := h.service.CreateQuestion(ctx, in)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"question_id": id,
	})
}

// SearchQuestions handles POST /questions/search
func (h *HTTPHandlers) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var req SearchRequest
	if err := h.decode(w, r, &req); err != nil || req.Search == nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	questions, err := h.service.SearchQuestions(ctx, *req.Search)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"questions": questions,
	})
}

// GetCategoryQuestions handles GET /categories/{id}/questions
func (h *HTTPHandlers) GetCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	id, err := pathID(r)
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()

	result, err := h.service.QuestionsByCategory(ctx, id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        result.Questions,
		"total_questions":  result.Total,
		"current_category": result.Category,
	})
}

// PlayQuiz handles POST /quizzes
func (h *HTTPHandlers) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var body map[string]json.RawMessage
	if err := h.decode(w, r, &body); err != nil || body == nil {
		httperrors.RespondUnprocessable(w)
		return
	}
	req, err := ParseQuizRequest(body)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	question, err := h.service.NextQuizQuestion(ctx, req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": question,
	})
}

// NotFound answers every path no other route claims.
func (h *HTTPHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	httperrors.RespondNotFound(w)
}

func (h *HTTPHandlers) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.timeout)
}

// pathID parses the {id} segment. Ids are stored as int4, so anything wider
// cannot name a row.
func pathID(r *http.Request) (int, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 32)
	return int(id), err
}

// decode reads exactly one JSON value from the body.
func (h *HTTPHandlers) decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errTrailingData
	}
	return nil
}

func (h *HTTPHandlers) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httperrors.RespondNotFound(w)
	case errors.Is(err, ErrUnprocessable):
		httperrors.RespondUnprocessable(w)
	case errors.Is(err, ErrBadRequest):
		httperrors.RespondBadRequest(w)
	default:
		logger := logging.FromContext(r.Context())
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		httperrors.RespondInternalError(w)
	}
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Warn().Err(err).Msg("encode response failed")
	}
}
