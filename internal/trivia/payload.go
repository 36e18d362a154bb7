package trivia

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FlexInt accepts a JSON integer or a string holding an integer.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return errors.New("integer value is null")
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("not an integer: %s", data)
	}
	*f = FlexInt(n)
	return nil
}

// CreateQuestionRequest is the body of POST /questions/create.
type CreateQuestionRequest struct {
	Question   *string  `json:"question"`
	Answer     *string  `json:"answer"`
	Category   *FlexInt `json:"category"`
	Difficulty *FlexInt `json:"difficulty"`
}

// Validate checks that every field is present and returns the service input.
func (r CreateQuestionRequest) Validate() (NewQuestion, error) {
	switch {
	case r.Question == nil:
		return NewQuestion{}, fmt.Errorf("%w: question is required", ErrUnprocessable)
	case r.Answer == nil:
		return NewQuestion{}, fmt.Errorf("%w: answer is required", ErrUnprocessable)
	case r.Category == nil:
		return NewQuestion{}, fmt.Errorf("%w: category is required", ErrUnprocessable)
	case r.Difficulty == nil:
		return NewQuestion{}, fmt.Errorf("%w: difficulty is required", ErrUnprocessable)
	}
	return NewQuestion{
		Question:   *r.Question,
		Answer:     *r.Answer,
		Category:   int(*r.Category),
		Difficulty: int(*r.Difficulty),
	}, nil
}

// SearchRequest is the body of POST /questions/search.
type SearchRequest struct {
	Search *string `json:"search"`
}

// quizCategory is the quiz_category object sent by clients; type is display only.
type quizCategory struct {
	ID   *FlexInt `json:"id"`
	Type string   `json:"type,omitempty"`
}

// ParseQuizRequest validates the fields of a decoded POST /quizzes body.
// Missing or malformed fields are bad requests.
func ParseQuizRequest(body map[string]json.RawMessage) (QuizRequest, error) {
	rawPrev, ok := body["previous_questions"]
	if !ok {
		return QuizRequest{}, fmt.Errorf("%w: previous_questions is required", ErrBadRequest)
	}
	var prev []FlexInt
	if err := json.Unmarshal(rawPrev, &prev); err != nil {
		return QuizRequest{}, fmt.Errorf("%w: previous_questions: %v", ErrBadRequest, err)
	}
	if prev == nil {
		return QuizRequest{}, fmt.Errorf("%w: previous_questions must be a list", ErrBadRequest)
	}

	rawCat, ok := body["quiz_category"]
	if !ok {
		return QuizRequest{}, fmt.Errorf("%w: quiz_category is required", ErrBadRequest)
	}
	var cat quizCategory
	if err := json.Unmarshal(rawCat, &cat); err != nil {
		return QuizRequest{}, fmt.Errorf("%w: quiz_category: %v", ErrBadRequest, err)
	}
	if cat.ID == nil {
		return QuizRequest{}, fmt.Errorf("%w: quiz_category.id is required", ErrBadRequest)
	}

	ids := make([]int, len(prev))
	for i, id := range prev {
		ids[i] = int(id)
	}
	return QuizRequest{PreviousQuestions: ids, CategoryID: int(*cat.ID)}, nil
}
