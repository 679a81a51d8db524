package conversation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oselik/nutriplan-backend/internal/catalog"
	"github.com/oselik/nutriplan-backend/internal/entity"
)

const closingMessage = "Thank you for providing all this information! Press Generate and I'll prepare your personalized meal plan and nutrition report."

// Engine advances intake sessions through the question catalog. It performs
// no I/O and never mutates a session on rejected input.
type Engine struct {
	catalog *catalog.Catalog
}

// NewEngine creates an engine over the given catalog.
func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{catalog: cat}
}

// Catalog returns the catalog this engine runs on.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// NewSession creates a session with the first question already asked.
func (e *Engine) NewSession(id string) *entity.Session {
	now := time.Now()
	s := &entity.Session{
		ID:        id,
		Status:    entity.SessionStatusAwaitingAnswer,
		Answers:   make(entity.AnswerRecord),
		CreatedAt: now,
		UpdatedAt: now,
	}
	e.seed(s)
	return s
}

// Restart resets the conversation in place. The generation epoch is bumped
// so that an in-flight generation resolving later is discarded.
func (e *Engine) Restart(s *entity.Session) {
	s.Generation++
	s.Cursor = 0
	s.Status = entity.SessionStatusAwaitingAnswer
	s.Transcript = nil
	s.Answers = make(entity.AnswerRecord)
	s.Result = nil
	s.LastFailure = nil
	s.UpdatedAt = time.Now()
	e.seed(s)
}

func (e *Engine) seed(s *entity.Session) {
	first, err := e.catalog.At(0)
	if err != nil {
		// Catalog construction guarantees at least one question.
		panic(fmt.Sprintf("seed session: %v", err))
	}
	s.Transcript = append(s.Transcript, questionMessage(first))
}

// CurrentQuestion returns the question the session is waiting on.
func (e *Engine) CurrentQuestion(s *entity.Session) (catalog.QuestionSpec, bool) {
	if s.Status != entity.SessionStatusAwaitingAnswer {
		return catalog.QuestionSpec{}, false
	}
	q, err := e.catalog.At(s.Cursor)
	if err != nil {
		return catalog.QuestionSpec{}, false
	}
	return q, true
}

// Complete reports whether every catalog field has an accepted answer.
func (e *Engine) Complete(s *entity.Session) bool {
	return len(s.Answers) == e.catalog.Len()
}

// SubmitAnswer accepts the answer for the current question and advances the
// conversation. Rejected input (empty, non-numeric for numeric questions,
// unknown option for single-choice questions) leaves the session untouched.
func (e *Engine) SubmitAnswer(s *entity.Session, text string) error {
	if s.Status != entity.SessionStatusAwaitingAnswer {
		return fmt.Errorf("%w: session is %s", entity.ErrConversationDone, s.Status)
	}

	q, err := e.catalog.At(s.Cursor)
	if err != nil {
		return entity.ErrNoSuchQuestion
	}

	answer := strings.TrimSpace(text)
	if answer == "" {
		return entity.ErrEmptyAnswer
	}
	if err := validateAnswer(q, answer); err != nil {
		return err
	}

	s.Transcript = append(s.Transcript, entity.Message{
		Text:      answer,
		Sender:    entity.SenderUser,
		FieldName: q.FieldName,
	})
	s.Answers[q.FieldName] = answer
	s.Cursor++

	if next, err := e.catalog.At(s.Cursor); err == nil {
		s.Transcript = append(s.Transcript, questionMessage(next))
	} else {
		s.Transcript = append(s.Transcript, entity.Message{
			Text:   closingMessage,
			Sender: entity.SenderSystem,
		})
		s.Status = entity.SessionStatusReviewPending
	}

	s.UpdatedAt = time.Now()
	return nil
}

// SelectOption submits one of the declared options for a single-choice
// question. It is equivalent to SubmitAnswer with that option text.
func (e *Engine) SelectOption(s *entity.Session, option string) error {
	q, ok := e.CurrentQuestion(s)
	if !ok {
		return entity.ErrNoSuchQuestion
	}
	if q.Kind != catalog.KindSingleChoice {
		return fmt.Errorf("%w: question %q takes typed input", entity.ErrInvalidParameter, q.FieldName)
	}
	return e.SubmitAnswer(s, option)
}

func validateAnswer(q catalog.QuestionSpec, answer string) error {
	switch q.Kind {
	case catalog.KindNumeric:
		v, err := strconv.ParseFloat(answer, 64)
		if err != nil || v <= 0 {
			return fmt.Errorf("%w: %q", entity.ErrNotNumeric, answer)
		}
	case catalog.KindSingleChoice:
		// Strict membership: typed text must match a declared option exactly.
		for _, opt := range q.Options {
			if answer == opt {
				return nil
			}
		}
		return fmt.Errorf("%w: %q", entity.ErrUnknownOption, answer)
	}
	return nil
}

func questionMessage(q catalog.QuestionSpec) entity.Message {
	return entity.Message{
		Text:       q.Prompt,
		Sender:     entity.SenderSystem,
		IsQuestion: true,
		Options:    q.Options,
		FieldName:  q.FieldName,
	}
}
