package entity

import (
	"time"
)

type SessionStatus string

// Session status represents the current state of one intake conversation
const (
	// Intake loop
	SessionStatusAwaitingAnswer SessionStatus = "AWAITING_ANSWER" // Waiting for the answer to the current question

	// Intake finished, generation not yet started
	SessionStatusReviewPending SessionStatus = "REVIEW_PENDING" // All questions answered, waiting for generate

	// Generation
	SessionStatusGenerating SessionStatus = "GENERATING" // Generation request in flight

	// Terminal (both recoverable: Failed via retry, Ready via regenerate or restart)
	SessionStatusReady  SessionStatus = "READY"  // Validated document available
	SessionStatusFailed SessionStatus = "FAILED" // Last generation attempt failed
)

type Sender string

const (
	SenderSystem Sender = "system"
	SenderUser   Sender = "user"
)

// Message is one turn in the conversation transcript.
// The transcript is append-only for the lifetime of a session.
type Message struct {
	Text       string   `json:"text"`
	Sender     Sender   `json:"sender"`
	IsQuestion bool     `json:"is_question,omitempty"`
	Options    []string `json:"options,omitempty"`
	FieldName  string   `json:"field_name,omitempty"`
}

// AnswerRecord maps catalog field names to the raw answers collected so far.
type AnswerRecord map[string]string

// Session is one user's conversation instance, from the first question to
// Ready/Failed or restart. The usecase layer is the only mutator.
type Session struct {
	ID         string        `json:"session_id"`
	Status     SessionStatus `json:"session_status"`
	Cursor     int           `json:"question_index"`
	Transcript []Message     `json:"transcript"`
	Answers    AnswerRecord  `json:"answers"`

	// Generation is bumped on every restart. A generation call resolving
	// with a stale epoch must be discarded without touching the session.
	Generation int `json:"generation"`

	Result      *GuideDocument `json:"result,omitempty"`
	LastFailure *FailureKind   `json:"last_failure,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
