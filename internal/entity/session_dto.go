package entity

import "time"

type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

type SelectOptionRequest struct {
	Option string `json:"option"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type MessageDTO struct {
	Text       string   `json:"text"`
	Sender     Sender   `json:"sender"`
	IsQuestion bool     `json:"is_question,omitempty"`
	Options    []string `json:"options,omitempty"`
	FieldName  string   `json:"field_name,omitempty"`
}

type SessionDTO struct {
	ID            string        `json:"session_id"`
	Status        SessionStatus `json:"session_status"`
	QuestionIndex int           `json:"question_index"`
	QuestionCount int           `json:"question_count"`
	Transcript    []MessageDTO  `json:"transcript"`
	LastFailure   *FailureKind  `json:"last_failure,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type ResultDTO struct {
	SessionID string         `json:"session_id"`
	Document  *GuideDocument `json:"document"`
}
