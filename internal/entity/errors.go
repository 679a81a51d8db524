package entity

import "errors"

// Domain errors
var (
	// Session errors
	ErrSessionNotFound     = errors.New("session not found")
	ErrConversationDone    = errors.New("conversation already complete")
	ErrConversationOngoing = errors.New("conversation is not complete yet")
	ErrGenerationInFlight  = errors.New("generation already in progress")
	ErrResultNotReady      = errors.New("result not available")

	// Local input rejections (never leave the state machine as failures)
	ErrEmptyAnswer    = errors.New("answer is empty")
	ErrAnswerTooLong  = errors.New("answer exceeds the allowed length")
	ErrNotNumeric     = errors.New("answer is not a positive number")
	ErrUnknownOption  = errors.New("answer is not one of the declared options")
	ErrNoSuchQuestion = errors.New("no question awaiting an answer")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrEmptySequence    = errors.New("required list is empty")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidFormat    = errors.New("invalid format")
)
