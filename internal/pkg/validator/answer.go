package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/oselik/nutriplan-backend/internal/config"
	"github.com/oselik/nutriplan-backend/internal/entity"
)

// Validator validates incoming conversation requests
type Validator struct {
	cfg config.AnswerLimitsConfig
}

func NewAnswerValidator(cfg config.AnswerLimitsConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateSubmitAnswer validates answer submission
func (v *Validator) ValidateSubmitAnswer(req *entity.SubmitAnswerRequest) error {
	if strings.TrimSpace(req.Answer) == "" {
		return fmt.Errorf("%w: answer", entity.ErrMissingField)
	}

	if length := utf8.RuneCountInString(req.Answer); length > v.cfg.MaxAnswerLength {
		return fmt.Errorf("%w: %d characters (max %d)", entity.ErrAnswerTooLong, length, v.cfg.MaxAnswerLength)
	}

	return nil
}
