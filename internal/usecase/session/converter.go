package session

import "github.com/oselik/nutriplan-backend/internal/entity"

// toDTO converts a session model to its transport representation.
func (uc *SessionUsecase) toDTO(session *entity.Session) *entity.SessionDTO {
	transcript := make([]entity.MessageDTO, 0, len(session.Transcript))
	for _, msg := range session.Transcript {
		transcript = append(transcript, entity.MessageDTO{
			Text:       msg.Text,
			Sender:     msg.Sender,
			IsQuestion: msg.IsQuestion,
			Options:    msg.Options,
			FieldName:  msg.FieldName,
		})
	}

	return &entity.SessionDTO{
		ID:            session.ID,
		Status:        session.Status,
		QuestionIndex: session.Cursor,
		QuestionCount: uc.engine.Catalog().Len(),
		Transcript:    transcript,
		LastFailure:   session.LastFailure,
		CreatedAt:     session.CreatedAt,
		UpdatedAt:     session.UpdatedAt,
	}
}
