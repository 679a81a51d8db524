package conversation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/oselik/nutriplan-backend/internal/entity"
)

type stubUsecase struct {
	session *entity.SessionDTO
	result  *entity.ResultDTO
	err     error

	lastAnswer string
	lastOption string
	lastFormat string
}

func (s *stubUsecase) StartSession(ctx context.Context) (*entity.SessionDTO, error) {
	return s.session, s.err
}

func (s *stubUsecase) GetSession(ctx context.Context, sessionID string) (*entity.SessionDTO, error) {
	return s.session, s.err
}

func (s *stubUsecase) SubmitAnswer(ctx context.Context, sessionID string, req *entity.SubmitAnswerRequest) (*entity.SessionDTO, error) {
	s.lastAnswer = req.Answer
	return s.session, s.err
}

func (s *stubUsecase) SelectOption(ctx context.Context, sessionID, option string) (*entity.SessionDTO, error) {
	s.lastOption = option
	return s.session, s.err
}

func (s *stubUsecase) Generate(ctx context.Context, sessionID string) (*entity.SessionDTO, error) {
	return s.session, s.err
}

func (s *stubUsecase) GetResult(ctx context.Context, sessionID string) (*entity.ResultDTO, error) {
	return s.result, s.err
}

func (s *stubUsecase) ExportResult(ctx context.Context, sessionID, format string) ([]byte, string, string, error) {
	s.lastFormat = format
	if s.err != nil {
		return nil, "", "", s.err
	}
	return []byte("file-body"), "nutrition-guide-" + sessionID + ".pdf", "application/pdf", nil
}

func (s *stubUsecase) Restart(ctx context.Context, sessionID string) (*entity.SessionDTO, error) {
	return s.session, s.err
}

func (s *stubUsecase) DeleteSession(ctx context.Context, sessionID string) error {
	return s.err
}

func newTestRouter(uc SessionUsecase) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(uc))
	return r
}

func TestStartSession(t *testing.T) {
	uc := &stubUsecase{session: &entity.SessionDTO{
		ID:     "s-1",
		Status: entity.SessionStatusAwaitingAnswer,
	}}
	router := newTestRouter(uc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/conversation", nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	var got entity.SessionDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.ID != "s-1" || got.Status != entity.SessionStatusAwaitingAnswer {
		t.Errorf("unexpected session body: %+v", got)
	}
}

func TestSubmitAnswer(t *testing.T) {
	uc := &stubUsecase{session: &entity.SessionDTO{ID: "s-1"}}
	router := newTestRouter(uc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/conversation/s-1/answer", strings.NewReader(`{"answer":"34"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if uc.lastAnswer != "34" {
		t.Errorf("answer = %q, want %q", uc.lastAnswer, "34")
	}
}

func TestSubmitAnswerBadBody(t *testing.T) {
	router := newTestRouter(&stubUsecase{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/conversation/s-1/answer", strings.NewReader("{"))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestExportResultDefaultsToPDF(t *testing.T) {
	uc := &stubUsecase{}
	router := newTestRouter(uc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/conversation/s-1/result/export", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if uc.lastFormat != "pdf" {
		t.Errorf("format = %q, want %q", uc.lastFormat, "pdf")
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("content type = %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "nutrition-guide-s-1.pdf") {
		t.Errorf("content disposition = %q", got)
	}
	if rec.Body.String() != "file-body" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", entity.ErrSessionNotFound, http.StatusNotFound},
		{"rejected answer", entity.ErrNotNumeric, http.StatusUnprocessableEntity},
		{"unknown option", entity.ErrUnknownOption, http.StatusUnprocessableEntity},
		{"answer too long", entity.ErrAnswerTooLong, http.StatusBadRequest},
		{"bad format", entity.ErrInvalidFormat, http.StatusBadRequest},
		{"intake incomplete", entity.ErrConversationOngoing, http.StatusConflict},
		{"generation in flight", entity.ErrGenerationInFlight, http.StatusConflict},
		{"result not ready", entity.ErrResultNotReady, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubUsecase{err: tt.err})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/conversation/s-1/generate", nil)
			router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}

			var body entity.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body.Error == "" {
				t.Error("error field is empty")
			}
		})
	}
}
