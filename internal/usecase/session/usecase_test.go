package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/oselik/nutriplan-backend/internal/catalog"
	"github.com/oselik/nutriplan-backend/internal/config"
	"github.com/oselik/nutriplan-backend/internal/conversation"
	"github.com/oselik/nutriplan-backend/internal/entity"
	"github.com/oselik/nutriplan-backend/internal/generation"
	"github.com/oselik/nutriplan-backend/internal/pkg/formatter"
	"github.com/oselik/nutriplan-backend/internal/pkg/validator"
	"github.com/oselik/nutriplan-backend/internal/repository"
)

type stubGenerator struct {
	mu    sync.Mutex
	doc   *entity.GuideDocument
	err   error
	calls int

	// When set, Generate blocks until the channel is closed.
	gate    chan struct{}
	started chan struct{}
}

func (s *stubGenerator) Generate(_ context.Context, _ *entity.GenerationRequest) (*entity.GuideDocument, error) {
	s.mu.Lock()
	s.calls++
	started := s.started
	s.started = nil
	gate := s.gate
	s.mu.Unlock()

	if started != nil {
		close(started)
	}
	if gate != nil {
		<-gate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc, s.err
}

func (s *stubGenerator) setOutcome(doc *entity.GuideDocument, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.err = err
}

func testDocument() *entity.GuideDocument {
	return &entity.GuideDocument{
		WeekPlan: entity.WeekPlan{Days: []entity.DayPlan{
			{Day: "Monday", Meals: []entity.Meal{{
				Slot:         "Breakfast",
				Dish:         "Porridge",
				Description:  "Warm oats",
				Nutrients:    "Protein: 10g",
				Ingredients:  []string{"oats"},
				Instructions: []string{"Cook the oats"},
			}}},
		}},
		Report: entity.NutritionReport{
			Summary:  "All good.",
			Findings: []string{"Nothing unusual"},
			Recommendations: []entity.TitledSection{
				{Title: "Diet", Items: []string{"Keep it up"}},
			},
			Lifestyle: []entity.TitledSection{
				{Title: "Habits", Items: []string{"Walk more"}},
			},
		},
	}
}

func newTestUsecase(t *testing.T, gen DocumentGenerator) *SessionUsecase {
	t.Helper()

	cat, err := catalog.New([]catalog.QuestionSpec{
		{FieldName: "age", Prompt: "What is your age?", Kind: catalog.KindNumeric},
		{FieldName: "dietary_preferences", Prompt: "Any dietary preferences?", Kind: catalog.KindSingleChoice,
			Options: []string{"None", "Vegetarian", "Vegan"}},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	store := repository.NewSessionCache(config.SessionStoreConfig{
		TTL:             time.Hour,
		CleanupInterval: time.Minute,
	})
	answerValidator := validator.NewAnswerValidator(config.AnswerLimitsConfig{MaxAnswerLength: 500})

	return NewUsecase(
		store,
		conversation.NewEngine(cat),
		generation.NewBuilder(cat),
		gen,
		formatter.NewFactory(),
		answerValidator,
		zap.NewNop(),
	)
}

func finishIntake(t *testing.T, uc *SessionUsecase, sessionID string) {
	t.Helper()
	ctx := context.Background()

	if _, err := uc.SubmitAnswer(ctx, sessionID, &entity.SubmitAnswerRequest{Answer: "30"}); err != nil {
		t.Fatalf("SubmitAnswer(age): %v", err)
	}
	dto, err := uc.SelectOption(ctx, sessionID, "Vegetarian")
	if err != nil {
		t.Fatalf("SelectOption: %v", err)
	}
	if dto.Status != entity.SessionStatusReviewPending {
		t.Fatalf("intake should end in REVIEW_PENDING, got %s", dto.Status)
	}
}

func TestGenerateHappyPath(t *testing.T) {
	gen := &stubGenerator{doc: testDocument()}
	uc := newTestUsecase(t, gen)
	ctx := context.Background()

	dto, err := uc.StartSession(ctx)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	finishIntake(t, uc, dto.ID)

	dto, err = uc.Generate(ctx, dto.ID)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if dto.Status != entity.SessionStatusReady {
		t.Fatalf("expected READY, got %s", dto.Status)
	}
	if dto.LastFailure != nil {
		t.Errorf("successful generation should clear failure, got %s", *dto.LastFailure)
	}

	result, err := uc.GetResult(ctx, dto.ID)
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if len(result.Document.WeekPlan.Days) != 1 {
		t.Errorf("unexpected document: %+v", result.Document)
	}
}

func TestGenerateBeforeIntakeComplete(t *testing.T) {
	uc := newTestUsecase(t, &stubGenerator{doc: testDocument()})
	ctx := context.Background()

	dto, err := uc.StartSession(ctx)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	if _, err := uc.Generate(ctx, dto.ID); !errors.Is(err, entity.ErrConversationOngoing) {
		t.Errorf("expected ErrConversationOngoing, got %v", err)
	}
}

func TestGenerateFailureThenRetry(t *testing.T) {
	gen := &stubGenerator{}
	gen.setOutcome(nil, entity.NewGenerationError(entity.FailureServiceUnavailable, errors.New("connection refused")))
	uc := newTestUsecase(t, gen)
	ctx := context.Background()

	dto, err := uc.StartSession(ctx)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	finishIntake(t, uc, dto.ID)

	dto, err = uc.Generate(ctx, dto.ID)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if dto.Status != entity.SessionStatusFailed {
		t.Fatalf("expected FAILED, got %s", dto.Status)
	}
	if dto.LastFailure == nil || *dto.LastFailure != entity.FailureServiceUnavailable {
		t.Fatalf("expected SERVICE_UNAVAILABLE failure, got %v", dto.LastFailure)
	}

	if _, err := uc.GetResult(ctx, dto.ID); !errors.Is(err, entity.ErrResultNotReady) {
		t.Errorf("failed session must not expose a result, got %v", err)
	}

	// The intake survives the failure, a retry can succeed without
	// answering anything again.
	gen.setOutcome(testDocument(), nil)
	dto, err = uc.Generate(ctx, dto.ID)
	if err != nil {
		t.Fatalf("retry Generate: %v", err)
	}
	if dto.Status != entity.SessionStatusReady {
		t.Errorf("expected READY after retry, got %s", dto.Status)
	}
	if dto.LastFailure != nil {
		t.Errorf("retry success should clear failure, got %s", *dto.LastFailure)
	}
}

func TestGenerateSingleFlight(t *testing.T) {
	gen := &stubGenerator{
		doc:     testDocument(),
		gate:    make(chan struct{}),
		started: make(chan struct{}),
	}
	uc := newTestUsecase(t, gen)
	ctx := context.Background()

	dto, err := uc.StartSession(ctx)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	finishIntake(t, uc, dto.ID)

	done := make(chan error, 1)
	go func() {
		_, err := uc.Generate(ctx, dto.ID)
		done <- err
	}()
	<-gen.started

	if _, err := uc.Generate(ctx, dto.ID); !errors.Is(err, entity.ErrGenerationInFlight) {
		t.Errorf("expected ErrGenerationInFlight, got %v", err)
	}

	close(gen.gate)
	if err := <-done; err != nil {
		t.Fatalf("first Generate: %v", err)
	}

	got, err := uc.GetSession(ctx, dto.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.Status != entity.SessionStatusReady {
		t.Errorf("expected READY, got %s", got.Status)
	}
}

func TestRestartDiscardsInFlightResult(t *testing.T) {
	gen := &stubGenerator{
		doc:     testDocument(),
		gate:    make(chan struct{}),
		started: make(chan struct{}),
	}
	uc := newTestUsecase(t, gen)
	ctx := context.Background()

	dto, err := uc.StartSession(ctx)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	finishIntake(t, uc, dto.ID)

	done := make(chan *entity.SessionDTO, 1)
	go func() {
		out, err := uc.Generate(ctx, dto.ID)
		if err != nil {
			t.Errorf("Generate: %v", err)
		}
		done <- out
	}()
	<-gen.started

	restarted, err := uc.Restart(ctx, dto.ID)
	if err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if restarted.Status != entity.SessionStatusAwaitingAnswer {
		t.Fatalf("restart should reopen intake, got %s", restarted.Status)
	}

	close(gen.gate)
	out := <-done
	if out.Status != entity.SessionStatusAwaitingAnswer {
		t.Errorf("stale result must be discarded, got status %s", out.Status)
	}

	if _, err := uc.GetResult(ctx, dto.ID); !errors.Is(err, entity.ErrResultNotReady) {
		t.Errorf("restarted session must not expose the stale result, got %v", err)
	}
}

func TestExportResult(t *testing.T) {
	gen := &stubGenerator{doc: testDocument()}
	uc := newTestUsecase(t, gen)
	ctx := context.Background()

	dto, err := uc.StartSession(ctx)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	if _, _, _, err := uc.ExportResult(ctx, dto.ID, "pdf"); !errors.Is(err, entity.ErrResultNotReady) {
		t.Errorf("export before READY should fail, got %v", err)
	}

	finishIntake(t, uc, dto.ID)
	if _, err := uc.Generate(ctx, dto.ID); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, _, _, err := uc.ExportResult(ctx, dto.ID, "xlsx"); !errors.Is(err, entity.ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}

	data, fileName, contentType, err := uc.ExportResult(ctx, dto.ID, "markdown")
	if err != nil {
		t.Fatalf("ExportResult: %v", err)
	}
	if contentType != "text/markdown; charset=utf-8" {
		t.Errorf("unexpected content type %q", contentType)
	}
	if !strings.HasSuffix(fileName, ".md") {
		t.Errorf("unexpected file name %q", fileName)
	}
	if !strings.Contains(string(data), "Porridge") {
		t.Error("exported document should contain the meal plan")
	}
}

func TestSubmitAnswerValidation(t *testing.T) {
	uc := newTestUsecase(t, &stubGenerator{})
	ctx := context.Background()

	dto, err := uc.StartSession(ctx)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	if _, err := uc.SubmitAnswer(ctx, dto.ID, &entity.SubmitAnswerRequest{Answer: "   "}); !errors.Is(err, entity.ErrMissingField) {
		t.Errorf("expected ErrMissingField for blank answer, got %v", err)
	}

	long := strings.Repeat("a", 600)
	if _, err := uc.SubmitAnswer(ctx, dto.ID, &entity.SubmitAnswerRequest{Answer: long}); !errors.Is(err, entity.ErrAnswerTooLong) {
		t.Errorf("expected ErrAnswerTooLong, got %v", err)
	}

	if _, err := uc.SubmitAnswer(ctx, dto.ID, &entity.SubmitAnswerRequest{Answer: "not a number"}); !errors.Is(err, entity.ErrNotNumeric) {
		t.Errorf("expected ErrNotNumeric, got %v", err)
	}
}

func TestDeleteSession(t *testing.T) {
	uc := newTestUsecase(t, &stubGenerator{})
	ctx := context.Background()

	dto, err := uc.StartSession(ctx)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if err := uc.DeleteSession(ctx, dto.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := uc.GetSession(ctx, dto.ID); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

// Readers snapshot the shared session while writers advance it; with the
// race detector enabled this fails if any access path skips the session
// lock.
func TestConcurrentReadsDuringWrites(t *testing.T) {
	gen := &stubGenerator{doc: testDocument()}
	uc := newTestUsecase(t, gen)
	ctx := context.Background()

	dto, err := uc.StartSession(ctx)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			if _, err := uc.GetSession(ctx, dto.ID); err != nil {
				return
			}
			uc.GetResult(ctx, dto.ID)
		}
	}()

	for i := 0; i < 20; i++ {
		finishIntake(t, uc, dto.ID)
		if _, err := uc.Generate(ctx, dto.ID); err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if _, err := uc.Restart(ctx, dto.ID); err != nil {
			t.Fatalf("Restart: %v", err)
		}
	}

	close(done)
	wg.Wait()
}

func TestSessionLockSurvivesDelete(t *testing.T) {
	uc := newTestUsecase(t, &stubGenerator{})
	ctx := context.Background()

	dto, err := uc.StartSession(ctx)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	lock := uc.sessionLock(dto.ID)
	if err := uc.DeleteSession(ctx, dto.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if uc.sessionLock(dto.ID) != lock {
		t.Error("lock entry must stay stable across session deletion")
	}
}
