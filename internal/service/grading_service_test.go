package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/quizforge/quizforge/internal/apperr"
	"github.com/quizforge/quizforge/internal/dto"
	"github.com/quizforge/quizforge/internal/taskstore"
)

type memoryStore struct {
	mu    sync.Mutex
	tasks map[string]taskstore.Task
}

func newMemoryStore() *memoryStore {
	return &memoryStore{tasks: map[string]taskstore.Task{}}
}

func (m *memoryStore) Put(ctx context.Context, task taskstore.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[task.ID] = task
	return nil
}

func (m *memoryStore) Get(ctx context.Context, id string) (*taskstore.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return nil, taskstore.ErrNotFound
	}
	return &task, nil
}

type fakeGrader struct {
	available bool
	outcome   *GradeOutcome
	err       error
	delay     time.Duration
}

func (f *fakeGrader) Available() bool { return f.available }

func (f *fakeGrader) Grade(ctx context.Context, in GradeInput) (*GradeOutcome, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.outcome, nil
}

func validGradeRequest() dto.GradeRequestDTO {
	return dto.GradeRequestDTO{
		UserAnswer:      "Water moves across the membrane toward higher solute concentration.",
		GradingCriteria: "Mentions membrane and concentration gradient.",
		QuestionText:    "Explain osmosis.",
		MaxPoints:       5,
	}
}

// waitTerminal polls until the task leaves pending/running.
func waitTerminal(t *testing.T, svc GradingService, taskID string) *dto.GradeStatusDTO {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		status, err := svc.Result(context.Background(), taskID)
		if err != nil {
			t.Fatalf("Result: %v", err)
		}
		if status.Status == string(taskstore.StatusSucceeded) || status.Status == string(taskstore.StatusFailed) {
			return status
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("task %s never reached a terminal state", taskID)
	return nil
}

func TestDispatchReturnsImmediately(t *testing.T) {
	store := newMemoryStore()
	svc := NewGradingService(&fakeGrader{available: true, outcome: &GradeOutcome{Score: 4, Feedback: "Good."}, delay: 50 * time.Millisecond}, store)

	start := time.Now()
	taskID, err := svc.Dispatch(context.Background(), validGradeRequest())
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 30*time.Millisecond {
		t.Errorf("Dispatch blocked for %v, must not wait for grading", elapsed)
	}
	if taskID == "" {
		t.Fatal("Dispatch returned empty task id")
	}

	status := waitTerminal(t, svc, taskID)
	if status.Status != string(taskstore.StatusSucceeded) {
		t.Fatalf("got status %s, want succeeded", status.Status)
	}
	if status.Data == nil || status.Data.Score != 4 || status.Data.Feedback != "Good." {
		t.Errorf("got data %+v, want score 4 feedback Good.", status.Data)
	}
}

func TestDispatchValidatesRequest(t *testing.T) {
	svc := NewGradingService(&fakeGrader{available: true}, newMemoryStore())

	cases := []struct {
		name   string
		mutate func(*dto.GradeRequestDTO)
	}{
		{"missing answer", func(r *dto.GradeRequestDTO) { r.UserAnswer = "" }},
		{"missing criteria", func(r *dto.GradeRequestDTO) { r.GradingCriteria = "" }},
		{"missing question", func(r *dto.GradeRequestDTO) { r.QuestionText = "" }},
		{"zero points", func(r *dto.GradeRequestDTO) { r.MaxPoints = 0 }},
		{"negative points", func(r *dto.GradeRequestDTO) { r.MaxPoints = -3 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validGradeRequest()
			tc.mutate(&req)
			if _, err := svc.Dispatch(context.Background(), req); !apperr.Is(err, apperr.CodeMissingParameters) {
				t.Errorf("got %v, want MISSING_PARAMETERS", err)
			}
		})
	}
}

func TestDispatchWhenGraderUnavailable(t *testing.T) {
	svc := NewGradingService(&fakeGrader{available: false}, newMemoryStore())

	if _, err := svc.Dispatch(context.Background(), validGradeRequest()); !apperr.Is(err, apperr.CodeAIServiceUnavailable) {
		t.Errorf("got %v, want AI_SERVICE_UNAVAILABLE", err)
	}
}

func TestGradingFailureIsTerminal(t *testing.T) {
	store := newMemoryStore()
	svc := NewGradingService(&fakeGrader{available: true, err: errors.New("model timed out")}, store)

	taskID, err := svc.Dispatch(context.Background(), validGradeRequest())
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	status := waitTerminal(t, svc, taskID)
	if status.Status != string(taskstore.StatusFailed) {
		t.Fatalf("got status %s, want failed", status.Status)
	}
	if status.Data != nil {
		t.Error("failed task must not carry result data")
	}
	if status.Error == "" {
		t.Error("failed task must carry an error message")
	}

	// Polling a terminal task again returns the same state.
	again, err := svc.Result(context.Background(), taskID)
	if err != nil {
		t.Fatalf("Result: %v", err)
	}
	if again.Status != status.Status || again.Error != status.Error {
		t.Errorf("terminal state changed between polls: %+v vs %+v", status, again)
	}
}

// deadlineStore refuses writes once the request context is done, like a
// network-backed store.
type deadlineStore struct {
	*memoryStore
}

func (d *deadlineStore) Put(ctx context.Context, task taskstore.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return d.memoryStore.Put(ctx, task)
}

// hangingGrader blocks until the grading deadline fires.
type hangingGrader struct{}

func (hangingGrader) Available() bool { return true }

func (hangingGrader) Grade(ctx context.Context, in GradeInput) (*GradeOutcome, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestGradingTimeoutStillReachesFailedState(t *testing.T) {
	store := &deadlineStore{memoryStore: newMemoryStore()}
	svc := &gradingService{grader: hangingGrader{}, tasks: store, timeout: 20 * time.Millisecond}

	taskID, err := svc.Dispatch(context.Background(), validGradeRequest())
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	status := waitTerminal(t, svc, taskID)
	if status.Status != string(taskstore.StatusFailed) {
		t.Fatalf("got status %s, want failed after grading timeout", status.Status)
	}
	if status.Error == "" {
		t.Error("timed-out task must carry an error message")
	}
}

type panickingGrader struct{}

func (panickingGrader) Available() bool { return true }

func (panickingGrader) Grade(ctx context.Context, in GradeInput) (*GradeOutcome, error) {
	panic("runtime error: invalid memory address or nil pointer dereference")
}

func TestGradingPanicMarksTaskFailed(t *testing.T) {
	store := newMemoryStore()
	svc := &gradingService{grader: panickingGrader{}, tasks: store, timeout: time.Second}

	taskID, err := svc.Dispatch(context.Background(), validGradeRequest())
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	status := waitTerminal(t, svc, taskID)
	if status.Status != string(taskstore.StatusFailed) {
		t.Fatalf("got status %s, want failed after panic", status.Status)
	}
	if status.Error == "" {
		t.Error("panicked task must carry an error message")
	}
}

func TestResultUnknownTask(t *testing.T) {
	svc := NewGradingService(&fakeGrader{available: true}, newMemoryStore())

	if _, err := svc.Result(context.Background(), "no-such-task"); !apperr.Is(err, apperr.CodeNotFound) {
		t.Errorf("got %v, want NOT_FOUND", err)
	}
}

func TestConcurrentDispatchesGetDistinctTasks(t *testing.T) {
	store := newMemoryStore()
	svc := NewGradingService(&fakeGrader{available: true, outcome: &GradeOutcome{Score: 5, Feedback: "ok"}}, store)

	const n = 10
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := svc.Dispatch(context.Background(), validGradeRequest())
			if err != nil {
				t.Errorf("Dispatch: %v", err)
				return
			}
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate task id %s", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("got %d distinct tasks, want %d", len(seen), n)
	}
}
