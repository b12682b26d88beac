package scan

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/vasilis249/ingredient-scanner/internal/analysis"
	"github.com/vasilis249/ingredient-scanner/internal/model"
)

type stubAnalyzer struct {
	mu      sync.Mutex
	calls   int
	release chan struct{}
	result  *model.AnalysisResult
	err     error
}

func (a *stubAnalyzer) FetchAnalysis(ctx context.Context, barcode string) (*model.AnalysisResult, error) {
	a.mu.Lock()
	a.calls++
	a.mu.Unlock()

	if a.release != nil {
		<-a.release
	}
	return a.result, a.err
}

func (a *stubAnalyzer) callCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

func lotionResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		ProductName:  "Lotion X",
		OverallScore: "B",
		Ingredients: []model.IngredientEntry{
			{
				ID:        "Parabens",
				Name:      "Parabens",
				RiskLevel: model.RiskHigh,
				Details:   "Консервант, возможный эндокринный дизраптор.",
			},
		},
	}
}

func waitSnapshot(t *testing.T, updates <-chan Snapshot, want State) Snapshot {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap := <-updates:
			if snap.State == want {
				return snap
			}
		case <-deadline:
			t.Fatalf("no %s snapshot within 2s", want)
		}
	}
}

func waitState(t *testing.T, s *Session, want State) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.Current().State == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("state %s not reached, current is %s", want, s.Current().State)
}

func TestSubmitTransitionsToLoadingSynchronously(t *testing.T) {
	stub := &stubAnalyzer{release: make(chan struct{}), result: lotionResult()}
	s := NewSession(stub, zap.NewNop())

	if !s.Submit(context.Background(), "0123456789012") {
		t.Fatal("submit rejected, want accepted")
	}

	snap := s.Current()
	if snap.State != StateLoading {
		t.Fatalf("got state %s right after submit, want %s", snap.State, StateLoading)
	}
	if snap.Barcode != "0123456789012" {
		t.Errorf("got barcode %q, want %q", snap.Barcode, "0123456789012")
	}

	close(stub.release)
	waitState(t, s, StateSuccess)
}

func TestSubmitIgnoredWhileLoading(t *testing.T) {
	stub := &stubAnalyzer{release: make(chan struct{}), result: lotionResult()}
	s := NewSession(stub, zap.NewNop())
	updates := s.Updates()

	if !s.Submit(context.Background(), "4005900889089") {
		t.Fatal("first submit rejected, want accepted")
	}
	waitSnapshot(t, updates, StateLoading)

	if s.Submit(context.Background(), "3606000430150") {
		t.Fatal("second submit accepted while loading, want ignored")
	}
	if got := s.Current().Barcode; got != "4005900889089" {
		t.Errorf("got barcode %q after ignored submit, want %q", got, "4005900889089")
	}

	close(stub.release)

	snap := waitSnapshot(t, updates, StateSuccess)
	if snap.Barcode != "4005900889089" {
		t.Errorf("got barcode %q in success snapshot, want %q", snap.Barcode, "4005900889089")
	}
	if got := stub.callCount(); got != 1 {
		t.Errorf("got %d analyzer calls, want 1", got)
	}
}

func TestResetDuringLoadingSuppressesCompletion(t *testing.T) {
	stub := &stubAnalyzer{release: make(chan struct{}), result: lotionResult()}
	s := NewSession(stub, zap.NewNop())
	updates := s.Updates()

	s.Submit(context.Background(), "4005900889089")
	waitSnapshot(t, updates, StateLoading)

	s.Reset()
	waitSnapshot(t, updates, StateIdle)

	close(stub.release)

	select {
	case snap := <-updates:
		t.Fatalf("unexpected snapshot after reset: %+v", snap)
	case <-time.After(200 * time.Millisecond):
	}

	if got := s.Current().State; got != StateIdle {
		t.Errorf("got state %s, want %s", got, StateIdle)
	}
}

func TestSubmitEmptyBarcode(t *testing.T) {
	tests := []struct {
		name    string
		barcode string
	}{
		{name: "empty string", barcode: ""},
		{name: "spaces only", barcode: "   "},
		{name: "tabs and newlines", barcode: "\t\n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubAnalyzer{}
			s := NewSession(stub, zap.NewNop())

			s.Submit(context.Background(), tt.barcode)

			snap := s.Current()
			if snap.State != StateFailed {
				t.Fatalf("got state %s right after submit, want %s", snap.State, StateFailed)
			}
			if snap.Err == nil {
				t.Fatal("failed snapshot carries no error")
			}
			if snap.Err.Kind != analysis.ErrorKindInvalidEndpoint {
				t.Errorf("got kind %s, want %s", snap.Err.Kind, analysis.ErrorKindInvalidEndpoint)
			}
			if got := stub.callCount(); got != 0 {
				t.Errorf("got %d analyzer calls, want 0", got)
			}
		})
	}
}

func TestSubmitSuccess(t *testing.T) {
	stub := &stubAnalyzer{result: lotionResult()}
	s := NewSession(stub, zap.NewNop())
	updates := s.Updates()

	s.Submit(context.Background(), "0123456789012")

	snap := waitSnapshot(t, updates, StateSuccess)
	if snap.Result == nil {
		t.Fatal("success snapshot carries no result")
	}
	if snap.Result.OverallScore != "B" {
		t.Errorf("got overall score %q, want B", snap.Result.OverallScore)
	}
	if len(snap.Result.Ingredients) != 1 {
		t.Fatalf("got %d ingredients, want 1", len(snap.Result.Ingredients))
	}
	if got := snap.Result.Ingredients[0].RiskLevel; got != model.RiskHigh {
		t.Errorf("got risk %s, want %s", got, model.RiskHigh)
	}
	if snap.Err != nil {
		t.Errorf("success snapshot carries error %v", snap.Err)
	}
}

func TestSubmitFailure(t *testing.T) {
	stub := &stubAnalyzer{
		err: &analysis.RequestError{Kind: analysis.ErrorKindServer, Message: "service unavailable"},
	}
	s := NewSession(stub, zap.NewNop())
	updates := s.Updates()

	s.Submit(context.Background(), "4005900889089")

	snap := waitSnapshot(t, updates, StateFailed)
	if snap.Err == nil {
		t.Fatal("failed snapshot carries no error")
	}
	if snap.Err.Kind != analysis.ErrorKindServer {
		t.Errorf("got kind %s, want %s", snap.Err.Kind, analysis.ErrorKindServer)
	}
	if snap.Err.Message != "service unavailable" {
		t.Errorf("got message %q, want %q", snap.Err.Message, "service unavailable")
	}
	if snap.Result != nil {
		t.Error("failed snapshot carries a result")
	}
}

func TestResubmitAfterTerminalState(t *testing.T) {
	stub := &stubAnalyzer{result: lotionResult()}
	s := NewSession(stub, zap.NewNop())

	s.Submit(context.Background(), "4005900889089")
	waitState(t, s, StateSuccess)

	if !s.Submit(context.Background(), "3606000430150") {
		t.Fatal("submit after success rejected, want accepted")
	}
	waitState(t, s, StateSuccess)

	if got := stub.callCount(); got != 2 {
		t.Errorf("got %d analyzer calls, want 2", got)
	}
}

func TestResetClearsTerminalState(t *testing.T) {
	stub := &stubAnalyzer{result: lotionResult()}
	s := NewSession(stub, zap.NewNop())

	s.Submit(context.Background(), "4005900889089")
	waitState(t, s, StateSuccess)

	s.Reset()

	snap := s.Current()
	if snap.State != StateIdle {
		t.Fatalf("got state %s, want %s", snap.State, StateIdle)
	}
	if snap.Result != nil || snap.Err != nil {
		t.Errorf("idle snapshot still carries result %v or error %v", snap.Result, snap.Err)
	}
}

func TestUpdatesDropOldestOnOverflow(t *testing.T) {
	stub := &stubAnalyzer{result: lotionResult()}
	s := NewSession(stub, zap.NewNop())

	// Никто не читает канал: публикуется втрое больше ёмкости буфера.
	for i := 0; i < 20; i++ {
		s.Submit(context.Background(), "4005900889089")
		waitState(t, s, StateSuccess)
		s.Reset()
	}

	var drained []Snapshot
	for {
		select {
		case snap := <-s.Updates():
			drained = append(drained, snap)
			continue
		default:
		}
		break
	}

	if len(drained) == 0 || len(drained) > updatesBuffer {
		t.Fatalf("got %d buffered snapshots, want between 1 and %d", len(drained), updatesBuffer)
	}
	last := drained[len(drained)-1]
	if last.State != StateIdle {
		t.Errorf("got last snapshot state %s, want %s", last.State, StateIdle)
	}
}
