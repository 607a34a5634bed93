package testsupport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/goliatone/go-nutriform/pkg/model"
)

// StubAnalyzer returns a scripted result or error and records requests.
// When Gate is set, Analyze blocks until it is closed or ctx ends.
type StubAnalyzer struct {
	Result model.AnalysisResult
	Err    error
	Panic  any
	Gate   chan struct{}

	// Started, when set, receives a value as each call begins.
	Started chan struct{}

	mu       sync.Mutex
	requests []model.AnalysisRequest
}

func (s *StubAnalyzer) Analyze(ctx context.Context, req model.AnalysisRequest) (model.AnalysisResult, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if s.Started != nil {
		s.Started <- struct{}{}
	}
	if s.Gate != nil {
		select {
		case <-s.Gate:
		case <-ctx.Done():
			return model.AnalysisResult{}, ctx.Err()
		}
	}
	if s.Panic != nil {
		panic(s.Panic)
	}
	return s.Result, s.Err
}

// Calls reports how many times Analyze ran.
func (s *StubAnalyzer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Requests returns the received requests in order.
func (s *StubAnalyzer) Requests() []model.AnalysisRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.AnalysisRequest(nil), s.requests...)
}

// AnalysisServer starts an httptest server answering every request with
// status and body. The returned counter tracks how many requests arrived.
func AnalysisServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

// ProteinResult is a one-nutrient result where protein is below target.
func ProteinResult() model.AnalysisResult {
	return model.AnalysisResult{
		Summary: "Protein intake is below your requirement.",
		Comparison: []model.NutrientComparison{
			{Nutrient: "Protein", Consumed: 40, Required: 50, Status: model.StatusLow},
		},
		Recommendations: []string{"Add a serving of legumes."},
	}
}

// ProteinResultJSON is ProteinResult as the service sends it.
const ProteinResultJSON = `{"summary":"Protein intake is below your requirement.","comparison":[{"nutrient":"Protein","consumed":40,"required":50,"status":"low"}],"recommendations":["Add a serving of legumes."]}`
