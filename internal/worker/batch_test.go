package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/clausewise/internal/acquire"
	"github.com/ppiankov/clausewise/internal/model"
)

// mockAnalyzer implements Analyzer and records the inputs it saw
type mockAnalyzer struct {
	failOn string

	mu     sync.Mutex
	inputs []acquire.Input
}

func (m *mockAnalyzer) Analyze(ctx context.Context, in acquire.Input) (*model.Result, error) {
	time.Sleep(5 * time.Millisecond)

	m.mu.Lock()
	m.inputs = append(m.inputs, in)
	m.mu.Unlock()

	source := in.Path + in.URL
	if m.failOn != "" && strings.Contains(source, m.failOn) {
		return nil, errors.New("analyze error")
	}
	return &model.Result{
		ID:     "run-" + source,
		Source: model.Source{Subject: filepath.Base(source)},
	}, nil
}

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "documents.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBatchProcessor_ProcessDocuments(t *testing.T) {
	analyzer := &mockAnalyzer{}
	processor := NewBatchProcessor(analyzer, 2, 0, 0)

	sources := []string{"contracts/msa.pdf", "https://example.com/terms.html", "contracts/nda.txt"}
	results := processor.ProcessDocuments(context.Background(), sources)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for i, res := range results {
		if res.Source != sources[i] {
			t.Errorf("expected result %d for %s, got %s", i, sources[i], res.Source)
		}
		if res.Error != nil {
			t.Errorf("unexpected error for %s: %v", res.Source, res.Error)
		}
		if res.Result == nil {
			t.Errorf("expected result for %s", res.Source)
		}
	}

	var urls, paths int
	for _, in := range analyzer.inputs {
		if in.URL != "" {
			urls++
		}
		if in.Path != "" {
			paths++
		}
	}
	if urls != 1 || paths != 2 {
		t.Errorf("expected 1 URL and 2 paths, got %d and %d", urls, paths)
	}
}

func TestBatchProcessor_ProcessDocuments_PartialFailure(t *testing.T) {
	analyzer := &mockAnalyzer{failOn: "broken"}
	processor := NewBatchProcessor(analyzer, 2, 0, 0)

	results := processor.ProcessDocuments(context.Background(), []string{"good.pdf", "broken.pdf", "also-good.txt"})

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[1].Error == nil {
		t.Error("expected error for broken.pdf")
	}
	if results[1].Result != nil {
		t.Error("expected nil result on error")
	}
	if results[0].Error != nil || results[2].Error != nil {
		t.Error("a failing document must not affect the others")
	}
}

func TestBatchProcessor_ProcessDocuments_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockAnalyzer{}, 2, 0, 0)

	results := processor.ProcessDocuments(context.Background(), []string{})
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessDocuments_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processor := NewBatchProcessor(&mockAnalyzer{}, 1, 0, 0)
	results := processor.ProcessDocuments(ctx, []string{"a.pdf", "b.pdf", "c.pdf"})

	if len(results) != 3 {
		t.Fatalf("expected a result for every document, got %d", len(results))
	}
	for i, res := range results {
		if res.Index != i {
			t.Errorf("expected index %d, got %d", i, res.Index)
		}
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	path := writeList(t, "contracts/msa.pdf\nhttps://example.com/terms\n# comment\n\ncontracts/nda.txt\n")

	processor := NewBatchProcessor(&mockAnalyzer{}, 2, 0, 0)

	results, err := processor.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessFile_NonExistent(t *testing.T) {
	processor := NewBatchProcessor(&mockAnalyzer{}, 2, 0, 0)

	_, err := processor.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "no_such_file.txt"))
	if err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestReadSourcesFromFile(t *testing.T) {
	path := writeList(t, `contracts/msa.pdf
# comment
https://example.com/terms.html

contracts/msa.pdf
  contracts/nda.txt   `)

	sources, err := ReadSourcesFromFile(path)
	if err != nil {
		t.Fatalf("ReadSourcesFromFile failed: %v", err)
	}

	expected := []string{"contracts/msa.pdf", "https://example.com/terms.html", "contracts/nda.txt"}
	if len(sources) != len(expected) {
		t.Fatalf("expected %d sources, got %d", len(expected), len(sources))
	}
	for i, s := range sources {
		if s != expected[i] {
			t.Errorf("expected %s at index %d, got %s", expected[i], i, s)
		}
	}
}

func TestInputFor(t *testing.T) {
	tests := []struct {
		source string
		want   acquire.Input
	}{
		{"contract.pdf", acquire.Input{Path: "contract.pdf"}},
		{"/abs/path/terms.txt", acquire.Input{Path: "/abs/path/terms.txt"}},
		{"https://example.com/a.pdf", acquire.Input{URL: "https://example.com/a.pdf"}},
		{"HTTP://EXAMPLE.COM/A", acquire.Input{URL: "HTTP://EXAMPLE.COM/A"}},
	}

	for _, tt := range tests {
		if got := InputFor(tt.source); got != tt.want {
			t.Errorf("InputFor(%q) = %+v, want %+v", tt.source, got, tt.want)
		}
	}
}

func TestDocumentResult_GetError(t *testing.T) {
	r1 := &DocumentResult{Source: "a.pdf"}
	if r1.GetError() != nil {
		t.Errorf("expected nil error, got %v", r1.GetError())
	}

	expected := errors.New("extract failed")
	r2 := &DocumentResult{Source: "a.pdf", Error: expected}
	if r2.GetError() != expected {
		t.Errorf("expected %v, got %v", expected, r2.GetError())
	}
}
