package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ppiankov/clausewise/internal/acquire"
	"github.com/ppiankov/clausewise/internal/model"
)

// Analyzer runs one extraction
type Analyzer interface {
	Analyze(ctx context.Context, in acquire.Input) (*model.Result, error)
}

// DocumentJob analyzes one document path or URL
type DocumentJob struct {
	Index    int
	Source   string
	Analyzer Analyzer
	Limiter  *Limiter
}

// Execute executes the document job
func (j *DocumentJob) Execute(ctx context.Context) Result {
	in := InputFor(j.Source)

	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Source); err != nil {
			return &DocumentResult{Index: j.Index, Source: j.Source, Error: fmt.Errorf("rate limit: %w", err)}
		}
	}

	result, err := j.Analyzer.Analyze(ctx, in)
	if err != nil {
		log.Debug().Err(err).Str("source", j.Source).Msg("document failed")
		return &DocumentResult{Index: j.Index, Source: j.Source, Error: err}
	}

	return &DocumentResult{Index: j.Index, Source: j.Source, Result: result}
}

// DocumentResult represents the result of a document job
type DocumentResult struct {
	Index  int // Position in the batch list
	Source string
	Result *model.Result
	Error  error
}

// GetError returns the error from the document result
func (r *DocumentResult) GetError() error {
	return r.Error
}

// IsRemote reports whether a batch entry names a URL rather than a file
func IsRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// InputFor maps a batch entry to an acquisition input
func InputFor(source string) acquire.Input {
	if IsRemote(source) {
		return acquire.Input{URL: source}
	}
	return acquire.Input{Path: source}
}

// BatchProcessor analyzes multiple documents concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a new batch processor. URL entries share a
// per-host rate limiter.
func NewBatchProcessor(analyzer Analyzer, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
		limiter:     NewLimiter(requestsPerSecond, burst),
	}
}

// ProcessDocuments analyzes every source and returns results in input
// order. A failing document never stops the others.
func (b *BatchProcessor) ProcessDocuments(ctx context.Context, sources []string) []*DocumentResult {
	if len(sources) == 0 {
		return []*DocumentResult{}
	}

	jobs := make([]Job, len(sources))
	for i, source := range sources {
		jobs[i] = &DocumentJob{
			Index:    i,
			Source:   source,
			Analyzer: b.analyzer,
			Limiter:  b.limiter,
		}
	}

	pool := NewPoolWithContext(ctx, b.concurrency)
	results := pool.Run(jobs)

	done := make(map[int]bool, len(results))
	docResults := make([]*DocumentResult, 0, len(sources))
	for _, result := range results {
		dr := result.(*DocumentResult)
		done[dr.Index] = true
		docResults = append(docResults, dr)
	}

	// Jobs dropped by cancellation still get a result
	for i, source := range sources {
		if done[i] {
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		docResults = append(docResults, &DocumentResult{Index: i, Source: source, Error: fmt.Errorf("not processed: %w", err)})
	}

	sort.Slice(docResults, func(i, j int) bool {
		return docResults[i].Index < docResults[j].Index
	})

	return docResults
}

// ProcessFile reads sources from a list file and analyzes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*DocumentResult, error) {
	sources, err := ReadSourcesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}

	return b.ProcessDocuments(ctx, sources), nil
}

// ReadSourcesFromFile reads document paths or URLs from a file, one per
// line. Blank lines and # comments are skipped and duplicates removed.
func ReadSourcesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sources, nil
}
