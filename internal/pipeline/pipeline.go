package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ppiankov/clausewise/internal/acquire"
	"github.com/ppiankov/clausewise/internal/cache"
	"github.com/ppiankov/clausewise/internal/classify"
	"github.com/ppiankov/clausewise/internal/model"
	"github.com/ppiankov/clausewise/internal/score"
)

// Pipeline orchestrates a complete extraction run
type Pipeline struct {
	acquirer   *acquire.Acquirer
	classifier *classify.Classifier
	scorer     *score.Scorer
	renderer   *Renderer
	config     *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	fetcher := acquire.NewFetcher(cfg.HTTP, cfg.Robots.Respect)

	return &Pipeline{
		acquirer:   acquire.NewAcquirer(fetcher, cache.New(cfg.Cache)),
		classifier: classify.NewClassifier(),
		scorer:     score.NewScorer(),
		renderer:   NewRenderer(cfg.Output.Color),
		config:     cfg,
	}
}

// Renderer returns the renderer configured for this pipeline
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// Analyze acquires text for the input, extracts and classifies clauses,
// and summarizes them. Acquisition errors are returned wrapped.
func (p *Pipeline) Analyze(ctx context.Context, in acquire.Input) (*model.Result, error) {
	text, err := p.acquirer.Acquire(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("acquire: %w", err)
	}

	return p.AnalyzeText(text.Raw, text.Source), nil
}

// AnalyzeText runs extraction over already acquired raw text
func (p *Pipeline) AnalyzeText(raw string, src model.Source) *model.Result {
	clauses := p.classifier.Extract(raw)

	result := &model.Result{
		ID:        uuid.NewString(),
		Source:    src,
		CreatedAt: time.Now().UTC(),
		Clauses:   clauses,
		Summary:   p.scorer.Calculate(clauses),
	}

	log.Debug().
		Str("id", result.ID).
		Str("subject", src.Subject).
		Int("clauses", result.Summary.Clauses).
		Int("flagged", result.Summary.Flagged).
		Msg("extraction complete")

	return result
}

// Outputs names the files a result is written to. Empty paths are skipped.
type Outputs struct {
	JSON     string
	Markdown string
	PDF      string
}

// WriteOutputs renders the result to every requested file
func (p *Pipeline) WriteOutputs(result *model.Result, out Outputs) error {
	if out.JSON != "" {
		if err := p.renderer.RenderJSON(result, out.JSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		log.Info().Str("path", out.JSON).Msg("wrote JSON")
	}

	if out.Markdown != "" {
		if err := p.renderer.RenderMarkdown(result, out.Markdown); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		log.Info().Str("path", out.Markdown).Msg("wrote Markdown")
	}

	if out.PDF != "" {
		if err := p.renderer.RenderPDF(result, out.PDF); err != nil {
			return fmt.Errorf("render PDF: %w", err)
		}
		log.Info().Str("path", out.PDF).Msg("wrote PDF")
	}

	return nil
}
