package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ppiankov/clausewise/internal/pipeline"
	"github.com/ppiankov/clausewise/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	batchPDF     bool
	batchFetch   fetchFlags
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list-file>",
	Short: "Extract clauses from many documents in parallel",
	Long: `Batch extracts clauses from every document named in a list file:
- One document path or URL per line; blank lines and # comments are skipped
- Duplicate entries are processed once
- Documents run in parallel with a configurable worker count
- URLs on the same host are rate limited
- A JSON and a Markdown report are written per document

A document that fails is reported and counted; the others still run.

Example:
  clausewise batch contracts.txt
  clausewise batch contracts.txt --concurrency 8 --output-dir ./reports --pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./clausewise-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "batch-timeout", 10*time.Minute, "total timeout for the batch")
	batchCmd.Flags().BoolVar(&batchPDF, "pdf", false, "also write a PDF report per document")

	batchFetch.register(batchCmd, "timeout for each document fetch")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := batchFetch.apply(cmd, cfg); err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	log.Info().
		Str("input", file).
		Int("workers", cfg.Concurrency.Workers).
		Str("output_dir", outputDir).
		Dur("timeout", batchTimeout).
		Msg("starting batch")

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers, cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	out := cmd.OutOrStdout()
	successCount := 0
	failureCount := 0

	for _, res := range results {
		if res.Error != nil {
			failureCount++
			fmt.Fprintf(out, "✗ %s: %v\n", res.Source, res.Error)
			continue
		}

		outputs := batchOutputs(outputDir, res.Index, res.Result.Source.Subject)
		if !batchPDF {
			outputs.PDF = ""
		}
		if err := p.WriteOutputs(res.Result, outputs); err != nil {
			failureCount++
			fmt.Fprintf(out, "✗ %s: %v\n", res.Source, err)
			continue
		}

		successCount++
		fmt.Fprintf(out, "✓ %s: extracted %d clauses (%d flagged)\n", res.Source, res.Result.Summary.Clauses, res.Result.Summary.Flagged)
	}

	fmt.Fprintf(out, "\nTotal: %d  Success: %d  Failures: %d  Output: %s\n", len(results), successCount, failureCount, outputDir)

	if successCount == 0 && failureCount > 0 {
		return fmt.Errorf("all %d documents failed", failureCount)
	}
	return nil
}

// batchOutputs names the report files for one batch entry. The list
// position keeps names unique when subjects collide.
func batchOutputs(dir string, index int, subject string) pipeline.Outputs {
	base := fmt.Sprintf("%03d-%s", index+1, sanitizeFilename(subject))
	return pipeline.Outputs{
		JSON:     filepath.Join(dir, base+".json"),
		Markdown: filepath.Join(dir, base+".md"),
		PDF:      filepath.Join(dir, base+".pdf"),
	}
}

var filenameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
	" ", "-",
)

const maxFilenameBytes = 100

// sanitizeFilename sanitizes a string for use as a filename
func sanitizeFilename(s string) string {
	s = strings.TrimSuffix(s, filepath.Ext(s))
	s = filenameReplacer.Replace(strings.TrimSpace(s))
	s = strings.Trim(s, ".-_")

	if len(s) > maxFilenameBytes {
		cut := maxFilenameBytes
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	if s == "" {
		s = "document"
	}

	return s
}
