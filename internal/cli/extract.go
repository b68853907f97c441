package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ppiankov/clausewise/internal/acquire"
	"github.com/ppiankov/clausewise/internal/model"
	"github.com/ppiankov/clausewise/internal/pipeline"
	"github.com/ppiankov/clausewise/internal/util"
)

var (
	pastedText   string
	textFile     string
	docURL       string
	useSample    bool
	outFormat    string
	outJSON      string
	outMD        string
	outPDF       string
	noColor      bool
	extractFetch fetchFlags
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract numbered clauses and tag them with risk categories",
	Long: `Extract reads a contract and lists its numbered clauses:
- Reads a PDF, plain text or HTML document, a document URL, or pasted text
- Splits the text on line-start headings such as "1. " or "12. "
- Drops fragments of 20 characters or fewer
- Tags each clause with every risk category whose trigger words it contains

Document text comes first; pasted text (--text, --text-file or --sample)
is appended after it.

Example:
  clausewise extract contract.pdf
  clausewise extract --sample
  clausewise extract terms.txt --text "7. Additional clause pasted from email."
  clausewise extract --url https://example.com/terms.html --format json
  clausewise extract contract.pdf --json out.json --md out.md --pdf out.pdf`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	// Input flags
	extractCmd.Flags().StringVar(&pastedText, "text", "", "pasted text appended after the document text")
	extractCmd.Flags().StringVar(&textFile, "text-file", "", "read pasted text from a file ('-' for stdin)")
	extractCmd.Flags().StringVar(&docURL, "url", "", "fetch the document from a URL")
	extractCmd.Flags().BoolVar(&useSample, "sample", false, "use the built-in sample contract as pasted text")

	// Output flags
	extractCmd.Flags().StringVarP(&outFormat, "format", "f", "text", "terminal output format (text, json, markdown, pretty)")
	extractCmd.Flags().StringVar(&outJSON, "json", "", "also write JSON to this path")
	extractCmd.Flags().StringVar(&outMD, "md", "", "also write Markdown to this path")
	extractCmd.Flags().StringVar(&outPDF, "pdf", "", "also write a PDF report to this path")
	extractCmd.Flags().BoolVar(&noColor, "no-color", false, "disable coloured badges")

	// Fetch flags
	extractFetch.register(extractCmd, "timeout for fetching and reading the document")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := extractFetch.apply(cmd, cfg); err != nil {
		return err
	}

	if cmd.Flags().Changed("format") {
		cfg.Output.Format = outFormat
	}
	if noColor {
		cfg.Output.Color = false
	}

	format, err := pipeline.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	in, err := buildInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.HTTP.Timeout)
	defer cancel()

	log.Debug().
		Str("path", in.Path).
		Str("url", in.URL).
		Bool("pasted", in.Pasted != "").
		Bool("sample", in.Sample).
		Bool("cache", cfg.Cache.Enabled).
		Msg("extracting")

	p := pipeline.NewPipeline(cfg)

	result, err := p.Analyze(ctx, in)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	if err := p.Renderer().Write(cmd.OutOrStdout(), result, format); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return p.WriteOutputs(result, pipeline.Outputs{
		JSON:     outJSON,
		Markdown: outMD,
		PDF:      outPDF,
	})
}

// fetchFlags holds the fetch overrides one command was given
type fetchFlags struct {
	timeout  time.Duration
	noCache  bool
	noRobots bool
	proxy    string
}

func (f *fetchFlags) register(cmd *cobra.Command, timeoutUsage string) {
	cmd.Flags().DurationVar(&f.timeout, "timeout", 30*time.Second, timeoutUsage)
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the extracted text cache")
	cmd.Flags().BoolVar(&f.noRobots, "ignore-robots", false, "do not consult robots.txt for remote documents")
	cmd.Flags().StringVar(&f.proxy, "proxy", "", "proxy URL for remote documents (overrides HTTP(S)_PROXY)")
}

// apply overrides config values with explicitly set flags
func (f *fetchFlags) apply(cmd *cobra.Command, cfg *model.Config) error {
	if cmd.Flags().Changed("timeout") {
		cfg.HTTP.Timeout = f.timeout
	}
	if f.noCache {
		cfg.Cache.Enabled = false
	}
	if f.noRobots {
		cfg.Robots.Respect = false
	}
	if f.proxy != "" {
		if _, err := util.ParseProxy(f.proxy); err != nil {
			return err
		}
		cfg.HTTP.HTTPProxy = f.proxy
		cfg.HTTP.HTTPSProxy = f.proxy
	}
	return nil
}

// buildInput assembles the acquisition input from flags and arguments
func buildInput(stdin io.Reader, args []string) (acquire.Input, error) {
	in := acquire.Input{
		URL:    docURL,
		Pasted: pastedText,
		Sample: useSample,
	}
	if len(args) == 1 {
		in.Path = args[0]
	}
	if in.Path != "" && in.URL != "" {
		return in, errors.New("give either a document file or --url, not both")
	}

	if textFile != "" {
		if pastedText != "" {
			return in, errors.New("give either --text or --text-file, not both")
		}
		var data []byte
		var err error
		if textFile == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(textFile)
		}
		if err != nil {
			return in, fmt.Errorf("read pasted text: %w", err)
		}
		in.Pasted = string(data)
	}

	if in.Sample && in.Pasted != "" {
		log.Warn().Msg("--sample replaces pasted text")
	}

	return in, nil
}
