package model

import "time"

// Result is the outcome of one extraction run. It is returned to the
// caller and owned by it; nothing keeps a reference after the run.
type Result struct {
	ID        string    `json:"id"`         // Unique run identifier
	Source    Source    `json:"source"`     // Where the text came from
	CreatedAt time.Time `json:"created_at"` // When the extraction ran

	Clauses []Clause `json:"clauses"` // Extracted clauses in source order
	Summary Summary  `json:"summary"` // Category tallies and signals
}

// Source describes the inputs that produced the raw text
type Source struct {
	Subject     string `json:"subject"`                // Human-readable name (file base name, URL subject, "sample")
	Path        string `json:"path,omitempty"`         // Local document path
	URL         string `json:"url,omitempty"`          // Remote document URL
	Format      string `json:"format,omitempty"`       // Document format handler that read the document
	Pasted      bool   `json:"pasted"`                 // Whether pasted text was appended
	Sample      bool   `json:"sample"`                 // Whether the built-in sample was used
	TextBytes   int    `json:"text_bytes"`             // Size of the raw text that was segmented
	FromCache   bool   `json:"from_cache"`             // Document text served from cache
	ContentHash string `json:"content_hash,omitempty"` // SHA-256 of the document bytes
}

// Summary is a transparent tally over the extracted clauses
type Summary struct {
	Clauses    int             `json:"clauses"`    // Number of clauses
	Flagged    int             `json:"flagged"`    // Clauses with at least one category
	Categories []CategoryCount `json:"categories"` // Per-category clause counts in taxonomy order, None last
	Signals    []Signal        `json:"signals"`    // Diagnostic signals
}

// CategoryCount is the number of clauses carrying a category
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// Count returns the tally for a category, or 0 when absent
func (s Summary) Count(cat Category) int {
	for _, cc := range s.Categories {
		if cc.Category == cat {
			return cc.Count
		}
	}
	return 0
}

// Signal represents a diagnostic signal with transparent data
type Signal struct {
	Type        SignalType             `json:"type"`           // Signal classification
	Severity    SignalSeverity         `json:"severity"`       // info, warning
	Description string                 `json:"description"`    // Human-readable description
	Data        map[string]interface{} `json:"data,omitempty"` // Inputs behind the signal
}

// SignalType classifies the type of diagnostic signal
type SignalType string

const (
	SignalNoClauses       SignalType = "no_clauses"       // Nothing survived segmentation
	SignalFlaggedRatio    SignalType = "flagged_ratio"    // Share of clauses with a category
	SignalMissingCategory SignalType = "missing_category" // Category never triggered
	SignalDenseClause     SignalType = "dense_clause"     // Clause matched many categories
	SignalUnnumberedLead  SignalType = "unnumbered_lead"  // Text before the first numbered heading
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo    SignalSeverity = "info"
	SeverityWarning SignalSeverity = "warning"
)
