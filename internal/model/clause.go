package model

// Clause represents a numbered span of contract text and the risk
// categories its text triggered
type Clause struct {
	Index      int        `json:"index"`            // 1-based position in source order
	Marker     string     `json:"marker,omitempty"` // Digits of the heading marker that preceded the clause (e.g. "5")
	Text       string     `json:"text"`             // Trimmed clause text
	Categories []Category `json:"categories"`       // Matched categories in taxonomy order (never contains CategoryNone)
}

// Flagged reports whether the clause matched at least one category
func (c Clause) Flagged() bool {
	return len(c.Categories) > 0
}

// Labels returns the categories for display, substituting the None
// sentinel when nothing matched
func (c Clause) Labels() []Category {
	if len(c.Categories) == 0 {
		return []Category{CategoryNone}
	}
	out := make([]Category, len(c.Categories))
	copy(out, c.Categories)
	return out
}

// HasCategory reports whether the clause matched the given category
func (c Clause) HasCategory(cat Category) bool {
	for _, got := range c.Categories {
		if got == cat {
			return true
		}
	}
	return false
}

// Category is a risk category label
type Category string

const (
	CategoryConfidentiality  Category = "Confidentiality"
	CategoryTermination      Category = "Termination/Notice"
	CategoryIndemnity        Category = "Indemnity"
	CategoryLiability        Category = "Liability/Cap"
	CategoryArbitration      Category = "Arbitration/Law"
	CategoryWaiverAssignment Category = "Waiver/Assignment"

	// CategoryNone is shown for clauses that matched nothing. It is a
	// display label only and never stored on a Clause.
	CategoryNone Category = "None"
)

func (c Category) String() string {
	return string(c)
}
