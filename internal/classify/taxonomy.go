package classify

import "github.com/ppiankov/clausewise/internal/model"

// Rule binds a risk category to its lowercase trigger substrings
type Rule struct {
	Category model.Category
	Triggers []string
}

// taxonomy is the fixed risk table. Order is the order labels are
// reported in.
var taxonomy = []Rule{
	{model.CategoryConfidentiality, []string{"confidential", "non-disclosure", "nda", "privacy"}},
	{model.CategoryTermination, []string{"terminate", "termination", "notice", "days notice"}},
	{model.CategoryIndemnity, []string{"indemnify", "indemnification", "hold harmless"}},
	{model.CategoryLiability, []string{"liability", "liable", "consequential", "cap"}},
	{model.CategoryArbitration, []string{"arbitration", "governing law", "jurisdiction", "dispute resolution"}},
	{model.CategoryWaiverAssignment, []string{"waive", "waiver", "assignment"}},
}

// Taxonomy returns a copy of the risk table
func Taxonomy() []Rule {
	out := make([]Rule, len(taxonomy))
	for i, r := range taxonomy {
		out[i] = Rule{
			Category: r.Category,
			Triggers: append([]string(nil), r.Triggers...),
		}
	}
	return out
}

// Categories returns the taxonomy categories in report order, without
// the None sentinel
func Categories() []model.Category {
	out := make([]model.Category, len(taxonomy))
	for i, r := range taxonomy {
		out[i] = r.Category
	}
	return out
}

// Triggers returns the trigger substrings for a category, or nil for an
// unknown category
func Triggers(cat model.Category) []string {
	for _, r := range taxonomy {
		if r.Category == cat {
			return append([]string(nil), r.Triggers...)
		}
	}
	return nil
}
