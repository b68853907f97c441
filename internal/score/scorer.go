package score

import (
	"fmt"

	"github.com/ppiankov/clausewise/internal/classify"
	"github.com/ppiankov/clausewise/internal/model"
)

// denseThreshold is the number of categories at which a single clause is
// reported as touching many risk areas at once
const denseThreshold = 3

// Scorer tallies categories over extracted clauses and generates signals
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate builds the summary for a clause list
func (s *Scorer) Calculate(clauses []model.Clause) model.Summary {
	counts, flagged := s.tally(clauses)

	summary := model.Summary{
		Clauses:    len(clauses),
		Flagged:    flagged,
		Categories: counts,
		Signals:    []model.Signal{},
	}

	if len(clauses) == 0 {
		summary.Signals = append(summary.Signals, model.Signal{
			Type:        model.SignalNoClauses,
			Severity:    model.SeverityWarning,
			Description: "No clauses extracted",
			Data: map[string]interface{}{
				"min_clause_chars": classify.MinClauseRunes + 1,
			},
		})
		return summary
	}

	summary.Signals = append(summary.Signals, s.flaggedRatio(len(clauses), flagged))
	summary.Signals = append(summary.Signals, s.missingCategories(counts)...)
	summary.Signals = append(summary.Signals, s.denseClauses(clauses)...)

	if clauses[0].Marker == "" {
		summary.Signals = append(summary.Signals, model.Signal{
			Type:        model.SignalUnnumberedLead,
			Severity:    model.SeverityInfo,
			Description: "Text before the first numbered heading was treated as clause 1",
			Data: map[string]interface{}{
				"clause": clauses[0].Index,
			},
		})
	}

	return summary
}

// tally counts clauses per category in taxonomy order, with None last
func (s *Scorer) tally(clauses []model.Clause) ([]model.CategoryCount, int) {
	categories := classify.Categories()
	counts := make([]model.CategoryCount, 0, len(categories)+1)
	for _, cat := range categories {
		counts = append(counts, model.CategoryCount{Category: cat})
	}
	counts = append(counts, model.CategoryCount{Category: model.CategoryNone})

	flagged := 0
	for _, clause := range clauses {
		if !clause.Flagged() {
			counts[len(counts)-1].Count++
			continue
		}
		flagged++
		for i := range categories {
			if clause.HasCategory(counts[i].Category) {
				counts[i].Count++
			}
		}
	}

	return counts, flagged
}

// flaggedRatio reports the share of clauses carrying at least one category
func (s *Scorer) flaggedRatio(total, flagged int) model.Signal {
	ratio := float64(flagged) / float64(total)

	severity := model.SeverityInfo
	if flagged < total {
		severity = model.SeverityWarning
	}

	return model.Signal{
		Type:        model.SignalFlaggedRatio,
		Severity:    severity,
		Description: fmt.Sprintf("%d of %d clauses matched a risk category", flagged, total),
		Data: map[string]interface{}{
			"clauses": total,
			"flagged": flagged,
			"ratio":   ratio,
			"formula": "flagged_clauses / clauses",
		},
	}
}

// missingCategories reports taxonomy categories no clause triggered
func (s *Scorer) missingCategories(counts []model.CategoryCount) []model.Signal {
	var signals []model.Signal
	for _, cc := range counts {
		if cc.Category == model.CategoryNone || cc.Count > 0 {
			continue
		}
		signals = append(signals, model.Signal{
			Type:        model.SignalMissingCategory,
			Severity:    model.SeverityInfo,
			Description: fmt.Sprintf("No clause mentions %s terms", cc.Category),
			Data: map[string]interface{}{
				"category": string(cc.Category),
				"triggers": classify.Triggers(cc.Category),
			},
		})
	}
	return signals
}

// denseClauses reports clauses that matched many categories at once
func (s *Scorer) denseClauses(clauses []model.Clause) []model.Signal {
	var signals []model.Signal
	for _, clause := range clauses {
		if len(clause.Categories) < denseThreshold {
			continue
		}
		names := make([]string, len(clause.Categories))
		for i, cat := range clause.Categories {
			names[i] = string(cat)
		}
		signals = append(signals, model.Signal{
			Type:        model.SignalDenseClause,
			Severity:    model.SeverityWarning,
			Description: fmt.Sprintf("Clause %d matched %d categories", clause.Index, len(clause.Categories)),
			Data: map[string]interface{}{
				"clause":     clause.Index,
				"categories": names,
				"threshold":  denseThreshold,
			},
		})
	}
	return signals
}
