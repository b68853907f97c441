package score

import (
	"testing"

	"github.com/ppiankov/clausewise/internal/model"
)

func clause(index int, marker string, cats ...model.Category) model.Clause {
	if cats == nil {
		cats = []model.Category{}
	}
	return model.Clause{
		Index:      index,
		Marker:     marker,
		Text:       "Clause text long enough to count.",
		Categories: cats,
	}
}

func findSignals(summary model.Summary, typ model.SignalType) []model.Signal {
	var out []model.Signal
	for _, s := range summary.Signals {
		if s.Type == typ {
			out = append(out, s)
		}
	}
	return out
}

func TestScorer_Calculate_Tally(t *testing.T) {
	scorer := NewScorer()

	clauses := []model.Clause{
		clause(1, "1", model.CategoryConfidentiality),
		clause(2, "2", model.CategoryIndemnity, model.CategoryArbitration),
		clause(3, "3"),
		clause(4, "4", model.CategoryConfidentiality),
	}

	summary := scorer.Calculate(clauses)

	if summary.Clauses != 4 {
		t.Errorf("expected 4 clauses, got %d", summary.Clauses)
	}
	if summary.Flagged != 3 {
		t.Errorf("expected 3 flagged, got %d", summary.Flagged)
	}

	want := map[model.Category]int{
		model.CategoryConfidentiality:  2,
		model.CategoryTermination:      0,
		model.CategoryIndemnity:        1,
		model.CategoryLiability:        0,
		model.CategoryArbitration:      1,
		model.CategoryWaiverAssignment: 0,
		model.CategoryNone:             1,
	}
	if len(summary.Categories) != len(want) {
		t.Fatalf("expected %d category counts, got %d", len(want), len(summary.Categories))
	}
	for cat, n := range want {
		if got := summary.Count(cat); got != n {
			t.Errorf("%s: expected %d, got %d", cat, n, got)
		}
	}

	if last := summary.Categories[len(summary.Categories)-1].Category; last != model.CategoryNone {
		t.Errorf("expected None to be listed last, got %s", last)
	}
}

func TestScorer_Calculate_NoneCountPlusFlaggedEqualsTotal(t *testing.T) {
	scorer := NewScorer()

	clauses := []model.Clause{
		clause(1, "1"),
		clause(2, "2", model.CategoryLiability),
		clause(3, "3"),
	}
	summary := scorer.Calculate(clauses)

	if summary.Flagged+summary.Count(model.CategoryNone) != summary.Clauses {
		t.Errorf("flagged (%d) + none (%d) != clauses (%d)",
			summary.Flagged, summary.Count(model.CategoryNone), summary.Clauses)
	}
}

func TestScorer_Calculate_EmptyClauses(t *testing.T) {
	scorer := NewScorer()

	summary := scorer.Calculate(nil)

	if summary.Clauses != 0 {
		t.Errorf("expected 0 clauses, got %d", summary.Clauses)
	}
	signals := findSignals(summary, model.SignalNoClauses)
	if len(signals) != 1 {
		t.Fatalf("expected one no_clauses signal, got %d", len(signals))
	}
	if signals[0].Severity != model.SeverityWarning {
		t.Errorf("expected warning severity, got %s", signals[0].Severity)
	}
}

func TestScorer_Calculate_MissingCategories(t *testing.T) {
	scorer := NewScorer()

	summary := scorer.Calculate([]model.Clause{
		clause(1, "1", model.CategoryConfidentiality, model.CategoryTermination),
	})

	missing := findSignals(summary, model.SignalMissingCategory)
	if len(missing) != 4 {
		t.Errorf("expected 4 missing categories, got %d", len(missing))
	}
	for _, s := range missing {
		if s.Data["category"] == string(model.CategoryConfidentiality) {
			t.Error("Confidentiality was matched and must not be reported missing")
		}
	}
}

func TestScorer_Calculate_DenseClause(t *testing.T) {
	scorer := NewScorer()

	summary := scorer.Calculate([]model.Clause{
		clause(1, "1", model.CategoryIndemnity, model.CategoryLiability, model.CategoryArbitration),
		clause(2, "2", model.CategoryIndemnity),
	})

	dense := findSignals(summary, model.SignalDenseClause)
	if len(dense) != 1 {
		t.Fatalf("expected one dense_clause signal, got %d", len(dense))
	}
	if dense[0].Data["clause"] != 1 {
		t.Errorf("expected clause 1, got %v", dense[0].Data["clause"])
	}
}

func TestScorer_Calculate_UnnumberedLead(t *testing.T) {
	scorer := NewScorer()

	withLead := scorer.Calculate([]model.Clause{clause(1, ""), clause(2, "1")})
	if len(findSignals(withLead, model.SignalUnnumberedLead)) != 1 {
		t.Error("expected unnumbered_lead signal when clause 1 has no marker")
	}

	numbered := scorer.Calculate([]model.Clause{clause(1, "1")})
	if len(findSignals(numbered, model.SignalUnnumberedLead)) != 0 {
		t.Error("did not expect unnumbered_lead signal for numbered clauses")
	}
}

func TestScorer_Calculate_FlaggedRatioSeverity(t *testing.T) {
	scorer := NewScorer()

	all := scorer.Calculate([]model.Clause{clause(1, "1", model.CategoryIndemnity)})
	if s := findSignals(all, model.SignalFlaggedRatio); len(s) != 1 || s[0].Severity != model.SeverityInfo {
		t.Errorf("expected info flagged_ratio when every clause is flagged, got %+v", s)
	}

	some := scorer.Calculate([]model.Clause{clause(1, "1", model.CategoryIndemnity), clause(2, "2")})
	if s := findSignals(some, model.SignalFlaggedRatio); len(s) != 1 || s[0].Severity != model.SeverityWarning {
		t.Errorf("expected warning flagged_ratio when a clause is unflagged, got %+v", s)
	}
}
