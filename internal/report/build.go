package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/K0NGR3SS/profilebench/internal/compare"
	"github.com/K0NGR3SS/profilebench/internal/models"
)

const (
	NoDeltaNote      = "Same findings (no delta)"
	NoComparisonNote = "No comparison profile"
)

// Comparison is one non-baseline profile measured against the baseline for
// a single target. Deltas are Other minus Baseline.
type Comparison struct {
	Target     string
	Baseline   models.Record
	Other      models.Record
	Delta      compare.Delta
	Note       string
	TokenDelta int64
	CostDelta  float64
}

// TokenDeltaPct is the relative token change, ok is false when the baseline
// used no tokens.
func (c Comparison) TokenDeltaPct() (float64, bool) {
	if c.Baseline.TokensUsed == 0 {
		return 0, false
	}
	return float64(c.TokenDelta) / float64(c.Baseline.TokensUsed) * 100, true
}

type TargetGroup struct {
	Target      string
	Records     []models.Record // baseline first
	Comparisons []Comparison
}

// SameAsBaseline reports whether rec's findings equal the baseline's for
// this group. The baseline itself is never "same as" anything.
func (g TargetGroup) SameAsBaseline(rec models.Record) bool {
	for _, c := range g.Comparisons {
		if c.Other.Profile == rec.Profile {
			return c.Delta.Equal()
		}
	}
	return false
}

func (g TargetGroup) Baseline() models.Record {
	return g.Records[0]
}

type Report struct {
	Groups []TargetGroup
}

func (r *Report) Comparisons() []Comparison {
	var out []Comparison
	for _, g := range r.Groups {
		out = append(out, g.Comparisons...)
	}
	return out
}

// Build groups records by target in first-appearance order and compares each
// profile against the first one in profileOrder. Records are not modified.
func Build(records []models.Record, profileOrder []models.Profile) *Report {
	rank := make(map[models.Profile]int, len(profileOrder))
	for i, p := range profileOrder {
		rank[p] = i
	}

	var order []string
	byTarget := map[string][]models.Record{}
	for _, rec := range records {
		if _, ok := byTarget[rec.Target]; !ok {
			order = append(order, rec.Target)
		}
		byTarget[rec.Target] = append(byTarget[rec.Target], rec)
	}

	rep := &Report{}
	for _, target := range order {
		recs := append([]models.Record(nil), byTarget[target]...)
		sort.SliceStable(recs, func(i, j int) bool {
			ri, iKnown := rank[recs[i].Profile]
			rj, jKnown := rank[recs[j].Profile]
			switch {
			case iKnown && jKnown:
				return ri < rj
			case iKnown != jKnown:
				return iKnown
			default:
				return recs[i].Profile < recs[j].Profile
			}
		})

		group := TargetGroup{Target: target, Records: recs}
		base := recs[0]
		for _, other := range recs[1:] {
			delta := compare.Diff(base.Findings, other.Findings)
			group.Comparisons = append(group.Comparisons, Comparison{
				Target:     target,
				Baseline:   base,
				Other:      other,
				Delta:      delta,
				Note:       Note(base.Profile, other.Profile, delta),
				TokenDelta: other.TokensUsed - base.TokensUsed,
				CostDelta:  other.EstimatedCostUSD - base.EstimatedCostUSD,
			})
		}
		rep.Groups = append(rep.Groups, group)
	}
	return rep
}

// Note is the one-line verdict for a comparison: the fixed no-delta phrase
// when the sets match, otherwise the findings only one side confirmed.
func Note(baseline, other models.Profile, d compare.Delta) string {
	if d.Equal() {
		return NoDeltaNote
	}
	var parts []string
	if len(d.OnlyA) > 0 {
		parts = append(parts, fmt.Sprintf("%s only: %s", baseline, strings.Join(d.OnlyA, "; ")))
	}
	if len(d.OnlyB) > 0 {
		parts = append(parts, fmt.Sprintf("%s only: %s", other, strings.Join(d.OnlyB, "; ")))
	}
	return strings.Join(parts, ". ")
}
