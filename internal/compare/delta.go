package compare

import "strings"

// Delta is the set difference between two finding lists. Entries keep the
// spelling of their first occurrence and the order of the input list.
type Delta struct {
	OnlyA  []string
	OnlyB  []string
	Shared []string
}

func (d Delta) Equal() bool {
	return len(d.OnlyA) == 0 && len(d.OnlyB) == 0
}

// Normalize is the equality key for a finding: trimmed and case-folded.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func Diff(a, b []string) Delta {
	keysA, uniqA := index(a)
	keysB, uniqB := index(b)

	var d Delta
	for _, f := range uniqA {
		if _, ok := keysB[Normalize(f)]; ok {
			d.Shared = append(d.Shared, f)
		} else {
			d.OnlyA = append(d.OnlyA, f)
		}
	}
	for _, f := range uniqB {
		if _, ok := keysA[Normalize(f)]; !ok {
			d.OnlyB = append(d.OnlyB, f)
		}
	}
	return d
}

func index(findings []string) (map[string]struct{}, []string) {
	seen := make(map[string]struct{}, len(findings))
	uniq := make([]string, 0, len(findings))
	for _, f := range findings {
		key := Normalize(f)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		uniq = append(uniq, strings.TrimSpace(f))
	}
	return seen, uniq
}
