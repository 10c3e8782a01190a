package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "sql injection", Normalize("  SQL Injection\t"))
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name   string
		a, b   []string
		onlyA  []string
		onlyB  []string
		shared []string
		equal  bool
	}{
		{
			name:   "identical",
			a:      []string{"Auth bypass", "SQLi"},
			b:      []string{"Auth bypass", "SQLi"},
			shared: []string{"Auth bypass", "SQLi"},
			equal:  true,
		},
		{
			name:   "case and whitespace insensitive",
			a:      []string{"Auth bypass ", "sqli"},
			b:      []string{" SQLi", "AUTH BYPASS"},
			shared: []string{"Auth bypass", "sqli"},
			equal:  true,
		},
		{
			name:   "order does not matter",
			a:      []string{"B", "A"},
			b:      []string{"A", "B"},
			shared: []string{"B", "A"},
			equal:  true,
		},
		{
			name:   "incremental finding on a",
			a:      []string{"A", "B"},
			b:      []string{"A"},
			onlyA:  []string{"B"},
			shared: []string{"A"},
		},
		{
			name:   "both sides differ",
			a:      []string{"A", "B"},
			b:      []string{"A", "C"},
			onlyA:  []string{"B"},
			onlyB:  []string{"C"},
			shared: []string{"A"},
		},
		{
			name:   "duplicates collapse",
			a:      []string{"A", "a", "A "},
			b:      []string{"A"},
			shared: []string{"A"},
			equal:  true,
		},
		{
			name:  "blank entries ignored",
			a:     []string{"", "  "},
			b:     nil,
			equal: true,
		},
		{
			name:  "empty vs non-empty",
			a:     nil,
			b:     []string{"XSS"},
			onlyB: []string{"XSS"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Diff(tt.a, tt.b)
			assert.Equal(t, tt.onlyA, d.OnlyA)
			assert.Equal(t, tt.onlyB, d.OnlyB)
			assert.Equal(t, tt.shared, d.Shared)
			assert.Equal(t, tt.equal, d.Equal())
		})
	}
}
