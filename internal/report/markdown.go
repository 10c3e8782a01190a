package report

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const DefaultTitle = "Haiku3 vs Premium Benchmark"

var tableHeader = []string{"Target", "Profile", "Confirmed High-Impact Findings", "Tokens Used", "Est. Cost (USD)"}

type Options struct {
	Title  string
	Source string // artifact location, omitted when empty
	Digest string
}

// Markdown renders the comparison table and takeaways. Output depends only
// on the report and options.
func Markdown(rep *Report, opts Options) []byte {
	p := message.NewPrinter(language.English)
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n\n", title)

	fmt.Fprintf(&b, "| %s |\n", strings.Join(tableHeader, " | "))
	b.WriteString("|" + strings.Repeat("---|", len(tableHeader)) + "\n")
	for _, g := range rep.Groups {
		for _, rec := range g.Records {
			cell := findingsCell(rec.Findings)
			if g.SameAsBaseline(rec) {
				cell = "Same as " + string(g.Baseline().Profile)
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				escapeCell(g.Target),
				escapeCell(string(rec.Profile)),
				cell,
				p.Sprintf("%d", rec.TokensUsed),
				formatUSD(rec.EstimatedCostUSD),
			)
		}
	}

	b.WriteString("\n## Takeaways\n\n")
	if len(rep.Groups) == 0 {
		b.WriteString("- No benchmark records.\n")
	}
	for _, g := range rep.Groups {
		if len(g.Comparisons) == 0 {
			fmt.Fprintf(&b, "- **%s** (%s): %s.\n", escapeCell(g.Target), g.Baseline().Profile, NoComparisonNote)
			continue
		}
		for _, c := range g.Comparisons {
			fmt.Fprintf(&b, "- **%s** (%s vs %s): %s. %s\n",
				escapeCell(c.Target), c.Other.Profile, c.Baseline.Profile, escapeCell(c.Note), deltaSentence(p, c))
		}
	}

	if opts.Source != "" {
		b.WriteString("\n")
		if opts.Digest != "" {
			fmt.Fprintf(&b, "_Source: `%s` (sha256 `%s`)_\n", opts.Source, opts.Digest)
		} else {
			fmt.Fprintf(&b, "_Source: `%s`_\n", opts.Source)
		}
	}
	return b.Bytes()
}

func deltaSentence(p *message.Printer, c Comparison) string {
	tokens := p.Sprintf("Tokens %d vs %d (%s", c.Other.TokensUsed, c.Baseline.TokensUsed, signedInt(p, c.TokenDelta))
	if pct, ok := c.TokenDeltaPct(); ok {
		tokens += fmt.Sprintf(", %+.1f%%", pct)
	}
	tokens += ")."
	cost := fmt.Sprintf("Est. cost %s vs %s (%s).",
		formatUSD(c.Other.EstimatedCostUSD), formatUSD(c.Baseline.EstimatedCostUSD), signedUSD(c.CostDelta))
	return tokens + " " + cost
}

func findingsCell(findings []string) string {
	cleaned := make([]string, 0, len(findings))
	for _, f := range findings {
		if f = strings.TrimSpace(f); f != "" {
			cleaned = append(cleaned, escapeCell(f))
		}
	}
	if len(cleaned) == 0 {
		return "None"
	}
	return strings.Join(cleaned, "; ")
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

func formatUSD(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func signedUSD(v float64) string {
	if math.Abs(v) < 0.005 {
		return "+$0.00"
	}
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("+$%.2f", v)
}

func signedInt(p *message.Printer, v int64) string {
	if v < 0 {
		return p.Sprintf("-%d", -v)
	}
	return p.Sprintf("+%d", v)
}
