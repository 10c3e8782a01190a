package ui

import (
	"strings"

	"github.com/K0NGR3SS/profilebench/internal/models"
	"github.com/K0NGR3SS/profilebench/internal/report"
	"github.com/pterm/pterm"
)

// ComparisonRows builds the terminal table, header first.
func ComparisonRows(rep *report.Report) [][]string {
	data := [][]string{
		{"Target", "Profile", "Findings", "Tokens Used", "Est. Cost (USD)", "Note"},
	}
	for _, g := range rep.Groups {
		for i, rec := range g.Records {
			note := ""
			if i == 0 {
				note = pterm.FgGray.Sprint("baseline")
				if len(g.Comparisons) == 0 {
					note = pterm.FgGray.Sprint(report.NoComparisonNote)
				}
			}
			for _, c := range g.Comparisons {
				if c.Other.Profile != rec.Profile {
					continue
				}
				if c.Delta.Equal() {
					note = pterm.FgGreen.Sprint(c.Note)
				} else {
					note = pterm.FgYellow.Sprint(c.Note)
				}
			}
			data = append(data, []string{
				pterm.FgCyan.Sprint(g.Target),
				profileLabel(rec.Profile),
				strings.Join(rec.Findings, "\n"),
				pterm.Sprintf("%d", rec.TokensUsed),
				pterm.Sprintf("$%.2f", rec.EstimatedCostUSD),
				note,
			})
		}
	}
	return data
}

func PrintComparison(rep *report.Report) {
	if len(rep.Groups) == 0 {
		pterm.Warning.Println("No benchmark records to compare.")
		return
	}

	deltas := 0
	for _, c := range rep.Comparisons() {
		if !c.Delta.Equal() {
			deltas++
		}
	}
	if deltas == 0 {
		pterm.Success.Printf("Compared %d target(s): every profile confirmed the same findings.\n\n", len(rep.Groups))
	} else {
		pterm.Warning.Printf("Compared %d target(s): %d comparison(s) with finding deltas.\n\n", len(rep.Groups), deltas)
	}

	_ = pterm.DefaultTable.WithHasHeader().WithData(ComparisonRows(rep)).Render()
}

func profileLabel(p models.Profile) string {
	switch p {
	case models.ProfilePremium:
		return pterm.FgMagenta.Sprint(string(p))
	case models.ProfileBreadth:
		return pterm.FgBlue.Sprint(string(p))
	default:
		return string(p)
	}
}

func StartSpinner(text string) *pterm.SpinnerPrinter {
	spinner, _ := pterm.DefaultSpinner.Start(text)
	return spinner
}

// UpdateSpinner tolerates a nil spinner so callers can run quietly.
func UpdateSpinner(spinner *pterm.SpinnerPrinter, text string) {
	if spinner == nil {
		return
	}
	spinner.UpdateText(text)
}

func StopSpinner(spinner *pterm.SpinnerPrinter, ok bool, text string) {
	if spinner == nil {
		return
	}
	if ok {
		spinner.Success(text)
	} else {
		spinner.Fail(text)
	}
}
