package ui

import (
	"bytes"
	"testing"

	"github.com/K0NGR3SS/profilebench/internal/models"
	"github.com/K0NGR3SS/profilebench/internal/report"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComparisonRows(t *testing.T) {
	rep := report.Build([]models.Record{
		{Target: "DVWA", Profile: models.ProfilePremium, Findings: []string{"A"}, TokensUsed: 50, EstimatedCostUSD: 0.2},
		{Target: "DVWA", Profile: models.ProfileBreadth, Findings: []string{"A", "B"}, TokensUsed: 100, EstimatedCostUSD: 0.01},
		{Target: "Juice Shop", Profile: models.ProfilePremium, Findings: []string{"X"}, TokensUsed: 7, EstimatedCostUSD: 0},
	}, models.DefaultProfiles)

	var rows [][]string
	for _, row := range ComparisonRows(rep) {
		plain := make([]string, len(row))
		for i, cell := range row {
			plain[i] = pterm.RemoveColorFromString(cell)
		}
		rows = append(rows, plain)
	}
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"DVWA", "bedrock-haiku3", "A\nB", "100", "$0.01", "baseline"}, rows[1])
	assert.Equal(t, []string{"DVWA", "premium", "A", "50", "$0.20", "bedrock-haiku3 only: B"}, rows[2])
	assert.Equal(t, report.NoComparisonNote, rows[3][5])
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("DEBUG", &buf)
	require.NoError(t, err)
	logger.Debug("artifact read", logger.Args("bytes", 42))
	assert.Contains(t, buf.String(), "artifact read")

	_, err = NewLogger("loud", &buf)
	assert.Error(t, err)
}

func TestSpinnerHelpersTolerateNil(t *testing.T) {
	UpdateSpinner(nil, "x")
	StopSpinner(nil, true, "x")
}
