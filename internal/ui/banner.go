package ui

import (
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

func PrintBanner(version string) {
	_ = pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("profile", pterm.FgCyan.ToStyle()),
		putils.LettersFromStringWithStyle("bench", pterm.FgMagenta.ToStyle()),
	).Render()
	pterm.DefaultCenter.Println(pterm.FgGray.Sprint(version + " - model profile benchmark reporter"))
	pterm.Println()
}
