package commands

import (
	coreerrors "github.com/K0NGR3SS/profilebench/internal/errors"
	"github.com/pterm/pterm"
)

const (
	exitOK                = 0
	exitFailure           = 1
	exitInvalidInput      = 2
	exitMalformedArtifact = 3
	exitMissingArtifact   = 4
)

func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	switch coreerrors.CategoryOf(err) {
	case coreerrors.CategoryInvalidInput:
		return exitInvalidInput
	case coreerrors.CategoryMalformedArtifact:
		return exitMalformedArtifact
	case coreerrors.CategoryMissingArtifact:
		return exitMissingArtifact
	default:
		return exitFailure
	}
}

func printError(err error) {
	pterm.Error.Println(err.Error())
	if hint := coreerrors.HintOf(err); hint != "" {
		pterm.Info.Println("hint: " + hint)
	}
}
