package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
)

const (
	// ErrorPrefix starts every message written by PrintError.
	ErrorPrefix = "*** "
	// WarningPrefix starts every message written by PrintWarning.
	WarningPrefix = "!   "
)

// PrintError writes a failure message to w. Color is only applied when the
// process is attached to a terminal.
func PrintError(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintln(w, errorColor.Sprint(ErrorPrefix+fmt.Sprintf(format, a...)))
}

// PrintWarning writes a non-fatal notice to w.
func PrintWarning(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintln(w, warningColor.Sprint(WarningPrefix+fmt.Sprintf(format, a...)))
}
