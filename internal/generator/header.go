package generator

import (
	"io"
	"strings"
)

// headerMarker opens the comment block and tells editors the file is C++.
const headerMarker = "/*-*-c++-*-*"

// Header holds the inputs of the leading comment block.
type Header struct {
	Copyright   string
	NoCopyright bool
	Description string
	Width       int
}

// Empty reports whether the header block would produce no output.
func (h Header) Empty() bool {
	return h.NoCopyright && h.Description == ""
}

// EmitHeader writes the copyright and description comment block, bounded by
// asterisk borders sized to the configured width. Nothing is written when
// both parts are absent.
func EmitHeader(w io.Writer, h Header) error {
	if h.Empty() {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(headerMarker)
	sb.WriteString(stars(h.Width - len(headerMarker)))
	sb.WriteByte('\n')

	if !h.NoCopyright {
		for _, line := range splitLines(h.Copyright) {
			sb.WriteString("* ")
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}

	if !h.NoCopyright && h.Description != "" {
		sb.WriteString(stars(h.Width - 4))
		sb.WriteString("//**\n")
	}

	if h.Description != "" {
		sb.WriteString("* \\file\n*\n")
		for _, line := range splitLines(h.Description) {
			sb.WriteString("* ")
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}

	sb.WriteString(stars(h.Width - 1))
	sb.WriteString("/\n\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func stars(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("*", n)
}

// splitLines splits on newlines; a trailing newline does not add an empty
// line and an empty string has no lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
