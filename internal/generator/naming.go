package generator

import (
	"path"
	"strings"
)

// Naming is the set of identifiers derived for one source.
type Naming struct {
	Prefix       string
	Variable     string
	SizeVariable string
}

// Name returns the array identifier.
func (n Naming) Name() string {
	return n.Prefix + n.Variable
}

// SizeName returns the size constant identifier.
func (n Naming) SizeName() string {
	return n.Prefix + n.SizeVariable
}

// PrefixFor derives an identifier prefix from a file path: the final path
// component, with either slash or backslash as separator, and every '.'
// replaced by '_'.
func PrefixFor(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.ReplaceAll(base, ".", "_")
}
