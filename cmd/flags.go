package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

var _ pflag.Value = (*switchValue)(nil)

// switchValue is a boolean flag that stores a fixed value into a shared
// target when given, so that of --zlib and --no-zlib the last one wins.
type switchValue struct {
	target *bool
	value  bool
}

func (s *switchValue) String() string {
	if s.target == nil {
		return "false"
	}
	return strconv.FormatBool(*s.target == s.value)
}

func (s *switchValue) Set(v string) error {
	on, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	if on {
		*s.target = s.value
	}
	return nil
}

func (s *switchValue) Type() string {
	return "bool"
}

// parseCount reads the leading decimal digits of s after optional blanks
// and an optional '+'. Anything without a leading digit yields 0, which the
// caller rejects.
func parseCount(s string) int {
	s = strings.TrimLeft(s, " \t")
	s = strings.TrimPrefix(s, "+")
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// missingParameter extracts the flag name from pflag's "flag needs an
// argument" error, e.g. "-o" or "--output".
func missingParameter(msg string) (string, bool) {
	if !strings.HasPrefix(msg, "flag needs an argument") {
		return "", false
	}
	fields := strings.Fields(msg)
	return fields[len(fields)-1], true
}

// helpRequested reports whether -h or --help appears before the "--"
// terminator.
func helpRequested(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "-h", "--help":
			return true
		}
	}
	return false
}
