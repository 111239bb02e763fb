// Package payload reads input sources into memory and optionally wraps the
// bytes in a length-prefixed zlib container.
package payload

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// ErrUnreadableSource is returned when a named input cannot be opened.
var ErrUnreadableSource = errors.New("unreadable source")

// Source is either standard input or a named file.
type Source struct {
	path  string
	stdin io.Reader
}

// Stdin returns a Source reading from os.Stdin.
func Stdin() Source {
	return Source{stdin: os.Stdin}
}

// StdinFrom returns a Source that stands in for standard input.
func StdinFrom(r io.Reader) Source {
	return Source{stdin: r}
}

// File returns a Source reading the file at path.
func File(path string) Source {
	return Source{path: path}
}

// IsStdin reports whether s reads from standard input.
func (s Source) IsStdin() bool {
	return s.stdin != nil
}

// Name returns the path as given, or "<stdin>".
func (s Source) Name() string {
	if s.IsStdin() {
		return "<stdin>"
	}
	return s.path
}

// Open acquires the underlying reader. Closing the returned reader for a
// standard input source is a no-op.
func Open(s Source) (io.ReadCloser, error) {
	if s.IsStdin() {
		return io.NopCloser(s.stdin), nil
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, &SourceError{Path: s.path, Err: err}
	}
	return f, nil
}

// Load drains r into memory. Empty input yields an empty, non-nil slice.
func Load(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read input")
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// ReadAll opens s, loads it completely and closes it again.
func ReadAll(s Source) ([]byte, error) {
	rc, err := Open(s)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := Load(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", s.Name())
	}
	return data, nil
}

// SourceError records the input that could not be opened.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return "could not open input file " + e.Path + ": " + e.Err.Error()
}

// Is makes errors.Is(err, ErrUnreadableSource) hold for every SourceError.
func (e *SourceError) Is(target error) bool {
	return target == ErrUnreadableSource
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
