// Package generator renders payload bytes as C/C++ array declarations.
package generator

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/xll-gen/build-payload/internal/config"
	"github.com/xll-gen/build-payload/internal/payload"
)

// Result records what was emitted for one source.
type Result struct {
	Source      string
	Name        string
	SizeName    string
	Size        int
	EncodedSize int
}

// Option configures a Generator.
type Option func(*Generator)

// WithStdin replaces os.Stdin as the input used when no files are given.
func WithStdin(r io.Reader) Option {
	return func(g *Generator) {
		g.stdin = r
	}
}

// WithLogger sets the logger used for per-source diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// Generator turns a list of inputs into declarations using a validated
// configuration. It is not safe for concurrent use.
type Generator struct {
	cfg     *config.Config
	stdin   io.Reader
	logger  *slog.Logger
	results []Result
}

// New creates a Generator. cfg must already have passed config.Validate.
func New(cfg *config.Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:    cfg,
		stdin:  os.Stdin,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Results returns one entry per source emitted by the last Generate call.
func (g *Generator) Results() []Result {
	return g.results
}

// Generate writes the header block, the optional namespace line and one
// declaration pair per input. With no inputs standard input is read. With
// more than one input each pair is preceded by a comment naming the file
// and the identifiers are prefixed with a name derived from it.
//
// Processing stops at the first input that cannot be opened; whatever was
// written before stays in w.
func (g *Generator) Generate(w io.Writer, inputs []string) error {
	g.results = nil

	header := Header{
		Copyright:   g.cfg.Copyright,
		NoCopyright: g.cfg.NoCopyright,
		Description: g.cfg.Description,
		Width:       g.cfg.Width,
	}
	if err := EmitHeader(w, header); err != nil {
		return errors.Wrap(err, "write header")
	}

	leftIndentation := 0
	if g.cfg.Namespace != "" {
		if _, err := fmt.Fprintf(w, "namespace %s{\n", g.cfg.Namespace); err != nil {
			return errors.Wrap(err, "write namespace")
		}
		leftIndentation = g.cfg.Indentation
	}

	switch len(inputs) {
	case 0:
		if err := g.emit(w, payload.StdinFrom(g.stdin), "", leftIndentation, false); err != nil {
			return err
		}
	case 1:
		if err := g.emit(w, payload.File(inputs[0]), "", leftIndentation, false); err != nil {
			return err
		}
	default:
		for _, input := range inputs {
			if err := g.emit(w, payload.File(input), PrefixFor(input), leftIndentation, true); err != nil {
				return err
			}
		}
	}

	// The namespace is left open unless asked otherwise; existing consumers
	// append the closing brace themselves.
	if g.cfg.Namespace != "" && g.cfg.CloseNamespace {
		if _, err := io.WriteString(w, "}\n"); err != nil {
			return errors.Wrap(err, "close namespace")
		}
	}

	return nil
}

func (g *Generator) emit(w io.Writer, src payload.Source, prefix string, leftIndentation int, comment bool) error {
	rc, err := payload.Open(src)
	if err != nil {
		return err
	}
	defer rc.Close()

	if comment {
		if _, err := fmt.Fprintf(w, "// Contents of %s:\n", src.Name()); err != nil {
			return errors.Wrap(err, "write source comment")
		}
	}

	data, err := payload.Load(rc)
	if err != nil {
		return errors.Wrapf(err, "load %s", src.Name())
	}

	encoded, err := payload.Encode(data, g.cfg.Compress)
	if err != nil {
		return errors.Wrapf(err, "encode %s", src.Name())
	}

	naming := Naming{
		Prefix:       prefix,
		Variable:     g.cfg.Variable,
		SizeVariable: g.cfg.SizeVariable,
	}
	decl := Declaration{
		LeftIndentation: leftIndentation,
		Indentation:     g.cfg.Indentation,
		Width:           g.cfg.Width,
		Name:            naming.Name(),
		Type:            g.cfg.Type,
		SizeName:        naming.SizeName(),
		SizeType:        g.cfg.SizeType,
	}
	if err := EmitArray(w, encoded, decl); err != nil {
		return errors.Wrapf(err, "write declaration for %s", src.Name())
	}

	g.logger.Debug("emitted payload",
		"source", src.Name(),
		"variable", decl.Name,
		"size", humanize.Bytes(uint64(len(data))),
		"encoded", humanize.Bytes(uint64(len(encoded))),
		"compressed", g.cfg.Compress,
	)

	g.results = append(g.results, Result{
		Source:      src.Name(),
		Name:        decl.Name,
		SizeName:    decl.SizeName,
		Size:        len(data),
		EncodedSize: len(encoded),
	})
	return nil
}
