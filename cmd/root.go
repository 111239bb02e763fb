package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/xll-gen/build-payload/internal/config"
	"github.com/xll-gen/build-payload/internal/generator"
	"github.com/xll-gen/build-payload/internal/payload"
	"github.com/xll-gen/build-payload/internal/ui"
	"github.com/xll-gen/build-payload/pkg/log"
)

const longHelp = `Copyright 2020 Inesonic, LLC
This software is licensed under two terms:
  * The Inesonic Commercial License, Version 1
  * GNU Public License, Version 2

You can use this utility to convert a file, in raw binary form, to a C99 or
C++ array suitable for inclusion within a program.  You can use the program
to generate binary payloads of files.

If no files are given the payload is read from standard input.  If multiple
files are given, the variable and size variable names become suffixes and
each payload is prefixed with a name derived from its file name.`

// exitError carries the message reported on the error stream.
type exitError struct {
	msg string
	err error
}

func (e *exitError) Error() string { return e.msg }
func (e *exitError) Unwrap() error { return e.err }

// options holds flag values that need post-processing before they become
// part of the configuration.
type options struct {
	indentation string
	width       string
	printConfig bool
}

// newRootCmd builds the build-payload command bound to a fresh configuration.
func newRootCmd() *cobra.Command {
	cfg := config.Default()
	opts := options{
		indentation: fmt.Sprint(cfg.Indentation),
		width:       fmt.Sprint(cfg.Width),
	}

	cmd := &cobra.Command{
		Use:           "build_payload [options] [ file [ file [ file ... ] ] ]",
		Short:         "Convert binary files into C/C++ byte array declarations",
		Long:          longHelp,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, &cfg, opts, args)
		},
	}

	f := cmd.Flags()
	f.SortFlags = false
	f.StringVarP(&cfg.Output, "output", "o", "", "output file; standard output when omitted")
	f.StringVarP(&cfg.Copyright, "copyright", "c", cfg.Copyright, "copyright message placed in the header")
	f.BoolVarP(&cfg.NoCopyright, "no-copyright", "C", false, "remove the copyright message; -c/--copyright is ignored")
	f.StringVarP(&cfg.Description, "description", "d", "", "description placed in a \\file section of the header")
	f.StringVarP(&opts.indentation, "indentation", "i", opts.indentation, "indentation in spaces")
	f.StringVarP(&opts.width, "width", "w", opts.width, "maximum line length; ignored for the header text")
	f.StringVarP(&cfg.Namespace, "namespace", "n", "", "namespace to place the generated content under")
	f.BoolVar(&cfg.CloseNamespace, "close-namespace", false, "emit the closing brace of the namespace")
	f.StringVarP(&cfg.Variable, "variable", "v", cfg.Variable, "payload variable name, or suffix with multiple files")
	f.StringVarP(&cfg.Type, "type", "t", cfg.Type, "type of the payload array")
	f.StringVarP(&cfg.SizeVariable, "size-variable", "V", cfg.SizeVariable, "payload size variable name, or suffix with multiple files")
	f.StringVarP(&cfg.SizeType, "size-type", "T", cfg.SizeType, "type of the payload size")
	f.VarPF(&switchValue{target: &cfg.Compress, value: true}, "zlib", "z", "compress the payload (default)").NoOptDefVal = "true"
	f.VarPF(&switchValue{target: &cfg.Compress, value: false}, "no-zlib", "Z", "do not compress the payload").NoOptDefVal = "true"
	f.BoolVar(&opts.printConfig, "print-config", false, "print the effective configuration as YAML and exit")
	f.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "log level (debug, info, warn, error)")
	f.StringVar(&cfg.Logging.Path, "log-file", "", "write logs to this file instead of stderr")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		if name, ok := missingParameter(err.Error()); ok {
			return &exitError{msg: fmt.Sprintf("The %s switch is missing a parameter.", name), err: err}
		}
		return &exitError{msg: err.Error(), err: err}
	})

	return cmd
}

// runBuild validates the configuration, opens the output destination and
// runs the generator over the inputs.
func runBuild(cmd *cobra.Command, cfg *config.Config, opts options, inputs []string) error {
	if cfg.Indentation = parseCount(opts.indentation); cfg.Indentation <= 0 {
		return &exitError{msg: "Invalid indentation value " + opts.indentation}
	}
	if cfg.Width = parseCount(opts.width); cfg.Width <= 0 {
		return &exitError{msg: "Invalid width value " + opts.width}
	}

	config.ApplyDefaults(cfg)
	if err := config.Validate(cfg); err != nil {
		return &exitError{msg: err.Error(), err: err}
	}
	if err := config.ValidateNames(cfg, len(inputs)); err != nil {
		return &exitError{msg: err.Error(), err: err}
	}

	if opts.printConfig {
		out, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}

	if err := log.Init(cfg.Logging.Path, cfg.Logging.Level); err != nil {
		return &exitError{msg: "Could not open log file " + cfg.Logging.Path + ".", err: err}
	}

	if cfg.CloseNamespace && cfg.Namespace == "" {
		ui.PrintWarning(cmd.ErrOrStderr(), "--close-namespace has no effect without --namespace")
	}

	out, closeOut, err := openOutput(cmd.OutOrStdout(), cfg.Output)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(out)
	g := generator.New(cfg, generator.WithStdin(cmd.InOrStdin()), generator.WithLogger(slog.Default()))
	genErr := g.Generate(bw, inputs)

	// Declarations written before a failure are kept.
	if err := bw.Flush(); err != nil && genErr == nil {
		genErr = errors.Wrap(err, "flush output")
	}
	if err := closeOut(); err != nil && genErr == nil {
		genErr = errors.Wrap(err, "close output")
	}

	if genErr != nil {
		var srcErr *payload.SourceError
		if errors.As(genErr, &srcErr) {
			return &exitError{msg: "Could not open input file " + srcErr.Path, err: genErr}
		}
		return genErr
	}

	slog.Info("payload written", "sources", len(g.Results()), "output", outputName(cfg.Output))
	return nil
}

// openOutput returns stdout for an empty name, or the created file.
func openOutput(stdout io.Writer, name string) (io.Writer, func() error, error) {
	if name == "" {
		return stdout, func() error { return nil }, nil
	}

	f, err := os.Create(name)
	if err != nil {
		return nil, nil, &exitError{msg: "Could not open output file " + name + ".", err: err}
	}
	return f, f.Close, nil
}

func outputName(name string) string {
	if name == "" {
		return "<stdout>"
	}
	return name
}

// run executes the command with the given arguments and streams and returns
// the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	// Help wins over every other argument, even malformed ones.
	if helpRequested(args) {
		cmd.InitDefaultHelpFlag()
		if err := cmd.Help(); err != nil {
			ui.PrintError(stderr, "%s", err.Error())
			return 1
		}
		return 0
	}

	if err := cmd.Execute(); err != nil {
		ui.PrintError(stderr, "%s", err.Error())
		var ee *exitError
		if errors.As(err, &ee) && ee.err != nil {
			slog.Debug("build failed", "cause", ee.err)
		}
		return 1
	}
	return 0
}

// Execute runs the build-payload command and exits with its status.
// This is called by main.main().
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
