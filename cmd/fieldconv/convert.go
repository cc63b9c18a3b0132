package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/flatfiles/internal/column"
	"github.com/JonMunkholm/flatfiles/internal/logging"
)

var errUsage = errors.New("usage")

// converter turns one input value into output text.
type converter func(ctx context.Context, value string) (string, error)

func run(opts *Options, stdin io.Reader, stdout, stderr io.Writer) int {
	level := "warn"
	if len(opts.Verbose) > 0 {
		level = "debug"
	}
	logger := logging.New(stderr, level, "text")

	if opts.List {
		for _, name := range column.Types() {
			fmt.Fprintln(stdout, name)
		}
		return 0
	}

	conv, err := newConverter(opts)
	if err != nil {
		fmt.Fprintf(stderr, "fieldconv: %v\n", err)
		return 2
	}

	failed := false
	convert := func(pos column.Position, value string) error {
		ctx := column.WithPosition(context.Background(), pos)
		text, err := conv(ctx, value)
		if err != nil {
			failed = true
			logger.Debug("conversion failed", logging.ErrorAttrs(err)...)
			fmt.Fprintf(stderr, "fieldconv: %v\n", err)
			return nil
		}
		_, err = fmt.Fprintln(stdout, text)
		return err
	}

	if len(opts.Args.Values) > 0 {
		for i, v := range opts.Args.Values {
			if err := convert(column.Position{Record: i + 1}, v); err != nil {
				fmt.Fprintf(stderr, "fieldconv: %v\n", err)
				return 1
			}
		}
	} else if err := eachLine(stdin, convert); err != nil {
		fmt.Fprintf(stderr, "fieldconv: %v\n", err)
		return 1
	}

	if failed {
		return 1
	}
	logger.Debug("done", "mode", opts.Args.Mode, "type", opts.Type)
	return 0
}

// eachLine calls fn for every line of r, numbering records and lines from 1.
func eachLine(r io.Reader, fn func(column.Position, string) error) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if err := fn(column.Position{Record: line, Line: line}, strings.TrimSuffix(sc.Text(), "\r")); err != nil {
			return err
		}
	}
	return sc.Err()
}

// spec maps the command line onto a column spec.
func (o *Options) spec() column.Spec {
	s := column.Spec{
		Name:         "value",
		Type:         o.Type,
		NullValues:   o.Null,
		Trim:         o.Trim,
		TrimChars:    o.TrimChars,
		Culture:      o.Culture,
		Styles:       o.Styles,
		OutputFormat: o.Format,
		TrueString:   o.TrueString,
		FalseString:  o.FalseString,
		OutputLayout: o.Layout,
		Location:     o.Location,
	}
	if o.Clean {
		s.Preprocess = []string{"clean"}
	}
	return s
}

// newConverter builds the column for opts and picks the direction.
func newConverter(opts *Options) (converter, error) {
	def, err := column.Build(opts.spec())
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(opts.Args.Mode) {
	case "parse":
		return func(ctx context.Context, value string) (string, error) {
			v, err := def.Parse(ctx, value)
			if err != nil {
				return "", err
			}
			return def.Format(ctx, v)
		}, nil

	case "format":
		// Input is read with invariant rules and the same null tokens.
		in, err := column.Build(column.Spec{
			Name:       def.Name(),
			Type:       opts.Type,
			NullValues: opts.Null,
			Location:   opts.Location,
			Lenient:    true,
		})
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, value string) (string, error) {
			v, err := in.Parse(ctx, value)
			if err != nil {
				return "", err
			}
			return def.Format(ctx, v)
		}, nil

	case "":
		return nil, fmt.Errorf("%w: fieldconv parse|format [options] [values...]", errUsage)
	default:
		return nil, fmt.Errorf("%w: unknown mode %q, want parse or format", errUsage, opts.Args.Mode)
	}
}
