// Command lazykit encodes and decodes text with the codec registry.
//
//	lazykit encode hex hello          # 68656c6c6f
//	echo 68656c6c6f | lazykit decode hex
//	lazykit -charset big5 encode urlsafe 中文
//	lazykit list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-isatty"

	"github.com/rbaliyan/lazykit/codec"
	codecotel "github.com/rbaliyan/lazykit/codec/otel"
	"github.com/rbaliyan/lazykit/logkit"
	"github.com/rbaliyan/lazykit/retry"
	"github.com/rbaliyan/lazykit/serde"
	"github.com/rbaliyan/lazykit/settings"
	"github.com/rbaliyan/lazykit/strkit"
)

// ExitError carries a process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if code := report(err, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

// report prints err and returns the process exit code. An ExitError with
// no message was already reported by the flag package.
func report(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Message != "" {
			fmt.Fprintln(stderr, exitErr.Message)
		}
		return exitErr.Code
	}
	fmt.Fprintln(stderr, "lazykit:", err)
	return 1
}

type cliFlags struct {
	charset  string
	config   string
	logLevel string
	input    string
	trace    bool
	noColor  bool
}

// dispatcher is the subset of the registry the commands use.
type dispatcher interface {
	Encode(ctx context.Context, data []byte, name, charset string) ([]byte, error)
	Decode(ctx context.Context, data []byte, name, charset string) ([]byte, error)
	Names() []string
}

type plainDispatcher struct {
	reg *codec.Registry
}

func (d plainDispatcher) Encode(_ context.Context, data []byte, name, charset string) ([]byte, error) {
	return d.reg.Encode(data, name, charset)
}

func (d plainDispatcher) Decode(_ context.Context, data []byte, name, charset string) ([]byte, error) {
	return d.reg.Decode(data, name, charset)
}

func (d plainDispatcher) Names() []string {
	return d.reg.Names()
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("lazykit", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var f cliFlags
	fs.StringVar(&f.charset, "charset", "", "`charset` applied before encoding and after decoding (default utf-8)")
	fs.StringVar(&f.config, "config", "", "settings `file` (yaml, toml or json)")
	fs.StringVar(&f.logLevel, "log-level", "", "log `level`: debug, info, warn, error")
	fs.StringVar(&f.input, "in", "", "read input from a `source` file or http(s) URL instead of args or stdin")
	fs.BoolVar(&f.trace, "trace", false, "log a span for every codec call")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored log output")
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		// The flag package has printed the error and usage.
		return &ExitError{Code: 2}
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return &ExitError{Code: 2, Message: "lazykit: missing command"}
	}

	s, err := settings.Load(f.config)
	if err != nil {
		return err
	}
	if f.charset != "" {
		s.Codec.Charset = f.charset
	}
	if f.logLevel != "" {
		s.Log.Level = f.logLevel
	}
	s.Log.Color = s.Log.Color && !f.noColor && isTerminal(stderr)

	logOpts, err := logkit.FromSettings(s.Log)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	logging, err := logkit.Setup(append(logOpts, logkit.WithConsole(stderr))...)
	if err != nil {
		return err
	}
	defer logging.Close()

	reg, err := codec.New(
		codec.WithLogger(logging.Logger("codec")),
		codec.WithCharsetCacheSize(s.Codec.CharsetCacheSize),
	)
	if err != nil {
		return err
	}
	if err := reg.RegisterCodec(serde.DictCodec, serde.Dict()); err != nil {
		return err
	}

	var d dispatcher = plainDispatcher{reg: reg}
	if f.trace {
		tp := newTracerProvider(logging.Logger("trace"))
		defer tp.Shutdown(context.WithoutCancel(ctx))

		inst, err := codecotel.Wrap(reg,
			codecotel.WithTracer(tp.Tracer("lazykit")),
			codecotel.WithTracesEnabled(true),
			codecotel.WithServiceName("lazykit"),
		)
		if err != nil {
			return err
		}
		d = inst
	}

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "list":
		for _, name := range d.Names() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	case "encode", "decode":
	default:
		return &ExitError{Code: 2, Message: fmt.Sprintf("lazykit: unknown command %q", cmd)}
	}

	if len(cmdArgs) == 0 {
		return &ExitError{Code: 2, Message: fmt.Sprintf("lazykit: %s needs a codec name", cmd)}
	}
	name := cmdArgs[0]

	input, err := readInput(ctx, f.input, cmdArgs[1:], stdin, s, logging.Logger("retry"))
	if err != nil {
		return err
	}

	var out []byte
	if cmd == "encode" {
		out, err = d.Encode(ctx, input, name, s.Codec.Charset)
	} else {
		out, err = d.Decode(ctx, input, name, s.Codec.Charset)
	}
	if err != nil {
		if codec.IsUnknownCodec(err) {
			return &ExitError{Code: 2, Message: "lazykit: " + err.Error()}
		}
		return err
	}

	if _, err := stdout.Write(out); err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout)
	return err
}

// readInput returns the text to transform: the -in source, the remaining
// args joined by spaces, or stdin without its trailing newline.
func readInput(ctx context.Context, source string, args []string, stdin io.Reader, s *settings.Settings, logger *slog.Logger) ([]byte, error) {
	switch {
	case source != "":
		if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
			text, err := retry.Value(ctx, func(ctx context.Context) (string, error) {
				return strkit.ReadURL(ctx, source)
			}, append(retry.FromSettings(s.Retry), retry.WithRetryIf(retryable), retry.WithLogger(logger))...)
			return []byte(strings.TrimRight(text, "\r\n")), err
		}
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, err
		}
		return []byte(strings.TrimRight(string(data), "\r\n")), nil
	case len(args) > 0:
		return []byte(strings.Join(args, " ")), nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		return []byte(strings.TrimRight(string(data), "\r\n")), nil
	}
}

// retryable rejects client errors, which a retry cannot fix.
func retryable(err error) bool {
	var se *strkit.StatusError
	if errors.As(err, &se) {
		return se.StatusCode >= 500 || se.StatusCode == 429
	}
	return true
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printUsage writes help with flag names and descriptions in aligned columns.
func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprint(w, `lazykit - encode and decode text with named codecs

Usage:
  lazykit [options] encode <codec> [text]
  lazykit [options] decode <codec> [text]
  lazykit [options] list

Text defaults to stdin when omitted.

Options:
`)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fs.VisitAll(func(fl *flag.Flag) {
		name, usage := flag.UnquoteUsage(fl)
		invocation := "-" + fl.Name
		if name != "" {
			invocation += " " + strings.ToUpper(name)
		}
		fmt.Fprintf(tw, "  %s\t%s\n", invocation, usage)
	})
	tw.Flush()
}
