package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/ozwaldorf/xq"
	"github.com/ozwaldorf/xq/internal/cliutil"
	"github.com/ozwaldorf/xq/s11n"
	"github.com/pkg/errors"
)

const (
	exitOK      = 0
	exitFalsy   = 1
	exitUsage   = 2
	exitCompile = 3
	exitRuntime = 5
)

type cmdopts struct {
	JSON bool `short:"J" long:"json" description:"Read and write JSON"`
	YAML bool `short:"Y" long:"yaml" description:"Read and write YAML"`
	TOML bool `short:"T" long:"toml" description:"Read and write TOML"`

	InputFormat string `long:"input-format" choice:"json" choice:"yaml" choice:"toml" description:"Input format when nothing else decides it"`
	JSONInput   bool   `long:"json-input" description:"Read JSON"`
	YAMLInput   bool   `long:"yaml-input" description:"Read YAML"`
	TOMLInput   bool   `long:"toml-input" description:"Read TOML"`

	OutputFormat string `long:"output-format" choice:"json" choice:"yaml" choice:"toml" description:"Output format when nothing else decides it"`
	JSONOutput   bool   `long:"json-output" description:"Write JSON"`
	YAMLOutput   bool   `long:"yaml-output" description:"Write YAML"`
	TOMLOutput   bool   `long:"toml-output" description:"Write TOML"`

	RawInput      bool   `short:"R" long:"raw-input" description:"Read each line as a string"`
	NullInput     bool   `short:"n" long:"null-input" description:"Run the query once with null as input"`
	Slurp         bool   `short:"s" long:"slurp" description:"Read all inputs into one array"`
	Stream        bool   `long:"stream" description:"Read inputs as streaming events"`
	InputEncoding string `long:"input-encoding" value-name:"NAME" description:"Charset of the input"`

	RawOutput        bool `short:"r" long:"raw-output" description:"Write strings without quotes"`
	JoinOutput       bool `short:"j" long:"join-output" description:"Like -r without newlines"`
	CompactOutput    bool `short:"c" long:"compact-output" description:"Write compact output"`
	Tab              bool `long:"tab" description:"Indent with tabs"`
	Indent           int  `long:"indent" value-name:"N" default:"2" description:"Indent with N spaces"`
	ColorOutput      bool `short:"C" long:"color-output" description:"Colourize output"`
	MonochromeOutput bool `short:"M" long:"monochrome-output" description:"Do not colourize output"`

	Args         map[string]string `long:"arg" value-name:"NAME:VALUE" description:"Bind $NAME to a string"`
	JSONArgs     map[string]string `long:"argjson" value-name:"NAME:JSON" description:"Bind $NAME to a JSON value"`
	LibraryPaths []string          `short:"L" value-name:"DIR" default:"~/.jq" description:"Search DIR for modules"`
	FromFile     string            `short:"f" long:"from-file" value-name:"PATH" description:"Read the query from PATH"`

	ExitStatus bool   `short:"e" long:"exit-status" description:"Set the exit status from the last output"`
	Verbose    []bool `short:"v" long:"verbose" description:"Log more, repeat for more detail"`
	Quiet      bool   `short:"q" long:"quiet" description:"Log nothing"`
	Version    bool   `long:"version" description:"Show the version"`
}

func main() {
	os.Exit(_main())
}

func _main() int {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func showVersion(w io.Writer) {
	fmt.Fprintf(w, "xq %s\n", xq.Version)
}

func showUsage(p *flags.Parser, w io.Writer) {
	p.WriteHelp(w)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := cmdopts{}
	p := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	p.Name = "xq"
	p.Usage = "[options] [QUERY] [FILE...]"

	args, err := p.ParseArgs(args)
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, ferr.Message)
			return exitOK
		}
		fmt.Fprintf(stderr, "xq: %s\n", err)
		return exitUsage
	}

	if opts.Version {
		showVersion(stdout)
		return exitOK
	}
	if opts.Indent < 0 || opts.Indent > 7 {
		fmt.Fprintf(stderr, "xq: --indent takes a number between 0 and 7\n")
		return exitUsage
	}

	logger := opts.logger(stderr)
	ctx := xq.WithTraceLogger(context.Background(), logger)

	src := "."
	var files []string
	switch {
	case opts.FromFile != "":
		buf, err := os.ReadFile(opts.FromFile)
		if err != nil {
			fmt.Fprintf(stderr, "xq: error: %s\n", err)
			return exitUsage
		}
		src = string(buf)
		files = args
	case len(args) > 0:
		src = args[0]
		files = args[1:]
	}

	if len(files) == 0 && !opts.NullInput && cliutil.IsTerminal(stdin) {
		showUsage(p, stderr)
		return exitUsage
	}

	inFormat, outFormat, err := opts.formats(files)
	if err != nil {
		fmt.Fprintf(stderr, "xq: %s\n", err)
		return exitUsage
	}
	logger.Info("selected formats",
		slog.String("input", inFormat.Name()),
		slog.String("output", outFormat.Name()),
	)

	options, err := opts.queryOptions()
	if err != nil {
		fmt.Fprintf(stderr, "xq: %s\n", err)
		return exitUsage
	}

	q, err := xq.Compile(ctx, src, options...)
	if err != nil {
		fmt.Fprintf(stderr, "xq: error: %s\n", err)
		return exitCompile
	}

	inputs := xq.NewInputs(opts.inputs(files, stdin, inFormat))
	defer inputs.Close()
	if opts.NullInput {
		inputs.NullInput()
	}

	out := bufio.NewWriter(stdout)
	defer out.Flush()
	enc := outFormat.NewEncoder(out, opts.encodeOptions(stdout)...)

	status := exitOK
	produced := false
	var last any
	for v, err := range q.Run(ctx, inputs) {
		if err != nil {
			var halt *xq.HaltError
			var ierr *inputError
			switch {
			case errors.As(err, &halt):
				out.Flush()
				return reportHalt(stderr, halt)
			case errors.As(err, &ierr):
				fmt.Fprintf(stderr, "xq: error: %s\n", ierr)
				return exitUsage
			}
			fmt.Fprintf(stderr, "xq: error: %s\n", err)
			status = exitRuntime
			continue
		}

		produced, last = true, v
		if err := enc.Encode(v); err != nil {
			fmt.Fprintf(stderr, "xq: error: failed to write output: %s\n", err)
			return exitUsage
		}
	}

	if status == exitOK && opts.ExitStatus && (!produced || last == nil || last == false) {
		status = exitFalsy
	}
	return status
}

func (o *cmdopts) logger(w io.Writer) *slog.Logger {
	if o.Quiet {
		return slog.New(slog.DiscardHandler)
	}
	// errors are already reported on stderr, so logging starts at -v
	var level slog.Level
	switch n := len(o.Verbose); {
	case n == 0:
		return slog.New(slog.DiscardHandler)
	case n == 1:
		level = slog.LevelWarn
	case n == 2:
		level = slog.LevelInfo
	default:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// formats decides the input and output formats. Explicit flags win over
// the extension of the first file, which wins over --input-format and
// --output-format.
func (o *cmdopts) formats(files []string) (*s11n.Format, *s11n.Format, error) {
	var byExt *s11n.Format
	if len(files) > 0 {
		byExt, _ = s11n.ByExtension(files[0])
	}

	pick := func(both, direction [3]bool, fallback string) (*s11n.Format, error) {
		for _, set := range [][3]bool{both, direction} {
			for i, name := range [3]string{"json", "yaml", "toml"} {
				if set[i] {
					return s11n.Lookup(name)
				}
			}
		}
		if byExt != nil {
			return byExt, nil
		}
		if fallback == "" {
			fallback = "json"
		}
		return s11n.Lookup(fallback)
	}

	both := [3]bool{o.JSON, o.YAML, o.TOML}
	in, err := pick(both, [3]bool{o.JSONInput, o.YAMLInput, o.TOMLInput}, o.InputFormat)
	if err != nil {
		return nil, nil, err
	}
	out, err := pick(both, [3]bool{o.JSONOutput, o.YAMLOutput, o.TOMLOutput}, o.OutputFormat)
	if err != nil {
		return nil, nil, err
	}
	return in, out, nil
}

func (o *cmdopts) queryOptions() ([]xq.Option, error) {
	options := []xq.Option{
		xq.WithModulePaths(o.LibraryPaths...),
		xq.WithEnviron(os.Environ),
	}

	named := make(map[string]any, len(o.Args)+len(o.JSONArgs))
	for name, value := range o.Args {
		named[name] = value
	}
	for name, src := range o.JSONArgs {
		v, err := parseJSONArg(src)
		if err != nil {
			return nil, errors.Wrapf(err, "--argjson %s", name)
		}
		named[name] = v
	}
	for name, v := range named {
		options = append(options, xq.WithVariable(name, v))
	}
	options = append(options, xq.WithVariable("ARGS", map[string]any{
		"positional": []any{},
		"named":      named,
	}))
	return options, nil
}

func parseJSONArg(src string) (any, error) {
	f, err := s11n.Lookup("json")
	if err != nil {
		return nil, err
	}
	var values []any
	for v, err := range f.Decode(strings.NewReader(src)) {
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	if len(values) != 1 {
		return nil, errors.Errorf("expected exactly one JSON value, got %d", len(values))
	}
	return values[0], nil
}

func (o *cmdopts) encodeOptions(stdout io.Writer) []s11n.EncodeOption {
	color := cliutil.IsTerminal(stdout)
	switch {
	case o.MonochromeOutput:
		color = false
	case o.ColorOutput:
		color = true
	}

	options := []s11n.EncodeOption{
		s11n.WithColor(color),
		s11n.WithRaw(o.RawOutput),
		s11n.WithJoin(o.JoinOutput),
	}
	switch {
	case o.CompactOutput:
		options = append(options, s11n.WithCompact())
	case o.Tab:
		options = append(options, s11n.WithTab())
	default:
		options = append(options, s11n.WithIndent(o.Indent))
	}
	return options
}

// reportHalt prints the value given to halt_error: strings as they are,
// anything else as JSON on its own line.
func reportHalt(w io.Writer, halt *xq.HaltError) int {
	switch v := halt.Value.(type) {
	case nil:
	case string:
		fmt.Fprint(w, v)
	default:
		fmt.Fprintln(w, halt.Error())
	}
	return halt.Code
}
