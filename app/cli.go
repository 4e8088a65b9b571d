package app

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"pdf-to-txt/config"
	"pdf-to-txt/extract"
	"pdf-to-txt/output"
)

var version = "1.0.0"

// ErrUsage marks command line errors (exit status 2)
var ErrUsage = errors.New("usage error")

// Arguments holds parsed command line arguments
type Arguments struct {
	Path     string
	Engine   string
	Encoding string
	First    int
	Last     int
	View     bool
	Verbose  bool
	Help     bool
	Version  bool
}

// parseArguments parses command line args. Flags may appear before or after
// the path; "--" ends flag parsing.
func parseArguments(args []string) (*Arguments, error) {
	result := &Arguments{
		Engine:   config.DefaultEngine,
		Encoding: config.DefaultEncoding,
	}

	var positional []string
	expectEngine := false
	expectEnc := false
	expectFirst := false
	expectLast := false
	flagsDone := false

	pageNumber := func(flag, v string) (int, error) {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return 0, fmt.Errorf("%w: %s wants a page number >= 1, got %q", ErrUsage, flag, v)
		}
		return n, nil
	}

	for _, a := range args {
		var err error
		switch {
		case expectEngine:
			result.Engine = a
			expectEngine = false
			continue
		case expectEnc:
			result.Encoding = a
			expectEnc = false
			continue
		case expectFirst:
			result.First, err = pageNumber("--first", a)
			if err != nil {
				return nil, err
			}
			expectFirst = false
			continue
		case expectLast:
			result.Last, err = pageNumber("--last", a)
			if err != nil {
				return nil, err
			}
			expectLast = false
			continue
		}

		if flagsDone || a == "-" || !strings.HasPrefix(a, "-") {
			positional = append(positional, a)
			continue
		}

		switch a {
		case "--":
			flagsDone = true
		case "--engine", "-engine":
			expectEngine = true
		case "--enc", "-enc":
			expectEnc = true
		case "--first", "-f":
			expectFirst = true
		case "--last", "-l":
			expectLast = true
		case "--view":
			result.View = true
		case "--verbose":
			result.Verbose = true
		case "--help", "-h":
			result.Help = true
		case "--version", "-v":
			result.Version = true
		default:
			return nil, fmt.Errorf("%w: unknown flag %s", ErrUsage, a)
		}
	}

	switch {
	case expectEngine, expectEnc, expectFirst, expectLast:
		return nil, fmt.Errorf("%w: %s needs a value", ErrUsage, args[len(args)-1])
	case result.Help || result.Version:
		return result, nil
	case len(positional) == 0:
		return nil, fmt.Errorf("%w: missing PDF file", ErrUsage)
	case len(positional) > 1:
		return nil, fmt.Errorf("%w: expected one PDF file, got %d arguments", ErrUsage, len(positional))
	}
	if err := config.PageWindow(result.First, result.Last); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	result.Path = positional[0]
	return result, nil
}

// showUsage (styled)
func showUsage(w io.Writer) {
	fmt.Fprintln(w, headerStyle.Render("pdf-to-txt v"+version+" - print the text of every PDF page"))
	fmt.Fprintln(w)

	fmt.Fprintln(w, subHeaderStyle.Render("USAGE"))
	fmt.Fprintln(w, infoStyle.Render(wrapTextWithIndent("  pdf-to-txt ", "[--engine NAME] [--enc NAME] [--first N] [--last N] [--view] [--verbose] <file.pdf>", 100)))
	fmt.Fprintln(w)

	fmt.Fprintln(w, subHeaderStyle.Render("FLAGS"))
	fmt.Fprintln(w, infoStyle.Render("  --engine NAME     PDF engine (default "+config.DefaultEngine+")"))
	for _, e := range extract.NewRegistry().Names() {
		fmt.Fprintln(w, infoStyle.Render(fmt.Sprintf("                      %-11s %s", e, config.GetEngineDescription(e))))
	}
	fmt.Fprintln(w, infoStyle.Render(wrapTextWithIndent("  --enc NAME        ", "Output encoding (default "+config.DefaultEncoding+"): "+strings.Join(config.Encodings, ", ")+", or any IANA charset", 100)))
	fmt.Fprintln(w, infoStyle.Render("  --first N, -f N   First page to print"))
	fmt.Fprintln(w, infoStyle.Render("  --last N, -l N    Last page to print"))
	fmt.Fprintln(w, infoStyle.Render("  --view            Browse pages interactively (terminal only)"))
	fmt.Fprintln(w, infoStyle.Render("  --verbose         Log per-page timings to stderr"))
	fmt.Fprintln(w, infoStyle.Render("  --help, -h        Show help"))
	fmt.Fprintln(w, infoStyle.Render("  --version, -v     Show version"))
	fmt.Fprintln(w)

	fmt.Fprintln(w, subHeaderStyle.Render("EXAMPLES"))
	fmt.Fprintln(w, infoStyle.Render("  pdf-to-txt report.pdf"))
	fmt.Fprintln(w, infoStyle.Render("  pdf-to-txt --first 3 --last 5 report.pdf"))
	fmt.Fprintln(w, infoStyle.Render("  pdf-to-txt --engine rsc --enc Latin1 report.pdf > report.txt"))
	fmt.Fprintln(w)
}

// showVersion
func showVersion(w io.Writer) {
	fmt.Fprintln(w, successStyle.Render("pdf-to-txt v"+version))
}

func showError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("Error: "+err.Error()))
}

// isTerminal reports whether w is a terminal device
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(w, "pdf-to-txt: ", log.Ltime|log.Lmicroseconds)
}

// Run parses CLI arguments, then prints the document's pages to stdout or
// starts the viewer. Returns a process exit code.
func Run(argv []string, stdout, stderr io.Writer) int {
	args, err := parseArguments(argv)
	if err != nil {
		showError(stderr, err)
		fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("Run 'pdf-to-txt --help' for usage."))
		return 2
	}
	if args.Help {
		showUsage(stdout)
		return 0
	}
	if args.Version {
		showVersion(stdout)
		return 0
	}

	engine, err := extract.NewRegistry().Get(args.Engine)
	if err != nil {
		showError(stderr, err)
		return 2
	}

	if args.View {
		if !isTerminal(stdout) {
			showError(stderr, fmt.Errorf("%w: --view needs a terminal on stdout", ErrUsage))
			return 2
		}
		return runViewer(args, engine, stdout, stderr)
	}

	w, err := output.NewWriter(stdout, args.Encoding)
	if err != nil {
		showError(stderr, err)
		return 2
	}

	err = printPages(engine, args, w, newLogger(stderr, args.Verbose))
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		showError(stderr, err)
		return 1
	}
	return 0
}
