package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pdf-to-txt/config"
	"pdf-to-txt/extract"
	"pdf-to-txt/extract/pdftest"
)

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = Run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunPrintsPagesInOrder(t *testing.T) {
	path := pdftest.Write(t, t.TempDir(), "hello.pdf", "Hello", "World")

	code, out, errOut := run(t, path)
	require.Equal(t, 0, code, errOut)
	require.Equal(t, "Hello\nWorld\n", out)
	require.Empty(t, errOut)
}

func TestRunEveryEngine(t *testing.T) {
	path := pdftest.Write(t, t.TempDir(), "abc.pdf", "Alpha", "Bravo", "Charlie")

	for _, engine := range []string{"ledongthuc", "rsc", "pdfcpu"} {
		t.Run(engine, func(t *testing.T) {
			code, out, errOut := run(t, "--engine", engine, path)
			require.Equal(t, 0, code, errOut)
			require.Equal(t, "Alpha\nBravo\nCharlie\n", out)
		})
	}
}

func TestRunZeroPages(t *testing.T) {
	path := pdftest.Write(t, t.TempDir(), "empty.pdf")

	code, out, errOut := run(t, path)
	require.Equal(t, 0, code, errOut)
	require.Empty(t, out)
}

func TestRunMissingFile(t *testing.T) {
	code, out, errOut := run(t, filepath.Join(t.TempDir(), "missing.pdf"))
	require.Equal(t, 1, code)
	require.Empty(t, out)
	require.Contains(t, errOut, "Error")
	require.Contains(t, errOut, "missing.pdf")
}

func TestRunNotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text pretending to be a PDF\n"), 0o644))

	code, out, errOut := run(t, path)
	require.Equal(t, 1, code)
	require.Empty(t, out)
	require.Contains(t, errOut, "Error")
}

func TestRunIsIdempotent(t *testing.T) {
	path := pdftest.Write(t, t.TempDir(), "twice.pdf", "one", "two\nlines", "")

	_, first, _ := run(t, path)
	_, second, _ := run(t, path)
	require.Equal(t, first, second)
	require.NotEmpty(t, first)
}

func TestRunPageWindow(t *testing.T) {
	path := pdftest.Write(t, t.TempDir(), "four.pdf", "p1", "p2", "p3", "p4")

	code, out, _ := run(t, "--first", "2", "--last", "3", path)
	require.Equal(t, 0, code)
	require.Equal(t, "p2\np3\n", out)

	code, out, _ = run(t, path, "-f", "4")
	require.Equal(t, 0, code)
	require.Equal(t, "p4\n", out)
}

func TestRunEncoding(t *testing.T) {
	path := pdftest.Write(t, t.TempDir(), "enc.pdf", "Hi")

	code, out, _ := run(t, "--enc", "UTF-16BE", path)
	require.Equal(t, 0, code)
	require.Equal(t, "\x00H\x00i\x00\n", out)

	code, out, errOut := run(t, "--enc", "klingon", path)
	require.Equal(t, 2, code)
	require.Empty(t, out)
	require.Contains(t, errOut, "klingon")

	code, out, _ = run(t, "--enc", "ASCII7", path)
	require.Equal(t, 0, code)
	require.Equal(t, "Hi\n", out)
}

func TestRunVerboseLogsToStderr(t *testing.T) {
	path := pdftest.Write(t, t.TempDir(), "v.pdf", "Hello")

	code, out, errOut := run(t, "--verbose", path)
	require.Equal(t, 0, code)
	require.Equal(t, "Hello\n", out)
	require.Contains(t, errOut, "page 1 processed")
	require.Contains(t, errOut, "engine ledongthuc")
	require.Contains(t, errOut, "max RSS")
}

func TestEveryEngineHasDescription(t *testing.T) {
	for _, name := range extract.NewRegistry().Names() {
		require.NotEqual(t, "unknown engine", config.GetEngineDescription(name), name)
	}

	var out bytes.Buffer
	showUsage(&out)
	for _, name := range extract.NewRegistry().Names() {
		require.Contains(t, out.String(), name)
	}
}

func TestRunUsageErrors(t *testing.T) {
	path := pdftest.Write(t, t.TempDir(), "u.pdf", "x")

	for name, args := range map[string][]string{
		"no args":        {},
		"two files":      {path, path},
		"unknown flag":   {"--layout", path},
		"unknown engine": {"--engine", "mupdf", path},
		"missing value":  {path, "--engine"},
		"bad page":       {"--first", "zero", path},
		"inverted":       {"--first", "3", "--last", "2", path},
		"view no tty":    {"--view", path},
	} {
		t.Run(name, func(t *testing.T) {
			code, out, errOut := run(t, args...)
			require.Equal(t, 2, code)
			require.Empty(t, out)
			require.Contains(t, errOut, "Error")
		})
	}
}

func TestRunHelpAndVersion(t *testing.T) {
	code, out, _ := run(t, "--help")
	require.Equal(t, 0, code)
	require.Contains(t, out, "USAGE")
	require.Contains(t, out, "--engine")

	code, out, _ = run(t, "-v")
	require.Equal(t, 0, code)
	require.Contains(t, out, "pdf-to-txt v"+version)
}

func TestParseArguments(t *testing.T) {
	args, err := parseArguments([]string{"--engine", "rsc", "--enc", "Latin1", "-l", "9", "--verbose", "--", "-odd-name.pdf"})
	require.NoError(t, err)
	require.Equal(t, &Arguments{
		Path:     "-odd-name.pdf",
		Engine:   "rsc",
		Encoding: "Latin1",
		Last:     9,
		Verbose:  true,
	}, args)

	args, err = parseArguments([]string{"doc.pdf"})
	require.NoError(t, err)
	require.Equal(t, "ledongthuc", args.Engine)
	require.Equal(t, "UTF-8", args.Encoding)
	require.Zero(t, args.First)
	require.Zero(t, args.Last)

	_, err = parseArguments([]string{"--last", "0", "doc.pdf"})
	require.ErrorIs(t, err, ErrUsage)
}
