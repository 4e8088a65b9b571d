package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Default caps for pdfcpu text extraction.
const (
	DefaultPerPageCap = 128 * 1024 // 128 KiB per-page text cap
)

func init() {
	// Keep pdfcpu from creating a config dir under the user's home.
	api.DisableConfigDir()
}

// PDFCPUEngine extracts text with github.com/pdfcpu/pdfcpu. pdfcpu has no
// font-aware text extraction, so page content streams are dumped to a
// temporary directory and their string literals collected. Output is
// ASCII-normalized.
type PDFCPUEngine struct {
	// PerPageCap bounds the text kept per page (<=0 for DefaultPerPageCap)
	PerPageCap int
}

func (e *PDFCPUEngine) Name() string { return "pdfcpu" }

// Open implements Engine
func (e *PDFCPUEngine) Open(path string) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &PanicError{Engine: e.Name(), Value: r}
		}
	}()

	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	numPages, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	tmpDir, err := os.MkdirTemp("", "pdf-to-txt_pdfcpu_*")
	if err != nil {
		return nil, fmt.Errorf("temp dir: %w", err)
	}

	d := &pdfcpuDocument{
		dir:        tmpDir,
		numPages:   numPages,
		files:      make(map[int]string),
		perPageCap: e.PerPageCap,
	}
	if d.perPageCap <= 0 {
		d.perPageCap = DefaultPerPageCap
	}
	if numPages == 0 {
		return d, nil
	}

	// Dump content streams (PDF syntax) for all pages.
	if err := api.ExtractContentFile(path, tmpDir, nil, nil); err != nil {
		os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("pdfcpu ExtractContentFile: %w", err)
	}
	if err := d.indexContentFiles(); err != nil {
		os.RemoveAll(tmpDir)
		return nil, err
	}
	return d, nil
}

type pdfcpuDocument struct {
	dir        string
	numPages   int
	files      map[int]string
	perPageCap int
}

// contentFileRe matches pdfcpu's "<name>_Content_page_<n>.txt" output.
var contentFileRe = regexp.MustCompile(`_(\d+)\.txt$`)

// indexContentFiles maps page numbers to dumped content files. Names are
// parsed rather than sorted so page 10 does not land between 1 and 2.
func (d *pdfcpuDocument) indexContentFiles() error {
	ents, err := os.ReadDir(d.dir)
	if err != nil {
		return fmt.Errorf("read dir: %w", err)
	}
	for _, de := range ents {
		if de.IsDir() {
			continue
		}
		m := contentFileRe.FindStringSubmatch(de.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		d.files[n] = filepath.Join(d.dir, de.Name())
	}
	return nil
}

func (d *pdfcpuDocument) NumPages() int { return d.numPages }

func (d *pdfcpuDocument) Page(n int) (Page, error) {
	page := Page{Number: n}
	if n < 1 || n > d.numPages {
		return page, fmt.Errorf("out of range (1-%d)", d.numPages)
	}
	fp, ok := d.files[n]
	if !ok {
		// pdfcpu writes nothing for pages without content.
		return page, nil
	}
	data, err := os.ReadFile(fp)
	if err != nil {
		return page, err
	}

	txt := asciiNormalize(parseStringLiterals(string(data), d.perPageCap))
	if len(txt) > d.perPageCap {
		txt = txt[:d.perPageCap]
	}
	page.Text = txt
	return page, nil
}

func (d *pdfcpuDocument) Close() error {
	return os.RemoveAll(d.dir)
}

// parseStringLiterals collects text within balanced parentheses of a PDF
// content stream, decoding backslash escapes, and caps output size.
// Each literal is followed by a space.
func parseStringLiterals(s string, maxOut int) string {
	var out strings.Builder
	depth := 0
	in := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !in {
			if c == '(' {
				in = true
				depth = 1
			}
			continue
		}
		switch c {
		case '\\':
			if i+1 >= len(s) {
				continue
			}
			b, width, ok := unescape(s[i+1:])
			i += width
			if ok {
				out.WriteByte(b)
			}
		case '(':
			depth++
			out.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				in = false
				out.WriteByte(' ')
			} else {
				out.WriteByte(c)
			}
		default:
			out.WriteByte(c)
		}
		if out.Len() >= maxOut {
			return out.String()[:maxOut]
		}
	}
	return out.String()
}

// unescape decodes the escape sequence following a backslash in a literal
// string. It returns the byte, how many bytes of rest it consumed, and false
// for a line continuation, which produces nothing.
func unescape(rest string) (byte, int, bool) {
	c := rest[0]
	switch {
	case c >= '0' && c <= '7':
		// up to three octal digits; high-order overflow is ignored
		v, n := 0, 0
		for n < 3 && n < len(rest) && rest[n] >= '0' && rest[n] <= '7' {
			v = v*8 + int(rest[n]-'0')
			n++
		}
		return byte(v), n, true
	case c == '\r':
		if len(rest) > 1 && rest[1] == '\n' {
			return 0, 2, false
		}
		return 0, 1, false
	case c == '\n':
		return 0, 1, false
	case c == 'n', c == 'r', c == 't', c == 'b', c == 'f':
		return ' ', 1, true
	}
	return c, 1, true
}

// asciiNormalize collapses all non-printable or non-ASCII runes to space and
// then normalizes whitespace to single spaces.
func asciiNormalize(s string) string {
	ascii := strings.Map(func(r rune) rune {
		if r > 127 || !unicode.IsPrint(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(ascii), " ")
}
