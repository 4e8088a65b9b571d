package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// LedongthucEngine extracts text with github.com/ledongthuc/pdf.
// It is the default engine.
type LedongthucEngine struct{}

func (e *LedongthucEngine) Name() string { return "ledongthuc" }

// Open implements Engine
func (e *LedongthucEngine) Open(path string) (doc Document, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	// The library panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			f.Close()
			doc = nil
			err = &PanicError{Engine: e.Name(), Value: r}
		}
	}()

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &ledongthucDocument{
		file:     f,
		reader:   reader,
		numPages: reader.NumPage(),
	}, nil
}

type ledongthucDocument struct {
	file     *os.File
	reader   *pdf.Reader
	numPages int
}

func (d *ledongthucDocument) NumPages() int { return d.numPages }

func (d *ledongthucDocument) Page(n int) (page Page, err error) {
	page.Number = n
	if n < 1 || n > d.numPages {
		return page, fmt.Errorf("out of range (1-%d)", d.numPages)
	}

	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Engine: "ledongthuc", Page: n, Value: r}
		}
	}()

	p := d.reader.Page(n)
	if p.V.IsNull() {
		// Page tree is shorter than its /Count; keep the slot so numbering holds.
		return page, nil
	}

	// nil fonts: resource names are only unique within a page.
	text, err := p.GetPlainText(nil)
	if err != nil {
		return page, err
	}
	page.Text = strings.TrimSpace(text)
	return page, nil
}

func (d *ledongthucDocument) Close() error {
	return closeFile(d.file)
}
