package extract

import (
	"fmt"
	"math"
	"os"
	"strings"

	"rsc.io/pdf"
)

// RSCEngine extracts text with rsc.io/pdf. The library reports individual
// glyphs with their positions but drops space glyphs, so when the fonts
// carry /Widths lines and word gaps are rebuilt from baselines and advances.
// Without widths (the standard 14 fonts usually have none) every glyph
// reports the same X, and the text is read from the content stream's show
// operators instead.
type RSCEngine struct{}

func (e *RSCEngine) Name() string { return "rsc" }

// Open implements Engine
func (e *RSCEngine) Open(path string) (doc Document, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

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

	return &rscDocument{
		file:     f,
		reader:   reader,
		numPages: reader.NumPage(),
	}, nil
}

type rscDocument struct {
	file     *os.File
	reader   *pdf.Reader
	numPages int
}

func (d *rscDocument) NumPages() int { return d.numPages }

func (d *rscDocument) Page(n int) (page Page, err error) {
	page.Number = n
	if n < 1 || n > d.numPages {
		return page, fmt.Errorf("out of range (1-%d)", d.numPages)
	}

	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Engine: "rsc", Page: n, Value: r}
		}
	}()

	p := d.reader.Page(n)
	if p.V.IsNull() {
		return page, nil
	}

	glyphs := p.Content().Text
	if hasAdvances(glyphs) {
		page.Text = strings.TrimSpace(joinGlyphs(glyphs))
	} else {
		page.Text = strings.TrimSpace(streamText(p))
	}
	return page, nil
}

func (d *rscDocument) Close() error {
	return closeFile(d.file)
}

func hasAdvances(glyphs []pdf.Text) bool {
	for _, g := range glyphs {
		if g.W > 0 {
			return true
		}
	}
	return false
}

// joinGlyphs concatenates glyphs in content-stream order. A baseline move of
// more than half the font size starts a new line; a horizontal gap wider
// than a quarter of the font size becomes a space.
func joinGlyphs(glyphs []pdf.Text) string {
	var b strings.Builder
	for i, g := range glyphs {
		if i > 0 {
			prev := glyphs[i-1]
			size := math.Max(math.Max(prev.FontSize, g.FontSize), 1)
			switch {
			case math.Abs(g.Y-prev.Y) > size/2:
				b.WriteByte('\n')
			case g.X-(prev.X+prev.W) > size/4:
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
	}
	return b.String()
}

// tjSpace is the TJ adjustment (thousandths of an em) read as a word break
const tjSpace = -250

// streamText replays the page's text operators, decoding shown strings with
// the current font's encoding. Vertical moves start a new line.
func streamText(p pdf.Page) string {
	var b strings.Builder
	var enc pdf.TextEncoding = rawEncoding{}

	newline := func() {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteByte('\n')
		}
	}
	space := func() {
		if s := b.String(); s != "" && !strings.HasSuffix(s, " ") && !strings.HasSuffix(s, "\n") {
			b.WriteByte(' ')
		}
	}

	pdf.Interpret(p.V.Key("Contents"), func(stk *pdf.Stack, op string) {
		n := stk.Len()
		args := make([]pdf.Value, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = stk.Pop()
		}

		switch op {
		case "Tf":
			if n == 2 {
				enc = p.Font(args[0].Name()).Encoder()
			}
		case "Td", "TD":
			if n == 2 {
				if args[1].Float64() != 0 {
					newline()
				} else if args[0].Float64() > 0 {
					space()
				}
			}
		case "T*":
			newline()
		case "Tj":
			if n == 1 {
				b.WriteString(enc.Decode(args[0].RawString()))
			}
		case "'", "\"":
			newline()
			if n > 0 {
				b.WriteString(enc.Decode(args[n-1].RawString()))
			}
		case "TJ":
			if n != 1 {
				return
			}
			arr := args[0]
			for i := 0; i < arr.Len(); i++ {
				v := arr.Index(i)
				if v.Kind() == pdf.String {
					b.WriteString(enc.Decode(v.RawString()))
				} else if v.Float64() < tjSpace {
					space()
				}
			}
		}
	})
	return b.String()
}

// rawEncoding passes bytes through until a Tf selects a font
type rawEncoding struct{}

func (rawEncoding) Decode(raw string) string { return raw }
