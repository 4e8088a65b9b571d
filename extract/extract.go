package extract

import (
	"errors"
	"fmt"
	"iter"
	"sort"
	"strings"
)

// ErrUnknownEngine is returned by Registry.Get for names with no engine.
var ErrUnknownEngine = errors.New("unknown engine")

// Engine opens PDF documents through one third-party parsing library
type Engine interface {
	// Name is the registry key, e.g. "ledongthuc"
	Name() string
	// Open parses the file at path. Missing files, unreadable files and
	// files that are not PDFs all fail here.
	Open(path string) (Document, error)
}

// Document is an opened PDF owned by the caller until Close
type Document interface {
	NumPages() int
	// Page returns the text of page n (1-based)
	Page(n int) (Page, error)
	Close() error
}

// Page is the extracted text of a single page
type Page struct {
	Number int
	Text   string
}

// PanicError wraps a panic raised inside a parsing library
type PanicError struct {
	Engine string
	Page   int
	Value  any
}

func (e *PanicError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("%s: page %d: panic: %v", e.Engine, e.Page, e.Value)
	}
	return fmt.Sprintf("%s: panic: %v", e.Engine, e.Value)
}

// Pages yields every page of doc in physical order
func Pages(doc Document) iter.Seq2[Page, error] {
	return PageRange(doc, 1, doc.NumPages())
}

// PageRange yields pages first..last (inclusive, 1-based) in physical order.
// Bounds are clamped to the document. The sequence stops after the first
// error.
func PageRange(doc Document, first, last int) iter.Seq2[Page, error] {
	return func(yield func(Page, error) bool) {
		n := doc.NumPages()
		if first < 1 {
			first = 1
		}
		if last <= 0 || last > n {
			last = n
		}
		for i := first; i <= last; i++ {
			p, err := doc.Page(i)
			if err != nil {
				yield(Page{Number: i}, fmt.Errorf("page %d: %w", i, err))
				return
			}
			if !yield(p, nil) {
				return
			}
		}
	}
}

// Registry holds the available engines keyed by name
type Registry struct {
	engines map[string]Engine
}

// NewRegistry creates a registry with the built-in engines
func NewRegistry() *Registry {
	reg := &Registry{
		engines: make(map[string]Engine),
	}
	reg.registerBuiltIns()
	return reg
}

// Register adds or replaces an engine
func (r *Registry) Register(e Engine) {
	r.engines[strings.ToLower(e.Name())] = e
}

// Get returns the engine for name (case-insensitive)
func (r *Registry) Get(name string) (Engine, error) {
	e, ok := r.engines[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownEngine, name, strings.Join(r.Names(), ", "))
	}
	return e, nil
}

// Names returns the registered engine names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) registerBuiltIns() {
	r.Register(&LedongthucEngine{})
	r.Register(&RSCEngine{})
	r.Register(&PDFCPUEngine{})
}
