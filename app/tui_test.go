package app

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"pdf-to-txt/extract"
	"pdf-to-txt/extract/pdftest"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedModel(t *testing.T, texts ...string) model {
	t.Helper()
	m := newModel(&Arguments{Path: "doc.pdf"}, &extract.LedongthucEngine{})
	pages := make([]extract.Page, len(texts))
	for i, s := range texts {
		pages[i] = extract.Page{Number: i + 1, Text: s}
	}
	next, _ := m.Update(pagesLoadedMsg{pages: pages, numPages: len(pages)})
	return next.(model)
}

func update(m model, msg tea.Msg) (model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func TestViewerPaging(t *testing.T) {
	m := loadedModel(t, "Hello", "World", "Again")
	require.False(t, m.loading)
	require.Contains(t, m.View(), "Hello")
	require.Contains(t, m.View(), "Page 1 of 3")

	m, _ = update(m, key("n"))
	require.Equal(t, 1, m.currentPage)
	require.Contains(t, m.View(), "World")

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnd})
	require.Equal(t, 2, m.currentPage)
	m, _ = update(m, key("n"))
	require.Equal(t, 2, m.currentPage)

	m, _ = update(m, key("p"))
	require.Equal(t, 1, m.currentPage)
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyHome})
	require.Equal(t, 0, m.currentPage)
	m, _ = update(m, key("p"))
	require.Equal(t, 0, m.currentPage)
}

func TestViewerEnterQuitsAfterLastPage(t *testing.T) {
	m := loadedModel(t, "one", "two")

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 1, m.currentPage)
	require.Nil(t, cmd)
	require.False(t, m.quitting)

	m, cmd = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.quitting)
	require.NotNil(t, cmd)
}

func TestViewerScrollStaysNonNegative(t *testing.T) {
	m := loadedModel(t, "text")
	m, _ = update(m, key("k"))
	require.Equal(t, 0, m.contentScroll)
	m, _ = update(m, key("j"))
	require.Equal(t, 1, m.contentScroll)
	m, _ = update(m, key("n"))
	require.Equal(t, 0, m.contentScroll)
}

func TestViewerOnlyQuitsWhileLoading(t *testing.T) {
	m := newModel(&Arguments{Path: "doc.pdf"}, &extract.LedongthucEngine{})
	require.Contains(t, m.View(), "Loading")

	m, cmd := update(m, key("n"))
	require.Nil(t, cmd)
	require.True(t, m.loading)

	m, cmd = update(m, key("q"))
	require.True(t, m.quitting)
	require.NotNil(t, cmd)
}

func TestViewerShowsLoadError(t *testing.T) {
	m := newModel(&Arguments{Path: "doc.pdf"}, &extract.LedongthucEngine{})
	m, _ = update(m, pagesLoadedMsg{err: errors.New("not a PDF file")})
	require.Contains(t, m.View(), "not a PDF file")
}

func TestLoadPagesCommand(t *testing.T) {
	path := pdftest.Write(t, t.TempDir(), "view.pdf", "Hello", "World", "!")
	m := newModel(&Arguments{Path: path, First: 2}, &extract.RSCEngine{})

	msg := m.loadPages()().(pagesLoadedMsg)
	require.NoError(t, msg.err)
	require.Equal(t, 3, msg.numPages)
	require.Equal(t, []extract.Page{{Number: 2, Text: "World"}, {Number: 3, Text: "!"}}, msg.pages)

	m, _ = update(m, msg)
	require.Contains(t, m.View(), "Page 2 of 3")
}

func TestCollectPagesMissingFile(t *testing.T) {
	pages, n, err := collectPages(&extract.LedongthucEngine{}, filepath.Join(t.TempDir(), "x.pdf"), 0, 0)
	require.Error(t, err)
	require.Nil(t, pages)
	require.Zero(t, n)
}
