package app

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pdf-to-txt/config"
	"pdf-to-txt/extract"
)

// Styles (shared with CLI usage/version output)
var (
	appStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7aa2f7"))

	subHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a9b1d6"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ece6a")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f7768e")).
			Bold(true)
)

type model struct {
	// Document being viewed
	path   string
	engine extract.Engine
	first  int
	last   int

	// Pages and paging
	pages         []extract.Page
	numPages      int
	currentPage   int
	contentScroll int

	// Session
	loadTime time.Duration
	usage    string
	err      error
	loading  bool
	quitting bool

	// Window size
	width  int
	height int
}

// pagesLoadedMsg carries the result of the background load
type pagesLoadedMsg struct {
	pages    []extract.Page
	numPages int
	loadTime time.Duration
	usage    string
	err      error
}

func newModel(args *Arguments, engine extract.Engine) model {
	return model{
		path:    args.Path,
		engine:  engine,
		first:   args.First,
		last:    args.Last,
		loading: true,
	}
}

func (m model) Init() tea.Cmd {
	return m.loadPages()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case pagesLoadedMsg:
		m.pages = msg.pages
		m.numPages = msg.numPages
		m.loadTime = msg.loadTime
		m.usage = msg.usage
		m.err = msg.err
		m.loading = false
		return m, nil

	case tea.KeyMsg:
		// While loading, only allow quit
		if m.loading {
			switch msg.String() {
			case "q", "ctrl+c":
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter", " ":
			// advance, or quit after the last page
			if m.currentPage < len(m.pages)-1 {
				m.currentPage++
				m.contentScroll = 0
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		case "n", "right", "l":
			if m.currentPage < len(m.pages)-1 {
				m.currentPage++
			}
			m.contentScroll = 0
			return m, nil
		case "p", "left", "h":
			if m.currentPage > 0 {
				m.currentPage--
			}
			m.contentScroll = 0
			return m, nil

		case "home", "g":
			m.currentPage = 0
			m.contentScroll = 0
			return m, nil
		case "end", "G":
			if len(m.pages) > 0 {
				m.currentPage = len(m.pages) - 1
			}
			m.contentScroll = 0
			return m, nil
		case "up", "k":
			m.contentScroll = max(m.contentScroll-1, 0)
			return m, nil
		case "down", "j":
			m.contentScroll++
			return m, nil
		case "pgup":
			m.contentScroll = max(m.contentScroll-5, 0)
			return m, nil
		case "pgdown":
			m.contentScroll += 5
			return m, nil
		}
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	width := m.width
	height := m.height
	if width <= 0 {
		width = 120
	}
	if height <= 0 {
		height = 30
	}

	if m.quitting {
		return ""
	}

	// Header
	var headerLines []string
	headerLines = append(headerLines, headerStyle.Render("📄 pdf-to-txt v"+version))
	headerLines = append(headerLines, subHeaderStyle.Render(wrapTextWithIndent("File: ", m.path, width-4)))
	engineLine := fmt.Sprintf("⚙️ Engine: %s • %s", m.engine.Name(), config.GetPageWindowDescription(m.first, m.last))
	headerLines = append(headerLines, lipgloss.NewStyle().Foreground(lipgloss.Color("#bb9af7")).Render(engineLine))
	if !m.loading {
		status := fmt.Sprintf("⏱️ Extracted %d of %d pages in %.2f seconds", len(m.pages), m.numPages, m.loadTime.Seconds())
		if m.usage != "" {
			status += " • " + m.usage
		}
		headerLines = append(headerLines, lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68")).Render(status))
	} else {
		headerLines = append(headerLines, lipgloss.NewStyle().Foreground(lipgloss.Color("#7dcfff")).Render("⏳ Extracting..."))
	}
	header := strings.Join(headerLines, "\n")
	headerHeight := strings.Count(header, "\n") + 1

	// Main content box
	var boxContent string
	switch {
	case m.loading:
		boxContent = "Loading..."
	case m.err != nil && len(m.pages) == 0:
		boxContent = errorStyle.Render("Error: " + m.err.Error())
	case len(m.pages) == 0:
		boxContent = "No pages."
	default:
		page := m.pages[m.currentPage]
		boxContent = page.Text
		if strings.TrimSpace(boxContent) == "" {
			boxContent = infoStyle.Render("(no text on this page)")
		}
	}

	boxOuterWidth := width - 4
	chromeHeight := 4 // border + padding
	statusHeight := 1
	footerHeight := 1
	contentHeight := height - headerHeight - statusHeight - footerHeight - chromeHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Wrap first so scrolling counts rendered lines
	innerWidth := boxOuterWidth - 6
	if innerWidth < 10 {
		innerWidth = 10
	}
	wrapped := lipgloss.NewStyle().Width(innerWidth).Render(boxContent)
	lines := strings.Split(wrapped, "\n")
	start := m.contentScroll
	if maxStart := len(lines) - contentHeight; start > maxStart {
		start = max(maxStart, 0)
	}
	end := min(start+contentHeight, len(lines))
	window := strings.Join(lines[start:end], "\n")

	// Status line below the box
	var status string
	if !m.loading && len(m.pages) > 0 {
		status = successStyle.Render(fmt.Sprintf("Page %d of %d", m.pages[m.currentPage].Number, m.numPages))
		if m.err != nil {
			status += "  " + errorStyle.Render("Stopped: "+m.err.Error())
		}
	}

	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render("🔚 'ENTER' next • n/p: next/previous • j/k: scroll • 'q' quit")

	return strings.Join([]string{
		header,
		appStyle.Width(boxOuterWidth).Height(contentHeight).Render(window),
		status,
		footer,
	}, "\n")
}

// loadPages extracts the page window in the background
func (m model) loadPages() tea.Cmd {
	engine, path, first, last := m.engine, m.path, m.first, m.last
	return func() tea.Msg {
		start := sampleResources()
		pages, numPages, err := collectPages(engine, path, first, last)
		end := sampleResources()
		return pagesLoadedMsg{
			pages:    pages,
			numPages: numPages,
			loadTime: end.wall.Sub(start.wall),
			usage:    end.since(start),
			err:      err,
		}
	}
}

// collectPages returns the pages read before any error, so the viewer can
// still show them.
func collectPages(engine extract.Engine, path string, first, last int) ([]extract.Page, int, error) {
	doc, err := engine.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer doc.Close()

	var pages []extract.Page
	for p, err := range extract.PageRange(doc, first, last) {
		if err != nil {
			return pages, doc.NumPages(), fmt.Errorf("%s: %w", path, err)
		}
		pages = append(pages, p)
	}
	return pages, doc.NumPages(), nil
}

func runViewer(args *Arguments, engine extract.Engine, stdout, stderr io.Writer) int {
	p := tea.NewProgram(newModel(args, engine), tea.WithAltScreen(), tea.WithOutput(stdout))
	final, err := p.Run()
	if err != nil {
		showError(stderr, err)
		return 1
	}
	if fm, ok := final.(model); ok && fm.err != nil {
		showError(stderr, fm.err)
		return 1
	}
	return 0
}

func wrapTextWithIndent(prefix, text string, width int) string {
	prefixWidth := lipgloss.Width(prefix)
	indent := strings.Repeat(" ", prefixWidth)
	wrapped := lipgloss.NewStyle().Width(width - prefixWidth).Render(text)
	return prefix + strings.ReplaceAll(wrapped, "\n", "\n"+indent)
}
