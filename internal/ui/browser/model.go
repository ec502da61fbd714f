// Package browser implements the interactive course list.
//
// The list renders the cached catalog immediately and refreshes it when
// the startup Load finishes, with a spinner shown while it runs. The first
// row is the "Only show favorites" checkbox; every other row is a course.
package browser

import (
	"context"
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/colorprofile"

	"github.com/raphi011/courses/internal/catalog"
	"github.com/raphi011/courses/internal/course"
	"github.com/raphi011/courses/internal/ui/styles"
)

// Catalog is the part of catalog.Controller the browser drives.
type Catalog interface {
	Load(ctx context.Context) error
	ToggleFavorite(ctx context.Context, id int) error
	SetFilterFlag(v bool) error
	CurrentFilterFlag() bool
	VisibleWith(onlyFavorites bool) []course.Course
	State() catalog.State
}

// defaultVisibleRows is used until the terminal reports its size.
const defaultVisibleRows = 15

// chromeRows is the number of lines around the course rows.
const chromeRows = 7

// loadedMsg reports the end of the startup Load.
type loadedMsg struct{ err error }

// Model is the bubbletea model of the course browser.
type Model struct {
	ctx context.Context
	cat Catalog

	spinner spinner.Model
	loading bool
	loadErr error
	err     error
	status  string

	onlyFavorites bool
	searching     bool
	query         string

	rows   []course.Course
	cursor int // 0 is the filter checkbox
	offset int
	height int

	copy func(string) error
}

// New creates a browser over cat. Load starts with Init.
func New(ctx context.Context, cat Catalog) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.PrimaryStyle

	m := &Model{
		ctx:           ctx,
		cat:           cat,
		spinner:       sp,
		loading:       true,
		onlyFavorites: cat.CurrentFilterFlag(),
		copy:          clipboard.WriteAll,
	}
	m.refresh()
	return m
}

// Run shows the browser on stderr until the user quits.
func Run(ctx context.Context, cat Catalog) error {
	profile := colorprofile.Detect(os.Stderr, os.Environ())
	p := tea.NewProgram(New(ctx, cat),
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(*Model); ok {
		return m.err
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m *Model) load() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: m.cat.Load(m.ctx)}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.loading = false
		m.loadErr = msg.err
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.scroll()
		return m, nil

	case tea.KeyPressMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m *Model) updateList(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	// Quitting keeps the error on screen so Run can return it.
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	m.status = ""
	m.err = nil

	switch msg.String() {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "home", "g":
		m.cursor = 0
		m.scroll()
	case "end", "G":
		m.cursor = len(m.rows)
		m.scroll()
	case "space", " ", "enter":
		m.activate()
	case "f":
		m.toggleFilter()
	case "/":
		m.searching = true
	case "esc":
		if m.query != "" {
			m.query = ""
			m.refresh()
		}
	case "y":
		m.yank()
	}

	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.searching = false
		m.query = ""
	case "enter":
		m.searching = false
		return m, nil
	case "up":
		m.move(-1)
		return m, nil
	case "down":
		m.move(1)
		return m, nil
	case "backspace":
		if m.query == "" {
			return m, nil
		}
		r := []rune(m.query)
		m.query = string(r[:len(r)-1])
	default:
		if msg.Text == "" {
			return m, nil
		}
		m.query += msg.Text
	}

	m.cursor = 0
	m.refresh()
	return m, nil
}

// activate toggles the row under the cursor.
func (m *Model) activate() {
	if m.cursor == 0 {
		m.toggleFilter()
		return
	}

	c := m.rows[m.cursor-1]
	if m.cat.State() != catalog.Loaded {
		m.status = "Still loading, try again in a moment"
		return
	}
	if err := m.cat.ToggleFavorite(m.ctx, c.ID); err != nil {
		m.err = err
		return
	}
	m.refresh()
}

func (m *Model) toggleFilter() {
	next := !m.onlyFavorites
	if err := m.cat.SetFilterFlag(next); err != nil {
		m.err = err
		return
	}
	m.onlyFavorites = next
	m.refresh()
}

func (m *Model) yank() {
	c, ok := m.Selected()
	if !ok || c.InstructorImageURL == "" {
		return
	}
	if err := m.copy(c.InstructorImageURL); err != nil {
		m.status = fmt.Sprintf("Failed to copy: %v", err)
		return
	}
	m.status = "Copied image URL of " + c.InstructorName
}

// Selected returns the course under the cursor.
func (m *Model) Selected() (course.Course, bool) {
	if m.cursor == 0 || m.cursor > len(m.rows) {
		return course.Course{}, false
	}
	return m.rows[m.cursor-1], true
}

// Rows returns the courses currently listed.
func (m *Model) Rows() []course.Course {
	return m.rows
}

// refresh re-reads the cache and clamps the cursor.
func (m *Model) refresh() {
	m.rows = course.Search(m.cat.VisibleWith(m.onlyFavorites), m.query)
	if m.cursor > len(m.rows) {
		m.cursor = len(m.rows)
	}
	m.scroll()
}

func (m *Model) move(delta int) {
	m.cursor = max(0, min(m.cursor+delta, len(m.rows)))
	m.scroll()
}

func (m *Model) visibleRows() int {
	if m.height <= 0 {
		return defaultVisibleRows
	}
	return max(1, m.height-chromeRows)
}

// scroll keeps the cursor's course inside the window.
func (m *Model) scroll() {
	n := m.visibleRows()
	idx := max(0, m.cursor-1)
	if idx < m.offset {
		m.offset = idx
	}
	if idx >= m.offset+n {
		m.offset = idx - n + 1
	}
	m.offset = max(0, min(m.offset, max(0, len(m.rows)-n)))
}

func (m *Model) View() tea.View {
	return tea.NewView(m.render())
}

// render draws the whole screen.
func (m *Model) render() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Courses"))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Loading courses…\n")
	case m.loadErr != nil:
		b.WriteString(styles.ErrorStyle.Render("Failed to load: "+m.loadErr.Error()) + "\n")
	default:
		b.WriteString("\n")
	}

	b.WriteString(m.cursorMark(0) + styles.PrimaryStyle.Render(styles.Checkbox(m.onlyFavorites)+" Only show favorites") + "\n")

	if m.searching || m.query != "" {
		b.WriteString("  " + styles.MutedStyle.Render("Search: ") + styles.HighlightStyle.Render(m.query))
		if m.searching {
			b.WriteString("▏")
		}
		b.WriteString("\n")
	}

	if len(m.rows) == 0 {
		b.WriteString("  " + styles.MutedStyle.Render(m.emptyText()) + "\n")
	}

	end := min(m.offset+m.visibleRows(), len(m.rows))
	if m.offset > 0 {
		b.WriteString(styles.MutedStyle.Render("  ↑ more above") + "\n")
	}
	for i := m.offset; i < end; i++ {
		c := m.rows[i]
		title := styles.NormalStyle.Render(c.Title)
		if m.cursor == i+1 {
			title = styles.AccentStyle.Render(c.Title)
		}
		fmt.Fprintf(&b, "%s%s %s %s\n", m.cursorMark(i+1), styles.FormatFavorite(c.Favorite), title,
			styles.MutedStyle.Render(c.InstructorName))
	}
	if end < len(m.rows) {
		b.WriteString(styles.MutedStyle.Render("  ↓ more below") + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(styles.ErrorStyle.Render(m.err.Error()) + "\n")
	case m.status != "":
		b.WriteString(styles.MutedStyle.Render(m.status) + "\n")
	}
	b.WriteString(styles.MutedStyle.Render(m.help()))

	return b.String()
}

func (m *Model) cursorMark(row int) string {
	if m.cursor == row {
		return styles.AccentStyle.Render(styles.CurrentSymbols().Cursor) + " "
	}
	return "  "
}

func (m *Model) emptyText() string {
	switch {
	case m.query != "":
		return "No matching courses"
	case m.onlyFavorites:
		return "No favorites yet"
	case m.loading:
		return "Nothing cached yet"
	default:
		return "No courses"
	}
}

func (m *Model) help() string {
	if m.searching {
		return "type to search • ↑/↓ move • enter done • esc clear"
	}
	return "↑/↓ move • space toggle • f favorites • / search • y copy image • q quit"
}
