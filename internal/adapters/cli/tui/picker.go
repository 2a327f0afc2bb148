package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	checkedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	uncheckedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle     = lipgloss.NewStyle().Bold(true)
	spinnerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

// PickItem is one selectable video in the picker
type PickItem struct {
	Name string
	Path string
	Size int64
	Done bool // a subtitle already exists
}

type itemsLoadedMsg struct {
	items []PickItem
	err   error
}

// pickerModel is the bubbletea model for video selection
type pickerModel struct {
	title    string
	load     func() ([]PickItem, error)
	spinner  spinner.Model
	loading  bool
	loadErr  error
	items    []PickItem
	cursor   int
	selected map[int]bool
	done     bool
}

func newPickerModel(title string, load func() ([]PickItem, error)) pickerModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return pickerModel{
		title:    title,
		load:     load,
		spinner:  sp,
		loading:  true,
		selected: make(map[int]bool),
	}
}

func (m pickerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadItems)
}

func (m pickerModel) loadItems() tea.Msg {
	items, err := m.load()
	return itemsLoadedMsg{items: items, err: err}
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case itemsLoadedMsg:
		m.loading = false
		m.loadErr = msg.err
		m.items = msg.items
		if m.loadErr != nil || len(m.items) == 0 {
			return m, tea.Quit
		}
		// Preselect everything still missing a subtitle
		for i, item := range m.items {
			if !item.Done {
				m.selected[i] = true
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case " ", "x":
			m.selected[m.cursor] = !m.selected[m.cursor]
		case "a":
			for i := range m.items {
				m.selected[i] = true
			}
		case "n":
			m.selected = make(map[int]bool)
		case "enter":
			m.done = true
			return m, tea.Quit
		case "q", "ctrl+c", "esc":
			m.selected = make(map[int]bool)
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.loading {
		return fmt.Sprintf("\n %s scanning library...\n", m.spinner.View())
	}
	if m.loadErr != nil || len(m.items) == 0 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render(m.title))
	sb.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		checkbox := "[ ]"
		style := uncheckedStyle
		if m.selected[i] {
			checkbox = "[x]"
			style = checkedStyle
		}

		marker := ""
		if item.Done {
			marker = "  (has subtitle)"
		}

		line := fmt.Sprintf("%s%s %-42s %10s%s",
			cursor, checkbox, TruncateName(item.Name, 42), FormatSize(item.Size), marker)
		sb.WriteString(style.Render(line))
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("\n%d selected | space=toggle, a=all, n=none, enter=confirm, q=cancel\n",
		m.countSelected()))

	return sb.String()
}

func (m pickerModel) countSelected() int {
	count := 0
	for i := range m.items {
		if m.selected[i] {
			count++
		}
	}
	return count
}

// picked returns the selected items in display order
func (m pickerModel) picked() []PickItem {
	result := make([]PickItem, 0, len(m.items))
	for i, item := range m.items {
		if m.selected[i] {
			result = append(result, item)
		}
	}
	return result
}

// RunPicker scans via load while showing a spinner, then lets the user
// choose videos. Returns nil when the user cancelled and an empty
// non-nil slice when they confirmed with nothing checked.
func RunPicker(title string, load func() ([]PickItem, error)) ([]PickItem, error) {
	model := newPickerModel(title, load)
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	result := finalModel.(pickerModel)
	if result.loadErr != nil {
		return nil, result.loadErr
	}
	if !result.done {
		return nil, nil
	}
	return result.picked(), nil
}
