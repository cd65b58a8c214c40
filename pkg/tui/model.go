// Package tui is the terminal front-end over a controller.Controller.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/helmcode/configlint-ai/pkg/controller"
	"github.com/helmcode/configlint-ai/pkg/model"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// SystemClipboard writes to the OS clipboard.
var SystemClipboard controller.Clipboard = controller.ClipboardFunc(func(text string) error {
	return clipboardWriteAll(text)
})

const hint = "ctrl+r analyze • ctrl+t file type • tab/shift+tab switch view • ctrl+y copy fix • esc quit"

// updateMsg reports that the controller state changed.
type updateMsg struct{}

type Model struct {
	ctx     context.Context
	ctl     *controller.Controller
	editor  textarea.Model
	spinner spinner.Model
	styles  Styles
	snap    controller.Snapshot
	status  string
	width   int
}

// New returns a model driving ctl. The editor starts with the
// controller's current snippet.
func New(ctx context.Context, ctl *controller.Controller) Model {
	snap := ctl.Snapshot()

	ta := textarea.New()
	ta.Placeholder = "Paste your configuration here..."
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = true
	ta.SetWidth(80)
	ta.SetHeight(12)
	ta.SetValue(snap.Source)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		ctl:     ctl,
		editor:  ta,
		spinner: sp,
		styles:  DefaultStyles(),
		snap:    snap,
		width:   80,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick, waitForUpdate(m.ctx, m.ctl.Updates()))
}

// waitForUpdate blocks until the controller signals or ctx is done.
func waitForUpdate(ctx context.Context, updates <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-updates:
			return updateMsg{}
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.editor.SetWidth(max(msg.Width-2, 20))
		m.editor.SetHeight(max(msg.Height/3, 5))
		return m, nil

	case updateMsg:
		m.snap = m.ctl.Snapshot()
		return m, waitForUpdate(m.ctx, m.ctl.Updates())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "ctrl+r":
		m.status = ""
		if !m.ctl.Analyze() && strings.TrimSpace(m.editor.Value()) == "" {
			m.status = "Nothing to analyze yet."
		}
	case "ctrl+t":
		m.ctl.SetCategory(nextCategory(m.snap.Category))
	case "tab":
		m.ctl.SelectTab((m.snap.Tab + 1) % controller.Tab(len(controller.Tabs())))
	case "shift+tab":
		n := controller.Tab(len(controller.Tabs()))
		m.ctl.SelectTab((m.snap.Tab + n - 1) % n)
	case "ctrl+y":
		m.status = ""
		if err := m.ctl.Copy(); err != nil {
			m.status = err.Error()
		}
	default:
		var cmd tea.Cmd
		before := m.editor.Value()
		m.editor, cmd = m.editor.Update(msg)
		if after := m.editor.Value(); after != before {
			m.ctl.SetSource(after)
		}
		m.snap = m.ctl.Snapshot()
		return m, cmd
	}
	m.snap = m.ctl.Snapshot()
	return m, nil
}

func nextCategory(c model.Category) model.Category {
	all := model.Categories()
	for i, known := range all {
		if known == c {
			return all[(i+1)%len(all)]
		}
	}
	return model.DefaultCategory
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Config Lint AI"))
	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render("File type: "))
	b.WriteString(m.snap.Category.Label())
	b.WriteString("\n\n")
	b.WriteString(m.editor.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Hint.Render(hint))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Panel.Render(m.renderPanel()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderPanel() string {
	switch p := m.snap.Phase.(type) {
	case controller.Loading:
		return m.spinner.View() + " Analyzing your code..."
	case controller.Failed:
		return m.styles.Error.Render(p.Message)
	case controller.Succeeded:
		return m.renderResult(p)
	default:
		return m.styles.Hint.Render("Paste a file, pick its type and press ctrl+r to check it.")
	}
}

func (m Model) renderResult(p controller.Succeeded) string {
	var parts []string
	if p.Advisory != "" {
		parts = append(parts, m.styles.Advisory.Render(p.Advisory))
	}
	if !p.ShowTabs() {
		parts = append(parts, m.styles.Success.Render(
			fmt.Sprintf("Looks good! No errors were found in your %s.", m.snap.Category.Label())))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	var tabs []string
	for _, t := range controller.Tabs() {
		style := m.styles.InactiveTab
		if t == m.snap.Tab {
			style = m.styles.ActiveTab
		}
		tabs = append(tabs, style.Render(t.Title()))
	}
	parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, tabs...), "")

	result := p.Result
	switch m.snap.Tab {
	case controller.TabErrors:
		if len(result.Errors) == 0 {
			parts = append(parts, m.styles.Hint.Render("No specific errors reported."))
		}
		for _, e := range result.Errors {
			parts = append(parts, m.styles.LineNumber.Render(fmt.Sprintf("Line %d", e.LineNumber))+" "+e.Error)
			if e.Explanation != "" {
				parts = append(parts, "  "+e.Explanation)
			}
		}
	case controller.TabCorrected:
		label := "ctrl+y Copy"
		if m.snap.Copied {
			label = "Copied!"
		}
		parts = append(parts, m.styles.Hint.Render(label), m.styles.Code.Render(strings.TrimRight(result.CorrectedCode, "\n")))
	case controller.TabBestPractices:
		if len(result.BestPractices) == 0 {
			parts = append(parts, m.styles.Hint.Render("No suggestions."))
		}
		for _, bp := range result.BestPractices {
			parts = append(parts, "• "+bp)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
