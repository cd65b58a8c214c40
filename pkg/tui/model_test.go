package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/helmcode/configlint-ai/pkg/controller"
	"github.com/helmcode/configlint-ai/pkg/model"
)

type stubAnalyzer struct {
	mu       sync.Mutex
	category model.Category
	result   *model.AnalysisResult
	err      error
}

func (s *stubAnalyzer) Analyze(ctx context.Context, source string, category model.Category) (*model.AnalysisResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.category = category
	return s.result, s.err
}

func invalidResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		Errors:        []model.ErrorDetail{{LineNumber: 3, Error: "Bad indent", Explanation: "tasks must be a list"}},
		CorrectedCode: "fixed: true",
		BestPractices: []string{"Name every task"},
	}
}

func newModel(t *testing.T, a controller.Analyzer) (Model, *controller.Controller) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	ctl := controller.New(ctx, a,
		controller.WithClock(clocktesting.NewFakeClock(time.Now())),
		controller.WithClipboard(SystemClipboard))
	t.Cleanup(func() {
		cancel()
		ctl.Close()
	})
	return New(ctx, ctl), ctl
}

func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func typeText(t *testing.T, m Model, s string) Model {
	return press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// settle waits for the in-flight call and delivers the update signal.
func settle(t *testing.T, m Model, ctl *controller.Controller) Model {
	ctl.Wait()
	return press(t, m, updateMsg{})
}

func TestTypingUpdatesController(t *testing.T) {
	m, ctl := newModel(t, &stubAnalyzer{})

	m = typeText(t, m, "hosts: all")

	assert.Equal(t, "hosts: all", ctl.Snapshot().Source)
	assert.True(t, m.snap.CanAnalyze())
}

func TestAnalyzeBlankShowsStatus(t *testing.T) {
	m, ctl := newModel(t, &stubAnalyzer{})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})

	assert.IsType(t, controller.Idle{}, ctl.Snapshot().Phase)
	assert.Contains(t, m.View(), "Nothing to analyze yet.")
}

func TestCategoryCycles(t *testing.T) {
	m, ctl := newModel(t, &stubAnalyzer{})
	require.Equal(t, model.CategoryAnsible, m.snap.Category)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})

	assert.Equal(t, model.CategoryGitHubActions, ctl.Snapshot().Category)
	assert.Contains(t, m.View(), "GitHub Actions Workflow")
	assert.Equal(t, model.CategoryAnsible, nextCategory(model.CategoryTerraform))
}

func TestAnalyzeShowsTabs(t *testing.T) {
	stub := &stubAnalyzer{result: invalidResult()}
	m, ctl := newModel(t, stub)

	m = typeText(t, m, "- hosts: all")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	m = settle(t, m, ctl)

	view := m.View()
	assert.Contains(t, view, "Line 3")
	assert.Contains(t, view, "Bad indent")
	assert.Contains(t, view, "Corrected Code")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, controller.TabCorrected, m.snap.Tab)
	assert.Contains(t, m.View(), "fixed: true")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, controller.TabBestPractices, m.snap.Tab)
	assert.Contains(t, m.View(), "Name every task")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, controller.TabErrors, m.snap.Tab)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, controller.TabBestPractices, m.snap.Tab)
}

func TestValidResultHasNoTabs(t *testing.T) {
	stub := &stubAnalyzer{result: &model.AnalysisResult{IsValid: true}}
	m, ctl := newModel(t, stub)

	m = typeText(t, m, "FROM alpine")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	m = settle(t, m, ctl)

	view := m.View()
	assert.Contains(t, view, "Looks good! No errors were found in your Ansible Playbook.")
	assert.NotContains(t, view, "Corrected Code")
}

func TestFailureIsShown(t *testing.T) {
	m, ctl := newModel(t, &stubAnalyzer{err: errors.New("quota exceeded")})

	m = typeText(t, m, "x")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	m = settle(t, m, ctl)

	assert.Contains(t, m.View(), "An error occurred: quota exceeded. Please try again.")
}

func TestCopyWritesClipboard(t *testing.T) {
	var copied string
	orig := clipboardWriteAll
	clipboardWriteAll = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { clipboardWriteAll = orig })

	m, ctl := newModel(t, &stubAnalyzer{result: invalidResult()})
	m = typeText(t, m, "x")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	m = settle(t, m, ctl)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})

	assert.Equal(t, "fixed: true", copied)
	assert.True(t, m.snap.Copied)
	assert.Contains(t, m.View(), "Copied!")
}

func TestCopyBeforeResultShowsStatus(t *testing.T) {
	m, _ := newModel(t, &stubAnalyzer{})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})

	assert.Contains(t, m.View(), controller.ErrNothingToCopy.Error())
}

func TestQuitKeys(t *testing.T) {
	m, _ := newModel(t, &stubAnalyzer{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
