package controller

import "github.com/helmcode/configlint-ai/pkg/model"

// Phase is the request lifecycle. It is a closed set: Idle, Loading,
// Succeeded and Failed are the only implementations.
type Phase interface {
	phase()
	Name() string
}

// Idle is the initial phase: nothing requested yet.
type Idle struct{}

// Loading means exactly one analysis call is in flight.
type Loading struct{}

// Succeeded holds the settled result. Advisory is set when the model
// reported the snippet invalid without naming any error; it is shown
// next to the result, not instead of it.
type Succeeded struct {
	Result   *model.AnalysisResult
	Advisory string
}

// Failed holds the user-facing message of a settled failure.
type Failed struct {
	Message string
}

func (Idle) phase()      {}
func (Loading) phase()   {}
func (Succeeded) phase() {}
func (Failed) phase()    {}

func (Idle) Name() string      { return "idle" }
func (Loading) Name() string   { return "loading" }
func (Succeeded) Name() string { return "success" }
func (Failed) Name() string    { return "error" }

// ShowTabs reports whether the tabbed error/corrected/best-practice view applies.
func (s Succeeded) ShowTabs() bool {
	return s.Result != nil && !s.Result.IsValid
}

// Tab selects one of the three result views.
type Tab int

const (
	TabErrors Tab = iota
	TabCorrected
	TabBestPractices
)

var tabNames = [...]string{"errors", "corrected", "best-practices"}

// Tabs lists the views in display order.
func Tabs() []Tab { return []Tab{TabErrors, TabCorrected, TabBestPractices} }

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "unknown"
	}
	return tabNames[t]
}

func (t Tab) Title() string {
	switch t {
	case TabErrors:
		return "Errors"
	case TabCorrected:
		return "Corrected Code"
	case TabBestPractices:
		return "Best Practices"
	default:
		return "Unknown"
	}
}

// ParseTab maps a tab name back to a Tab.
func ParseTab(s string) (Tab, bool) {
	for i, name := range tabNames {
		if name == s {
			return Tab(i), true
		}
	}
	return TabErrors, false
}
