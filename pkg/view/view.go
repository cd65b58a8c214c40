// Package view renders controller state as HTML for the browser UI.
package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/helmcode/configlint-ai/pkg/controller"
	"github.com/helmcode/configlint-ai/pkg/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

type tabData struct {
	ID     string
	Title  string
	Active bool
}

type panelData struct {
	Phase         string
	Error         string
	Advisory      string
	Valid         bool
	CategoryLabel string
	Tabs          []tabData
	ActiveTab     string
	Errors        []model.ErrorDetail
	CorrectedCode string
	BestPractices []string
	Copied        bool
}

type categoryOption struct {
	ID       string
	Label    string
	Selected bool
}

type pageData struct {
	Title      string
	Categories []categoryOption
	Source     string
	Panel      template.HTML
}

// Panel renders the result region for s.
func Panel(s controller.Snapshot) (template.HTML, error) {
	data := panelData{
		Phase:         s.Phase.Name(),
		CategoryLabel: s.Category.Label(),
		Copied:        s.Copied,
	}

	switch p := s.Phase.(type) {
	case controller.Failed:
		data.Error = p.Message
	case controller.Succeeded:
		data.Advisory = p.Advisory
		data.Valid = !p.ShowTabs()
		if p.ShowTabs() {
			data.ActiveTab = s.Tab.String()
			for _, t := range controller.Tabs() {
				data.Tabs = append(data.Tabs, tabData{ID: t.String(), Title: t.Title(), Active: t == s.Tab})
			}
			data.Errors = p.Result.Errors
			data.CorrectedCode = p.Result.CorrectedCode
			data.BestPractices = p.Result.BestPractices
		}
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "panel", data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Page writes the full form page with the result region for s.
func Page(w io.Writer, title string, s controller.Snapshot) error {
	panel, err := Panel(s)
	if err != nil {
		return err
	}
	data := pageData{
		Title:  title,
		Source: s.Source,
		Panel:  panel,
	}
	for _, c := range model.Categories() {
		data.Categories = append(data.Categories, categoryOption{
			ID:       string(c),
			Label:    c.Label(),
			Selected: c == s.Category,
		})
	}
	return templates.ExecuteTemplate(w, "page", data)
}
