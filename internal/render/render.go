// Package render turns todo views into HTML.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/mdayat/todo-app/configs"
	"github.com/mdayat/todo-app/internal/todoclient"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"pathEscape": func(id todoclient.ID) string {
		return url.PathEscape(string(id))
	},
}

type Renderer struct {
	ui      configs.UI
	list    *template.Template
	page    *template.Template
	confirm *template.Template
}

func New(ui configs.UI) (*Renderer, error) {
	list, err := template.New("list").Funcs(funcs).ParseFS(templateFS, "templates/list.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse list template: %w", err)
	}

	page, err := template.New("page").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/page.html", "templates/list.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	confirm, err := template.New("confirm").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/confirm.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse confirm template: %w", err)
	}

	return &Renderer{ui: ui, list: list, page: page, confirm: confirm}, nil
}

type listData struct {
	UI    configs.UI
	Items []todoclient.Todo
}

// List writes one row per item in the given order, or the empty-state
// placeholder when there are none. Descriptions are HTML-escaped.
func (r *Renderer) List(w io.Writer, items []todoclient.Todo) error {
	return r.list.ExecuteTemplate(w, "list", listData{UI: r.ui, Items: items})
}

type pageData struct {
	UI     configs.UI
	Items  []todoclient.Todo
	Input  string
	Alerts []string
}

// Page writes the full list page for view.
func (r *Renderer) Page(w io.Writer, view todoclient.View) error {
	return r.page.ExecuteTemplate(w, "layout", pageData{
		UI:     r.ui,
		Items:  view.Items,
		Input:  view.Input,
		Alerts: view.Alerts,
	})
}

type confirmData struct {
	UI     configs.UI
	Alerts []string
	ID     todoclient.ID
	Task   string
}

// Confirm writes the delete confirmation page for todo.
func (r *Renderer) Confirm(w io.Writer, todo todoclient.Todo) error {
	return r.confirm.ExecuteTemplate(w, "layout", confirmData{
		UI:   r.ui,
		ID:   todo.ID,
		Task: todo.Task,
	})
}
