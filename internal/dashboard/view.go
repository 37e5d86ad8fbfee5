package dashboard

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
)

//go:embed page.html.tmpl
var pageSource string

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"json": jsonValue,
}).Parse(pageSource))

// jsonValue marshals a value for embedding in the page's inline scripts.
func jsonValue(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

// RenderPage writes the HTML page for a view model.
func (d *Dashboard) RenderPage(w io.Writer, vm ViewModel) error {
	if err := pageTmpl.Execute(w, vm); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
