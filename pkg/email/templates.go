package email

import (
	"embed"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed templates/*.html templates/*.txt
var templateFS embed.FS

// loadTemplates parses the HTML bodies with contextual escaping and the
// plain-text bodies without it.
func loadTemplates() (*htmltemplate.Template, *texttemplate.Template, error) {
	html, err := htmltemplate.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, nil, err
	}
	text, err := texttemplate.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, nil, err
	}
	return html, text, nil
}
