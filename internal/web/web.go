// Package web holds the server-rendered templates of the public pages.
package web

import (
	"embed"
	"html/template"

	"publicweb/internal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

// FuncMap is shared by every public page template.
var FuncMap = template.FuncMap{
	"money": utils.FormatAmount,
	"date":  utils.DisplayDate,
	"hm":    utils.DisplayTime,
	"dash":  utils.OrDash,
}

// Templates parses all embedded templates.
func Templates() (*template.Template, error) {
	return template.New("web").Funcs(FuncMap).ParseFS(templateFS, "templates/*.html")
}

// MustTemplates panics on a broken template; templates are compiled in.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
