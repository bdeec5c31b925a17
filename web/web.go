// Package web embeds the server-rendered dashboard page.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var FS embed.FS

// Dashboard is the dashboard page template, parsed once at start-up.
var Dashboard = template.Must(template.ParseFS(FS, "templates/dashboard.html"))
