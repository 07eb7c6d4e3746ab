package renderer

import (
	"html/template"
	"strings"

	"github.com/unrolled/render"
)

// New builds the HTML/JSON renderer. Templates are reloaded on every
// request in development.
func New(directory string, isDevelopment bool) *render.Render {
	if directory == "" {
		directory = "templates"
	}
	return render.New(render.Options{
		Directory:     directory,
		Layout:        "layout",
		Extensions:    []string{".html"},
		IsDevelopment: isDevelopment,
		Funcs: []template.FuncMap{
			{
				"join": strings.Join,
				"initial": func(s string) string {
					s = strings.TrimSpace(s)
					if s == "" {
						return "?"
					}
					return strings.ToUpper(s[:1])
				},
				"add": func(a, b int) int { return a + b },
				"sub": func(a, b int) int { return a - b },
			},
		},
	})
}
