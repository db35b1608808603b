package triagem

import (
	"embed"
	"html/template"
	"io"

	"github.com/russross/blackfriday/v2"
)

var (
	//go:embed templates/*
	templateFS embed.FS

	//go:embed assets/css/output.css
	cssContent string

	// Template manager with mold for layout support
	templateManager *TemplateManager = nil

	// TemplateFuncMap contains custom template functions available globally
	TemplateFuncMap = template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"markdown": func(text string) template.HTML {
			return template.HTML(blackfriday.Run([]byte(text)))
		},
	}
)

func init() {
	templateManager = NewTemplateManager()
	templateManager.AddFuncMap(TemplateFuncMap)
	if err := templateManager.LoadFromFS(templateFS); err != nil {
		panic(err)
	}
}

// RenderPage renders a page template, injecting the embedded CSS.
func RenderPage(w io.Writer, pageName string, data map[string]any) error {
	if data == nil {
		data = make(map[string]any)
	}
	data["CSS"] = template.CSS(cssContent)
	return templateManager.Render(w, "pages/"+pageName, data)
}
