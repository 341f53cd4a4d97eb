package scaffold

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates
var templateFS embed.FS

// render executes the named embedded template with the project as data.
func render(name string, p Project) (string, error) {
	content, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", name, err)
	}

	tmpl := template.New(name).Funcs(helperFuncs())
	tmpl, err = tmpl.Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

// helperFuncs merges the project-specific helpers into the sprig function
// map.
func helperFuncs() template.FuncMap {
	funcMap := sprig.TxtFuncMap()

	customFuncs := template.FuncMap{
		"fence": fenceFunc,
	}
	for name, fn := range customFuncs {
		funcMap[name] = fn
	}

	return funcMap
}

// fenceFunc wraps content in a markdown fenced code block with an optional
// language tag.
func fenceFunc(language, content string) string {
	if language == "" {
		return fmt.Sprintf("```\n%s\n```", content)
	}
	return fmt.Sprintf("```%s\n%s\n```", language, content)
}
