// Package sources provides the dynamic candidate sources of mycli commands:
// HTTP suggest endpoints and local query commands.
//
// Both are configured with text/template strings that see the word being
// completed as {{ .Word }}; sprig functions are available.
package sources

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// TemplateData is what URL and argument templates are rendered with
type TemplateData struct {
	Word string
}

// parseTemplate compiles a template with sprig functions
func parseTemplate(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(sprig.TxtFuncMap()).
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid template %q: %w", text, err)
	}
	return tmpl, nil
}

func render(tmpl *template.Template, word string) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, TemplateData{Word: word}); err != nil {
		return "", err
	}
	return b.String(), nil
}

// quote wraps candidates containing spaces or quotes in double quotes so they
// survive being tokenized again on the next completion request
func quote(candidates []string) []string {
	quoted := make([]string, len(candidates))
	for i, c := range candidates {
		if !strings.ContainsAny(c, " \"\\") {
			quoted[i] = c
			continue
		}
		escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(c)
		quoted[i] = `"` + escaped + `"`
	}
	return quoted
}
