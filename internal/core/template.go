package core

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// ExecuteTemplate renders a sprig-enabled text template. Missing map keys
// render as zero values so `default` works; unknown struct fields fail.
// name appears in errors.
func ExecuteTemplate(name, content string, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Option("missingkey=zero").Parse(content)
	if err != nil {
		return "", fmt.Errorf("%s template: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%s template: %w", name, err)
	}
	return buf.String(), nil
}
