// Package hostconfig renders the host platform configuration files written
// into the provisioned environment. Templates are embedded at compile time.
package hostconfig

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"text/template"
)

// TemplateID identifies an embedded template.
type TemplateID string

// ConfigPHP is the environment's config.php.
const ConfigPHP TemplateID = "config.php"

// Package errors for template rendering.
var (
	// ErrTemplateNotFound indicates the requested template doesn't exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrTemplateExecution indicates a failure during template execution.
	ErrTemplateExecution = errors.New("template execution failed")
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// ConfigData feeds the config.php template. Empty test data roots omit the
// matching section.
type ConfigData struct {
	DBType          string
	DBLibrary       string
	DBHost          string
	DBName          string
	DBUser          string
	DBPass          string
	Prefix          string
	Collation       string
	WWWRoot         string
	DataRoot        string
	PHPUnitDataRoot string
	BehatDataRoot   string
	BehatWWWRoot    string
}

type registry struct {
	once      sync.Once
	templates map[TemplateID]*template.Template
	err       error
}

//nolint:gochecknoglobals // embedded templates are parsed once per process
var globalRegistry = &registry{}

func funcMap() template.FuncMap {
	return template.FuncMap{
		// php quotes a string as a single-quoted PHP literal
		"php": PHPString,
	}
}

// PHPString renders s as a single-quoted PHP string literal.
func PHPString(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s) + "'"
}

func (r *registry) load() {
	r.templates = make(map[TemplateID]*template.Template)
	r.err = fs.WalkDir(templateFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".tmpl") {
			return nil
		}

		content, err := templateFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", path, err)
		}

		// templates/config.php.tmpl -> config.php
		id := TemplateID(strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".tmpl"))
		tmpl, err := template.New(string(id)).Funcs(funcMap()).Option("missingkey=error").Parse(string(content))
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", path, err)
		}
		r.templates[id] = tmpl
		return nil
	})
}

func (r *registry) get(id TemplateID) (*template.Template, error) {
	r.once.Do(r.load)
	if r.err != nil {
		return nil, r.err
	}
	tmpl, ok := r.templates[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	return tmpl, nil
}

// Render executes the template id with data.
func Render(id TemplateID, data any) (string, error) {
	tmpl, err := globalRegistry.get(id)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Join(ErrTemplateExecution, fmt.Errorf("template %s: %w", id, err))
	}
	return buf.String(), nil
}

// RenderConfig renders config.php.
func RenderConfig(data ConfigData) (string, error) {
	return Render(ConfigPHP, data)
}
