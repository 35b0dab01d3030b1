// internal/app/resources/resources.go
package resources

import (
	"embed"
	"fmt"
	"html/template"
	"sync"

	"github.com/dalemusser/waffle/pantry/templates"
)

// Layout blocks every page template includes.
var requiredBlocks = []string{"page_head", "page_footer"}

//go:embed templates/*.gohtml
var FS embed.FS

var registerOnce sync.Once

// LoadSharedTemplates checks the shared layout and registers it with the
// engine. Only the first call registers.
func LoadSharedTemplates() error {
	if err := checkLayout(); err != nil {
		return err
	}
	registerOnce.Do(func() {
		templates.Register(templates.Set{
			Name:     "shared",
			FS:       FS,
			Patterns: []string{"templates/*.gohtml"},
		})
	})
	return nil
}

// checkLayout parses the shared templates and verifies the layout blocks
// are defined.
func checkLayout() error {
	t, err := template.ParseFS(FS, "templates/*.gohtml")
	if err != nil {
		return fmt.Errorf("parse shared templates: %w", err)
	}
	for _, name := range requiredBlocks {
		if t.Lookup(name) == nil {
			return fmt.Errorf("shared templates: missing %q", name)
		}
	}
	return nil
}
