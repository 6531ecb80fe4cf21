// Package web serves the public HTML pages: collection and artist detail
// views with their paged artwork grids.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer executes the embedded page templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded template set.
func NewRenderer() (*Renderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("web: template parse failed: %w", err)
	}
	return &Renderer{templates: templates}, nil
}

// Render executes one named page template into the writer.
//
// The page is buffered first, so a template failure never leaves a
// half-written response behind.
func (r *Renderer) Render(writer io.Writer, name string, data any) error {
	var buffer bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buffer, name, data); err != nil {
		return fmt.Errorf("web: render %q failed: %w", name, err)
	}

	_, err := buffer.WriteTo(writer)
	return err
}

// RenderContext tracks which style sections a single page render has
// already emitted. Shared partials request their section styles at the top;
// the first request inlines the block and every later one is a no-op, so a
// section repeated on one page never duplicates its styles.
type RenderContext struct {
	emitted map[string]struct{}
}

// NewRenderContext creates an empty per-render context.
func NewRenderContext() *RenderContext {
	return &RenderContext{emitted: make(map[string]struct{})}
}

// Styles returns the inline style block of a section the first time the
// section is requested during this render, and nothing afterwards.
// Unknown sections emit nothing.
func (c *RenderContext) Styles(section string) template.HTML {
	if _, done := c.emitted[section]; done {
		return ""
	}
	c.emitted[section] = struct{}{}

	css, ok := sectionStyles[section]
	if !ok {
		return ""
	}
	return template.HTML("<style data-section=\"" + section + "\">" + css + "</style>")
}

// Scripts returns the inline script block of a section the first time the
// section is requested during this render, and nothing afterwards.
func (c *RenderContext) Scripts(section string) template.HTML {
	key := "script:" + section
	if _, done := c.emitted[key]; done {
		return ""
	}
	c.emitted[key] = struct{}{}

	js, ok := sectionScripts[section]
	if !ok {
		return ""
	}
	return template.HTML("<script data-section=\"" + section + "\">" + js + "</script>")
}

// Emitted reports whether a section's styles were already emitted.
func (c *RenderContext) Emitted(section string) bool {
	_, done := c.emitted[section]
	return done
}
