package ui

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/danielxmed/nobra-calculator/domain/score"
)

// handleScoreDocs renders a human-readable documentation page for one score
// from its descriptor: title, description, parameters, interpretation bands,
// notes and references.
func (a *App) handleScoreDocs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	descriptor, err := a.scores.Get(id)
	if err != nil {
		a.writeError(w, err)
		return
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	page := markdown.ToHTML([]byte(docsMarkdown(descriptor)), p, renderer)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

// docsMarkdown builds the markdown source for a descriptor's docs page.
func docsMarkdown(d *score.Descriptor) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", d.Title)
	if d.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", d.Description)
	}
	if d.Category != "" {
		fmt.Fprintf(&b, "**Category:** %s\n\n", d.Category)
	}

	b.WriteString("## Parameters\n\n")
	for _, p := range d.Parameters {
		required := "optional"
		if p.Required {
			required = "required"
		}
		fmt.Fprintf(&b, "- `%s` (%s, %s)", p.Name, p.Type, required)
		if p.Unit != "" {
			fmt.Fprintf(&b, " — %s", p.Unit)
		}
		if len(p.Enum) > 0 {
			fmt.Fprintf(&b, ", one of: %s", strings.Join(p.Enum, ", "))
		}
		if p.Min != nil && p.Max != nil {
			fmt.Fprintf(&b, ", range [%v, %v]", *p.Min, *p.Max)
		}
		if p.Description != "" {
			fmt.Fprintf(&b, ". %s", p.Description)
		}
		b.WriteString("\n")
	}

	if len(d.Interpretation) > 0 {
		b.WriteString("\n## Interpretation\n\n")
		for _, band := range d.Interpretation {
			fmt.Fprintf(&b, "- **%s** [%v, %v): %s\n",
				band.Stage, bandBound(band.Min, "-∞"), bandBound(band.Max, "∞"), band.Interpretation)
		}
	}

	if len(d.Notes) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, note := range d.Notes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	}

	if len(d.References) > 0 {
		b.WriteString("\n## References\n\n")
		for i, ref := range d.References {
			fmt.Fprintf(&b, "%d. %s\n", i+1, ref)
		}
	}

	return b.String()
}

func bandBound(b *float64, unbounded string) string {
	if b == nil {
		return unbounded
	}
	return fmt.Sprintf("%v", *b)
}
