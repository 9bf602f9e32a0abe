package compile

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"dkc/config"
	"dkc/content"
)

// Values holds the variables made available for template expansion.
type Values struct {
	Context    string
	Deck       string
	Format     string
	SourceFile string
	DeckID     string
	Cards      int
	Pages      int
	Sections   []string
}

func buildSections(c *content.Content) []string {
	var result []string
	for _, page := range c.Plan.Pages {
		if page.SectionStart {
			result = append(result, page.Section.String())
		}
	}
	return result
}

func expandTemplate(c *content.Content, name config.TemplateFieldName, field string) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:    string(name),
		Deck:       c.DeckName,
		Format:     c.OutputFormat.String(),
		SourceFile: strings.TrimSuffix(filepath.Base(c.SrcName), filepath.Ext(c.SrcName)),
		DeckID:     c.ID,
		Cards:      len(c.Cards),
		Pages:      len(c.Plan.Pages),
		Sections:   buildSections(c),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
