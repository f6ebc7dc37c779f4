package narrative

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/peeringlatam/network-planner/internal/estimation"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var funcs = template.FuncMap{
	"num":    num,
	"fixed1": func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
	"fixed2": func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
	"services": func(ids []estimation.ServiceID, locale estimation.Locale) string {
		return ServiceNames(ids, locale)
	},
}

var templates = template.Must(template.New("narrative").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"))

// TemplateNarrator renders the static per-locale texts.
type TemplateNarrator struct{}

func NewTemplateNarrator() *TemplateNarrator {
	return &TemplateNarrator{}
}

func (t *TemplateNarrator) Narrate(_ context.Context, kind Kind, summary Summary) (string, error) {
	name := fmt.Sprintf("%s.%s.tmpl", kind, summary.Locale())

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, summary.Result); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// ServiceNames joins the localized service names.
func ServiceNames(ids []estimation.ServiceID, locale estimation.Locale) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if s, ok := estimation.LookupService(id); ok {
			names = append(names, s.Name(locale))
		}
	}
	return strings.Join(names, ", ")
}
