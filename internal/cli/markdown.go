package cli

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"

	"github.com/theirongolddev/fundcagr/internal/model"
)

type markdownRow struct {
	Label string
	Value string
}

type markdownView struct {
	Code string
	Name string
	AsOf string
	Rows []markdownRow
}

const reportMarkdownTemplate = `# {{ if .Name }}{{ .Name }}{{ else }}Scheme {{ .Code }}{{ end }}
{{ if .Code }}
Scheme code **{{ .Code }}**, as of {{ .AsOf }}.
{{ end }}
| Period | CAGR |
|:---|---:|
{{- range .Rows }}
| {{ .Label }} | {{ .Value }} |
{{- end }}
`

var reportMarkdown = template.Must(template.New("report").Parse(reportMarkdownTemplate))

// ReportMarkdown renders a report as a markdown document.
func ReportMarkdown(r model.Report) (string, error) {
	view := markdownView{
		Code: r.SchemeCode,
		Name: r.SchemeName,
		AsOf: FormatDate(r.AsOf),
	}
	for _, p := range model.Periods {
		v, ok := r.Value(p)
		view.Rows = append(view.Rows, markdownRow{Label: p.Label(), Value: FormatCAGR(v, ok)})
	}

	var b strings.Builder
	if err := reportMarkdown.Execute(&b, view); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return b.String(), nil
}

// RenderMarkdown styles markdown for the terminal. An empty style picks one
// from the terminal background.
func RenderMarkdown(md, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
