// internal/report/report.go
// Package report exports leaderboard tables as a standalone HTML page.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/mwiater/arenaboard/internal/leaderboard"
)

// Section is one competition in the exported page.
type Section struct {
	Primary   leaderboard.Table  `json:"primary"`
	Secondary *leaderboard.Table `json:"secondary,omitempty"`
	Note      string             `json:"note,omitempty"`
}

// Report is the full export.
type Report struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

type pageData struct {
	Title     string
	Sections  []sectionView
	TableJSON template.JS
}

type sectionView struct {
	Anchor    string
	Title     string
	Note      string
	Warning   string
	Headers   []headerView
	Rows      []rowView
	Secondary *secondaryView
}

type headerView struct {
	Title      string
	Difficulty string
	Class      string
}

type rowView struct {
	Rank    int
	Model   string
	Flagged bool
	Lead    []string
	Cells   []cellView
}

type cellView struct {
	Text  string
	Color string
	Class string
}

type secondaryView struct {
	Headers []string
	Rows    [][]string
}

// Generate renders the report as a standalone HTML document.
func Generate(r Report) (string, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode report data: %w", err)
	}

	data := pageData{Title: r.Title, TableJSON: template.JS(payload)}
	if data.Title == "" {
		data.Title = "arenaboard: Leaderboard Export"
	}
	for _, s := range r.Sections {
		data.Sections = append(data.Sections, buildSection(s))
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

func buildSection(s Section) sectionView {
	t := s.Primary
	view := sectionView{
		Anchor:  anchor(t.Competition),
		Title:   t.Title,
		Note:    s.Note,
		Warning: t.Warning,
	}

	lead := []string{leaderboard.FieldAcc, leaderboard.FieldCost}
	if !t.Aggregate {
		for _, h := range lead {
			view.Headers = append(view.Headers, headerView{Title: h})
		}
	}
	for _, c := range t.Columns {
		h := headerView{Title: c.Title, Class: c.DifficultyClass}
		if c.Difficulty.Valid {
			h.Difficulty = fmt.Sprintf("%d", c.Difficulty.Value)
		}
		view.Headers = append(view.Headers, h)
	}

	for i, r := range t.Rows {
		row := rowView{Rank: i + 1, Model: r.Model, Flagged: r.Flagged}
		if !t.Aggregate {
			row.Lead = []string{leaderboard.FormatPercent(r.Primary), leaderboard.FormatDollars(r.Cost)}
		}
		for _, c := range r.Cells {
			row.Cells = append(row.Cells, cellFor(t, c))
		}
		view.Rows = append(view.Rows, row)
	}

	if s.Secondary != nil {
		sec := &secondaryView{Headers: []string{"Model"}}
		for _, c := range s.Secondary.Columns {
			sec.Headers = append(sec.Headers, c.Title)
		}
		for _, r := range s.Secondary.Rows {
			line := []string{r.Model}
			for _, c := range r.Cells {
				line = append(line, c.Display)
			}
			sec.Rows = append(sec.Rows, line)
		}
		view.Secondary = sec
	}
	return view
}

func cellFor(t leaderboard.Table, c leaderboard.Cell) cellView {
	if !t.Aggregate {
		return cellView{Text: c.Display, Color: c.Tier.Color(), Class: "tier-" + c.Tier.String()}
	}
	var parts []string
	if sym := c.Medal.Symbol(); sym != "" {
		parts = append(parts, sym)
	}
	if c.Flagged {
		parts = append(parts, "⚠️")
	}
	parts = append(parts, c.Display)
	return cellView{Text: strings.Join(parts, " "), Class: "medal-" + c.Medal.String()}
}

func anchor(id string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(id) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return "comp-" + b.String()
}

var reportTemplate = template.Must(template.New("leaderboard-report").Parse(reportTemplateHTML))

const reportTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <style>
    :root {
      --primary: #334155;
      --light: #F1F5F9;
      --text: #0F172A;
      --border: #E2E8F0;
      --warning: #F59E0B;
    }
    body { background-color: var(--light); color: var(--text); }
    .navbar-dark { background-color: var(--primary) !important; }
    .card { border: 1px solid var(--border); }
    .table td.task { color: #000; text-align: center; min-width: 2.5rem; }
    .table td.num { text-align: right; }
    .difficulty { display: block; font-size: 0.7rem; font-weight: normal; }
    .difficulty.easy { color: #10B981; }
    .difficulty.medium { color: #F59E0B; }
    .difficulty.hard { color: #EF4444; }
    .warning { color: var(--warning); }
    .note { font-style: italic; }
  </style>
</head>
<body>
  <nav class="navbar navbar-dark mb-4">
    <div class="container-fluid">
      <span class="navbar-brand mb-0 h1">{{ .Title }}</span>
    </div>
  </nav>
  <main class="container-fluid">
    <ul class="nav nav-pills mb-3">
      {{- range .Sections }}
      <li class="nav-item"><a class="nav-link" href="#{{ .Anchor }}">{{ .Title }}</a></li>
      {{- end }}
    </ul>
    {{- range .Sections }}
    <section class="card mb-4" id="{{ .Anchor }}">
      <div class="card-body">
        <h2 class="h4">{{ .Title }}</h2>
        {{- if .Note }}
        <p class="note">{{ .Note }}</p>
        {{- end }}
        <div class="table-responsive">
          <table class="table table-sm table-bordered">
            <thead>
              <tr>
                <th>#</th>
                <th>Model</th>
                {{- range .Headers }}
                <th>{{ .Title }}{{ if .Difficulty }}<span class="difficulty {{ .Class }}">{{ .Difficulty }}</span>{{ end }}</th>
                {{- end }}
              </tr>
            </thead>
            <tbody>
              {{- range .Rows }}
              <tr>
                <td class="num">{{ .Rank }}</td>
                <td>{{ .Model }}{{ if .Flagged }} <span class="warning">⚠️</span>{{ end }}</td>
                {{- range .Lead }}
                <td class="num">{{ . }}</td>
                {{- end }}
                {{- range .Cells }}
                {{- if .Color }}
                <td class="task {{ .Class }}" style="background-color: {{ .Color }}">{{ .Text }}</td>
                {{- else }}
                <td class="num {{ .Class }}">{{ .Text }}</td>
                {{- end }}
                {{- end }}
              </tr>
              {{- end }}
            </tbody>
          </table>
        </div>
        {{- if .Warning }}
        <p class="warning">{{ .Warning }}</p>
        {{- end }}
        {{- with .Secondary }}
        <h3 class="h6 mt-3">Tokens and cost</h3>
        <table class="table table-sm table-striped">
          <thead>
            <tr>{{ range .Headers }}<th>{{ . }}</th>{{ end }}</tr>
          </thead>
          <tbody>
            {{- range .Rows }}
            <tr>{{ range . }}<td>{{ . }}</td>{{ end }}</tr>
            {{- end }}
          </tbody>
        </table>
        {{- end }}
      </div>
    </section>
    {{- end }}
  </main>
  <script type="application/json" id="leaderboard-data">{{ .TableJSON }}</script>
</body>
</html>
`
