package export

import (
	"html/template"
	"os"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/import-formatter/internal/model"
)

// ReportData feeds the HTML run report.
type ReportData struct {
	RunID       string
	SourceFile  string
	GeneratedAt time.Time
	Stats       model.Stats
	Errors      []string
	Warnings    []string
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>Rapport de formatage — {{.SourceFile}}</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
h1 { font-size: 1.3em; }
table.stats td { padding: 2px 12px 2px 0; }
ul.errors li { color: #b00020; }
ul.warnings li { color: #8a6d00; }
footer { margin-top: 2em; font-size: 0.8em; color: #888; }
</style>
</head>
<body>
<h1>Rapport de formatage</h1>
<table class="stats">
<tr><td>Fichier source</td><td>{{.SourceFile}}</td></tr>
<tr><td>Exécution</td><td>{{.RunID}}</td></tr>
<tr><td>Lignes lues</td><td>{{.Stats.TotalRows}}</td></tr>
<tr><td>Lignes valides</td><td>{{.Stats.ValidRows}}</td></tr>
<tr><td>Champs corrigés</td><td>{{.Stats.CorrectedFields}}</td></tr>
</table>
{{if .Errors}}
<h2>Erreurs ({{len .Errors}})</h2>
<ul class="errors">{{range .Errors}}<li>{{.}}</li>{{end}}</ul>
{{end}}
{{if .Warnings}}
<h2>Avertissements ({{len .Warnings}})</h2>
<ul class="warnings">{{range .Warnings}}<li>{{.}}</li>{{end}}</ul>
{{end}}
<footer>Généré le {{.GeneratedAt.Format "02/01/2006 15:04"}}</footer>
</body>
</html>
`))

// WriteReport renders the HTML run report to path.
func WriteReport(path string, data ReportData) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create report")
	}
	defer f.Close()

	if err := reportTmpl.Execute(f, data); err != nil {
		return eris.Wrap(err, "export: render report")
	}
	return eris.Wrap(f.Close(), "export: close report")
}
