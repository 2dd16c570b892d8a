package main

import (
	"cmp"
	"io"
	"slices"
	"strings"
	"text/template"
	"time"

	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/internal/sim"
	"github.com/plus3/blockfall/tetris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// barWidth is the length of the longest histogram bar.
const barWidth = 30

// HistogramRow is one bucket of a rendered histogram.
type HistogramRow struct {
	Label string
	Count int
	Share float64
	Bar   string
}

// Report renders a simulation summary as markdown.
type Report struct {
	Summary       *sim.Summary
	Best          sim.GameResult
	ToppedOut     int
	ClearsPerLock []HistogramRow
	PiecesPerKind []HistogramRow
	FinalLevels   []HistogramRow

	printer *message.Printer
}

func NewReport(summary *sim.Summary) *Report {
	r := &Report{
		Summary: summary,
		printer: message.NewPrinter(language.English),
	}
	r.Best, _ = summary.Best()
	for _, g := range summary.Games {
		if g.ToppedOut {
			r.ToppedOut++
		}
	}

	r.ClearsPerLock = histogram(summary.ClearsPerLock, func(rows int) string {
		return r.printer.Sprintf("%d rows", rows)
	})
	r.PiecesPerKind = histogram(summary.PiecesPerKind, tetris.Kind.String)
	r.FinalLevels = histogram(summary.FinalLevels, func(level int) string {
		return r.printer.Sprintf("level %d", level)
	})
	return r
}

// histogram flattens m into rows ordered by key.
func histogram[K intmap.IntKey](m *intmap.Map[K, int], label func(K) string) []HistogramRow {
	type bucket struct {
		key   K
		count int
	}
	buckets := make([]bucket, 0, m.Len())
	total, peak := 0, 0
	m.ForEach(func(k K, v int) bool {
		buckets = append(buckets, bucket{k, v})
		total += v
		peak = max(peak, v)
		return true
	})
	slices.SortFunc(buckets, func(a, b bucket) int { return cmp.Compare(a.key, b.key) })

	rows := make([]HistogramRow, 0, len(buckets))
	for _, b := range buckets {
		row := HistogramRow{Label: label(b.key), Count: b.count}
		if total > 0 {
			row.Share = float64(b.count) / float64(total)
		}
		if peak > 0 {
			row.Bar = strings.Repeat("#", max(1, b.count*barWidth/peak))
		}
		rows = append(rows, row)
	}
	return rows
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Simulation Report

## Configuration
- **Games:** {{num .Summary.Options.Games}}
- **First Seed:** {{.Summary.Options.Seed}}
- **Max Pieces per Game:** {{num .Summary.Options.MaxPieces}}
- **Board:** {{.Summary.Options.Config.Width}}x{{.Summary.Options.Config.Height}}
- **Weights:** bumpiness {{.Summary.Options.Weights.Bumpiness}}, holes {{.Summary.Options.Weights.Holes}}, height {{.Summary.Options.Weights.Height}}

## Results
- **Total Score:** {{num .Summary.TotalScore}}
- **Mean Score:** {{float .Summary.MeanScore}}
- **Total Lines:** {{num .Summary.TotalLines}}
- **Best Game:** #{{.Best.Index}} (seed {{.Best.Seed}}) scored {{num .Best.Score}} with {{num .Best.Lines}} lines at level {{.Best.Level}}
- **Topped Out:** {{.ToppedOut}} of {{len .Summary.Games}}
- **Run Time:** {{.Summary.Elapsed}}
- **Game Time:**
  - **Avg:** {{.Summary.GameTime.Avg}}
  - **Min:** {{.Summary.GameTime.Min}}
  - **Max:** {{.Summary.GameTime.Max}}

## Games
| # | Seed | Score | Lines | Level | Pieces | Topped Out |
|---|------|-------|-------|-------|--------|------------|
{{- range .Summary.Games}}
| {{.Index}} | {{.Seed}} | {{num .Score}} | {{num .Lines}} | {{.Level}} | {{num .Pieces}} | {{if .ToppedOut}}yes{{else}}no{{end}} |
{{- end}}

## Rows Cleared per Lock
{{template "histogram" .ClearsPerLock}}
## Pieces per Kind
{{template "histogram" .PiecesPerKind}}
## Final Levels
{{template "histogram" .FinalLevels}}`

	const histogramTemplate = `{{define "histogram"}}
` + "```" + `
{{- range .}}
{{printf "%-9s" .Label}} {{printf "%8s" (num .Count)}} {{printf "%6s" (pct .Share)}} {{.Bar}}
{{- end}}
` + "```" + `
{{end}}`

	fm := template.FuncMap{
		"num": func(v int) string {
			return r.printer.Sprintf("%d", v)
		},
		"float": func(v float64) string {
			return r.printer.Sprintf("%.1f", v)
		},
		"pct": func(v float64) string {
			return r.printer.Sprintf("%.1f%%", v*100)
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(histogramTemplate)
	if err != nil {
		return err
	}
	if _, err := tmpl.Parse(reportTemplate); err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}

// JSONReport is the machine-readable form of a summary.
type JSONReport struct {
	Games         []sim.GameResult `json:"games"`
	TotalScore    int              `json:"total_score"`
	TotalLines    int              `json:"total_lines"`
	MeanScore     float64          `json:"mean_score"`
	ElapsedMs     int64            `json:"elapsed_ms"`
	ClearsPerLock map[int]int      `json:"clears_per_lock"`
	PiecesPerKind map[string]int   `json:"pieces_per_kind"`
	FinalLevels   map[int]int      `json:"final_levels"`
}

func NewJSONReport(summary *sim.Summary) JSONReport {
	r := JSONReport{
		Games:         summary.Games,
		TotalScore:    summary.TotalScore(),
		TotalLines:    summary.TotalLines(),
		MeanScore:     summary.MeanScore(),
		ElapsedMs:     summary.Elapsed.Round(time.Millisecond).Milliseconds(),
		ClearsPerLock: make(map[int]int, summary.ClearsPerLock.Len()),
		PiecesPerKind: make(map[string]int, summary.PiecesPerKind.Len()),
		FinalLevels:   make(map[int]int, summary.FinalLevels.Len()),
	}
	summary.ClearsPerLock.ForEach(func(k, v int) bool {
		r.ClearsPerLock[k] = v
		return true
	})
	summary.PiecesPerKind.ForEach(func(k tetris.Kind, v int) bool {
		r.PiecesPerKind[k.String()] = v
		return true
	})
	summary.FinalLevels.ForEach(func(k, v int) bool {
		r.FinalLevels[k] = v
		return true
	})
	return r
}
