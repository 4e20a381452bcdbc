// Package report prints launch summaries and scatter selections for the
// command line, as aligned tables or as JSON / YAML documents.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/dbsmedya/launchdash/internal/figure"
	"github.com/dbsmedya/launchdash/internal/launch"
)

// Format selects the encoding of a report.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates an --output value. An empty value means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("invalid output format %q (valid: table, json, yaml)", s)
}

// Writer renders reports to an io.Writer.
type Writer struct {
	out    io.Writer
	format Format
	color  bool
}

// NewWriter creates a Writer. Colored output is off until SetColor(true).
func NewWriter(out io.Writer, format Format) *Writer {
	return &Writer{out: out, format: format}
}

// SetColor toggles ANSI coloring of outcome cells in table output.
func (w *Writer) SetColor(enabled bool) {
	w.color = enabled
}

type summaryDoc struct {
	Title   string            `json:"title" yaml:"title"`
	Site    launch.SiteFilter `json:"site" yaml:"site"`
	GroupBy launch.GroupKind  `json:"group_by" yaml:"group_by"`
	Rows    []launch.CountRow `json:"rows" yaml:"rows"`
	Total   int               `json:"total" yaml:"total"`
}

// Summary writes the outcome counts behind the pie chart.
func (w *Writer) Summary(s launch.Summary) error {
	doc := summaryDoc{
		Title:   figure.Pie(s).Title,
		Site:    s.Site,
		GroupBy: s.GroupBy,
		Rows:    s.Rows,
		Total:   s.Total(),
	}
	if w.format != FormatTable {
		return w.encode(doc)
	}

	w.printHeader(doc.Title)
	fmt.Fprintln(w.out)
	if s.Empty() {
		fmt.Fprintln(w.out, "  No launches match.")
		return nil
	}

	label := string(s.GroupBy)
	rows := make([][]string, 0, len(s.Rows))
	for _, r := range s.Rows {
		rows = append(rows, []string{r.Label, fmt.Sprintf("%d", r.Count), share(r.Count, doc.Total)})
	}
	paint := func(col int, cell string) string {
		if col == 0 && s.GroupBy == launch.GroupByOutcome {
			return w.outcome(cell)
		}
		return cell
	}
	w.printTable([]string{label, "Count", "Share"}, rows, paint)
	fmt.Fprintln(w.out)
	fmt.Fprintf(w.out, "Total: %d\n", doc.Total)
	return nil
}

type scatterDoc struct {
	Title   string              `json:"title" yaml:"title"`
	Site    launch.SiteFilter   `json:"site" yaml:"site"`
	Range   launch.PayloadRange `json:"range" yaml:"range"`
	Count   int                 `json:"count" yaml:"count"`
	Records []launch.Record     `json:"records" yaml:"records"`
}

// Scatter writes the records behind the scatter chart followed by
// per-category outcome counts.
func (w *Writer) Scatter(site launch.SiteFilter, rng launch.PayloadRange, records []launch.Record) error {
	doc := scatterDoc{
		Title:   figure.Scatter(records, site, rng).Title,
		Site:    site,
		Range:   rng,
		Count:   len(records),
		Records: records,
	}
	if doc.Records == nil {
		doc.Records = []launch.Record{}
	}
	if w.format != FormatTable {
		return w.encode(doc)
	}

	w.printHeader(doc.Title)
	fmt.Fprintf(w.out, "Payload range: %s kg\n\n", rng)
	if len(records) == 0 {
		fmt.Fprintln(w.out, "  No launches match.")
		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		flight := ""
		if r.FlightNumber > 0 {
			flight = fmt.Sprintf("%d", r.FlightNumber)
		}
		rows = append(rows, []string{
			flight,
			r.LaunchSite,
			fmt.Sprintf("%g", r.PayloadMassKg),
			r.BoosterVersionCategory,
			r.Class.String(),
		})
	}
	w.printTable(
		[]string{"Flight", "Launch Site", "Payload Mass (kg)", "Booster", "class"},
		rows,
		func(col int, cell string) string {
			if col == 4 {
				return w.outcome(cell)
			}
			return cell
		},
	)

	fmt.Fprintln(w.out)
	w.printSection("Booster Version Categories")
	cats := launch.BoosterCategories(records)
	catRows := make([][]string, 0, len(cats))
	for _, c := range cats {
		var ok, failed int
		for _, r := range records {
			if r.BoosterVersionCategory != c {
				continue
			}
			if r.Class == launch.Success {
				ok++
			} else {
				failed++
			}
		}
		catRows = append(catRows, []string{c, fmt.Sprintf("%d", ok), fmt.Sprintf("%d", failed)})
	}
	w.printTable([]string{"Category", "Success", "Failure"}, catRows, nil)
	return nil
}

// SiteInfo is one launch site with its launch counts.
type SiteInfo struct {
	Name      string `json:"name" yaml:"name"`
	Launches  int    `json:"launches" yaml:"launches"`
	Successes int    `json:"successes" yaml:"successes"`
}

type sitesDoc struct {
	Sites         []SiteInfo          `json:"sites" yaml:"sites"`
	Records       int                 `json:"records" yaml:"records"`
	PayloadBounds launch.PayloadRange `json:"payload_bounds" yaml:"payload_bounds"`
}

// SiteInfos lists every site of d in first-seen order with its counts.
func SiteInfos(d *launch.Dataset) []SiteInfo {
	sites := d.Sites()
	infos := make([]SiteInfo, 0, len(sites))
	for _, name := range sites {
		info := SiteInfo{Name: name}
		for _, row := range launch.OutcomeSummary(d, launch.SiteFilter(name)).Rows {
			info.Launches += row.Count
			if row.Label == launch.Success.String() {
				info.Successes = row.Count
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// Sites writes the dropdown options with per-site counts and the payload
// bounds of the dataset.
func (w *Writer) Sites(d *launch.Dataset) error {
	doc := sitesDoc{
		Sites:         SiteInfos(d),
		Records:       d.Len(),
		PayloadBounds: d.PayloadBounds(),
	}
	if w.format != FormatTable {
		return w.encode(doc)
	}

	w.printHeader("Launch Sites")
	fmt.Fprintln(w.out)
	rows := make([][]string, 0, len(doc.Sites))
	for _, s := range doc.Sites {
		rows = append(rows, []string{s.Name, fmt.Sprintf("%d", s.Launches), fmt.Sprintf("%d", s.Successes)})
	}
	w.printTable([]string{"Launch Site", "Launches", "Successes"}, rows, nil)
	fmt.Fprintln(w.out)
	fmt.Fprintf(w.out, "Records:        %d\n", doc.Records)
	fmt.Fprintf(w.out, "Payload bounds: %s kg\n", doc.PayloadBounds)
	return nil
}

func (w *Writer) encode(v interface{}) error {
	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported output format %q", w.format)
}

// printHeader prints a formatted header
func (w *Writer) printHeader(title string) {
	width := runewidth.StringWidth(title) + 4
	fmt.Fprintln(w.out, strings.Repeat("=", width))
	fmt.Fprintf(w.out, "  %s\n", title)
	fmt.Fprintln(w.out, strings.Repeat("=", width))
}

// printSection prints a section header
func (w *Writer) printSection(title string) {
	fmt.Fprintf(w.out, "[%s]\n", title)
	fmt.Fprintln(w.out, strings.Repeat("-", runewidth.StringWidth(title)+2))
}

// printTable aligns columns by display width. paint, when set, decorates a
// cell after padding so escape codes do not skew the layout.
func (w *Writer) printTable(headers []string, rows [][]string, paint func(col int, cell string) string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	line := func(cells []string, decorate bool) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			padded := runewidth.FillRight(cell, widths[i])
			if decorate && paint != nil {
				padded = strings.Replace(padded, cell, paint(i, cell), 1)
			}
			parts[i] = padded
		}
		fmt.Fprintln(w.out, strings.TrimRight("  "+strings.Join(parts, "  "), " "))
	}

	line(headers, false)
	sep := make([]string, len(headers))
	for i := range headers {
		sep[i] = strings.Repeat("-", widths[i])
	}
	line(sep, false)
	for _, row := range rows {
		line(row, true)
	}
}

func (w *Writer) outcome(cell string) string {
	if !w.color {
		return cell
	}
	switch cell {
	case launch.Success.String():
		return color.Green.Sprint(cell)
	case launch.Failure.String():
		return color.Red.Sprint(cell)
	}
	return cell
}

func share(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)*100/float64(total))
}
