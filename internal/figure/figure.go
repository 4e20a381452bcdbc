// Package figure turns transform results into declarative chart
// descriptions and renders them to SVG.
package figure

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/dbsmedya/launchdash/internal/launch"
)

// Kind is the chart type of a Figure.
type Kind string

const (
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
)

// Outcome slice colors of the single-site pie chart.
const (
	ColorSuccess = "#2ca02c"
	ColorFailure = "#d62728"
)

// Set1 is the qualitative palette for booster categories.
var Set1 = []string{
	"#e41a1c", "#377eb8", "#4daf4a", "#984ea3", "#ff7f00",
	"#ffff33", "#a65628", "#f781bf", "#999999",
}

// sitePalette colors the per-site slices of the all-sites pie chart.
var sitePalette = []string{
	"#636efa", "#ef553b", "#00cc96", "#ab63fa", "#ffa15a",
	"#19d3f3", "#ff6692", "#b6e880", "#ff97ff", "#fecb52",
}

// Slice is one proportion of a pie chart.
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Point is one scatter marker.
type Point struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	LaunchSite   string  `json:"launch_site"`
	FlightNumber int     `json:"flight_number,omitempty"`
}

// Series groups scatter points sharing a color.
type Series struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
}

// Axis is a labeled continuous axis.
type Axis struct {
	Title string  `json:"title"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Figure is the chart description handed to the browser and the renderer.
type Figure struct {
	Kind   Kind     `json:"kind"`
	Title  string   `json:"title"`
	Slices []Slice  `json:"slices,omitempty"`
	Series []Series `json:"series,omitempty"`
	XAxis  *Axis    `json:"x_axis,omitempty"`
	YAxis  *Axis    `json:"y_axis,omitempty"`
}

// Empty reports whether a pie or scatter figure has nothing to draw.
func (f Figure) Empty() bool {
	switch f.Kind {
	case KindPie:
		total := 0.0
		for _, s := range f.Slices {
			total += s.Value
		}
		return total == 0
	case KindScatter:
		for _, s := range f.Series {
			if len(s.Points) > 0 {
				return false
			}
		}
		return true
	}
	return false
}

// Key is a stable content hash used as the render cache key.
func (f Figure) Key() string {
	data, err := json.Marshal(f)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Pie builds the success pie chart from an outcome summary.
func Pie(s launch.Summary) Figure {
	f := Figure{Kind: KindPie}
	if s.Site.IsAll() {
		f.Title = "Total Successful Launches for All Sites"
	} else {
		f.Title = fmt.Sprintf("Success vs. Failure for %s", s.Site)
	}

	f.Slices = make([]Slice, 0, len(s.Rows))
	for i, row := range s.Rows {
		slice := Slice{Label: row.Label, Value: float64(row.Count)}
		switch {
		case s.GroupBy == launch.GroupByOutcome && row.Label == launch.Success.String():
			slice.Color = ColorSuccess
		case s.GroupBy == launch.GroupByOutcome:
			slice.Color = ColorFailure
		default:
			slice.Color = sitePalette[i%len(sitePalette)]
		}
		f.Slices = append(f.Slices, slice)
	}
	return f
}

// Scatter builds the payload vs. outcome scatter chart. Points are grouped
// into one series per booster version category; the x axis spans rng.
func Scatter(records []launch.Record, site launch.SiteFilter, rng launch.PayloadRange) Figure {
	f := Figure{
		Kind:  KindScatter,
		Title: fmt.Sprintf("Payload vs Launch Outcome for %s", site.Label()),
		XAxis: &Axis{Title: "Payload Mass (kg)", Min: rng.Min, Max: rng.Max},
		YAxis: &Axis{Title: "Launch Outcome", Min: -0.5, Max: 1.5},
	}

	categories := launch.BoosterCategories(records)
	index := make(map[string]int, len(categories))
	f.Series = make([]Series, 0, len(categories))
	for i, c := range categories {
		index[c] = i
		f.Series = append(f.Series, Series{Name: c, Color: Set1[i%len(Set1)]})
	}

	for _, r := range records {
		s := &f.Series[index[r.BoosterVersionCategory]]
		s.Points = append(s.Points, Point{
			X:            r.PayloadMassKg,
			Y:            float64(r.Class),
			LaunchSite:   r.LaunchSite,
			FlightNumber: r.FlightNumber,
		})
	}
	return f
}
