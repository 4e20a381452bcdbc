package figure

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/dbsmedya/launchdash/internal/logger"
)

// Default canvas size in pixels.
const (
	DefaultWidth  = 720
	DefaultHeight = 480
)

// Renderer draws figures to SVG, consulting an optional Cache first.
type Renderer struct {
	Width  int
	Height int

	cache *Cache
	log   *logger.Logger
}

// NewRenderer creates a Renderer with the default canvas size. cache may be nil.
func NewRenderer(cache *Cache, log *logger.Logger) *Renderer {
	if log == nil {
		log = logger.NewNop()
	}
	return &Renderer{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		cache:  cache,
		log:    log,
	}
}

// SVG renders f. Figures with nothing to draw produce a titled placeholder
// instead of a go-chart error.
func (r *Renderer) SVG(f Figure) ([]byte, error) {
	key := fmt.Sprintf("%s:%dx%d", f.Key(), r.Width, r.Height)
	if svg, ok := r.cache.Get(key); ok {
		r.log.Debugw("Chart cache hit", "kind", f.Kind, "title", f.Title)
		return svg, nil
	}

	var (
		svg []byte
		err error
	)
	switch f.Kind {
	case KindPie, KindScatter:
	default:
		return nil, fmt.Errorf("unsupported figure kind %q", f.Kind)
	}
	switch {
	case f.Empty():
		svg = r.placeholder(f.Title)
	case f.Kind == KindPie:
		svg, err = r.pie(f)
	default:
		svg, err = r.scatter(f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %s chart: %w", f.Kind, err)
	}

	r.cache.Set(key, svg)
	return svg, nil
}

func (r *Renderer) pie(f Figure) ([]byte, error) {
	values := make([]chart.Value, 0, len(f.Slices))
	for _, s := range f.Slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%g)", s.Label, s.Value),
			Value: s.Value,
			Style: chart.Style{
				FillColor:   hexColor(s.Color),
				StrokeColor: drawing.ColorWhite,
			},
		})
	}

	pc := chart.PieChart{
		Title:  f.Title,
		Width:  r.Width,
		Height: r.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		Values: values,
	}
	// go-chart draws a lone value as a full circle styled from its palette.
	if len(values) == 1 {
		pc.SliceStyle = values[0].Style
	}

	var buf bytes.Buffer
	if err := pc.Render(chart.SVG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) scatter(f Figure) ([]byte, error) {
	series := make([]chart.Series, 0, len(f.Series))
	for _, s := range f.Series {
		if len(s.Points) == 0 {
			continue
		}
		xs := make([]float64, 0, len(s.Points))
		ys := make([]float64, 0, len(s.Points))
		for _, p := range s.Points {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
		// go-chart cannot range a one-point series; a duplicate dot draws the same.
		if len(xs) == 1 {
			xs = append(xs, xs[0])
			ys = append(ys, ys[0])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(hexColor(s.Color)),
		})
	}

	xMin, xMax := f.XAxis.Min, f.XAxis.Max
	if xMax <= xMin {
		xMax = xMin + 1
	}

	ch := chart.Chart{
		Title:  f.Title,
		Width:  r.Width,
		Height: r.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 16, Right: 120, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:  f.XAxis.Title,
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
		},
		YAxis: chart.YAxis{
			Name:  f.YAxis.Title,
			Range: &chart.ContinuousRange{Min: f.YAxis.Min, Max: f.YAxis.Max},
			Ticks: []chart.Tick{
				{Value: f.YAxis.Min, Label: ""},
				{Value: 0, Label: "0"},
				{Value: 1, Label: "1"},
				{Value: f.YAxis.Max, Label: ""},
			},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.LegendLeft(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.SVG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// placeholder is a blank canvas carrying only the title.
func (r *Renderer) placeholder(title string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`, r.Width, r.Height)
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="#ffffff"/>`)
	fmt.Fprintf(&b, `<text x="%d" y="32" text-anchor="middle" font-family="sans-serif" font-size="16">%s</text>`,
		r.Width/2, html.EscapeString(title))
	fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-family="sans-serif" font-size="13" fill="#888888">No launches match the current selection</text>`,
		r.Width/2, r.Height/2)
	b.WriteString(`</svg>`)
	return []byte(b.String())
}

// pointStyle renders markers only, no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

func hexColor(s string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}
