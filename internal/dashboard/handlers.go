package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dbsmedya/launchdash/internal/config"
	"github.com/dbsmedya/launchdash/internal/figure"
	"github.com/dbsmedya/launchdash/internal/launch"
	"github.com/dbsmedya/launchdash/internal/logger"
)

// maxUpdateBody caps the size of a callback request body.
const maxUpdateBody = 1 << 16

// Handler serves the dashboard routes.
type Handler struct {
	controller *Controller
	renderer   *figure.Renderer
	slider     config.SliderConfig
	log        *logger.Logger
}

// NewHandler creates the route service for RegisterRoutes.
func NewHandler(c *Controller, r *figure.Renderer, slider config.SliderConfig, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	if r == nil {
		r = figure.NewRenderer(nil, log)
	}
	return &Handler{controller: c, renderer: r, slider: slider, log: log}
}

// NewMux returns a ServeMux with every dashboard route registered.
func NewMux(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterRoutes(mux, h)
	return mux
}

// updateRequest is the callback request posted by the layout page. Inputs
// left out keep their default value.
type updateRequest struct {
	Site    *string    `json:"site-dropdown"`
	Payload *[]float64 `json:"payload-slider"`
	Changed []string   `json:"changed"`
}

// Output is one updated component: its figure and the image that draws it.
type Output struct {
	Figure figure.Figure `json:"figure"`
	Src    string        `json:"src"`
}

// HandleIndex serves the layout page.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	data := newPageData(h.controller, h.slider)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		h.log.WithRequest(r.Method, r.URL.Path).Errorw("Failed to render layout", "error", err)
	}
}

// HandleUpdate dispatches an input change to the controller.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := h.log.WithRequest(r.Method, r.URL.Path)

	var req updateRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxUpdateBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.badRequest(w, fmt.Errorf("invalid update body: %w", err))
		return
	}

	state := h.controller.Defaults()
	var changed []string
	if req.Site != nil {
		state.Site = siteFilter(*req.Site)
		changed = append(changed, SiteDropdownID)
	}
	if req.Payload != nil {
		if len(*req.Payload) != 2 {
			h.badRequest(w, fmt.Errorf("%w: %s needs exactly two values", launch.ErrInvalidRange, PayloadSliderID))
			return
		}
		state.Range = launch.PayloadRange{Min: (*req.Payload)[0], Max: (*req.Payload)[1]}
		changed = append(changed, PayloadSliderID)
	}
	if req.Changed != nil {
		changed = req.Changed
	}

	figures, err := h.controller.Update(r.Context(), Event{State: state, Changed: changed})
	if err != nil {
		h.updateFailed(w, log, err)
		return
	}

	resp := make(map[string]Output, len(figures))
	for id, fig := range figures {
		resp[id] = Output{Figure: fig, Src: chartSrc(id, state)}
	}
	log.Elapsed("Update served", start)
	writeJSON(w, http.StatusOK, resp)
}

type siteOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type sitesResponse struct {
	Options       []siteOption        `json:"options"`
	PayloadBounds launch.PayloadRange `json:"payload_bounds"`
}

// HandleSites lists the dropdown options.
func (h *Handler) HandleSites(w http.ResponseWriter, r *http.Request) {
	d := h.controller.Dataset()
	writeJSON(w, http.StatusOK, sitesResponse{
		Options:       siteOptions(d),
		PayloadBounds: d.PayloadBounds(),
	})
}

// HandleSummary returns the outcome summary behind the pie chart.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	site := siteFilter(r.URL.Query().Get("site"))
	writeJSON(w, http.StatusOK, launch.OutcomeSummary(h.controller.Dataset(), site))
}

type scatterResponse struct {
	Site    launch.SiteFilter   `json:"site"`
	Range   launch.PayloadRange `json:"range"`
	Records []launch.Record     `json:"records"`
}

// HandleScatter returns the records behind the scatter chart.
func (h *Handler) HandleScatter(w http.ResponseWriter, r *http.Request) {
	state, err := h.stateFromQuery(r.URL.Query())
	if err != nil {
		h.badRequest(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scatterResponse{
		Site:    state.Site,
		Range:   state.Range,
		Records: launch.FilterForScatter(h.controller.Dataset(), state.Site, state.Range),
	})
}

// HandlePieSVG renders the success pie chart.
func (h *Handler) HandlePieSVG(w http.ResponseWriter, r *http.Request) {
	h.serveChart(w, r, SuccessPieChartID)
}

// HandleScatterSVG renders the payload scatter chart.
func (h *Handler) HandleScatterSVG(w http.ResponseWriter, r *http.Request) {
	h.serveChart(w, r, SuccessPayloadChartID)
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"records": h.controller.Dataset().Len(),
	})
}

func (h *Handler) serveChart(w http.ResponseWriter, r *http.Request, output string) {
	state, err := h.stateFromQuery(r.URL.Query())
	if err != nil {
		h.badRequest(w, err)
		return
	}

	changed := []string{SiteDropdownID}
	if output == SuccessPayloadChartID {
		changed = append(changed, PayloadSliderID)
	}
	figures, err := h.controller.Update(r.Context(), Event{State: state, Changed: changed})
	if err != nil {
		h.updateFailed(w, h.log.WithRequest(r.Method, r.URL.Path), err)
		return
	}

	svg, err := h.renderer.SVG(figures[output])
	if err != nil {
		h.log.WithRequest(r.Method, r.URL.Path).Errorw("Chart render failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(svg)
}

// stateFromQuery reads site, min and max. Missing values fall back to the
// defaults; malformed ones are rejected.
func (h *Handler) stateFromQuery(q url.Values) (State, error) {
	state := h.controller.Defaults()
	state.Site = siteFilter(q.Get("site"))

	for _, b := range []struct {
		name string
		dst  *float64
	}{
		{"min", &state.Range.Min},
		{"max", &state.Range.Max},
	} {
		raw := q.Get(b.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return State{}, fmt.Errorf("%w: %s=%q is not a number", launch.ErrInvalidRange, b.name, raw)
		}
		*b.dst = v
	}
	if err := state.Validate(); err != nil {
		return State{}, err
	}
	return state, nil
}

// updateFailed maps controller errors: bad input is a 400, anything else
// (including a cancelled request) a 500.
func (h *Handler) updateFailed(w http.ResponseWriter, log *logger.Logger, err error) {
	if errors.Is(err, ErrUnknownComponent) || errors.Is(err, launch.ErrInvalidRange) {
		h.badRequest(w, err)
		return
	}
	log.Errorw("Update failed", "error", err)
	writeJSONError(w, http.StatusInternalServerError, err.Error())
}

func (h *Handler) badRequest(w http.ResponseWriter, err error) {
	h.log.Debugw("Rejected request", "error", err)
	writeJSONError(w, http.StatusBadRequest, err.Error())
}

// siteFilter maps an empty dropdown value to every site.
func siteFilter(v string) launch.SiteFilter {
	if v == "" {
		return launch.AllSites
	}
	return launch.SiteFilter(v)
}

func siteOptions(d *launch.Dataset) []siteOption {
	options := []siteOption{{Label: launch.AllSites.Label(), Value: string(launch.AllSites)}}
	for _, s := range d.Sites() {
		options = append(options, siteOption{Label: s, Value: s})
	}
	return options
}

// chartSrc is the image URL drawing output for state.
func chartSrc(output string, s State) string {
	q := url.Values{}
	q.Set("site", string(s.Site))
	if output == SuccessPieChartID {
		return PathPieSVG + "?" + q.Encode()
	}
	q.Set("min", strconv.FormatFloat(s.Range.Min, 'f', -1, 64))
	q.Set("max", strconv.FormatFloat(s.Range.Max, 'f', -1, 64))
	return PathScatterSVG + "?" + q.Encode()
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
