// Package dashboard serves the interactive launch dashboard: a controller
// dispatching input changes to chart callbacks, and its HTTP surface.
package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/dbsmedya/launchdash/internal/figure"
	"github.com/dbsmedya/launchdash/internal/launch"
	"github.com/dbsmedya/launchdash/internal/logger"
)

// Component ids shared with the layout page.
const (
	SiteDropdownID        = "site-dropdown"
	PayloadSliderID       = "payload-slider"
	SuccessPieChartID     = "success-pie-chart"
	SuccessPayloadChartID = "success-payload-scatter-chart"
)

var (
	// ErrUnknownComponent is returned for input or output ids the controller does not know.
	ErrUnknownComponent = errors.New("unknown component")
	// ErrDuplicateOutput is returned when two callbacks target the same output.
	ErrDuplicateOutput = errors.New("output already has a callback")
)

// State is the full set of input values at one point in time.
type State struct {
	Site  launch.SiteFilter   `json:"site"`
	Range launch.PayloadRange `json:"range"`
}

// Validate checks the range; unknown sites are allowed and match nothing.
func (s State) Validate() error {
	return s.Range.Validate()
}

// Event is one UI interaction: the complete input state after the change
// and the ids of the inputs that changed. No changed ids means every
// callback fires, as on page load.
type Event struct {
	State   State
	Changed []string
}

// CallbackFunc computes one output figure from the input state.
type CallbackFunc func(ctx context.Context, s State) (figure.Figure, error)

// Callback binds an output component to the inputs it depends on.
type Callback struct {
	Output string
	Inputs []string
	Fn     CallbackFunc
}

func (cb Callback) dependsOn(changed map[string]bool) bool {
	if len(changed) == 0 {
		return true
	}
	for _, in := range cb.Inputs {
		if changed[in] {
			return true
		}
	}
	return false
}

// Controller owns the dataset and the registered callbacks. It keeps no
// per-client state and is safe for concurrent use once registration is done.
type Controller struct {
	dataset   *launch.Dataset
	callbacks []Callback
	inputs    map[string]bool
	log       *logger.Logger
}

// NewController creates a Controller over d with the pie and scatter
// callbacks registered.
func NewController(d *launch.Dataset, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.NewNop()
	}
	c := &Controller{
		dataset: d,
		inputs: map[string]bool{
			SiteDropdownID:  true,
			PayloadSliderID: true,
		},
		log: log,
	}

	// Both ids are fresh, so registration cannot fail.
	_ = c.Register(Callback{
		Output: SuccessPieChartID,
		Inputs: []string{SiteDropdownID},
		Fn:     c.pieChart,
	})
	_ = c.Register(Callback{
		Output: SuccessPayloadChartID,
		Inputs: []string{SiteDropdownID, PayloadSliderID},
		Fn:     c.scatterChart,
	})
	return c
}

// Register adds a callback. Callbacks run in registration order.
func (c *Controller) Register(cb Callback) error {
	if cb.Fn == nil {
		return fmt.Errorf("callback for %q has no function", cb.Output)
	}
	for _, in := range cb.Inputs {
		if !c.inputs[in] {
			return fmt.Errorf("%w: input %q", ErrUnknownComponent, in)
		}
	}
	for _, existing := range c.callbacks {
		if existing.Output == cb.Output {
			return fmt.Errorf("%w: %q", ErrDuplicateOutput, cb.Output)
		}
	}
	c.callbacks = append(c.callbacks, cb)
	return nil
}

// Dataset returns the dataset the controller reads from.
func (c *Controller) Dataset() *launch.Dataset {
	return c.dataset
}

// Outputs lists the output ids in registration order.
func (c *Controller) Outputs() []string {
	out := make([]string, len(c.callbacks))
	for i, cb := range c.callbacks {
		out[i] = cb.Output
	}
	return out
}

// Defaults is the state shown on page load: every site and the dataset's
// full payload range.
func (c *Controller) Defaults() State {
	return State{Site: launch.AllSites, Range: c.dataset.PayloadBounds()}
}

// Initial runs every callback with the default state.
func (c *Controller) Initial(ctx context.Context) (map[string]figure.Figure, error) {
	return c.Update(ctx, Event{State: c.Defaults()})
}

// Update runs, in registration order, every callback whose inputs
// intersect the changed set and returns the new figures by output id.
func (c *Controller) Update(ctx context.Context, ev Event) (map[string]figure.Figure, error) {
	changed := make(map[string]bool, len(ev.Changed))
	for _, id := range ev.Changed {
		if !c.inputs[id] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, id)
		}
		changed[id] = true
	}
	if err := ev.State.Validate(); err != nil {
		return nil, err
	}

	figures := make(map[string]figure.Figure, len(c.callbacks))
	for _, cb := range c.callbacks {
		if !cb.dependsOn(changed) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fig, err := cb.Fn(ctx, ev.State)
		if err != nil {
			return nil, fmt.Errorf("callback %s: %w", cb.Output, err)
		}
		figures[cb.Output] = fig
	}

	c.log.WithSite(string(ev.State.Site)).Debugw("Dashboard updated",
		"changed", ev.Changed,
		"range", ev.State.Range.String(),
		"outputs", len(figures),
	)
	return figures, nil
}

func (c *Controller) pieChart(_ context.Context, s State) (figure.Figure, error) {
	return figure.Pie(launch.OutcomeSummary(c.dataset, s.Site)), nil
}

func (c *Controller) scatterChart(_ context.Context, s State) (figure.Figure, error) {
	records := launch.FilterForScatter(c.dataset, s.Site, s.Range)
	return figure.Scatter(records, s.Site, s.Range), nil
}
