package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/launchdash/internal/figure"
	"github.com/dbsmedya/launchdash/internal/launch"
	"github.com/dbsmedya/launchdash/internal/logger"
)

func testDataset() *launch.Dataset {
	return launch.NewDataset([]launch.Record{
		{FlightNumber: 1, LaunchSite: "CCAFS LC-40", PayloadMassKg: 0, BoosterVersionCategory: "v1.0", Class: launch.Failure},
		{FlightNumber: 2, LaunchSite: "CCAFS LC-40", PayloadMassKg: 525, BoosterVersionCategory: "v1.0", Class: launch.Success},
		{FlightNumber: 3, LaunchSite: "KSC LC-39A", PayloadMassKg: 2490, BoosterVersionCategory: "FT", Class: launch.Success},
		{FlightNumber: 4, LaunchSite: "KSC LC-39A", PayloadMassKg: 5300, BoosterVersionCategory: "FT", Class: launch.Failure},
		{FlightNumber: 5, LaunchSite: "VAFB SLC-4E", PayloadMassKg: 9600, BoosterVersionCategory: "B4", Class: launch.Success},
	})
}

func TestNewController_Outputs(t *testing.T) {
	c := NewController(testDataset(), logger.NewNop())
	assert.Equal(t, []string{SuccessPieChartID, SuccessPayloadChartID}, c.Outputs())
}

func TestController_Defaults(t *testing.T) {
	c := NewController(testDataset(), nil)
	assert.Equal(t, State{
		Site:  launch.AllSites,
		Range: launch.PayloadRange{Min: 0, Max: 9600},
	}, c.Defaults())
}

func TestController_Initial(t *testing.T) {
	c := NewController(testDataset(), nil)

	figures, err := c.Initial(context.Background())
	require.NoError(t, err)
	require.Len(t, figures, 2)

	pie := figures[SuccessPieChartID]
	assert.Equal(t, "Total Successful Launches for All Sites", pie.Title)
	assert.Len(t, pie.Slices, 3)

	scatter := figures[SuccessPayloadChartID]
	assert.Equal(t, "Payload vs Launch Outcome for All Sites", scatter.Title)
	require.NotNil(t, scatter.XAxis)
	assert.Equal(t, 9600.0, scatter.XAxis.Max)
}

func TestController_UpdateDispatch(t *testing.T) {
	c := NewController(testDataset(), nil)
	state := State{Site: "KSC LC-39A", Range: launch.PayloadRange{Min: 0, Max: 3000}}

	tests := []struct {
		name    string
		changed []string
		want    []string
	}{
		{name: "dropdown", changed: []string{SiteDropdownID}, want: []string{SuccessPieChartID, SuccessPayloadChartID}},
		{name: "slider", changed: []string{PayloadSliderID}, want: []string{SuccessPayloadChartID}},
		{name: "both", changed: []string{PayloadSliderID, SiteDropdownID}, want: []string{SuccessPieChartID, SuccessPayloadChartID}},
		{name: "page load", changed: nil, want: []string{SuccessPieChartID, SuccessPayloadChartID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			figures, err := c.Update(context.Background(), Event{State: state, Changed: tt.changed})
			require.NoError(t, err)

			got := make([]string, 0, len(figures))
			for _, id := range c.Outputs() {
				if _, ok := figures[id]; ok {
					got = append(got, id)
				}
			}
			assert.Equal(t, tt.want, got)

			scatter := figures[SuccessPayloadChartID]
			assert.Equal(t, "Payload vs Launch Outcome for KSC LC-39A", scatter.Title)
			require.Len(t, scatter.Series, 1)
			assert.Len(t, scatter.Series[0].Points, 1)
		})
	}
}

func TestController_UpdateSingleSitePie(t *testing.T) {
	c := NewController(testDataset(), nil)

	figures, err := c.Update(context.Background(), Event{
		State:   State{Site: "KSC LC-39A", Range: launch.PayloadRange{Min: 0, Max: 10000}},
		Changed: []string{SiteDropdownID},
	})
	require.NoError(t, err)

	pie := figures[SuccessPieChartID]
	assert.Equal(t, "Success vs. Failure for KSC LC-39A", pie.Title)
	assert.Len(t, pie.Slices, 2)
}

func TestController_UpdateRejects(t *testing.T) {
	c := NewController(testDataset(), nil)

	_, err := c.Update(context.Background(), Event{
		State:   c.Defaults(),
		Changed: []string{"launch-table"},
	})
	assert.True(t, errors.Is(err, ErrUnknownComponent))

	_, err = c.Update(context.Background(), Event{
		State:   State{Site: launch.AllSites, Range: launch.PayloadRange{Min: 5000, Max: 1000}},
		Changed: []string{PayloadSliderID},
	})
	assert.True(t, errors.Is(err, launch.ErrInvalidRange))
}

func TestController_UnknownSiteIsEmpty(t *testing.T) {
	c := NewController(testDataset(), nil)

	figures, err := c.Update(context.Background(), Event{
		State: State{Site: "Boca Chica", Range: launch.PayloadRange{Min: 0, Max: 10000}},
	})
	require.NoError(t, err)
	assert.True(t, figures[SuccessPieChartID].Empty())
	assert.True(t, figures[SuccessPayloadChartID].Empty())
}

func TestController_CancelledContext(t *testing.T) {
	c := NewController(testDataset(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Initial(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestController_Register(t *testing.T) {
	c := NewController(testDataset(), nil)
	noop := func(context.Context, State) (figure.Figure, error) { return figure.Figure{}, nil }

	err := c.Register(Callback{Output: SuccessPieChartID, Inputs: []string{SiteDropdownID}, Fn: noop})
	assert.True(t, errors.Is(err, ErrDuplicateOutput))

	err = c.Register(Callback{Output: "table", Inputs: []string{"year-picker"}, Fn: noop})
	assert.True(t, errors.Is(err, ErrUnknownComponent))

	err = c.Register(Callback{Output: "table", Inputs: []string{SiteDropdownID}})
	assert.Error(t, err)

	require.NoError(t, c.Register(Callback{Output: "table", Inputs: []string{PayloadSliderID}, Fn: noop}))
	assert.Equal(t, []string{SuccessPieChartID, SuccessPayloadChartID, "table"}, c.Outputs())
}

func TestController_CallbackErrorPropagates(t *testing.T) {
	c := NewController(testDataset(), nil)
	boom := errors.New("boom")
	require.NoError(t, c.Register(Callback{
		Output: "broken",
		Inputs: []string{PayloadSliderID},
		Fn:     func(context.Context, State) (figure.Figure, error) { return figure.Figure{}, boom },
	}))

	_, err := c.Update(context.Background(), Event{State: c.Defaults(), Changed: []string{PayloadSliderID}})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "callback broken")
}

func TestController_ConcurrentUpdates(t *testing.T) {
	c := NewController(testDataset(), nil)
	sites := []launch.SiteFilter{launch.AllSites, "CCAFS LC-40", "KSC LC-39A", "VAFB SLC-4E"}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		site := sites[i%len(sites)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			figures, err := c.Update(context.Background(), Event{
				State:   State{Site: site, Range: launch.PayloadRange{Min: 0, Max: 10000}},
				Changed: []string{SiteDropdownID},
			})
			if assert.NoError(t, err) {
				assert.Contains(t, figures[SuccessPayloadChartID].Title, site.Label())
			}
		}()
	}
	wg.Wait()
}
