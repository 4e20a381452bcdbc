package launch

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Test Helpers
// ============================================================================

// scenarioDataset has CCAFS with 3 successes / 2 failures and KSC with one success.
func scenarioDataset() *Dataset {
	return NewDataset([]Record{
		{LaunchSite: "CCAFS", PayloadMassKg: 1000, BoosterVersionCategory: "v1.0", Class: Failure},
		{LaunchSite: "CCAFS", PayloadMassKg: 2500, BoosterVersionCategory: "v1.1", Class: Success},
		{LaunchSite: "KSC", PayloadMassKg: 3000, BoosterVersionCategory: "FT", Class: Success},
		{LaunchSite: "CCAFS", PayloadMassKg: 5000, BoosterVersionCategory: "FT", Class: Success},
		{LaunchSite: "CCAFS", PayloadMassKg: 2500, BoosterVersionCategory: "v1.1", Class: Failure},
		{LaunchSite: "CCAFS", PayloadMassKg: 9600, BoosterVersionCategory: "B4", Class: Success},
	})
}

// mixedDataset contains a site with no successes at all.
func mixedDataset() *Dataset {
	return NewDataset([]Record{
		{LaunchSite: "CCAFS LC-40", PayloadMassKg: 0, BoosterVersionCategory: "v1.0", Class: Failure},
		{LaunchSite: "VAFB SLC-4E", PayloadMassKg: 500, BoosterVersionCategory: "v1.1", Class: Failure},
		{LaunchSite: "KSC LC-39A", PayloadMassKg: 2490, BoosterVersionCategory: "FT", Class: Success},
		{LaunchSite: "CCAFS LC-40", PayloadMassKg: 3600, BoosterVersionCategory: "FT", Class: Success},
		{LaunchSite: "KSC LC-39A", PayloadMassKg: 5300, BoosterVersionCategory: "B4", Class: Failure},
		{LaunchSite: "KSC LC-39A", PayloadMassKg: 3600, BoosterVersionCategory: "B5", Class: Success},
	})
}

func payloads(records []Record) []float64 {
	out := make([]float64, 0, len(records))
	for _, r := range records {
		out = append(out, r.PayloadMassKg)
	}
	return out
}

// ============================================================================
// Dataset Tests
// ============================================================================

func TestNewDataset_DerivedMetadata(t *testing.T) {
	d := mixedDataset()

	assert.Equal(t, 6, d.Len())
	assert.Equal(t, []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A"}, d.Sites())
	assert.Equal(t, PayloadRange{Min: 0, Max: 5300}, d.PayloadBounds())
	assert.True(t, d.HasSite("KSC LC-39A"))
	assert.False(t, d.HasSite("Boca Chica"))
}

func TestNewDataset_CopiesInput(t *testing.T) {
	records := []Record{{LaunchSite: "A", PayloadMassKg: 1, Class: Success}}
	d := NewDataset(records)

	records[0].LaunchSite = "mutated"
	assert.Equal(t, "A", d.Records()[0].LaunchSite)

	out := d.Records()
	out[0].LaunchSite = "mutated again"
	assert.Equal(t, "A", d.Records()[0].LaunchSite)
}

func TestNewDataset_Empty(t *testing.T) {
	d := NewDataset(nil)
	assert.Equal(t, 0, d.Len())
	assert.Empty(t, d.Sites())
	assert.Equal(t, PayloadRange{}, d.PayloadBounds())
}

// ============================================================================
// OutcomeSummary Tests
// ============================================================================

func TestOutcomeSummary_AllSitesScenario(t *testing.T) {
	got := OutcomeSummary(scenarioDataset(), AllSites)

	assert.Equal(t, GroupBySite, got.GroupBy)
	assert.ElementsMatch(t, []CountRow{
		{Label: "CCAFS", Count: 3},
		{Label: "KSC", Count: 1},
	}, got.Rows)
}

func TestOutcomeSummary_SingleSiteScenario(t *testing.T) {
	got := OutcomeSummary(scenarioDataset(), "CCAFS")

	assert.Equal(t, GroupByOutcome, got.GroupBy)
	assert.ElementsMatch(t, []CountRow{
		{Label: "1", Count: 3},
		{Label: "0", Count: 2},
	}, got.Rows)
}

func TestOutcomeSummary_OmitsSitesWithoutSuccess(t *testing.T) {
	got := OutcomeSummary(mixedDataset(), AllSites)

	want := []CountRow{
		{Label: "KSC LC-39A", Count: 2},
		{Label: "CCAFS LC-40", Count: 1},
	}
	// first success for KSC precedes the first CCAFS success
	if diff := cmp.Diff(want, got.Rows); diff != "" {
		t.Errorf("OutcomeSummary(ALL) mismatch (-want +got):\n%s", diff)
	}
}

func TestOutcomeSummary_SingleOutcomeSite(t *testing.T) {
	got := OutcomeSummary(scenarioDataset(), "KSC")
	assert.Equal(t, []CountRow{{Label: "1", Count: 1}}, got.Rows)

	got = OutcomeSummary(mixedDataset(), "VAFB SLC-4E")
	assert.Equal(t, []CountRow{{Label: "0", Count: 1}}, got.Rows)
}

func TestOutcomeSummary_UnknownSiteIsEmpty(t *testing.T) {
	got := OutcomeSummary(scenarioDataset(), "Boca Chica")

	assert.True(t, got.Empty())
	assert.NotNil(t, got.Rows)
	assert.Equal(t, 0, got.Total())
}

func TestOutcomeSummary_CountsMatchFilteredRows(t *testing.T) {
	d := mixedDataset()
	filters := append([]SiteFilter{AllSites, "nowhere"}, toFilters(d.Sites())...)

	for _, site := range filters {
		t.Run(string(site), func(t *testing.T) {
			got := OutcomeSummary(d, site)

			matching := 0
			labels := map[string]bool{}
			for _, r := range d.Records() {
				switch {
				case site.IsAll() && r.Class == Success:
					matching++
					labels[r.LaunchSite] = true
				case !site.IsAll() && r.LaunchSite == string(site):
					matching++
					labels[r.Class.String()] = true
				}
			}

			assert.Equal(t, matching, got.Total())
			assert.Len(t, got.Rows, len(labels))
			for _, row := range got.Rows {
				assert.True(t, labels[row.Label], "unexpected label %q", row.Label)
				assert.Positive(t, row.Count)
			}
		})
	}
}

func TestOutcomeSummary_Idempotent(t *testing.T) {
	d := mixedDataset()
	first := OutcomeSummary(d, AllSites)
	second := OutcomeSummary(d, AllSites)
	assert.Equal(t, first, second)
}

func toFilters(sites []string) []SiteFilter {
	out := make([]SiteFilter, 0, len(sites))
	for _, s := range sites {
		out = append(out, SiteFilter(s))
	}
	return out
}

// ============================================================================
// FilterForScatter Tests
// ============================================================================

func TestFilterForScatter_RangeScenario(t *testing.T) {
	d := NewDataset([]Record{
		{LaunchSite: "CCAFS", PayloadMassKg: 1000, Class: Success},
		{LaunchSite: "CCAFS", PayloadMassKg: 2500, Class: Failure},
		{LaunchSite: "KSC", PayloadMassKg: 3000, Class: Success},
		{LaunchSite: "KSC", PayloadMassKg: 5000, Class: Success},
	})

	got := FilterForScatter(d, AllSites, PayloadRange{Min: 2000, Max: 4000})
	assert.Equal(t, []float64{2500, 3000}, payloads(got))
}

func TestFilterForScatter_SiteAndRange(t *testing.T) {
	got := FilterForScatter(mixedDataset(), "KSC LC-39A", PayloadRange{Min: 0, Max: 4000})

	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, "KSC LC-39A", r.LaunchSite)
	}
	assert.Equal(t, []float64{2490, 3600}, payloads(got))
}

func TestFilterForScatter_FullBoundsReturnsSiteSet(t *testing.T) {
	d := mixedDataset()
	bounds := d.PayloadBounds()

	assert.Len(t, FilterForScatter(d, AllSites, bounds), d.Len())
	assert.Len(t, FilterForScatter(d, "KSC LC-39A", bounds), 3)
}

func TestFilterForScatter_ExactValue(t *testing.T) {
	got := FilterForScatter(mixedDataset(), AllSites, PayloadRange{Min: 3600, Max: 3600})

	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, 3600.0, r.PayloadMassKg)
	}
}

func TestFilterForScatter_InclusiveBounds(t *testing.T) {
	got := FilterForScatter(mixedDataset(), AllSites, PayloadRange{Min: 500, Max: 2490})
	assert.Equal(t, []float64{500, 2490}, payloads(got))
}

func TestFilterForScatter_EmptyResults(t *testing.T) {
	d := mixedDataset()

	tests := []struct {
		name string
		site SiteFilter
		rng  PayloadRange
	}{
		{"unknown site", "Boca Chica", d.PayloadBounds()},
		{"range above data", AllSites, PayloadRange{Min: 9000, Max: 10000}},
		{"inverted range", AllSites, PayloadRange{Min: 4000, Max: 1000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterForScatter(d, tt.site, tt.rng)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestFilterForScatter_MembershipAndCompleteness(t *testing.T) {
	d := mixedDataset()
	ranges := []PayloadRange{
		{Min: 0, Max: 10000},
		{Min: 0, Max: 0},
		{Min: 1000, Max: 4000},
		{Min: -500, Max: 499},
	}
	filters := append([]SiteFilter{AllSites}, toFilters(d.Sites())...)

	for _, site := range filters {
		for _, rng := range ranges {
			got := FilterForScatter(d, site, rng)
			for _, r := range got {
				assert.True(t, rng.Contains(r.PayloadMassKg))
				assert.True(t, site.Matches(r.LaunchSite))
			}

			expected := 0
			for _, r := range d.Records() {
				if rng.Contains(r.PayloadMassKg) && site.Matches(r.LaunchSite) {
					expected++
				}
			}
			assert.Len(t, got, expected, "site=%s range=%s", site, rng)
		}
	}
}

func TestFilterForScatter_Idempotent(t *testing.T) {
	d := mixedDataset()
	rng := PayloadRange{Min: 0, Max: 4000}
	if diff := cmp.Diff(FilterForScatter(d, AllSites, rng), FilterForScatter(d, AllSites, rng)); diff != "" {
		t.Errorf("repeated calls differ (-first +second):\n%s", diff)
	}
}

func TestBoosterCategories(t *testing.T) {
	got := BoosterCategories(mixedDataset().Records())
	assert.Equal(t, []string{"v1.0", "v1.1", "FT", "B4", "B5"}, got)
	assert.Nil(t, BoosterCategories(nil))
}

// ============================================================================
// Value Type Tests
// ============================================================================

func TestPayloadRange_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rng     PayloadRange
		wantErr bool
	}{
		{"ordered", PayloadRange{Min: 0, Max: 10000}, false},
		{"single value", PayloadRange{Min: 500, Max: 500}, false},
		{"outside slider domain", PayloadRange{Min: -100, Max: 20000}, false},
		{"inverted", PayloadRange{Min: 5000, Max: 1000}, true},
		{"NaN", PayloadRange{Min: math.NaN(), Max: 1000}, true},
		{"infinite", PayloadRange{Min: 0, Max: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rng.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidRange))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSiteFilter(t *testing.T) {
	assert.True(t, AllSites.IsAll())
	assert.True(t, AllSites.Matches("anything"))
	assert.Equal(t, "All Sites", AllSites.Label())

	site := SiteFilter("KSC LC-39A")
	assert.False(t, site.IsAll())
	assert.True(t, site.Matches("KSC LC-39A"))
	assert.False(t, site.Matches("CCAFS LC-40"))
	assert.Equal(t, "KSC LC-39A", site.Label())
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "1", Success.String())
	assert.Equal(t, "0", Failure.String())
	assert.True(t, Success.Valid())
	assert.True(t, Failure.Valid())
	assert.False(t, Outcome(2).Valid())
}
