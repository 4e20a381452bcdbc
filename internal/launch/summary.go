package launch

import (
	"github.com/elliotchance/orderedmap/v2"
)

// GroupKind names the column a Summary is grouped by.
type GroupKind string

const (
	GroupBySite    GroupKind = "Launch Site"
	GroupByOutcome GroupKind = "Outcome"
)

// CountRow is one labeled count, i.e. one slice of a proportion chart.
type CountRow struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// Summary is the chart-ready result of OutcomeSummary.
type Summary struct {
	Site    SiteFilter `json:"site" yaml:"site"`
	GroupBy GroupKind  `json:"group_by" yaml:"group_by"`
	Rows    []CountRow `json:"rows" yaml:"rows"`
}

// Total returns the sum of all row counts.
func (s Summary) Total() int {
	total := 0
	for _, r := range s.Rows {
		total += r.Count
	}
	return total
}

// Empty reports whether no rows matched.
func (s Summary) Empty() bool {
	return len(s.Rows) == 0
}

// OutcomeSummary counts launch outcomes for the pie chart.
//
// For AllSites it counts successful launches per site; sites without a
// success are omitted rather than zero-filled. For a single site it counts
// that site's launches per outcome, emitting only outcomes that occur. An
// unknown site yields an empty summary. Rows follow first-seen order of the
// grouping key.
func OutcomeSummary(d *Dataset, site SiteFilter) Summary {
	counts := orderedmap.NewOrderedMap[string, int]()
	summary := Summary{Site: site}

	if site.IsAll() {
		summary.GroupBy = GroupBySite
		d.each(func(r *Record) {
			if r.Class != Success {
				return
			}
			n, _ := counts.Get(r.LaunchSite)
			counts.Set(r.LaunchSite, n+1)
		})
	} else {
		summary.GroupBy = GroupByOutcome
		d.each(func(r *Record) {
			if r.LaunchSite != string(site) {
				return
			}
			label := r.Class.String()
			n, _ := counts.Get(label)
			counts.Set(label, n+1)
		})
	}

	summary.Rows = make([]CountRow, 0, counts.Len())
	for el := counts.Front(); el != nil; el = el.Next() {
		summary.Rows = append(summary.Rows, CountRow{Label: el.Key, Count: el.Value})
	}
	return summary
}
