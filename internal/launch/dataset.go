package launch

import (
	"github.com/elliotchance/orderedmap/v2"
)

// Dataset is the immutable, process-wide collection of launch records.
// Site order and payload bounds are derived once at construction.
type Dataset struct {
	records []Record
	sites   []string
	bounds  PayloadRange
}

// NewDataset copies records into a new Dataset. The caller's slice may be
// reused afterwards.
func NewDataset(records []Record) *Dataset {
	d := &Dataset{
		records: make([]Record, len(records)),
	}
	copy(d.records, records)

	seen := orderedmap.NewOrderedMap[string, struct{}]()
	for i, r := range d.records {
		seen.Set(r.LaunchSite, struct{}{})
		if i == 0 {
			d.bounds = PayloadRange{Min: r.PayloadMassKg, Max: r.PayloadMassKg}
			continue
		}
		if r.PayloadMassKg < d.bounds.Min {
			d.bounds.Min = r.PayloadMassKg
		}
		if r.PayloadMassKg > d.bounds.Max {
			d.bounds.Max = r.PayloadMassKg
		}
	}

	d.sites = make([]string, 0, seen.Len())
	for el := seen.Front(); el != nil; el = el.Next() {
		d.sites = append(d.sites, el.Key)
	}
	return d
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of every record in load order.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Sites returns the distinct launch sites in first-seen order.
func (d *Dataset) Sites() []string {
	out := make([]string, len(d.sites))
	copy(out, d.sites)
	return out
}

// HasSite reports whether any record launched from site.
func (d *Dataset) HasSite(site string) bool {
	for _, s := range d.sites {
		if s == site {
			return true
		}
	}
	return false
}

// PayloadBounds returns the observed [min, max] payload mass. It is the
// default range of the payload slider. An empty dataset reports [0, 0].
func (d *Dataset) PayloadBounds() PayloadRange {
	return d.bounds
}

// each visits every record without copying the backing slice.
func (d *Dataset) each(fn func(r *Record)) {
	for i := range d.records {
		fn(&d.records[i])
	}
}
