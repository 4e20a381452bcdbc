package launch

import (
	"github.com/elliotchance/orderedmap/v2"
)

// FilterForScatter returns the records whose payload lies inside rng
// (inclusive on both ends) and, unless site is AllSites, that launched from
// site. The result preserves load order and may be empty.
func FilterForScatter(d *Dataset, site SiteFilter, rng PayloadRange) []Record {
	out := make([]Record, 0)
	d.each(func(r *Record) {
		if !rng.Contains(r.PayloadMassKg) {
			return
		}
		if !site.Matches(r.LaunchSite) {
			return
		}
		out = append(out, *r)
	})
	return out
}

// BoosterCategories returns the distinct booster version categories of
// records in first-seen order. It drives the scatter plot color channel.
func BoosterCategories(records []Record) []string {
	seen := orderedmap.NewOrderedMap[string, struct{}]()
	for _, r := range records {
		seen.Set(r.BoosterVersionCategory, struct{}{})
	}
	var out []string
	for el := seen.Front(); el != nil; el = el.Next() {
		out = append(out, el.Key)
	}
	return out
}
