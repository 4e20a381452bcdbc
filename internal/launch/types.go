// Package launch holds the launch-record dataset and the pure transforms
// the dashboard widgets are built from.
package launch

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// AllSites is the dropdown sentinel selecting every launch site.
const AllSites SiteFilter = "ALL"

// ErrInvalidRange is returned when a payload range is inverted or not finite.
var ErrInvalidRange = errors.New("invalid payload range")

// Outcome is the binary launch result stored in the "class" column.
type Outcome int

const (
	Failure Outcome = 0
	Success Outcome = 1
)

// String returns the label used for pie slices ("1" or "0").
func (o Outcome) String() string {
	return strconv.Itoa(int(o))
}

// Valid reports whether o is exactly 0 or 1.
func (o Outcome) Valid() bool {
	return o == Failure || o == Success
}

// Record is one launch row.
type Record struct {
	FlightNumber           int     `json:"flight_number,omitempty" yaml:"flight_number,omitempty"`
	LaunchSite             string  `json:"launch_site" yaml:"launch_site"`
	PayloadMassKg          float64 `json:"payload_mass_kg" yaml:"payload_mass_kg"`
	BoosterVersion         string  `json:"booster_version,omitempty" yaml:"booster_version,omitempty"`
	BoosterVersionCategory string  `json:"booster_version_category" yaml:"booster_version_category"`
	Class                  Outcome `json:"class" yaml:"class"`
}

// SiteFilter is either AllSites or one exact launch site name.
type SiteFilter string

// IsAll reports whether the filter selects every site.
func (s SiteFilter) IsAll() bool {
	return s == AllSites
}

// Matches reports whether a record launched from site passes the filter.
func (s SiteFilter) Matches(site string) bool {
	return s.IsAll() || string(s) == site
}

// Label is the human-readable name used in chart titles.
func (s SiteFilter) Label() string {
	if s.IsAll() {
		return "All Sites"
	}
	return string(s)
}

// PayloadRange is an inclusive payload mass interval in kilograms.
type PayloadRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether Min <= kg <= Max. An inverted range contains nothing.
func (r PayloadRange) Contains(kg float64) bool {
	return r.Min <= kg && kg <= r.Max
}

// Validate rejects inverted and non-finite ranges. Bounds outside the
// dataset's observed payloads are allowed and left unchanged.
func (r PayloadRange) Validate() error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
		return fmt.Errorf("%w: bounds must be finite, got [%v, %v]", ErrInvalidRange, r.Min, r.Max)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: min %v is greater than max %v", ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

func (r PayloadRange) String() string {
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}
