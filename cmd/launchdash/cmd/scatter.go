package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/launchdash/internal/launch"
)

var (
	scatterSite string
	scatterMin  string
	scatterMax  string
)

var scatterCmd = &cobra.Command{
	Use:   "scatter",
	Short: "Print the launches behind the payload scatter chart",
	Long: `Scatter prints the launches whose payload mass lies in [--min, --max]
(inclusive) for one site or for all sites, followed by per booster
category outcome counts. Omitted bounds default to the dataset's payload
bounds.

Example:
  launchdash scatter --site ALL --min 2000 --max 6000`,
	RunE: runScatter,
}

func init() {
	scatterCmd.Flags().StringVarP(&scatterSite, "site", "s", string(launch.AllSites),
		"Launch site, or ALL for every site")
	scatterCmd.Flags().StringVar(&scatterMin, "min", "",
		"Lower payload bound in kg (default: dataset minimum)")
	scatterCmd.Flags().StringVar(&scatterMax, "max", "",
		"Upper payload bound in kg (default: dataset maximum)")

	rootCmd.AddCommand(scatterCmd)
}

func runScatter(cmd *cobra.Command, args []string) error {
	w, err := newReportWriter(cmd)
	if err != nil {
		return err
	}
	_, log, ds, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	rng, err := parseRange(scatterMin, scatterMax, ds.PayloadBounds())
	if err != nil {
		return err
	}
	site := siteFlag(scatterSite, ds, log)

	return w.Scatter(site, rng, launch.FilterForScatter(ds, site, rng))
}

// parseRange reads the bound flags over defaults and rejects malformed,
// non-finite or inverted ranges.
func parseRange(minValue, maxValue string, defaults launch.PayloadRange) (launch.PayloadRange, error) {
	rng := defaults
	if minValue != "" {
		v, err := strconv.ParseFloat(minValue, 64)
		if err != nil {
			return launch.PayloadRange{}, fmt.Errorf("%w: --min %q is not a number", launch.ErrInvalidRange, minValue)
		}
		rng.Min = v
	}
	if maxValue != "" {
		v, err := strconv.ParseFloat(maxValue, 64)
		if err != nil {
			return launch.PayloadRange{}, fmt.Errorf("%w: --max %q is not a number", launch.ErrInvalidRange, maxValue)
		}
		rng.Max = v
	}
	if err := rng.Validate(); err != nil {
		return launch.PayloadRange{}, err
	}
	return rng, nil
}
