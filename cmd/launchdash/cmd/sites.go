package cmd

import (
	"github.com/spf13/cobra"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List launch sites in the dataset",
	Long: `Sites lists every launch site in first-seen order with its launch and
success counts, plus the payload bounds used as the slider default.

Example:
  launchdash sites --data spacex_launch_dash.csv`,
	RunE: runSites,
}

func init() {
	rootCmd.AddCommand(sitesCmd)
}

func runSites(cmd *cobra.Command, args []string) error {
	w, err := newReportWriter(cmd)
	if err != nil {
		return err
	}
	_, log, ds, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	return w.Sites(ds)
}
