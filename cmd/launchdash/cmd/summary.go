package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dbsmedya/launchdash/internal/launch"
)

var summarySite string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the launch success summary",
	Long: `Summary prints the counts behind the success pie chart.

With --site ALL (the default) it counts successful launches per site.
With a single site it counts that site's successes and failures.

Example:
  launchdash summary --site "KSC LC-39A" --output json`,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().StringVarP(&summarySite, "site", "s", string(launch.AllSites),
		"Launch site, or ALL for every site")

	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	w, err := newReportWriter(cmd)
	if err != nil {
		return err
	}
	_, log, ds, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	site := siteFlag(summarySite, ds, log)
	return w.Summary(launch.OutcomeSummary(ds, site))
}
