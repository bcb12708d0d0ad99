package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"herdsos/config"
	"herdsos/database"
	cowRepoImp "herdsos/pkg/cow/repositoryImp"
)

// NewLinksCmd creates the links command.
func NewLinksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "links",
		Short: "Print the report link for every cow",
		Long: `Links prints one line per cow with its code and the URL a farmer opens to
report an emergency for it. The base URL comes from REPORT_BASE_URL.`,
		Args: cobra.NoArgs,
		RunE: runLinksCmd,
	}
}

func runLinksCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	cows, err := cowRepoImp.New(db).List(cmd.Context())
	if err != nil {
		return err
	}
	if len(cows) == 0 {
		return fmt.Errorf("no cows in %s (run 'herdsos seed' first)", cfg.DBPath)
	}
	for _, c := range cows {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.Code, reportURL(cfg.ReportBaseURL, c.ID))
	}
	return nil
}

func reportURL(base string, cowID uint) string {
	return fmt.Sprintf("%s/report/%d", base, cowID)
}
