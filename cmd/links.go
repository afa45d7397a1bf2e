package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/devfolio/internal/links"
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Lists the social profiles of the portfolio owner",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Let's connect with %s!\n", links.Owner.Name)
		for _, link := range links.Social {
			fmt.Fprintf(out, "  %-8s @%-18s %s\n", link.Platform, link.Username, link.URL)
		}
	},
}

var linksOpenCmd = &cobra.Command{
	Use:   "open <platform>",
	Short: "Opens a social profile in the default browser",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		link, err := links.Lookup(args[0])
		if err != nil {
			return err
		}
		logger := newLogger(cmd)
		defer logger.Sync() //nolint:errcheck

		links.NewLauncher(nil, logger).Open(link.URL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(linksCmd)
	linksCmd.AddCommand(linksOpenCmd)
}
