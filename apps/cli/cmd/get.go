package cmd

import (
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <url>",
	Short: "Execute an HTTP GET request and print the response",
	Long: `Execute an HTTP GET request and print the response.

A URL without a scheme defaults to http://.

Examples:
  httpc get example.com
  httpc get -v https://example.com/page
  httpc get -L http://example.com/redirects-somewhere
  httpc get -H "Accept: application/json" -q items.0.id http://api.example.com/items`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, "GET", args[0], nil)
	},
}

func init() {
	addCommonFlags(getCmd)
}
