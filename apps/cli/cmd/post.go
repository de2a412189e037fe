package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dataFlag string
	fileFlag string
)

var postCmd = &cobra.Command{
	Use:   "post <url>",
	Short: "Execute an HTTP POST request and print the response",
	Long: `Execute an HTTP POST request and print the response.

The body comes from -d (inline data) or -f (a file); the two are mutually
exclusive. With neither, the request has no body.

Examples:
  httpc post -d '{"name":"box"}' -H "Content-Type: application/json" http://api.example.com/things
  httpc post -f payload.json -H "Content-Type: application/json" http://api.example.com/things
  httpc post -v -L -d "a=1&b=2" http://example.com/form`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := resolveBody()
		if err != nil {
			return err
		}
		return runRequest(cmd, "POST", args[0], body)
	},
}

func resolveBody() ([]byte, error) {
	if fileFlag != "" {
		body, err := os.ReadFile(fileFlag)
		if err != nil {
			return nil, fmt.Errorf("read body file: %w", err)
		}
		return body, nil
	}
	if dataFlag != "" {
		return []byte(dataFlag), nil
	}
	return nil, nil
}

func init() {
	addCommonFlags(postCmd)
	postCmd.Flags().StringVarP(&dataFlag, "data", "d", "", "Use inline data as the request body")
	postCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Use the contents of a file as the request body")
	postCmd.MarkFlagsMutuallyExclusive("data", "file")
}
