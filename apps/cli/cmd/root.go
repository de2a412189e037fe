package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	colorFlag  string
	configFlag string
)

var rootCmd = &cobra.Command{
	Use:   "httpc",
	Short: "A curl-like HTTP/1.1 client that speaks the protocol itself.",
	Long: `httpc builds raw HTTP/1.1 messages, sends them over TCP or TLS
sockets, and parses the response bytes directly instead of going through
an HTTP library.`,
	SilenceUsage: true,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto", "Color output: always, auto, never")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(versionCmd)
}
