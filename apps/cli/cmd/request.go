package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AtoraSuunva/httpc/packages/config"
	"github.com/AtoraSuunva/httpc/packages/header"
	"github.com/AtoraSuunva/httpc/packages/httpc"
	"github.com/AtoraSuunva/httpc/packages/output"
	"github.com/AtoraSuunva/httpc/packages/transport"
	"github.com/AtoraSuunva/httpc/packages/urlx"
)

var errConfig = errors.New("invalid configuration")

// Flags shared by get and post, mirroring each other on both commands.
var (
	verbosityFlag int
	outputFlag    string
	locationFlag  bool
	headerFlags   []string
	queryFlag     string
	timeoutFlag   time.Duration
)

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().CountVarP(&verbosityFlag, "verbose", "v", "Verbose output (-v: status and headers, -vv: also the outgoing request)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the response body to a file instead of stdout")
	cmd.Flags().BoolVarP(&locationFlag, "location", "L", false, "Follow 'Location' header redirects by repeating requests")
	cmd.Flags().StringArrayVarP(&headerFlags, "header", "H", nil, "Add a request header in 'key:value' format (repeatable)")
	cmd.Flags().StringVarP(&queryFlag, "query", "q", "", "Print only this JSON path of the response body")
	cmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "Connection and read deadline (0 means none)")
}

// runRequest is the one path from parsed flags to a finished request:
// load config, build the client, perform the hops, render the result.
func runRequest(cmd *cobra.Command, method, rawURL string, body []byte) error {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return fmt.Errorf("%w: %v", errConfig, err)
	}

	mode := output.ColorMode(colorFlag)
	if !cmd.Flags().Changed("color") && cfg.Color != "" {
		mode = output.ColorMode(cfg.Color)
	}
	printer := output.NewPrinter(
		output.WithVerbosity(verbosityFlag),
		output.WithColorMode(mode),
	)

	// Config headers go first so a -H flag can override them downstream
	// (both are kept on the wire; the engine never merges duplicates).
	hs, err := header.Parse(append(cfg.HeaderStrings(), headerFlags...))
	if err != nil {
		return err
	}

	client := httpc.NewClient(buildClientOptions(cfg, printer)...)

	resp, err := client.Do(method, urlx.Normalize(rawURL), hs, body)
	if err != nil {
		return err
	}

	if outputFlag != "" {
		if err := output.SaveBody(outputFlag, resp); err != nil {
			return err
		}
	}

	if queryFlag != "" {
		return printer.Query(resp, queryFlag)
	}
	printer.PrintResponse(resp)
	return nil
}

func buildClientOptions(cfg *config.Config, printer *output.Printer) []httpc.ClientOption {
	opts := []httpc.ClientOption{
		httpc.WithFollowRedirects(locationFlag || cfg.GetFollowRedirects()),
		httpc.WithUserAgent(userAgent(cfg)),
	}

	if cfg.MaxRedirects > 0 {
		opts = append(opts, httpc.WithMaxRedirects(cfg.MaxRedirects))
	}

	timeout := timeoutFlag
	if timeout == 0 && cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Millisecond
	}
	if timeout > 0 {
		opts = append(opts, httpc.WithDialer(transport.NewDialer(transport.WithTimeout(timeout))))
	}

	if fn := printer.HopFunc(); fn != nil {
		opts = append(opts, httpc.WithHopFunc(fn))
	}
	return opts
}

func userAgent(cfg *config.Config) string {
	if cfg.UserAgent != "" {
		return cfg.UserAgent
	}
	return "httpc/" + version
}
