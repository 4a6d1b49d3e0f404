package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"shopchat-backend/internal/config"
	"shopchat-backend/internal/widget"
)

var (
	endpoint string
	timeout  time.Duration
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:          "chat",
	Short:        "ShopChat - talk to the customer service assistant",
	Long:         "A terminal client for the ShopChat proxy. Sends one message per request and prints the assistant's reply.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cfg := config.LoadClient()

	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", cfg.Endpoint, "chat proxy URL (env CHAT_ENDPOINT)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", cfg.Timeout, "request timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log request errors to stderr")

	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(quickCmd)
	rootCmd.AddCommand(replCmd)
}

// newWidget wires a widget to the terminal.
func newWidget(cmd *cobra.Command) *widget.Widget {
	w := widget.New(widget.NewHTTPReplier(endpoint, timeout), newTerminalView(cmd.OutOrStdout(), cmd.ErrOrStderr()))
	if verbose {
		w.SetLogOutput(os.Stderr)
	} else {
		w.SetLogOutput(nil)
	}
	return w
}
