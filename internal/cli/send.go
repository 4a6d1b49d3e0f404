package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shopchat-backend/internal/widget"
)

var sendCmd = &cobra.Command{
	Use:   "send <message>",
	Short: "Send one message and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := newWidget(cmd)
		if !w.Send(cmd.Context(), strings.Join(args, " ")) {
			return fmt.Errorf("message is empty")
		}
		return w.LastErr()
	},
}

var quickCmd = &cobra.Command{
	Use:       "quick <action>",
	Short:     "Send a canned request (" + strings.Join(widget.QuickActions(), ", ") + ")",
	Args:      cobra.ExactArgs(1),
	ValidArgs: widget.QuickActions(),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := newWidget(cmd)
		if !w.QuickAction(cmd.Context(), args[0]) {
			return fmt.Errorf("unknown quick action %q (available: %s)", args[0], strings.Join(widget.QuickActions(), ", "))
		}
		return w.LastErr()
	},
}
