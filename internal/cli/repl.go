package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shopchat-backend/internal/widget"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive chat session",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	w := newWidget(cmd)
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprintln(out, "Hi! How can I help you today? Type /help for commands.")
	fmt.Fprint(out, ">>> ")

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)

		switch {
		case line == "":
		case line == "/exit" || line == "/quit" || line == "/bye":
			fmt.Fprintln(out, "Goodbye.")
			return nil
		case line == "/help":
			fmt.Fprintln(out, "Commands:")
			fmt.Fprintln(out, "  /exit, /quit, /bye  - Exit the chat")
			fmt.Fprintln(out, "  /quick <action>     - Send a canned request ("+strings.Join(widget.QuickActions(), ", ")+")")
			fmt.Fprintln(out, "  /help               - Show this help")
			fmt.Fprintln(out, "  <text>              - Ask the assistant")
		case fields[0] == "/quick":
			if len(fields) != 2 || !w.QuickAction(cmd.Context(), fields[1]) {
				fmt.Fprintf(out, "Usage: /quick <%s>\n", strings.Join(widget.QuickActions(), "|"))
			}
		default:
			w.Send(cmd.Context(), line)
		}
		fmt.Fprint(out, ">>> ")
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	return nil
}
