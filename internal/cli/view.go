package cli

import (
	"fmt"
	"io"

	"shopchat-backend/internal/widget"
)

// terminalView renders the transcript as plain lines.
type terminalView struct {
	out    io.Writer
	status io.Writer
}

func newTerminalView(out, status io.Writer) *terminalView {
	return &terminalView{out: out, status: status}
}

func (v *terminalView) AppendMessage(sender widget.Sender, text string) {
	label := "Bot"
	if sender == widget.SenderUser {
		label = "You"
	}
	fmt.Fprintf(v.out, "%s: %s\n", label, text)
}

func (v *terminalView) SetTyping(on bool) {
	if on {
		fmt.Fprint(v.status, "Bot is typing...\r")
	} else {
		fmt.Fprint(v.status, "                \r")
	}
}

func (v *terminalView) SetBusy(bool) {}
