package widget

import (
	"context"
	"sort"
)

var quickActions = map[string]string{
	"tracking": "I need help tracking my order. Can you check the status?",
	"products": "I have a question about your products. Can you help me?",
	"returns":  "I want to return or exchange a product. What's the process?",
	"billing":  "I have a question about my bill or payment method.",
}

// QuickActions lists the available shortcut names in sorted order.
func QuickActions() []string {
	names := make([]string, 0, len(quickActions))
	for name := range quickActions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// QuickMessage returns the canned message for action.
func QuickMessage(action string) (string, bool) {
	msg, ok := quickActions[action]
	return msg, ok
}

// QuickAction sends the canned message for action. Unknown actions are a no-op.
func (w *Widget) QuickAction(ctx context.Context, action string) bool {
	msg, ok := QuickMessage(action)
	if !ok {
		return false
	}
	return w.Send(ctx, msg)
}
