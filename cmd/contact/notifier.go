package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrymomot/portfolio/pkg/contactform"
)

var (
	successColor = lipgloss.Color("#8BC34A")
	errorColor   = lipgloss.Color("#E53935")

	badgeStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
)

// terminalNotifier prints notifications as a colored badge followed by the message.
type terminalNotifier struct {
	out io.Writer
}

func (n terminalNotifier) Notify(_ context.Context, note contactform.Notification) {
	fmt.Fprintln(n.out, render(note))
}

func render(note contactform.Notification) string {
	label, color := "SENT", successColor
	if note.Kind != contactform.KindSuccess {
		label, color = "FAILED", errorColor
	}
	badge := badgeStyle.Foreground(color).Render(label)
	return lipgloss.JoinHorizontal(lipgloss.Top, badge, " ", note.Message)
}
