package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"alfredoptarigan/interview-coach/internal/session"
)

// renderHeader draws the title, the three status pills and the chosen options.
func renderHeader(vm session.ViewModel, sel session.RawSelection) string {
	pills := lipgloss.JoinHorizontal(lipgloss.Top,
		pillStyle.Render(vm.SessionPill), " ",
		pillStyle.Render(vm.RoundPill), " ",
		pillStyle.Render(vm.AvgPill),
	)

	field := sel.Field
	if strings.EqualFold(field, session.CustomChoice) || field == "" {
		field = sel.CustomField
	}
	options := dimStyle.Render(fmt.Sprintf("%s · %s · difficulty %d · %d rounds",
		field, sel.InterviewType, sel.Difficulty, sel.Rounds))

	return titleStyle.Render("AI Interview Coach") + "\n" + pills + "\n" + options
}

// renderBody draws the visible panels in screen order.
func renderBody(vm session.ViewModel, width int) string {
	inner := max(20, width-4)
	var parts []string

	if vm.Panels.Interview {
		parts = append(parts, panel(panelStyle, inner, "Question", vm.Question))
	}
	if vm.Panels.Feedback {
		parts = append(parts, panel(panelStyle, inner, "Feedback", vm.Feedback))
	}
	if vm.Panels.Final {
		parts = append(parts, panel(finalPanelStyle, inner, "Final Report", vm.FinalReport))
	}
	if vm.Panels.Summary {
		parts = append(parts, panel(panelStyle, inner, "Session Summary", vm.Summary))
	}

	if len(parts) == 0 {
		return dimStyle.Render("Press ctrl+s to start an interview.")
	}
	return strings.Join(parts, "\n")
}

func panel(style lipgloss.Style, width int, title, body string) string {
	return style.Width(width).Render(titleStyle.Render(title) + "\n\n" + body)
}

// renderActivity shows the newest limit entries, errors in red.
func renderActivity(entries []session.Entry, limit int) string {
	if len(entries) == 0 {
		return dimStyle.Render("No activity yet.")
	}

	n := min(limit, len(entries))
	lines := make([]string, 0, n)
	for _, e := range entries[:n] {
		if e.IsError {
			lines = append(lines, errorStyle.Render(e.String()))
		} else {
			lines = append(lines, dimStyle.Render(e.String()))
		}
	}
	return strings.Join(lines, "\n")
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return dimStyle.Render(strings.Join(parts, " • "))
}
