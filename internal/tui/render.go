package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	runewidth "github.com/mattn/go-runewidth"

	"kanbo/internal/engine"
)

const (
	columnWidth    = 28
	logPanelHeight = 6
	overlayWidth   = 60
)

func (m appModel) render(vm engine.ViewModel) string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader(vm))
	b.WriteString("\n")

	body := m.renderBoard(vm)
	if vm.Overlay != nil {
		// The overlay replaces the board wholesale; compositing boxes over
		// styled text is not worth the escape-sequence surgery.
		body = lipgloss.Place(m.width, m.boardHeight(vm), lipgloss.Center, lipgloss.Center,
			m.renderOverlay(vm.Overlay))
	}
	b.WriteString(body)
	b.WriteString("\n")

	if vm.ShowLog {
		b.WriteString(m.renderActivity(vm))
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatus(vm))
	return b.String()
}

func (m appModel) renderHeader(vm engine.ViewModel) string {
	parts := []string{styleOverlayTitle.Render(vm.Title)}
	for _, t := range vm.Tabs {
		st := styleTab
		if t.Selected {
			st = styleTabSelected
		}
		parts = append(parts, st.Render(truncate(t.Name, 20)))
	}
	return ansi.Truncate(lipgloss.JoinHorizontal(lipgloss.Center, parts...), m.width, "")
}

func (m appModel) renderBoard(vm engine.ViewModel) string {
	if vm.EmptyNotice != "" {
		notice := faintIfDark(lipgloss.NewStyle().Foreground(colorMuted)).Render(vm.EmptyNotice)
		return lipgloss.Place(m.width, m.boardHeight(vm), lipgloss.Center, lipgloss.Center, notice)
	}

	cols := make([]string, 0, len(vm.Columns))
	for _, c := range vm.Columns {
		cols = append(cols, m.renderColumn(c))
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	return lipgloss.Place(m.width, m.boardHeight(vm), lipgloss.Left, lipgloss.Top, board)
}

func (m appModel) boardHeight(vm engine.ViewModel) int {
	h := m.height - 3 // header + status
	if vm.ShowLog {
		h -= logPanelHeight + 3
	}
	return max(h, 4)
}

func (m appModel) renderColumn(c engine.ColumnVM) string {
	var rows []string
	title := styleColumnTitle.Render(truncate(c.Title, columnWidth-4))
	rows = append(rows, title)
	for _, card := range c.Cards {
		rows = append(rows, renderCard(card))
	}
	if len(c.Cards) == 0 {
		rows = append(rows, faintIfDark(lipgloss.NewStyle().Foreground(colorMuted)).Render("(empty)"))
	}

	st := styleColumn
	if c.Selected {
		st = styleColumnSelected
	}
	return st.Width(columnWidth).Render(strings.Join(rows, "\n"))
}

func renderCard(c engine.CardVM) string {
	inner := columnWidth - 6
	var rows []string
	rows = append(rows, truncate(c.Title, inner))

	if c.DueLabel != "" {
		due := lipgloss.NewStyle().Foreground(colorMuted)
		switch {
		case c.Overdue:
			due = lipgloss.NewStyle().Foreground(colorOverdue).Bold(true)
		case c.DueSoon:
			due = lipgloss.NewStyle().Foreground(colorDueSoon)
		}
		rows = append(rows, due.Render("due "+c.DueLabel))
	}
	if len(c.Tags) > 0 {
		rows = append(rows, styleTag.Render(truncate("#"+strings.Join(c.Tags, " #"), inner)))
	}

	st := styleCard
	if c.Selected {
		st = styleCardSelected
	}
	return st.Width(columnWidth - 4).Render(strings.Join(rows, "\n"))
}

func (m appModel) renderActivity(vm engine.ViewModel) string {
	var rows []string
	for _, a := range vm.Activity {
		who := "sys"
		if a.ByUser {
			who = "you"
		}
		rows = append(rows, a.When+" "+who+"  "+a.Text)
	}
	lv := m.logView
	lv.Width = max(m.width-4, 10)
	lv.Height = logPanelHeight
	lv.SetContent(strings.Join(rows, "\n"))
	lv.GotoBottom()
	return styleColumn.Width(m.width - 2).Render(lv.View())
}

func (m appModel) renderStatus(vm engine.ViewModel) string {
	var left string
	switch vm.Status.Level {
	case engine.StatusError:
		left = styleStatusError.Render(vm.Status.Text)
	case engine.StatusWarn:
		left = styleStatusWarn.Render(vm.Status.Text)
	default:
		left = styleStatusInfo.Render(vm.Status.Text)
	}

	var right string
	if vm.Busy {
		right = m.spin.View() + " "
	}
	if vm.Unsaved {
		right += styleStatusWarn.Render("[+]")
	} else {
		right += styleStatusInfo.Render("[saved]")
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		left = ansi.Truncate(left, max(m.width-lipgloss.Width(right)-1, 0), "…")
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m appModel) renderOverlay(ov *engine.OverlayVM) string {
	w := min(overlayWidth, m.width-4)
	var rows []string
	rows = append(rows, styleOverlayTitle.Render(ov.Title), "")

	for _, f := range ov.Fields {
		rows = append(rows, renderField(f, w-6)...)
	}

	switch ov.Kind {
	case engine.OverlayEditor:
		if md := renderMarkdown(ov.Body, w-6); md != "" {
			rows = append(rows, "", styleFieldLabel.Render("Preview"), md)
		}
	case engine.OverlaySearch, engine.OverlayPrompt:
		for _, it := range ov.Items {
			line := truncate(it.Label, w-10)
			if it.Detail != "" {
				line += "  " + styleFieldLabel.Render(truncate(it.Detail, w-10-runewidth.StringWidth(line)))
			}
			if it.Selected {
				line = styleItemSelected.Render("> " + line)
			} else {
				line = "  " + line
			}
			rows = append(rows, line)
		}
	case engine.OverlayConfirm:
		rows = append(rows, ov.Body, "")
		// Cancel is the safe default.
		cancel, confirm := styleButtonActive, styleButton
		if ov.ConfirmActive {
			cancel, confirm = styleButton, styleButtonActive
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Center,
			cancel.Render(ov.CancelLabel), "  ", confirm.Render(ov.ConfirmLabel)))
	case engine.OverlayHelp:
		rows = append(rows, renderMarkdown(ov.Body, w-6))
	}

	return styleOverlay.Width(w).Render(strings.Join(rows, "\n"))
}

// renderField draws a labelled input line with a block cursor.
func renderField(f engine.FieldVM, width int) []string {
	var rows []string
	if f.Label != "" {
		rows = append(rows, styleFieldLabel.Render(f.Label))
	}
	val := f.Value
	if f.Focus {
		r := []rune(val)
		cur := " "
		rest := ""
		if f.Cursor < len(r) {
			cur = string(r[f.Cursor])
			rest = string(r[f.Cursor+1:])
		}
		val = string(r[:min(f.Cursor, len(r))]) +
			lipgloss.NewStyle().Reverse(true).Render(cur) + rest
	}
	rows = append(rows, ansi.Truncate("> "+val, width, "…"), "")
	return rows
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= w {
		return s
	}
	return ansi.Truncate(s, w, "…")
}
