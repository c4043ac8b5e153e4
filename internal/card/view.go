package card

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"hass-reminders-tui/internal/hass"
	"hass-reminders-tui/internal/styles"
)

// deleteHitWidth is the width of the per-row delete affordance at the right
// edge, used for mouse hit testing.
const deleteHitWidth = 4

// headerLines is the number of lines above the first list row: the title and
// the banner line. Mouse hit testing depends on this staying fixed.
const headerLines = 2

// View implements tea.Model, rendering exactly one of the structural states:
// loading, error, empty, list, or the edit dialog over the list.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	if m.draft != nil {
		return m.viewDialog()
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(m.title()))
	b.WriteString("\n")
	b.WriteString(m.bannerLine())
	b.WriteString("\n")

	switch {
	case m.sync.Status() == StatusLoading:
		b.WriteString(m.spinner.View() + " Loading reminders...")

	case m.sync.Status() == StatusError:
		b.WriteString(styles.ErrorBox.Width(m.contentWidth()).Render(m.sync.ErrorMessage()))

	default:
		items := m.sync.Snapshot()
		if len(items) == 0 {
			b.WriteString(m.viewEmpty())
		} else {
			m.listTop = headerLines
			now := m.now()
			for i, r := range items {
				if i > 0 {
					b.WriteString("\n")
				}
				b.WriteString(m.viewRow(i, r, now))
			}
		}
	}

	b.WriteString("\n\n")
	b.WriteString(styles.StatusLine.Render(m.hints()))
	return b.String()
}

func (m *Model) contentWidth() int {
	if m.width > 4 {
		return m.width - 2
	}
	return m.width
}

func (m *Model) title() string {
	if m.snap.DisplayName != "" {
		return fmt.Sprintf("Reminders — %s", m.snap.DisplayName)
	}
	return "Reminders"
}

func (m *Model) bannerLine() string {
	if m.cmdErr == "" {
		return ""
	}
	return styles.ErrorBanner.Render(runewidth.Truncate(m.cmdErr, m.contentWidth(), "…"))
}

func (m *Model) viewEmpty() string {
	switch b := m.sync.Binding(); b.Status {
	case BindingNotFound:
		// A derived list that does not exist is a persistent problem, not
		// an empty list; it gets the error view's styling.
		return styles.ErrorBox.Width(m.contentWidth()).Render(b.Message)
	case BindingNoSession:
		return styles.EmptyHint.Render(b.Message)
	default:
		return styles.EmptyHint.Render("No reminders — all caught up.")
	}
}

func (m *Model) viewRow(i int, r hass.Reminder, now time.Time) string {
	overdue := IsOverdue(r.Due, now)
	dueText := FormatDue(r.Due, now, m.locale)

	dueStyle := styles.Due
	marker := " "
	switch {
	case overdue:
		dueStyle = styles.DueOverdue
		marker = "!"
	case Classify(mustDue(r, now), now) == BucketToday:
		dueStyle = styles.DueToday
	}

	rowStyle := styles.Item
	if i == m.cursor {
		rowStyle = styles.ItemSelected
	}

	due := dueStyle.Render(dueText)
	avail := m.contentWidth() - lipgloss.Width(due) - deleteHitWidth - 4
	if avail < 8 {
		avail = 8
	}
	summary := runewidth.Truncate(r.Summary, avail, "…")

	line := fmt.Sprintf("%s %s%s", marker, summary, due)
	pad := m.contentWidth() - lipgloss.Width(line) - deleteHitWidth
	if pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return rowStyle.Render(line + " ✕")
}

// mustDue parses the due for bucket styling only; on failure it yields a
// far-future time so the row styles as a plain entry.
func mustDue(r hass.Reminder, now time.Time) time.Time {
	t, err := r.DueTime()
	if err != nil {
		return now.AddDate(1, 0, 0)
	}
	return t
}

func (m *Model) viewDialog() string {
	title := "Edit reminder"
	if !m.draft.Editing() {
		title = "New reminder"
	}

	var b strings.Builder
	b.WriteString(styles.DialogTitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(styles.FieldLabel.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(m.draft.Summary.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FieldLabel.Render("Due (" + DraftDueLayout + ")"))
	b.WriteString("\n")
	b.WriteString(m.draft.Due.View())
	b.WriteString("\n\n")
	b.WriteString(styles.StatusLine.Render(fmt.Sprintf(
		"%s save · %s cancel · %s/%s fields",
		m.keymap.Save.Key, m.keymap.Cancel.Key, m.keymap.Next.Key, m.keymap.Prev.Key,
	)))

	if m.cmdErr != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorBanner.Render(m.cmdErr))
	}

	dialog := styles.Dialog.Render(b.String())
	dw := lipgloss.Width(dialog)
	dh := lipgloss.Height(dialog)
	m.dialogBox = box{x: (m.width - dw) / 2, y: (m.height - dh) / 2, w: dw, h: dh}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}

func (m *Model) hints() string {
	k := m.keymap
	return fmt.Sprintf("%s/%s move · %s edit · %s add · %s delete · %s yank · %s refresh · %s quit",
		k.Down.Key, k.Up.Key, k.Edit.Key, k.Add.Key, k.Delete.Key, k.Yank.Key, k.Refresh.Key, k.Quit.Key)
}
