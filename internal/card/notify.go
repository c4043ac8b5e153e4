package card

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"hass-reminders-tui/internal/hass"
)

// overdueNotifications returns commands sending a desktop notification for
// each reminder that newly turned overdue in this snapshot. seen tracks ids
// already notified so a reminder alerts at most once per card lifetime.
func overdueNotifications(items []hass.Reminder, now time.Time, seen map[string]bool) []tea.Cmd {
	var cmds []tea.Cmd
	for _, r := range items {
		if seen[r.ID] || !IsOverdue(r.Due, now) {
			continue
		}
		seen[r.ID] = true
		summary := r.Summary
		cmds = append(cmds, func() tea.Msg {
			err := beeep.Notify("Reminder overdue", summary, "")
			return notifiedMsg{err: err}
		})
	}
	return cmds
}
