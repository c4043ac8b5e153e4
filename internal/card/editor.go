package card

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"hass-reminders-tui/internal/hass"
)

// DraftDueLayout is the local wall-clock format the dialog edits: zero-padded
// date and minutes, no zone suffix. Editing is always in the viewer's local
// time.
const DraftDueLayout = "2006-01-02 15:04"

// Draft field focus order.
const (
	draftFieldSummary = iota
	draftFieldDue
	draftFieldCount
)

// EditDraft is the scratch state of the edit dialog. It exists only while the
// dialog is open and is never synced back into the cache; a save round-trip
// re-fetches truth instead.
type EditDraft struct {
	// TargetID is the reminder being edited, empty when creating a new one.
	TargetID string

	// LastFired is passed through unchanged on save so editing never
	// re-arms a reminder the scheduler already fired.
	LastFired string

	Summary    textinput.Model
	Due        textinput.Model
	FocusIndex int
}

func newDraftInputs(summary, due string) (textinput.Model, textinput.Model) {
	si := textinput.New()
	si.Placeholder = "Summary"
	si.CharLimit = 200
	si.Width = 40
	si.SetValue(summary)
	si.Focus()

	di := textinput.New()
	di.Placeholder = DraftDueLayout
	di.CharLimit = len(DraftDueLayout)
	di.Width = 40
	di.SetValue(due)

	return si, di
}

// NewEditDraft seeds a draft from a reminder's current summary and due
// timestamp. An unparseable due value is seeded raw so the user sees what the
// backend holds.
func NewEditDraft(r hass.Reminder) *EditDraft {
	due := r.Due
	if t, err := r.DueTime(); err == nil {
		due = t.Format(DraftDueLayout)
	}
	d := &EditDraft{TargetID: r.ID, LastFired: r.LastFired}
	d.Summary, d.Due = newDraftInputs(r.Summary, due)
	return d
}

// NewCreateDraft seeds an empty draft for a new reminder. The due default is
// tomorrow at 09:00, the backend's own default-due rule.
func NewCreateDraft(now time.Time) *EditDraft {
	due := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	d := &EditDraft{}
	d.Summary, d.Due = newDraftInputs("", due.Format(DraftDueLayout))
	return d
}

// Editing reports whether the draft targets an existing reminder.
func (d *EditDraft) Editing() bool {
	return d.TargetID != ""
}

// DueTime parses the draft's wall-clock string back into an absolute local
// timestamp.
func (d *EditDraft) DueTime() (time.Time, error) {
	return time.ParseInLocation(DraftDueLayout, d.Due.Value(), time.Local)
}

// NextField moves focus to the next dialog field.
func (d *EditDraft) NextField() {
	d.setFocus((d.FocusIndex + 1) % draftFieldCount)
}

// PrevField moves focus to the previous dialog field.
func (d *EditDraft) PrevField() {
	d.setFocus((d.FocusIndex + draftFieldCount - 1) % draftFieldCount)
}

func (d *EditDraft) setFocus(idx int) {
	d.FocusIndex = idx
	d.Summary.Blur()
	d.Due.Blur()
	switch idx {
	case draftFieldSummary:
		d.Summary.Focus()
	case draftFieldDue:
		d.Due.Focus()
	}
}

// Update routes input to the focused field.
func (d *EditDraft) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch d.FocusIndex {
	case draftFieldSummary:
		d.Summary, cmd = d.Summary.Update(msg)
	case draftFieldDue:
		d.Due, cmd = d.Due.Update(msg)
	}
	return cmd
}
