package card

import "hass-reminders-tui/internal/hass"

// statesMsg delivers one poll of the entity state registry.
type statesMsg struct {
	states []hass.EntityState
	err    error
}

// remindersMsg delivers the outcome of one list refresh. entityID tags the
// binding the request was issued for so a stale response for an old binding
// can be discarded on arrival.
type remindersMsg struct {
	entityID string
	items    []hass.Reminder
	err      error
}

// mutationMsg delivers the outcome of a delete/update/create request.
type mutationMsg struct {
	op  string
	err error
}

// pollTickMsg fires the periodic state registry poll.
type pollTickMsg struct{}

// refreshTickMsg fires the periodic full list refresh.
type refreshTickMsg struct{}

// notifiedMsg reports a completed desktop notification attempt.
type notifiedMsg struct {
	err error
}
