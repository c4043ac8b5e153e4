// Package card implements the reminder list card: list binding resolution,
// snapshot sync, due date classification and the view state machine.
package card

import (
	"fmt"
	"strings"

	"hass-reminders-tui/internal/session"
)

// listEntityFormat mirrors the entity ids the user_reminders integration
// registers: reminders.user_reminders_<slug of the user's name>.
const listEntityFormat = "reminders.user_reminders_%s"

// BindingStatus is the outcome of list resolution.
type BindingStatus int

const (
	// BindingNoSession means no session user is available yet. It is the
	// zero value so a freshly constructed Binding never passes as resolved.
	BindingNoSession BindingStatus = iota

	// BindingNotFound means the auto-detected entity id is not in the
	// registry.
	BindingNotFound

	// BindingResolved means the binding carries a usable list entity id.
	BindingResolved
)

// Binding is the resolved backend list for the current session. It is
// recomputed whenever the session's user id changes and never persisted.
type Binding struct {
	EntityID string
	Status   BindingStatus
	Message  string
}

// Resolved reports whether the binding can be used as a service target.
func (b Binding) Resolved() bool {
	return b.Status == BindingResolved && b.EntityID != ""
}

// NoSessionBinding is the binding in effect before any session user is known.
func NoSessionBinding() Binding {
	return Binding{
		Status:  BindingNoSession,
		Message: "No signed-in user available yet",
	}
}

// Slugify normalizes a display name the way the backend names list entities:
// lower-cased, every run of characters outside [a-z0-9] becomes a single
// underscore.
func Slugify(name string) string {
	var sb strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			sb.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.Trim(sb.String(), "_")
}

// ListEntityID derives the reminder list entity id for a display name.
func ListEntityID(displayName string) string {
	return fmt.Sprintf(listEntityFormat, Slugify(displayName))
}

// Resolve produces the list binding for a session snapshot. A configured
// override always wins and is not validated against the registry; otherwise
// the entity id is derived from the display name and must exist in the
// registry.
func Resolve(snap session.Snapshot, override string) Binding {
	if override != "" {
		return Binding{EntityID: override, Status: BindingResolved}
	}
	if !snap.HasUser() {
		return NoSessionBinding()
	}
	entityID := ListEntityID(snap.DisplayName)
	if !snap.Contains(entityID) {
		return Binding{
			Status:  BindingNotFound,
			Message: fmt.Sprintf("No reminder list found for %s (looked for %s)", snap.DisplayName, entityID),
		}
	}
	return Binding{EntityID: entityID, Status: BindingResolved}
}
