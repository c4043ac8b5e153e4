// Package session derives an immutable session snapshot from the Home
// Assistant state registry.
//
// A browser dashboard gets the signed-in user pushed from the frontend; a
// terminal has no ambient session, so the snapshot is built from the person.*
// entities of the instance the token talks to.
package session

import (
	"strings"
	"time"

	"golang.org/x/text/language"

	"hass-reminders-tui/internal/hass"
)

// EntityStamp is the externally observable state of one entity: the fields
// that matter for change detection, nothing else.
type EntityStamp struct {
	State       string
	LastChanged time.Time
}

// Snapshot is an immutable view of the session at one point in time. A new
// snapshot replaces the previous one wholesale; diffing helpers below compare
// only the fields that drive behavior.
type Snapshot struct {
	// UserID is the stable Home Assistant user id, empty when no person
	// matched.
	UserID string

	// DisplayName is the person's friendly name.
	DisplayName string

	// Locale is the display locale for due date formatting.
	Locale language.Tag

	// Entities maps entity id to its observable state.
	Entities map[string]EntityStamp
}

// New builds a snapshot from the state registry. userName selects a person
// entity by friendly name; when empty and exactly one person entity exists,
// that one is used.
func New(states []hass.EntityState, userName string, locale language.Tag) Snapshot {
	snap := Snapshot{
		Locale:   locale,
		Entities: make(map[string]EntityStamp, len(states)),
	}

	var persons []hass.EntityState
	for _, s := range states {
		snap.Entities[s.EntityID] = EntityStamp{
			State:       s.State,
			LastChanged: s.LastChanged,
		}
		if strings.HasPrefix(s.EntityID, "person.") {
			persons = append(persons, s)
		}
	}

	for _, p := range persons {
		name := p.StringAttribute("friendly_name")
		if userName != "" && !strings.EqualFold(name, userName) {
			continue
		}
		if userName == "" && len(persons) > 1 {
			// Ambiguous without a configured user.
			break
		}
		snap.UserID = p.StringAttribute("user_id")
		snap.DisplayName = name
		break
	}

	return snap
}

// HasUser reports whether the snapshot carries an identified user.
func (s Snapshot) HasUser() bool {
	return s.UserID != "" && s.DisplayName != ""
}

// Contains reports whether the registry knows the given entity id.
func (s Snapshot) Contains(entityID string) bool {
	_, ok := s.Entities[entityID]
	return ok
}

// Stamp returns the observable state of an entity.
func (s Snapshot) Stamp(entityID string) (EntityStamp, bool) {
	st, ok := s.Entities[entityID]
	return st, ok
}

// SameUser reports whether two snapshots belong to the same user identity.
// Unrelated registry churn must not count as a session change.
func SameUser(a, b Snapshot) bool {
	return a.UserID == b.UserID
}

// EntityChanged reports whether an entity's observable state differs between
// two snapshots, field by field. An entity appearing or disappearing counts
// as a change.
func EntityChanged(prev, next Snapshot, entityID string) bool {
	p, pok := prev.Entities[entityID]
	n, nok := next.Entities[entityID]
	if pok != nok {
		return true
	}
	if !nok {
		return false
	}
	return p.State != n.State || !p.LastChanged.Equal(n.LastChanged)
}
