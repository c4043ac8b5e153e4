package hass

import (
	"fmt"
	"time"
)

// EntityState is one entry of the Home Assistant state registry.
type EntityState struct {
	EntityID    string                 `json:"entity_id"`
	State       string                 `json:"state"`
	Attributes  map[string]interface{} `json:"attributes"`
	LastChanged time.Time              `json:"last_changed"`
	LastUpdated time.Time              `json:"last_updated"`
}

// StringAttribute returns a string attribute of the entity, or "" when the
// attribute is missing or not a string.
func (s *EntityState) StringAttribute(key string) string {
	v, ok := s.Attributes[key].(string)
	if !ok {
		return ""
	}
	return v
}

// Reminder is one item of a reminder list entity, as returned by the
// reminders.get_items service.
type Reminder struct {
	ID        string `json:"id"`
	Summary   string `json:"summary"`
	Due       string `json:"due"`
	UserID    string `json:"user_id,omitempty"`
	LastFired string `json:"last_fired,omitempty"`
}

// Due values travel as ISO-8601 strings. The integration emits them without a
// zone offset (local wall clock), but offsets appear once the scheduler has
// touched an item.
var dueLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDue parses an ISO-8601 due string into local time.
func ParseDue(raw string) (time.Time, error) {
	for _, layout := range dueLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized due value %q", raw)
}

// DueTime parses the reminder's due string into local time.
func (r *Reminder) DueTime() (time.Time, error) {
	return ParseDue(r.Due)
}

// serviceResponse wraps a service call result when return_response is
// requested.
type serviceResponse[T any] struct {
	ChangedStates   []EntityState `json:"changed_states"`
	ServiceResponse T             `json:"service_response"`
}
