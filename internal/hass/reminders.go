package hass

import (
	"fmt"
	"time"
)

// Service domain of the reminders integration. List entities live under this
// domain as reminders.user_reminders_<slug>.
const RemindersDomain = "reminders"

// remindersPath builds the service call path for a reminders service.
func remindersPath(service string, withResponse bool) string {
	path := "/api/services/" + RemindersDomain + "/" + service
	if withResponse {
		path += "?return_response"
	}
	return path
}

// getItemsResponse is keyed by entity id when multiple entities are targeted;
// we always target exactly one list.
type getItemsResponse struct {
	Reminders []Reminder `json:"reminders"`
}

// GetReminderItems fetches all items of the given reminder list entity.
func (c *Client) GetReminderItems(entityID string) ([]Reminder, error) {
	body := map[string]interface{}{
		"entity_id": entityID,
	}
	var resp serviceResponse[map[string]getItemsResponse]
	if err := c.Post(remindersPath("get_items", true), body, &resp); err != nil {
		return nil, fmt.Errorf("failed to get reminders for %s: %w", entityID, err)
	}
	return resp.ServiceResponse[entityID].Reminders, nil
}

// AddReminderItem creates a new reminder on the given list. user is optional
// and only consulted by the backend for automation-driven calls.
func (c *Client) AddReminderItem(entityID, summary string, due time.Time, user string) error {
	body := map[string]interface{}{
		"entity_id": entityID,
		"summary":   summary,
		"due":       due.Format(time.RFC3339),
	}
	if user != "" {
		body["user"] = user
	}
	if err := c.Post(remindersPath("add_item", false), body, nil); err != nil {
		return fmt.Errorf("failed to add reminder: %w", err)
	}
	return nil
}

// UpdateReminderItem rewrites summary and due of an existing reminder.
// lastFired must be passed through unchanged from the item being edited so an
// already-fired reminder is not re-armed by the edit.
func (c *Client) UpdateReminderItem(entityID, uid, summary string, due time.Time, lastFired string) error {
	body := map[string]interface{}{
		"entity_id": entityID,
		"uid":       uid,
		"summary":   summary,
		"due":       due.Format(time.RFC3339),
	}
	if lastFired != "" {
		body["last_fired"] = lastFired
	}
	if err := c.Post(remindersPath("update_item", false), body, nil); err != nil {
		return fmt.Errorf("failed to update reminder %s: %w", uid, err)
	}
	return nil
}

// RemoveReminderItems deletes the given reminders from the list.
func (c *Client) RemoveReminderItems(entityID string, uids []string) error {
	body := map[string]interface{}{
		"entity_id": entityID,
		"uids":      uids,
	}
	if err := c.Post(remindersPath("remove_item", false), body, nil); err != nil {
		return fmt.Errorf("failed to remove reminders %v: %w", uids, err)
	}
	return nil
}
