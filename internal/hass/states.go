package hass

import "fmt"

// GetStates returns the full entity state registry.
func (c *Client) GetStates() ([]EntityState, error) {
	var states []EntityState
	if err := c.Get("/api/states", &states); err != nil {
		return nil, fmt.Errorf("failed to get states: %w", err)
	}
	return states, nil
}

// GetState returns the state of a single entity.
func (c *Client) GetState(entityID string) (*EntityState, error) {
	var state EntityState
	if err := c.Get("/api/states/"+entityID, &state); err != nil {
		return nil, fmt.Errorf("failed to get state of %s: %w", entityID, err)
	}
	return &state, nil
}
