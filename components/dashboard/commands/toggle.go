package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// ToggleAvailabilityInput identifies the dish whose availability flips.
type ToggleAvailabilityInput struct {
	ItemID string `json:"item_id"`
}

type toggleService interface {
	ToggleAvailability(ctx context.Context, id string) error
}

// ToggleAvailabilityCommand wraps Controller.ToggleAvailability.
type ToggleAvailabilityCommand struct {
	service   toggleService
	telemetry Telemetry
}

// NewToggleAvailabilityCommand creates the command.
func NewToggleAvailabilityCommand(service toggleService, telemetry Telemetry) *ToggleAvailabilityCommand {
	return &ToggleAvailabilityCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleAvailabilityInput] = (*ToggleAvailabilityCommand)(nil)

// Execute flips availability; local state ends up with the server's value.
func (c *ToggleAvailabilityCommand) Execute(ctx context.Context, msg ToggleAvailabilityInput) error {
	if c.service == nil {
		return errors.New("toggle command requires service")
	}
	if msg.ItemID == "" {
		return errors.New("toggle command requires item id")
	}
	if err := c.service.ToggleAvailability(ctx, msg.ItemID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "menudash.command.item.toggle", map[string]any{
		"item_id": msg.ItemID,
	})
	return nil
}
