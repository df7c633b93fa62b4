package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// RemoveItemInput identifies the dish to delete.
type RemoveItemInput struct {
	ItemID string `json:"item_id"`
}

type removeService interface {
	DeleteItem(ctx context.Context, id string) error
}

// RemoveItemCommand wraps Controller.DeleteItem.
type RemoveItemCommand struct {
	service   removeService
	telemetry Telemetry
}

// NewRemoveItemCommand creates the command.
func NewRemoveItemCommand(service removeService, telemetry Telemetry) *RemoveItemCommand {
	return &RemoveItemCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RemoveItemInput] = (*RemoveItemCommand)(nil)

// Execute deletes the dish.
func (c *RemoveItemCommand) Execute(ctx context.Context, msg RemoveItemInput) error {
	if c.service == nil {
		return errors.New("remove command requires service")
	}
	if msg.ItemID == "" {
		return errors.New("remove command requires item id")
	}
	if err := c.service.DeleteItem(ctx, msg.ItemID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "menudash.command.item.remove", map[string]any{
		"item_id": msg.ItemID,
	})
	return nil
}
