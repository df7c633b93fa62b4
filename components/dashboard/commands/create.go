package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/cafemenu/menudash/components/dashboard"
)

// CreateItemInput captures a new dish submission.
type CreateItemInput struct {
	DishName      string `json:"dishName"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	HalfPrice     string `json:"halfPrice"`
	FullPrice     string `json:"fullPrice"`
	IsChefSpecial bool   `json:"isChefSpecial"`
}

type createService interface {
	CreateItem(ctx context.Context, draft dashboard.ItemDraft) error
}

// CreateItemCommand wraps Controller.CreateItem.
type CreateItemCommand struct {
	service   createService
	telemetry Telemetry
}

// NewCreateItemCommand creates the command.
func NewCreateItemCommand(service createService, telemetry Telemetry) *CreateItemCommand {
	return &CreateItemCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CreateItemInput] = (*CreateItemCommand)(nil)

// Execute validates the draft and creates the dish.
func (c *CreateItemCommand) Execute(ctx context.Context, msg CreateItemInput) error {
	if c.service == nil {
		return errors.New("create command requires service")
	}
	draft := dashboard.ItemDraft{
		DishName:      msg.DishName,
		Category:      msg.Category,
		Description:   msg.Description,
		HalfPrice:     msg.HalfPrice,
		FullPrice:     msg.FullPrice,
		IsChefSpecial: msg.IsChefSpecial,
	}
	if err := c.service.CreateItem(ctx, draft); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "menudash.command.item.create", map[string]any{
		"dish":     msg.DishName,
		"category": msg.Category,
	})
	return nil
}
