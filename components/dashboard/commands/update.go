package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	gocommand "github.com/goliatone/go-command"

	dashboard "github.com/cafemenu/menudash/components/dashboard"
)

// UpdateItemInput captures an item update.
type UpdateItemInput struct {
	ItemID        string `json:"item_id"`
	DishName      string `json:"dishName"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	HalfPrice     string `json:"halfPrice"`
	FullPrice     string `json:"fullPrice"`
	IsChefSpecial bool   `json:"isChefSpecial"`
}

type updateService interface {
	UpdateItem(ctx context.Context, id string, draft dashboard.ItemDraft) (dashboard.FieldErrors, error)
}

// UpdateItemCommand wraps Controller.UpdateItem.
type UpdateItemCommand struct {
	service   updateService
	telemetry Telemetry
}

// NewUpdateItemCommand creates the command.
func NewUpdateItemCommand(service updateService, telemetry Telemetry) *UpdateItemCommand {
	return &UpdateItemCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateItemInput] = (*UpdateItemCommand)(nil)

// Execute updates the dish, folding field-level validation errors into one
// error for transports without a field map surface.
func (c *UpdateItemCommand) Execute(ctx context.Context, msg UpdateItemInput) error {
	if c.service == nil {
		return errors.New("update command requires service")
	}
	if msg.ItemID == "" {
		return errors.New("update command requires item id")
	}
	draft := dashboard.ItemDraft{
		DishName:      msg.DishName,
		Category:      msg.Category,
		Description:   msg.Description,
		HalfPrice:     msg.HalfPrice,
		FullPrice:     msg.FullPrice,
		IsChefSpecial: msg.IsChefSpecial,
	}
	fieldErrs, err := c.service.UpdateItem(ctx, msg.ItemID, draft)
	if len(fieldErrs) > 0 {
		return fmt.Errorf("invalid fields: %s", joinFieldErrors(fieldErrs))
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "menudash.command.item.update", map[string]any{
		"item_id": msg.ItemID,
	})
	return nil
}

func joinFieldErrors(errs dashboard.FieldErrors) string {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = field + ": " + errs[field]
	}
	return strings.Join(parts, "; ")
}
