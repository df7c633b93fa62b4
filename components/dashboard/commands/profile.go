package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/cafemenu/menudash/pkg/backend"
)

// SaveCafeInput carries the café profile to persist. Empty fields keep their
// current draft values.
type SaveCafeInput struct {
	CafeName    string `json:"cafename"`
	PhoneNo     string `json:"phoneNo"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
}

type profileService interface {
	SaveCafe(ctx context.Context, profile backend.CafeProfile) error
}

// SaveCafeCommand wraps Controller.SaveCafe.
type SaveCafeCommand struct {
	service   profileService
	telemetry Telemetry
}

// NewSaveCafeCommand creates the command.
func NewSaveCafeCommand(service profileService, telemetry Telemetry) *SaveCafeCommand {
	return &SaveCafeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveCafeInput] = (*SaveCafeCommand)(nil)

// Execute persists the café profile.
func (c *SaveCafeCommand) Execute(ctx context.Context, msg SaveCafeInput) error {
	if c.service == nil {
		return errors.New("save cafe command requires service")
	}
	profile := backend.CafeProfile{
		CafeName:    msg.CafeName,
		PhoneNo:     msg.PhoneNo,
		Address:     msg.Address,
		Description: msg.Description,
		Logo:        msg.Logo,
	}
	if err := c.service.SaveCafe(ctx, profile); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "menudash.command.cafe.save", map[string]any{
		"cafename": msg.CafeName,
	})
	return nil
}
