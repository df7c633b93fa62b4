package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// DeleteAccountInput gates the irreversible account deletion behind an
// explicit confirmation flag.
type DeleteAccountInput struct {
	Confirm bool `json:"confirm"`
}

type accountService interface {
	DeleteAccount(ctx context.Context) error
}

// DeleteAccountCommand wraps Controller.DeleteAccount.
type DeleteAccountCommand struct {
	service   accountService
	telemetry Telemetry
}

// NewDeleteAccountCommand creates the command.
func NewDeleteAccountCommand(service accountService, telemetry Telemetry) *DeleteAccountCommand {
	return &DeleteAccountCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteAccountInput] = (*DeleteAccountCommand)(nil)

// Execute deletes the account. There is no undo.
func (c *DeleteAccountCommand) Execute(ctx context.Context, msg DeleteAccountInput) error {
	if c.service == nil {
		return errors.New("delete account command requires service")
	}
	if !msg.Confirm {
		return errors.New("delete account command requires confirmation")
	}
	if err := c.service.DeleteAccount(ctx); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "menudash.command.account.delete", nil)
	return nil
}
