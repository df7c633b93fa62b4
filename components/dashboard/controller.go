package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cafemenu/menudash/pkg/backend"
)

// ErrValidationFailed marks a submission stopped client-side. No network
// call was made.
var ErrValidationFailed = errors.New("dashboard: validation failed")

// Backend is the slice of the REST client the dashboard consumes. Satisfied
// by *backend.Client.
type Backend interface {
	Whoami(ctx context.Context) error
	SignOut(ctx context.Context) error
	OwnerProfile(ctx context.Context) (backend.OwnerProfile, error)
	DeleteAccount(ctx context.Context) error
	MyMenu(ctx context.Context) ([]backend.MenuItem, error)
	CreateItem(ctx context.Context, input backend.CreateItemInput) (backend.MenuItem, error)
	UpdateItem(ctx context.Context, id string, input backend.UpdateItemInput) (backend.MenuItem, error)
	DeleteItem(ctx context.Context, id string) error
	ToggleAvailability(ctx context.Context, id string) (bool, error)
	Cafe(ctx context.Context) (backend.CafeProfile, error)
	SaveCafe(ctx context.Context, profile backend.CafeProfile) error
}

// Operation families for in-flight tracking. Flags are scoped per family so
// unrelated mutations never block or shadow each other.
type Operation string

const (
	OpCreateItem    Operation = "item.create"
	OpUpdateItem    Operation = "item.update"
	OpDeleteItem    Operation = "item.delete"
	OpToggleItem    Operation = "item.toggle"
	OpSaveProfile   Operation = "cafe.save"
	OpDeleteAccount Operation = "account.delete"
)

// Options configures the Controller. Every collaborator is provided via
// interface so hosts can swap implementations.
type Options struct {
	Backend       Backend
	Notifier      Notifier
	Navigator     Navigator
	Telemetry     Telemetry
	Logger        logrus.FieldLogger
	RedirectDelay time.Duration
}

// Controller is the dashboard's single source of truth: it owns the session
// guard, both stores, the modal orchestrator, and the mutation executor that
// reconciles them against the backend.
type Controller struct {
	opts      Options
	session   *SessionGuard
	cafe      *CafeProfileStore
	catalogue *MenuCatalogueStore
	modals    *Modals

	flagMu   sync.Mutex
	inFlight map[Operation]bool

	ownerMu sync.RWMutex
	owner   backend.OwnerProfile
}

// NewController wires the dashboard with safe defaults for every optional
// collaborator.
func NewController(opts Options) (*Controller, error) {
	if opts.Backend == nil {
		return nil, errors.New("dashboard: backend client is required")
	}
	opts.Notifier = normalizeNotifier(opts.Notifier)
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.Navigator == nil {
		opts.Navigator = noopNavigator{}
	}
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	c := &Controller{
		opts:     opts,
		modals:   NewModals(),
		inFlight: map[Operation]bool{},
	}
	c.session = NewSessionGuard(GuardConfig{
		Backend:       opts.Backend,
		Navigator:     opts.Navigator,
		RedirectDelay: opts.RedirectDelay,
		Logger:        opts.Logger,
	})
	c.cafe = NewCafeProfileStore(opts.Backend, opts.Notifier, opts.Logger)
	c.catalogue = NewMenuCatalogueStore(opts.Backend, opts.Logger)
	return c, nil
}

// Session exposes the guard for view gating.
func (c *Controller) Session() *SessionGuard { return c.session }

// Cafe exposes the café profile store.
func (c *Controller) Cafe() *CafeProfileStore { return c.cafe }

// Catalogue exposes the menu catalogue store.
func (c *Controller) Catalogue() *MenuCatalogueStore { return c.catalogue }

// Modals exposes the dialog orchestrator.
func (c *Controller) Modals() *Modals { return c.modals }

// Mount runs the session check and, when it passes, hydrates the catalogue,
// the café profile, and the owner profile. Hydration failures do not unseat
// an authenticated session; each store keeps its own failure policy.
func (c *Controller) Mount(ctx context.Context) SessionStatus {
	status := c.session.Check(ctx)
	if status != SessionAuthenticated {
		return status
	}
	_ = c.catalogue.Load(ctx)
	c.cafe.Load(ctx)
	if owner, err := c.opts.Backend.OwnerProfile(ctx); err != nil {
		c.opts.Logger.WithError(err).Error("fetching owner profile failed")
	} else {
		c.ownerMu.Lock()
		c.owner = owner
		c.ownerMu.Unlock()
	}
	return status
}

// Unmount cancels scheduled navigation. Outstanding requests are not
// aborted; their reconciliation is simply never observed.
func (c *Controller) Unmount() {
	c.session.Close()
}

// Owner returns the read-only account record fetched at mount.
func (c *Controller) Owner() backend.OwnerProfile {
	c.ownerMu.RLock()
	defer c.ownerMu.RUnlock()
	return c.owner
}

// InFlight reports whether an operation family has an unfinished round trip.
func (c *Controller) InFlight(op Operation) bool {
	c.flagMu.Lock()
	defer c.flagMu.Unlock()
	return c.inFlight[op]
}

func (c *Controller) begin(op Operation) func() {
	c.flagMu.Lock()
	c.inFlight[op] = true
	c.flagMu.Unlock()
	return func() {
		c.flagMu.Lock()
		c.inFlight[op] = false
		c.flagMu.Unlock()
	}
}

// CreateItem validates the draft and performs the create round trip. On
// success the catalogue is refetched so the server-assigned identity and
// availability land locally.
func (c *Controller) CreateItem(ctx context.Context, draft ItemDraft) error {
	if err := ValidateAddDraft(draft); err != nil {
		c.opts.Notifier.Error(err.Error())
		return fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}
	done := c.begin(OpCreateItem)
	defer done()
	if _, err := c.opts.Backend.CreateItem(ctx, draft.CreateInput()); err != nil {
		c.opts.Notifier.Error(backend.UserMessage(err))
		return err
	}
	_ = c.catalogue.Load(ctx)
	c.opts.Notifier.Success("Menu item added successfully!")
	c.opts.Telemetry.Record(ctx, "menudash.item.create", map[string]any{
		"dish":     draft.DishName,
		"category": draft.Category,
	})
	return nil
}

// UpdateItem validates the draft field by field and performs the update.
// A non-empty returned map means the submission was aborted client-side with
// the draft intact. Reconciliation is a single path: the catalogue is
// refetched after the server confirms.
func (c *Controller) UpdateItem(ctx context.Context, id string, draft ItemDraft) (FieldErrors, error) {
	if errs := ValidateEditDraft(draft); len(errs) > 0 {
		return errs, ErrValidationFailed
	}
	if id == "" {
		c.opts.Notifier.Error("Menu item ID is missing. Cannot update.")
		return nil, backend.ErrMissingID
	}
	done := c.begin(OpUpdateItem)
	defer done()
	if _, err := c.opts.Backend.UpdateItem(ctx, id, draft.UpdateInput()); err != nil {
		msg := backend.ServerMessage(err)
		if msg == "" {
			msg = err.Error()
		}
		c.opts.Notifier.Error("Update failed: " + msg)
		return nil, err
	}
	_ = c.catalogue.Load(ctx)
	c.opts.Notifier.Success("Menu item updated successfully!")
	c.opts.Telemetry.Record(ctx, "menudash.item.update", map[string]any{"item_id": id})
	return nil, nil
}

// DeleteItem removes a dish. The local list is touched only after the server
// confirms, so a failed delete removes nothing.
func (c *Controller) DeleteItem(ctx context.Context, id string) error {
	done := c.begin(OpDeleteItem)
	defer done()
	if err := c.opts.Backend.DeleteItem(ctx, id); err != nil {
		msg := backend.ServerMessage(err)
		if msg == "" {
			msg = "Failed to delete menu item"
		}
		c.opts.Notifier.Error(msg)
		return err
	}
	c.catalogue.removeItem(id)
	c.opts.Telemetry.Record(ctx, "menudash.item.delete", map[string]any{"item_id": id})
	return nil
}

// ToggleAvailability flips a dish's availability. The local item is patched
// with the server-returned value, not the requested one, so a rejected or
// modified toggle still leaves the UI showing server truth. Failures are
// logged only; the switch simply stays where it was.
func (c *Controller) ToggleAvailability(ctx context.Context, id string) error {
	done := c.begin(OpToggleItem)
	defer done()
	available, err := c.opts.Backend.ToggleAvailability(ctx, id)
	if err != nil {
		c.opts.Logger.WithError(err).WithField("item_id", id).Error("toggle availability failed")
		return err
	}
	c.catalogue.patchAvailability(id, available)
	c.opts.Telemetry.Record(ctx, "menudash.item.toggle", map[string]any{
		"item_id":   id,
		"available": available,
	})
	return nil
}

// SaveCafeProfile persists the café draft currently in the store.
func (c *Controller) SaveCafeProfile(ctx context.Context) error {
	done := c.begin(OpSaveProfile)
	defer done()
	err := c.cafe.Save(ctx)
	if err == nil {
		c.opts.Telemetry.Record(ctx, "menudash.cafe.save", nil)
	}
	return err
}

// SaveCafe replaces the draft with the given profile and persists it.
func (c *Controller) SaveCafe(ctx context.Context, profile backend.CafeProfile) error {
	c.cafe.Replace(profile)
	return c.SaveCafeProfile(ctx)
}

// DeleteAccount permanently removes the owner account. On success there is
// no undo: the owner is navigated to the public landing page.
func (c *Controller) DeleteAccount(ctx context.Context) error {
	done := c.begin(OpDeleteAccount)
	defer done()
	if err := c.opts.Backend.DeleteAccount(ctx); err != nil {
		c.opts.Logger.WithError(err).Error("account deletion failed")
		c.opts.Notifier.Error("An error occurred while deleting your account. Please try again.")
		return err
	}
	c.opts.Notifier.Success("Your account has been deleted successfully!")
	c.opts.Telemetry.Record(ctx, "menudash.account.delete", nil)
	c.opts.Navigator.NavigateTo(PathLanding)
	return nil
}

// SignOut ends the session and navigates to sign-in.
func (c *Controller) SignOut(ctx context.Context) error {
	if err := c.opts.Backend.SignOut(ctx); err != nil {
		c.opts.Logger.WithError(err).Error("sign out failed")
		return err
	}
	c.opts.Navigator.NavigateTo(PathSignIn)
	c.opts.Notifier.Success("You have been signed out successfully!")
	return nil
}

// SubmitAdd runs the add-modal flow: validate and create from the add draft,
// then close and reset the dialog. On any failure the modal stays open with
// the draft intact.
func (c *Controller) SubmitAdd(ctx context.Context) error {
	if err := c.CreateItem(ctx, c.modals.AddDraft()); err != nil {
		return err
	}
	c.modals.CloseAdd()
	return nil
}

// SubmitEdit runs the edit-modal flow. Client-side validation failures
// replace the dialog's error map and abort before any network call; network
// failures leave the dialog open with the draft untouched.
func (c *Controller) SubmitEdit(ctx context.Context) error {
	errs, err := c.UpdateItem(ctx, c.modals.EditTargetID(), c.modals.EditDraft())
	if len(errs) > 0 {
		c.modals.setEditErrors(errs)
		return err
	}
	if err != nil {
		return err
	}
	c.modals.CloseEdit()
	return nil
}

// ConfirmDeleteItem runs the delete-confirmation flow for the targeted item.
func (c *Controller) ConfirmDeleteItem(ctx context.Context) error {
	target, ok := c.modals.DeleteItemTarget()
	if !ok {
		return nil
	}
	if err := c.DeleteItem(ctx, target.ID); err != nil {
		return err
	}
	c.modals.CloseDeleteItem()
	c.opts.Notifier.Success(fmt.Sprintf("%q has been deleted successfully!", target.DishName))
	return nil
}

// ConfirmDeleteAccount runs the account-deletion confirmation flow.
func (c *Controller) ConfirmDeleteAccount(ctx context.Context) error {
	if err := c.DeleteAccount(ctx); err != nil {
		return err
	}
	c.modals.CloseDeleteAccount()
	return nil
}
