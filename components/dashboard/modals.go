package dashboard

import (
	"sync"

	"github.com/cafemenu/menudash/pkg/backend"
)

// Modals tracks the four dashboard dialogs. Each dialog is independently
// addressable; in normal usage only one is open at a time but nothing
// enforces mutual exclusion. Targets are transient references; the stores
// keep the only mutable copies once submission begins.
type Modals struct {
	mu sync.Mutex

	addOpen  bool
	addDraft ItemDraft

	editOpen     bool
	editTargetID string
	editDraft    ItemDraft
	editErrors   FieldErrors

	deleteItemOpen   bool
	deleteItemTarget *backend.MenuItem

	deleteAccountOpen bool
}

// NewModals builds the orchestrator with everything closed.
func NewModals() *Modals {
	return &Modals{}
}

// OpenAdd opens the add-item dialog with a fresh draft.
func (m *Modals) OpenAdd() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addOpen = true
}

// CloseAdd closes the dialog and resets the draft to empty defaults.
func (m *Modals) CloseAdd() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addOpen = false
	m.addDraft = ItemDraft{}
}

// AddOpen reports whether the add dialog is showing.
func (m *Modals) AddOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addOpen
}

// AddDraft returns a copy of the add buffer.
func (m *Modals) AddDraft() ItemDraft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addDraft
}

// EditAddDraft applies a keystroke-level change to the add buffer.
func (m *Modals) EditAddDraft(mutate func(d *ItemDraft)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mutate(&m.addDraft)
}

// OpenEdit opens the edit dialog targeting item, seeding the edit buffer
// from it and clearing any previous error map. The add buffer is untouched;
// an in-progress add survives opening an edit.
func (m *Modals) OpenEdit(item backend.MenuItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editOpen = true
	m.editTargetID = item.ID
	m.editDraft = DraftFromItem(item)
	m.editErrors = nil
}

// CloseEdit closes the dialog and clears the target reference and errors.
func (m *Modals) CloseEdit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editOpen = false
	m.editTargetID = ""
	m.editErrors = nil
}

// EditOpen reports whether the edit dialog is showing.
func (m *Modals) EditOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editOpen
}

// EditTargetID is the identity of the item being edited, empty when none.
func (m *Modals) EditTargetID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editTargetID
}

// EditDraft returns a copy of the edit buffer.
func (m *Modals) EditDraft() ItemDraft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editDraft
}

// EditEditDraft applies a keystroke-level change to the edit buffer.
func (m *Modals) EditEditDraft(mutate func(d *ItemDraft)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mutate(&m.editDraft)
}

// EditErrors returns the current field error map.
func (m *Modals) EditErrors() FieldErrors {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editErrors
}

func (m *Modals) setEditErrors(errs FieldErrors) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editErrors = errs
}

// OpenDeleteItem opens the delete confirmation for item.
func (m *Modals) OpenDeleteItem(item backend.MenuItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteItemOpen = true
	m.deleteItemTarget = &item
}

// CloseDeleteItem closes the confirmation and clears the target.
func (m *Modals) CloseDeleteItem() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteItemOpen = false
	m.deleteItemTarget = nil
}

// DeleteItemOpen reports whether the delete confirmation is showing.
func (m *Modals) DeleteItemOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteItemOpen
}

// DeleteItemTarget returns the item pending deletion, if any.
func (m *Modals) DeleteItemTarget() (backend.MenuItem, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteItemTarget == nil {
		return backend.MenuItem{}, false
	}
	return *m.deleteItemTarget, true
}

// OpenDeleteAccount opens the account-deletion confirmation.
func (m *Modals) OpenDeleteAccount() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteAccountOpen = true
}

// CloseDeleteAccount closes the confirmation.
func (m *Modals) CloseDeleteAccount() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteAccountOpen = false
}

// DeleteAccountOpen reports whether the account confirmation is showing.
func (m *Modals) DeleteAccountOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteAccountOpen
}
