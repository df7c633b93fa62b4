package dashboard

import (
	"testing"

	"github.com/cafemenu/menudash/pkg/backend"
)

func TestAddModalResetsDraftOnClose(t *testing.T) {
	m := NewModals()
	m.OpenAdd()
	m.EditAddDraft(func(d *ItemDraft) {
		d.DishName = "Latte"
		d.HalfPrice = "80"
	})
	if !m.AddOpen() {
		t.Fatalf("expected add dialog open")
	}
	m.CloseAdd()
	if m.AddOpen() {
		t.Fatalf("expected add dialog closed")
	}
	if draft := m.AddDraft(); draft != (ItemDraft{}) {
		t.Fatalf("expected reset draft, got %#v", draft)
	}
}

func TestEditModalSeedsDraftFromItem(t *testing.T) {
	half := 80.0
	item := backend.MenuItem{
		ID:        "m1",
		DishName:  "Latte",
		Category:  "Coffee & Tea",
		HalfPrice: &half,
	}
	m := NewModals()
	m.setEditErrors(FieldErrors{"dishName": "stale"})
	m.OpenEdit(item)

	if !m.EditOpen() || m.EditTargetID() != "m1" {
		t.Fatalf("expected edit open for m1, got open=%t target=%q", m.EditOpen(), m.EditTargetID())
	}
	draft := m.EditDraft()
	if draft.DishName != "Latte" || draft.HalfPrice != "80" {
		t.Fatalf("unexpected seeded draft %#v", draft)
	}
	if m.EditErrors() != nil {
		t.Fatalf("expected previous errors cleared, got %#v", m.EditErrors())
	}

	m.CloseEdit()
	if m.EditOpen() || m.EditTargetID() != "" {
		t.Fatalf("expected edit closed with target cleared")
	}
}

func TestEditModalKeepsAddDraftIndependent(t *testing.T) {
	m := NewModals()
	m.OpenAdd()
	m.EditAddDraft(func(d *ItemDraft) { d.DishName = "In progress" })
	m.OpenEdit(backend.MenuItem{ID: "m1", DishName: "Latte"})
	if m.AddDraft().DishName != "In progress" {
		t.Fatalf("opening an edit must not touch the add draft")
	}
}

func TestDeleteItemModalTracksTarget(t *testing.T) {
	m := NewModals()
	if _, ok := m.DeleteItemTarget(); ok {
		t.Fatalf("expected no target initially")
	}
	m.OpenDeleteItem(backend.MenuItem{ID: "m1", DishName: "Latte"})
	target, ok := m.DeleteItemTarget()
	if !ok || target.ID != "m1" {
		t.Fatalf("expected target m1, got %#v ok=%t", target, ok)
	}
	m.CloseDeleteItem()
	if _, ok := m.DeleteItemTarget(); ok {
		t.Fatalf("expected target cleared after close")
	}
}

func TestDeleteAccountModalToggle(t *testing.T) {
	m := NewModals()
	m.OpenDeleteAccount()
	if !m.DeleteAccountOpen() {
		t.Fatalf("expected account confirmation open")
	}
	m.CloseDeleteAccount()
	if m.DeleteAccountOpen() {
		t.Fatalf("expected account confirmation closed")
	}
}
