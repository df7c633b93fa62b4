package publicmenu

import (
	"context"
	"errors"
	"testing"

	"github.com/cafemenu/menudash/pkg/backend"
)

type stubPublicClient struct {
	cafes    []backend.PublicCafe
	cafesErr error
	menu     []backend.CategoryGroup
	menuErr  error
}

func (s *stubPublicClient) PublicCafes(ctx context.Context) ([]backend.PublicCafe, error) {
	return s.cafes, s.cafesErr
}

func (s *stubPublicClient) PublicMenu(ctx context.Context, cafeID string) ([]backend.CategoryGroup, error) {
	return s.menu, s.menuErr
}

func TestCafeMenuResolvesCafeByID(t *testing.T) {
	client := &stubPublicClient{
		cafes: []backend.PublicCafe{
			{ID: "c1", CafeName: "Blue Tokai"},
			{ID: "c2", CafeName: "Third Wave"},
		},
		menu: []backend.CategoryGroup{{Category: "Drinks"}},
	}
	service := NewService(client, nil)

	menu, err := service.CafeMenu(context.Background(), "c2")
	if err != nil {
		t.Fatalf("cafe menu: %v", err)
	}
	if menu.Cafe.CafeName != "Third Wave" {
		t.Fatalf("expected cafe resolved from directory, got %#v", menu.Cafe)
	}
	if len(menu.Categories) != 1 || menu.Categories[0].Category != "Drinks" {
		t.Fatalf("unexpected categories %#v", menu.Categories)
	}
}

func TestCafeMenuUnknownCafeIsNotFound(t *testing.T) {
	client := &stubPublicClient{
		cafes: []backend.PublicCafe{{ID: "c1"}},
	}
	service := NewService(client, nil)
	_, err := service.CafeMenu(context.Background(), "missing")
	if !errors.Is(err, backend.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCafeMenuPropagatesFetchErrors(t *testing.T) {
	client := &stubPublicClient{menuErr: errors.New("boom")}
	service := NewService(client, nil)
	if _, err := service.CafeMenu(context.Background(), "c1"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestImageURLIsCategoryBased(t *testing.T) {
	got := ImageURL("https://cdn.example.com/uploads", "Main Course")
	want := "https://cdn.example.com/uploads/menu/Main%20Course.jpg"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMenuLink(t *testing.T) {
	got := MenuLink("https://menus.example.com", "c1")
	if got != "https://menus.example.com/menu/c1" {
		t.Fatalf("unexpected link %q", got)
	}
}

func TestQRAssetSlug(t *testing.T) {
	if got := QRAssetSlug("Blue Tokai Roasters"); got != "blue-tokai-roasters-menu" {
		t.Fatalf("unexpected slug %q", got)
	}
	if got := QRAssetSlug(""); got != "cafe-menu" {
		t.Fatalf("expected fallback slug, got %q", got)
	}
}
