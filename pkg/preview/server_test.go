package preview

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cafemenu/menudash/pkg/backend"
	"github.com/cafemenu/menudash/pkg/publicmenu"
)

type stubSource struct {
	menu publicmenu.CafeMenu
	err  error
}

func (s *stubSource) CafeMenu(ctx context.Context, cafeID string) (publicmenu.CafeMenu, error) {
	return s.menu, s.err
}

func fixtureMenu() publicmenu.CafeMenu {
	half := 80.0
	return publicmenu.CafeMenu{
		Cafe: backend.PublicCafe{ID: "c1", CafeName: "Blue Tokai", Address: "12 Brew Lane"},
		Categories: []backend.CategoryGroup{
			{
				Category: "Coffee & Tea",
				Items: []backend.PublicMenuItem{
					{ID: "m1", DishName: "Latte", HalfPrice: &half, IsAvailable: true},
				},
			},
		},
	}
}

func TestMenuPageRendersCafeAndDishes(t *testing.T) {
	srv, err := NewServer(Config{
		Source:         &stubSource{menu: fixtureMenu()},
		UploadsBaseURL: "https://cdn.example.com/uploads",
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/menu/c1", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	if !strings.Contains(page, "Blue Tokai") || !strings.Contains(page, "Latte") {
		t.Fatalf("expected cafe and dish in page, got %s", page)
	}
	if !strings.Contains(page, "https://cdn.example.com/uploads/menu/Coffee%20&amp;%20Tea.jpg") &&
		!strings.Contains(page, "https://cdn.example.com/uploads/menu/Coffee%20&%20Tea.jpg") {
		t.Fatalf("expected category image url in page, got %s", page)
	}
}

func TestMenuJSONEndpoint(t *testing.T) {
	srv, err := NewServer(Config{Source: &stubSource{menu: fixtureMenu()}})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/menu/c1", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var menu publicmenu.CafeMenu
	if err := json.NewDecoder(resp.Body).Decode(&menu); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if menu.Cafe.CafeName != "Blue Tokai" || len(menu.Categories) != 1 {
		t.Fatalf("unexpected payload %#v", menu)
	}
}

func TestUnknownCafeIs404(t *testing.T) {
	srv, err := NewServer(Config{Source: &stubSource{err: backend.ErrNotFound}})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/menu/nope", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestBackendFailureIs502(t *testing.T) {
	srv, err := NewServer(Config{Source: &stubSource{err: io.ErrUnexpectedEOF}})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/menu/c1", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
}

func TestNewServerRequiresSource(t *testing.T) {
	if _, err := NewServer(Config{}); err == nil {
		t.Fatalf("expected error without menu source")
	}
}
