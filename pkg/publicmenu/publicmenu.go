// Package publicmenu is the unauthenticated customer-facing surface: the
// café directory, the grouped public menu reached via QR code, and the
// helpers that derive menu links and image URLs.
package publicmenu

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/ettle/strcase"
	"github.com/sirupsen/logrus"

	"github.com/cafemenu/menudash/pkg/backend"
)

type publicClient interface {
	PublicCafes(ctx context.Context) ([]backend.PublicCafe, error)
	PublicMenu(ctx context.Context, cafeID string) ([]backend.CategoryGroup, error)
}

// CafeMenu bundles a café with its grouped public menu.
type CafeMenu struct {
	Cafe       backend.PublicCafe
	Categories []backend.CategoryGroup
}

// Service fetches public menus.
type Service struct {
	backend publicClient
	log     logrus.FieldLogger
}

// NewService builds a public menu service.
func NewService(client publicClient, log logrus.FieldLogger) *Service {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Service{backend: client, log: log}
}

// Cafes lists the public café directory.
func (s *Service) Cafes(ctx context.Context) ([]backend.PublicCafe, error) {
	return s.backend.PublicCafes(ctx)
}

// CafeMenu fetches the directory and the café's menu, resolving the café
// record by id the way the public menu page does.
func (s *Service) CafeMenu(ctx context.Context, cafeID string) (CafeMenu, error) {
	cafes, err := s.backend.PublicCafes(ctx)
	if err != nil {
		return CafeMenu{}, fmt.Errorf("publicmenu: fetch cafes: %w", err)
	}
	categories, err := s.backend.PublicMenu(ctx, cafeID)
	if err != nil {
		return CafeMenu{}, fmt.Errorf("publicmenu: fetch menu: %w", err)
	}
	menu := CafeMenu{Categories: categories}
	for _, cafe := range cafes {
		if cafe.ID == cafeID {
			menu.Cafe = cafe
			return menu, nil
		}
	}
	s.log.WithField("cafe_id", cafeID).Warn("cafe not listed in public directory")
	return menu, fmt.Errorf("publicmenu: cafe %s: %w", cafeID, backend.ErrNotFound)
}

// ImageURL derives the item image location. Images are stored per category,
// not per item: {uploadsBase}/menu/{category}.jpg.
func ImageURL(uploadsBase, category string) string {
	return uploadsBase + "/menu/" + url.PathEscape(category) + ".jpg"
}

// MenuLink builds the public menu URL encoded into a café's QR code.
func MenuLink(publicBase, cafeID string) string {
	return publicBase + "/menu/" + cafeID
}

// QRAssetSlug derives a filesystem-friendly name for saved QR assets from
// the café name.
func QRAssetSlug(cafeName string) string {
	slug := strcase.ToKebab(cafeName)
	if slug == "" {
		slug = "cafe"
	}
	return slug + "-menu"
}
