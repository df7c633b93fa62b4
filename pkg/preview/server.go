// Package preview serves a local rendering of a café's public menu so owners
// can check what the QR code will serve before printing it.
package preview

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/cafemenu/menudash/pkg/backend"
	"github.com/cafemenu/menudash/pkg/publicmenu"
)

// MenuSource resolves a café and its grouped menu.
type MenuSource interface {
	CafeMenu(ctx context.Context, cafeID string) (publicmenu.CafeMenu, error)
}

// Config configures the preview server.
type Config struct {
	Source         MenuSource
	UploadsBaseURL string
	Logger         logrus.FieldLogger
}

// Server is a small Fiber app with one page and one JSON endpoint.
type Server struct {
	app    *fiber.App
	source MenuSource
	log    logrus.FieldLogger
}

// NewServer wires routes and returns a ready-to-listen server.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Source == nil {
		return nil, errors.New("preview: menu source is required")
	}
	log := cfg.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	s := &Server{
		source: cfg.Source,
		log:    log,
	}
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/menu/:cafeId", s.handleMenuPage(cfg.UploadsBaseURL))
	app.Get("/api/menu/:cafeId", s.handleMenuJSON)
	s.app = app
	return s, nil
}

// Listen blocks serving on addr.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the underlying Fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) handleMenuJSON(c *fiber.Ctx) error {
	menu, err := s.source.CafeMenu(c.UserContext(), c.Params("cafeId"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(menu)
}

func (s *Server) handleMenuPage(uploadsBase string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		menu, err := s.source.CafeMenu(c.UserContext(), c.Params("cafeId"))
		if err != nil {
			return s.fail(c, err)
		}
		var buf bytes.Buffer
		if err := menuPage.Execute(&buf, pageData{
			Menu:        menu,
			UploadsBase: uploadsBase,
		}); err != nil {
			s.log.WithError(err).Error("rendering preview page failed")
			return fiber.ErrInternalServerError
		}
		c.Type("html")
		return c.Send(buf.Bytes())
	}
}

func (s *Server) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, backend.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "cafe not found")
	}
	s.log.WithError(err).Error("fetching public menu failed")
	return fiber.NewError(fiber.StatusBadGateway, "menu backend unavailable")
}

type pageData struct {
	Menu        publicmenu.CafeMenu
	UploadsBase string
}

var menuPage = template.Must(template.New("menu").Funcs(template.FuncMap{
	"imageURL": publicmenu.ImageURL,
}).Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>{{.Menu.Cafe.CafeName}} | Menu</title></head>
<body>
<h1>{{.Menu.Cafe.CafeName}}</h1>
<p>{{.Menu.Cafe.Address}}</p>
{{- range .Menu.Categories}}
<h2>{{.Category}}</h2>
<ul>
{{- $cat := .Category}}
{{- range .Items}}
<li>
  <img src="{{imageURL $.UploadsBase $cat}}" alt="{{.DishName}}" width="64">
  <strong>{{.DishName}}</strong>
  {{- if .IsChefSpecial}} <em>Chef's Special</em>{{end}}
  {{- if .HalfPrice}} Half: ₹{{.HalfPrice}}{{end}}
  {{- if .FullPrice}} Full: ₹{{.FullPrice}}{{end}}
  {{- if not .IsAvailable}} <em>(unavailable)</em>{{end}}
</li>
{{- end}}
</ul>
{{- end}}
</body>
</html>
`))
